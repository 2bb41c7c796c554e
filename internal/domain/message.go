package domain

// PushMessage is a data message addressed to one device token.
type PushMessage struct {
	Token string            `json:"token"`
	Data  map[string]string `json:"data"`
}

// RelayRequest is the relay-message input. Both fields are required.
type RelayRequest struct {
	Token       *string `json:"token" validate:"required"`
	TextContent *string `json:"textContent" validate:"required"`
}

// Message builds the push message for a validated request.
func (r RelayRequest) Message() PushMessage {
	return PushMessage{
		Token: *r.Token,
		Data:  map[string]string{"text": *r.TextContent},
	}
}
