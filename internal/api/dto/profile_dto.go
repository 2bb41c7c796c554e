package dto

import (
	"encoding/json"

	"github.com/spec-kit/profile-push-service/internal/domain"
)

// CreateProfileRequest is the create-profile body.
type CreateProfileRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	PushToken *string `json:"pushToken"`
	UID       *string `json:"uid"`
}

// Profile converts the request to the domain profile.
func (r CreateProfileRequest) Profile() domain.UserProfile {
	return domain.UserProfile{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		PushToken: r.PushToken,
		UID:       r.UID,
	}
}

// UpdatePushTokenRequest is the update-token body.
type UpdatePushTokenRequest struct {
	Token *string `json:"token" validate:"required"`
}

// RelayMessageRequest is the relay-message body.
type RelayMessageRequest struct {
	Token       *string `json:"token"`
	TextContent *string `json:"textContent"`
}

// RelayRequest converts the request to the domain input.
func (r RelayMessageRequest) RelayRequest() domain.RelayRequest {
	return domain.RelayRequest{Token: r.Token, TextContent: r.TextContent}
}

// CallableEnvelope is the {"data": ...} wrapper used by callable-function
// clients.
type CallableEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Unwrap returns the wrapped object, or body itself when it is not wrapped.
func Unwrap(body []byte, unmarshal func([]byte, any) error) []byte {
	var wrapper CallableEnvelope
	if err := unmarshal(body, &wrapper); err != nil {
		return body
	}
	if len(wrapper.Data) > 0 && wrapper.Data[0] == '{' {
		return wrapper.Data
	}
	return body
}
