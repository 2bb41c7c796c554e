package domain

import (
	"bytes"
	"encoding/json"
)

// Status is the outcome carried by an Envelope.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Envelope is the uniform result of create-profile and relay-message.
//
// Payload may be absent (omitted when serialized) or explicitly null; set
// NullPayload for the latter.
type Envelope struct {
	Status      Status
	Message     string
	Payload     any
	NullPayload bool
}

// NewErrorEnvelope returns the default envelope a handler starts from.
func NewErrorEnvelope(message string) *Envelope {
	return &Envelope{Status: StatusError, Message: message}
}

// Succeed marks the envelope successful with the given payload.
func (e *Envelope) Succeed(message string, payload any) {
	e.Status = StatusSuccess
	e.Message = message
	e.Payload = payload
	e.NullPayload = false
}

// Fail marks the envelope failed. A nil payload stays absent.
func (e *Envelope) Fail(message string, payload any) {
	e.Status = StatusError
	e.Message = message
	e.Payload = payload
	e.NullPayload = false
}

// FailNull marks the envelope failed with an explicit null payload.
func (e *Envelope) FailNull(message string) {
	e.Fail(message, nil)
	e.NullPayload = true
}

// HasPayload reports whether the payload key is serialized at all.
func (e *Envelope) HasPayload() bool {
	return e.Payload != nil || e.NullPayload
}

// MarshalJSON keeps status, message, payload in that order and omits an
// absent payload.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"status":`)
	if err := writeJSON(&buf, e.Status); err != nil {
		return nil, err
	}
	buf.WriteString(`,"message":`)
	if err := writeJSON(&buf, e.Message); err != nil {
		return nil, err
	}
	if e.HasPayload() {
		buf.WriteString(`,"payload":`)
		if err := writeJSON(&buf, e.Payload); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the envelope as the text returned to callers.
func (e Envelope) String() string {
	b, err := e.MarshalJSON()
	if err != nil {
		return `{"status":"ERROR","message":"unserializable envelope"}`
	}
	return string(b)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// DocCreatedPayload is returned after a profile insert.
type DocCreatedPayload struct {
	DocID string `json:"docId"`
}

// ErrorDetailPayload names what was missing from a collaborator reply.
type ErrorDetailPayload struct {
	ErrorDetail string `json:"errorDetail"`
}

// MessageSentPayload is returned after a push relay.
type MessageSentPayload struct {
	MessageID string `json:"messageId"`
}
