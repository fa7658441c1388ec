package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ActionModalCloseRequest is the wire action a surface sends to ask the host
// to dismiss the modal (secondary) webview.
const ActionModalCloseRequest = "FASTEN_CONNECT_MODAL_WEBVIEW_CLOSE_REQUEST"

// ErrEmptyPayload is returned when an external-bound envelope carries no
// inner payload document.
var ErrEmptyPayload = errors.New("envelope payload is empty")

// Envelope is the structured message exchanged between surfaces and the host.
// Every field is optional: inbound data is untrusted and arrives as an opaque
// serialized string. An envelope without a recognizable to/action combination
// is not a control message and must be ignored rather than rejected.
type Envelope struct {
	Action  string `json:"action,omitempty"`
	To      string `json:"to,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// ParseEnvelope attempts a single defensive parse of an opaque message string.
func ParseEnvelope(raw string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Envelope{}, fmt.Errorf("parse envelope: %w", err)
	}
	return env, nil
}

// IsCloseCommand reports whether the envelope is the modal close request
// addressed to the host. Both fields must match.
func (e Envelope) IsCloseCommand() bool {
	return e.Action == ActionModalCloseRequest && e.To == string(ParticipantHost)
}

// IsExternal reports whether the envelope is addressed to the external
// application. Such envelopes carry their real content as a second serialized
// document in Payload.
func (e Envelope) IsExternal() bool {
	return e.To == string(ParticipantExternal)
}

// DecodePayload parses the inner payload document of an external-bound
// envelope. The inner parse is independent: a failure here never affects
// processing of other messages.
func (e Envelope) DecodePayload() (map[string]any, error) {
	if e.Payload == "" {
		return nil, ErrEmptyPayload
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(e.Payload), &payload); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return payload, nil
}
