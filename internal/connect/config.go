// Package connect holds the host-facing configuration and connect-URL
// construction for the embedded flow.
package connect

import (
	"errors"
	"strings"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
)

// ErrMissingPublicID is returned when a Config has no public id.
var ErrMissingPublicID = errors.New("connect: public-id is required")

// Well-known event-bus payload types. Payloads remain untyped at the host
// boundary; these are documentation-grade constants for consumers that want
// to switch on the "type" field.
const (
	EventConnectionCreated    = "connection.created"
	EventPatientAuthenticated = "patient.authenticated"
	EventWidgetClosed         = "widget.closed"
)

// Config is the immutable configuration for a connect bridge component. It
// is constructed once by the host and never mutated for the component's
// lifetime.
type Config struct {
	// PublicID identifies the integrating organization. Required.
	PublicID string

	// Optional identifiers. Appended to the connect URL only when present.
	ExternalID               string
	ReconnectOrgConnectionID string
	BrandID                  string
	PortalID                 string
	EndpointID               string

	// Search-mode flags.
	SearchMode       bool
	SearchSortByOpts []string

	// TEFCA-mode flags.
	TEFCAMode         bool
	TEFCAPurposeOfUse string

	// EventTypes restricts which event types the remote flow emits.
	// Comma-joined on the wire.
	EventTypes []string

	// Debug enables verbose flow diagnostics on both ends.
	Debug bool

	// OnEventBus receives parsed event payloads forwarded out of the flow.
	// Optional; when nil, forwarded events are logged and dropped.
	OnEventBus port.EventBusFunc
}

// Validate checks the required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.PublicID) == "" {
		return ErrMissingPublicID
	}
	return nil
}
