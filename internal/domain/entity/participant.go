package entity

// Participant identifies a logical endpoint in the connect message protocol.
// The values are fixed wire tags; they appear in envelope routing fields and
// are never instantiated beyond these three.
type Participant string

const (
	// ParticipantPrimary is the always-visible webview hosting the main
	// connect flow UI.
	ParticipantPrimary Participant = "FASTEN_CONNECT_MAIN_WEBVIEW"
	// ParticipantHost is the native component embedding both webviews.
	// Control messages (e.g. modal close requests) are addressed here.
	ParticipantHost Participant = "FASTEN_CONNECT_REACT_WEBVIEW"
	// ParticipantExternal is the host application consuming event-bus
	// payloads forwarded out of the flow.
	ParticipantExternal Participant = "FASTEN_CONNECT_EXTERNAL"
)

// Label returns a short human-readable name for logging.
func (p Participant) Label() string {
	switch p {
	case ParticipantPrimary:
		return "primary-webview"
	case ParticipantHost:
		return "host"
	case ParticipantExternal:
		return "external"
	default:
		return "unknown"
	}
}
