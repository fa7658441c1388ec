// Package wsrelay provides a websocket-backed Surface implementation for
// development and manual end-to-end testing. A companion page running in a
// real browser connects per surface role and relays window-open, postMessage,
// and navigation events as JSON frames; load commands travel the other way.
package wsrelay

// Frame type tags on the relay wire.
const (
	// FrameLoad is sent native -> page to navigate the surface.
	FrameLoad = "load"
	// FrameMessage carries an opaque serialized envelope, page -> native.
	FrameMessage = "message"
	// FrameWindowOpen reports an intercepted window.open attempt.
	FrameWindowOpen = "window-open"
	// FrameNavigation reports a URL change.
	FrameNavigation = "navigation"
	// FrameLoadError reports a load failure.
	FrameLoadError = "load-error"
)

// Frame is one relay message in either direction.
type Frame struct {
	Type  string `json:"type"`
	URI   string `json:"uri,omitempty"`
	Data  string `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
