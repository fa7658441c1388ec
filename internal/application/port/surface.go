// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the embedded browser surface, allowing the coordination core
// to remain independent of specific implementations (WebKit, a websocket dev
// relay, test fakes, etc.).
package port

// SurfaceRole labels which embedded surface produced an event. It is a
// source-identity tag for logging; message classification is identical for
// both surfaces.
type SurfaceRole string

const (
	// RolePrimary is the always-visible surface hosting the main flow UI.
	RolePrimary SurfaceRole = "primary"
	// RoleSecondary is the on-demand surface simulating a popup window.
	RoleSecondary SurfaceRole = "secondary"
)

// WindowOpenRequest carries metadata about a content attempt to open a new
// browsing context (window.open or a target="_blank" navigation).
type WindowOpenRequest struct {
	TargetURI     string
	FrameName     string
	IsUserGesture bool
}

// MessageEvent is fired when surface content posts a message. Data is an
// opaque serialized envelope and is entirely untrusted.
type MessageEvent struct {
	Data string
}

// NavigationEvent is fired on URL/navigation-state change.
type NavigationEvent struct {
	URL string
}

// LoadErrorEvent is fired when a surface fails to load content. The core
// logs it and takes no corrective action; the surface's own error UI is
// assumed to handle recovery.
type LoadErrorEvent struct {
	URI string
	Err error
}

// SurfaceCallbacks defines callback handlers for surface events.
// Implementations must invoke these from the host runtime's event loop; the
// coordination core assumes single-threaded cooperative delivery.
type SurfaceCallbacks struct {
	// OnWindowOpen is called when content attempts to open a new window.
	OnWindowOpen func(req WindowOpenRequest)
	// OnMessage is called when content posts a message.
	OnMessage func(ev MessageEvent)
	// OnNavigationChanged is called on URL change.
	OnNavigationChanged func(ev NavigationEvent)
	// OnLoadError is called on load failure.
	OnLoadError func(ev LoadErrorEvent)
}

// Surface abstracts an embedded browser view. Implementations provide
// navigation and event delivery; everything else (rendering, chrome, input)
// is outside the coordination core.
type Surface interface {
	// LoadURI navigates the surface to the given URI.
	LoadURI(uri string) error
	// SetCallbacks registers the event handlers for this surface. Calling
	// it again replaces the previous set.
	SetCallbacks(cb SurfaceCallbacks)
}
