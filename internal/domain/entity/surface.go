package entity

// SurfaceLifecycle is the single source of truth for whether the secondary
// (popup-simulating) webview is rendered and what it should load. It is owned
// by the coordinator and mutated only through Open and Close; no handler may
// flip Visible directly.
type SurfaceLifecycle struct {
	Visible   bool
	TargetURI string
}

// NewSurfaceLifecycle returns the initial closed state.
func NewSurfaceLifecycle() *SurfaceLifecycle {
	return &SurfaceLifecycle{}
}

// Open marks the secondary surface visible at the given target URI. Opening
// while already open replaces the target and stays open; only one secondary
// surface exists at a time. Returns false for an empty URI, which is a no-op.
func (s *SurfaceLifecycle) Open(uri string) bool {
	if uri == "" {
		return false
	}
	s.Visible = true
	s.TargetURI = uri
	return true
}

// Close resets the state to its initial values. Idempotent; safe to call when
// already closed.
func (s *SurfaceLifecycle) Close() {
	s.Visible = false
	s.TargetURI = ""
}

// IsOpen reports whether the secondary surface is currently rendered.
func (s *SurfaceLifecycle) IsOpen() bool {
	return s.Visible
}
