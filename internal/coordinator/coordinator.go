// Package coordinator wires the two embedded surfaces to the message router
// and the shared lifecycle state. It simulates browser window semantics
// (window.open, window.close, cross-window postMessage) on top of the
// primitives a native embedded-browser environment actually provides: one
// message channel per surface and manual state transitions.
package coordinator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/application/usecase"
	"github.com/fastenhealth/connect-bridge/internal/connect"
	"github.com/fastenhealth/connect-bridge/internal/domain/entity"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

// LifecycleObserver is notified after every lifecycle transition of the
// secondary surface, so the host shell can show or hide the view. The
// snapshot passed is a copy; observers never mutate the state.
type LifecycleObserver func(state entity.SurfaceLifecycle)

// Coordinator owns both surfaces and the secondary-surface lifecycle state.
// All handlers run synchronously on the host runtime's event loop; there are
// no internal goroutines, queues, or locks.
type Coordinator struct {
	ctx context.Context
	cfg connect.Config

	primary   port.Surface
	secondary port.Surface

	state     *entity.SurfaceLifecycle
	router    *usecase.MessageRouter
	openPopup *usecase.OpenPopupUseCase
	watcher   *usecase.WatchCallbackUseCase

	observer LifecycleObserver
}

// New creates a coordinator over the two surfaces. The config is validated
// once here and immutable afterwards.
func New(ctx context.Context, cfg connect.Config, primary, secondary port.Surface) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if primary == nil || secondary == nil {
		return nil, fmt.Errorf("coordinator: both surfaces are required")
	}

	if cfg.Debug {
		debugLogger := logging.FromContext(ctx).Level(zerolog.DebugLevel)
		ctx = logging.WithContext(ctx, debugLogger)
	}

	c := &Coordinator{
		ctx:       ctx,
		cfg:       cfg,
		primary:   primary,
		secondary: secondary,
		state:     entity.NewSurfaceLifecycle(),
		router:    usecase.NewMessageRouter(ctx),
	}
	c.openPopup = usecase.NewOpenPopupUseCase(ctx, c.state)
	c.watcher = usecase.NewWatchCallbackUseCase(ctx, c.CloseSecondary)
	return c, nil
}

// SetLifecycleObserver registers the host's lifecycle observer.
func (c *Coordinator) SetLifecycleObserver(observer LifecycleObserver) {
	c.observer = observer
}

// Mount wires the surface callbacks and loads the connect flow into the
// primary surface. baseURL may be empty to use the hosted default.
func (c *Coordinator) Mount(baseURL string) error {
	uri, err := connect.BuildConnectURL(baseURL, c.cfg)
	if err != nil {
		return fmt.Errorf("build connect url: %w", err)
	}

	c.primary.SetCallbacks(port.SurfaceCallbacks{
		OnWindowOpen: c.handleWindowOpen,
		OnMessage: func(ev port.MessageEvent) {
			c.handleMessage(ev, port.RolePrimary)
		},
		OnLoadError: func(ev port.LoadErrorEvent) {
			c.handleLoadError(ev, port.RolePrimary)
		},
	})

	c.secondary.SetCallbacks(port.SurfaceCallbacks{
		OnMessage: func(ev port.MessageEvent) {
			c.handleMessage(ev, port.RoleSecondary)
		},
		OnNavigationChanged: c.handleNavigation,
		OnLoadError: func(ev port.LoadErrorEvent) {
			c.handleLoadError(ev, port.RoleSecondary)
		},
	})

	c.logger().Info().Str("url", uri).Msg("mounting connect flow")
	if err := c.primary.LoadURI(uri); err != nil {
		return fmt.Errorf("load connect flow: %w", err)
	}
	return nil
}

// State returns a snapshot of the secondary-surface lifecycle state.
func (c *Coordinator) State() entity.SurfaceLifecycle {
	return *c.state
}

// CloseSecondary dismisses the secondary surface and resets its state. Every
// dismissal (user action, close command, terminal URL) routes through here so
// the reset stays consistent. Idempotent.
func (c *Coordinator) CloseSecondary() {
	if !c.state.IsOpen() {
		c.logger().Debug().Msg("close requested but secondary surface already closed")
	}
	c.state.Close()
	c.notifyObserver()
}

func (c *Coordinator) handleWindowOpen(req port.WindowOpenRequest) {
	if !c.openPopup.Execute(req) {
		return
	}
	c.notifyObserver()
	if err := c.secondary.LoadURI(req.TargetURI); err != nil {
		c.logger().Error().Err(err).Str("uri", req.TargetURI).Msg("failed to load secondary surface")
	}
}

func (c *Coordinator) handleMessage(ev port.MessageEvent, role port.SurfaceRole) {
	res := c.router.Route(ev.Data, role)
	switch res.Action {
	case usecase.RouteCloseSecondary:
		c.CloseSecondary()
	case usecase.RouteForwardToHost:
		if c.cfg.OnEventBus == nil {
			c.logger().Warn().Msg("no event-bus callback registered, dropping forwarded event")
			return
		}
		c.cfg.OnEventBus(res.Payload)
	}
}

func (c *Coordinator) handleNavigation(ev port.NavigationEvent) {
	c.watcher.Execute(ev)
}

func (c *Coordinator) handleLoadError(ev port.LoadErrorEvent, role port.SurfaceRole) {
	// Non-fatal: the surface's own error UI handles recovery.
	c.logger().Error().
		Err(ev.Err).
		Str("surface", string(role)).
		Str("uri", ev.URI).
		Msg("surface load error")
}

func (c *Coordinator) notifyObserver() {
	if c.observer != nil {
		c.observer(*c.state)
	}
}

func (c *Coordinator) logger() *zerolog.Logger {
	log := logging.FromContext(c.ctx).With().Str("component", "coordinator").Logger()
	return &log
}
