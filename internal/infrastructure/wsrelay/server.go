package wsrelay

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server hosts the two relay surfaces and a single dispatch loop. Every
// surface callback runs on that loop, one event at a time, preserving the
// ordering guarantee the coordinator relies on.
type Server struct {
	ctx  context.Context
	addr string

	primary   *Surface
	secondary *Surface

	dispatch chan func()
	upgrader websocket.Upgrader
}

// NewServer creates a relay server listening on addr.
func NewServer(ctx context.Context, addr string) *Server {
	s := &Server{
		ctx:      ctx,
		addr:     addr,
		dispatch: make(chan func(), 64),
		upgrader: websocket.Upgrader{
			// Dev tool: companion pages are served from arbitrary local origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.primary = newSurface(ctx, port.RolePrimary, s.submit)
	s.secondary = newSurface(ctx, port.RoleSecondary, s.submit)
	return s
}

// Primary returns the relay-backed primary surface.
func (s *Server) Primary() port.Surface { return s.primary }

// Secondary returns the relay-backed secondary surface.
func (s *Server) Secondary() port.Surface { return s.secondary }

// Routes returns the HTTP routes for the relay endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws/{role}", s.handleWS)
	return r
}

// Run serves the relay until the context is cancelled. It also runs the
// dispatch loop that serializes all surface callbacks.
func (s *Server) Run() error {
	log := logging.FromContext(s.ctx).With().Str("component", "wsrelay").Logger()

	go s.runDispatchLoop()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-s.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", s.addr).Msg("relay listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) runDispatchLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case fn := <-s.dispatch:
			fn()
		}
	}
}

func (s *Server) submit(fn func()) {
	select {
	case <-s.ctx.Done():
	case s.dispatch <- fn:
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(s.ctx).With().Str("component", "wsrelay").Logger()

	var surface *Surface
	switch role := chi.URLParam(r, "role"); port.SurfaceRole(role) {
	case port.RolePrimary:
		surface = s.primary
	case port.RoleSecondary:
		surface = s.secondary
	default:
		http.Error(w, "unknown surface role", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	surface.attach(conn, uuid.NewString())
}
