package wsrelay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

// Surface implements port.Surface over a websocket to a companion browser
// page. Inbound frames are handed to the server's dispatch loop so that
// callbacks fire one at a time, matching the event-loop delivery the
// coordination core assumes.
type Surface struct {
	ctx    context.Context
	role   port.SurfaceRole
	submit func(fn func())

	mu       sync.Mutex
	conn     *websocket.Conn
	clientID string
	pending  []string // URIs queued before a client attaches

	cb port.SurfaceCallbacks
}

func newSurface(ctx context.Context, role port.SurfaceRole, submit func(fn func())) *Surface {
	return &Surface{ctx: ctx, role: role, submit: submit}
}

// LoadURI sends a load frame to the connected page. Without a client the URI
// is queued and flushed on attach, so mounting before the browser connects
// still works.
func (s *Surface) LoadURI(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		s.pending = append(s.pending, uri)
		s.logger().Debug().Str("uri", uri).Msg("no relay client attached, queueing load")
		return nil
	}
	return s.writeFrameLocked(Frame{Type: FrameLoad, URI: uri})
}

// SetCallbacks registers the event handlers for this surface.
func (s *Surface) SetCallbacks(cb port.SurfaceCallbacks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cb = cb
}

// attach adopts a new websocket client, replacing any previous one, flushes
// queued loads, and starts the read loop.
func (s *Surface) attach(conn *websocket.Conn, clientID string) {
	s.mu.Lock()
	if s.conn != nil {
		s.logger().Warn().Str("client_id", s.clientID).Msg("replacing existing relay client")
		_ = s.conn.Close()
	}
	s.conn = conn
	s.clientID = clientID

	for _, uri := range s.pending {
		if err := s.writeFrameLocked(Frame{Type: FrameLoad, URI: uri}); err != nil {
			s.logger().Error().Err(err).Str("uri", uri).Msg("failed to flush queued load")
		}
	}
	s.pending = nil
	s.mu.Unlock()

	s.logger().Info().Str("client_id", clientID).Msg("relay client attached")
	go s.readLoop(conn, clientID)
}

func (s *Surface) detach(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.clientID = ""
	}
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Surface) readLoop(conn *websocket.Conn, clientID string) {
	defer s.detach(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger().Info().Err(err).Str("client_id", clientID).Msg("relay client disconnected")
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.logger().Error().Err(err).Msg("undecodable relay frame, dropping")
			continue
		}

		// Hand off to the single dispatch loop; callbacks must not run
		// on the websocket read goroutine.
		s.submit(func() { s.dispatchFrame(frame) })
	}
}

// dispatchFrame maps one inbound frame to the corresponding surface callback.
// Always invoked from the server's dispatch loop.
func (s *Surface) dispatchFrame(frame Frame) {
	s.mu.Lock()
	cb := s.cb
	s.mu.Unlock()

	switch frame.Type {
	case FrameMessage:
		if cb.OnMessage != nil {
			cb.OnMessage(port.MessageEvent{Data: frame.Data})
		}
	case FrameWindowOpen:
		if cb.OnWindowOpen != nil {
			cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: frame.URI, IsUserGesture: true})
		}
	case FrameNavigation:
		if cb.OnNavigationChanged != nil {
			cb.OnNavigationChanged(port.NavigationEvent{URL: frame.URI})
		}
	case FrameLoadError:
		if cb.OnLoadError != nil {
			cb.OnLoadError(port.LoadErrorEvent{URI: frame.URI, Err: errors.New(frame.Error)})
		}
	default:
		s.logger().Debug().Str("type", frame.Type).Msg("unknown relay frame type, ignoring")
	}
}

func (s *Surface) writeFrameLocked(frame Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Surface) logger() *zerolog.Logger {
	log := logging.FromContext(s.ctx).With().
		Str("component", "wsrelay").
		Str("surface", string(s.role)).
		Logger()
	return &log
}
