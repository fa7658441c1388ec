package usecase

import (
	"context"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/domain/entity"
	"github.com/fastenhealth/connect-bridge/internal/logging"
	"github.com/rs/zerolog"
)

// RouterAction classifies what the bridge should do with an inbound message.
type RouterAction int

const (
	// RouteNone means the message is malformed or not relevant here.
	RouteNone RouterAction = iota
	// RouteCloseSecondary means the message is a modal close command; the
	// caller must dismiss the secondary surface.
	RouteCloseSecondary
	// RouteForwardToHost means the message carries an event-bus payload;
	// the caller must invoke the host callback exactly once with it.
	RouteForwardToHost
)

// String returns a human-readable name for the router action.
func (a RouterAction) String() string {
	switch a {
	case RouteCloseSecondary:
		return "close-secondary"
	case RouteForwardToHost:
		return "forward-to-host"
	default:
		return "none"
	}
}

// RouteResult is the outcome of classifying one raw message.
type RouteResult struct {
	Action RouterAction
	// Payload holds the parsed inner document when Action is
	// RouteForwardToHost, nil otherwise.
	Payload map[string]any
}

// MessageRouter classifies raw surface messages into router actions. It is a
// pure classifier: side effects (closing the surface, invoking the host
// callback) belong to the caller. Both surfaces share the same classification
// rules; the source role is a logging label only.
type MessageRouter struct {
	ctx context.Context
}

// NewMessageRouter creates a message router. The context carries the logger.
func NewMessageRouter(ctx context.Context) *MessageRouter {
	return &MessageRouter{ctx: ctx}
}

// Route classifies one raw message string from the given surface. It never
// returns an error: malformed or irrelevant input is logged and mapped to
// RouteNone so that a bad message can never break the flow.
func (r *MessageRouter) Route(raw string, source port.SurfaceRole) RouteResult {
	log := r.logger(source)

	if raw == "" {
		log.Warn().Msg("received empty message data, ignoring")
		return RouteResult{Action: RouteNone}
	}

	env, err := entity.ParseEnvelope(raw)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse message envelope, dropping")
		return RouteResult{Action: RouteNone}
	}

	// The close-command check runs before any other routing so a close
	// request can never be misrouted as a forward.
	if env.IsCloseCommand() {
		log.Info().Msg("received modal close request")
		return RouteResult{Action: RouteCloseSecondary}
	}

	if env.IsExternal() {
		payload, err := env.DecodePayload()
		if err != nil {
			log.Error().Err(err).Msg("external-bound message has unusable payload, dropping")
			return RouteResult{Action: RouteNone}
		}
		log.Debug().Str("action", env.Action).Msg("forwarding event-bus payload to host")
		return RouteResult{Action: RouteForwardToHost, Payload: payload}
	}

	// Unknown shapes are ignored silently so newer message types never
	// break older embeddings.
	log.Debug().Str("to", env.To).Str("action", env.Action).Msg("message not addressed to this component")
	return RouteResult{Action: RouteNone}
}

func (r *MessageRouter) logger(source port.SurfaceRole) zerolog.Logger {
	return logging.FromContext(r.ctx).With().
		Str("component", "router").
		Str("surface", string(source)).
		Logger()
}
