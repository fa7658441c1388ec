package usecase

import (
	"context"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/domain/entity"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

// OpenPopupUseCase converts window-open interceptions from the primary
// surface into secondary-surface opens. This is the only path by which the
// secondary surface becomes visible in response to content.
type OpenPopupUseCase struct {
	ctx   context.Context
	state *entity.SurfaceLifecycle
}

// NewOpenPopupUseCase creates the window-open adapter over the shared
// lifecycle state.
func NewOpenPopupUseCase(ctx context.Context, state *entity.SurfaceLifecycle) *OpenPopupUseCase {
	return &OpenPopupUseCase{ctx: ctx, state: state}
}

// Execute opens the secondary surface at the requested target URI. A request
// without a target is dropped: there is nothing meaningful to open. Returns
// whether the surface was opened.
func (uc *OpenPopupUseCase) Execute(req port.WindowOpenRequest) bool {
	log := logging.FromContext(uc.ctx).With().Str("component", "popup").Logger()

	if req.TargetURI == "" {
		log.Warn().Str("frame", req.FrameName).Msg("window-open request without target uri, dropping")
		return false
	}

	if uc.state.IsOpen() {
		log.Debug().Str("uri", req.TargetURI).Msg("secondary surface already open, replacing target")
	}

	uc.state.Open(req.TargetURI)
	log.Info().
		Str("uri", req.TargetURI).
		Bool("user_gesture", req.IsUserGesture).
		Msg("opening secondary surface")
	return true
}
