package usecase

import (
	"context"
	"strings"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

// terminalCallbackPatterns are URL fragments that mark the end of a connect
// flow. Some provider flows terminate by navigating to one of these without
// ever posting an explicit close message, so the watcher closes the secondary
// surface on a match. Matching is substring-based; the fragments are fixed,
// well-known bridge paths.
var terminalCallbackPatterns = []string{
	// Generic bridge callback
	"fastenhealth.com/v1/bridge/callback",
	// Identity-verification bridge callback variant
	"fastenhealth.com/v1/bridge/idv/callback",
}

// IsTerminalCallbackURL checks if the URL is a known terminal bridge callback.
func IsTerminalCallbackURL(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)

	for _, pattern := range terminalCallbackPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// WatchCallbackUseCase observes secondary-surface navigations and triggers a
// close when a terminal callback URL is reached. It is a defensive fallback
// alongside the explicit close command; both triggers are idempotent, so
// racing within one navigation converges to closed.
type WatchCallbackUseCase struct {
	ctx     context.Context
	onClose func()
}

// NewWatchCallbackUseCase creates the terminal-URL watcher. onClose must
// route through the coordinator's single close path.
func NewWatchCallbackUseCase(ctx context.Context, onClose func()) *WatchCallbackUseCase {
	return &WatchCallbackUseCase{ctx: ctx, onClose: onClose}
}

// Execute inspects one navigation event. Returns whether a close was
// triggered.
func (uc *WatchCallbackUseCase) Execute(ev port.NavigationEvent) bool {
	if !IsTerminalCallbackURL(ev.URL) {
		return false
	}

	log := logging.FromContext(uc.ctx).With().Str("component", "callback-watcher").Logger()
	log.Info().Str("url", ev.URL).Msg("terminal callback url reached, closing secondary surface")

	if uc.onClose != nil {
		uc.onClose()
	}
	return true
}
