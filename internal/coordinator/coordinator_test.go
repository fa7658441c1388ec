package coordinator_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/connect"
	"github.com/fastenhealth/connect-bridge/internal/coordinator"
	"github.com/fastenhealth/connect-bridge/internal/domain/entity"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logging.WithContext(context.Background(), logger)
}

// fakeSurface records loads and lets tests fire surface events by invoking
// the registered callbacks directly, the way the host runtime would.
type fakeSurface struct {
	loaded []string
	cb     port.SurfaceCallbacks
}

func (f *fakeSurface) LoadURI(uri string) error {
	f.loaded = append(f.loaded, uri)
	return nil
}

func (f *fakeSurface) SetCallbacks(cb port.SurfaceCallbacks) {
	f.cb = cb
}

func mountedBridge(t *testing.T, cfg connect.Config) (*coordinator.Coordinator, *fakeSurface, *fakeSurface) {
	t.Helper()

	primary := &fakeSurface{}
	secondary := &fakeSurface{}
	bridge, err := coordinator.New(testContext(), cfg, primary, secondary)
	require.NoError(t, err)
	require.NoError(t, bridge.Mount(""))
	return bridge, primary, secondary
}

func TestNew_RequiresValidConfig(t *testing.T) {
	_, err := coordinator.New(testContext(), connect.Config{}, &fakeSurface{}, &fakeSurface{})
	assert.ErrorIs(t, err, connect.ErrMissingPublicID)
}

func TestNew_RequiresBothSurfaces(t *testing.T) {
	_, err := coordinator.New(testContext(), connect.Config{PublicID: "pk"}, &fakeSurface{}, nil)
	assert.Error(t, err)
}

func TestMount_LoadsConnectFlowIntoPrimary(t *testing.T) {
	_, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	require.Len(t, primary.loaded, 1)
	assert.Contains(t, primary.loaded[0], "public-id=pk")
	assert.Contains(t, primary.loaded[0], "connect-mode=websocket")
	assert.Empty(t, secondary.loaded)
}

func TestWindowOpen_OpensSecondarySurface(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})

	state := bridge.State()
	assert.True(t, state.Visible)
	assert.Equal(t, "https://portal.example.com/login", state.TargetURI)
	assert.Equal(t, []string{"https://portal.example.com/login"}, secondary.loaded)
}

func TestWindowOpen_MissingTarget_Dropped(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{})

	assert.False(t, bridge.State().Visible)
	assert.Empty(t, secondary.loaded)
}

func TestCloseCommand_ClosesSecondarySurface(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})
	require.True(t, bridge.State().Visible)

	secondary.cb.OnMessage(port.MessageEvent{
		Data: `{"to":"FASTEN_CONNECT_REACT_WEBVIEW","action":"FASTEN_CONNECT_MODAL_WEBVIEW_CLOSE_REQUEST"}`,
	})

	assert.Equal(t, entity.SurfaceLifecycle{}, bridge.State())
}

func TestCloseCommand_FromPrimarySurface(t *testing.T) {
	bridge, primary, _ := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})
	primary.cb.OnMessage(port.MessageEvent{
		Data: `{"to":"FASTEN_CONNECT_REACT_WEBVIEW","action":"FASTEN_CONNECT_MODAL_WEBVIEW_CLOSE_REQUEST"}`,
	})

	assert.False(t, bridge.State().Visible)
}

func TestExternalMessage_ForwardedToHostOnce(t *testing.T) {
	var payloads []map[string]any
	cfg := connect.Config{
		PublicID:   "pk",
		OnEventBus: func(payload map[string]any) { payloads = append(payloads, payload) },
	}
	_, primary, _ := mountedBridge(t, cfg)

	primary.cb.OnMessage(port.MessageEvent{
		Data: `{"to":"FASTEN_CONNECT_EXTERNAL","payload":"{\"type\":\"connection.created\"}"}`,
	})

	require.Len(t, payloads, 1)
	assert.Equal(t, "connection.created", payloads[0]["type"])
}

func TestExternalMessage_BadPayload_HostNeverInvoked(t *testing.T) {
	invoked := false
	cfg := connect.Config{
		PublicID:   "pk",
		OnEventBus: func(map[string]any) { invoked = true },
	}
	_, primary, _ := mountedBridge(t, cfg)

	primary.cb.OnMessage(port.MessageEvent{Data: `{"to":"FASTEN_CONNECT_EXTERNAL","payload":"{broken"}`})
	primary.cb.OnMessage(port.MessageEvent{Data: `{"to":"FASTEN_CONNECT_EXTERNAL"}`})

	assert.False(t, invoked)
}

func TestExternalMessage_NoCallbackRegistered_Dropped(t *testing.T) {
	_, primary, _ := mountedBridge(t, connect.Config{PublicID: "pk"})

	// Must not panic; the event is logged and dropped.
	primary.cb.OnMessage(port.MessageEvent{
		Data: `{"to":"FASTEN_CONNECT_EXTERNAL","payload":"{\"type\":\"connection.created\"}"}`,
	})
}

func TestMalformedMessages_DoNotAffectLifecycle(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})

	for _, raw := range []string{"", "not json", `{"to":"SOMEWHERE_ELSE"}`} {
		secondary.cb.OnMessage(port.MessageEvent{Data: raw})
	}

	assert.True(t, bridge.State().Visible)
}

func TestTerminalNavigation_ClosesSecondarySurface(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})
	secondary.cb.OnNavigationChanged(port.NavigationEvent{
		URL: "https://api.fastenhealth.com/v1/bridge/callback?code=abc",
	})

	assert.Equal(t, entity.SurfaceLifecycle{}, bridge.State())
}

func TestTerminalNavigationAndCloseCommand_Converge(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})

	// Both close triggers within the same navigation are idempotent; the
	// outcome converges to closed regardless of order.
	secondary.cb.OnNavigationChanged(port.NavigationEvent{URL: "https://api.fastenhealth.com/v1/bridge/callback"})
	secondary.cb.OnMessage(port.MessageEvent{
		Data: `{"to":"FASTEN_CONNECT_REACT_WEBVIEW","action":"FASTEN_CONNECT_MODAL_WEBVIEW_CLOSE_REQUEST"}`,
	})

	assert.False(t, bridge.State().Visible)
}

func TestLoadError_IsNonFatal(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})
	secondary.cb.OnLoadError(port.LoadErrorEvent{URI: "https://portal.example.com/login", Err: assert.AnError})

	assert.True(t, bridge.State().Visible)
}

func TestLifecycleObserver_NotifiedOnTransitions(t *testing.T) {
	bridge, primary, secondary := mountedBridge(t, connect.Config{PublicID: "pk"})

	var transitions []entity.SurfaceLifecycle
	bridge.SetLifecycleObserver(func(state entity.SurfaceLifecycle) {
		transitions = append(transitions, state)
	})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})
	secondary.cb.OnMessage(port.MessageEvent{
		Data: `{"to":"FASTEN_CONNECT_REACT_WEBVIEW","action":"FASTEN_CONNECT_MODAL_WEBVIEW_CLOSE_REQUEST"}`,
	})

	require.Len(t, transitions, 2)
	assert.True(t, transitions[0].Visible)
	assert.False(t, transitions[1].Visible)
}

func TestCloseSecondary_UserInitiated_Idempotent(t *testing.T) {
	bridge, primary, _ := mountedBridge(t, connect.Config{PublicID: "pk"})

	primary.cb.OnWindowOpen(port.WindowOpenRequest{TargetURI: "https://portal.example.com/login"})
	bridge.CloseSecondary()
	bridge.CloseSecondary()

	assert.Equal(t, entity.SurfaceLifecycle{}, bridge.State())
}
