package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastenhealth/connect-bridge/internal/connect"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logging.WithContext(context.Background(), logger)
}

func TestURLCommand_PrintsConnectURL(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"url", "--public-id", "pk", "--brand-id", "brand-7"})

	require.NoError(t, rootCmd.ExecuteContext(testContext()))

	out := strings.TrimSpace(buf.String())
	assert.Contains(t, out, "public-id=pk")
	assert.Contains(t, out, "brand-id=brand-7")
	assert.True(t, strings.HasSuffix(out, "connect-mode=websocket&mode=react-native"))
}

func TestURLCommand_MissingPublicID(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"url", "--public-id", ""})

	err := rootCmd.ExecuteContext(testContext())
	assert.ErrorIs(t, err, connect.ErrMissingPublicID)
}
