package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastenhealth/connect-bridge/internal/application/port"
	"github.com/fastenhealth/connect-bridge/internal/application/usecase"
)

func TestIsTerminalCallbackURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "generic bridge callback",
			url:  "https://api.fastenhealth.com/v1/bridge/callback?code=abc",
			want: true,
		},
		{
			name: "idv bridge callback",
			url:  "https://api.fastenhealth.com/v1/bridge/idv/callback",
			want: true,
		},
		{
			name: "case insensitive",
			url:  "https://API.FASTENHEALTH.COM/V1/BRIDGE/CALLBACK",
			want: true,
		},
		{
			name: "portal login page",
			url:  "https://portal.example.com/login",
			want: false,
		},
		{
			name: "unrelated fastenhealth url",
			url:  "https://fastenhealth.com/v1/bridge/start",
			want: false,
		},
		{
			name: "empty url",
			url:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.IsTerminalCallbackURL(tt.url))
		})
	}
}

func TestWatchCallbackUseCase_ClosesOncePerMatchingNavigation(t *testing.T) {
	closes := 0
	uc := usecase.NewWatchCallbackUseCase(testContext(), func() { closes++ })

	closed := uc.Execute(port.NavigationEvent{URL: "https://api.fastenhealth.com/v1/bridge/callback"})

	assert.True(t, closed)
	assert.Equal(t, 1, closes)
}

func TestWatchCallbackUseCase_IgnoresOtherNavigations(t *testing.T) {
	closes := 0
	uc := usecase.NewWatchCallbackUseCase(testContext(), func() { closes++ })

	closed := uc.Execute(port.NavigationEvent{URL: "https://portal.example.com/consent"})

	assert.False(t, closed)
	assert.Zero(t, closes)
}
