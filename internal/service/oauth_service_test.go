package service

import (
	"context"
	"net/url"
	"testing"

	"mindwell-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuthService(t *testing.T) *oauthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.BaseURL = "http://localhost:8080"
	cfg.OAuth.GoogleClientID = "client-id"
	cfg.OAuth.GoogleClientSecret = "client-secret"
	return NewOAuthService(nil, cfg, noopLogger{}).(*oauthService)
}

func TestLoginURLCarriesSingleUseState(t *testing.T) {
	svc := newTestOAuthService(t)

	loginURL, err := svc.GetLoginURL("google")
	require.NoError(t, err)

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	assert.True(t, svc.consumeState(state))
	assert.False(t, svc.consumeState(state), "a state nonce must not be reusable")
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	svc := newTestOAuthService(t)

	_, err := svc.HandleCallback(context.Background(), "google", "some-code", "never-issued")
	assert.ErrorIs(t, err, ErrInvalidOAuthState)

	_, err = svc.HandleCallback(context.Background(), "google", "some-code", "")
	assert.ErrorIs(t, err, ErrInvalidOAuthState)
}

func TestLoginURLRejectsUnknownProvider(t *testing.T) {
	svc := newTestOAuthService(t)

	_, err := svc.GetLoginURL("github")
	assert.Error(t, err)
}
