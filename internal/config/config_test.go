package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "identity-console", cfg.GetServiceName())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.Equal(t, []string{"openid", "profile", "email"}, cfg.GetScopes())
	require.Equal(t, "http://localhost:8080/auth/callback", cfg.GetCallbackURL())
	require.Equal(t, 10, cfg.GetLogBatchSize())
	require.Equal(t, 5*time.Second, cfg.GetLogFlushInterval())
	require.Equal(t, "file", cfg.GetSessionStore())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "PROD")
	t.Setenv("OAUTH_SCOPES", "openid email")
	t.Setenv("OAUTH_CALLBACK_URL", "https://console.example.com/auth/callback")
	t.Setenv("LOG_BATCH_SIZE", "25")
	t.Setenv("LOG_FLUSH_INTERVAL", "30s")
	t.Setenv("RATE_LIMITING", "false")

	cfg := New()
	require.Equal(t, ":9000", cfg.GetPort())
	require.Equal(t, "PROD", cfg.GetEnv())
	require.Equal(t, []string{"openid", "email"}, cfg.GetScopes())
	require.Equal(t, "https://console.example.com/auth/callback", cfg.GetCallbackURL())
	require.Equal(t, 25, cfg.GetLogBatchSize())
	require.Equal(t, 30*time.Second, cfg.GetLogFlushInterval())
	require.False(t, cfg.GetEnableRateLimiting())
}

func TestCallbackURLDerivedFromBaseURL(t *testing.T) {
	t.Setenv("BASE_URL", "https://console.internal")

	cfg := New()
	require.Equal(t, "https://console.internal/auth/callback", cfg.GetCallbackURL())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	origins := New().GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
	require.False(t, origins.IsAllowedOrigin("https://c.example.com"))
}

func TestBadEnvValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("LOG_BATCH_SIZE", "not-a-number")
	t.Setenv("LOG_FLUSH_INTERVAL", "soon")
	t.Setenv("RATE_LIMITING", "maybe")

	cfg := New()
	require.Equal(t, 10, cfg.GetLogBatchSize())
	require.Equal(t, 5*time.Second, cfg.GetLogFlushInterval())
	require.True(t, cfg.GetEnableRateLimiting())
}
