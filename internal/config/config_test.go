package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.ConfirmationCodeTTL)
	assert.Equal(t, "log", cfg.MailBackend)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.TrustedProxies)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CONFIRMATION_CODE_TTL", "5m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("PROMETHEUS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.ConfirmationCodeTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.False(t, cfg.PrometheusEnabled)
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, 172.16.0.0/12,,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
	assert.NoError(t, cfg.Validate())

	cfg.TrustedProxies = append(cfg.TrustedProxies, "proxy.local")
	assert.ErrorContains(t, cfg.Validate(), "TRUSTED_PROXIES")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ACCESS_TOKEN_TTL", "forever")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "ACCESS_TOKEN_TTL")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		HTTPPort:            70000,
		SMTPPort:            25,
		LogLevel:            "loud",
		LogFormat:           "text",
		MailBackend:         "pigeon",
		JWTSecret:           "short",
		AccessTokenTTL:      time.Hour,
		ConfirmationCodeTTL: time.Minute,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "MAIL_BACKEND")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
