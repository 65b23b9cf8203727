package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 2*time.Minute, cfg.RegistrantsCacheTTL)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 120, cfg.RateLimitMax)
}

func TestGetEnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("REGISTRANTS_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RegistrantsCacheTTL)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestGetEnvAsDuration_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")

	cfg := LoadConfig()

	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}
