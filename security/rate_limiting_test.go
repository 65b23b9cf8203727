package security

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestWindowKey_StableWithinWindow(t *testing.T) {
	db, _ := redismock.NewClientMock()
	limiter := NewRateLimiter(db, time.Minute, 100)

	base := time.Date(2025, 8, 15, 12, 0, 5, 0, time.UTC)
	later := base.Add(30 * time.Second)

	assert.Equal(t, limiter.windowKey("1.2.3.4", base), limiter.windowKey("1.2.3.4", later))
}

func TestWindowKey_RotatesAcrossWindows(t *testing.T) {
	db, _ := redismock.NewClientMock()
	limiter := NewRateLimiter(db, time.Minute, 100)

	base := time.Date(2025, 8, 15, 12, 0, 5, 0, time.UTC)
	nextWindow := base.Add(2 * time.Minute)

	assert.NotEqual(t, limiter.windowKey("1.2.3.4", base), limiter.windowKey("1.2.3.4", nextWindow))
}

func TestWindowKey_SeparatesClients(t *testing.T) {
	db, _ := redismock.NewClientMock()
	limiter := NewRateLimiter(db, time.Minute, 100)

	now := time.Now()

	assert.NotEqual(t, limiter.windowKey("1.2.3.4", now), limiter.windowKey("5.6.7.8", now))
}
