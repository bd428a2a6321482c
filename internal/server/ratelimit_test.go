package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowWithinBudget(t *testing.T) {
	l := NewRateLimiter(time.Minute, 3)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	// Other clients have their own window.
	assert.True(t, l.Allow("b"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	l := NewRateLimiter(time.Minute, 1)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("a"))
}
