// Package models holds the rate limiter's result type and key scheme.
package models

import (
	"math"
	"time"
)

// Result is the outcome of one limiter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest counted request leaves the window.
	ResetAt time.Time
}

// RetryAfter returns whole seconds until ResetAt, at least 1.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(math.Ceil(r.ResetAt.Sub(now).Seconds()))
	return max(secs, 1)
}

// LoginKey scopes login attempts to a client IP.
func LoginKey(ip string) string {
	return "fieldtrack:ratelimit:login:" + ip
}
