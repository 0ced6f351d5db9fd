package utils

import (
	"testing"
	"time"
)

func newTestLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		config: RateLimitConfig{
			PublicLimit:    limit,
			AuthLimit:      limit,
			SubmitLimit:    limit,
			WindowDuration: window,
		},
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("ip1", 3) {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow("ip1", 3) {
		t.Error("request over limit allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(1, time.Minute)

	if !rl.Allow("ip1", 1) {
		t.Fatal("first request for ip1 denied")
	}
	if !rl.Allow("ip2", 1) {
		t.Error("first request for ip2 denied")
	}
	if rl.Allow("ip1", 1) {
		t.Error("second request for ip1 allowed")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := newTestLimiter(1, 10*time.Millisecond)

	if !rl.Allow("ip1", 1) {
		t.Fatal("first request denied")
	}
	if rl.Allow("ip1", 1) {
		t.Fatal("second request inside window allowed")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("ip1", 1) {
		t.Error("request after window expiry denied")
	}
}
