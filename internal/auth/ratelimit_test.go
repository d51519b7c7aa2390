package auth

import "testing"

func TestLoginLimiterLocksAfterMaxAttempts(t *testing.T) {
	limiter := NewLoginLimiter()
	ip := "203.0.113.10"

	for i := 0; i < maxLoginAttempts; i++ {
		if locked := limiter.CheckLock(ip); locked > 0 {
			t.Fatalf("locked too early after %d attempts", i)
		}
		limiter.RecordFailure(ip)
	}

	if locked := limiter.CheckLock(ip); locked <= 0 {
		t.Fatal("expected lock after max attempts")
	}
}

func TestLoginLimiterRemainingAttempts(t *testing.T) {
	limiter := NewLoginLimiter()
	ip := "203.0.113.11"

	if remaining := limiter.RecordFailure(ip); remaining != maxLoginAttempts-1 {
		t.Fatalf("unexpected remaining: %d", remaining)
	}
	if remaining := limiter.RecordFailure(ip); remaining != maxLoginAttempts-2 {
		t.Fatalf("unexpected remaining: %d", remaining)
	}
}

func TestLoginLimiterReset(t *testing.T) {
	limiter := NewLoginLimiter()
	ip := "203.0.113.12"

	for i := 0; i < maxLoginAttempts; i++ {
		limiter.RecordFailure(ip)
	}
	limiter.Reset(ip)

	if locked := limiter.CheckLock(ip); locked > 0 {
		t.Fatal("expected lock to be cleared after reset")
	}
	if remaining := limiter.RecordFailure(ip); remaining != maxLoginAttempts-1 {
		t.Fatalf("unexpected remaining after reset: %d", remaining)
	}
}

func TestLoginLimiterIsolatesIPs(t *testing.T) {
	limiter := NewLoginLimiter()

	for i := 0; i < maxLoginAttempts; i++ {
		limiter.RecordFailure("203.0.113.13")
	}

	if locked := limiter.CheckLock("203.0.113.14"); locked > 0 {
		t.Fatal("lock must not leak to other IPs")
	}
}
