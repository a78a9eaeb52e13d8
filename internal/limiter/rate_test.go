package limiter

import (
	"context"
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow() {
		t.Fatal("request over the limit should be denied")
	}
}

func TestWaitUnblocksAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1)
	if !rl.Allow() {
		t.Fatal("first request should be allowed")
	}

	start := time.Now()
	if err := rl.Wait(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if time.Since(start) < 500*time.Millisecond {
		t.Errorf("Wait returned before the one second window elapsed")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(1)
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, 10*time.Millisecond); err != context.DeadlineExceeded {
		t.Errorf("Wait = %v, want context.DeadlineExceeded", err)
	}
}
