package limiter

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lowtide/localbase/internal/storage"
)

func newTestLimiter(t *testing.T) (*StoreLimiter, *time.Time) {
	t.Helper()
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	l := NewStoreLimiter(storage.NewMemStore(), zap.NewNop(), 15*time.Minute, 3, 30*time.Minute)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_LockoutAfterThreshold(t *testing.T) {
	t.Parallel()
	l, now := newTestLimiter(t)
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "a@b.c")
	if err != nil || !ok {
		t.Fatalf("fresh email should be allowed: %v %v", ok, err)
	}

	for i := 0; i < 2; i++ {
		blocked, _, err := l.Failure(ctx, "a@b.c")
		if err != nil || blocked {
			t.Fatalf("failure %d should not block yet: %v %v", i+1, blocked, err)
		}
	}
	blocked, retry, err := l.Failure(ctx, "a@b.c")
	if err != nil || !blocked {
		t.Fatalf("third failure should block: %v %v", blocked, err)
	}
	if retry != 30*time.Minute {
		t.Fatalf("retry-after = %v", retry)
	}

	ok, retry, _ = l.Allow(ctx, "a@b.c")
	if ok || retry <= 0 {
		t.Fatalf("blocked email allowed: ok=%v retry=%v", ok, retry)
	}

	// Other emails are unaffected.
	if ok, _, _ := l.Allow(ctx, "other@b.c"); !ok {
		t.Fatalf("unrelated email blocked")
	}

	// The block lapses once its deadline passes.
	*now = now.Add(31 * time.Minute)
	if ok, _, _ := l.Allow(ctx, "a@b.c"); !ok {
		t.Fatalf("lapsed block still enforced")
	}
}

func TestLimiter_WindowResetsCounter(t *testing.T) {
	t.Parallel()
	l, now := newTestLimiter(t)
	ctx := context.Background()

	_, _, _ = l.Failure(ctx, "a@b.c")
	_, _, _ = l.Failure(ctx, "a@b.c")

	// Failures older than the window do not count toward the threshold.
	*now = now.Add(16 * time.Minute)
	blocked, _, err := l.Failure(ctx, "a@b.c")
	if err != nil || blocked {
		t.Fatalf("stale failures counted: %v %v", blocked, err)
	}
}

func TestLimiter_SuccessResets(t *testing.T) {
	t.Parallel()
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	_, _, _ = l.Failure(ctx, "a@b.c")
	_, _, _ = l.Failure(ctx, "a@b.c")
	if err := l.Success(ctx, "a@b.c"); err != nil {
		t.Fatalf("Success: %v", err)
	}

	// Counter starts over after a successful sign-in.
	blocked, _, _ := l.Failure(ctx, "a@b.c")
	if blocked {
		t.Fatalf("counter not reset by success")
	}

	// Success for an unknown email is a no-op.
	if err := l.Success(ctx, "ghost@b.c"); err != nil {
		t.Fatalf("Success unknown: %v", err)
	}
}
