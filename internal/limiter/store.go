package limiter

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/lowtide/localbase/internal/storage"
)

// StoreLimiter is a store-backed limiter with a sliding failure window and
// lockout. Counters live under a single reserved key and are rewritten in
// full on each change, like every other collection.
type StoreLimiter struct {
	store    storage.Store
	logger   *zap.Logger
	window   time.Duration
	maxFails int
	blockFor time.Duration

	now func() time.Time
}

type attempt struct {
	FailCount    int       `json:"fail_count"`
	BlockedUntil time.Time `json:"blocked_until"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStoreLimiter constructs a store-backed limiter.
func NewStoreLimiter(store storage.Store, logger *zap.Logger, window time.Duration, maxFails int, blockFor time.Duration) *StoreLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreLimiter{
		store:    store,
		logger:   logger,
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		now:      time.Now,
	}
}

// Allow reports whether sign-in is currently allowed and a retry-after duration.
func (l *StoreLimiter) Allow(_ context.Context, email string) (bool, time.Duration, error) {
	a, ok := l.load()[email]
	if !ok {
		return true, 0, nil
	}
	if now := l.now(); a.BlockedUntil.After(now) {
		return false, a.BlockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success resets counters for the email.
func (l *StoreLimiter) Success(_ context.Context, email string) error {
	all := l.load()
	if _, ok := all[email]; !ok {
		return nil
	}
	delete(all, email)
	return l.save(all)
}

// Failure records a failed attempt; once maxFails failures land inside the
// window, a block is placed for blockFor.
func (l *StoreLimiter) Failure(_ context.Context, email string) (bool, time.Duration, error) {
	now := l.now()
	all := l.load()
	a := all[email]
	if now.Sub(a.UpdatedAt) > l.window {
		a.FailCount = 0
	}
	a.FailCount++
	a.UpdatedAt = now

	blocked := a.FailCount >= l.maxFails
	if blocked {
		a.BlockedUntil = now.Add(l.blockFor)
	}
	all[email] = a
	if err := l.save(all); err != nil {
		return false, 0, err
	}
	if blocked {
		return true, l.blockFor, nil
	}
	return false, 0, nil
}

func (l *StoreLimiter) load() map[string]attempt {
	data, ok := l.store.Get(storage.AttemptsKey)
	if !ok {
		return map[string]attempt{}
	}
	var all map[string]attempt
	if err := json.Unmarshal(data, &all); err != nil {
		l.logger.Warn("malformed attempt counters reset", zap.Error(err))
		return map[string]attempt{}
	}
	return all
}

func (l *StoreLimiter) save(all map[string]attempt) error {
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return l.store.Set(storage.AttemptsKey, data)
}
