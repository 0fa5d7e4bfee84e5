package core

import (
	"context"
	"sync"
	"time"
)

// KeyLock serializes read-modify-write sequences per derived key. The
// store offers no cross-key transactions, so this is the only
// serialization point for availability flips and index-list appends.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	wait  time.Duration
}

// NewKeyLock creates a KeyLock whose Acquire gives up after wait.
func NewKeyLock(wait time.Duration) *KeyLock {
	return &KeyLock{locks: make(map[string]chan struct{}), wait: wait}
}

// Acquire blocks until the key's lock is free, the wait budget runs
// out (ErrBusy), or ctx is done. The returned release func must be
// called exactly once.
func (l *KeyLock) Acquire(ctx context.Context, key string) (func(), error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	for {
		l.mu.Lock()
		held, taken := l.locks[key]
		if !taken {
			ch := make(chan struct{})
			l.locks[key] = ch
			l.mu.Unlock()
			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.locks, key)
					l.mu.Unlock()
					close(ch)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-held:
			// Holder released; race the other waiters for it.
		case <-timer.C:
			return nil, ErrBusy
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
