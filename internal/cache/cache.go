// Package cache provides a single-entry TTL cache with single-flighted
// refresh: however many callers arrive while the value is stale, exactly
// one runs the refresh and everyone shares its outcome.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry memoizes one expensive operation. Failures are never cached: the
// error propagates to every waiter of that refresh and the previous value,
// if any, stays in place for the next attempt.
type Entry[T any] struct {
	ttl     time.Duration
	refresh func(ctx context.Context) (T, error)
	now     func() time.Time // overridable in tests

	group singleflight.Group

	mu      sync.RWMutex
	value   T
	fetched time.Time
	has     bool
}

func New[T any](ttl time.Duration, refresh func(context.Context) (T, error)) *Entry[T] {
	return &Entry[T]{
		ttl:     ttl,
		refresh: refresh,
		now:     time.Now,
	}
}

// Get returns the cached value while it is fresh, otherwise runs (or joins)
// a refresh. A successful refresh replaces the value and timestamp
// atomically.
func (e *Entry[T]) Get(ctx context.Context) (T, error) {
	if v, ok := e.fresh(); ok {
		return v, nil
	}

	v, err, _ := e.group.Do("entry", func() (any, error) {
		// A refresh that completed while this caller queued already
		// produced a fresh value; don't hit upstream again.
		if v, ok := e.fresh(); ok {
			return v, nil
		}

		value, err := e.refresh(ctx)
		if err != nil {
			return nil, err
		}

		e.mu.Lock()
		e.value = value
		e.fetched = e.now()
		e.has = true
		e.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (e *Entry[T]) fresh() (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.has && e.now().Sub(e.fetched) < e.ttl {
		return e.value, true
	}
	var zero T
	return zero, false
}
