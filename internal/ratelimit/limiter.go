// Package ratelimit implements the in-process fixed-window limiter guarding
// the paid generation endpoints.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// DefaultHighWater is the tracked-key count above which expired windows are
// swept before a check proceeds.
const DefaultHighWater = 10000

// Result is the outcome of a single Check.
type Result struct {
	Limited           bool
	RetryAfterSeconds int
}

type counter struct {
	count   int
	resetAt time.Time
}

// Limiter is a best-effort, per-key fixed-window counter. Counters live only
// in memory and are lost on restart.
type Limiter struct {
	mu        sync.Mutex
	counters  map[string]*counter
	now       func() time.Time
	highWater int
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithHighWater overrides DefaultHighWater.
func WithHighWater(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.highWater = n
		}
	}
}

// New creates an empty Limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		counters:  make(map[string]*counter),
		now:       time.Now,
		highWater: DefaultHighWater,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records one hit for key and reports whether the key is over limit
// within the current window.
func (l *Limiter) Check(key string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.counters) > l.highWater {
		l.sweep(now)
	}

	c, ok := l.counters[key]
	if !ok || !now.Before(c.resetAt) {
		c = &counter{count: 1, resetAt: now.Add(window)}
		l.counters[key] = c
	} else {
		c.count++
	}

	if c.count > limit {
		return Result{Limited: true, RetryAfterSeconds: retryAfter(c.resetAt.Sub(now))}
	}
	return Result{}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}

func (l *Limiter) sweep(now time.Time) {
	for key, c := range l.counters {
		if !now.Before(c.resetAt) {
			delete(l.counters, key)
		}
	}
}

func retryAfter(remaining time.Duration) int {
	secs := int(math.Ceil(remaining.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
