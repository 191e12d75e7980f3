// Package ratelimit throttles suggestion requests with a fixed-window counter
// per client key.
package ratelimit

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultWindow is the counting window applied when none is configured.
	DefaultWindow = 60 * time.Second
	// DefaultMaxRequests is the per-window allowance applied when none is
	// configured.
	DefaultMaxRequests = 100

	// shardCount must stay a power of two for the mask in shardFor.
	shardCount = 32
)

type entry struct {
	count int
	reset time.Time
}

type shard struct {
	mu    sync.Mutex
	items map[string]entry
}

// Limiter admits or rejects requests per client key using fixed time windows.
// The key space is split across locked shards so unrelated clients do not
// contend on one mutex.
//
// Fixed windows reset the counter at hard boundaries, so a client can burst
// up to twice the allowance across a boundary. Entries for idle keys are kept
// for the life of the process.
type Limiter struct {
	window time.Duration
	max    int
	now    func() time.Time
	shards [shardCount]shard
}

// New creates a limiter admitting max requests per key per window. Zero or
// negative parameters fall back to the defaults.
func New(window time.Duration, max int) *Limiter {
	return NewWithClock(window, max, time.Now)
}

// NewWithClock is New with an injectable time source for tests.
func NewWithClock(window time.Duration, max int, now func() time.Time) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}
	l := &Limiter{window: window, max: max, now: now}
	for i := range l.shards {
		l.shards[i].items = make(map[string]entry)
	}
	return l
}

// Allow records one request attempt for key and reports whether it is
// admitted. The window check and increment happen under the shard lock, so
// concurrent callers can never over-admit a key. Rejection is a normal
// outcome, not an error.
func (l *Limiter) Allow(key string) bool {
	s := l.shardFor(key)
	now := l.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok || !now.Before(e.reset) {
		s.items[key] = entry{count: 1, reset: now.Add(l.window)}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	s.items[key] = e
	return true
}

// Size returns the number of tracked keys across all shards. Useful for
// tests and memory monitoring.
func (l *Limiter) Size() int {
	total := 0
	for i := range l.shards {
		s := &l.shards[i]
		s.mu.Lock()
		total += len(s.items)
		s.mu.Unlock()
	}
	return total
}

func (l *Limiter) shardFor(key string) *shard {
	return &l.shards[xxhash.Sum64String(key)&(shardCount-1)]
}
