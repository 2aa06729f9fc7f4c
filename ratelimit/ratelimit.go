// Package ratelimit implements a process-local sliding-window limiter
// keyed by client IP. It is a soft, best-effort control: state lives in
// memory only and is per-process, so N replicas multiply the effective
// limit. That is accepted for this system's threat model.
package ratelimit

import (
	"sync"
	"time"
)

// Result of a single check. Remaining is the quota left after this
// attempt was recorded (0 when the attempt was rejected).
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks acceptance timestamps per key within a rolling window.
// The zero value is not usable; construct with New.
type Limiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string][]time.Time

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// New builds a limiter allowing limit attempts per rolling window and
// starts a background sweep that drops fully-expired keys every
// sweepEvery (disabled when sweepEvery <= 0). Call Stop when done.
func New(limit int, window, sweepEvery time.Duration) *Limiter {
	l := &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string][]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go l.sweepLoop(sweepEvery)
	}
	return l
}

// Check records an attempt for key if it is within quota.
// A rejected attempt is not recorded, so hammering a throttled key does
// not extend the throttle. The read-modify-write holds the lock, so two
// concurrent checks for the same key cannot both slip under the limit.
func (l *Limiter) Check(key string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := pruneOld(l.entries[key], now, l.window)
	if len(recent) >= l.limit {
		retry := l.window
		if len(recent) > 0 {
			retry = recent[0].Add(l.window).Sub(now)
		}
		l.entries[key] = recent
		return Result{Allowed: false, Remaining: 0, RetryAfter: retry}
	}

	recent = append(recent, now)
	l.entries[key] = recent
	return Result{Allowed: true, Remaining: l.limit - len(recent)}
}

// Stop terminates the background sweep. Idempotent.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Len reports the number of tracked keys (sweep observability).
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep deletes keys whose timestamps have all left the window. This is
// advisory housekeeping to bound memory; Check prunes on its own and
// stays correct regardless.
func (l *Limiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, stamps := range l.entries {
		recent := pruneOld(stamps, now, l.window)
		if len(recent) == 0 {
			delete(l.entries, key)
		} else {
			l.entries[key] = recent
		}
	}
}

// pruneOld keeps timestamps strictly inside the window: one aged exactly
// window is already outside and gets dropped.
func pruneOld(stamps []time.Time, now time.Time, window time.Duration) []time.Time {
	i := 0
	for i < len(stamps) && now.Sub(stamps[i]) >= window {
		i++
	}
	return stamps[i:]
}
