package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock and no
// background sweep.
func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(limit, window, 0)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestCheckAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(5, time.Hour)

	for i := 1; i <= 5; i++ {
		res := l.Check("1.2.3.4")
		require.True(t, res.Allowed, "attempt %d should pass", i)
		assert.Equal(t, 5-i, res.Remaining)
	}

	res := l.Check("1.2.3.4")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestRejectedAttemptIsNotRecorded(t *testing.T) {
	l, now := newTestLimiter(2, time.Hour)

	l.Check("k")
	l.Check("k")
	for i := 0; i < 10; i++ {
		assert.False(t, l.Check("k").Allowed)
	}

	// Both recorded stamps expire together; the rejected spam above must
	// not have extended the throttle.
	*now = now.Add(time.Hour)
	assert.True(t, l.Check("k").Allowed)
}

func TestWindowSlidesPerTimestamp(t *testing.T) {
	l, now := newTestLimiter(2, time.Hour)

	l.Check("k")
	*now = now.Add(30 * time.Minute)
	l.Check("k")
	assert.False(t, l.Check("k").Allowed)

	// First stamp exits the window; one slot frees up, not the whole key.
	*now = now.Add(31 * time.Minute)
	assert.True(t, l.Check("k").Allowed)
	assert.False(t, l.Check("k").Allowed)
}

func TestWindowBoundaryIsExclusive(t *testing.T) {
	l, now := newTestLimiter(1, time.Hour)

	l.Check("k")

	// Exactly window-old is outside the window.
	*now = now.Add(time.Hour)
	res := l.Check("k")
	assert.True(t, res.Allowed)

	// One nanosecond short of the window is still inside it.
	l2, now2 := newTestLimiter(1, time.Hour)
	l2.Check("k")
	*now2 = now2.Add(time.Hour - time.Nanosecond)
	assert.False(t, l2.Check("k").Allowed)
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)

	assert.True(t, l.Check("a").Allowed)
	assert.True(t, l.Check("b").Allowed)
	assert.False(t, l.Check("a").Allowed)
}

func TestSweepDropsOnlyEmptyKeys(t *testing.T) {
	l, now := newTestLimiter(5, time.Hour)

	l.Check("old")
	*now = now.Add(2 * time.Hour)
	l.Check("fresh")

	require.Equal(t, 2, l.Len())
	l.sweep()
	assert.Equal(t, 1, l.Len())

	// The surviving key still carries its stamp.
	res := l.Check("fresh")
	assert.Equal(t, 3, res.Remaining)
}

func TestConcurrentChecksNeverExceedLimit(t *testing.T) {
	l := New(5, time.Hour, 0)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestStopIsIdempotent(t *testing.T) {
	l := New(1, time.Hour, time.Millisecond)
	l.Stop()
	l.Stop()
}
