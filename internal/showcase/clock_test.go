package showcase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualClock fires callbacks synchronously from Advance, in due order.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	seq     int
	due     time.Duration
	period  time.Duration
	f       func()
	stopped bool
	// ignoreStop keeps the timer armed after Stop, emulating a callback already in flight.
	ignoreStop bool
}

func newManualClock() *manualClock { return &manualClock{} }

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	return c.add(d, 0, f)
}

func (c *manualClock) TickFunc(d time.Duration, f func()) Timer {
	return c.add(d, d, f)
}

func (c *manualClock) add(d, period time.Duration, f func()) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, seq: c.seq, due: c.now + d, period: period, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.ignoreStop {
		return true
	}
	was := !t.stopped
	t.stopped = true
	return was
}

// Advance moves time forward by d, running every callback that falls due.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var next *manualTimer
		for _, t := range c.timers {
			if t.stopped && !t.ignoreStop {
				continue
			}
			if t.due > target {
				continue
			}
			if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.stopped = true
			next.ignoreStop = false
		}
		f := next.f
		c.mu.Unlock()
		f()
	}
}

// Pending counts armed timers.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// leakAll makes every armed timer survive Stop.
func (c *manualClock) leakAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		if !t.stopped {
			t.ignoreStop = true
		}
	}
}

func TestRealClockTickFuncStops(t *testing.T) {
	var mu sync.Mutex
	count := 0
	timer := RealClock{}.TickFunc(5*time.Millisecond, func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count >= 2
	}, time.Second, time.Millisecond)

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())
}
