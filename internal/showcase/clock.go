package showcase

import (
	"sync"
	"time"
)

// Timer is a cancellable handle for a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call stopped a pending or running schedule.
	Stop() bool
}

// Clock schedules callbacks. The controller owns every Timer it receives and stops them on Close.
type Clock interface {
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Timer
	// TickFunc runs f every d until the returned Timer is stopped.
	TickFunc(d time.Duration, f func()) Timer
}

// RealClock schedules callbacks on the runtime timer wheel.
type RealClock struct{}

// AfterFunc wraps time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// TickFunc starts a goroutine driven by a time.Ticker.
func (RealClock) TickFunc(d time.Duration, f func()) Timer {
	t := &ticker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(f)
	return t
}

type ticker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *ticker) run(f func()) {
	for {
		select {
		case <-t.ticker.C:
			f()
		case <-t.done:
			return
		}
	}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
