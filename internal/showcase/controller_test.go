package showcase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fourItems() []Item {
	return []Item{
		{ID: "crm", Title: "Enterprise CRM Solution"},
		{ID: "shop", Title: "E-commerce Platform"},
		{ID: "analytics", Title: "Real-time Analytics Dashboard"},
		{ID: "logistics", Title: "Logistics Management System"},
	}
}

func newTestController(t *testing.T, items []Item) (*Controller, *manualClock) {
	t.Helper()
	clock := newManualClock()
	c, err := New(items, WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, clock
}

func TestNewRejectsEmptySequence(t *testing.T) {
	clock := newManualClock()
	c, err := New(nil, WithClock(clock))
	require.Nil(t, c)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.ErrorIs(t, err, ErrNoItems)
	require.Zero(t, clock.Pending(), "no timer may start for an invalid configuration")
}

func TestNewStartsIdleAtZero(t *testing.T) {
	c, clock := newTestController(t, fourItems())
	require.Equal(t, State{ActiveIndex: 0, Direction: Forward}, c.Snapshot())
	require.Equal(t, 1, clock.Pending(), "only the auto-advance ticker is armed")
	require.Equal(t, "crm", c.Current().ID)
	require.Equal(t, 4, c.Len())
}

func TestAdvanceScenario(t *testing.T) {
	c, clock := newTestController(t, fourItems())

	require.True(t, c.Advance())
	require.Equal(t, State{ActiveIndex: 1, Direction: Forward, TransitionLock: true}, c.Snapshot())

	require.False(t, c.Advance())
	require.Equal(t, State{ActiveIndex: 1, Direction: Forward, TransitionLock: true}, c.Snapshot())

	clock.Advance(499 * time.Millisecond)
	require.True(t, c.Snapshot().TransitionLock)

	clock.Advance(time.Millisecond)
	require.Equal(t, State{ActiveIndex: 1, Direction: Forward, TransitionLock: false}, c.Snapshot())
}

func TestAdvanceCountsOnlyAcceptedCalls(t *testing.T) {
	c, clock := newTestController(t, fourItems())

	const n = 9
	for i := 0; i < n; i++ {
		require.True(t, c.Advance())
		require.False(t, c.Advance())
		require.False(t, c.Retreat())
		clock.Advance(DefaultTransition)
	}
	require.Equal(t, n%4, c.Snapshot().ActiveIndex)
	require.Equal(t, Stats{Accepted: n, Dropped: 2 * n}, c.Stats())
}

func TestRetreatInvertsAdvance(t *testing.T) {
	c, clock := newTestController(t, fourItems())

	require.True(t, c.Advance())
	clock.Advance(DefaultTransition)
	require.True(t, c.Retreat())
	require.Equal(t, State{ActiveIndex: 0, Direction: Backward, TransitionLock: true}, c.Snapshot())
	clock.Advance(DefaultTransition)

	require.True(t, c.Retreat())
	require.Equal(t, 3, c.Snapshot().ActiveIndex, "retreat from 0 wraps to the last item")
	clock.Advance(DefaultTransition)
	require.True(t, c.Advance())
	require.Equal(t, 0, c.Snapshot().ActiveIndex)
}

func TestJumpToCurrentIsNoop(t *testing.T) {
	c, clock := newTestController(t, fourItems())
	require.True(t, c.JumpTo(2))
	clock.Advance(DefaultTransition)

	before := c.Snapshot()
	require.False(t, c.JumpTo(2))
	require.Equal(t, before, c.Snapshot())
	require.Equal(t, 1, clock.Pending(), "no lock release scheduled")
}

func TestJumpToSetsIndexAndLocks(t *testing.T) {
	c, clock := newTestController(t, fourItems())

	require.True(t, c.JumpTo(3))
	require.Equal(t, State{ActiveIndex: 3, Direction: Forward, TransitionLock: true}, c.Snapshot())
	clock.Advance(DefaultTransition)
	require.False(t, c.Snapshot().TransitionLock)

	// Direction compares raw indexes: 3 -> 0 is backward even though it is one step forward.
	require.True(t, c.JumpTo(0))
	require.Equal(t, State{ActiveIndex: 0, Direction: Backward, TransitionLock: true}, c.Snapshot())
}

func TestJumpToOutOfRangeIsIgnored(t *testing.T) {
	c, _ := newTestController(t, fourItems())
	for _, idx := range []int{-1, 4, 100} {
		require.False(t, c.JumpTo(idx))
		require.Equal(t, State{}, c.Snapshot())
	}
}

func TestNavigationUnderLockIsNoop(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Controller) bool
	}{
		{"advance", (*Controller).Advance},
		{"retreat", (*Controller).Retreat},
		{"jump", func(c *Controller) bool { return c.JumpTo(3) }},
		{"jump current", func(c *Controller) bool { return c.JumpTo(1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestController(t, fourItems())
			require.True(t, c.Advance())
			locked := c.Snapshot()

			require.False(t, tc.op(c))
			require.Equal(t, locked, c.Snapshot())
		})
	}
}

func TestAutoAdvanceTicks(t *testing.T) {
	c, clock := newTestController(t, fourItems())

	clock.Advance(DefaultInterval - time.Millisecond)
	require.Equal(t, 0, c.Snapshot().ActiveIndex)

	clock.Advance(time.Millisecond)
	require.Equal(t, State{ActiveIndex: 1, Direction: Forward, TransitionLock: true}, c.Snapshot())

	clock.Advance(DefaultTransition)
	require.False(t, c.Snapshot().TransitionLock)

	clock.Advance(3 * DefaultInterval)
	require.Equal(t, 0, c.Snapshot().ActiveIndex)
}

func TestAutoAdvanceKeepsPhaseAndIsDroppedUnderLock(t *testing.T) {
	c, clock := newTestController(t, fourItems())

	// A manual advance 200ms before the tick holds the lock across it.
	clock.Advance(DefaultInterval - 200*time.Millisecond)
	require.True(t, c.Advance())
	clock.Advance(200 * time.Millisecond)
	require.Equal(t, 1, c.Snapshot().ActiveIndex, "tick under lock is dropped")

	clock.Advance(DefaultTransition)
	require.False(t, c.Snapshot().TransitionLock)

	// The next tick still lands on the original schedule.
	clock.Advance(DefaultInterval - DefaultTransition - time.Millisecond)
	require.Equal(t, 1, c.Snapshot().ActiveIndex)
	clock.Advance(time.Millisecond)
	require.Equal(t, 2, c.Snapshot().ActiveIndex)
}

func TestCustomDurations(t *testing.T) {
	clock := newManualClock()
	c, err := New(fourItems(), WithClock(clock), WithInterval(time.Second), WithTransition(100*time.Millisecond))
	require.NoError(t, err)
	defer c.Close()

	clock.Advance(time.Second)
	require.True(t, c.Snapshot().TransitionLock)
	clock.Advance(100 * time.Millisecond)
	require.False(t, c.Snapshot().TransitionLock)
}

func TestSingleItemSequence(t *testing.T) {
	c, clock := newTestController(t, []Item{{ID: "only"}})

	require.True(t, c.Advance())
	require.Equal(t, 0, c.Snapshot().ActiveIndex)
	clock.Advance(DefaultTransition)
	require.True(t, c.Retreat())
	require.Equal(t, 0, c.Snapshot().ActiveIndex)
	clock.Advance(DefaultTransition)
	require.False(t, c.JumpTo(0))
}

func TestCloseCancelsTimers(t *testing.T) {
	c, clock := newTestController(t, fourItems())
	require.True(t, c.Advance())
	require.Equal(t, 2, clock.Pending())

	c.Close()
	require.Zero(t, clock.Pending())
	require.False(t, c.Mounted())

	frozen := c.Snapshot()
	require.NotPanics(t, func() { clock.Advance(2 * DefaultInterval) })
	require.Equal(t, frozen, c.Snapshot())

	require.False(t, c.Advance())
	require.False(t, c.Retreat())
	require.False(t, c.JumpTo(3))
	require.Equal(t, frozen, c.Snapshot())
}

func TestReleaseFiringAfterCloseDoesNotMutate(t *testing.T) {
	c, clock := newTestController(t, fourItems())
	require.True(t, c.Advance())

	// Emulate callbacks that were already dispatched when Close ran.
	clock.leakAll()
	c.Close()

	frozen := c.Snapshot()
	require.NotPanics(t, func() { clock.Advance(2 * DefaultInterval) })
	require.Equal(t, frozen, c.Snapshot())
	require.True(t, frozen.TransitionLock)
}

func TestCloseIsIdempotent(t *testing.T) {
	c, _ := newTestController(t, fourItems())
	c.Close()
	require.NotPanics(t, c.Close)
}

func TestItemsAreCopied(t *testing.T) {
	items := fourItems()
	items[0].Tags = []string{"React"}
	c, _ := newTestController(t, items)

	items[0].Title = "changed"
	items[0].Tags[0] = "changed"
	got := c.Items()
	require.Equal(t, "Enterprise CRM Solution", got[0].Title)
	require.Equal(t, []string{"React"}, got[0].Tags)

	got[1].Title = "changed"
	require.Equal(t, "E-commerce Platform", c.Items()[1].Title)
}

func TestRealClockReleasesLock(t *testing.T) {
	c, err := New(fourItems(), WithInterval(time.Hour), WithTransition(10*time.Millisecond))
	require.NoError(t, err)
	defer c.Close()

	require.True(t, c.Advance())
	require.Eventually(t, func() bool {
		return !c.Snapshot().TransitionLock
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, c.Snapshot().ActiveIndex)
}

func TestDirectionString(t *testing.T) {
	require.Equal(t, "forward", Forward.String())
	require.Equal(t, "backward", Backward.String())
}
