package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummaryStates(t *testing.T) {
	ctx := context.Background()
	ok := func(context.Context) (string, error) { return "fine", nil }
	fail := func(context.Context) (string, error) { return "", errors.New("unreachable") }

	c := NewChecker(time.Minute)
	c.Register("showcase", true, ok)
	require.Equal(t, StateOperational, c.Summary(ctx).State)

	c.Register("contact", false, fail)
	s := c.Summary(ctx)
	require.Equal(t, StateDegraded, s.State)
	require.True(t, s.Healthy())
	require.Equal(t, "contact", s.Components[0].Name)
	require.Equal(t, "unreachable", s.Components[0].Detail)

	c.Register("content", true, fail)
	s = c.Summary(ctx)
	require.Equal(t, StateDown, s.State)
	require.False(t, s.Healthy())
}

func TestSummaryIsCached(t *testing.T) {
	calls := 0
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewChecker(time.Second)
	c.now = func() time.Time { return clock }
	c.Register("p", true, func(context.Context) (string, error) { calls++; return "", nil })

	c.Summary(context.Background())
	c.Summary(context.Background())
	require.Equal(t, 1, calls)

	clock = clock.Add(2 * time.Second)
	c.Summary(context.Background())
	require.Equal(t, 2, calls)
}
