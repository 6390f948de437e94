// Package showcase implements the rotating project showcase: an ordered set of items, one of
// which is active at a time, advanced automatically on an interval and navigable by visitors.
// At most one transition animates at a time; requests made while a transition is running are
// dropped rather than queued.
package showcase

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultInterval is the auto-advance period.
	DefaultInterval = 7 * time.Second
	// DefaultTransition matches the length of the visual slide transition.
	DefaultTransition = 500 * time.Millisecond
)

// ErrNoItems is matched by ConfigurationError when the item sequence is empty.
var ErrNoItems = errors.New("showcase: item sequence is empty")

// ConfigurationError reports an unusable controller configuration.
type ConfigurationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e == nil {
		return "showcase: invalid configuration"
	}
	if e.Reason == "" {
		return fmt.Sprintf("showcase: invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("showcase: invalid configuration: %s", e.Reason)
}

// Unwrap exposes the underlying sentinel.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// Item is one entry of the showcase. The controller only indexes items; the payload fields are
// carried through for renderers.
type Item struct {
	ID          string
	Title       string
	Description string
	Image       string
	Category    string
	Tags        []string
	Link        string
}

// Direction records which way the latest transition moved.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the lowercase name used by templates.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	default:
		return "forward"
	}
}

// State is a read-only snapshot of a controller.
type State struct {
	ActiveIndex    int
	Direction      Direction
	TransitionLock bool
}

// Transitioning reports whether a transition is animating.
func (s State) Transitioning() bool { return s.TransitionLock }

// Stats counts navigation requests seen by a controller.
type Stats struct {
	Accepted int64
	Dropped  int64
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return &ConfigurationError{Reason: "at least one item is required", Err: ErrNoItems}
	}
	return nil
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if len(it.Tags) > 0 {
			it.Tags = append([]string(nil), it.Tags...)
		}
		out[i] = it
	}
	return out
}
