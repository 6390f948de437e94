package showcase

import (
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Option customises a Controller.
type Option func(*options)

type options struct {
	interval   time.Duration
	transition time.Duration
	clock      Clock
	logger     *zap.Logger
}

// WithInterval sets the auto-advance period. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithTransition sets how long the transition lock is held. Non-positive values keep the default.
func WithTransition(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.transition = d
		}
	}
}

// WithClock injects the scheduler used for both timers.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used for navigation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		interval:   DefaultInterval,
		transition: DefaultTransition,
		clock:      RealClock{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Controller owns the state of one mounted showcase.
type Controller struct {
	items      []Item
	interval   time.Duration
	transition time.Duration
	clock      Clock
	logger     *zap.Logger

	mu      sync.Mutex
	state   State
	ticker  Timer
	release Timer
	// releaseGen identifies the pending lock-release; a callback from an older generation is ignored.
	releaseGen uint64

	mounted  atomic.Bool
	accepted atomic.Int64
	dropped  atomic.Int64
}

// New mounts a controller over items and starts the auto-advance timer. An empty sequence fails
// with *ConfigurationError before any timer is scheduled.
func New(items []Item, opts ...Option) (*Controller, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	c := &Controller{
		items:      cloneItems(items),
		interval:   o.interval,
		transition: o.transition,
		clock:      o.clock,
		logger:     o.logger,
	}
	c.mounted.Store(true)

	c.mu.Lock()
	c.ticker = c.clock.TickFunc(c.interval, c.tick)
	c.mu.Unlock()

	c.logger.Debug("showcase mounted",
		zap.Int("items", len(c.items)),
		zap.Duration("interval", c.interval),
		zap.Duration("transition", c.transition),
	)
	return c, nil
}

// Advance moves to the next item, wrapping after the last one.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.canNavigate("advance") {
		return false
	}
	next := (c.state.ActiveIndex + 1) % len(c.items)
	c.begin(next, Forward)
	return true
}

// Retreat moves to the previous item, wrapping to the last one from index 0.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.canNavigate("retreat") {
		return false
	}
	n := len(c.items)
	prev := (c.state.ActiveIndex - 1 + n) % n
	c.begin(prev, Backward)
	return true
}

// JumpTo activates the item at index. Out-of-range indexes and the current index are ignored.
func (c *Controller) JumpTo(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.canNavigate("jump") {
		return false
	}
	if index < 0 || index >= len(c.items) {
		c.drop("jump", "index out of range", zap.Int("index", index))
		return false
	}
	if index == c.state.ActiveIndex {
		c.drop("jump", "already active", zap.Int("index", index))
		return false
	}
	dir := Backward
	if index > c.state.ActiveIndex {
		dir = Forward
	}
	c.begin(index, dir)
	return true
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the active item.
func (c *Controller) Current() Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[c.state.ActiveIndex]
}

// Items returns a copy of the item sequence.
func (c *Controller) Items() []Item { return cloneItems(c.items) }

// Len returns the number of items.
func (c *Controller) Len() int { return len(c.items) }

// Stats returns request counters.
func (c *Controller) Stats() Stats {
	return Stats{Accepted: c.accepted.Load(), Dropped: c.dropped.Load()}
}

// Mounted reports whether Close has not been called yet.
func (c *Controller) Mounted() bool { return c.mounted.Load() }

// Close unmounts the controller, cancelling the auto-advance timer and any pending lock release.
// It is safe to call more than once.
func (c *Controller) Close() {
	if !c.mounted.CompareAndSwap(true, false) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.release != nil {
		c.release.Stop()
		c.release = nil
	}
	c.releaseGen++
	c.logger.Debug("showcase unmounted",
		zap.Int64("accepted", c.accepted.Load()),
		zap.Int64("dropped", c.dropped.Load()),
	)
}

func (c *Controller) tick() {
	c.Advance()
}

// canNavigate must be called with c.mu held.
func (c *Controller) canNavigate(op string) bool {
	if !c.mounted.Load() {
		c.drop(op, "unmounted")
		return false
	}
	if c.state.TransitionLock {
		c.drop(op, "transition in progress")
		return false
	}
	return true
}

// begin must be called with c.mu held and the lock free.
func (c *Controller) begin(index int, dir Direction) {
	c.state.ActiveIndex = index
	c.state.Direction = dir
	c.state.TransitionLock = true
	c.accepted.Inc()

	c.releaseGen++
	gen := c.releaseGen
	c.release = c.clock.AfterFunc(c.transition, func() { c.releaseLock(gen) })
}

func (c *Controller) releaseLock(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted.Load() || gen != c.releaseGen {
		return
	}
	c.state.TransitionLock = false
	c.release = nil
}

func (c *Controller) drop(op, reason string, fields ...zap.Field) {
	c.dropped.Inc()
	if ce := c.logger.Check(zap.DebugLevel, "showcase navigation dropped"); ce != nil {
		ce.Write(append([]zap.Field{zap.String("op", op), zap.String("reason", reason)}, fields...)...)
	}
}
