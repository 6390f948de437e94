// Package status aggregates component probes into a readiness summary served at /healthz.
package status

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	StateOperational = "operational"
	StateDegraded    = "degraded"
	StateDown        = "down"
)

// Summary captures an overview of the site's components.
type Summary struct {
	State      string      `json:"state"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Components []Component `json:"components"`
}

// Component represents the status of an individual subsystem.
type Component struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Critical bool   `json:"critical"`
}

// Probe reports a component status. Returning an error marks the component down; detail is
// surfaced either way.
type Probe func(ctx context.Context) (detail string, err error)

type probeEntry struct {
	name     string
	critical bool
	fn       Probe
}

// Checker runs registered probes and caches the resulting summary.
type Checker struct {
	mu      sync.Mutex
	probes  []probeEntry
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	cached  Summary
	expires time.Time
}

// NewChecker returns a Checker caching results for ttl.
func NewChecker(ttl time.Duration) *Checker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Checker{ttl: ttl, timeout: 2 * time.Second, now: time.Now}
}

// Register adds a probe. A failing critical probe marks the whole summary down; a failing
// non-critical probe degrades it.
func (c *Checker) Register(name string, critical bool, fn Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes = append(c.probes, probeEntry{name: name, critical: critical, fn: fn})
	c.expires = time.Time{}
}

// Summary returns the cached summary or runs every probe.
func (c *Checker) Summary(ctx context.Context) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if now.Before(c.expires) {
		return cloneSummary(c.cached)
	}

	summary := Summary{State: StateOperational, UpdatedAt: now.UTC()}
	for _, p := range c.probes {
		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		detail, err := p.fn(pctx)
		cancel()
		comp := Component{Name: p.name, Status: StateOperational, Detail: detail, Critical: p.critical}
		if err != nil {
			comp.Status = StateDown
			if comp.Detail == "" {
				comp.Detail = err.Error()
			}
			switch {
			case p.critical:
				summary.State = StateDown
			case summary.State == StateOperational:
				summary.State = StateDegraded
			}
		}
		summary.Components = append(summary.Components, comp)
	}
	sort.SliceStable(summary.Components, func(i, j int) bool {
		return summary.Components[i].Name < summary.Components[j].Name
	})
	c.cached = summary
	c.expires = now.Add(c.ttl)
	return cloneSummary(summary)
}

// Healthy reports whether no critical component is down.
func (s Summary) Healthy() bool { return s.State != StateDown }

func cloneSummary(src Summary) Summary {
	cp := src
	if len(src.Components) > 0 {
		cp.Components = make([]Component, len(src.Components))
		copy(cp.Components, src.Components)
	}
	return cp
}
