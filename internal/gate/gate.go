// Package gate decides whether a positive verdict becomes an alert.
//
// A verdict passes the gate only if alerts are enabled, the cooldown since the
// last alert has elapsed, and no alert is still in flight. Verdicts that fail
// the gate are dropped, never queued or replayed. A suppressed verdict does
// not extend the cooldown.
package gate

import (
	"context"
	"sync"
	"time"

	"github.com/ariel-frischer/errbell/internal/config"
	"github.com/ariel-frischer/errbell/internal/detect"
)

// Outcome describes what the gate did with a verdict.
type Outcome int

const (
	// OutcomeNoVerdict means the verdict did not report an error.
	OutcomeNoVerdict Outcome = iota
	// OutcomeDisabled means alerts are switched off.
	OutcomeDisabled
	// OutcomeCooldown means the previous alert is too recent.
	OutcomeCooldown
	// OutcomeInFlight means an alert is still being delivered.
	OutcomeInFlight
	// OutcomeFired means the verdict was handed to the dispatcher.
	OutcomeFired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoVerdict:
		return "no-verdict"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomeInFlight:
		return "in-flight"
	case OutcomeFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Dispatcher delivers an alert. It must call release exactly once when
// delivery has finished, successfully or not; until then the gate drops
// every other verdict.
type Dispatcher interface {
	Dispatch(ctx context.Context, cfg config.Snapshot, source detect.Source, release func())
}

// State is the process-wide gate state.
type State struct {
	// LastFire is when the last alert passed the gate; zero if none has.
	LastFire time.Time
	// InFlight is true while a dispatch has not released.
	InFlight bool
	// LastDiagnosticErrorCount is the most recent workspace error count.
	LastDiagnosticErrorCount int
}

// Controller owns a State and applies the gate to incoming verdicts.
type Controller struct {
	mu         sync.Mutex
	state      State
	now        func() time.Time
	dispatcher Dispatcher
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a Controller with a fresh State.
func New(dispatcher Dispatcher, opts ...Option) *Controller {
	c := &Controller{
		now:        time.Now,
		dispatcher: dispatcher,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit applies the gate to v using cfg. On success the in-flight flag is
// claimed in the same critical section as the checks, before the dispatcher
// runs, so two concurrent verdicts cannot both pass.
func (c *Controller) Submit(ctx context.Context, cfg config.Snapshot, v detect.Verdict) Outcome {
	if !v.Occurred {
		return OutcomeNoVerdict
	}
	if !cfg.Enabled {
		return OutcomeDisabled
	}

	c.mu.Lock()
	now := c.now()
	if !c.state.LastFire.IsZero() && now.Sub(c.state.LastFire) < cfg.CooldownDuration() {
		c.mu.Unlock()
		return OutcomeCooldown
	}
	if c.state.InFlight {
		c.mu.Unlock()
		return OutcomeInFlight
	}
	c.state.LastFire = now
	c.state.InFlight = true
	c.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			c.mu.Lock()
			c.state.InFlight = false
			c.mu.Unlock()
		})
	}

	c.dispatcher.Dispatch(ctx, cfg, v.Source, release)
	return OutcomeFired
}

// SwapDiagnosticCount records n as the latest diagnostic error count and
// returns the previous count.
func (c *Controller) SwapDiagnosticCount(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.state.LastDiagnosticErrorCount
	c.state.LastDiagnosticErrorCount = n
	return prev
}

// State returns a copy of the current gate state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
