// Package engine wires the configuration store, the detection adapters, the
// gate and the alert dispatcher into one runtime that hosts feed events into.
package engine

import (
	"context"
	"log"
	"sync"

	"github.com/ariel-frischer/errbell/internal/config"
	"github.com/ariel-frischer/errbell/internal/detect"
	"github.com/ariel-frischer/errbell/internal/gate"
	"github.com/ariel-frischer/errbell/internal/notify"
)

// Options configures a Runtime. Store and Sender are required.
type Options struct {
	Store  *config.Store
	Sender notify.Sender

	// State receives the visual error state. Nil means no visual state.
	State notify.StateSetter

	// Warner receives user-visible warnings. Nil means the log.
	Warner notify.Warner

	// Diagnostics is queried on every diagnostics change. Nil means an
	// empty Workspace owned by the runtime.
	Diagnostics detect.DiagnosticsSource

	// Debug logs every gate decision, not only fired alerts.
	Debug bool

	GateOptions       []gate.Option
	DispatcherOptions []notify.DispatcherOption
}

// Runtime is the process-wide alert engine.
type Runtime struct {
	store      *config.Store
	gate       *gate.Controller
	dispatcher *notify.Dispatcher
	workspace  *Workspace

	diagnostics *detect.DiagnosticAdapter
	task        detect.TaskAdapter
	terminal    detect.TerminalAdapter

	warner      notify.Warner
	captureOnce sync.Once

	debug bool
}

// CaptureUnavailableWarning is shown once when the host reports a successful
// terminal command without captured output.
const CaptureUnavailableWarning = "terminal output capture is unavailable, so only exit codes are checked. " +
	"Enable shell integration in the editor to detect errors printed by successful commands."

// New builds a Runtime from opts.
func New(opts Options) *Runtime {
	dispatcher := notify.NewDispatcher(opts.Sender, opts.State, opts.Warner, opts.DispatcherOptions...)
	controller := gate.New(dispatcher, opts.GateOptions...)

	r := &Runtime{
		store:      opts.Store,
		gate:       controller,
		dispatcher: dispatcher,
		warner:     opts.Warner,
		debug:      opts.Debug,
	}
	if r.warner == nil {
		r.warner = notify.LogWarner{}
	}

	source := opts.Diagnostics
	if source == nil {
		r.workspace = NewWorkspace()
		source = r.workspace
	}
	r.diagnostics = detect.NewDiagnosticAdapter(source, controller)

	if r.debug {
		r.store.OnChange(func(old, next config.Snapshot) {
			if old != next {
				log.Printf("[engine] configuration changed: %+v", next)
			}
		})
	}
	return r
}

// Start performs the initial workspace diagnostics check.
func (r *Runtime) Start(ctx context.Context) gate.Outcome {
	return r.DiagnosticsChanged(ctx)
}

// DiagnosticsChanged re-queries the workspace diagnostics.
func (r *Runtime) DiagnosticsChanged(ctx context.Context) gate.Outcome {
	cfg := r.store.Current()
	return r.submit(ctx, cfg, r.diagnostics.Evaluate(cfg))
}

// UpdateDiagnostics merges d into the runtime's own workspace and re-queries
// it. It is a plain DiagnosticsChanged when an external source was supplied.
func (r *Runtime) UpdateDiagnostics(ctx context.Context, d detect.Diagnostics) gate.Outcome {
	if r.workspace != nil {
		r.workspace.Update(d)
	}
	return r.DiagnosticsChanged(ctx)
}

// TaskProcessEnded handles a task process completion.
func (r *Runtime) TaskProcessEnded(ctx context.Context, ev detect.TaskProcessEnded) gate.Outcome {
	cfg := r.store.Current()
	return r.submit(ctx, cfg, r.task.Evaluate(cfg, ev))
}

// TerminalExecutionEnded handles a terminal command completion. It may block
// while the command output is drained.
func (r *Runtime) TerminalExecutionEnded(ctx context.Context, ev detect.TerminalExecutionEnded) gate.Outcome {
	cfg := r.store.Current()
	if ev.Read == nil && cfg.Enabled && cfg.OnTerminalErrors && ev.ExitCode != nil && *ev.ExitCode == 0 {
		r.captureOnce.Do(func() { r.warner.Warn(CaptureUnavailableWarning) })
	}
	return r.submit(ctx, cfg, r.terminal.Evaluate(ctx, cfg, ev))
}

// ApplySettings merges host settings into the configuration.
func (r *Runtime) ApplySettings(settings map[string]any) error {
	return r.store.ApplySettings(settings)
}

// Config returns the active configuration snapshot.
func (r *Runtime) Config() config.Snapshot {
	return r.store.Current()
}

// State returns a copy of the gate state.
func (r *Runtime) State() gate.State {
	return r.gate.State()
}

// Wait blocks until every started alert has finished playing.
func (r *Runtime) Wait() {
	r.dispatcher.Wait()
}

func (r *Runtime) submit(ctx context.Context, cfg config.Snapshot, v detect.Verdict) gate.Outcome {
	outcome := r.gate.Submit(ctx, cfg, v)
	switch {
	case outcome == gate.OutcomeFired:
		log.Printf("[engine] %s: alert fired", v.Source)
	case r.debug && outcome != gate.OutcomeNoVerdict:
		log.Printf("[engine] %s: alert suppressed (%s)", v.Source, outcome)
	case r.debug:
		log.Printf("[engine] %s", v)
	}
	return outcome
}
