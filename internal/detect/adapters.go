package detect

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ariel-frischer/errbell/internal/classify"
	"github.com/ariel-frischer/errbell/internal/config"
)

// CountTracker records the latest diagnostic error count and returns the
// previous one. *gate.Controller satisfies it.
type CountTracker interface {
	SwapDiagnosticCount(n int) (previous int)
}

// DiagnosticAdapter fires when the workspace error count is non-zero and
// differs from the last observed count.
type DiagnosticAdapter struct {
	source DiagnosticsSource
	counts CountTracker
}

// NewDiagnosticAdapter creates an adapter querying source and recording counts in counts.
func NewDiagnosticAdapter(source DiagnosticsSource, counts CountTracker) *DiagnosticAdapter {
	return &DiagnosticAdapter{source: source, counts: counts}
}

// Evaluate queries the workspace diagnostics. A changing non-zero count is new
// information and fires, in either direction. The count is recorded even when
// the verdict does not fire.
func (a *DiagnosticAdapter) Evaluate(cfg config.Snapshot) Verdict {
	v := Verdict{Source: SourceDiagnostic}
	if !cfg.Enabled || !cfg.OnDiagnosticErrors {
		return v
	}

	count := a.source.Diagnostics().ErrorCount()
	previous := a.counts.SwapDiagnosticCount(count)
	v.Occurred = count > 0 && count != previous
	return v
}

// TaskAdapter fires when a task process exits with a concrete non-zero code.
type TaskAdapter struct{}

// Evaluate maps a task completion to a verdict. A missing exit code never fires.
func (TaskAdapter) Evaluate(cfg config.Snapshot, ev TaskProcessEnded) Verdict {
	v := Verdict{Source: SourceTask}
	if !cfg.Enabled || !cfg.OnTaskErrors {
		return v
	}
	v.Occurred = ev.ExitCode != nil && *ev.ExitCode != 0
	return v
}

// TerminalAdapter fires when a terminal command does not report success, or
// on error vocabulary in the captured output of a successful command.
type TerminalAdapter struct{}

// Evaluate maps a terminal completion to a verdict. A non-zero or unknown exit
// code fires without reading the output. For a zero exit code it drains the
// output stream to the end, bounded by the snapshot's drain timeout, and
// classifies the concatenated text. On timeout the text received so far is
// classified.
func (TerminalAdapter) Evaluate(ctx context.Context, cfg config.Snapshot, ev TerminalExecutionEnded) Verdict {
	enabled := cfg.Enabled && cfg.OnTerminalErrors

	if ev.ExitCode == nil || *ev.ExitCode != 0 {
		return Verdict{Source: SourceTerminalExit, Occurred: enabled}
	}

	v := Verdict{Source: SourceTerminalOutput}
	if !enabled || ev.Read == nil {
		return v
	}

	output, complete := drain(ctx, ev.Read, cfg.DrainTimeoutDuration())
	if !complete {
		log.Printf("[detect] terminal output drain stopped early after %d bytes", len(output))
	}
	v.Occurred = classify.Matches(classify.Sanitize(output))
	return v
}

// drain concatenates chunks until the stream closes or the timeout/ctx ends.
// complete is false when the stream did not reach its end.
func drain(ctx context.Context, read OutputReader, timeout time.Duration) (string, bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	chunks := read(ctx)
	if chunks == nil {
		return "", true
	}

	var b strings.Builder
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				return b.String(), true
			}
			b.WriteString(chunk)
		case <-ctx.Done():
			return b.String(), false
		}
	}
}
