// Package detect turns host events into error verdicts.
//
// Each adapter handles one event shape: workspace diagnostics, task process
// completion, or terminal command completion. Adapters read their toggles from
// the snapshot they are given and skip detection entirely when switched off.
package detect

import (
	"context"
	"fmt"
	"strings"
)

// Source tags which surface produced a verdict.
type Source string

const (
	SourceDiagnostic     Source = "diagnostic"
	SourceTask           Source = "task"
	SourceTerminalExit   Source = "terminal-exit"
	SourceTerminalOutput Source = "terminal-output"
)

// Verdict is the outcome of one adapter evaluation.
type Verdict struct {
	Source   Source
	Occurred bool
}

func (v Verdict) String() string {
	if v.Occurred {
		return fmt.Sprintf("%s: error", v.Source)
	}
	return fmt.Sprintf("%s: none", v.Source)
}

// Severity is a diagnostic severity, numbered as in the Language Server Protocol.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name such as "error" or "Warning".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "information", "info":
		return SeverityInformation, nil
	case "hint":
		return SeverityHint, nil
	default:
		return 0, fmt.Errorf("unknown diagnostic severity %q", s)
	}
}

// Diagnostic is a single static-analysis finding.
type Diagnostic struct {
	Severity Severity
}

// Diagnostics maps each resource to its diagnostics, in host order.
type Diagnostics map[string][]Diagnostic

// ErrorCount counts error-severity diagnostics across all resources.
func (d Diagnostics) ErrorCount() int {
	n := 0
	for _, diags := range d {
		for _, diag := range diags {
			if diag.Severity == SeverityError {
				n++
			}
		}
	}
	return n
}

// DiagnosticsSource answers the whole-workspace diagnostics query.
type DiagnosticsSource interface {
	Diagnostics() Diagnostics
}

// TaskProcessEnded is reported when a task's process exits.
// ExitCode is nil when the process ended without a code (e.g. killed by a signal).
type TaskProcessEnded struct {
	ExitCode *int
}

// OutputReader streams captured terminal output. The channel is closed at
// end of stream; chunks arrive in output order. Implementations should stop
// sending once ctx is done.
type OutputReader func(ctx context.Context) <-chan string

// TerminalExecutionEnded is reported when a terminal command finishes.
// Read is nil when the host cannot capture output for the execution.
type TerminalExecutionEnded struct {
	ExitCode *int
	Read     OutputReader
}

// Code returns a pointer to n for building events.
func Code(n int) *int {
	return &n
}

// ChunkReader returns an OutputReader that yields chunks in order.
func ChunkReader(chunks ...string) OutputReader {
	return func(ctx context.Context) <-chan string {
		ch := make(chan string)
		go func() {
			defer close(ch)
			for _, c := range chunks {
				select {
				case ch <- c:
				case <-ctx.Done():
					return
				}
			}
		}()
		return ch
	}
}
