// Package progress renders the status of a command run by errbell exec:
// a spinner while the command runs on an interactive terminal, then a single
// result line with the exit code and whether an alert fired.
package progress

import (
	"strings"

	apperrors "github.com/ariel-frischer/errbell/internal/errors"
)

// RunStatus represents the execution state of a watched command
type RunStatus int

const (
	// RunPending indicates the command has not started yet
	RunPending RunStatus = iota
	// RunInProgress indicates the command is currently running
	RunInProgress
	// RunSucceeded indicates the command exited cleanly with no error detected
	RunSucceeded
	// RunFailed indicates the command failed or printed an error
	RunFailed
)

// String returns the string representation of RunStatus
func (s RunStatus) String() string {
	switch s {
	case RunPending:
		return "pending"
	case RunInProgress:
		return "in_progress"
	case RunSucceeded:
		return "succeeded"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunInfo describes a watched command for progress display
type RunInfo struct {
	// Command is the executable name
	Command string
	// Args are the command arguments
	Args []string
	// Kind is "task" or "terminal", matching how the result is evaluated
	Kind string
}

// Validate checks that RunInfo can be displayed
func (r RunInfo) Validate() error {
	if r.Command == "" {
		return apperrors.NewArgumentError("command cannot be empty")
	}
	switch r.Kind {
	case "", "task", "terminal":
		return nil
	default:
		return apperrors.NewArgumentError("run kind must be \"task\" or \"terminal\"")
	}
}

// CommandLine returns the command and its arguments as one line
func (r RunInfo) CommandLine() string {
	return strings.TrimSpace(r.Command + " " + strings.Join(r.Args, " "))
}

// RunResult is the outcome of a watched command
type RunResult struct {
	// ExitCode is nil when the process ended without one
	ExitCode *int
	// ErrorDetected is true when errbell judged the run an error
	ErrorDetected bool
	// Alerted is true when the error passed the gate and an alert fired
	Alerted bool
}

// Status maps the result to a RunStatus
func (r RunResult) Status() RunStatus {
	if r.ErrorDetected || (r.ExitCode != nil && *r.ExitCode != 0) {
		return RunFailed
	}
	return RunSucceeded
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stderr is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
