package cli

import (
	"github.com/ariel-frischer/errbell/internal/cli/shared"
)

// Exit codes for the errbell CLI (re-exported from shared)
// These codes let scripts tell an alert-worthy failure from a usage problem
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitErrorDetected indicates an error was detected or the wrapped command failed
	ExitErrorDetected = shared.ExitErrorDetected

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates a required dependency such as the alert sound is missing
	ExitMissingDependencies = shared.ExitMissingDependency
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
