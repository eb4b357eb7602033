package progress

import (
	"fmt"
)

// buildRunMessage constructs the in-progress line
func buildRunMessage(run RunInfo, width int) string {
	msg := fmt.Sprintf("Running %s", run.CommandLine())
	if run.Kind != "" {
		msg += fmt.Sprintf(" (%s)", run.Kind)
	}
	return truncate(msg, width)
}

// buildResultMessage constructs the completion line without its mark
func buildResultMessage(run RunInfo, result RunResult) string {
	code := "no exit code"
	if result.ExitCode != nil {
		code = fmt.Sprintf("exit %d", *result.ExitCode)
	}

	msg := fmt.Sprintf("%s (%s)", run.CommandLine(), code)
	switch {
	case result.Alerted:
		msg += ": error detected, alert fired"
	case result.ErrorDetected:
		msg += ": error detected, alert suppressed"
	}
	return msg
}

// truncate shortens s to width columns with a trailing ellipsis.
// A width of 0 means unknown and leaves s unchanged.
func truncate(s string, width int) string {
	// leave room for the spinner glyph and a space
	limit := width - 4
	if width == 0 || limit <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && symbols.Checkmark == "✓" {
		mark = "\033[32m" + mark + "\033[0m" // Green
	}
	return mark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && symbols.Failure == "✗" {
		mark = "\033[31m" + mark + "\033[0m" // Red
	}
	return mark
}
