package progress

import (
	"os"

	"golang.org/x/term"
)

// Spinner character sets from briandowns/spinner.
const (
	brailleSpinner = 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	asciiSpinner   = 9  // | / - \
)

var (
	unicodeSymbols = ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: brailleSpinner}
	asciiSymbols   = ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: asciiSpinner}
)

// DetectTerminalCapabilities inspects stderr. Progress goes there so the
// wrapped command's stdout is passed through untouched.
func DetectTerminalCapabilities() TerminalCapabilities {
	return capabilitiesFor(int(os.Stderr.Fd()), os.Getenv)
}

func capabilitiesFor(fd int, getenv func(string) string) TerminalCapabilities {
	var caps TerminalCapabilities
	if !term.IsTerminal(fd) {
		return caps
	}
	caps.IsTTY = true
	caps.SupportsColor = getenv("NO_COLOR") == ""
	caps.SupportsUnicode = getenv("ERRBELL_ASCII") != "1"
	if w, _, err := term.GetSize(fd); err == nil {
		caps.Width = w
	}
	return caps
}

// SelectSymbols returns the Unicode set unless caps rules it out.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
