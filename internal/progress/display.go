package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	out          io.Writer
	current      *RunInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
}

// NewProgressDisplay creates a new progress display writing to stderr
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return NewProgressDisplayTo(caps, os.Stderr)
}

// NewProgressDisplayTo creates a progress display writing to out
func NewProgressDisplayTo(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		out:          out,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins displaying progress for a run. With animate set on a TTY a
// spinner runs until Complete or StopSpinner; otherwise one line is printed.
func (p *ProgressDisplay) Start(run RunInfo, animate bool) error {
	if err := run.Validate(); err != nil {
		return err
	}

	p.current = &run
	msg := buildRunMessage(run, p.capabilities.Width)

	if animate && p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(p.out),
		)
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
		return nil
	}

	fmt.Fprintln(p.out, msg)
	return nil
}

// Complete stops the spinner and displays the result line
func (p *ProgressDisplay) Complete(result RunResult) {
	p.StopSpinner()
	if p.current == nil {
		return
	}

	mark := checkmark(p.symbols, p.capabilities.SupportsColor)
	if result.Status() == RunFailed {
		mark = failureMark(p.symbols, p.capabilities.SupportsColor)
	}
	fmt.Fprintf(p.out, "%s %s\n", mark, buildResultMessage(*p.current, result))

	p.current = nil
}

// StopSpinner stops the spinner without showing a result
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
