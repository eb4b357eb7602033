package notify

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/fatih/color"
)

// StateSetter is the UI collaborator that shows or hides the error state.
type StateSetter interface {
	SetErrorState(hasError bool)
}

// Warner shows a user-visible warning.
type Warner interface {
	Warn(message string)
}

// Indicators fans a state change out to several setters.
type Indicators []StateSetter

// SetErrorState forwards hasError to every setter.
func (ii Indicators) SetErrorState(hasError bool) {
	for _, s := range ii {
		s.SetErrorState(hasError)
	}
}

// Warners fans a warning out to several warners.
type Warners []Warner

// Warn forwards message to every warner.
func (ww Warners) Warn(message string) {
	for _, w := range ww {
		w.Warn(message)
	}
}

// ConsoleIndicator writes the error state as a colored status line.
// Repeated states are not written twice.
type ConsoleIndicator struct {
	mu      sync.Mutex
	out     io.Writer
	last    bool
	written bool
	red     func(a ...interface{}) string
	green   func(a ...interface{}) string
}

// NewConsoleIndicator creates an indicator writing to out.
func NewConsoleIndicator(out io.Writer) *ConsoleIndicator {
	return &ConsoleIndicator{
		out:   out,
		red:   color.New(color.FgRed, color.Bold).SprintFunc(),
		green: color.New(color.FgGreen).SprintFunc(),
	}
}

// SetErrorState writes the new state if it changed.
func (c *ConsoleIndicator) SetErrorState(hasError bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.written && c.last == hasError {
		return
	}
	c.last = hasError
	c.written = true

	if hasError {
		fmt.Fprintf(c.out, "%s\n", c.red("✗ Error detected"))
		return
	}
	fmt.Fprintf(c.out, "%s\n", c.green("✓ No errors detected"))
}

// LogWarner writes warnings to the standard logger.
type LogWarner struct{}

// Warn logs message with the notify prefix.
func (LogWarner) Warn(message string) {
	log.Printf("[notify] warning: %s", message)
}

// ConsoleWarner writes warnings in yellow to out.
type ConsoleWarner struct {
	out    io.Writer
	yellow func(a ...interface{}) string
}

// NewConsoleWarner creates a warner writing to out.
func NewConsoleWarner(out io.Writer) *ConsoleWarner {
	return &ConsoleWarner{
		out:    out,
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}

// Warn writes message as a single warning line.
func (w *ConsoleWarner) Warn(message string) {
	fmt.Fprintf(w.out, "%s %s\n", w.yellow("⚠"), message)
}
