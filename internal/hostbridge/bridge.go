package hostbridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ariel-frischer/errbell/internal/detect"
	"github.com/ariel-frischer/errbell/internal/gate"
)

// maxLineSize bounds a single input line. Terminal output can be large.
const maxLineSize = 16 * 1024 * 1024

// Handler receives decoded host events. *engine.Runtime satisfies it.
type Handler interface {
	UpdateDiagnostics(ctx context.Context, d detect.Diagnostics) gate.Outcome
	TaskProcessEnded(ctx context.Context, ev detect.TaskProcessEnded) gate.Outcome
	TerminalExecutionEnded(ctx context.Context, ev detect.TerminalExecutionEnded) gate.Outcome
	ApplySettings(settings map[string]any) error
}

// Serve reads events from r and hands them to h one at a time, in order.
// Malformed lines are logged and skipped. Serve returns nil at end of input
// and ctx.Err() when ctx is done.
func Serve(ctx context.Context, r io.Reader, h Handler) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading host events: %w", err)
					}
				default:
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}
			handleLine(ctx, line, h)
		}
	}
}

func handleLine(ctx context.Context, line []byte, h Handler) {
	ev, err := DecodeEvent(line)
	if err != nil {
		log.Printf("[hostbridge] warning: skipping line: %v", err)
		return
	}

	switch ev.Type {
	case EventDiagnostics:
		h.UpdateDiagnostics(ctx, ev.DiagnosticsValue())
	case EventTaskEnd:
		h.TaskProcessEnded(ctx, ev.TaskValue())
	case EventTerminalEnd:
		h.TerminalExecutionEnded(ctx, ev.TerminalValue())
	case EventSettings:
		if err := h.ApplySettings(ev.Settings); err != nil {
			log.Printf("[hostbridge] warning: settings: %v", err)
		}
	}
}
