// Package hostbridge connects errbell to an editor host over newline-delimited
// JSON. The host writes events to the bridge's input; the bridge writes the
// visual error state and user-visible warnings back as JSON lines.
package hostbridge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ariel-frischer/errbell/internal/detect"
)

// Event types accepted on input.
const (
	EventDiagnostics = "diagnostics"
	EventTaskEnd     = "task_end"
	EventTerminalEnd = "terminal_end"
	EventSettings    = "settings"
)

// Message types written on output.
const (
	MessageErrorState = "error_state"
	MessageWarning    = "warning"
)

// Event is one input line.
type Event struct {
	Type string `json:"type"`

	// diagnostics: resource URI to its current diagnostics.
	Diagnostics map[string][]WireDiagnostic `json:"diagnostics,omitempty"`

	// task_end, terminal_end: nil when the host has no exit code.
	ExitCode *int `json:"exitCode,omitempty"`

	// terminal_end: captured output chunks in order. Nil when the host could
	// not capture output; an empty list is captured empty output.
	Output []string `json:"output,omitempty"`

	// settings: host configuration values.
	Settings map[string]any `json:"settings,omitempty"`
}

// WireDiagnostic is a diagnostic as sent by the host.
type WireDiagnostic struct {
	Severity WireSeverity `json:"severity"`
}

// WireSeverity decodes a severity given as an LSP number (1-4) or a name.
type WireSeverity detect.Severity

// UnmarshalJSON accepts 1, "error", "Error" and so on.
func (s *WireSeverity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		sev, err := detect.ParseSeverity(name)
		if err != nil {
			return err
		}
		*s = WireSeverity(sev)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid diagnostic severity %s: %w", data, err)
	}
	if n < int(detect.SeverityError) || n > int(detect.SeverityHint) {
		return fmt.Errorf("diagnostic severity %d out of range 1-4", n)
	}
	*s = WireSeverity(n)
	return nil
}

// DecodeEvent parses a single input line.
func DecodeEvent(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("invalid event: %w", err)
	}
	switch ev.Type {
	case EventDiagnostics, EventTaskEnd, EventTerminalEnd, EventSettings:
		return ev, nil
	case "":
		return Event{}, fmt.Errorf("invalid event: missing type")
	default:
		return Event{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
}

// DiagnosticsValue converts the wire diagnostics.
func (ev Event) DiagnosticsValue() detect.Diagnostics {
	out := make(detect.Diagnostics, len(ev.Diagnostics))
	for uri, diags := range ev.Diagnostics {
		converted := make([]detect.Diagnostic, len(diags))
		for i, d := range diags {
			converted[i] = detect.Diagnostic{Severity: detect.Severity(d.Severity)}
		}
		out[uri] = converted
	}
	return out
}

// TaskValue converts a task_end event.
func (ev Event) TaskValue() detect.TaskProcessEnded {
	return detect.TaskProcessEnded{ExitCode: ev.ExitCode}
}

// TerminalValue converts a terminal_end event.
func (ev Event) TerminalValue() detect.TerminalExecutionEnded {
	out := detect.TerminalExecutionEnded{ExitCode: ev.ExitCode}
	if ev.Output != nil {
		out.Read = detect.ChunkReader(ev.Output...)
	}
	return out
}
