package hostbridge

import (
	"context"
	"testing"

	"github.com/ariel-frischer/errbell/internal/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line        string
		wantType    string
		wantErr     bool
		errContains string
	}{
		"diagnostics": {
			line:     `{"type":"diagnostics","diagnostics":{"file:///a.go":[{"severity":1}]}}`,
			wantType: EventDiagnostics,
		},
		"task end": {
			line:     `{"type":"task_end","exitCode":2}`,
			wantType: EventTaskEnd,
		},
		"terminal end": {
			line:     `{"type":"terminal_end","exitCode":0,"output":["ok"]}`,
			wantType: EventTerminalEnd,
		},
		"settings": {
			line:     `{"type":"settings","settings":{"volume":30}}`,
			wantType: EventSettings,
		},
		"not json": {
			line:        `hello`,
			wantErr:     true,
			errContains: "invalid event",
		},
		"missing type": {
			line:        `{"exitCode":1}`,
			wantErr:     true,
			errContains: "missing type",
		},
		"unknown type": {
			line:        `{"type":"focus"}`,
			wantErr:     true,
			errContains: "unknown event type",
		},
		"bad severity": {
			line:        `{"type":"diagnostics","diagnostics":{"a":[{"severity":9}]}}`,
			wantErr:     true,
			errContains: "out of range",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ev, err := DecodeEvent([]byte(tt.line))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, ev.Type)
		})
	}
}

func TestWireSeverity(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw  string
		want detect.Severity
	}{
		"number":          {raw: `1`, want: detect.SeverityError},
		"hint number":     {raw: `4`, want: detect.SeverityHint},
		"name":            {raw: `"warning"`, want: detect.SeverityWarning},
		"capitalized":     {raw: `"Error"`, want: detect.SeverityError},
		"short info name": {raw: `"info"`, want: detect.SeverityInformation},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var s WireSeverity
			require.NoError(t, s.UnmarshalJSON([]byte(tt.raw)))
			assert.Equal(t, tt.want, detect.Severity(s))
		})
	}
}

func TestEvent_DiagnosticsValue(t *testing.T) {
	t.Parallel()

	ev, err := DecodeEvent([]byte(`{"type":"diagnostics","diagnostics":{
		"file:///a.go":[{"severity":1},{"severity":"warning"},{"severity":"error"}],
		"file:///b.go":[]
	}}`))
	require.NoError(t, err)

	d := ev.DiagnosticsValue()
	assert.Equal(t, 2, d.ErrorCount())
	assert.Contains(t, d, "file:///b.go")
	assert.Empty(t, d["file:///b.go"])
}

func TestEvent_ExitCodePresence(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line string
		want *int
	}{
		"code present": {line: `{"type":"task_end","exitCode":3}`, want: detect.Code(3)},
		"zero":         {line: `{"type":"task_end","exitCode":0}`, want: detect.Code(0)},
		"null":         {line: `{"type":"task_end","exitCode":null}`},
		"omitted":      {line: `{"type":"task_end"}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ev, err := DecodeEvent([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.TaskValue().ExitCode)
		})
	}
}

func TestEvent_TerminalValue(t *testing.T) {
	t.Parallel()

	t.Run("output captured", func(t *testing.T) {
		t.Parallel()
		ev, err := DecodeEvent([]byte(`{"type":"terminal_end","exitCode":0,"output":["fatal: ","nope"]}`))
		require.NoError(t, err)

		term := ev.TerminalValue()
		require.NotNil(t, term.Read)
		assert.Equal(t, "fatal: nope", collect(term.Read))
	})

	t.Run("empty output is still captured", func(t *testing.T) {
		t.Parallel()
		ev, err := DecodeEvent([]byte(`{"type":"terminal_end","exitCode":0,"output":[]}`))
		require.NoError(t, err)
		assert.NotNil(t, ev.TerminalValue().Read)
	})

	t.Run("output unavailable", func(t *testing.T) {
		t.Parallel()
		ev, err := DecodeEvent([]byte(`{"type":"terminal_end","exitCode":0}`))
		require.NoError(t, err)
		assert.Nil(t, ev.TerminalValue().Read)
	})
}

func collect(read detect.OutputReader) string {
	var out string
	for chunk := range read(context.Background()) {
		out += chunk
	}
	return out
}
