package hostbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ariel-frischer/errbell/internal/detect"
	"github.com/ariel-frischer/errbell/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu       sync.Mutex
	calls    []string
	settings []map[string]any
	terminal []detect.TerminalExecutionEnded
}

func (h *recordingHandler) record(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, name)
}

func (h *recordingHandler) UpdateDiagnostics(context.Context, detect.Diagnostics) gate.Outcome {
	h.record(EventDiagnostics)
	return gate.OutcomeNoVerdict
}

func (h *recordingHandler) TaskProcessEnded(context.Context, detect.TaskProcessEnded) gate.Outcome {
	h.record(EventTaskEnd)
	return gate.OutcomeFired
}

func (h *recordingHandler) TerminalExecutionEnded(_ context.Context, ev detect.TerminalExecutionEnded) gate.Outcome {
	h.record(EventTerminalEnd)
	h.mu.Lock()
	h.terminal = append(h.terminal, ev)
	h.mu.Unlock()
	return gate.OutcomeNoVerdict
}

func (h *recordingHandler) ApplySettings(settings map[string]any) error {
	h.record(EventSettings)
	h.mu.Lock()
	h.settings = append(h.settings, settings)
	h.mu.Unlock()
	return nil
}

func TestServe_DispatchesInOrder(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`{"type":"settings","settings":{"cooldown":2000}}`,
		``,
		`{"type":"diagnostics","diagnostics":{}}`,
		`garbage`,
		`{"type":"task_end","exitCode":1}`,
		`{"type":"terminal_end","exitCode":0,"output":["ok"]}`,
	}, "\n")

	h := &recordingHandler{}
	require.NoError(t, Serve(context.Background(), strings.NewReader(input), h))

	assert.Equal(t, []string{EventSettings, EventDiagnostics, EventTaskEnd, EventTerminalEnd}, h.calls)
	assert.Equal(t, float64(2000), h.settings[0]["cooldown"])
	require.Len(t, h.terminal, 1)
	assert.NotNil(t, h.terminal[0].Read)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, pr, &recordingHandler{})
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

// lockedBuffer is a bytes.Buffer safe for concurrent writers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func TestEmitter(t *testing.T) {
	t.Parallel()

	var out lockedBuffer
	e := NewEmitter(&out)
	e.SetErrorState(true)
	e.Warn("alert sound file not found")
	e.SetErrorState(false)

	assert.Equal(t, []string{
		`{"type":"error_state","hasError":true}`,
		`{"type":"warning","message":"alert sound file not found"}`,
		`{"type":"error_state","hasError":false}`,
	}, out.lines())
}

func TestEmitter_ConcurrentWritesStayWholeLines(t *testing.T) {
	t.Parallel()

	var out lockedBuffer
	e := NewEmitter(&out)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.SetErrorState(i%2 == 0)
		}()
	}
	wg.Wait()

	lines := out.lines()
	require.Len(t, lines, 32)
	for _, line := range lines {
		var m Message
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		assert.Equal(t, MessageErrorState, m.Type)
		require.NotNil(t, m.HasError)
	}
}
