package monitor

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/errbell/internal/hostbridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_EmitsInitialStateAndEndsAtEOF(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newTestRoot(&stdout, &stderr)
	root.SetIn(strings.NewReader(`{"type":"task_end","exitCode":0}` + "\n"))
	root.SetArgs([]string{"--set", "volume=0", "watch", "--no-reload"})

	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.NotEmpty(t, lines)

	var first hostbridge.Message
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, hostbridge.MessageErrorState, first.Type)
	require.NotNil(t, first.HasError)
	assert.False(t, *first.HasError)
}

func TestWatchCmd_ClearsErrorStateAtEOF(t *testing.T) {
	wav := filepath.Join(t.TempDir(), "alert.wav")
	require.NoError(t, os.WriteFile(wav, []byte("RIFF"), 0o644))

	var stdout, stderr bytes.Buffer
	root := newTestRoot(&stdout, &stderr)
	root.SetIn(strings.NewReader(`{"type":"task_end","exitCode":1}` + "\n"))
	root.SetArgs([]string{"--set", "volume=0", "--set", "sound_file=" + wav, "watch", "--no-reload"})

	require.NoError(t, root.Execute())

	var states []bool
	for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
		var msg hostbridge.Message
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		if msg.Type == hostbridge.MessageErrorState {
			require.NotNil(t, msg.HasError)
			states = append(states, *msg.HasError)
		}
	}
	require.GreaterOrEqual(t, len(states), 3)
	assert.Contains(t, states, true, "the failed task raises the error state")
	assert.False(t, states[len(states)-1], "the host is left with a cleared state")
}

func TestWatchCmd_RejectsArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newTestRoot(&stdout, &stderr)
	root.SetArgs([]string{"watch", "extra"})
	assert.Error(t, root.Execute())
}
