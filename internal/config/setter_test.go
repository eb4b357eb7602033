// Package config_test tests writing single keys to a config file.
// Related: internal/config/setter.go
// Tags: config, set, unset, atomic-write
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestSetConfigValue_CreatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	parsed, err := SetConfigValue(path, "onTaskErrors", "false")
	require.NoError(t, err)
	assert.Equal(t, "on_task_errors", parsed.Key)

	assert.Equal(t, map[string]any{"on_task_errors": false}, readJSON(t, path))
}

func TestSetConfigValue_KeepsOtherKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `{"volume": 20, "desktop": true}`)
	_, err := SetConfigValue(path, "volume", "70")
	require.NoError(t, err)

	got := readJSON(t, path)
	assert.Equal(t, float64(70), got["volume"])
	assert.Equal(t, true, got["desktop"])

	snap, err := (&Loader{LocalPath: path}).Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 70, snap.Volume)
}

func TestSetConfigValue_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key, value string
		wantErr    string
	}{
		"unknown key":  {key: "colour", value: "red", wantErr: "unknown configuration key"},
		"bad type":     {key: "cooldown", value: "soon", wantErr: "invalid integer"},
		"out of range": {key: "volume", value: "250", wantErr: "out of range"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, t.TempDir(), `{"volume": 20}`)
			_, err := SetConfigValue(path, tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, float64(20), readJSON(t, path)["volume"], "file must be untouched")
		})
	}
}

func TestSetConfigValue_MalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `{broken`)
	_, err := SetConfigValue(path, "volume", "5")
	assert.ErrorContains(t, err, "parsing config file")
}

func TestUnsetConfigValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `{"volume": 20, "desktop": true}`)
	require.NoError(t, UnsetConfigValue(path, "volume"))
	assert.Equal(t, map[string]any{"desktop": true}, readJSON(t, path))

	require.NoError(t, UnsetConfigValue(path, "cooldown"), "absent key is a no-op")
	require.NoError(t, UnsetConfigValue(filepath.Join(dir, "missing.json"), "volume"))
	assert.Error(t, UnsetConfigValue(path, "colour"))
}

func TestWriteAtomically_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, writeAtomically(path, []byte("{}\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.json", entries[0].Name())
}
