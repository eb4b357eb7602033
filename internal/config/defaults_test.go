// Package config_test tests default configuration values.
// Related: internal/config/defaults.go
// Tags: config, defaults
package config

import (
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	d := Defaults()
	assert.True(t, d.Enabled)
	assert.Equal(t, 100, d.Volume)
	assert.Equal(t, 1500, d.Cooldown)
	assert.True(t, d.OnDiagnosticErrors)
	assert.True(t, d.OnTaskErrors)
	assert.True(t, d.OnTerminalErrors)
	assert.Empty(t, d.SoundFile)
	assert.Equal(t, 10000, d.DrainTimeout)
	assert.False(t, d.Desktop)
}

func TestGetDefaults_MatchesSnapshot(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	for key, value := range GetDefaults() {
		require.NoError(t, k.Set(key, value))
	}
	var snap Snapshot
	require.NoError(t, k.Unmarshal("", &snap))
	assert.Equal(t, Defaults(), snap)
}

func TestDefaults_Valid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, newValidator().Struct(Defaults()))
}
