// Package health_test tests the doctor checks for audio, sound, config and desktop support.
// Related: internal/health/health.go
// Tags: health, dependencies, validation, doctor

package health

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/ariel-frischer/errbell/internal/config"
	"github.com/ariel-frischer/errbell/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnvironment is a healthy machine with paplay, a sound and a display.
func fakeEnvironment() Environment {
	return Environment{
		Platform:    "linux",
		PlayerTools: []string{"paplay", "pw-play"},
		LookPath: func(name string) (string, error) {
			if name == "paplay" {
				return "/usr/bin/paplay", nil
			}
			return "", exec.ErrNotFound
		},
		ResolveSound: func(string) (string, error) { return "/usr/share/sounds/bell.oga", nil },
		Load:         func() (config.Snapshot, error) { return config.Defaults(), nil },
		Visual:       func() bool { return true },
	}
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	report := RunHealthChecks(fakeEnvironment())
	require.Len(t, report.Checks, 4)
	assert.True(t, report.Passed)

	names := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Configuration", "Audio player", "Alert sound", "Desktop notifications"}, names)
}

func TestRunHealthChecks_Failures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate     func(*Environment)
		wantPassed bool
		wantFailed string
	}{
		"missing sound fails": {
			mutate: func(e *Environment) {
				e.ResolveSound = func(string) (string, error) { return "", notify.ErrSoundNotFound }
			},
			wantPassed: false,
			wantFailed: "Alert sound",
		},
		"config error fails": {
			mutate: func(e *Environment) {
				e.Load = func() (config.Snapshot, error) {
					return config.Defaults(), errors.New("failed to load config .errbell/config.json")
				}
			},
			wantPassed: false,
			wantFailed: "Configuration",
		},
		"missing player is only a warning": {
			mutate: func(e *Environment) {
				e.LookPath = func(string) (string, error) { return "", exec.ErrNotFound }
			},
			wantPassed: true,
			wantFailed: "Audio player",
		},
		"no desktop support is a warning when desktop is off": {
			mutate: func(e *Environment) {
				e.Visual = func() bool { return false }
			},
			wantPassed: true,
			wantFailed: "Desktop notifications",
		},
		"no desktop support fails when desktop is on": {
			mutate: func(e *Environment) {
				e.Visual = func() bool { return false }
				e.Load = func() (config.Snapshot, error) {
					cfg := config.Defaults()
					cfg.Desktop = true
					return cfg, nil
				}
			},
			wantPassed: false,
			wantFailed: "Desktop notifications",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			env := fakeEnvironment()
			tt.mutate(&env)

			report := RunHealthChecks(env)
			assert.Equal(t, tt.wantPassed, report.Passed)
			for _, c := range report.Checks {
				if c.Name == tt.wantFailed {
					assert.False(t, c.Passed)
					return
				}
			}
			t.Fatalf("check %q not found", tt.wantFailed)
		})
	}
}

func TestCheckAudioPlayer_NoPlatformSupport(t *testing.T) {
	t.Parallel()

	env := fakeEnvironment()
	env.Platform = "plan9"
	env.PlayerTools = nil

	result := CheckAudioPlayer(env)
	assert.False(t, result.Passed)
	assert.True(t, result.Optional)
	assert.Contains(t, result.Message, "plan9")
}

func TestCheckAudioPlayer_PicksFirstAvailable(t *testing.T) {
	t.Parallel()

	env := fakeEnvironment()
	env.LookPath = func(name string) (string, error) {
		if name == "pw-play" {
			return "/usr/bin/pw-play", nil
		}
		return "", exec.ErrNotFound
	}

	result := CheckAudioPlayer(env)
	assert.True(t, result.Passed)
	assert.Contains(t, result.Message, "pw-play")
}

// TestFormatReport tests the report formatting
func TestFormatReport(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		report   *HealthReport
		expected []string
	}{
		"All checks pass": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Configuration", Passed: true, Message: "Configuration loaded"},
					{Name: "Alert sound", Passed: true, Message: "Alert sound /a.wav found"},
				},
				Passed: true,
			},
			expected: []string{"✓ Configuration loaded", "✓ Alert sound /a.wav found"},
		},
		"Warning and failure": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Audio player", Optional: true, Message: "none of paplay found in PATH"},
					{Name: "Alert sound", Message: "alert sound file not found"},
				},
				Passed: false,
			},
			expected: []string{
				"⚠ Audio player: none of paplay found in PATH",
				"✗ Error: Alert sound: alert sound file not found",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			lines := strings.Split(strings.TrimSpace(FormatReport(tt.report)), "\n")
			assert.Equal(t, tt.expected, lines)
		})
	}
}
