// Package health runs the environment checks behind errbell doctor.
package health

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/errbell/internal/config"
	"github.com/ariel-frischer/errbell/internal/notify"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks report a problem without failing the report.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Add appends a check result and updates the overall status.
func (r *HealthReport) Add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed && !c.Optional {
		r.Passed = false
	}
}

// Environment is what the checks inspect. Tests replace its functions.
type Environment struct {
	Platform     string
	PlayerTools  []string
	LookPath     func(name string) (string, error)
	ResolveSound func(soundFile string) (string, error)
	Load         func() (config.Snapshot, error)
	Visual       func() bool
}

// DefaultEnvironment inspects the real machine using loader for config.
func DefaultEnvironment(loader *config.Loader) Environment {
	return Environment{
		Platform:     notify.Platform(),
		PlayerTools:  notify.PlayerTools(),
		LookPath:     exec.LookPath,
		ResolveSound: notify.ResolveSound,
		Load:         func() (config.Snapshot, error) { return loader.Load(nil) },
		Visual:       func() bool { return notify.NewSender().VisualAvailable() },
	}
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(env Environment) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 4),
		Passed: true,
	}

	cfg, cfgCheck := CheckConfig(env)
	report.Add(cfgCheck)
	report.Add(CheckAudioPlayer(env))
	report.Add(CheckSoundFile(env, cfg))
	report.Add(CheckDesktop(env, cfg))

	return report
}

// CheckConfig loads the configuration. Load problems are reported but the
// returned snapshot is always usable for the remaining checks.
func CheckConfig(env Environment) (config.Snapshot, CheckResult) {
	cfg, err := env.Load()
	if err != nil {
		return cfg, CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return cfg, CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: "Configuration loaded",
	}
}

// CheckAudioPlayer checks that the platform audio player is installed.
// errbell still beeps without one, so the check is optional.
func CheckAudioPlayer(env Environment) CheckResult {
	if len(env.PlayerTools) == 0 {
		return CheckResult{
			Name:     "Audio player",
			Optional: true,
			Message:  fmt.Sprintf("no audio player support on %s, alerts use a plain beep", env.Platform),
		}
	}
	for _, tool := range env.PlayerTools {
		if _, err := env.LookPath(tool); err == nil {
			return CheckResult{
				Name:    "Audio player",
				Passed:  true,
				Message: fmt.Sprintf("Audio player %s found", tool),
			}
		}
	}
	return CheckResult{
		Name:     "Audio player",
		Optional: true,
		Message:  fmt.Sprintf("none of %s found in PATH, alerts use a plain beep", strings.Join(env.PlayerTools, ", ")),
	}
}

// CheckSoundFile checks that the configured (or default) alert sound exists.
func CheckSoundFile(env Environment, cfg config.Snapshot) CheckResult {
	path, err := env.ResolveSound(cfg.SoundFile)
	if err != nil {
		return CheckResult{
			Name:    "Alert sound",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return CheckResult{
		Name:    "Alert sound",
		Passed:  true,
		Message: fmt.Sprintf("Alert sound %s found", path),
	}
}

// CheckDesktop checks desktop notification support. It only matters when
// desktop notifications are switched on.
func CheckDesktop(env Environment, cfg config.Snapshot) CheckResult {
	if env.Visual() {
		return CheckResult{
			Name:     "Desktop notifications",
			Passed:   true,
			Optional: true,
			Message:  "Desktop notifications available",
		}
	}
	return CheckResult{
		Name:     "Desktop notifications",
		Optional: !cfg.Desktop,
		Message:  "native desktop notifications unavailable, falling back to beeep",
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		switch {
		case check.Passed:
			fmt.Fprintf(&b, "✓ %s\n", check.Message)
		case check.Optional:
			fmt.Fprintf(&b, "⚠ %s: %s\n", check.Name, check.Message)
		default:
			fmt.Fprintf(&b, "✗ Error: %s: %s\n", check.Name, check.Message)
		}
	}

	return b.String()
}
