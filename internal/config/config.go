// Package config builds immutable configuration snapshots for errbell.
//
// Values are layered with koanf: defaults, then the global config file, then
// the local config file, then settings pushed by the host, then environment
// variables. A snapshot is always usable: unreadable sources are skipped and
// invalid fields fall back to their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "ERRBELL_"

// Snapshot is the set of toggles and thresholds active at one point in time.
// It is a plain value: copies are independent and two snapshots built from
// the same values compare equal.
type Snapshot struct {
	Enabled            bool   `koanf:"enabled" yaml:"enabled" json:"enabled"`
	Volume             int    `koanf:"volume" yaml:"volume" json:"volume" validate:"min=0,max=100"`
	Cooldown           int    `koanf:"cooldown" yaml:"cooldown" json:"cooldown" validate:"min=0"`
	OnDiagnosticErrors bool   `koanf:"on_diagnostic_errors" yaml:"on_diagnostic_errors" json:"on_diagnostic_errors"`
	OnTaskErrors       bool   `koanf:"on_task_errors" yaml:"on_task_errors" json:"on_task_errors"`
	OnTerminalErrors   bool   `koanf:"on_terminal_errors" yaml:"on_terminal_errors" json:"on_terminal_errors"`
	SoundFile          string `koanf:"sound_file" yaml:"sound_file" json:"sound_file"`
	DrainTimeout       int    `koanf:"drain_timeout" yaml:"drain_timeout" json:"drain_timeout" validate:"min=0"`
	Desktop            bool   `koanf:"desktop" yaml:"desktop" json:"desktop"`
}

// CooldownDuration returns Cooldown as a time.Duration.
func (s Snapshot) CooldownDuration() time.Duration {
	return time.Duration(s.Cooldown) * time.Millisecond
}

// DrainTimeoutDuration returns DrainTimeout as a time.Duration.
// Zero means the terminal output drain is unbounded.
func (s Snapshot) DrainTimeoutDuration() time.Duration {
	return time.Duration(s.DrainTimeout) * time.Millisecond
}

// Loader reads snapshots from the config files and the environment.
type Loader struct {
	// GlobalPath is the user-wide config file. Empty disables it.
	GlobalPath string
	// LocalPath is the project config file. Empty disables it.
	LocalPath string
}

// NewLoader returns a Loader for the default global path and the given local path.
func NewLoader(localPath string) *Loader {
	return &Loader{
		GlobalPath: DefaultGlobalPath(),
		LocalPath:  localPath,
	}
}

// DefaultGlobalPath returns ~/.errbell/config.json, or empty if the home
// directory cannot be determined.
func DefaultGlobalPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".errbell", "config.json")
}

// DefaultLocalPath is the project config file used when no --config is given.
const DefaultLocalPath = ".errbell/config.json"

// Paths returns the config file paths this loader reads, in priority order.
func (l *Loader) Paths() []string {
	var paths []string
	for _, p := range []string{l.GlobalPath, l.LocalPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Load builds a snapshot. overrides holds settings pushed by the host and may
// use either the config keys or the host's camelCase names.
//
// Load never fails to produce a snapshot. The returned error reports sources
// that could not be read and fields that were reset to defaults; callers log
// it and carry on.
func (l *Loader) Load(overrides map[string]any) (Snapshot, error) {
	k := koanf.New(".")
	var errs []error

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	for _, path := range l.Paths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), json.Parser()); err != nil {
			errs = append(errs, fmt.Errorf("failed to load config %s: %w", path, err))
			continue
		}
		for _, key := range fk.Keys() {
			if canonical, ok := NormalizeKey(key); ok {
				k.Set(canonical, fk.Get(key))
			}
		}
	}

	for key, value := range overrides {
		if canonical, ok := NormalizeKey(key); ok {
			k.Set(canonical, value)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		errs = append(errs, fmt.Errorf("failed to load environment: %w", err))
	}

	if err := coerceAll(k); err != nil {
		errs = append(errs, err)
	}

	snap := Defaults()
	if err := k.Unmarshal("", &snap); err != nil {
		errs = append(errs, fmt.Errorf("failed to unmarshal config: %w", err))
		snap = Defaults()
	}

	if err := resetInvalid(&snap); err != nil {
		errs = append(errs, err)
	}

	return snap, errors.Join(errs...)
}

// coerceAll converts every known key in k to its schema type. Keys holding a
// value of the wrong type are removed so they fall back to their default
// without discarding the rest of the configuration. Unknown keys are removed
// silently.
func coerceAll(k *koanf.Koanf) error {
	var invalid []string
	for _, key := range k.Keys() {
		value, err := CoerceValue(key, k.Get(key))
		if err != nil {
			k.Delete(key)
			var unknown ErrUnknownKey
			if !errors.As(err, &unknown) {
				invalid = append(invalid, err.Error())
			}
			continue
		}
		k.Set(key, value)
	}
	if len(invalid) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config values, using defaults for: %s", strings.Join(invalid, ", "))
}

// resetInvalid reverts each field that fails validation to its default.
func resetInvalid(s *Snapshot) error {
	err := newValidator().Struct(*s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		*s = Defaults()
		return fmt.Errorf("config validation failed: %w", err)
	}

	def := Defaults()
	var fields []string
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Volume":
			s.Volume = def.Volume
		case "Cooldown":
			s.Cooldown = def.Cooldown
		case "DrainTimeout":
			s.DrainTimeout = def.DrainTimeout
		}
		fields = append(fields, fmt.Sprintf("%s=%v (%s)", fe.Field(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("config validation failed, using defaults for: %s", strings.Join(fields, ", "))
}

// newValidator returns a validator that reports fields by their config key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
	})
	return v
}

// envTransform converts environment variable names to config keys.
// Example: ERRBELL_ON_TASK_ERRORS -> on_task_errors
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
