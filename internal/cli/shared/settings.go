package shared

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/ariel-frischer/errbell/internal/config"
	apperrors "github.com/ariel-frischer/errbell/internal/errors"
	"github.com/spf13/cobra"
)

// Global flag names
const (
	ConfigFlagName = "config"
	SetFlagName    = "set"
	DebugFlagName  = "debug"
)

// AddGlobalFlags registers the flags every command understands.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(ConfigFlagName, "c", config.DefaultLocalPath, "Path to the project config file")
	cmd.PersistentFlags().StringArray(SetFlagName, nil, "Override a setting for this run (key=value, repeatable)")
	cmd.PersistentFlags().BoolP(DebugFlagName, "d", false, "Enable debug logging")
}

// Debug reports whether --debug was given.
func Debug(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool(DebugFlagName)
	return debug
}

// ConfigureLogging sends the standard logger to stderr when debug or always
// is set, and discards it otherwise.
func ConfigureLogging(debug, always bool) {
	log.SetFlags(log.Ltime)
	if debug || always {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

// NewLoader builds a config loader from --config. An explicitly given path
// must exist; the default project path is optional.
func NewLoader(cmd *cobra.Command) (*config.Loader, error) {
	path, _ := cmd.Flags().GetString(ConfigFlagName)
	if cmd.Flags().Changed(ConfigFlagName) {
		if _, err := os.Stat(path); err != nil {
			return nil, apperrors.ConfigFileNotFound(path)
		}
	}
	return config.NewLoader(path), nil
}

// Overrides parses the --set assignments.
func Overrides(cmd *cobra.Command) (map[string]any, error) {
	pairs, _ := cmd.Flags().GetStringArray(SetFlagName)
	overrides, err := config.ParseAssignments(pairs)
	if err != nil {
		var unknown config.ErrUnknownKey
		if errors.As(err, &unknown) {
			return nil, apperrors.UnknownConfigKey(unknown.Key, config.SortedKeys())
		}
		return nil, apperrors.Wrap(err, apperrors.Configuration, "Run 'errbell config keys' to list keys and their types")
	}
	return overrides, nil
}

// NewStore builds a config store from the global flags with --set values
// applied as host settings.
func NewStore(cmd *cobra.Command) (*config.Store, error) {
	loader, err := NewLoader(cmd)
	if err != nil {
		return nil, err
	}
	overrides, err := Overrides(cmd)
	if err != nil {
		return nil, err
	}

	store := config.NewStore(loader)
	if len(overrides) > 0 {
		if err := store.ApplySettings(overrides); err != nil {
			log.Printf("[config] warning: %v", err)
		}
	}
	return store, nil
}
