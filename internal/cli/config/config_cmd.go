package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/errbell/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/errbell/internal/config"
	apperrors "github.com/ariel-frischer/errbell/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage errbell configuration",
		Long: `Manage errbell configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (ERRBELL_*)
  2. Settings pushed by the editor, or --set
  3. Project config (.errbell/config.json, or --config)
  4. Global config (~/.errbell/config.json)
  5. Built-in defaults`,
		Example: `  # Show current configuration
  errbell config show

  # List the available keys
  errbell config keys

  # Lower the alert volume for this project
  errbell config set volume 40`,
	}
	cmd.GroupID = shared.GroupConfiguration

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newValidateCmd())
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current effective configuration",
		Long: `Display the current effective configuration values.

Shows the merged result of defaults, the config files, --set values and
environment variables. Use --json to print JSON instead of YAML.`,
		Example: `  # Show configuration in YAML format (default)
  errbell config show

  # Show configuration in JSON format
  errbell config show --json`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	useJSON, _ := cmd.Flags().GetBool("json")

	loader, err := shared.NewLoader(cmd)
	if err != nil {
		return err
	}
	overrides, err := shared.Overrides(cmd)
	if err != nil {
		return err
	}

	snap, err := loader.Load(overrides)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.YellowString("⚠"), err)
	}

	fmt.Fprintf(out, "# Configuration Sources\n")
	fmt.Fprintf(out, "# Global config:  %s\n", describePath(loader.GlobalPath))
	fmt.Fprintf(out, "# Project config: %s\n", describePath(loader.LocalPath))
	fmt.Fprintf(out, "\n")

	if useJSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func describePath(path string) string {
	if path == "" {
		return "(disabled)"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (not found)"
	}
	return path
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List all available configuration keys",
		Long:  `Display all valid configuration keys with their types, defaults and editor setting names.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printKeys(cmd.OutOrStdout())
			return nil
		},
	}
}

func printKeys(out io.Writer) {
	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		fmt.Fprintf(out, "  %-22s %-7s default: %v\n", key, schema.Type, formatDefault(schema.Default))
		fmt.Fprintf(out, "    %s\n", schema.Description)
		if schema.HostName != key {
			fmt.Fprintf(out, "    editor setting: errbell.%s\n", schema.HostName)
		}
		fmt.Fprintln(out)
	}
}

func formatDefault(v interface{}) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the project or global config file.

By default the value is written to the project config (--config, default
.errbell/config.json). Use --global to write ~/.errbell/config.json instead.

The value is parsed and validated against the key's type and range.`,
		Example: `  # Turn off terminal alerts for this project
  errbell config set on_terminal_errors false

  # Editor setting names work too
  errbell config set onTaskErrors false

  # Use a custom sound everywhere
  errbell config set sound_file ~/sounds/bell.wav --global`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
	cmd.Flags().Bool("global", false, "Write the global config instead of the project config")
	return cmd
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}

	parsed, err := cfgpkg.SetConfigValue(filePath, key, value)
	if err != nil {
		return configWriteError(key, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s config (%s)\n", parsed.Key, parsed.Parsed, scope, filePath)
	return nil
}

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Long:  `Remove a key from the project or global config file so lower layers apply again.`,
		Example: `  # Go back to the default volume
  errbell config unset volume`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, scope, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			if err := cfgpkg.UnsetConfigValue(filePath, args[0]); err != nil {
				return configWriteError(args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s in %s config (%s)\n", args[0], scope, filePath)
			return nil
		},
	}
	cmd.Flags().Bool("global", false, "Write the global config instead of the project config")
	return cmd
}

func resolveConfigPath(cmd *cobra.Command) (filePath, scope string, err error) {
	global, _ := cmd.Flags().GetBool("global")
	if global {
		path := cfgpkg.DefaultGlobalPath()
		if path == "" {
			return "", "", apperrors.NewConfigError(
				"cannot determine the home directory for the global config",
				"Set HOME or use the project config instead",
			)
		}
		return path, "global", nil
	}
	path, _ := cmd.Flags().GetString(shared.ConfigFlagName)
	return path, "project", nil
}

func configWriteError(key string, err error) error {
	var unknown cfgpkg.ErrUnknownKey
	if errors.As(err, &unknown) {
		return apperrors.UnknownConfigKey(key, cfgpkg.SortedKeys())
	}
	return apperrors.Wrap(err, apperrors.Configuration, "Run 'errbell config keys' to list keys and their types")
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config files for mistakes",
		Long: `Check the global and project config files for JSON syntax errors,
wrong value types and out-of-range values. Unknown keys are reported as
warnings because errbell ignores them.`,
		Args: cobra.NoArgs,
		RunE: runConfigValidate,
	}
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	loader, err := shared.NewLoader(cmd)
	if err != nil {
		return err
	}

	for _, path := range loader.Paths() {
		if _, statErr := os.Stat(path); statErr != nil {
			fmt.Fprintf(out, "- %s (not found, skipped)\n", path)
			continue
		}
		warnings, err := cfgpkg.ValidateFile(path)
		for _, w := range warnings {
			fmt.Fprintf(out, "%s %s: %s\n", color.YellowString("⚠"), path, w)
		}
		if err != nil {
			return apperrors.ConfigParseError(path, err)
		}
		fmt.Fprintf(out, "%s %s\n", color.GreenString("✓"), path)
	}
	return nil
}
