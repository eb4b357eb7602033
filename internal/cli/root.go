// errbell - one bell for every error
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/errbell

// Package cli provides Cobra-based CLI commands for errbell.
// It defines the monitoring commands (watch, exec), configuration management
// (config, doctor) and utility commands (check, version).
package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/errbell/internal/cli/config"
	"github.com/ariel-frischer/errbell/internal/cli/monitor"
	"github.com/ariel-frischer/errbell/internal/cli/shared"
	"github.com/ariel-frischer/errbell/internal/cli/util"
	apperrors "github.com/ariel-frischer/errbell/internal/errors"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupMonitoring    = shared.GroupMonitoring
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errbell",
		Short: "errbell error alerts",
		Long: `errbell error alerts

Plays a sound whenever your editor or terminal reports a new error: workspace
diagnostics, failed tasks, and terminal commands that fail or print errors.
Alerts are debounced so a burst of errors rings once.

Source: https://github.com/ariel-frischer/errbell`,
		Example: `  # Run as the editor extension's backend (JSON lines on stdin/stdout)
  errbell watch

  # Ring when a build fails
  errbell exec -- make build

  # Check whether some output looks like an error
  go test ./... 2>&1 | errbell check

  # Verify the sound setup
  errbell doctor`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Define command groups in display order
	cmd.AddGroup(&cobra.Group{ID: GroupMonitoring, Title: "Monitoring:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	cmd.SetHelpCommandGroupID(GroupConfiguration)
	cmd.SetCompletionCommandGroupID(GroupConfiguration)

	shared.AddGlobalFlags(cmd)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return apperrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	// Register commands from subpackages
	monitor.Register(cmd)
	config.Register(cmd)
	util.Register(cmd)
	return cmd
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func printError(err error) {
	if shared.IsExitError(err) {
		return
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		apperrors.PrintError(cliErr)
		return
	}
	fmt.Fprint(os.Stderr, apperrors.FormatSimpleError(err, apperrors.Runtime))
}
