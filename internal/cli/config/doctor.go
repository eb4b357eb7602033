package config

import (
	"fmt"

	"github.com/ariel-frischer/errbell/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/errbell/internal/config"
	"github.com/ariel-frischer/errbell/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return newDoctorCmdWith(health.DefaultEnvironment)
}

func newDoctorCmdWith(environment func(*cfgpkg.Loader) health.Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Run health checks for errbell dependencies (doc)",
		Long: `Run health checks to verify that errbell can alert on this machine.

This command checks:
  - Configuration loads without errors
  - An audio player is installed (optional, errbell beeps without one)
  - The alert sound file exists
  - Desktop notifications work (required only when desktop is on)

Each check will display a checkmark if passed or an X with an error message if failed.`,
		Example: `  # Check all dependencies
  errbell doctor

  # Check with a project config
  errbell doctor --config .errbell/config.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := shared.NewLoader(cmd)
			if err != nil {
				return err
			}

			report := health.RunHealthChecks(environment(loader))
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

			if !report.Passed {
				return shared.NewExitError(shared.ExitMissingDependency)
			}
			return nil
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	return cmd
}
