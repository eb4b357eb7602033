// Package monitor provides the CLI commands that feed events into errbell:
// watch (editor host bridge) and exec (wrap a single command).
package monitor

import (
	"github.com/spf13/cobra"
)

// Register adds the monitoring commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newExecCmd())
}
