package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/errbell/internal/classify"
	"github.com/ariel-frischer/errbell/internal/cli/shared"
	apperrors "github.com/ariel-frischer/errbell/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [text...]",
		Short: "Classify text the way terminal output is classified",
		Long: `Classify text the way errbell classifies the output of a terminal command.

Reads the arguments, or stdin when no arguments are given. ANSI escape
sequences are stripped first. Exits 1 when the text contains an error term.

Error terms: ` + strings.Join(classify.Vocabulary(), ", "),
		Example: `  errbell check "Build FAILED"
  make 2>&1 | errbell check
  errbell check -q "$(git push 2>&1)" || echo "push reported an error"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return apperrors.WrapWithMessage(err, apperrors.Runtime, "failed to read stdin")
				}
				text = string(data)
			}

			term, found := classify.Match(classify.Sanitize(text))
			if !quiet {
				printCheckResult(cmd.OutOrStdout(), term, found)
			}
			if found {
				return shared.NewExitError(shared.ExitErrorDetected)
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupMonitoring
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing, only set the exit code")
	return cmd
}

func printCheckResult(w io.Writer, term string, found bool) {
	if found {
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(w, "%s matched %q\n", red("✗ error detected:"), term)
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintln(w, green("✓ no error detected"))
}
