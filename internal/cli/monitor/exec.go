package monitor

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/ariel-frischer/errbell/internal/cli/shared"
	"github.com/ariel-frischer/errbell/internal/detect"
	"github.com/ariel-frischer/errbell/internal/engine"
	apperrors "github.com/ariel-frischer/errbell/internal/errors"
	"github.com/ariel-frischer/errbell/internal/gate"
	"github.com/ariel-frischer/errbell/internal/notify"
	"github.com/ariel-frischer/errbell/internal/progress"
	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	var asTask, quiet bool

	cmd := &cobra.Command{
		Use:   "exec [flags] -- <command> [args...]",
		Short: "Run a command and alert if it fails",
		Long: `Run a command and alert if it fails.

By default the command is treated like an interactive terminal command: a
non-zero exit code alerts, and so does error text (error, failed, fatal,
panic, ...) in the output of a command that exits 0.

With --task only the exit code counts, like a build task.

errbell exits with the command's exit code.`,
		Example: `  # Alert when tests fail
  errbell exec -- go test ./...

  # Build task: judge by exit code only
  errbell exec --task -- make build

  # Hide the command output and show a spinner instead
  errbell exec --quiet -- npm run lint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return apperrors.MissingCommand()
			}
			if asTask && cmd.Flags().Changed("terminal") {
				return apperrors.InvalidFlagCombination("--task --terminal", "a run is either a task or a terminal command")
			}
			debug := shared.Debug(cmd)
			shared.ConfigureLogging(debug, false)

			store, err := shared.NewStore(cmd)
			if err != nil {
				return err
			}
			if notify.IsCI() && store.Current().Desktop {
				log.Printf("[exec] CI environment detected, desktop notifications disabled")
				if err := store.ApplySettings(map[string]any{"desktop": false}); err != nil {
					log.Printf("[config] warning: %v", err)
				}
			}

			stderr := cmd.ErrOrStderr()
			rt := engine.New(engine.Options{
				Store:  store,
				Sender: notify.NewSender(),
				State:  notify.NewConsoleIndicator(stderr),
				Warner: notify.NewConsoleWarner(stderr),
				Debug:  debug,
			})

			run := progress.RunInfo{Command: args[0], Args: args[1:], Kind: "terminal"}
			if asTask {
				run.Kind = "task"
			}
			display := progress.NewProgressDisplay(progress.DetectTerminalCapabilities())
			if err := display.Start(run, quiet); err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if quiet {
				stdout, stderr = io.Discard, io.Discard
			}
			code, output, err := runCommand(cmd.Context(), run, stdout, stderr)
			if err != nil {
				display.StopSpinner()
				return err
			}

			var outcome gate.Outcome
			if asTask {
				outcome = rt.TaskProcessEnded(cmd.Context(), detect.TaskProcessEnded{ExitCode: code})
			} else {
				outcome = rt.TerminalExecutionEnded(cmd.Context(), detect.TerminalExecutionEnded{
					ExitCode: code,
					Read:     detect.ChunkReader(output...),
				})
			}

			display.Complete(progress.RunResult{
				ExitCode:      code,
				ErrorDetected: errorDetected(outcome),
				Alerted:       outcome == gate.OutcomeFired,
			})
			rt.Wait()

			switch {
			case code == nil:
				return shared.NewExitError(shared.ExitErrorDetected)
			case *code != 0:
				return shared.NewExitError(*code)
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupMonitoring
	cmd.Flags().BoolVar(&asTask, "task", false, "Judge the command by exit code only")
	cmd.Flags().Bool("terminal", true, "Judge the command by exit code and output (default)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the command output")
	return cmd
}

// errorDetected reports whether the gate saw an error verdict.
func errorDetected(o gate.Outcome) bool {
	switch o {
	case gate.OutcomeFired, gate.OutcomeCooldown, gate.OutcomeInFlight:
		return true
	default:
		return false
	}
}

// chunkRecorder keeps every write as one output chunk, in order.
type chunkRecorder struct {
	mu     sync.Mutex
	chunks []string
}

func (r *chunkRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = append(r.chunks, string(p))
	return len(p), nil
}

func (r *chunkRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.chunks...)
}

// runCommand runs the command, mirroring its output to stdout and stderr
// while recording it. The exit code is nil when the process was killed.
func runCommand(ctx context.Context, run progress.RunInfo, stdout, stderr io.Writer) (*int, []string, error) {
	path, err := exec.LookPath(run.Command)
	if err != nil {
		return nil, nil, apperrors.CommandNotFound(run.Command)
	}

	rec := &chunkRecorder{}
	c := exec.CommandContext(ctx, path, run.Args...)
	c.Stdin = os.Stdin
	c.Stdout = io.MultiWriter(stdout, rec)
	c.Stderr = io.MultiWriter(stderr, rec)

	err = c.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, nil, apperrors.WrapWithMessage(err, apperrors.Runtime, "failed to run "+run.Command)
	}

	code := c.ProcessState.ExitCode()
	if code < 0 {
		return nil, rec.all(), nil
	}
	return &code, rec.all(), nil
}
