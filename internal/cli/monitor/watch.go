package monitor

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/errbell/internal/cli/shared"
	"github.com/ariel-frischer/errbell/internal/engine"
	apperrors "github.com/ariel-frischer/errbell/internal/errors"
	"github.com/ariel-frischer/errbell/internal/hostbridge"
	"github.com/ariel-frischer/errbell/internal/notify"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var noReload bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Serve an editor host over JSON lines on stdin/stdout",
		Long: `Serve an editor host over newline-delimited JSON.

The host writes one event per line on stdin:
  {"type":"diagnostics","diagnostics":{"file:///main.go":[{"severity":1}]}}
  {"type":"task_end","exitCode":1}
  {"type":"terminal_end","exitCode":0,"output":["chunk", "..."]}
  {"type":"settings","settings":{"cooldown":2000}}

errbell writes the visual error state and warnings back on stdout:
  {"type":"error_state","hasError":true}
  {"type":"warning","message":"..."}

Config files are watched and reloaded on change. Logs go to stderr.`,
		Example: `  # Run as the backend of an editor extension
  errbell watch

  # Try it by hand
  echo '{"type":"task_end","exitCode":1}' | errbell watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug := shared.Debug(cmd)
			shared.ConfigureLogging(debug, true)

			store, err := shared.NewStore(cmd)
			if err != nil {
				return err
			}

			emitter := hostbridge.NewEmitter(cmd.OutOrStdout())
			rt := engine.New(engine.Options{
				Store:  store,
				Sender: notify.NewSender(),
				State:  emitter,
				Warner: notify.Warners{emitter, notify.LogWarner{}},
				Debug:  debug,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !noReload {
				go func() {
					if err := store.Watch(ctx); err != nil {
						log.Printf("[config] warning: %v", err)
					}
				}()
			}

			emitter.SetErrorState(false)
			rt.Start(ctx)

			err = hostbridge.Serve(ctx, cmd.InOrStdin(), rt)
			rt.Wait()
			// A pending clear timer dies with the process.
			emitter.SetErrorState(false)
			if err != nil && !errors.Is(err, context.Canceled) {
				return apperrors.HostBridgeError(err)
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupMonitoring
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Do not reload when config files change")
	return cmd
}
