package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpggio/okrboard/internal/notify"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever another okrboard process changes the data",
		Long: `Subscribe to change notifications on NATS (OKRBOARD_NATS_URL) and print a
line for each one. With --show, reload and render the current project after
every change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.NATS.URL == "" {
				return errors.New("watch needs a NATS server: set OKRBOARD_NATS_URL")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			nc, err := notify.Connect(app.cfg.NATS.URL)
			if err != nil {
				return err
			}
			defer nc.Close()

			changes := notify.NewBroadcaster()
			ch, cancel := changes.Subscribe()
			defer cancel()

			relayErr := make(chan error, 1)
			go func() { relayErr <- notify.Relay(ctx, nc, app.cfg.NATS.Subject, changes) }()
			app.logger.Info("watching for changes", "subject", app.cfg.NATS.Subject)

			for {
				select {
				case <-ctx.Done():
					return <-relayErr
				case err := <-relayErr:
					return err
				case <-ch:
					fmt.Fprintf(cmd.OutOrStdout(), "%s changed\n", time.Now().Format(time.TimeOnly))
					if !show {
						continue
					}
					store, err := app.openStore(ctx)
					if err != nil {
						return err
					}
					if err := store.Load(ctx); err != nil {
						return err
					}
					if p, ok := store.CurrentProject(); ok {
						fmt.Fprintln(cmd.OutOrStdout(), renderProject(p, false))
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Render the current project after each change")
	return cmd
}
