// Package cli implements the okrboard command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/okrboard/internal/config"
	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/rpggio/okrboard/internal/logging"
	"github.com/rpggio/okrboard/internal/notify"
	"github.com/rpggio/okrboard/internal/sqlite"
	"github.com/spf13/cobra"
)

// App holds state shared by every command of one invocation.
type App struct {
	DBPath   string
	LogLevel string
	Pretty   bool
	Version  string

	cfg      config.Config
	logger   *slog.Logger
	store    *okr.Store
	activity *activity.Service
	changes  *notify.Broadcaster
	closers  []func() error
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	app := &App{Version: version}

	cmd := &cobra.Command{
		Use:           "okrboard",
		Short:         "Track Objectives and Key Results across projects and planning cycles",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Example: strings.TrimSpace(`
  # Start a project and set its first objective
  okrboard project create --name Acme --team Sales --team Ops
  okrboard objective add --title "Grow revenue" --owner Sales
  okrboard kr add obj-... --title "Close deals" --target 10

  # Review progress
  okrboard project show

  # Round-trip through a spreadsheet
  okrboard export okrs.xlsx
  okrboard import okrs.xlsx

  # Let an assistant create objectives over MCP
  okrboard serve --transport stdio
`),
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Path to the SQLite database (overrides OKRBOARD_DB_PATH)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides OKRBOARD_LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}

	cmd.AddCommand(newProjectCmd(app))
	cmd.AddCommand(newCycleCmd(app))
	cmd.AddCommand(newObjectiveCmd(app))
	cmd.AddCommand(newKeyResultCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newActivityCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newWatchCmd(app))

	closeAfterRun(cmd, app)
	return cmd
}

// closeAfterRun makes every command release the app's resources when it
// returns, whether or not it failed.
func closeAfterRun(cmd *cobra.Command, app *App) {
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, app)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		return errors.Join(err, app.close())
	}
}

// Execute runs the command tree and reports errors on stderr.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		writeErr(cmd, err)
	}
	return err
}

func (app *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if app.DBPath != "" {
		cfg.DB.Path = app.DBPath
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	app.cfg = cfg

	logger, closeLog, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	app.logger = logger
	app.closers = append(app.closers, closeLog)
	return nil
}

// openStore opens the database and loads the store on first use.
func (app *App) openStore(ctx context.Context) (*okr.Store, error) {
	if app.store != nil {
		return app.store, nil
	}

	db, err := sqlite.Open(app.cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db.Close)

	app.activity = activity.NewService(sqlite.NewActivityRepository(db), app.logger)
	app.changes = notify.NewBroadcaster()
	notifiers := notify.Multi{app.changes}
	if app.cfg.NATS.URL != "" {
		nc, err := notify.Connect(app.cfg.NATS.URL)
		if err != nil {
			app.logger.Warn("change notifications disabled", "error", err)
		} else {
			app.closers = append(app.closers, func() error { return nc.Drain() })
			notifiers = append(notifiers, notify.NewNATSPublisher(nc, app.cfg.NATS.Subject, app.logger))
		}
	}

	store := okr.NewStore(sqlite.NewSlotRepository(db), app.activity, notifiers, app.logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	app.store = store
	return store, nil
}

// close releases resources in reverse order of acquisition.
func (app *App) close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}
