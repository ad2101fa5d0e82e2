package cli

import (
	"time"

	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var (
		opts       activity.ListActivityOptions
		kinds      []string
		since      time.Duration
		allProject bool
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "List recent changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if p, ok := store.CurrentProject(); ok && !allProject {
				opts.ProjectID = p.ID
			}
			for _, kind := range kinds {
				t, err := activity.ParseType(kind)
				if err != nil {
					return err
				}
				opts.Types = append(opts.Types, t)
			}
			if since > 0 {
				opts.Since = time.Now().Add(-since)
			}
			entries, err := app.activity.GetRecentActivity(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, entries)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "Maximum number of entries")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Entries to skip")
	cmd.Flags().StringSliceVar(&kinds, "type", nil, "Only entries of these types, e.g. objective_created (repeatable)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this, e.g. 24h")
	cmd.Flags().BoolVar(&allProject, "all", false, "Include every project, not only the current one")

	cmd.AddCommand(newActivityPruneCmd(app))
	return cmd
}

func newActivityPruneCmd(app *App) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete activity entries older than a retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.openStore(cmd.Context()); err != nil {
				return err
			}
			n, err := app.activity.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"removed": n})
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "Retention period")
	return cmd
}
