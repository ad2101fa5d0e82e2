package cli

import (
	"github.com/spf13/cobra"
)

func newCycleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cycle",
		Aliases: []string{"cycles"},
		Short:   "Planning cycle commands for the current project",
	}
	cmd.AddCommand(newCycleAddCmd(app))
	cmd.AddCommand(newCycleActivateCmd(app))
	cmd.AddCommand(newCycleDeleteCmd(app))
	return cmd
}

func newCycleAddCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an Archived cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			c, err := store.AddCycle(cmd.Context(), name, start, end)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Cycle name, e.g. Q3 2026")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD), empty for open-ended")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCycleActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <cycle-id>",
		Short: "Make a cycle the Active one; every other cycle becomes Archived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.SetActiveCycle(cmd.Context(), args[0]); err != nil {
				return err
			}
			p, _ := store.CurrentProject()
			return writeOut(cmd, app, p.Cycles)
		},
	}
}

func newCycleDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cycle-id>",
		Short: "Delete a cycle and its objectives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.DeleteCycle(cmd.Context(), args[0]); err != nil {
				return err
			}
			p, _ := store.CurrentProject()
			return writeOut(cmd, app, p.Cycles)
		},
	}
}
