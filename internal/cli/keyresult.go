package cli

import (
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/spf13/cobra"
)

func newKeyResultCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kr",
		Aliases: []string{"key-result"},
		Short:   "Key result commands",
	}
	cmd.AddCommand(newKeyResultAddCmd(app))
	cmd.AddCommand(newKeyResultUpdateCmd(app))
	cmd.AddCommand(newKeyResultDeleteCmd(app))
	return cmd
}

func newKeyResultAddCmd(app *App) *cobra.Command {
	var in okr.KeyResultInput

	cmd := &cobra.Command{
		Use:   "add <objective-id>",
		Short: "Add a key result to an objective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("current") {
				in.CurrentValue = in.StartValue
			}
			kr, err := store.AddKeyResult(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, kr)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Key result title")
	cmd.Flags().Float64Var(&in.StartValue, "start", okr.DefaultStartValue, "Start value")
	cmd.Flags().Float64Var(&in.TargetValue, "target", okr.DefaultTargetValue, "Target value")
	cmd.Flags().Float64Var(&in.CurrentValue, "current", okr.DefaultCurrentValue, "Current value (defaults to the start value)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newKeyResultUpdateCmd(app *App) *cobra.Command {
	var in okr.KeyResultInput

	cmd := &cobra.Command{
		Use:   "update <objective-id> <key-result-id>",
		Short: "Update a key result; unset flags keep their values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := store.CurrentProject()
			if !ok {
				return okr.ErrNoProject
			}
			obj, ok := p.Objective(args[0])
			if !ok {
				return okr.ErrObjectiveNotFound
			}
			kr, ok := obj.KeyResult(args[1])
			if !ok {
				return okr.ErrKeyResultNotFound
			}

			next := okr.KeyResultInput{
				Title:        kr.Title,
				StartValue:   kr.StartValue,
				TargetValue:  kr.TargetValue,
				CurrentValue: kr.CurrentValue,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				next.Title = in.Title
			}
			if flags.Changed("start") {
				next.StartValue = in.StartValue
			}
			if flags.Changed("target") {
				next.TargetValue = in.TargetValue
			}
			if flags.Changed("current") {
				next.CurrentValue = in.CurrentValue
			}
			if err := store.UpdateKeyResult(cmd.Context(), obj.ID, kr.ID, next); err != nil {
				return err
			}

			p, _ = store.CurrentProject()
			updated, _ := p.Objective(obj.ID)
			return writeOut(cmd, app, updated)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "New title")
	cmd.Flags().Float64Var(&in.StartValue, "start", 0, "New start value")
	cmd.Flags().Float64Var(&in.TargetValue, "target", 0, "New target value")
	cmd.Flags().Float64Var(&in.CurrentValue, "current", 0, "New current value")
	return cmd
}

func newKeyResultDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <objective-id> <key-result-id>",
		Short: "Delete a key result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.DeleteKeyResult(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			p, _ := store.CurrentProject()
			obj, _ := p.Objective(args[0])
			return writeOut(cmd, app, obj)
		},
	}
}
