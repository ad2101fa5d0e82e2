package cli

import (
	"fmt"
	"strings"

	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/spf13/cobra"
)

func newObjectiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objective",
		Aliases: []string{"objectives", "obj"},
		Short:   "Objective commands for the current project",
	}
	cmd.AddCommand(newObjectiveAddCmd(app))
	cmd.AddCommand(newObjectiveUpdateCmd(app))
	cmd.AddCommand(newObjectiveDeleteCmd(app))
	return cmd
}

func newObjectiveAddCmd(app *App) *cobra.Command {
	var in okr.ObjectiveInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an objective to the Active cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := store.CurrentProject()
			if !ok {
				return okr.ErrNoProject
			}
			if in.OwnerID, err = resolveOwner(p, in.OwnerID); err != nil {
				return err
			}
			obj, err := store.AddObjective(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, obj)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Objective title")
	cmd.Flags().StringVar(&in.OwnerID, "owner", "", "Owning team name or id; empty for the company")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newObjectiveUpdateCmd(app *App) *cobra.Command {
	var in okr.ObjectiveInput

	cmd := &cobra.Command{
		Use:   "update <objective-id>",
		Short: "Change an objective's title, owner or notes",
		Args:  cobra.ExactArgs(1),
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

			next := okr.ObjectiveInput{Title: obj.Title, OwnerID: obj.OwnerID, Notes: obj.Notes}
			if cmd.Flags().Changed("title") {
				next.Title = in.Title
			}
			if cmd.Flags().Changed("owner") {
				if next.OwnerID, err = resolveOwner(p, in.OwnerID); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("notes") {
				next.Notes = in.Notes
			}
			if err := store.UpdateObjective(cmd.Context(), obj.ID, next); err != nil {
				return err
			}

			p, _ = store.CurrentProject()
			updated, _ := p.Objective(obj.ID)
			return writeOut(cmd, app, updated)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "New title")
	cmd.Flags().StringVar(&in.OwnerID, "owner", "", "New owning team name or id; empty for the company")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "New notes")
	return cmd
}

func newObjectiveDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <objective-id>",
		Short: "Delete an objective and its key results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.DeleteObjective(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"deleted": args[0]})
		},
	}
}

// resolveOwner maps a team id, team name (case-insensitive) or "company"
// to an owner id. Blank means the company.
func resolveOwner(p *okr.Project, owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" || owner == okr.CompanyOwnerID {
		return okr.CompanyOwnerID, nil
	}
	for _, team := range p.Teams {
		if team.ID == owner {
			return team.ID, nil
		}
	}
	for _, team := range p.Teams {
		if strings.EqualFold(team.Name, owner) {
			return team.ID, nil
		}
	}
	return "", fmt.Errorf("%w: unknown owner %q", okr.ErrInvalidInput, owner)
}
