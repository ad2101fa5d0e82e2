package cli

import (
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Project commands",
	}
	cmd.AddCommand(newProjectCreateCmd(app))
	cmd.AddCommand(newProjectListCmd(app))
	cmd.AddCommand(newProjectSelectCmd(app))
	cmd.AddCommand(newProjectDeleteCmd(app))
	cmd.AddCommand(newProjectShowCmd(app))
	cmd.AddCommand(newProjectFoundationCmd(app))
	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var req okr.CreateProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project and make it current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			p, err := store.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, p)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&req.Mission, "mission", "", "Mission statement")
	cmd.Flags().StringVar(&req.Vision, "vision", "", "Vision statement")
	cmd.Flags().StringArrayVar(&req.TeamNames, "team", nil, "Team name (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, store.Projects())
		},
	}
}

func newProjectSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <project-id>",
		Short: "Make a project current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			p, _ := store.CurrentProject()
			return writeOut(cmd, app, p)
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project with all of its cycles and objectives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, store.Projects())
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	var (
		asJSON    bool
		allCycles bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current project with objectives and progress",
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
			if asJSON {
				return writeOut(cmd, app, p)
			}
			_, err = cmd.OutOrStdout().Write([]byte(renderProject(p, allCycles) + "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the project as JSON instead of a board")
	cmd.Flags().BoolVar(&allCycles, "all-cycles", false, "Include objectives of every cycle")
	return cmd
}

func newProjectFoundationCmd(app *App) *cobra.Command {
	var mission, vision string

	cmd := &cobra.Command{
		Use:   "foundation",
		Short: "Update the current project's mission and vision",
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
			if !cmd.Flags().Changed("mission") {
				mission = p.Foundation.Mission
			}
			if !cmd.Flags().Changed("vision") {
				vision = p.Foundation.Vision
			}
			if err := store.UpdateFoundation(cmd.Context(), mission, vision); err != nil {
				return err
			}
			return writeOut(cmd, app, okr.Foundation{Mission: mission, Vision: vision})
		},
	}

	cmd.Flags().StringVar(&mission, "mission", "", "Mission statement")
	cmd.Flags().StringVar(&vision, "vision", "", "Vision statement")
	return cmd
}
