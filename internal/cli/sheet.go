package cli

import (
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/rpggio/okrboard/internal/sheet"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv|file.xlsx>",
		Short: "Export the current project's objectives to a spreadsheet",
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
			rows := sheet.Export(*p)
			if err := sheet.WriteFile(args[0], rows); err != nil {
				return err
			}
			app.logger.Info("exported objectives", "file", args[0], "rows", len(rows))
			return writeOut(cmd, app, map[string]any{"file": args[0], "rows": len(rows)})
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Replace the current project's objectives with those in a spreadsheet",
		Long: `Replace every objective of the current project with the rows of a CSV or
XLSX file. Owners match team names, falling back to the company. Unknown
cycle names become new Archived cycles. Nothing changes if the file cannot
be read or a required column is missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := sheet.ReadFile(args[0])
			if err != nil {
				return err
			}
			store, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			p, err := sheet.Import(cmd.Context(), store, rows)
			if err != nil {
				return err
			}
			app.logger.Info("imported objectives", "file", args[0], "rows", len(rows), "objectives", len(p.Objectives))
			return writeOut(cmd, app, map[string]any{
				"file":       args[0],
				"rows":       len(rows),
				"objectives": len(p.Objectives),
				"cycles":     len(p.Cycles),
			})
		},
	}
}
