package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/spf13/cobra"
)

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(map[string]any{"data": v})
}

// writeErr prints business rejections as warnings and everything else as errors.
func writeErr(cmd *cobra.Command, err error) {
	if okr.IsRejection(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err.Error())
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", err.Error())
}
