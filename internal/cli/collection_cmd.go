package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/alexanderramin/kvitko/internal/importer"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add rooms and plants from a JSON collection file",
		Long: "Add rooms and plants from a JSON collection file, as written by \"kvitko export\".\n" +
			"The whole file is validated first; nothing is written if any entry is invalid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Collection.Import(context.Background(), args[0])
			if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s and %s.\n",
				formatter.Bold(plural(len(res.Rooms), "room")),
				formatter.Bold(plural(len(res.Plants), "plant")))
			return warnNotify(cmd, err)
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write rooms and active plants as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.Collection.Export(context.Background())
			if err != nil {
				return err
			}
			data, err := importer.Marshal(schema)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s.\n", plural(len(schema.Plants), "plant"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")

	return cmd
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
