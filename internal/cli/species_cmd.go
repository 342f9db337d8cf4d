package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/spf13/cobra"
)

func newSpeciesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Browse the species rule table",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every species",
			RunE: func(cmd *cobra.Command, args []string) error {
				keys := app.Catalog.List(context.Background())
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSpeciesList(keys, app.Catalog.Source()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "search QUERY",
			Short: "Find species by name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				keys := app.Catalog.Search(context.Background(), args[0])
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSpeciesList(keys, app.Catalog.Source()))
				return nil
			},
		},
		newSpeciesShowCmd(app),
	)

	return cmd
}

func newSpeciesShowCmd(app *App) *cobra.Command {
	var care careFlags

	cmd := &cobra.Command{
		Use:   "show SPECIES",
		Short: "Show a species' intervals and the one that applies to the given care",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := care.apply(domain.DefaultCare())
			if err != nil {
				return err
			}
			detail, err := app.Catalog.Show(context.Background(), args[0], c, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSpeciesDetail(detail))
			return nil
		},
	}
	care.register(cmd)

	return cmd
}
