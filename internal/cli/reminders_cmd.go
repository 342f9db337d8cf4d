package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRemindersCmd(app *App) *cobra.Command {
	var due bool

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List pending watering reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			var dueBy *time.Time
			if due {
				dueBy = &now
			}
			pending, err := app.Reminders.List(context.Background(), dueBy)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReminders(pending, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&due, "due", false, "Only reminders whose time has come")

	return cmd
}
