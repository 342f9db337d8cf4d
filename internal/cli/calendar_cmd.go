package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var month, day string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the watering calendar for a month or a single day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()

			if day != "" {
				date, err := time.ParseInLocation("2006-01-02", day, now.Location())
				if err != nil {
					return fmt.Errorf("invalid --day %q (use YYYY-MM-DD)", day)
				}
				plants, err := app.Calendar.Day(ctx, date)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(date, plants, now))
				return nil
			}

			ref := now
			if month != "" {
				m, err := time.ParseInLocation("2006-01", month, now.Location())
				if err != nil {
					return fmt.Errorf("invalid --month %q (use YYYY-MM)", month)
				}
				ref = m
			}
			days, err := app.Calendar.Month(ctx, ref)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMonth(ref, days, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")
	cmd.Flags().StringVar(&day, "day", "", "Single day to show (YYYY-MM-DD)")
	cmd.MarkFlagsMutuallyExclusive("month", "day")

	return cmd
}

func newAgendaCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show overdue, today's and upcoming waterings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}
			now := app.now()
			agenda, err := app.Calendar.Agenda(context.Background(), now, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAgenda(agenda, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days ahead to look")

	return cmd
}
