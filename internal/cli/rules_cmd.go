package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/spf13/cobra"
)

func newRulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the watering rule table",
	}

	cmd.AddCommand(newRulesValidateCmd(app))

	return cmd
}

func newRulesValidateCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [PATH]",
		Short: "Parse a rule table and report entries that fall back to the default",
		Long: "Parse a rule table (YAML, TOML or JSON) and report malformed ranges.\n" +
			"Without PATH the configured table is checked. With --watch the file is\n" +
			"re-checked on every save until interrupted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.RulesPath
			if len(args) == 1 {
				path = args[0]
			}

			res, err := rules.Resolve(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRuleReport(res))
			if !watch {
				return nil
			}
			if path == "" {
				return fmt.Errorf("--watch needs a rule table file; the built-in table never changes")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchRules(ctx, cmd, app, path)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate whenever the file changes")

	return cmd
}

func watchRules(ctx context.Context, cmd *cobra.Command, app *App, path string) error {
	w, err := rules.NewWatcher(path, app.logger())
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Watching "+w.Path+" (Ctrl+C to stop)"))
	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-w.Reloads:
			if r.Err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %v\n", formatter.StyleRed.Render("✘"), r.At.Format("15:04:05"), r.Err)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRuleReport(r.Result))
		}
	}
}
