package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plant collection over a local JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return fmt.Errorf("the HTTP API is not available in this build")
			}
			if addr == "" {
				addr = app.ServerAddr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			return app.Serve(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.addr)")

	return cmd
}
