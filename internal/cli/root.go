package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/kvitko/internal/config"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plants     service.PlantService
	Rooms      service.RoomService
	Calendar   service.CalendarService
	Catalog    service.CatalogService
	Reminders  service.ReminderService
	Collection service.CollectionService

	// RulesPath is the configured rule table, empty for the built-in one.
	RulesPath  string
	ServerAddr string
	Logger     *slog.Logger

	// Now is the clock for display and defaults. Nil means time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
	// Serve runs the HTTP API until ctx is done. Nil disables "serve".
	Serve func(ctx context.Context, addr string) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "kvitko" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kvitko",
		Short:         "Houseplant watering planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Values are read by config.Load before the tree is built; they are
	// registered here so cobra accepts them.
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newPlantCmd(app),
		newRoomCmd(app),
		newCalendarCmd(app),
		newAgendaCmd(app),
		newSpeciesCmd(app),
		newRulesCmd(app),
		newRemindersCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)

	return root
}
