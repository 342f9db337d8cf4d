package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/kvitko/internal/api"
	"github.com/alexanderramin/kvitko/internal/cli"
	"github.com/alexanderramin/kvitko/internal/config"
	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/logging"
	"github.com/alexanderramin/kvitko/internal/notify"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags parses only the flags that feed configuration. Everything
// else is left for cobra.
func globalFlags(args []string) (*pflag.FlagSet, string) {
	fs := pflag.NewFlagSet("kvitko", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	config.BindFlags(fs)
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		// cobra reports the same error with usage.
		return fs, ""
	}
	path, _ := fs.GetString("config")
	return fs, path
}

func run() error {
	fs, configPath := globalFlags(os.Args[1:])
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}

	if err := cfg.EnsureDBDir(); err != nil {
		return err
	}
	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	loaded, err := rules.Resolve(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("loading rule table: %w", err)
	}
	for _, w := range loaded.Warnings {
		logger.Warn("rule table entry uses default interval", "entry", w.String())
	}

	// Wire repositories
	plantRepo := repository.NewSQLitePlantRepo(database)
	roomRepo := repository.NewSQLiteRoomRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	notifier := notify.Multi(notify.NewOutboxNotifier(reminderRepo), notify.NewLogNotifier(logger))
	observer := service.NewSlogUseCaseObserver(logger)
	projector := watering.NewProjector(loaded.Table)
	reminderPolicy := service.ReminderPolicy{Hour: cfg.Reminder.Hour, Minute: cfg.Reminder.Minute}

	// Wire services
	plantSvc := service.NewPlantService(plantRepo, uow, projector, notifier, reminderPolicy, observer)
	roomSvc := service.NewRoomService(roomRepo, plantRepo, uow, observer)
	calendarSvc := service.NewCalendarService(plantRepo)
	catalogSvc := service.NewCatalogService(loaded.Table, loaded.Source)
	collectionSvc := service.NewCollectionService(plantRepo, roomRepo, uow, projector, notifier, reminderPolicy, observer)

	app := &cli.App{
		Plants:     plantSvc,
		Rooms:      roomSvc,
		Calendar:   calendarSvc,
		Catalog:    catalogSvc,
		Reminders:  service.NewReminderService(reminderRepo, plantRepo),
		Collection: collectionSvc,

		RulesPath:  cfg.Rules.Path,
		ServerAddr: cfg.Server.Addr,
		Logger:     logger,
	}

	// Detect interactive terminal for the plant add form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	server := api.NewServer(api.Services{
		Plants:   plantSvc,
		Rooms:    roomSvc,
		Calendar: calendarSvc,
		Catalog:  catalogSvc,
	}, logger)
	app.Serve = func(ctx context.Context, addr string) error {
		return server.Serve(ctx, addr)
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
