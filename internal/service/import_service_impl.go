package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/importer"
	"github.com/alexanderramin/kvitko/internal/notify"
	"github.com/alexanderramin/kvitko/internal/ordering"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/watering"
)

type collectionService struct {
	plants    repository.PlantRepo
	rooms     repository.RoomRepo
	uow       db.UnitOfWork
	projector *watering.Projector
	notifier  notify.Notifier
	reminders ReminderPolicy
	observer  UseCaseObserver
	now       func() time.Time
}

func NewCollectionService(
	plants repository.PlantRepo,
	rooms repository.RoomRepo,
	uow db.UnitOfWork,
	projector *watering.Projector,
	notifier notify.Notifier,
	reminders ReminderPolicy,
	observers ...UseCaseObserver,
) CollectionService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &collectionService{
		plants:    plants,
		rooms:     rooms,
		uow:       uow,
		projector: projector,
		notifier:  notifier,
		reminders: reminders,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now() },
	}
}

func (s *collectionService) Import(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *collectionService) ImportSchema(ctx context.Context, schema *importer.CollectionSchema) (res *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "collection-import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	known := func(key string) bool {
		_, err := s.projector.Profile(key)
		return err == nil
	}
	if errs := importer.ValidateSchema(schema, known); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	now := s.now()
	collection, err := importer.Convert(schema, now)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	for _, p := range collection.Plants {
		if err := s.projector.Recompute(p, now); err != nil {
			return nil, err
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRooms := repository.NewSQLiteRoomRepo(tx)
		txPlants := repository.NewSQLitePlantRepo(tx)

		for _, r := range collection.Rooms {
			if err := txRooms.Create(ctx, r); err != nil {
				return fmt.Errorf("creating room %q: %w", r.Name, err)
			}
		}

		seq, before, err := loadSequence(ctx, txPlants)
		if err != nil {
			return err
		}
		for _, p := range collection.Plants {
			if seq, err = ordering.Append(seq, p); err != nil {
				return err
			}
			if err := txPlants.Create(ctx, p); err != nil {
				return fmt.Errorf("creating plant %q: %w", p.DisplayName(), err)
			}
		}
		return persistOrder(ctx, txPlants, before, seq, "")
	})
	if err != nil {
		return nil, err
	}
	fields["rooms"] = len(collection.Rooms)
	fields["plants"] = len(collection.Plants)

	res = &ImportResult{Rooms: collection.Rooms, Plants: collection.Plants}
	var errs []error
	for _, p := range collection.Plants {
		at := watering.ReminderTime(*p.NextWatering, s.reminders.Hour, s.reminders.Minute)
		if err := s.notifier.ScheduleReminder(ctx, p.ID, at); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrNotifyFailed, err))
		}
	}
	return res, errors.Join(errs...)
}

func (s *collectionService) Export(ctx context.Context) (*importer.CollectionSchema, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.plants.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return importer.FromDomain(rooms, ordering.Normalize(active)), nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
