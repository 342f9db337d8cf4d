package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/notify"
	"github.com/alexanderramin/kvitko/internal/ordering"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/google/uuid"
)

// ReminderPolicy is the time of day reminders fire on the due date.
type ReminderPolicy struct {
	Hour   int
	Minute int
}

type plantService struct {
	plants    repository.PlantRepo
	uow       db.UnitOfWork
	projector *watering.Projector
	notifier  notify.Notifier
	reminders ReminderPolicy
	observer  UseCaseObserver
	now       func() time.Time

	// mu serializes every mutation so the manual order and the due dates
	// are only ever rewritten by one use case at a time.
	mu sync.Mutex
}

func NewPlantService(
	plants repository.PlantRepo,
	uow db.UnitOfWork,
	projector *watering.Projector,
	notifier notify.Notifier,
	reminders ReminderPolicy,
	observers ...UseCaseObserver,
) PlantService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &plantService{
		plants:    plants,
		uow:       uow,
		projector: projector,
		notifier:  notifier,
		reminders: reminders,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now() },
	}
}

func (s *plantService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// loadSequence reads the active plants inside tx and returns them as a
// dense sequence, plus the indices as stored so that only plants whose
// position moved get written back.
func loadSequence(ctx context.Context, plants repository.PlantRepo) ([]*domain.Plant, map[string]int, error) {
	active, err := plants.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading active plants: %w", err)
	}
	before := ordering.Snapshot(active)
	return ordering.Normalize(active), before, nil
}

func persistOrder(ctx context.Context, plants repository.PlantRepo, before map[string]int, seq []*domain.Plant, skipID string) error {
	var changed []*domain.Plant
	for _, p := range ordering.Changed(before, seq) {
		if p.ID != skipID {
			changed = append(changed, p)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	if err := plants.UpdateOrder(ctx, changed); err != nil {
		return fmt.Errorf("saving order: %w", err)
	}
	return nil
}

func (s *plantService) Create(ctx context.Context, p *domain.Plant) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"species": p.SpeciesKey}
	defer func() { s.observe(ctx, "plant-create", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Care == (domain.CareAttributes{}) {
		p.Care = domain.DefaultCare()
	}
	if p.LastWatered.IsZero() {
		p.LastWatered = now
	}
	p.Retired = false
	p.RetiredAt = nil
	p.CreatedAt = now.UTC().Truncate(time.Second)
	p.UpdatedAt = p.CreatedAt
	fields["plant_id"] = p.ID

	if err = p.Validate(); err != nil {
		return err
	}
	if err = s.projector.Recompute(p, now); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		seq, before, err := loadSequence(ctx, txPlants)
		if err != nil {
			return err
		}
		if seq, err = ordering.Append(seq, p); err != nil {
			return err
		}
		if err := txPlants.Create(ctx, p); err != nil {
			return fmt.Errorf("creating plant: %w", err)
		}
		return persistOrder(ctx, txPlants, before, seq, p.ID)
	})
	if err != nil {
		return err
	}
	fields["order_index"] = p.OrderIndex
	return s.scheduleReminder(ctx, p)
}

func (s *plantService) Get(ctx context.Context, id string) (*domain.Plant, error) {
	return s.plants.GetByID(ctx, id)
}

func (s *plantService) List(ctx context.Context, sort domain.SortOption) ([]*domain.Plant, error) {
	active, err := s.plants.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return ordering.SortedView(ordering.Normalize(active), sort), nil
}

func (s *plantService) ListRetired(ctx context.Context) ([]*domain.Plant, error) {
	return s.plants.ListRetired(ctx)
}

func (s *plantService) Edit(ctx context.Context, id string, patch domain.PlantPatch) (plant *domain.Plant, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plant_id": id}
	defer func() { s.observe(ctx, "plant-edit", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var scheduleChanged bool
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		p, err := txPlants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Retired {
			return fmt.Errorf("editing %s: %w", p.DisplayName(), ErrPlantRetired)
		}

		now := s.now()
		scheduleChanged = patch.Apply(p)
		if err := p.Validate(); err != nil {
			return err
		}
		if scheduleChanged {
			if err := s.projector.Recompute(p, now); err != nil {
				return err
			}
		}
		p.UpdatedAt = now.UTC().Truncate(time.Second)
		if err := txPlants.Update(ctx, p); err != nil {
			return err
		}
		plant = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["schedule_changed"] = scheduleChanged
	if scheduleChanged {
		return plant, s.scheduleReminder(ctx, plant)
	}
	return plant, nil
}

func (s *plantService) MarkWatered(ctx context.Context, id string, at time.Time) (plant *domain.Plant, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plant_id": id}
	defer func() { s.observe(ctx, "plant-water", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if at.IsZero() {
		at = now
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		p, err := txPlants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Retired {
			return fmt.Errorf("watering %s: %w", p.DisplayName(), ErrPlantRetired)
		}
		p.LastWatered = at
		if err := s.projector.Recompute(p, now); err != nil {
			return err
		}
		p.UpdatedAt = now.UTC().Truncate(time.Second)
		if err := txPlants.Update(ctx, p); err != nil {
			return err
		}
		plant = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["next_watering"] = plant.NextWatering.Format(time.RFC3339)
	return plant, s.scheduleReminder(ctx, plant)
}

func (s *plantService) Retire(ctx context.Context, id string) (plant *domain.Plant, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plant_id": id}
	defer func() { s.observe(ctx, "plant-retire", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		p, err := txPlants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		seq, before, err := loadSequence(ctx, txPlants)
		if err != nil {
			return err
		}
		if err := p.Retire(s.now().UTC().Truncate(time.Second)); err != nil {
			return fmt.Errorf("%w: %v", ErrPlantRetired, err)
		}
		if seq, err = ordering.Remove(seq, p.ID); err != nil {
			return err
		}
		if err := txPlants.Update(ctx, p); err != nil {
			return err
		}
		plant = p
		return persistOrder(ctx, txPlants, before, seq, p.ID)
	})
	if err != nil {
		return nil, err
	}
	return plant, s.cancelReminder(ctx, plant.ID)
}

func (s *plantService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plant_id": id}
	defer func() { s.observe(ctx, "plant-delete", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		p, err := txPlants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		seq, before, err := loadSequence(ctx, txPlants)
		if err != nil {
			return err
		}
		if !p.Retired {
			if seq, err = ordering.Remove(seq, p.ID); err != nil {
				return err
			}
		}
		if err := txPlants.Delete(ctx, p.ID); err != nil {
			return err
		}
		return persistOrder(ctx, txPlants, before, seq, p.ID)
	})
	if err != nil {
		return err
	}
	return s.cancelReminder(ctx, id)
}

func (s *plantService) Reorder(ctx context.Context, from, to int) (seq []*domain.Plant, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"from": from, "to": to}
	defer func() { s.observe(ctx, "plant-reorder", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		current, before, err := loadSequence(ctx, txPlants)
		if err != nil {
			return err
		}
		next, err := ordering.Reorder(current, from, to)
		if err != nil {
			return err
		}
		if err := persistOrder(ctx, txPlants, before, next, ""); err != nil {
			return err
		}
		seq = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seq, nil
}

func (s *plantService) RescheduleAll(ctx context.Context) (res *RescheduleResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "plant-reschedule", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	res = &RescheduleResult{}
	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlants := repository.NewSQLitePlantRepo(tx)

		seq, before, err := loadSequence(ctx, txPlants)
		if err != nil {
			return err
		}
		for _, p := range seq {
			prev := p.NextWatering
			if err := s.projector.Recompute(p, now); err != nil {
				if errors.Is(err, watering.ErrUnknownSpecies) {
					res.UnknownSpecies = append(res.UnknownSpecies, p)
					continue
				}
				return err
			}
			if prev != nil && prev.Equal(*p.NextWatering) {
				continue
			}
			p.UpdatedAt = now.UTC().Truncate(time.Second)
			if err := txPlants.Update(ctx, p); err != nil {
				return err
			}
			res.Updated = append(res.Updated, p)
		}
		return persistOrder(ctx, txPlants, before, seq, "")
	})
	if err != nil {
		return nil, err
	}
	fields["updated"] = len(res.Updated)
	fields["unknown_species"] = len(res.UnknownSpecies)

	var errs []error
	for _, p := range res.Updated {
		if err := s.scheduleReminder(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return res, errors.Join(errs...)
}

func (s *plantService) scheduleReminder(ctx context.Context, p *domain.Plant) error {
	if p.NextWatering == nil {
		return nil
	}
	at := watering.ReminderTime(*p.NextWatering, s.reminders.Hour, s.reminders.Minute)
	if err := s.notifier.ScheduleReminder(ctx, p.ID, at); err != nil {
		return fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}
	return nil
}

func (s *plantService) cancelReminder(ctx context.Context, id string) error {
	if err := s.notifier.CancelReminder(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}
	return nil
}
