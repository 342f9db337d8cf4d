package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/repository"
)

type reminderService struct {
	reminders repository.ReminderRepo
	plants    repository.PlantRepo
}

func NewReminderService(reminders repository.ReminderRepo, plants repository.PlantRepo) ReminderService {
	return &reminderService{reminders: reminders, plants: plants}
}

func (s *reminderService) List(ctx context.Context, dueBy *time.Time) ([]PendingReminder, error) {
	var (
		entries []*domain.Reminder
		err     error
	)
	if dueBy != nil {
		entries, err = s.reminders.ListDue(ctx, *dueBy)
	} else {
		entries, err = s.reminders.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	pending := make([]PendingReminder, 0, len(entries))
	for _, r := range entries {
		p, err := s.plants.GetByID(ctx, r.PlantID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("loading plant for reminder: %w", err)
		}
		pending = append(pending, PendingReminder{Reminder: r, Plant: p})
	}
	return pending, nil
}
