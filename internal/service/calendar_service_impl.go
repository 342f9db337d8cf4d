package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/watering"
)

type calendarService struct {
	plants repository.PlantRepo
}

func NewCalendarService(plants repository.PlantRepo) CalendarService {
	return &calendarService{plants: plants}
}

func (s *calendarService) active(ctx context.Context) ([]*domain.Plant, error) {
	plants, err := s.plants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plants: %w", err)
	}
	return plants, nil
}

// Month returns the days of ref's month that have watering due, with the
// plants due on each, in ref's location.
func (s *calendarService) Month(ctx context.Context, ref time.Time) ([]CalendarDay, error) {
	plants, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	dates := watering.WateringDatesInMonth(ref, plants)
	days := make([]CalendarDay, 0, len(dates))
	for _, d := range dates {
		days = append(days, CalendarDay{Date: d, Plants: watering.PlantsDueOn(d, plants)})
	}
	return days, nil
}

func (s *calendarService) Day(ctx context.Context, date time.Time) ([]*domain.Plant, error) {
	plants, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return watering.PlantsDueOn(date, plants), nil
}

func (s *calendarService) Agenda(ctx context.Context, now time.Time, horizonDays int) (watering.Agenda, error) {
	plants, err := s.active(ctx)
	if err != nil {
		return watering.Agenda{}, err
	}
	return watering.BuildAgenda(now, plants, horizonDays), nil
}
