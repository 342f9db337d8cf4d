package watering

import (
	"sort"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last representable instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func schedulable(p *domain.Plant) bool {
	return p != nil && !p.Retired && p.NextWatering != nil
}

// WateringDatesInMonth returns the distinct start-of-day dates, in ref's
// location and ascending order, on which at least one active plant is due
// within ref's month.
func WateringDatesInMonth(ref time.Time, plants []*domain.Plant) []time.Time {
	loc := ref.Location()
	start, end := StartOfMonth(ref), EndOfMonth(ref)

	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, p := range plants {
		if !schedulable(p) {
			continue
		}
		due := p.NextWatering.In(loc)
		if due.Before(start) || due.After(end) {
			continue
		}
		day := StartOfDay(due)
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// PlantsDueOn returns the active plants due on the same calendar day as
// date, preserving input order.
func PlantsDueOn(date time.Time, plants []*domain.Plant) []*domain.Plant {
	var out []*domain.Plant
	for _, p := range plants {
		if schedulable(p) && SameDay(date, *p.NextWatering) {
			out = append(out, p)
		}
	}
	return out
}

// Agenda groups active plants by urgency relative to a point in time.
type Agenda struct {
	Overdue  []*domain.Plant
	Today    []*domain.Plant
	Upcoming []*domain.Plant
}

// BuildAgenda splits active plants into overdue, due later today, and due
// within the next horizonDays days. Each group is ordered by due date, then
// by order index.
func BuildAgenda(now time.Time, plants []*domain.Plant, horizonDays int) Agenda {
	var a Agenda
	horizon := StartOfDay(now).AddDate(0, 0, horizonDays+1)
	for _, p := range plants {
		if !schedulable(p) {
			continue
		}
		due := *p.NextWatering
		switch {
		case IsOverdue(due, now):
			a.Overdue = append(a.Overdue, p)
		case SameDay(now, due):
			a.Today = append(a.Today, p)
		case due.Before(horizon):
			a.Upcoming = append(a.Upcoming, p)
		}
	}
	byDue(a.Overdue)
	byDue(a.Today)
	byDue(a.Upcoming)
	return a
}

func byDue(plants []*domain.Plant) {
	sort.SliceStable(plants, func(i, j int) bool {
		a, b := plants[i], plants[j]
		if !a.NextWatering.Equal(*b.NextWatering) {
			return a.NextWatering.Before(*b.NextWatering)
		}
		return a.OrderIndex < b.OrderIndex
	})
}
