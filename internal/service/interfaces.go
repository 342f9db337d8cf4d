package service

import (
	"context"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/importer"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/watering"
)

type PlantService interface {
	// Create assigns an id if missing, appends the plant to the end of the
	// manual order and computes its first due date.
	Create(ctx context.Context, p *domain.Plant) error
	Get(ctx context.Context, id string) (*domain.Plant, error)
	// List returns active plants in the requested display order.
	List(ctx context.Context, sort domain.SortOption) ([]*domain.Plant, error)
	ListRetired(ctx context.Context) ([]*domain.Plant, error)
	Edit(ctx context.Context, id string, patch domain.PlantPatch) (*domain.Plant, error)
	MarkWatered(ctx context.Context, id string, at time.Time) (*domain.Plant, error)
	Retire(ctx context.Context, id string) (*domain.Plant, error)
	Delete(ctx context.Context, id string) error
	// Reorder moves the plant at position from to position to in the
	// manual order and returns the new sequence.
	Reorder(ctx context.Context, from, to int) ([]*domain.Plant, error)
	// RescheduleAll recomputes the due date of every active plant against
	// the current season and rule table.
	RescheduleAll(ctx context.Context) (*RescheduleResult, error)
}

// RescheduleResult reports what a bulk recompute touched.
type RescheduleResult struct {
	Updated []*domain.Plant
	// UnknownSpecies lists plants skipped because their species is not in
	// the rule table.
	UnknownSpecies []*domain.Plant
}

type RoomService interface {
	Create(ctx context.Context, r *domain.Room) error
	Get(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, r *domain.Room) error
	// Delete removes the room; its plants stay with no room.
	Delete(ctx context.Context, id string) error
	Plants(ctx context.Context, roomID string) ([]*domain.Plant, error)
}

// CalendarDay is one date with at least one watering due.
type CalendarDay struct {
	Date   time.Time
	Plants []*domain.Plant
}

type CalendarService interface {
	Month(ctx context.Context, ref time.Time) ([]CalendarDay, error)
	Day(ctx context.Context, date time.Time) ([]*domain.Plant, error)
	Agenda(ctx context.Context, now time.Time, horizonDays int) (watering.Agenda, error)
}

// SpeciesDetail is a species profile plus the interval that applies to a
// given set of care attributes right now.
type SpeciesDetail struct {
	Profile  *rules.SpeciesProfile
	Season   domain.Season
	Care     domain.CareAttributes
	Interval int
}

type CatalogService interface {
	List(ctx context.Context) []string
	Search(ctx context.Context, query string) []string
	Show(ctx context.Context, key string, care domain.CareAttributes, ref time.Time) (*SpeciesDetail, error)
	Source() string
}

// PendingReminder pairs an outbox entry with its plant.
type PendingReminder struct {
	Reminder *domain.Reminder
	Plant    *domain.Plant
}

type ReminderService interface {
	// List returns pending reminders, earliest first. A non-nil dueBy keeps
	// only those at or before that instant.
	List(ctx context.Context, dueBy *time.Time) ([]PendingReminder, error)
}

// ImportResult reports what an import created.
type ImportResult struct {
	Rooms  []*domain.Room
	Plants []*domain.Plant
}

type CollectionService interface {
	// Import validates and loads a collection file in one transaction. Plants
	// are appended after the existing manual order.
	Import(ctx context.Context, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.CollectionSchema) (*ImportResult, error)
	// Export snapshots rooms and active plants in manual order.
	Export(ctx context.Context) (*importer.CollectionSchema, error)
}
