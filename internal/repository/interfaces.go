package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

type PlantRepo interface {
	Create(ctx context.Context, p *domain.Plant) error
	GetByID(ctx context.Context, id string) (*domain.Plant, error)
	// ListActive returns non-retired plants ordered by order_index.
	ListActive(ctx context.Context) ([]*domain.Plant, error)
	// ListRetired returns retired plants sorted by display name.
	ListRetired(ctx context.Context) ([]*domain.Plant, error)
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Plant, error)
	Update(ctx context.Context, p *domain.Plant) error
	UpdateOrder(ctx context.Context, plants []*domain.Plant) error
	Delete(ctx context.Context, id string) error
}

type RoomRepo interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, r *domain.Room) error
	Delete(ctx context.Context, id string) error
}

type ReminderRepo interface {
	// Upsert replaces any pending reminder for the plant.
	Upsert(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, plantID string) error
	Get(ctx context.Context, plantID string) (*domain.Reminder, error)
	List(ctx context.Context) ([]*domain.Reminder, error)
	ListDue(ctx context.Context, before time.Time) ([]*domain.Reminder, error)
}
