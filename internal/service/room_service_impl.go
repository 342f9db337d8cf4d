package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/google/uuid"
)

type roomService struct {
	rooms    repository.RoomRepo
	plants   repository.PlantRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRoomService(rooms repository.RoomRepo, plants repository.PlantRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RoomService {
	return &roomService{
		rooms:    rooms,
		plants:   plants,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *roomService) Create(ctx context.Context, r *domain.Room) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Type = domain.RoomTypeOrDefault(string(r.Type))
	now := time.Now().UTC().Truncate(time.Second)
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := r.Validate(); err != nil {
		return err
	}
	return s.rooms.Create(ctx, r)
}

func (s *roomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *roomService) List(ctx context.Context) ([]*domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *roomService) Update(ctx context.Context, r *domain.Room) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = domain.RoomTypeOrDefault(string(r.Type))
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.rooms.Update(ctx, r)
}

func (s *roomService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"room_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "room-delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRooms := repository.NewSQLiteRoomRepo(tx)
		txPlants := repository.NewSQLitePlantRepo(tx)

		detached, err := txPlants.ListByRoom(ctx, id)
		if err != nil {
			return err
		}
		fields["detached_plants"] = len(detached)
		if err := txRooms.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting room: %w", err)
		}
		return nil
	})
}

func (s *roomService) Plants(ctx context.Context, roomID string) ([]*domain.Plant, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.plants.ListByRoom(ctx, roomID)
}
