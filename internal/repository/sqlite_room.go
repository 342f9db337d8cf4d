package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/domain"
)

// SQLiteRoomRepo implements RoomRepo using a SQLite database.
type SQLiteRoomRepo struct {
	db db.DBTX
}

// NewSQLiteRoomRepo creates a new SQLiteRoomRepo.
func NewSQLiteRoomRepo(db db.DBTX) *SQLiteRoomRepo {
	return &SQLiteRoomRepo{db: db}
}

func (r *SQLiteRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO rooms (id, name, type, compass_direction, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		string(room.Type),
		room.CompassDirection,
		room.CreatedAt.Format(time.RFC3339),
		room.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting room: %w", err)
	}
	return nil
}

func (r *SQLiteRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `SELECT id, name, type, compass_direction, created_at, updated_at
		FROM rooms WHERE id = ?`
	var room domain.Room
	var typeStr, createdAtStr, updatedAtStr string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Name, &typeStr, &room.CompassDirection, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning room: %w", err)
	}
	return populateRoom(&room, typeStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	query := `SELECT id, name, type, compass_direction, created_at, updated_at
		FROM rooms ORDER BY name COLLATE NOCASE, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		var room domain.Room
		var typeStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(&room.ID, &room.Name, &typeStr, &room.CompassDirection, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		item, err := populateRoom(&room, typeStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}
	return rooms, nil
}

func (r *SQLiteRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	query := `UPDATE rooms SET name = ?, type = ?, compass_direction = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		room.Name,
		string(room.Type),
		room.CompassDirection,
		room.UpdatedAt.Format(time.RFC3339),
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("updating room: %w", err)
	}
	return requireAffected(res, "room")
}

// Delete removes the room. Plants in it keep existing with room_id cleared
// by the ON DELETE SET NULL foreign key.
func (r *SQLiteRoomRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}
	return requireAffected(res, "room")
}

func populateRoom(room *domain.Room, typeStr, createdAtStr, updatedAtStr string) (*domain.Room, error) {
	room.Type = domain.RoomTypeOrDefault(typeStr)
	var err error
	room.CreatedAt, room.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}
	return room, nil
}
