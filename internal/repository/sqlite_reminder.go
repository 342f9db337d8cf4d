package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/domain"
)

const reminderColumns = `plant_id, remind_at, created_at, time_zone`

// SQLiteReminderRepo implements ReminderRepo using a SQLite database.
type SQLiteReminderRepo struct {
	db db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo.
func NewSQLiteReminderRepo(db db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: db}
}

func (r *SQLiteReminderRepo) Upsert(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (plant_id, remind_at, created_at, time_zone) VALUES (?, ?, ?, ?)
		ON CONFLICT(plant_id) DO UPDATE SET remind_at = excluded.remind_at,
			created_at = excluded.created_at, time_zone = excluded.time_zone`
	_, err := r.db.ExecContext(ctx, query,
		rem.PlantID,
		rem.At.Format(timeLayout),
		rem.CreatedAt.Format(time.RFC3339),
		zoneName(rem.At),
	)
	if err != nil {
		return fmt.Errorf("upserting reminder: %w", err)
	}
	return nil
}

// Delete is a no-op when the plant has no pending reminder.
func (r *SQLiteReminderRepo) Delete(ctx context.Context, plantID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE plant_id = ?`, plantID); err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) Get(ctx context.Context, plantID string) (*domain.Reminder, error) {
	var rem domain.Reminder
	var atStr, createdAtStr, zone string
	err := r.db.QueryRowContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE plant_id = ?`, plantID,
	).Scan(&rem.PlantID, &atStr, &createdAtStr, &zone)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reminder: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}
	return populateReminder(&rem, atStr, createdAtStr, zone)
}

func (r *SQLiteReminderRepo) List(ctx context.Context) ([]*domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders`)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListDue returns reminders whose time is not after before, earliest first.
func (r *SQLiteReminderRepo) ListDue(ctx context.Context, before time.Time) ([]*domain.Reminder, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var due []*domain.Reminder
	for _, rem := range all {
		if !rem.At.After(before) {
			due = append(due, rem)
		}
	}
	return due, nil
}

// scanReminders returns rows sorted by reminder time. Stored values carry
// their own UTC offsets, so ordering happens after parsing.
func scanReminders(rows *sql.Rows) ([]*domain.Reminder, error) {
	var out []*domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		var atStr, createdAtStr, zone string
		if err := rows.Scan(&rem.PlantID, &atStr, &createdAtStr, &zone); err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		item, err := populateReminder(&rem, atStr, createdAtStr, zone)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	sortReminders(out)
	return out, nil
}

func populateReminder(rem *domain.Reminder, atStr, createdAtStr, zone string) (*domain.Reminder, error) {
	at, err := time.Parse(timeLayout, atStr)
	if err != nil {
		return nil, fmt.Errorf("parsing remind_at: %w", err)
	}
	rem.At = inZone(at, loadZone(zone))
	rem.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return rem, nil
}
