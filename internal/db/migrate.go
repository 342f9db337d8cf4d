package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateDenseOrder(db); err != nil {
		return fmt.Errorf("repairing plant order: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		type              TEXT NOT NULL DEFAULT 'living_room'
		                  CHECK(type IN ('living_room','bedroom','kitchen','bathroom','hallway')),
		compass_direction INTEGER NOT NULL DEFAULT 0
		                  CHECK(compass_direction >= 0 AND compass_direction < 360),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plants (
		id            TEXT PRIMARY KEY,
		species_key   TEXT NOT NULL,
		custom_name   TEXT NOT NULL DEFAULT '',
		room_id       TEXT REFERENCES rooms(id) ON DELETE SET NULL,
		proximity     TEXT NOT NULL DEFAULT 'medium'
		              CHECK(proximity IN ('near','medium','far')),
		pot_material  TEXT NOT NULL DEFAULT 'plastic'
		              CHECK(pot_material IN ('terracotta','plastic')),
		substrate     TEXT NOT NULL DEFAULT 'standard'
		              CHECK(substrate IN ('light','standard','heavy')),
		humidity      TEXT NOT NULL DEFAULT 'standard'
		              CHECK(humidity IN ('standard','low')),
		height_cm     REAL NOT NULL DEFAULT 0,
		pot_size_cm   REAL NOT NULL DEFAULT 0,
		last_watered  TEXT NOT NULL,
		next_watering TEXT,
		order_index   INTEGER NOT NULL DEFAULT 0 CHECK(order_index >= 0),
		retired       INTEGER NOT NULL DEFAULT 0,
		retired_at    TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plants_room ON plants(room_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plants_active_order ON plants(order_index) WHERE retired = 0`,
	`CREATE INDEX IF NOT EXISTS idx_plants_next_watering ON plants(next_watering) WHERE retired = 0`,

	// Fertilizing was tracked after the first release.
	`ALTER TABLE plants ADD COLUMN last_fertilized TEXT`,

	// At most one pending reminder per plant.
	`CREATE TABLE IF NOT EXISTS reminders (
		plant_id   TEXT PRIMARY KEY REFERENCES plants(id) ON DELETE CASCADE,
		remind_at  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reminders_at ON reminders(remind_at)`,

	// IANA zone of the stored timestamps. Empty for rows written before it
	// existed; those keep the fixed offset of their RFC3339 value.
	`ALTER TABLE plants ADD COLUMN time_zone TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE reminders ADD COLUMN time_zone TEXT NOT NULL DEFAULT ''`,
}

// migrateDenseOrder re-enumerates the active plants so their order_index
// values are exactly 0..N-1, keeping the existing relative order (ties by
// created_at, then id). Rows already in place are not rewritten.
func migrateDenseOrder(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT id, order_index FROM plants WHERE retired = 0 ORDER BY order_index, created_at, id`)
	if err != nil {
		return fmt.Errorf("listing active plants: %w", err)
	}
	type entry struct {
		id    string
		index int
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.index); err != nil {
			rows.Close()
			return fmt.Errorf("scanning plant order: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating plant order: %w", err)
	}

	for i, e := range entries {
		if e.index == i {
			continue
		}
		if _, err := db.ExecContext(ctx,
			`UPDATE plants SET order_index = ? WHERE id = ?`, i, e.id); err != nil {
			return fmt.Errorf("updating order of plant %s: %w", e.id, err)
		}
	}
	return nil
}
