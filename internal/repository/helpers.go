package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// Watering timestamps are stored as RFC3339 plus the name of their zone in
// a time_zone column. The offset alone is not enough: a due date is
// recomputed with AddDate, which must follow the zone's DST rules.
const timeLayout = time.RFC3339

var zones sync.Map // zone name -> *time.Location

// zoneName is the value written to a time_zone column.
func zoneName(t time.Time) string {
	return t.Location().String()
}

// loadZone returns nil for rows written before zones were stored and for
// zones that only exist as a fixed offset (time.FixedZone).
func loadZone(name string) *time.Location {
	if name == "" {
		return nil
	}
	if loc, ok := zones.Load(name); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	zones.Store(name, loc)
	return loc
}

// inZone moves a parsed timestamp back into its stored zone. Without a
// loadable zone it keeps the fixed offset it was parsed with.
func inZone(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

func inZonePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := inZone(*t, loc)
	return &v
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableStringToValue converts a *string to a value suitable for SQLite storage.
func nullableStringToValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func parseNullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTimestamps(createdAtStr, updatedAtStr string) (created, updated time.Time, err error) {
	created, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return created, updated, fmt.Errorf("parsing created_at: %w", err)
	}
	updated, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return created, updated, fmt.Errorf("parsing updated_at: %w", err)
	}
	return created, updated, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func sortReminders(rs []*domain.Reminder) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].At.Equal(rs[j].At) {
			return rs[i].At.Before(rs[j].At)
		}
		return rs[i].PlantID < rs[j].PlantID
	})
}
