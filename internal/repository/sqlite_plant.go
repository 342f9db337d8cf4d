package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/db"
	"github.com/alexanderramin/kvitko/internal/domain"
)

// plantColumns is the canonical SELECT column list for plants.
const plantColumns = `id, species_key, custom_name, room_id,
	proximity, pot_material, substrate, humidity,
	height_cm, pot_size_cm, last_watered, next_watering, last_fertilized,
	order_index, retired, retired_at, created_at, updated_at, time_zone`

// SQLitePlantRepo implements PlantRepo using a SQLite database.
type SQLitePlantRepo struct {
	db db.DBTX
}

// NewSQLitePlantRepo creates a new SQLitePlantRepo. Pass a *sql.Tx to
// scope the repo to a transaction.
func NewSQLitePlantRepo(db db.DBTX) *SQLitePlantRepo {
	return &SQLitePlantRepo{db: db}
}

func (r *SQLitePlantRepo) Create(ctx context.Context, p *domain.Plant) error {
	query := `INSERT INTO plants (` + plantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.SpeciesKey,
		p.CustomName,
		nullableStringToValue(p.RoomID),
		string(p.Care.Proximity),
		string(p.Care.PotMaterial),
		string(p.Care.Substrate),
		string(p.Care.Humidity),
		p.HeightCm,
		p.PotSizeCm,
		p.LastWatered.Format(timeLayout),
		nullableTimeToString(p.NextWatering, timeLayout),
		nullableTimeToString(p.LastFertilized, timeLayout),
		p.OrderIndex,
		boolToInt(p.Retired),
		nullableTimeToString(p.RetiredAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		zoneName(p.LastWatered),
	)
	if err != nil {
		return fmt.Errorf("inserting plant: %w", err)
	}
	return nil
}

func (r *SQLitePlantRepo) GetByID(ctx context.Context, id string) (*domain.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = ?`
	return r.scanPlant(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlantRepo) ListActive(ctx context.Context) ([]*domain.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants
		WHERE retired = 0 ORDER BY order_index, created_at, id`
	return r.list(ctx, "listing active plants", query)
}

func (r *SQLitePlantRepo) ListRetired(ctx context.Context) ([]*domain.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants
		WHERE retired = 1
		ORDER BY COALESCE(NULLIF(custom_name, ''), species_key) COLLATE NOCASE, id`
	return r.list(ctx, "listing retired plants", query)
}

func (r *SQLitePlantRepo) ListByRoom(ctx context.Context, roomID string) ([]*domain.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants
		WHERE room_id = ? AND retired = 0 ORDER BY order_index, id`
	return r.list(ctx, "listing plants by room", query, roomID)
}

func (r *SQLitePlantRepo) Update(ctx context.Context, p *domain.Plant) error {
	query := `UPDATE plants SET species_key = ?, custom_name = ?, room_id = ?,
		proximity = ?, pot_material = ?, substrate = ?, humidity = ?,
		height_cm = ?, pot_size_cm = ?, last_watered = ?, next_watering = ?, last_fertilized = ?,
		order_index = ?, retired = ?, retired_at = ?, updated_at = ?, time_zone = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.SpeciesKey,
		p.CustomName,
		nullableStringToValue(p.RoomID),
		string(p.Care.Proximity),
		string(p.Care.PotMaterial),
		string(p.Care.Substrate),
		string(p.Care.Humidity),
		p.HeightCm,
		p.PotSizeCm,
		p.LastWatered.Format(timeLayout),
		nullableTimeToString(p.NextWatering, timeLayout),
		nullableTimeToString(p.LastFertilized, timeLayout),
		p.OrderIndex,
		boolToInt(p.Retired),
		nullableTimeToString(p.RetiredAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		zoneName(p.LastWatered),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plant: %w", err)
	}
	return requireAffected(res, "plant")
}

// UpdateOrder writes only the order_index of each plant.
func (r *SQLitePlantRepo) UpdateOrder(ctx context.Context, plants []*domain.Plant) error {
	now := nowUTC()
	for _, p := range plants {
		res, err := r.db.ExecContext(ctx,
			`UPDATE plants SET order_index = ?, updated_at = ? WHERE id = ?`,
			p.OrderIndex, now, p.ID)
		if err != nil {
			return fmt.Errorf("updating order of plant %s: %w", p.ID, err)
		}
		if err := requireAffected(res, "plant"); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePlantRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plant: %w", err)
	}
	return requireAffected(res, "plant")
}

func (r *SQLitePlantRepo) list(ctx context.Context, what, query string, args ...any) ([]*domain.Plant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()
	return r.scanPlants(rows)
}

// scanPlant scans a single plant from a *sql.Row.
func (r *SQLitePlantRepo) scanPlant(row *sql.Row) (*domain.Plant, error) {
	var p domain.Plant
	var raw plantRaw
	if err := row.Scan(raw.dest(&p)...); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plant: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plant: %w", err)
	}
	return raw.populate(&p)
}

// scanPlants scans multiple plants from *sql.Rows.
func (r *SQLitePlantRepo) scanPlants(rows *sql.Rows) ([]*domain.Plant, error) {
	var plants []*domain.Plant
	for rows.Next() {
		var p domain.Plant
		var raw plantRaw
		if err := rows.Scan(raw.dest(&p)...); err != nil {
			return nil, fmt.Errorf("scanning plant row: %w", err)
		}
		plant, err := raw.populate(&p)
		if err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plants: %w", err)
	}
	return plants, nil
}

// plantRaw holds the columns that need parsing after Scan.
type plantRaw struct {
	roomID                                  sql.NullString
	proximity, potMaterial, substrate, humid string
	lastWatered, createdAt, updatedAt       string
	nextWatering, lastFertilized, retiredAt sql.NullString
	retired                                 int
	zone                                    string
}

func (raw *plantRaw) dest(p *domain.Plant) []any {
	return []any{
		&p.ID, &p.SpeciesKey, &p.CustomName, &raw.roomID,
		&raw.proximity, &raw.potMaterial, &raw.substrate, &raw.humid,
		&p.HeightCm, &p.PotSizeCm, &raw.lastWatered, &raw.nextWatering, &raw.lastFertilized,
		&p.OrderIndex, &raw.retired, &raw.retiredAt, &raw.createdAt, &raw.updatedAt, &raw.zone,
	}
}

// populate fills in parsed fields on a Plant after scanning raw values.
func (raw *plantRaw) populate(p *domain.Plant) (*domain.Plant, error) {
	p.RoomID = parseNullableString(raw.roomID)
	p.Care = domain.CareAttributes{
		Proximity:   domain.Proximity(raw.proximity),
		PotMaterial: domain.PotMaterial(raw.potMaterial),
		Substrate:   domain.Substrate(raw.substrate),
		Humidity:    domain.Humidity(raw.humid),
	}
	p.Retired = intToBool(raw.retired)
	p.RetiredAt = parseNullableTime(raw.retiredAt, time.RFC3339)

	loc := loadZone(raw.zone)
	p.NextWatering = inZonePtr(parseNullableTime(raw.nextWatering, timeLayout), loc)
	p.LastFertilized = inZonePtr(parseNullableTime(raw.lastFertilized, timeLayout), loc)

	lastWatered, err := time.Parse(timeLayout, raw.lastWatered)
	if err != nil {
		return nil, fmt.Errorf("parsing last_watered: %w", err)
	}
	p.LastWatered = inZone(lastWatered, loc)
	p.CreatedAt, p.UpdatedAt, err = parseTimestamps(raw.createdAt, raw.updatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
