package testutil

import (
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/google/uuid"
)

// now is truncated to whole seconds so fixtures survive the RFC3339
// round trip through SQLite unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Plant options
type PlantOption func(*domain.Plant)

func WithCustomName(name string) PlantOption {
	return func(p *domain.Plant) {
		p.CustomName = name
	}
}

func WithRoomID(id string) PlantOption {
	return func(p *domain.Plant) {
		p.RoomID = &id
	}
}

func WithProximity(v domain.Proximity) PlantOption {
	return func(p *domain.Plant) {
		p.Care.Proximity = v
	}
}

func WithPotMaterial(v domain.PotMaterial) PlantOption {
	return func(p *domain.Plant) {
		p.Care.PotMaterial = v
	}
}

func WithSubstrate(v domain.Substrate) PlantOption {
	return func(p *domain.Plant) {
		p.Care.Substrate = v
	}
}

func WithHumidity(v domain.Humidity) PlantOption {
	return func(p *domain.Plant) {
		p.Care.Humidity = v
	}
}

func WithLastWatered(t time.Time) PlantOption {
	return func(p *domain.Plant) {
		p.LastWatered = t
	}
}

func WithNextWatering(t time.Time) PlantOption {
	return func(p *domain.Plant) {
		p.NextWatering = &t
	}
}

func WithLastFertilized(t time.Time) PlantOption {
	return func(p *domain.Plant) {
		p.LastFertilized = &t
	}
}

func WithPlantOrder(i int) PlantOption {
	return func(p *domain.Plant) {
		p.OrderIndex = i
	}
}

func WithDimensions(heightCm, potSizeCm float64) PlantOption {
	return func(p *domain.Plant) {
		p.HeightCm = heightCm
		p.PotSizeCm = potSizeCm
	}
}

func WithRetired(at time.Time) PlantOption {
	return func(p *domain.Plant) {
		p.Retired = true
		p.RetiredAt = &at
	}
}

func NewTestPlant(speciesKey string, opts ...PlantOption) *domain.Plant {
	ts := now()
	p := &domain.Plant{
		ID:          uuid.New().String(),
		SpeciesKey:  speciesKey,
		Care:        domain.DefaultCare(),
		LastWatered: ts,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Room options
type RoomOption func(*domain.Room)

func WithRoomType(t domain.RoomType) RoomOption {
	return func(r *domain.Room) {
		r.Type = t
	}
}

func WithCompassDirection(deg int) RoomOption {
	return func(r *domain.Room) {
		r.CompassDirection = deg
	}
}

func NewTestRoom(name string, opts ...RoomOption) *domain.Room {
	ts := now()
	r := &domain.Room{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      domain.RoomLivingRoom,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
