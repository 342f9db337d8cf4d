package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/google/uuid"
)

// Collection is the output of Convert: domain objects ready for
// persistence, with room links resolved to fresh IDs.
type Collection struct {
	Rooms  []*domain.Room
	Plants []*domain.Plant
}

// Convert transforms a validated schema into domain objects. Call
// ValidateSchema first; Convert assumes the schema is valid. Plants without
// last_watered are treated as watered at now. Order indexes and due dates
// are left to the caller.
func Convert(schema *CollectionSchema, now time.Time) (*Collection, error) {
	ts := now.UTC().Truncate(time.Second)
	out := &Collection{}

	roomIDs := make(map[string]string, len(schema.Rooms))
	for _, r := range schema.Rooms {
		room := &domain.Room{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(r.Name),
			Type:      domain.RoomTypeOrDefault(r.Type),
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if r.Window != nil {
			room.CompassDirection = *r.Window
		}
		roomIDs[r.Ref] = room.ID
		out.Rooms = append(out.Rooms, room)
	}

	for i, p := range schema.Plants {
		care, err := parseCare(p)
		if err != nil {
			return nil, fmt.Errorf("plants[%d]: %w", i, err)
		}
		plant := &domain.Plant{
			ID:          uuid.New().String(),
			SpeciesKey:  p.Species,
			CustomName:  strings.TrimSpace(p.Name),
			Care:        care,
			LastWatered: now,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if p.RoomRef != nil {
			id, ok := roomIDs[*p.RoomRef]
			if !ok {
				return nil, fmt.Errorf("plants[%d]: unknown room %q", i, *p.RoomRef)
			}
			plant.RoomID = &id
		}
		if p.LastWatered != nil {
			if plant.LastWatered, err = parseTimestamp(*p.LastWatered); err != nil {
				return nil, fmt.Errorf("plants[%d].last_watered: %w", i, err)
			}
		}
		if p.LastFertilized != nil {
			t, err := parseTimestamp(*p.LastFertilized)
			if err != nil {
				return nil, fmt.Errorf("plants[%d].last_fertilized: %w", i, err)
			}
			plant.LastFertilized = &t
		}
		if p.HeightCm != nil {
			plant.HeightCm = *p.HeightCm
		}
		if p.PotSizeCm != nil {
			plant.PotSizeCm = *p.PotSizeCm
		}
		out.Plants = append(out.Plants, plant)
	}

	return out, nil
}
