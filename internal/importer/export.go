package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// FromDomain builds an exportable schema from stored rooms and active
// plants. Plants keep the order they are given in; room refs are r1, r2,
// ... in room order.
func FromDomain(rooms []*domain.Room, plants []*domain.Plant) *CollectionSchema {
	schema := &CollectionSchema{Version: SchemaVersion, Plants: []PlantImport{}}

	refs := make(map[string]string, len(rooms))
	for i, r := range rooms {
		ref := fmt.Sprintf("r%d", i+1)
		refs[r.ID] = ref
		window := r.CompassDirection
		schema.Rooms = append(schema.Rooms, RoomImport{
			Ref:    ref,
			Name:   r.Name,
			Type:   string(r.Type),
			Window: &window,
		})
	}

	for _, p := range plants {
		if p.Retired {
			continue
		}
		lastWatered := p.LastWatered.UTC().Format(time.RFC3339)
		item := PlantImport{
			Species:     p.SpeciesKey,
			Name:        p.CustomName,
			Proximity:   string(p.Care.Proximity),
			Pot:         string(p.Care.PotMaterial),
			Substrate:   string(p.Care.Substrate),
			Humidity:    string(p.Care.Humidity),
			LastWatered: &lastWatered,
		}
		if p.RoomID != nil {
			if ref, ok := refs[*p.RoomID]; ok {
				item.RoomRef = &ref
			}
		}
		if p.LastFertilized != nil {
			s := p.LastFertilized.UTC().Format(time.RFC3339)
			item.LastFertilized = &s
		}
		if p.HeightCm > 0 {
			h := p.HeightCm
			item.HeightCm = &h
		}
		if p.PotSizeCm > 0 {
			s := p.PotSizeCm
			item.PotSizeCm = &s
		}
		schema.Plants = append(schema.Plants, item)
	}

	return schema
}
