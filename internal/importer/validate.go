package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// SpeciesChecker reports whether a species key exists in the rule table.
type SpeciesChecker func(key string) bool

// ValidateSchema checks the schema for errors before conversion. Returns a
// slice of all validation errors found.
func ValidateSchema(schema *CollectionSchema, knownSpecies SpeciesChecker) []error {
	var errs []error

	if schema.Version != 0 && schema.Version != SchemaVersion {
		errs = append(errs, fmt.Errorf("version: unsupported value %d (expected %d)", schema.Version, SchemaVersion))
	}

	roomRefs := make(map[string]bool)
	errs = append(errs, validateRooms(schema.Rooms, roomRefs)...)
	errs = append(errs, validatePlants(schema.Plants, roomRefs, knownSpecies)...)

	return errs
}

func validateRooms(rooms []RoomImport, refs map[string]bool) []error {
	var errs []error

	for i, r := range rooms {
		prefix := fmt.Sprintf("rooms[%d]", i)
		if r.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[r.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, r.Ref))
		} else {
			refs[r.Ref] = true
		}
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if r.Window != nil && (*r.Window < 0 || *r.Window >= 360) {
			errs = append(errs, fmt.Errorf("%s.window must be in [0, 360), got %d", prefix, *r.Window))
		}
	}

	return errs
}

func validatePlants(plants []PlantImport, roomRefs map[string]bool, knownSpecies SpeciesChecker) []error {
	var errs []error

	for i, p := range plants {
		prefix := fmt.Sprintf("plants[%d]", i)

		if p.Species == "" {
			errs = append(errs, fmt.Errorf("%s.species is required", prefix))
		} else if knownSpecies != nil && !knownSpecies(p.Species) {
			errs = append(errs, fmt.Errorf("%s.species: unknown species %q", prefix, p.Species))
		}
		if p.RoomRef != nil && !roomRefs[*p.RoomRef] {
			errs = append(errs, fmt.Errorf("%s.room_ref: unknown room %q", prefix, *p.RoomRef))
		}
		if _, err := parseCare(p); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
		if p.LastWatered != nil {
			if _, err := parseTimestamp(*p.LastWatered); err != nil {
				errs = append(errs, fmt.Errorf("%s.last_watered: %w", prefix, err))
			}
		}
		if p.LastFertilized != nil {
			if _, err := parseTimestamp(*p.LastFertilized); err != nil {
				errs = append(errs, fmt.Errorf("%s.last_fertilized: %w", prefix, err))
			}
		}
		if p.HeightCm != nil && *p.HeightCm < 0 {
			errs = append(errs, fmt.Errorf("%s.height_cm must not be negative", prefix))
		}
		if p.PotSizeCm != nil && *p.PotSizeCm < 0 {
			errs = append(errs, fmt.Errorf("%s.pot_size_cm must not be negative", prefix))
		}
	}

	return errs
}

// parseCare overlays the plant's care fields onto the defaults.
func parseCare(p PlantImport) (domain.CareAttributes, error) {
	care := domain.DefaultCare()
	var err error
	if p.Proximity != "" {
		if care.Proximity, err = domain.ParseProximity(p.Proximity); err != nil {
			return care, err
		}
	}
	if p.Pot != "" {
		if care.PotMaterial, err = domain.ParsePotMaterial(p.Pot); err != nil {
			return care, err
		}
	}
	if p.Substrate != "" {
		if care.Substrate, err = domain.ParseSubstrate(p.Substrate); err != nil {
			return care, err
		}
	}
	if p.Humidity != "" {
		if care.Humidity, err = domain.ParseHumidity(p.Humidity); err != nil {
			return care, err
		}
	}
	return care, nil
}

// parseTimestamp accepts RFC 3339 or a bare YYYY-MM-DD date (midnight UTC).
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC 3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
