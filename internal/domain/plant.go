package domain

import (
	"fmt"
	"time"
)

const unknownPlantName = "Unknown plant"

// CareAttributes are the placement and pot properties that drive the
// watering interval.
type CareAttributes struct {
	Proximity   Proximity
	PotMaterial PotMaterial
	Substrate   Substrate
	Humidity    Humidity
}

// DefaultCare is applied to plants created without explicit attributes.
func DefaultCare() CareAttributes {
	return CareAttributes{
		Proximity:   ProximityMedium,
		PotMaterial: PotPlastic,
		Substrate:   SubstrateStandard,
		Humidity:    HumidityStandard,
	}
}

func (c CareAttributes) Validate() error {
	if !c.Proximity.Valid() {
		return fmt.Errorf("invalid proximity %q", c.Proximity)
	}
	if !c.PotMaterial.Valid() {
		return fmt.Errorf("invalid pot material %q", c.PotMaterial)
	}
	if !c.Substrate.Valid() {
		return fmt.Errorf("invalid substrate %q", c.Substrate)
	}
	if !c.Humidity.Valid() {
		return fmt.Errorf("invalid humidity %q", c.Humidity)
	}
	return nil
}

type Plant struct {
	ID         string
	SpeciesKey string
	CustomName string
	RoomID     *string

	Care CareAttributes

	// Carried for display only.
	HeightCm       float64
	PotSizeCm      float64
	LastFertilized *time.Time

	LastWatered  time.Time
	NextWatering *time.Time

	OrderIndex int
	Retired    bool
	RetiredAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the custom name, falling back to the species key.
func (p *Plant) DisplayName() string {
	return firstNonEmpty(p.CustomName, p.SpeciesKey, unknownPlantName)
}

func (p *Plant) IsActive() bool {
	return !p.Retired
}

// IsOverdue reports whether the plant's next watering is strictly before now.
// A plant without a computed due date is never overdue.
func (p *Plant) IsOverdue(now time.Time) bool {
	return p.NextWatering != nil && p.NextWatering.Before(now)
}

func (p *Plant) Validate() error {
	if p.SpeciesKey == "" {
		return fmt.Errorf("species is required")
	}
	if err := p.Care.Validate(); err != nil {
		return err
	}
	if p.OrderIndex < 0 {
		return fmt.Errorf("order index must be non-negative, got %d", p.OrderIndex)
	}
	if p.HeightCm < 0 || p.PotSizeCm < 0 {
		return fmt.Errorf("height and pot size must be non-negative")
	}
	if p.LastWatered.IsZero() {
		return fmt.Errorf("last watered date is required")
	}
	return nil
}

// Retire marks the plant as no longer tracked. Retirement is one-way.
func (p *Plant) Retire(now time.Time) error {
	if p.Retired {
		return fmt.Errorf("plant %s is already retired", p.ID)
	}
	p.Retired = true
	p.RetiredAt = &now
	p.UpdatedAt = now
	return nil
}

// PlantPatch carries optional edits to a plant. Nil fields are left unchanged.
type PlantPatch struct {
	SpeciesKey     *string
	CustomName     *string
	RoomID         *string
	ClearRoom      bool
	Proximity      *Proximity
	PotMaterial    *PotMaterial
	Substrate      *Substrate
	Humidity       *Humidity
	HeightCm       *float64
	PotSizeCm      *float64
	LastWatered    *time.Time
	LastFertilized *time.Time
}

// Apply copies the set fields of the patch onto p and reports whether any
// field that affects the watering schedule changed.
func (patch PlantPatch) Apply(p *Plant) (scheduleChanged bool) {
	if patch.SpeciesKey != nil && *patch.SpeciesKey != p.SpeciesKey {
		p.SpeciesKey = *patch.SpeciesKey
		scheduleChanged = true
	}
	p.CustomName = valueOr(patch.CustomName, p.CustomName)
	if patch.ClearRoom {
		p.RoomID = nil
	} else if patch.RoomID != nil {
		id := *patch.RoomID
		p.RoomID = &id
	}

	care := CareAttributes{
		Proximity:   valueOr(patch.Proximity, p.Care.Proximity),
		PotMaterial: valueOr(patch.PotMaterial, p.Care.PotMaterial),
		Substrate:   valueOr(patch.Substrate, p.Care.Substrate),
		Humidity:    valueOr(patch.Humidity, p.Care.Humidity),
	}
	if care != p.Care {
		p.Care = care
		scheduleChanged = true
	}

	p.HeightCm = valueOr(patch.HeightCm, p.HeightCm)
	p.PotSizeCm = valueOr(patch.PotSizeCm, p.PotSizeCm)
	if patch.LastFertilized != nil {
		t := *patch.LastFertilized
		p.LastFertilized = &t
	}
	if patch.LastWatered != nil && !patch.LastWatered.Equal(p.LastWatered) {
		p.LastWatered = *patch.LastWatered
		scheduleChanged = true
	}
	return scheduleChanged
}
