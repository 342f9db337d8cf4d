package watering

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/rules"
)

// ErrUnknownSpecies is returned when a plant's species key has no profile in
// the rule table. The plant's due date is left untouched.
var ErrUnknownSpecies = errors.New("unknown species")

// ProfileSource resolves species keys to watering profiles. *rules.Table
// satisfies it.
type ProfileSource interface {
	Lookup(key string) (*rules.SpeciesProfile, bool)
}

// Projector computes next-watering dates against an injected rule source.
type Projector struct {
	source ProfileSource
}

func NewProjector(source ProfileSource) *Projector {
	return &Projector{source: source}
}

// Profile resolves the species profile for key or returns ErrUnknownSpecies.
func (p *Projector) Profile(key string) (*rules.SpeciesProfile, error) {
	if p.source != nil {
		if profile, ok := p.source.Lookup(key); ok {
			return profile, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, key)
}

// IntervalFor returns the watering interval in days for care attributes
// under the season in effect at ref.
func IntervalFor(profile *rules.SpeciesProfile, care domain.CareAttributes, ref time.Time) int {
	season, _ := profile.Season(ResolveSeason(ref))
	prox, _ := season.Proximity(care.Proximity)
	return ResolveInterval(prox, care.PotMaterial, care.Substrate, care.Humidity)
}

// ProjectProfile returns lastWatered advanced by the interval for the season
// at ref. The advance is in calendar days, so wall-clock time of day is kept
// across DST changes.
func ProjectProfile(profile *rules.SpeciesProfile, care domain.CareAttributes, lastWatered, ref time.Time) time.Time {
	return lastWatered.AddDate(0, 0, IntervalFor(profile, care, ref))
}

// Project resolves speciesKey and projects the next watering date.
func (p *Projector) Project(speciesKey string, care domain.CareAttributes, lastWatered, ref time.Time) (time.Time, error) {
	profile, err := p.Profile(speciesKey)
	if err != nil {
		return time.Time{}, err
	}
	return ProjectProfile(profile, care, lastWatered, ref), nil
}

// Recompute sets plant.NextWatering from its current attributes and the
// given profile.
func Recompute(plant *domain.Plant, profile *rules.SpeciesProfile, ref time.Time) {
	next := ProjectProfile(profile, plant.Care, plant.LastWatered, ref)
	plant.NextWatering = &next
}

// Recompute is the single entry point every plant mutation goes through to
// refresh NextWatering. On ErrUnknownSpecies the plant is not modified.
func (p *Projector) Recompute(plant *domain.Plant, ref time.Time) error {
	profile, err := p.Profile(plant.SpeciesKey)
	if err != nil {
		return err
	}
	Recompute(plant, profile, ref)
	return nil
}
