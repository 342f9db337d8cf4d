// Package rules holds the watering rule table: per-species interval ranges
// keyed by season, window proximity, pot material and substrate weight.
package rules

import "github.com/alexanderramin/kvitko/internal/domain"

// ProximityProfile holds one interval range per pot material and substrate
// weight combination.
type ProximityProfile struct {
	TerracottaLight    string
	TerracottaStandard string
	TerracottaHeavy    string
	PlasticLight       string
	PlasticStandard    string
	PlasticHeavy       string
}

// Range returns the raw range string for the pair. ok is false when the
// pair is not one of the six known combinations.
func (p ProximityProfile) Range(pot domain.PotMaterial, substrate domain.Substrate) (string, bool) {
	switch pot {
	case domain.PotTerracotta:
		switch substrate {
		case domain.SubstrateLight:
			return p.TerracottaLight, true
		case domain.SubstrateStandard:
			return p.TerracottaStandard, true
		case domain.SubstrateHeavy:
			return p.TerracottaHeavy, true
		}
	case domain.PotPlastic:
		switch substrate {
		case domain.SubstrateLight:
			return p.PlasticLight, true
		case domain.SubstrateStandard:
			return p.PlasticStandard, true
		case domain.SubstrateHeavy:
			return p.PlasticHeavy, true
		}
	}
	return "", false
}

// Entries enumerates the six cells in a fixed order for validation and display.
func (p ProximityProfile) Entries() []Entry {
	return []Entry{
		{domain.PotTerracotta, domain.SubstrateLight, p.TerracottaLight},
		{domain.PotTerracotta, domain.SubstrateStandard, p.TerracottaStandard},
		{domain.PotTerracotta, domain.SubstrateHeavy, p.TerracottaHeavy},
		{domain.PotPlastic, domain.SubstrateLight, p.PlasticLight},
		{domain.PotPlastic, domain.SubstrateStandard, p.PlasticStandard},
		{domain.PotPlastic, domain.SubstrateHeavy, p.PlasticHeavy},
	}
}

// Entry is one pot material and substrate cell of a ProximityProfile.
type Entry struct {
	Pot       domain.PotMaterial
	Substrate domain.Substrate
	Value     string
}

// Name is the document key of the cell, e.g. "terracotta_standard".
func (s Entry) Name() string {
	return string(s.Pot) + "_" + string(s.Substrate)
}

type SeasonProfile struct {
	Near   ProximityProfile
	Medium ProximityProfile
	Far    ProximityProfile
}

func (s SeasonProfile) Proximity(p domain.Proximity) (ProximityProfile, bool) {
	switch p {
	case domain.ProximityNear:
		return s.Near, true
	case domain.ProximityMedium:
		return s.Medium, true
	case domain.ProximityFar:
		return s.Far, true
	}
	return ProximityProfile{}, false
}

// SpeciesProfile is the complete, immutable watering profile for one species.
type SpeciesProfile struct {
	Key          string
	Summer       SeasonProfile
	SpringAutumn SeasonProfile
	Winter       SeasonProfile
}

func (sp *SpeciesProfile) Season(s domain.Season) (SeasonProfile, bool) {
	switch s {
	case domain.SeasonSummer:
		return sp.Summer, true
	case domain.SeasonSpringAutumn:
		return sp.SpringAutumn, true
	case domain.SeasonWinter:
		return sp.Winter, true
	}
	return SeasonProfile{}, false
}
