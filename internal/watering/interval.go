package watering

import (
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/rules"
)

// ResolveInterval returns the number of days between waterings for the
// given pot, substrate and humidity. It never fails: unknown pairs use the
// default range and unparseable ranges use the default interval. The result
// is always at least 1.
func ResolveInterval(p rules.ProximityProfile, pot domain.PotMaterial, substrate domain.Substrate, humidity domain.Humidity) int {
	raw, ok := p.Range(pot, substrate)
	if !ok {
		raw = rules.DefaultRange
	}

	days := rules.DefaultIntervalDays
	if r, ok := rules.ParseRange(raw); ok {
		days = r.Min
	}

	if humidity == domain.HumidityLow {
		days--
	}
	if days < 1 {
		days = 1
	}
	return days
}
