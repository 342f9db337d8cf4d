// Package watering computes watering due dates from a rule table and derives
// the read-side views built on them: countdowns, overdue checks and calendar
// aggregation.
package watering

import (
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// ResolveSeason maps the month and day of t, in t's location, to a season
// bucket. Boundaries are fixed Northern-hemisphere dates; the year is ignored.
//
//	summer:        Jun 21 - Sep 22
//	spring_autumn: Mar 20 - Jun 20, Sep 23 - Dec 20
//	winter:        Dec 21 - Mar 19
func ResolveSeason(t time.Time) domain.Season {
	_, month, day := t.Date()
	switch month {
	case time.January, time.February:
		return domain.SeasonWinter
	case time.March:
		if day >= 20 {
			return domain.SeasonSpringAutumn
		}
		return domain.SeasonWinter
	case time.April, time.May:
		return domain.SeasonSpringAutumn
	case time.June:
		if day >= 21 {
			return domain.SeasonSummer
		}
		return domain.SeasonSpringAutumn
	case time.July, time.August:
		return domain.SeasonSummer
	case time.September:
		if day <= 22 {
			return domain.SeasonSummer
		}
		return domain.SeasonSpringAutumn
	case time.October, time.November:
		return domain.SeasonSpringAutumn
	default: // December
		if day <= 20 {
			return domain.SeasonSpringAutumn
		}
		return domain.SeasonWinter
	}
}
