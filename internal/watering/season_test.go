package watering

import (
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestResolveSeason_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want domain.Season
	}{
		{"Jan 1", day(2024, time.January, 1), domain.SeasonWinter},
		{"Mar 19", day(2024, time.March, 19), domain.SeasonWinter},
		{"Mar 20", day(2024, time.March, 20), domain.SeasonSpringAutumn},
		{"Mar 31", day(2024, time.March, 31), domain.SeasonSpringAutumn},
		{"May 15", day(2024, time.May, 15), domain.SeasonSpringAutumn},
		{"Jun 20", day(2024, time.June, 20), domain.SeasonSpringAutumn},
		{"Jun 21", day(2024, time.June, 21), domain.SeasonSummer},
		{"Jul 15", day(2024, time.July, 15), domain.SeasonSummer},
		{"Sep 22", day(2024, time.September, 22), domain.SeasonSummer},
		{"Sep 23", day(2024, time.September, 23), domain.SeasonSpringAutumn},
		{"Nov 30", day(2024, time.November, 30), domain.SeasonSpringAutumn},
		{"Dec 20", day(2024, time.December, 20), domain.SeasonSpringAutumn},
		{"Dec 21", day(2024, time.December, 21), domain.SeasonWinter},
		{"Dec 31", day(2024, time.December, 31), domain.SeasonWinter},
		{"Feb 29 leap", day(2024, time.February, 29), domain.SeasonWinter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSeason(tt.date))
		})
	}
}

func TestResolveSeason_IgnoresYearAndTimeOfDay(t *testing.T) {
	for _, year := range []int{1999, 2023, 2024, 2100} {
		assert.Equal(t, domain.SeasonSummer, ResolveSeason(time.Date(year, time.June, 21, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, domain.SeasonSpringAutumn, ResolveSeason(time.Date(year, time.June, 20, 23, 59, 59, 0, time.UTC)))
	}
}

func TestResolveSeason_EveryDayHasExactlyOneBucket(t *testing.T) {
	counts := map[domain.Season]int{}
	for d := day(2023, time.January, 1); d.Year() == 2023; d = d.AddDate(0, 0, 1) {
		counts[ResolveSeason(d)]++
	}
	assert.Len(t, counts, 3)
	assert.Equal(t, 94, counts[domain.SeasonSummer])        // Jun 21 - Sep 22
	assert.Equal(t, 182, counts[domain.SeasonSpringAutumn]) // Mar 20 - Jun 20, Sep 23 - Dec 20
	assert.Equal(t, 89, counts[domain.SeasonWinter])        // Dec 21 - Mar 19
}

func TestResolveSeason_UsesLocationOfTime(t *testing.T) {
	// 2024-06-20 23:30 in UTC-5 is already Jun 21 in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2024, time.June, 20, 23, 30, 0, 0, loc)
	assert.Equal(t, domain.SeasonSpringAutumn, ResolveSeason(local))
	assert.Equal(t, domain.SeasonSummer, ResolveSeason(local.UTC()))
}
