package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"later today", now.Add(11 * time.Hour), "Today"},
		{"tomorrow morning", time.Date(2026, 2, 8, 1, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"10 days future", now.Add(10 * 24 * time.Hour), "In 10d"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDate(now.Add(-11*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Tomorrow", HumanDate(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "Fri Sep 30, 2022", HumanDate(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "3 days ago", Ago(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "never", Ago(time.Time{}, now))
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   watering.Countdown
		want string
	}{
		{watering.Countdown{Days: 3, Hours: 2, Minutes: 30}, "03:02:30"},
		{watering.Countdown{}, "00:00:00"},
		{watering.Countdown{Days: 12, Hours: 23, Minutes: 59}, "12:23:59"},
		{watering.Countdown{Overdue: true}, "Overdue"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountdown(tt.in))
	}
}

func TestCountdownStyled(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(26 * time.Hour)

	assert.Equal(t, "01:02:00", stripANSI(CountdownStyled(&due, now)))
	assert.Equal(t, "--", stripANSI(CountdownStyled(nil, now)))
	past := now.Add(-time.Minute)
	assert.Equal(t, "Overdue", stripANSI(CountdownStyled(&past, now)))
}

func TestDueIndicator(t *testing.T) {
	assert.Equal(t, "● OVERDUE", stripANSI(DueIndicator(watering.Countdown{Overdue: true})))
	assert.Equal(t, "● TODAY", stripANSI(DueIndicator(watering.Countdown{Hours: 5})))
	assert.Equal(t, "● SOON", stripANSI(DueIndicator(watering.Countdown{Days: 1})))
	assert.Equal(t, "● OK", stripANSI(DueIndicator(watering.Countdown{Days: 4})))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Spring/Autumn", SeasonLabel(domain.SeasonSpringAutumn))
	assert.Equal(t, "Summer", SeasonLabel(domain.SeasonSummer))
	assert.Equal(t, "Living room", RoomTypeLabel(domain.RoomLivingRoom))
	assert.Equal(t, "near · terracotta/standard", CareSummary(domain.CareAttributes{
		Proximity: domain.ProximityNear, PotMaterial: domain.PotTerracotta,
		Substrate: domain.SubstrateStandard, Humidity: domain.HumidityStandard,
	}))
	assert.Equal(t, "far · plastic/heavy · low humidity", CareSummary(domain.CareAttributes{
		Proximity: domain.ProximityFar, PotMaterial: domain.PotPlastic,
		Substrate: domain.SubstrateHeavy, Humidity: domain.HumidityLow,
	}))
	assert.Equal(t, "42.5 cm", FormatCentimeters(42.5))
	assert.Equal(t, "30 cm", FormatCentimeters(30))
	assert.Equal(t, "--", FormatCentimeters(0))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}
