package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fmtNow = time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

func testPlant(id, name string, order int, due *time.Time) *domain.Plant {
	return &domain.Plant{
		ID:           id,
		SpeciesKey:   "Monstera deliciosa",
		CustomName:   name,
		Care:         domain.DefaultCare(),
		LastWatered:  fmtNow.AddDate(0, 0, -2),
		NextWatering: due,
		OrderIndex:   order,
	}
}

func at(t time.Time) *time.Time { return &t }

func TestFormatPlantList(t *testing.T) {
	room := "room-1"
	a := testPlant("aaaaaaaa-1111", "Monty", 0, at(fmtNow.Add(26*time.Hour)))
	a.RoomID = &room
	b := testPlant("bbbbbbbb-2222", "", 1, at(fmtNow.Add(-time.Hour)))
	c := testPlant("cccccccc-3333", "Orphan", 2, nil)

	out := stripANSI(FormatPlantList([]*domain.Plant{a, b, c}, map[string]string{room: "Kitchen"}, fmtNow))

	assert.Contains(t, out, "PLANTS (3)")
	assert.Contains(t, out, "Monty")
	assert.Contains(t, out, "Kitchen")
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "01:02:00")
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "Tomorrow")
	// Three species cells plus the unnamed plant's display name.
	assert.Equal(t, 4, strings.Count(out, "Monstera deliciosa"))
}

func TestFormatPlantDetail(t *testing.T) {
	p := testPlant("p1", "Monty", 0, at(fmtNow.AddDate(0, 0, 3)))
	p.HeightCm = 80

	out := stripANSI(FormatPlantDetail(p, "Kitchen", fmtNow))
	assert.Contains(t, out, "Monty")
	assert.Contains(t, out, "Kitchen")
	assert.Contains(t, out, "medium · plastic/standard")
	assert.Contains(t, out, "80 cm")
	assert.Contains(t, out, "2 days ago")
	assert.Contains(t, out, "03:00:00")
	assert.Contains(t, out, "[")

	orphan := testPlant("p2", "", 0, nil)
	out = stripANSI(FormatPlantDetail(orphan, "", fmtNow))
	assert.Contains(t, out, "not scheduled")
}

func TestFormatGraveyard(t *testing.T) {
	p := testPlant("p1", "Old fern", 0, nil)
	p.Retired = true
	p.RetiredAt = at(fmtNow.AddDate(0, 0, -7))

	out := stripANSI(FormatGraveyard([]*domain.Plant{p}, fmtNow))
	assert.Contains(t, out, "GRAVEYARD")
	assert.Contains(t, out, "Old fern")
	assert.Contains(t, out, "1 week ago")
}

func TestFormatWatered(t *testing.T) {
	p := testPlant("p1", "Monty", 0, at(fmtNow.AddDate(0, 0, 5)))
	out := stripANSI(FormatWatered(p, fmtNow))
	assert.Equal(t, "Watered Monty. Next watering in 5d (Mon Jul 15, 2024).", out)
}

func TestRenderMonthGrid(t *testing.T) {
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	due := []time.Time{
		time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
	}

	out := stripANSI(RenderMonthGrid(ref, due, fmtNow))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7, "title, weekday header and five weeks")
	assert.Equal(t, "July 2024", lines[0])
	// July 1, 2024 is a Monday.
	assert.True(t, strings.HasPrefix(lines[2], " 1 "), lines[2])
	assert.Contains(t, out, " 3*")
	assert.Contains(t, out, "20*")
	assert.NotContains(t, out, "10*")
	assert.True(t, strings.HasPrefix(lines[6], "29 "), lines[6])
	assert.True(t, strings.HasSuffix(lines[6], "31 "), lines[6])
}

func TestRenderMonthGrid_LeadingBlanks(t *testing.T) {
	// September 2024 starts on a Sunday.
	ref := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
	lines := strings.Split(stripANSI(RenderMonthGrid(ref, nil, fmtNow)), "\n")
	assert.Equal(t, strings.Repeat("    ", 6)+" 1 ", lines[2])
}

func TestFormatMonth(t *testing.T) {
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	days := []service.CalendarDay{
		{Date: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), Plants: []*domain.Plant{
			testPlant("a", "Monty", 0, nil), testPlant("b", "Fig", 1, nil),
		}},
	}
	out := stripANSI(FormatMonth(ref, days, fmtNow))
	assert.Contains(t, out, "Sat Jul 20")
	assert.Contains(t, out, "Monty, Fig")

	empty := stripANSI(FormatMonth(ref, nil, fmtNow))
	assert.Contains(t, empty, "Nothing due this month.")
}

func TestFormatAgenda(t *testing.T) {
	a := watering.Agenda{
		Overdue:  []*domain.Plant{testPlant("a", "Late", 0, at(fmtNow.AddDate(0, 0, -2)))},
		Today:    []*domain.Plant{testPlant("b", "Tonight", 1, at(fmtNow.Add(6*time.Hour)))},
		Upcoming: []*domain.Plant{testPlant("c", "Soon", 2, at(fmtNow.AddDate(0, 0, 3)))},
	}
	out := stripANSI(FormatAgenda(a, fmtNow))

	assert.Contains(t, out, "OVERDUE (1)")
	assert.Contains(t, out, "2d ago")
	assert.Contains(t, out, "TODAY (1)")
	assert.Contains(t, out, "00:06:00")
	assert.Contains(t, out, "UPCOMING (1)")
	assert.Contains(t, out, "In 3d")
	assert.Less(t, strings.Index(out, "Late"), strings.Index(out, "Tonight"))

	assert.Contains(t, stripANSI(FormatAgenda(watering.Agenda{}, fmtNow)), "Nothing to water")
}

func TestFormatSpeciesDetail(t *testing.T) {
	profile, ok := rules.Default().Lookup("Monstera deliciosa")
	require.True(t, ok)
	d := &service.SpeciesDetail{
		Profile:  profile,
		Season:   domain.SeasonSummer,
		Care:     domain.DefaultCare(),
		Interval: 5,
	}
	out := stripANSI(FormatSpeciesDetail(d))

	assert.Contains(t, out, "every 5 days")
	assert.Contains(t, out, "SUMMER (NOW)")
	assert.Contains(t, out, "SPRING/AUTUMN")
	assert.Contains(t, out, "WINTER")
	assert.Contains(t, out, "TERRACOTTA_STANDARD")
	assert.Contains(t, out, "12-13")
}

func TestFormatRuleReport(t *testing.T) {
	res, err := rules.Parse([]byte(`{"Fern": {
		"summer": {"near": {"terracotta_light": "x"}, "medium": {}, "far": {}},
		"spring_autumn": {"near": {}, "medium": {}, "far": {}},
		"winter": {"near": {}, "medium": {}, "far": {}}}}`), rules.FormatJSON)
	require.NoError(t, err)
	res.Source = "rules.json"

	out := stripANSI(FormatRuleReport(res))
	assert.Contains(t, out, "rules.json")
	assert.Contains(t, out, "fall back to the default interval")
	assert.Contains(t, out, "Fern/summer/near/terracotta_light")

	ok := stripANSI(FormatRuleReport(&rules.LoadResult{Table: rules.Default(), Source: "built-in"}))
	assert.Contains(t, ok, "All ranges valid")
}

func TestFormatReminders(t *testing.T) {
	pending := []service.PendingReminder{
		{Reminder: &domain.Reminder{PlantID: "a", At: time.Date(2024, 7, 12, 9, 0, 0, 0, time.UTC)}, Plant: testPlant("a", "Monty", 0, nil)},
		{Reminder: &domain.Reminder{PlantID: "b", At: time.Date(2024, 7, 9, 9, 0, 0, 0, time.UTC)}, Plant: testPlant("b", "Fig", 1, nil)},
	}
	out := stripANSI(FormatReminders(pending, fmtNow))
	assert.Contains(t, out, "Fri Jul 12 09:00")
	assert.Contains(t, out, "In 2d")
	assert.Contains(t, out, "due")

	assert.Contains(t, stripANSI(FormatReminders(nil, fmtNow)), "No pending reminders.")
}
