package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/testutil"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDue(t *testing.T, plants *repository.SQLitePlantRepo, name string, order int, due time.Time, opts ...testutil.PlantOption) *domain.Plant {
	t.Helper()
	opts = append([]testutil.PlantOption{
		testutil.WithCustomName(name),
		testutil.WithPlantOrder(order),
		testutil.WithNextWatering(due),
	}, opts...)
	p := testutil.NewTestPlant("Ficus elastica", opts...)
	require.NoError(t, plants.Create(context.Background(), p))
	return p
}

func TestCalendarService_Month(t *testing.T) {
	database := testutil.NewTestDB(t)
	plants := repository.NewSQLitePlantRepo(database)
	svc := NewCalendarService(plants)

	seedDue(t, plants, "a", 0, time.Date(2024, 7, 20, 8, 0, 0, 0, time.UTC))
	seedDue(t, plants, "b", 1, time.Date(2024, 7, 3, 8, 0, 0, 0, time.UTC))
	seedDue(t, plants, "c", 2, time.Date(2024, 7, 20, 18, 0, 0, 0, time.UTC))
	seedDue(t, plants, "august", 3, time.Date(2024, 8, 1, 8, 0, 0, 0, time.UTC))
	seedDue(t, plants, "gone", 4, time.Date(2024, 7, 10, 8, 0, 0, 0, time.UTC),
		testutil.WithRetired(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))

	days, err := svc.Month(context.Background(), time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 3, days[0].Date.Day())
	assert.Len(t, days[0].Plants, 1)
	assert.Equal(t, 20, days[1].Date.Day())
	require.Len(t, days[1].Plants, 2)
	assert.Equal(t, "a", days[1].Plants[0].CustomName)
	assert.Equal(t, "c", days[1].Plants[1].CustomName)
}

func TestCalendarService_Day(t *testing.T) {
	database := testutil.NewTestDB(t)
	plants := repository.NewSQLitePlantRepo(database)
	svc := NewCalendarService(plants)

	seedDue(t, plants, "a", 0, time.Date(2024, 7, 20, 8, 0, 0, 0, time.UTC))
	seedDue(t, plants, "b", 1, time.Date(2024, 7, 21, 8, 0, 0, 0, time.UTC))

	due, err := svc.Day(context.Background(), time.Date(2024, 7, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "b", due[0].CustomName)
}

func TestCalendarService_Agenda(t *testing.T) {
	database := testutil.NewTestDB(t)
	plants := repository.NewSQLitePlantRepo(database)
	svc := NewCalendarService(plants)
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

	seedDue(t, plants, "late", 0, now.AddDate(0, 0, -1))
	seedDue(t, plants, "tonight", 1, now.Add(6*time.Hour))
	seedDue(t, plants, "soon", 2, now.AddDate(0, 0, 2))
	seedDue(t, plants, "later", 3, now.AddDate(0, 0, 20))

	agenda, err := svc.Agenda(context.Background(), now, 7)
	require.NoError(t, err)
	require.Len(t, agenda.Overdue, 1)
	assert.Equal(t, "late", agenda.Overdue[0].CustomName)
	require.Len(t, agenda.Today, 1)
	assert.Equal(t, "tonight", agenda.Today[0].CustomName)
	require.Len(t, agenda.Upcoming, 1)
	assert.Equal(t, "soon", agenda.Upcoming[0].CustomName)
}

func TestCatalogService(t *testing.T) {
	svc := NewCatalogService(rules.Default(), "built-in")
	ctx := context.Background()

	assert.Equal(t, "built-in", svc.Source())
	assert.Contains(t, svc.List(ctx), "Monstera deliciosa")
	assert.ElementsMatch(t, []string{"Monstera deliciosa", "Monstera adansonii"}, svc.Search(ctx, "monstera"))

	detail, err := svc.Show(ctx, "Monstera deliciosa", domain.CareAttributes{}, july1)
	require.NoError(t, err)
	assert.Equal(t, domain.SeasonSummer, detail.Season)
	assert.Equal(t, domain.DefaultCare(), detail.Care)
	assert.Equal(t, 5, detail.Interval)

	winter := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	care := domain.DefaultCare()
	care.Humidity = domain.HumidityLow
	detail, err = svc.Show(ctx, "Monstera deliciosa", care, winter)
	require.NoError(t, err)
	assert.Equal(t, domain.SeasonWinter, detail.Season)
	assert.Equal(t, 11, detail.Interval)

	_, err = svc.Show(ctx, "Triffid", care, winter)
	assert.ErrorIs(t, err, watering.ErrUnknownSpecies)
}
