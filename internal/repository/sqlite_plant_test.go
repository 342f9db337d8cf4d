package repository

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	prague := time.FixedZone("CEST", 2*3600)
	watered := time.Date(2024, 7, 1, 18, 30, 0, 0, prague)
	next := watered.AddDate(0, 0, 4)
	fert := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	p := testutil.NewTestPlant("Monstera deliciosa",
		testutil.WithCustomName("Monty"),
		testutil.WithProximity(domain.ProximityNear),
		testutil.WithPotMaterial(domain.PotTerracotta),
		testutil.WithHumidity(domain.HumidityLow),
		testutil.WithLastWatered(watered),
		testutil.WithNextWatering(next),
		testutil.WithLastFertilized(fert),
		testutil.WithDimensions(85.5, 24),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monty", got.CustomName)
	assert.Equal(t, "Monstera deliciosa", got.SpeciesKey)
	assert.Equal(t, p.Care, got.Care)
	assert.Nil(t, got.RoomID)
	assert.Equal(t, 85.5, got.HeightCm)
	assert.Equal(t, 24.0, got.PotSizeCm)
	assert.True(t, watered.Equal(got.LastWatered))
	require.NotNil(t, got.NextWatering)
	assert.True(t, next.Equal(*got.NextWatering))
	require.NotNil(t, got.LastFertilized)
	assert.True(t, fert.Equal(*got.LastFertilized))
	assert.False(t, got.Retired)
	assert.Nil(t, got.RetiredAt)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestPlantRepo_KeepsOffsetOfWateringTimes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	// 00:30 local on Jul 5 is still Jul 4 in UTC.
	zone := time.FixedZone("UTC+2", 2*3600)
	next := time.Date(2024, 7, 5, 0, 30, 0, 0, zone)
	p := testutil.NewTestPlant("Ficus elastica", testutil.WithNextWatering(next))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextWatering)
	assert.Equal(t, 5, got.NextWatering.Day())
}

func TestPlantRepo_RoundTripRestoresNamedZone(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)
	watered := time.Date(2024, 3, 28, 23, 30, 0, 0, prague) // CET, +01:00
	next := watered.AddDate(0, 0, 8)                        // CEST, +02:00
	p := testutil.NewTestPlant("Monstera deliciosa",
		testutil.WithLastWatered(watered),
		testutil.WithNextWatering(next),
		testutil.WithLastFertilized(watered),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Prague", got.LastWatered.Location().String())
	assert.Equal(t, "Europe/Prague", got.NextWatering.Location().String())
	assert.Equal(t, "Europe/Prague", got.LastFertilized.Location().String())

	// Calendar arithmetic on the stored value follows the DST change.
	assert.Equal(t, "2024-04-05 23:30:00", got.LastWatered.AddDate(0, 0, 8).Format(time.DateTime))
	assert.Equal(t, "2024-04-05 23:30:00", got.NextWatering.Format(time.DateTime))

	// The zone is rewritten with the plant.
	utc := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	got.LastWatered = utc
	got.NextWatering = nil
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, again.LastWatered.Location())
}

func TestPlantRepo_RowsWithoutZoneKeepOffset(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	p := testutil.NewTestPlant("Ficus elastica",
		testutil.WithLastWatered(time.Date(2024, 3, 28, 23, 30, 0, 0, time.FixedZone("", 3600))))
	require.NoError(t, repo.Create(ctx, p))
	_, err := db.Exec(`UPDATE plants SET time_zone = '' WHERE id = ?`, p.ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	_, offset := got.LastWatered.Zone()
	assert.Equal(t, 3600, offset)
	assert.Equal(t, 23, got.LastWatered.Hour())
}

func TestPlantRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlantRepo_ListActive_OrderedAndExcludesRetired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	c := testutil.NewTestPlant("C", testutil.WithPlantOrder(2))
	a := testutil.NewTestPlant("A", testutil.WithPlantOrder(0))
	dead := testutil.NewTestPlant("Dead", testutil.WithRetired(time.Now().UTC().Truncate(time.Second)))
	b := testutil.NewTestPlant("B", testutil.WithPlantOrder(1))
	for _, p := range []*domain.Plant{c, a, dead, b} {
		require.NoError(t, repo.Create(ctx, p))
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "A", active[0].SpeciesKey)
	assert.Equal(t, "B", active[1].SpeciesKey)
	assert.Equal(t, "C", active[2].SpeciesKey)

	retired, err := repo.ListRetired(ctx)
	require.NoError(t, err)
	require.Len(t, retired, 1)
	assert.Equal(t, dead.ID, retired[0].ID)
	assert.True(t, retired[0].Retired)
	require.NotNil(t, retired[0].RetiredAt)
}

func TestPlantRepo_ListRetired_ByDisplayName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	retiredAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	zz := testutil.NewTestPlant("Aloe vera", testutil.WithCustomName("zz"), testutil.WithRetired(retiredAt))
	fern := testutil.NewTestPlant("Boston fern", testutil.WithRetired(retiredAt.AddDate(0, -3, 0)))
	basil := testutil.NewTestPlant("Ocimum", testutil.WithCustomName("basil"), testutil.WithRetired(retiredAt))
	for _, p := range []*domain.Plant{zz, fern, basil} {
		require.NoError(t, repo.Create(ctx, p))
	}

	retired, err := repo.ListRetired(ctx)
	require.NoError(t, err)
	require.Len(t, retired, 3)
	assert.Equal(t, []string{"basil", "Boston fern", "zz"},
		[]string{retired[0].DisplayName(), retired[1].DisplayName(), retired[2].DisplayName()})
}

func TestPlantRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	rooms := NewSQLiteRoomRepo(db)
	ctx := context.Background()

	room := testutil.NewTestRoom("Kitchen")
	require.NoError(t, rooms.Create(ctx, room))
	p := testutil.NewTestPlant("Ficus elastica")
	require.NoError(t, repo.Create(ctx, p))

	next := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	p.RoomID = &room.ID
	p.Care.Substrate = domain.SubstrateHeavy
	p.NextWatering = &next
	p.CustomName = "Rubber tree"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RoomID)
	assert.Equal(t, room.ID, *got.RoomID)
	assert.Equal(t, domain.SubstrateHeavy, got.Care.Substrate)
	assert.Equal(t, "Rubber tree", got.CustomName)
	require.NotNil(t, got.NextWatering)
	assert.True(t, next.Equal(*got.NextWatering))

	byRoom, err := repo.ListByRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, p.ID, byRoom[0].ID)
}

func TestPlantRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestPlant("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlantRepo_UpdateOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	a := testutil.NewTestPlant("A", testutil.WithPlantOrder(0))
	b := testutil.NewTestPlant("B", testutil.WithPlantOrder(1))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.OrderIndex, b.OrderIndex = 1, 0
	require.NoError(t, repo.UpdateOrder(ctx, []*domain.Plant{a, b}))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b.ID, active[0].ID)
	assert.Equal(t, a.ID, active[1].ID)

	ghost := testutil.NewTestPlant("Ghost")
	assert.ErrorIs(t, repo.UpdateOrder(ctx, []*domain.Plant{ghost}), ErrNotFound)
}

func TestPlantRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlantRepo(db)
	ctx := context.Background()

	p := testutil.NewTestPlant("Ficus")
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}
