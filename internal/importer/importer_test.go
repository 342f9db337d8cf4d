package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrInt(i int) *int           { return &i }
func ptrFloat(f float64) *float64 { return &f }

func known(keys ...string) SpeciesChecker {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(key string) bool { return set[key] }
}

func validMinimalSchema() *CollectionSchema {
	return &CollectionSchema{
		Plants: []PlantImport{{Species: "Ficus elastica"}},
	}
}

func TestValidateSchema_ValidMinimal(t *testing.T) {
	errs := ValidateSchema(validMinimalSchema(), known("Ficus elastica"))
	assert.Empty(t, errs)
}

func TestValidateSchema_ValidFull(t *testing.T) {
	schema := &CollectionSchema{
		Version: SchemaVersion,
		Rooms: []RoomImport{
			{Ref: "lr", Name: "Living room", Type: "living_room", Window: ptrInt(180)},
			{Ref: "k", Name: "Kitchen", Type: "kitchen"},
		},
		Plants: []PlantImport{
			{Species: "Ficus elastica", Name: "Rubber", RoomRef: ptrStr("lr"),
				Proximity: "near", Pot: "T", Substrate: "L", Humidity: "low",
				LastWatered: ptrStr("2024-07-01"), LastFertilized: ptrStr("2024-06-01T08:00:00Z"),
				HeightCm: ptrFloat(60), PotSizeCm: ptrFloat(18)},
			{Species: "Monstera deliciosa", RoomRef: ptrStr("k")},
		},
	}
	assert.Empty(t, ValidateSchema(schema, known("Ficus elastica", "Monstera deliciosa")))
}

func TestValidateSchema_CollectsAllErrors(t *testing.T) {
	schema := &CollectionSchema{
		Version: 7,
		Rooms: []RoomImport{
			{Ref: "a", Name: "A"},
			{Ref: "a", Name: ""},
			{Name: "No ref", Window: ptrInt(360)},
		},
		Plants: []PlantImport{
			{},
			{Species: "Triffid"},
			{Species: "Ficus elastica", RoomRef: ptrStr("nope"), Pot: "glass"},
			{Species: "Ficus elastica", LastWatered: ptrStr("last week"), HeightCm: ptrFloat(-1)},
		},
	}

	errs := ValidateSchema(schema, known("Ficus elastica"))
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}

	assert.Contains(t, msgs, "version: unsupported value 7 (expected 1)")
	assert.Contains(t, msgs, `rooms[1].ref: duplicate ref "a"`)
	assert.Contains(t, msgs, "rooms[1].name is required")
	assert.Contains(t, msgs, "rooms[2].ref is required")
	assert.Contains(t, msgs, "rooms[2].window must be in [0, 360), got 360")
	assert.Contains(t, msgs, "plants[0].species is required")
	assert.Contains(t, msgs, `plants[1].species: unknown species "Triffid"`)
	assert.Contains(t, msgs, `plants[2].room_ref: unknown room "nope"`)
	assert.Contains(t, msgs, "plants[3].height_cm must not be negative")
	assert.Len(t, errs, 11)
}

func TestValidateSchema_NilCheckerSkipsSpecies(t *testing.T) {
	schema := &CollectionSchema{Plants: []PlantImport{{Species: "Anything"}}}
	assert.Empty(t, ValidateSchema(schema, nil))
}

func TestConvert(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	schema := &CollectionSchema{
		Rooms: []RoomImport{{Ref: "lr", Name: " Living room ", Type: "living", Window: ptrInt(90)}},
		Plants: []PlantImport{
			{Species: "Ficus elastica", Name: "Rubber", RoomRef: ptrStr("lr"), Pot: "terracotta",
				LastWatered: ptrStr("2024-07-01"), HeightCm: ptrFloat(60)},
			{Species: "Monstera deliciosa"},
		},
	}

	c, err := Convert(schema, now)
	require.NoError(t, err)
	require.Len(t, c.Rooms, 1)
	require.Len(t, c.Plants, 2)

	room := c.Rooms[0]
	assert.NotEmpty(t, room.ID)
	assert.Equal(t, "Living room", room.Name)
	assert.Equal(t, domain.RoomLivingRoom, room.Type)
	assert.Equal(t, 90, room.CompassDirection)

	rubber := c.Plants[0]
	require.NotNil(t, rubber.RoomID)
	assert.Equal(t, room.ID, *rubber.RoomID)
	assert.Equal(t, domain.PotTerracotta, rubber.Care.PotMaterial)
	assert.Equal(t, domain.ProximityMedium, rubber.Care.Proximity)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), rubber.LastWatered)
	assert.Equal(t, 60.0, rubber.HeightCm)

	monstera := c.Plants[1]
	assert.Nil(t, monstera.RoomID)
	assert.Equal(t, domain.DefaultCare(), monstera.Care)
	assert.Equal(t, now, monstera.LastWatered)
	assert.NotEqual(t, rubber.ID, monstera.ID)
}

func TestFromDomain_RoundTripsThroughConvert(t *testing.T) {
	roomID := "room-1"
	fert := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	rooms := []*domain.Room{{ID: roomID, Name: "Office", Type: domain.RoomBedroom, CompassDirection: 270}}
	retired := &domain.Plant{ID: "p3", SpeciesKey: "Ficus elastica", Retired: true}
	plants := []*domain.Plant{
		{ID: "p1", SpeciesKey: "Ficus elastica", CustomName: "Rubber", RoomID: &roomID,
			Care:        domain.CareAttributes{Proximity: domain.ProximityNear, PotMaterial: domain.PotTerracotta, Substrate: domain.SubstrateLight, Humidity: domain.HumidityLow},
			LastWatered: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC), LastFertilized: &fert, PotSizeCm: 14},
		retired,
	}

	schema := FromDomain(rooms, plants)
	assert.Equal(t, SchemaVersion, schema.Version)
	require.Len(t, schema.Plants, 1, "retired plants are not exported")
	require.NotNil(t, schema.Plants[0].RoomRef)
	assert.Equal(t, "r1", *schema.Plants[0].RoomRef)
	assert.Nil(t, schema.Plants[0].HeightCm)
	assert.Empty(t, ValidateSchema(schema, known("Ficus elastica")))

	c, err := Convert(schema, time.Now())
	require.NoError(t, err)
	p := c.Plants[0]
	assert.Equal(t, plants[0].Care, p.Care)
	assert.True(t, plants[0].LastWatered.Equal(p.LastWatered))
	assert.True(t, fert.Equal(*p.LastFertilized))
	assert.Equal(t, 14.0, p.PotSizeCm)
	assert.Equal(t, 270, c.Rooms[0].CompassDirection)
	assert.Equal(t, c.Rooms[0].ID, *p.RoomID)
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plants.json")
	data, err := Marshal(&CollectionSchema{Version: 1, Plants: []PlantImport{{Species: "Ficus elastica", Name: "Rubber"}}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	schema, err := LoadSchema(path)
	require.NoError(t, err)
	require.Len(t, schema.Plants, 1)
	assert.Equal(t, "Rubber", schema.Plants[0].Name)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadSchema(path)
	assert.ErrorContains(t, err, "parsing import file")

	_, err = LoadSchema(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
