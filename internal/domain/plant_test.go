package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlant_DisplayName(t *testing.T) {
	tests := []struct {
		name  string
		plant Plant
		want  string
	}{
		{"custom name wins", Plant{CustomName: "Monty", SpeciesKey: "Monstera deliciosa"}, "Monty"},
		{"falls back to species", Plant{SpeciesKey: "Monstera deliciosa"}, "Monstera deliciosa"},
		{"unknown", Plant{}, "Unknown plant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plant.DisplayName())
		})
	}
}

func TestPlant_IsOverdue(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Minute)
	after := now.Add(time.Minute)

	assert.False(t, (&Plant{}).IsOverdue(now), "nil due date is never overdue")
	assert.True(t, (&Plant{NextWatering: &before}).IsOverdue(now))
	assert.False(t, (&Plant{NextWatering: &after}).IsOverdue(now))
	assert.False(t, (&Plant{NextWatering: &now}).IsOverdue(now), "due exactly now is not overdue")
}

func TestPlant_Retire_OneWay(t *testing.T) {
	now := time.Now().UTC()
	p := &Plant{ID: "p1"}
	require.NoError(t, p.Retire(now))
	assert.True(t, p.Retired)
	require.NotNil(t, p.RetiredAt)
	assert.Error(t, p.Retire(now))
}

func TestPlant_Validate(t *testing.T) {
	valid := func() *Plant {
		return &Plant{
			SpeciesKey:  "Ficus",
			Care:        DefaultCare(),
			LastWatered: time.Now(),
		}
	}
	require.NoError(t, valid().Validate())

	p := valid()
	p.SpeciesKey = ""
	assert.Error(t, p.Validate())

	p = valid()
	p.Care.Proximity = "window-sill"
	assert.Error(t, p.Validate())

	p = valid()
	p.OrderIndex = -1
	assert.Error(t, p.Validate())

	p = valid()
	p.LastWatered = time.Time{}
	assert.Error(t, p.Validate())
}

func TestPlantPatch_Apply(t *testing.T) {
	base := func() *Plant {
		return &Plant{
			SpeciesKey:  "Ficus",
			CustomName:  "Fred",
			Care:        DefaultCare(),
			LastWatered: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("name only does not touch schedule", func(t *testing.T) {
		p := base()
		name := "Freddie"
		changed := PlantPatch{CustomName: &name}.Apply(p)
		assert.False(t, changed)
		assert.Equal(t, "Freddie", p.CustomName)
	})

	t.Run("care change flags schedule", func(t *testing.T) {
		p := base()
		h := HumidityLow
		changed := PlantPatch{Humidity: &h}.Apply(p)
		assert.True(t, changed)
		assert.Equal(t, HumidityLow, p.Care.Humidity)
	})

	t.Run("same value is not a change", func(t *testing.T) {
		p := base()
		prox := p.Care.Proximity
		changed := PlantPatch{Proximity: &prox}.Apply(p)
		assert.False(t, changed)
	})

	t.Run("last watered flags schedule", func(t *testing.T) {
		p := base()
		lw := p.LastWatered.AddDate(0, 0, 2)
		assert.True(t, PlantPatch{LastWatered: &lw}.Apply(p))
		assert.Equal(t, lw, p.LastWatered)
	})

	t.Run("clear room", func(t *testing.T) {
		p := base()
		room := "r1"
		p.RoomID = &room
		PlantPatch{ClearRoom: true}.Apply(p)
		assert.Nil(t, p.RoomID)
	})
}

func TestParseEnums_Aliases(t *testing.T) {
	prox, err := ParseProximity("Blizko")
	require.NoError(t, err)
	assert.Equal(t, ProximityNear, prox)

	pot, err := ParsePotMaterial("T")
	require.NoError(t, err)
	assert.Equal(t, PotTerracotta, pot)

	sub, err := ParseSubstrate("t")
	require.NoError(t, err)
	assert.Equal(t, SubstrateHeavy, sub)

	hum, err := ParseHumidity("nižší")
	require.NoError(t, err)
	assert.Equal(t, HumidityLow, hum)

	_, err = ParseProximity("")
	assert.Error(t, err)
	_, err = ParseSortOption("random")
	assert.Error(t, err)
}

func TestRoomTypeOrDefault(t *testing.T) {
	assert.Equal(t, RoomKitchen, RoomTypeOrDefault("Kitchen"))
	assert.Equal(t, RoomLivingRoom, RoomTypeOrDefault("livingRoom"))
	assert.Equal(t, RoomLivingRoom, RoomTypeOrDefault("garage"))
}

func TestRoom_CompassPoint(t *testing.T) {
	tests := map[int]string{0: "N", 45: "NE", 90: "E", 180: "S", 200: "S", 270: "W", 340: "N", 315: "NW"}
	for deg, want := range tests {
		r := Room{CompassDirection: deg}
		assert.Equal(t, want, r.CompassPoint(), "degrees %d", deg)
	}
}
