package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantFormValues_Plant(t *testing.T) {
	now := time.Date(2024, 7, 10, 18, 30, 0, 0, time.UTC)
	v := newPlantFormValues()
	v.Species = "Ficus elastica"
	v.Name = "Rubber"
	v.RoomID = "room-1"
	v.Proximity = "near"
	v.Pot = "terracotta"
	v.LastWatered = "2024-07-08"
	v.Height = "42.5"

	p := v.plant(now)
	assert.Equal(t, "Ficus elastica", p.SpeciesKey)
	assert.Equal(t, "Rubber", p.CustomName)
	require.NotNil(t, p.RoomID)
	assert.Equal(t, "room-1", *p.RoomID)
	assert.Equal(t, domain.ProximityNear, p.Care.Proximity)
	assert.Equal(t, domain.PotTerracotta, p.Care.PotMaterial)
	assert.Equal(t, domain.SubstrateStandard, p.Care.Substrate)
	assert.Equal(t, time.Date(2024, 7, 8, 18, 30, 0, 0, time.UTC), p.LastWatered)
	assert.Equal(t, 42.5, p.HeightCm)
	assert.Zero(t, p.PotSizeCm)
}

func TestPlantFormValues_Defaults(t *testing.T) {
	now := time.Date(2024, 7, 10, 18, 30, 0, 0, time.UTC)
	v := newPlantFormValues()
	v.Species = "Monstera deliciosa"

	p := v.plant(now)
	assert.Equal(t, domain.DefaultCare(), p.Care)
	assert.Nil(t, p.RoomID)
	assert.Equal(t, now, p.LastWatered)
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2024-02-29"))
	assert.Error(t, validateOptionalDate("29.2.2024"))

	assert.NoError(t, validatePositiveFloat(""))
	assert.NoError(t, validatePositiveFloat("12.5"))
	assert.Error(t, validatePositiveFloat("0"))
	assert.Error(t, validatePositiveFloat("tall"))
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2024, 7, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", now, false},
		{"now", now, false},
		{"Today", now, false},
		{"yesterday", now.AddDate(0, 0, -1), false},
		{"2024-07-01", time.Date(2024, 7, 1, 18, 30, 0, 0, time.UTC), false},
		{"2024-07-01T07:15", time.Date(2024, 7, 1, 7, 15, 0, 0, time.UTC), false},
		{"01/07/2024", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWhen(tt.in, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePlantID_Ambiguous(t *testing.T) {
	app := testApp(t)
	seedPlant(t, app, "Ficus elastica", "Twin")
	seedPlant(t, app, "Ficus elastica", "Twin")

	_, err := executeCmd(t, app, "plant", "show", "twin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestResolvePlantID_Prefix(t *testing.T) {
	app := testApp(t)
	p := seedPlant(t, app, "Ficus elastica", "Rubber")

	id, err := resolvePlantID(t.Context(), app, p.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)
}
