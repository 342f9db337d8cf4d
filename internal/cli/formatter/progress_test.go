package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		width  int
		filled int
		label  string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"half", 0.5, 10, 5, " 50%"},
		{"full", 1, 10, 10, "100%"},
		{"over clamps", 1.5, 10, 10, "100%"},
		{"negative clamps", -0.5, 10, 0, "  0%"},
		{"tiny width clamps to 2", 0.5, 1, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, tt.width))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.True(t, strings.HasSuffix(got, tt.label), got)
			assert.True(t, strings.HasPrefix(got, "["))
		})
	}
}

func TestWateringProgress(t *testing.T) {
	last := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	next := last.AddDate(0, 0, 4)

	assert.InDelta(t, 0.0, WateringProgress(last, &next, last), 1e-9)
	assert.InDelta(t, 0.5, WateringProgress(last, &next, last.AddDate(0, 0, 2)), 1e-9)
	assert.InDelta(t, 1.0, WateringProgress(last, &next, next), 1e-9)
	assert.InDelta(t, 1.0, WateringProgress(last, &next, next.AddDate(0, 0, 3)), 1e-9)
	assert.InDelta(t, 0.0, WateringProgress(last, &next, last.Add(-time.Hour)), 1e-9)
	assert.InDelta(t, 0.0, WateringProgress(last, nil, last), 1e-9)
}
