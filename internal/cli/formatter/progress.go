package formatter

import (
	"fmt"
	"strings"
	"time"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// WateringProgress is the share of the current interval that has elapsed,
// clamped to [0, 1]. It is 1 once the plant is due.
func WateringProgress(lastWatered time.Time, next *time.Time, now time.Time) float64 {
	if next == nil {
		return 0
	}
	total := next.Sub(lastWatered)
	if total <= 0 || !now.Before(*next) {
		return 1
	}
	pct := float64(now.Sub(lastWatered)) / float64(total)
	if pct < 0 {
		return 0
	}
	return pct
}

// RenderProgress renders a bar like [████░░░░]  45%. The bar is green while
// under two thirds, yellow after that and red when full.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	style := StyleGreen
	switch {
	case pct >= 1:
		style = StyleRed
	case pct >= 0.66:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
