package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/charmbracelet/lipgloss"
)

// Palette: greens for healthy plants, terracotta for headers, soil tones for
// secondary text.
var (
	ColorGreen  = lipgloss.Color("#7fb069")
	ColorYellow = lipgloss.Color("#e6c229")
	ColorRed    = lipgloss.Color("#d1495b")
	ColorBlue   = lipgloss.Color("#5b8e7d")
	ColorPurple = lipgloss.Color("#a78bb4")
	ColorDim    = lipgloss.Color("#8c7b6b")
	ColorFg     = lipgloss.Color("#ece2d0")
	ColorHeader = lipgloss.Color("#d9734e")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DueStyle colors a countdown by urgency: red when overdue, yellow within
// two days, green otherwise.
func DueStyle(c watering.Countdown) lipgloss.Style {
	switch {
	case c.Overdue:
		return StyleRed
	case c.Days < 2:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// DueIndicator returns a colored status such as "● OVERDUE".
func DueIndicator(c watering.Countdown) string {
	switch {
	case c.Overdue:
		return StyleRed.Render("● OVERDUE")
	case c.Days == 0:
		return StyleYellow.Render("● TODAY")
	case c.Days < 2:
		return StyleYellow.Render("● SOON")
	default:
		return StyleGreen.Render("● OK")
	}
}

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
