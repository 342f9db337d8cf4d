package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a short relative day string such as "Tomorrow"
// or "In 3d". Days are whole calendar days in now's location.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := watering.StartOfDay(t.In(now.Location())).Sub(watering.StartOfDay(now))
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// HumanDate formats t as an absolute date, or "Today"/"Yesterday"/"Tomorrow"
// relative to now.
func HumanDate(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case watering.SameDay(now, t):
		return "Today"
	case watering.SameDay(now.AddDate(0, 0, -1), t):
		return "Yesterday"
	case watering.SameDay(now.AddDate(0, 0, 1), t):
		return "Tomorrow"
	}
	return t.Format("Mon Jan 2, 2006")
}

// Ago renders how long ago t was, e.g. "3 days ago".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatCountdown renders days, hours and minutes as "DD:HH:MM", or
// "Overdue".
func FormatCountdown(c watering.Countdown) string {
	if c.Overdue {
		return "Overdue"
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Days, c.Hours, c.Minutes)
}

// CountdownStyled renders the countdown to due, colored by urgency. A nil
// due date renders as a dim placeholder.
func CountdownStyled(due *time.Time, now time.Time) string {
	if due == nil {
		return Dim("--")
	}
	c := watering.CountdownTo(*due, now)
	return DueStyle(c).Render(FormatCountdown(c))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func titleWords(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func SeasonLabel(s domain.Season) string {
	if s == domain.SeasonSpringAutumn {
		return "Spring/Autumn"
	}
	return titleWords(string(s))
}

// SeasonBadge is SeasonLabel in the season's color.
func SeasonBadge(s domain.Season) string {
	switch s {
	case domain.SeasonSummer:
		return StyleYellow.Render(SeasonLabel(s))
	case domain.SeasonWinter:
		return StyleBlue.Render(SeasonLabel(s))
	default:
		return StyleGreen.Render(SeasonLabel(s))
	}
}

func RoomTypeLabel(t domain.RoomType) string {
	return titleWords(string(t))
}

// CareSummary renders care attributes compactly, e.g.
// "near · terracotta/standard · low humidity".
func CareSummary(c domain.CareAttributes) string {
	parts := []string{
		string(c.Proximity),
		fmt.Sprintf("%s/%s", c.PotMaterial, c.Substrate),
	}
	if c.Humidity == domain.HumidityLow {
		parts = append(parts, "low humidity")
	}
	return strings.Join(parts, " · ")
}

// FormatCentimeters renders a length such as "42.5 cm", or "--" when unset.
func FormatCentimeters(v float64) string {
	if v <= 0 {
		return "--"
	}
	return humanize.FtoaWithDigits(v, 1) + " cm"
}
