package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/alexanderramin/kvitko/internal/watering"
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// mondayOffset is the column of t's weekday in a Monday-first week.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// RenderMonthGrid draws ref's month as a Monday-first grid. Days with a
// watering due carry a "*" marker, red when the day is already past.
func RenderMonthGrid(ref time.Time, due []time.Time, now time.Time) string {
	marked := make(map[int]bool, len(due))
	for _, d := range due {
		marked[d.Day()] = true
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(ref.Format("January 2006")))
	b.WriteString("\n")
	for i, h := range weekdayHeader {
		b.WriteString(StyleDim.Render(h + " "))
		if i < len(weekdayHeader)-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	start := watering.StartOfMonth(ref)
	last := watering.EndOfMonth(ref).Day()
	col := mondayOffset(start)
	b.WriteString(strings.Repeat("    ", col))

	today := watering.StartOfDay(now.In(ref.Location()))
	for day := 1; day <= last; day++ {
		date := time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, ref.Location())
		cell := fmt.Sprintf("%2d", day)
		switch {
		case marked[day] && date.Before(today):
			cell = StyleRed.Render(cell + "*")
		case marked[day]:
			cell = StyleGreen.Render(cell + "*")
		case date.Equal(today):
			cell = StyleBold.Render(cell) + " "
		default:
			cell += " "
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			col = 0
			if day < last {
				b.WriteString("\n")
			}
		} else if day < last {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func plantNames(plants []*domain.Plant) string {
	names := make([]string, len(plants))
	for i, p := range plants {
		names[i] = p.DisplayName()
	}
	return strings.Join(names, ", ")
}

// FormatMonth renders the month grid followed by each due day and its plants.
func FormatMonth(ref time.Time, days []service.CalendarDay, now time.Time) string {
	dates := make([]time.Time, len(days))
	for i, d := range days {
		dates[i] = d.Date
	}

	var b strings.Builder
	b.WriteString(RenderMonthGrid(ref, dates, now))
	b.WriteString("\n\n")
	if len(days) == 0 {
		b.WriteString(Dim("Nothing due this month."))
	}
	for i, d := range days {
		fmt.Fprintf(&b, "%s  %s", StyleBlue.Render(d.Date.Format("Mon Jan _2")), plantNames(d.Plants))
		if i < len(days)-1 {
			b.WriteString("\n")
		}
	}
	return RenderBox("Calendar", b.String())
}

// FormatDay lists the plants due on one date.
func FormatDay(date time.Time, plants []*domain.Plant, now time.Time) string {
	title := "Due " + HumanDate(date, now)
	if len(plants) == 0 {
		return RenderBox(title, Dim("Nothing to water."))
	}
	headers := []string{"NAME", "SPECIES", "CARE", "COUNTDOWN"}
	rows := make([][]string, 0, len(plants))
	for _, p := range plants {
		rows = append(rows, []string{
			Bold(p.DisplayName()),
			p.SpeciesKey,
			Dim(CareSummary(p.Care)),
			CountdownStyled(p.NextWatering, now),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

func agendaSection(b *strings.Builder, title string, plants []*domain.Plant, now time.Time, showDate bool) {
	if len(plants) == 0 {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString(Header(fmt.Sprintf("%s (%d)", title, len(plants))))
	for _, p := range plants {
		due := *p.NextWatering
		when := FormatCountdown(watering.CountdownTo(due, now))
		if showDate {
			when = fmt.Sprintf("%s  %s", RelativeDateFrom(due, now), Dim(when))
		}
		if watering.IsOverdue(due, now) {
			when = StyleRed.Render(RelativeDateFrom(due, now))
		}
		fmt.Fprintf(b, "\n  %-24s %s", p.DisplayName(), when)
	}
}

// FormatAgenda renders overdue, today's and upcoming waterings.
func FormatAgenda(a watering.Agenda, now time.Time) string {
	if len(a.Overdue)+len(a.Today)+len(a.Upcoming) == 0 {
		return RenderBox("Agenda", Dim("Nothing to water. Enjoy the greenery."))
	}
	var b strings.Builder
	agendaSection(&b, "Overdue", a.Overdue, now, false)
	agendaSection(&b, "Today", a.Today, now, false)
	agendaSection(&b, "Upcoming", a.Upcoming, now, true)
	return RenderBox("Agenda", b.String())
}
