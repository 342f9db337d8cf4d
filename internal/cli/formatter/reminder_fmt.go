package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kvitko/internal/service"
)

// FormatReminders renders pending reminders, earliest first.
func FormatReminders(pending []service.PendingReminder, now time.Time) string {
	if len(pending) == 0 {
		return RenderBox("Reminders", Dim("No pending reminders."))
	}
	headers := []string{"PLANT", "REMIND AT", "IN"}
	rows := make([][]string, 0, len(pending))
	for _, p := range pending {
		at := p.Reminder.At
		in := RelativeDateFrom(at, now)
		if at.Before(now) {
			in = StyleRed.Render("due")
		}
		rows = append(rows, []string{
			Bold(p.Plant.DisplayName()),
			fmt.Sprintf("%s %s", at.In(now.Location()).Format("Mon Jan _2"), at.In(now.Location()).Format("15:04")),
			in,
		})
	}
	return RenderBox("Reminders", RenderTable(headers, rows))
}
