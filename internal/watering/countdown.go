package watering

import "time"

// IsOverdue reports whether due is strictly before now.
func IsOverdue(due, now time.Time) bool {
	return due.Before(now)
}

// Countdown is the time remaining until a due date split into calendar days
// plus hours and minutes. Overdue is set, and the other fields are zero,
// when the due date has passed.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Overdue bool
}

// CountdownTo returns the calendar difference from now to due. Days are
// counted with calendar arithmetic in now's location, so a day that spans a
// DST change still counts as one day.
func CountdownTo(due, now time.Time) Countdown {
	if IsOverdue(due, now) {
		return Countdown{Overdue: true}
	}

	days := int(due.Sub(now) / (24 * time.Hour))
	for days > 0 && now.AddDate(0, 0, days).After(due) {
		days--
	}
	for !now.AddDate(0, 0, days+1).After(due) {
		days++
	}

	rem := due.Sub(now.AddDate(0, 0, days))
	return Countdown{
		Days:    days,
		Hours:   int(rem / time.Hour),
		Minutes: int(rem % time.Hour / time.Minute),
	}
}
