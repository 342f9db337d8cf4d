package watering

import "time"

// ReminderTime places a reminder on due's calendar day at the preferred
// hour and minute, in due's location.
func ReminderTime(due time.Time, hour, minute int) time.Time {
	y, m, d := due.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, due.Location())
}
