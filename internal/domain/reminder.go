package domain

import "time"

// Reminder is a pending watering reminder. A plant has at most one.
type Reminder struct {
	PlantID   string
	At        time.Time
	CreatedAt time.Time
}
