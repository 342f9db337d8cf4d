package domain

import (
	"fmt"
	"strings"
	"time"
)

type Room struct {
	ID   string
	Name string
	Type RoomType
	// CompassDirection is the window bearing in degrees, 0 = north.
	CompassDirection int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("room name is required")
	}
	if r.CompassDirection < 0 || r.CompassDirection >= 360 {
		return fmt.Errorf("compass direction must be in [0, 360), got %d", r.CompassDirection)
	}
	return nil
}

// CompassPoint returns the nearest of the eight principal compass points.
func (r *Room) CompassPoint() string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := ((r.CompassDirection + 22) % 360) / 45
	return points[idx]
}
