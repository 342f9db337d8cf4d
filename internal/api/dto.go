package api

import (
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/alexanderramin/kvitko/internal/watering"
)

type careJSON struct {
	Proximity   domain.Proximity   `json:"proximity"`
	PotMaterial domain.PotMaterial `json:"pot_material"`
	Substrate   domain.Substrate   `json:"substrate"`
	Humidity    domain.Humidity    `json:"humidity"`
}

type countdownJSON struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Overdue bool `json:"overdue"`
}

type plantJSON struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Species        string         `json:"species"`
	CustomName     string         `json:"custom_name,omitempty"`
	RoomID         *string        `json:"room_id,omitempty"`
	Care           careJSON       `json:"care"`
	HeightCm       float64        `json:"height_cm,omitempty"`
	PotSizeCm      float64        `json:"pot_size_cm,omitempty"`
	LastWatered    time.Time      `json:"last_watered"`
	LastFertilized *time.Time     `json:"last_fertilized,omitempty"`
	NextWatering   *time.Time     `json:"next_watering,omitempty"`
	Countdown      *countdownJSON `json:"countdown,omitempty"`
	OrderIndex     int            `json:"order_index"`
	Retired        bool           `json:"retired"`
	RetiredAt      *time.Time     `json:"retired_at,omitempty"`
}

func toPlantJSON(p *domain.Plant, now time.Time) plantJSON {
	out := plantJSON{
		ID:         p.ID,
		Name:       p.DisplayName(),
		Species:    p.SpeciesKey,
		CustomName: p.CustomName,
		RoomID:     p.RoomID,
		Care: careJSON{
			Proximity:   p.Care.Proximity,
			PotMaterial: p.Care.PotMaterial,
			Substrate:   p.Care.Substrate,
			Humidity:    p.Care.Humidity,
		},
		HeightCm:       p.HeightCm,
		PotSizeCm:      p.PotSizeCm,
		LastWatered:    p.LastWatered,
		LastFertilized: p.LastFertilized,
		NextWatering:   p.NextWatering,
		OrderIndex:     p.OrderIndex,
		Retired:        p.Retired,
		RetiredAt:      p.RetiredAt,
	}
	if p.NextWatering != nil && !p.Retired {
		c := watering.CountdownTo(*p.NextWatering, now)
		out.Countdown = &countdownJSON{Days: c.Days, Hours: c.Hours, Minutes: c.Minutes, Overdue: c.Overdue}
	}
	return out
}

func toPlantsJSON(plants []*domain.Plant, now time.Time) []plantJSON {
	out := make([]plantJSON, 0, len(plants))
	for _, p := range plants {
		out = append(out, toPlantJSON(p, now))
	}
	return out
}

type roomJSON struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Type             domain.RoomType `json:"type"`
	CompassDirection int             `json:"compass_direction"`
	CompassPoint     string          `json:"compass_point"`
}

type calendarDayJSON struct {
	Date   string      `json:"date"`
	Plants []plantJSON `json:"plants"`
}

func toCalendarJSON(days []service.CalendarDay, now time.Time) []calendarDayJSON {
	out := make([]calendarDayJSON, 0, len(days))
	for _, d := range days {
		out = append(out, calendarDayJSON{
			Date:   d.Date.Format("2006-01-02"),
			Plants: toPlantsJSON(d.Plants, now),
		})
	}
	return out
}

type agendaJSON struct {
	Overdue  []plantJSON `json:"overdue"`
	Today    []plantJSON `json:"today"`
	Upcoming []plantJSON `json:"upcoming"`
}

type speciesJSON struct {
	Key      string        `json:"key"`
	Season   domain.Season `json:"season"`
	Care     careJSON      `json:"care"`
	Interval int           `json:"interval_days"`
}
