package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// roomName looks up a plant's room, falling back to a dim placeholder.
func roomName(p *domain.Plant, rooms map[string]string) string {
	if p.RoomID == nil {
		return Dim("--")
	}
	if name, ok := rooms[*p.RoomID]; ok {
		return name
	}
	return Dim("?")
}

func nextLabel(p *domain.Plant, now time.Time) string {
	if p.NextWatering == nil {
		return Dim("--")
	}
	return RelativeDateFrom(*p.NextWatering, now)
}

// FormatPlantList renders active plants in the given order. The # column is
// the manual position used by "plant move".
func FormatPlantList(plants []*domain.Plant, rooms map[string]string, now time.Time) string {
	headers := []string{"#", "ID", "NAME", "SPECIES", "ROOM", "NEXT", "COUNTDOWN"}
	rows := make([][]string, 0, len(plants))

	for _, p := range plants {
		rows = append(rows, []string{
			Dim(strconv.Itoa(p.OrderIndex)),
			TruncID(p.ID),
			Bold(p.DisplayName()),
			p.SpeciesKey,
			roomName(p, rooms),
			nextLabel(p, now),
			CountdownStyled(p.NextWatering, now),
		})
	}

	title := fmt.Sprintf("Plants (%d)", len(plants))
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatPlantDetail renders one plant with its schedule and care attributes.
func FormatPlantDetail(p *domain.Plant, room string, now time.Time) string {
	var b strings.Builder

	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-14s", label)), value)
	}

	b.WriteString(Bold(p.DisplayName()))
	if p.CustomName != "" {
		b.WriteString(Dim("  " + p.SpeciesKey))
	}
	b.WriteString("\n\n")

	if room == "" {
		room = Dim("--")
	}
	line("ID", p.ID)
	line("Room", room)
	line("Care", CareSummary(p.Care))
	line("Height", FormatCentimeters(p.HeightCm))
	line("Pot size", FormatCentimeters(p.PotSizeCm))
	b.WriteString("\n")

	line("Last watered", fmt.Sprintf("%s %s", HumanDate(p.LastWatered, now), Dim("("+Ago(p.LastWatered, now)+")")))
	if p.NextWatering != nil {
		c := CountdownStyled(p.NextWatering, now)
		line("Next watering", fmt.Sprintf("%s  %s", HumanDate(*p.NextWatering, now), c))
		line("Progress", RenderProgress(WateringProgress(p.LastWatered, p.NextWatering, now), 20))
	} else {
		line("Next watering", Dim("unknown species, not scheduled"))
	}
	if p.LastFertilized != nil {
		line("Fertilized", Ago(*p.LastFertilized, now))
	}
	if p.Retired && p.RetiredAt != nil {
		line("Retired", HumanDate(*p.RetiredAt, now))
	}

	return RenderBox("Plant", strings.TrimRight(b.String(), "\n"))
}

// FormatGraveyard renders retired plants, most recently retired first.
func FormatGraveyard(plants []*domain.Plant, now time.Time) string {
	headers := []string{"ID", "NAME", "SPECIES", "RETIRED"}
	rows := make([][]string, 0, len(plants))
	for _, p := range plants {
		retired := Dim("--")
		if p.RetiredAt != nil {
			retired = Ago(*p.RetiredAt, now)
		}
		rows = append(rows, []string{TruncID(p.ID), p.DisplayName(), Dim(p.SpeciesKey), retired})
	}
	return RenderBox("Graveyard", RenderTable(headers, rows))
}

// FormatWatered is the one-line confirmation after marking a plant watered.
func FormatWatered(p *domain.Plant, now time.Time) string {
	if p.NextWatering == nil {
		return fmt.Sprintf("Watered %s.", Bold(p.DisplayName()))
	}
	return fmt.Sprintf("Watered %s. Next watering %s (%s).",
		Bold(p.DisplayName()),
		strings.ToLower(RelativeDateFrom(*p.NextWatering, now)),
		HumanDate(*p.NextWatering, now))
}
