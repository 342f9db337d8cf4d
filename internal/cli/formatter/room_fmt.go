package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// FormatRoomList renders rooms with the number of active plants in each.
func FormatRoomList(rooms []*domain.Room, plantCounts map[string]int) string {
	headers := []string{"ID", "NAME", "TYPE", "WINDOW", "PLANTS"}
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			StylePurple.Render(RoomTypeLabel(r.Type)),
			fmt.Sprintf("%s %s", r.CompassPoint(), Dim(fmt.Sprintf("(%d°)", r.CompassDirection))),
			strconv.Itoa(plantCounts[r.ID]),
		})
	}
	return RenderBox("Rooms", RenderTable(headers, rows))
}
