package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
)

// resolvePlantID resolves a plant reference which can be:
//   - A full plant ID
//   - A display name (case-insensitive, must be unique)
//   - An ID prefix (must be unique)
//
// Retired plants are included so the graveyard can be addressed too.
func resolvePlantID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("plant ID is required")
	}

	active, err := app.Plants.List(ctx, domain.SortCustom)
	if err != nil {
		return "", err
	}
	retired, err := app.Plants.ListRetired(ctx)
	if err != nil {
		return "", err
	}
	plants := append(active, retired...)

	for _, p := range plants {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var named []string
	for _, p := range plants {
		if strings.EqualFold(p.DisplayName(), input) {
			named = append(named, p.ID)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}
	if len(named) > 1 {
		return "", fmt.Errorf("plant name %q is ambiguous (%d matches), use the ID", input, len(named))
	}

	var matches []string
	for _, p := range plants {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plant not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plant ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveRoomID resolves a room by ID, case-insensitive name or ID prefix.
func resolveRoomID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("room is required")
	}

	rooms, err := app.Rooms.List(ctx)
	if err != nil {
		return "", err
	}

	for _, r := range rooms {
		if r.ID == input || strings.EqualFold(r.Name, input) {
			return r.ID, nil
		}
	}

	var matches []string
	for _, r := range rooms {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("room not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("room ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// roomNames maps room IDs to names for list rendering.
func roomNames(ctx context.Context, app *App) (map[string]string, error) {
	rooms, err := app.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return names, nil
}

// parseWhen parses a user-supplied instant in now's location. Accepted:
// "now", "today", "yesterday", YYYY-MM-DD and YYYY-MM-DDTHH:MM. Bare dates
// keep the current time of day.
func parseWhen(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "now", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, now.Location()); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
	}
	h, m, sec := now.Clock()
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, sec, 0, now.Location()), nil
}
