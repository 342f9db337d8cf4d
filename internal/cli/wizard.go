package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/kvitko/internal/cli/formatter"
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// kvitkoHuhTheme returns a huh theme that matches the formatter palette.
func kvitkoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// plantFormValues collects the answers of the interactive add form.
type plantFormValues struct {
	Species     string
	Name        string
	RoomID      string
	Proximity   string
	Pot         string
	Substrate   string
	Humidity    string
	LastWatered string
	Height      string
	PotSize     string
}

func newPlantFormValues() *plantFormValues {
	care := domain.DefaultCare()
	return &plantFormValues{
		Proximity: string(care.Proximity),
		Pot:       string(care.PotMaterial),
		Substrate: string(care.Substrate),
		Humidity:  string(care.Humidity),
	}
}

// plant converts form answers to a new plant. Values were validated by the
// form, so parse failures fall back to defaults.
func (v *plantFormValues) plant(now time.Time) *domain.Plant {
	care := domain.DefaultCare()
	if p, err := domain.ParseProximity(v.Proximity); err == nil {
		care.Proximity = p
	}
	if p, err := domain.ParsePotMaterial(v.Pot); err == nil {
		care.PotMaterial = p
	}
	if s, err := domain.ParseSubstrate(v.Substrate); err == nil {
		care.Substrate = s
	}
	if h, err := domain.ParseHumidity(v.Humidity); err == nil {
		care.Humidity = h
	}

	p := &domain.Plant{SpeciesKey: v.Species, CustomName: v.Name, Care: care}
	if v.RoomID != "" {
		id := v.RoomID
		p.RoomID = &id
	}
	if t, err := parseWhen(v.LastWatered, now); err == nil {
		p.LastWatered = t
	}
	p.HeightCm, _ = strconv.ParseFloat(v.Height, 64)
	p.PotSizeCm, _ = strconv.ParseFloat(v.PotSize, 64)
	return p
}

func stringOptions[T ~string](values []T) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), string(v))
	}
	return opts
}

// plantAddForm builds the interactive form for "plant add".
func plantAddForm(values *plantFormValues, species []string, rooms []*domain.Room) *huh.Form {
	roomOpts := []huh.Option[string]{huh.NewOption("(no room)", "")}
	for _, r := range rooms {
		roomOpts = append(roomOpts, huh.NewOption(r.Name, r.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Species").
				Options(huh.NewOptions(species...)...).
				Height(8).
				Value(&values.Species),
			huh.NewInput().
				Title("Name").
				Description("Optional, defaults to the species").
				Value(&values.Name),
			huh.NewSelect[string]().
				Title("Room").
				Options(roomOpts...).
				Value(&values.RoomID),
			huh.NewInput().
				Title("Height (cm)").
				Value(&values.Height).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Pot diameter (cm)").
				Value(&values.PotSize).
				Validate(validatePositiveFloat),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Distance from window").
				Options(stringOptions(domain.Proximities)...).
				Value(&values.Proximity),
			huh.NewSelect[string]().
				Title("Pot").
				Options(stringOptions(domain.PotMaterials)...).
				Value(&values.Pot),
			huh.NewSelect[string]().
				Title("Substrate").
				Options(stringOptions(domain.Substrates)...).
				Value(&values.Substrate),
			huh.NewSelect[string]().
				Title("Humidity").
				Options(stringOptions([]domain.Humidity{domain.HumidityStandard, domain.HumidityLow})...).
				Value(&values.Humidity),
			huh.NewInput().
				Title("Last watered (YYYY-MM-DD, blank for now)").
				Placeholder(time.Now().Format("2006-01-02")).
				Value(&values.LastWatered).
				Validate(validateOptionalDate),
		),
	).WithTheme(kvitkoHuhTheme()).WithShowHelp(false)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validatePositiveFloat accepts empty or a positive number.
func validatePositiveFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
