package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/service"
)

// FormatSpeciesList renders species keys one per line under the table source.
func FormatSpeciesList(keys []string, source string) string {
	if len(keys) == 0 {
		return RenderBox("Species", Dim("No matching species."))
	}
	var b strings.Builder
	for i, k := range keys {
		b.WriteString(k)
		if i < len(keys)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(Dim(fmt.Sprintf("%d species from %s", len(keys), source)))
	return RenderBox("Species", b.String())
}

// rangeCell renders a range, dimming entries that fall back to the default.
func rangeCell(raw string) string {
	if _, ok := rules.ParseRange(raw); !ok {
		return StyleRed.Render(fmt.Sprintf("%q", raw)) + Dim(" →7")
	}
	return raw
}

func seasonTable(season rules.SeasonProfile) string {
	headers := []string{"PROXIMITY"}
	for _, e := range season.Near.Entries() {
		headers = append(headers, strings.ToUpper(e.Name()))
	}
	var rows [][]string
	for _, prox := range domain.Proximities {
		profile, _ := season.Proximity(prox)
		row := []string{string(prox)}
		for _, e := range profile.Entries() {
			row = append(row, rangeCell(e.Value))
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}

// FormatSpeciesDetail renders every season of a profile and the interval
// that applies to the given care in the current season.
func FormatSpeciesDetail(d *service.SpeciesDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(d.Profile.Key), Dim("current season:")+" "+SeasonBadge(d.Season))
	fmt.Fprintf(&b, "%s %s → %s\n", Dim("Care"), CareSummary(d.Care), StyleGreen.Render(fmt.Sprintf("every %d days", d.Interval)))

	for _, s := range domain.Seasons {
		season, _ := d.Profile.Season(s)
		title := SeasonLabel(s)
		if s == d.Season {
			title += " (now)"
		}
		b.WriteString("\n")
		b.WriteString(Header(title))
		b.WriteString("\n")
		b.WriteString(seasonTable(season))
	}
	return RenderBox("Species", strings.TrimRight(b.String(), "\n"))
}

// FormatRuleReport summarizes a loaded rule table and its warnings.
func FormatRuleReport(res *rules.LoadResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Source"), res.Source)
	fmt.Fprintf(&b, "%s %d", Dim("Species"), res.Table.Len())
	if len(res.Warnings) == 0 {
		b.WriteString("\n\n")
		b.WriteString(StyleGreen.Render("✔ All ranges valid"))
		return RenderBox("Rule table", b.String())
	}

	b.WriteString("\n\n")
	b.WriteString(StyleYellow.Render(fmt.Sprintf("▲ %d entries fall back to the default interval", len(res.Warnings))))
	for _, w := range res.Warnings {
		b.WriteString("\n  ")
		b.WriteString(w.String())
	}
	return RenderBox("Rule table", b.String())
}
