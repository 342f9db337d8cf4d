package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = 2

// RenderTable lays out plant, room and reminder listings. Widths are measured
// with lipgloss.Width so colored cells still line up. Short rows are padded
// with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styled, widths)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(&b, rule, widths)

	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", max(0, w-lipgloss.Width(cell))+columnGap))
		}
	}
	b.WriteByte('\n')
}
