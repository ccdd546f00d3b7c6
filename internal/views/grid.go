package views

import (
	"fmt"
	"strings"
)

type GridCellData struct {
	Day     int // day of month, 0 for a leading blank cell
	Density int // 0 none, 1 low, 2 medium, 3 high
	IsToday bool
}

type GridRowData struct {
	Label string
	Cells []GridCellData
}

type GridPanelData struct {
	Mode      string
	SpanLabel string
	Rows      []GridRowData
}

var densityGlyphs = [...]rune{' ', '░', '▒', '█'}

// RenderGridPanel draws the year-at-a-glance density grid. Each day cell is
// its day-of-month plus a density glyph; today's cell is bracketed.
func RenderGridPanel(data GridPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("grid: %s | mode: %s\n", data.SpanLabel, data.Mode))
	b.WriteString("actions: [m]mode [h/l]span [g]timeline\n\n")

	for _, row := range data.Rows {
		b.WriteString(padLabel(row.Label))
		for _, cell := range row.Cells {
			b.WriteString(renderGridCell(cell))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderGridCell(cell GridCellData) string {
	if cell.Day == 0 {
		return "     "
	}
	density := cell.Density
	if density < 0 {
		density = 0
	}
	if density > 3 {
		density = 3
	}
	if cell.IsToday {
		return fmt.Sprintf("[%2d%c]", cell.Day, densityGlyphs[density])
	}
	return fmt.Sprintf(" %2d%c ", cell.Day, densityGlyphs[density])
}
