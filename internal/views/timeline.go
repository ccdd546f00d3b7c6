package views

import (
	"fmt"
	"strings"
)

const laneLabelWidth = 16

type TimelineMarkerData struct {
	Label     string
	X         float64 // percent of the window, 0-100
	X2        float64 // right edge for spans, percent
	Span      bool
	Recurring bool
}

type TimelineLaneData struct {
	Label   string
	Markers []TimelineMarkerData
}

type TimelineCategoryData struct {
	Name  string
	Lanes []TimelineLaneData
}

type TimelineTierData struct {
	Name       string
	Categories []TimelineCategoryData
}

type TimelinePanelData struct {
	Scale       string
	WindowStart string
	WindowEnd   string
	Width       int // plot columns to the right of the lane labels
	Dragging    bool
	HasToday    bool
	TodayX      float64
	Holidays    []TimelineMarkerData
	Tiers       []TimelineTierData
}

// RenderTimelinePanel draws the swimlane timeline as text rows: a holiday
// strip, then per tier its category blocks of project lanes over a shared
// axis rule. Horizontal percent positions resolve to plot columns.
func RenderTimelinePanel(data TimelinePanelData) string {
	width := data.Width
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	drag := ""
	if data.Dragging {
		drag = " [panning]"
	}
	b.WriteString(fmt.Sprintf("timeline: %s - %s | scale: %s%s\n", data.WindowStart, data.WindowEnd, data.Scale, drag))
	b.WriteString("actions: [h/l]pan [s]scale [t]today [j/k]select [g]grid [drag]pan\n")

	if len(data.Holidays) > 0 {
		row := blankRow(width)
		names := make([]string, 0, len(data.Holidays))
		for _, h := range data.Holidays {
			col := markerColumn(h.X, width)
			row[col] = '▼'
			names = append(names, h.Label)
		}
		b.WriteString(padLabel("holidays") + string(row) + "\n")
		b.WriteString(padLabel("") + strings.Join(names, ", ") + "\n")
	}

	for _, tier := range data.Tiers {
		b.WriteString("\n" + tierRule(tier.Name, laneLabelWidth+width) + "\n")
		for _, cat := range tier.Categories {
			b.WriteString(cat.Name + ":\n")
			for _, lane := range cat.Lanes {
				b.WriteString(padLabel(lane.Label) + string(laneRow(lane.Markers, width)) + "\n")
			}
		}
		b.WriteString(padLabel("") + string(axisRow(width, data.HasToday, data.TodayX)) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func laneRow(markers []TimelineMarkerData, width int) []rune {
	row := blankRow(width)
	for _, m := range markers {
		if !m.Span {
			continue
		}
		left := markerColumn(m.X, width)
		right := markerColumn(m.X2, width)
		if right < left {
			left, right = right, left
		}
		if left == right {
			row[left] = '◆'
			continue
		}
		for c := left; c <= right; c++ {
			row[c] = '═'
		}
		row[left] = '╞'
		row[right] = '╡'
	}
	for _, m := range markers {
		if m.Span {
			continue
		}
		glyph := '◆'
		if m.Recurring {
			glyph = '◇'
		}
		row[markerColumn(m.X, width)] = glyph
	}
	return row
}

func axisRow(width int, hasToday bool, todayX float64) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = '─'
	}
	if hasToday {
		row[markerColumn(todayX, width)] = '┼'
	}
	return row
}

func tierRule(name string, width int) string {
	head := "── " + name + " "
	if len(head) >= width {
		return head
	}
	return head + strings.Repeat("─", width-len(head))
}

func padLabel(label string) string {
	if len(label) > laneLabelWidth-1 {
		label = label[:laneLabelWidth-1]
	}
	return label + strings.Repeat(" ", laneLabelWidth-len(label))
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// markerColumn maps a 0-100 percent position to a plot column.
func markerColumn(x float64, width int) int {
	col := int(x/100*float64(width-1) + 0.5)
	if col < 0 {
		return 0
	}
	if col > width-1 {
		return width - 1
	}
	return col
}
