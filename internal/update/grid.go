package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llm-case-studies/whowhe2wha/internal/timeline"
	"github.com/llm-case-studies/whowhe2wha/internal/views"
)

var gridModeCycle = []timeline.GridMode{
	timeline.GridModeWeekRow,
	timeline.GridModeMonthRow,
	timeline.GridModeTraditional,
}

func (m *Model) refreshGrid() {
	buckets, err := timeline.Bucket(m.Library.Events, m.GridSpan, m.GridMode)
	if err != nil {
		m.fail(err)
		return
	}
	m.GridRows = timeline.Rows(buckets, m.GridMode)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		m.GridMode = nextGridMode(m.GridMode)
		m.refreshGrid()
		m.Status = StatusBar{Text: fmt.Sprintf("grid mode: %s", m.GridMode)}
	case "h", "left":
		m.GridSpan.StartYear--
		m.GridSpan.EndYear--
		m.refreshGrid()
	case "l", "right":
		m.GridSpan.StartYear++
		m.GridSpan.EndYear++
		m.refreshGrid()
	case "+", "=":
		m.GridSpan.EndYear++
		m.refreshGrid()
	case "-", "_":
		if m.GridSpan.EndYear > m.GridSpan.StartYear {
			m.GridSpan.EndYear--
			m.refreshGrid()
		}
	}
	return m, nil
}

func nextGridMode(mode timeline.GridMode) timeline.GridMode {
	for i, candidate := range gridModeCycle {
		if candidate == mode {
			return gridModeCycle[(i+1)%len(gridModeCycle)]
		}
	}
	return timeline.GridModeWeekRow
}

func (m Model) buildGridPanel() views.GridPanelData {
	data := views.GridPanelData{
		Mode:      string(m.GridMode),
		SpanLabel: gridSpanLabel(m.GridSpan),
	}
	todayKey := m.Today.UTC().Format("2006-01-02")
	for _, row := range m.GridRows {
		rowData := views.GridRowData{Label: gridRowLabel(row, m.GridMode)}
		for _, bucket := range row {
			if bucket.Key == "" {
				rowData.Cells = append(rowData.Cells, views.GridCellData{})
				continue
			}
			rowData.Cells = append(rowData.Cells, views.GridCellData{
				Day:     bucket.Date.Day(),
				Density: int(bucket.Density),
				IsToday: bucket.Key == todayKey,
			})
		}
		data.Rows = append(data.Rows, rowData)
	}
	return data
}

func gridSpanLabel(span timeline.YearSpan) string {
	if span.StartYear == span.EndYear {
		return fmt.Sprintf("%d", span.StartYear)
	}
	return fmt.Sprintf("%d-%d", span.StartYear, span.EndYear)
}

// gridRowLabel names a row by its first real day: the month for month-keyed
// arrangements, the week's first date otherwise.
func gridRowLabel(row []timeline.DayBucket, mode timeline.GridMode) string {
	var first *timeline.DayBucket
	for i := range row {
		if row[i].Key != "" {
			first = &row[i]
			break
		}
	}
	if first == nil {
		return ""
	}
	switch mode {
	case timeline.GridModeMonthRow, timeline.GridModeTraditional:
		return first.Date.Format("Jan 2006")
	default:
		return first.Date.Format("2006-01-02")
	}
}
