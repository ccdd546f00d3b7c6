package update

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
	"github.com/llm-case-studies/whowhe2wha/internal/timeline"
	"github.com/llm-case-studies/whowhe2wha/internal/views"
)

// zoomStep is the duration factor one zoom keypress applies.
const zoomStep = 1.25

var scaleCycle = []timeline.Scale{
	timeline.ScaleWeek,
	timeline.ScaleMonth,
	timeline.ScaleQuarter,
	timeline.ScaleYear,
}

// refreshTimeline recomputes the full layout pipeline for the current
// window: expand occurrences, pack lanes, map the frame.
func (m *Model) refreshTimeline() {
	m.Duration = timeline.ClampDuration(m.Duration)
	m.Window = timeline.CenteredWindow(m.Reference, m.Duration)

	occs, err := timeline.Expand(m.Library.Events, m.Window.Start, m.Window.End)
	if err != nil {
		m.fail(err)
		return
	}

	visible := make(map[model.Category][]model.Project)
	seen := make(map[int64]bool)
	for _, occ := range occs {
		if seen[occ.ProjectID] {
			continue
		}
		project, ok := m.Library.Projects[occ.ProjectID]
		if !ok {
			continue
		}
		seen[occ.ProjectID] = true
		visible[project.Category] = append(visible[project.Category], project)
	}

	m.Packing = timeline.Pack(m.Library.Tiers, model.AllCategories(), visible, timeline.DefaultPackOptions())
	m.Frame = timeline.MapFrame(m.Window, occs, m.Packing, m.Library.Holidays, m.Today)

	if max := m.markerCount(); m.Selected >= max {
		m.Selected = max - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

func (m Model) markerCount() int {
	return len(m.Frame.Points) + len(m.Frame.Spans)
}

// selectedOccurrence indexes points first, then spans.
func (m Model) selectedOccurrence() (timeline.Occurrence, bool) {
	idx := m.Selected
	if idx < 0 || idx >= m.markerCount() {
		return timeline.Occurrence{}, false
	}
	if idx < len(m.Frame.Points) {
		return m.Frame.Points[idx].Occurrence, true
	}
	return m.Frame.Spans[idx-len(m.Frame.Points)].Occurrence, true
}

func (m Model) handleTimelineKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.Reference = m.Reference.Add(-m.Duration / 4)
		m.refreshTimeline()
	case "l", "right":
		m.Reference = m.Reference.Add(m.Duration / 4)
		m.refreshTimeline()
	case "+", "=":
		m.Duration = time.Duration(float64(m.Duration) / zoomStep)
		m.Duration = timeline.ClampDuration(m.Duration)
		m.Scale = timeline.NearestScale(m.Duration, m.Reference)
		m.refreshTimeline()
	case "-", "_":
		m.Duration = time.Duration(float64(m.Duration) * zoomStep)
		m.Duration = timeline.ClampDuration(m.Duration)
		m.Scale = timeline.NearestScale(m.Duration, m.Reference)
		m.refreshTimeline()
	case "s":
		m.Scale = nextScale(m.Scale)
		m.applyScale()
		m.refreshTimeline()
		m.Status = StatusBar{Text: fmt.Sprintf("scale: %s", m.Scale)}
	case "t":
		m.Reference = m.Today
		m.refreshTimeline()
		m.Status = StatusBar{Text: "jumped to today"}
	case "j", "down":
		if m.Selected < m.markerCount()-1 {
			m.Selected++
		}
	case "k", "up":
		if m.Selected > 0 {
			m.Selected--
		}
	}
	return m, nil
}

func (m Model) handleTimelineMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pan.Begin(float64(msg.X), m.Reference, float64(m.plotWidth()), m.Duration)
		return m, frameTickCmd()
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		m.pan.Update(float64(msg.X))
	case msg.Action == tea.MouseActionRelease:
		m.pan.End()
		if m.panRef.dirty {
			m.panRef.dirty = false
			m.Reference = m.panRef.ref
			m.refreshTimeline()
		}
	}
	return m, nil
}

// plotWidth is the marker area inside the timeline panel, after lane labels
// and panel chrome.
func (m Model) plotWidth() int {
	w := m.Width - 24
	if w < 20 {
		w = 20
	}
	return w
}

func nextScale(s timeline.Scale) timeline.Scale {
	for i, candidate := range scaleCycle {
		if candidate == s {
			return scaleCycle[(i+1)%len(scaleCycle)]
		}
	}
	return timeline.ScaleMonth
}

func (m Model) buildTimelinePanel() views.TimelinePanelData {
	markers := make(map[int64][]views.TimelineMarkerData)
	for _, pt := range m.Frame.Points {
		markers[pt.Occurrence.ProjectID] = append(markers[pt.Occurrence.ProjectID], views.TimelineMarkerData{
			Label:     pt.Occurrence.Name,
			X:         pt.X,
			Recurring: pt.Occurrence.Recurring,
		})
	}
	for _, sp := range m.Frame.Spans {
		markers[sp.Occurrence.ProjectID] = append(markers[sp.Occurrence.ProjectID], views.TimelineMarkerData{
			Label:     sp.Occurrence.Name,
			X:         sp.X1,
			X2:        sp.X2,
			Span:      true,
			Recurring: sp.Occurrence.Recurring,
		})
	}

	data := views.TimelinePanelData{
		Scale:       string(m.Scale),
		WindowStart: m.Window.Start.Format("2006-01-02"),
		WindowEnd:   m.Window.End.Format("2006-01-02"),
		Width:       m.plotWidth(),
		Dragging:    m.pan.Dragging(),
		HasToday:    len(m.Frame.Today) > 0,
	}
	if data.HasToday {
		data.TodayX = m.Frame.Today[0].X
	}
	for _, h := range m.Frame.Holidays {
		data.Holidays = append(data.Holidays, views.TimelineMarkerData{
			Label: h.Holiday.Name,
			X:     h.X,
		})
	}

	for _, tier := range m.Packing.Tiers {
		tierData := views.TimelineTierData{Name: tier.Name}
		for _, cat := range tier.Categories {
			catData := views.TimelineCategoryData{Name: string(cat)}
			for _, project := range m.laneProjects(tier.Index, cat) {
				catData.Lanes = append(catData.Lanes, views.TimelineLaneData{
					Label:   project.Name,
					Markers: markers[project.ID],
				})
			}
			if len(catData.Lanes) > 0 {
				tierData.Categories = append(tierData.Categories, catData)
			}
		}
		data.Tiers = append(data.Tiers, tierData)
	}
	return data
}

// laneProjects returns the packed projects of one category block in lane
// order.
func (m Model) laneProjects(tierIndex int, cat model.Category) []model.Project {
	type entry struct {
		project model.Project
		lane    timeline.Lane
	}
	entries := make([]entry, 0, 4)
	for id, lane := range m.Packing.Lanes {
		if lane.TierIndex != tierIndex {
			continue
		}
		project, ok := m.Library.Projects[id]
		if !ok || project.Category != cat {
			continue
		}
		entries = append(entries, entry{project: project, lane: lane})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].lane.LaneIndex < entries[j].lane.LaneIndex })
	out := make([]model.Project, len(entries))
	for i, e := range entries {
		out[i] = e.project
	}
	return out
}

func (m Model) buildDetailPanel() views.EventDetailData {
	occ, ok := m.selectedOccurrence()
	if !ok {
		return views.EventDetailData{}
	}
	data := views.EventDetailData{
		Name:      occ.Name,
		Type:      string(occ.Type),
		When:      occ.Start.Display,
		Recurring: occ.Recurring,
	}
	if occ.End != nil {
		data.EndWhen = occ.End.Display
	}
	if project, ok := m.Library.Projects[occ.ProjectID]; ok {
		data.Project = project.Name
		data.Category = string(project.Category)
	}
	if loc, ok := m.Library.Locations[occ.WhereID]; ok {
		data.Where = loc.Name
	}
	for _, id := range occ.Who {
		if contact, ok := m.Library.Contacts[id]; ok {
			data.Participants = append(data.Participants, contact.Name)
		}
	}
	for _, ev := range m.Library.Events {
		if ev.ID == occ.EventID {
			data.Description = ev.Description
			break
		}
	}
	return data
}
