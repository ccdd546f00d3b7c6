package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llm-case-studies/whowhe2wha/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Alerts != nil {
		return waitForAlertCmd(m.Alerts)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case m.Keys.Timeline:
			m.CurrentView = ViewTimeline
			return m, nil
		case m.Keys.Grid:
			m.CurrentView = ViewGrid
			return m, nil
		case "g":
			if m.CurrentView == ViewTimeline {
				m.CurrentView = ViewGrid
			} else {
				m.CurrentView = ViewTimeline
			}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewTimeline {
			return m.handleTimelineKey(typed)
		}
		return m.handleGridKey(typed)
	case tea.MouseMsg:
		if m.CurrentView == ViewTimeline {
			return m.handleTimelineMouse(typed)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		return m, nil
	case frameMsg:
		m.frames.fire()
		if m.panRef.dirty {
			m.panRef.dirty = false
			m.Reference = m.panRef.ref
			m.refreshTimeline()
		}
		if m.pan.Dragging() {
			return m, frameTickCmd()
		}
		return m, nil
	case SwitchViewMsg:
		if typed.View == ViewTimeline || typed.View == ViewGrid {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetLibraryMsg:
		m.Library = typed.Library
		m.refreshTimeline()
		m.refreshGrid()
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AlertMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("starting soon: %s (%s)", typed.Name, typed.At.Format("15:04"))}
		if m.Alerts != nil {
			return m, waitForAlertCmd(m.Alerts)
		}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	main := ""
	side := ""
	switch m.CurrentView {
	case ViewTimeline:
		main = views.RenderTimelinePanel(m.buildTimelinePanel())
		side = views.RenderEventDetail(m.buildDetailPanel())
	case ViewGrid:
		main = views.RenderGridPanel(m.buildGridPanel())
	}
	if m.HelpVisible {
		side = m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("whowhe2wha | view: %s | ref: %s", m.CurrentView, m.Reference.Format("2006-01-02")),
		MainPane:   main,
		SidePane:   side,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s timeline | %s grid | %s help | %s quit",
			m.Keys.Timeline, m.Keys.Grid, m.Keys.Help, m.Keys.Quit),
	})
}
