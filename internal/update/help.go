package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/llm-case-studies/whowhe2wha/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Timeline, Action: "switch to Timeline"},
		{Key: m.Keys.Grid, Action: "switch to Grid"},
		{Key: "g", Action: "toggle timeline/grid"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTimeline:
		return []KeyBinding{
			{Key: "h/l", Action: "pan quarter window"},
			{Key: "+/-", Action: "zoom in / out"},
			{Key: "s", Action: "cycle scale"},
			{Key: "t", Action: "jump to today"},
			{Key: "j/k", Action: "move selection"},
			{Key: "drag", Action: "pan with mouse"},
		}
	case ViewGrid:
		return []KeyBinding{
			{Key: "m", Action: "cycle grid mode"},
			{Key: "h/l", Action: "previous/next year"},
			{Key: "+/-", Action: "widen/narrow span"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
