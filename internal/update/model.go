package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/llm-case-studies/whowhe2wha/internal/alerts"
	"github.com/llm-case-studies/whowhe2wha/internal/model"
	"github.com/llm-case-studies/whowhe2wha/internal/timeline"
)

type View string

const (
	ViewTimeline View = "Timeline"
	ViewGrid     View = "Grid"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Timeline string
	Grid     string
	Help     string
	Quit     string
}

// Library is the loaded organizer data the layout views work from. The TUI
// treats it as read-only; edits happen through the store and a reload.
type Library struct {
	Events    []model.Event
	Projects  map[int64]model.Project
	Locations map[int64]model.Location
	Contacts  map[int64]model.Contact
	Holidays  []model.Holiday
	Tiers     model.TierConfig
}

type Model struct {
	CurrentView View
	Library     Library

	// Timeline view state. Duration is sticky across pans; switching scale
	// resets it to the scale's width at the new reference.
	Scale     timeline.Scale
	Reference time.Time
	Duration  time.Duration
	Window    timeline.Window
	Packing   timeline.Packing
	Frame     timeline.Frame
	Selected  int

	// Grid view state.
	GridMode timeline.GridMode
	GridSpan timeline.YearSpan
	GridRows [][]timeline.DayBucket

	Today       time.Time
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	Width  int
	Height int

	pan    *timeline.PanController
	frames *frameScheduler
	panRef *panTarget

	// Alerts, when set, feeds AlertMsg into the update loop as scheduled
	// occurrences come due.
	Alerts *alerts.Engine

	helpModel help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SetLibraryMsg struct {
	Library Library
}

// AlertMsg arrives when an upcoming occurrence comes due.
type AlertMsg alerts.Alert

// panTarget is the commit sink shared between the pan controller's closure
// and the value-copied bubbletea model.
type panTarget struct {
	ref   time.Time
	dirty bool
}

func NewModel(lib Library, scale timeline.Scale, today time.Time) Model {
	if !scale.IsValid() {
		scale = timeline.ScaleMonth
	}
	if today.IsZero() {
		today = time.Now().UTC()
	}
	m := Model{
		CurrentView: ViewTimeline,
		Library:     lib,
		Scale:       scale,
		Reference:   today,
		Today:       today,
		GridMode:    timeline.GridModeWeekRow,
		GridSpan:    timeline.YearSpan{StartYear: today.Year(), EndYear: today.Year()},
		Keys: GlobalKeyMap{
			Timeline: "1",
			Grid:     "2",
			Help:     "?",
			Quit:     "q",
		},
		Width:     100,
		Height:    40,
		frames:    &frameScheduler{},
		panRef:    &panTarget{},
		helpModel: help.New(),
	}
	target := m.panRef
	m.pan = timeline.NewPanController(m.frames, func(ref time.Time) {
		target.ref = ref
		target.dirty = true
	})
	m.applyScale()
	m.refreshTimeline()
	m.refreshGrid()
	return m
}

// applyScale resets the window duration to the current scale's width at the
// current reference.
func (m *Model) applyScale() {
	d, err := timeline.ScaleDuration(m.Scale, m.Reference)
	if err != nil {
		m.fail(err)
		return
	}
	m.Duration = d
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}
