package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEventType = errors.New("model: invalid event type")
	ErrInvalidCategory  = errors.New("model: invalid project category")
	ErrEndBeforeStart   = errors.New("model: period end before start")
	ErrEndWithoutPeriod = errors.New("model: end date only valid for period events")
)

// DisplayLayout is the layout used for human-facing timestamp strings.
const DisplayLayout = "Mon, Jan 2 2006 15:04"

// Timestamp pairs an absolute instant with its display string. Occurrence
// materialization always constructs fresh Timestamp values; nothing in the
// engine shares a Timestamp between an event template and its occurrences.
type Timestamp struct {
	At      time.Time
	Display string
}

func NewTimestamp(at time.Time) Timestamp {
	return Timestamp{At: at, Display: at.Format(DisplayLayout)}
}

type EventType string

const (
	EventTypeAppointment EventType = "Appointment"
	EventTypeTask        EventType = "Task"
	EventTypePeriod      EventType = "Period"
	EventTypeMilestone   EventType = "Milestone"
	EventTypeDeadline    EventType = "Deadline"
	EventTypeCheckpoint  EventType = "Checkpoint"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeAppointment, EventTypeTask, EventTypePeriod,
		EventTypeMilestone, EventTypeDeadline, EventTypeCheckpoint:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryHealth   Category = "Health"
	CategoryFinance  Category = "Finance"
	CategoryWork     Category = "Work"
	CategoryFamily   Category = "Family"
	CategorySocial   Category = "Social"
	CategoryLearning Category = "Learning"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryFinance, CategoryWork,
		CategoryFamily, CategorySocial, CategoryLearning:
		return true
	default:
		return false
	}
}

// AllCategories returns the full category enumeration in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryHealth, CategoryFinance, CategoryWork,
		CategoryFamily, CategorySocial, CategoryLearning,
	}
}

// Event is the who/what/when/where record. An event with a nil When is
// unscheduled and excluded from all layout computation. An event with a
// Recurrence is a template: When/EndWhen describe only the first occurrence.
type Event struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
	Type        EventType
	When        *Timestamp
	EndWhen     *Timestamp
	Who         []int64
	WhereID     int64
	Recurrence  *Recurrence
}

func (e Event) Scheduled() bool {
	return e.When != nil
}

// Duration is the span between When and EndWhen, zero when EndWhen is absent.
func (e Event) Duration() time.Duration {
	if e.When == nil || e.EndWhen == nil {
		return 0
	}
	return e.EndWhen.At.Sub(e.When.At)
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("model: event name is required")
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEventType, e.Type)
	}
	if e.EndWhen != nil {
		if e.Type != EventTypePeriod {
			return fmt.Errorf("%w: event %d is %q", ErrEndWithoutPeriod, e.ID, e.Type)
		}
		if e.When == nil {
			return fmt.Errorf("model: event %d has an end but no start", e.ID)
		}
		if e.EndWhen.At.Before(e.When.At) {
			return fmt.Errorf("%w: event %d", ErrEndBeforeStart, e.ID)
		}
	}
	if e.Recurrence != nil {
		if err := e.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type Project struct {
	ID       int64
	Name     string
	Category Category
	Color    string
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}
	return nil
}

// Holiday is a fixed-date, category-tagged marker. Reference data only; the
// engine never edits holidays.
type Holiday struct {
	Name     string
	Date     time.Time
	Category Category
}

type Location struct {
	ID      int64
	Name    string
	Address string
	Lat     float64
	Lon     float64
}

type Contact struct {
	ID    int64
	Name  string
	Email string
}
