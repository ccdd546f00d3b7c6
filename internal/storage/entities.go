package storage

import (
	"fmt"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

type Event struct {
	ID             int64
	ProjectID      int64
	Name           string
	Description    string
	Type           string
	StartAt        *time.Time
	EndAt          *time.Time
	WhereID        int64
	Participants   []int64
	RecurrenceFreq string
	RecurrenceEnd  *time.Time
	CreatedAt      time.Time
}

type Project struct {
	ID        int64
	Name      string
	Category  string
	Color     string
	CreatedAt time.Time
}

type Holiday struct {
	ID       int64
	Name     string
	Date     time.Time
	Category string
}

type Location struct {
	ID        int64
	Name      string
	Address   string
	Lat       float64
	Lon       float64
	CreatedAt time.Time
}

type Contact struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

type EventListFilter struct {
	ProjectID int64
	Type      string
	Limit     int
	Offset    int
}

type ProjectListFilter struct {
	Category string
	Limit    int
	Offset   int
}

type ListFilter struct {
	Limit  int
	Offset int
}

// ToModel converts a stored event into the domain shape the layout engine
// consumes, validating on the way out so bad rows surface immediately.
func (e Event) ToModel() (model.Event, error) {
	out := model.Event{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Name:        e.Name,
		Description: e.Description,
		Type:        model.EventType(e.Type),
		WhereID:     e.WhereID,
		Who:         append([]int64(nil), e.Participants...),
	}
	if e.StartAt != nil {
		ts := model.NewTimestamp(*e.StartAt)
		out.When = &ts
	}
	if e.EndAt != nil {
		ts := model.NewTimestamp(*e.EndAt)
		out.EndWhen = &ts
	}
	if e.RecurrenceFreq != "" {
		out.Recurrence = &model.Recurrence{
			Frequency: model.Frequency(e.RecurrenceFreq),
			EndDate:   e.RecurrenceEnd,
		}
	}
	if err := out.Validate(); err != nil {
		return model.Event{}, fmt.Errorf("event %d: %w", e.ID, err)
	}
	return out, nil
}

func EventFromModel(in model.Event, createdAt time.Time) Event {
	out := Event{
		ID:           in.ID,
		ProjectID:    in.ProjectID,
		Name:         in.Name,
		Description:  in.Description,
		Type:         string(in.Type),
		WhereID:      in.WhereID,
		Participants: append([]int64(nil), in.Who...),
		CreatedAt:    createdAt,
	}
	if in.When != nil {
		at := in.When.At
		out.StartAt = &at
	}
	if in.EndWhen != nil {
		at := in.EndWhen.At
		out.EndAt = &at
	}
	if in.Recurrence != nil {
		out.RecurrenceFreq = string(in.Recurrence.Frequency)
		out.RecurrenceEnd = in.Recurrence.EndDate
	}
	return out
}

func (p Project) ToModel() model.Project {
	return model.Project{ID: p.ID, Name: p.Name, Category: model.Category(p.Category), Color: p.Color}
}

func (h Holiday) ToModel() model.Holiday {
	return model.Holiday{Name: h.Name, Date: h.Date, Category: model.Category(h.Category)}
}
