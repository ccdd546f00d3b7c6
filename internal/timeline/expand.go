package timeline

import (
	"fmt"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

// Occurrence is one concrete, time-bound materialization of an event,
// possibly projected out of a recurring template. Occurrences are built fresh
// per window query and never alias the template's nested values: Start and
// End are newly constructed Timestamps with regenerated display strings.
type Occurrence struct {
	EventID   int64
	ProjectID int64
	Name      string
	Type      model.EventType
	Who       []int64
	WhereID   int64
	Recurring bool
	Start     model.Timestamp
	End       *model.Timestamp
}

// Expand materializes every occurrence of events whose start falls inside
// [start, end]. Unscheduled events are dropped. Non-recurring events pass
// through as single occurrences when in window. Recurring templates are
// walked occurrence-by-occurrence from the template start; iterations before
// the window are computed and discarded rather than skipped with a closed-form
// jump, so monthly day-of-month drift accumulates the same way regardless of
// where the window sits.
func Expand(events []model.Event, start, end time.Time) ([]Occurrence, error) {
	out := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		if !ev.Scheduled() {
			continue
		}
		if ev.EndWhen != nil && ev.EndWhen.At.Before(ev.When.At) {
			return nil, fmt.Errorf("%w: event %d", model.ErrEndBeforeStart, ev.ID)
		}

		if ev.Recurrence == nil {
			if win := (Window{Start: start, End: end}); win.Contains(ev.When.At) {
				out = append(out, materialize(ev, ev.When.At, false))
			}
			continue
		}

		if err := ev.Recurrence.Validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", ev.ID, err)
		}

		bound := end
		if rend := ev.Recurrence.EndDate; rend != nil && rend.Before(bound) {
			bound = *rend
		}
		if ev.When.At.After(bound) {
			continue
		}

		freq := ev.Recurrence.Frequency
		for cursor := ev.When.At; !cursor.After(bound); cursor = freq.Step(cursor) {
			if cursor.Before(start) {
				continue
			}
			out = append(out, materialize(ev, cursor, true))
		}
	}
	return out, nil
}

// materialize projects the event onto a concrete start, preserving the
// template's duration by shifting both endpoints together. All nested values
// are constructed new; mutating the returned occurrence can never reach the
// template or a sibling occurrence.
func materialize(ev model.Event, start time.Time, recurring bool) Occurrence {
	occ := Occurrence{
		EventID:   ev.ID,
		ProjectID: ev.ProjectID,
		Name:      ev.Name,
		Type:      ev.Type,
		WhereID:   ev.WhereID,
		Recurring: recurring,
		Start:     model.NewTimestamp(start),
	}
	if len(ev.Who) > 0 {
		occ.Who = append([]int64(nil), ev.Who...)
	}
	if ev.EndWhen != nil {
		endTS := model.NewTimestamp(start.Add(ev.Duration()))
		occ.End = &endTS
	}
	return occ
}
