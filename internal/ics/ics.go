// Package ics is the iCalendar codec around the organizer's event set. It is
// deliberately thin: the library owns RFC 5545 concerns (line folding, UTC
// timestamp formatting); this package only maps events in and out.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

const prodID = "-//whowhe2wha//organizer//EN"

// uid builds a stable per-event UID so a re-export matches a prior import.
func uid(id int64) string {
	return fmt.Sprintf("event-%d@whowhe2wha", id)
}

// Export serializes scheduled events as an iCalendar document. Unscheduled
// events have no DTSTART to give and are skipped. Recurring templates carry
// an RRULE with the matching FREQ and optional UNTIL.
func Export(events []model.Event) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, ev := range events {
		if !ev.Scheduled() {
			continue
		}
		if err := ev.Validate(); err != nil {
			return nil, err
		}

		ve := cal.AddEvent(uid(ev.ID))
		ve.SetSummary(ev.Name)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		ve.SetStartAt(ev.When.At.UTC())
		if ev.EndWhen != nil {
			ve.SetEndAt(ev.EndWhen.At.UTC())
		}
		if ev.Recurrence != nil {
			rule, err := rruleFor(*ev.Recurrence)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", ev.ID, err)
			}
			ve.AddRrule(rule)
		}
	}

	return []byte(cal.Serialize()), nil
}

// Import parses an iCalendar document into events. IDs are recovered from
// exported UIDs when present, otherwise assigned sequentially from nextID.
// RRULE frequencies outside daily/weekly/monthly are rejected rather than
// approximated.
func Import(data []byte, nextID int64) ([]model.Event, error) {
	if len(data) == 0 {
		return nil, errors.New("ics: empty document")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}

	out := make([]model.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev := model.Event{Type: model.EventTypeAppointment}

		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			ev.ID = idFromUID(p.Value)
		}
		if ev.ID == 0 {
			ev.ID = nextID
			nextID++
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			ev.Name = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			ev.Description = p.Value
		}

		start, err := ve.GetStartAt()
		if err != nil {
			// No DTSTART: imported as unscheduled.
			out = append(out, ev)
			continue
		}
		ts := model.NewTimestamp(start.UTC())
		ev.When = &ts

		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			endTS := model.NewTimestamp(end.UTC())
			ev.EndWhen = &endTS
			ev.Type = model.EventTypePeriod
		}

		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
			rec, err := recurrenceFor(p.Value)
			if err != nil {
				return nil, fmt.Errorf("ics: event %d: %w", ev.ID, err)
			}
			ev.Recurrence = rec
		}

		out = append(out, ev)
	}
	return out, nil
}

func rruleFor(r model.Recurrence) (string, error) {
	var freq string
	switch r.Frequency {
	case model.FrequencyDaily:
		freq = "DAILY"
	case model.FrequencyWeekly:
		freq = "WEEKLY"
	case model.FrequencyMonthly:
		freq = "MONTHLY"
	default:
		return "", fmt.Errorf("%w: %q", model.ErrInvalidFrequency, r.Frequency)
	}
	rule := "FREQ=" + freq
	if r.EndDate != nil {
		rule += ";UNTIL=" + r.EndDate.UTC().Format("20060102T150405Z")
	}
	return rule, nil
}

func recurrenceFor(rule string) (*model.Recurrence, error) {
	out := &model.Recurrence{}
	for _, part := range splitRule(rule) {
		switch part.key {
		case "FREQ":
			switch part.value {
			case "DAILY":
				out.Frequency = model.FrequencyDaily
			case "WEEKLY":
				out.Frequency = model.FrequencyWeekly
			case "MONTHLY":
				out.Frequency = model.FrequencyMonthly
			default:
				return nil, fmt.Errorf("%w: %q", model.ErrInvalidFrequency, part.value)
			}
		case "UNTIL":
			until, err := time.Parse("20060102T150405Z", part.value)
			if err != nil {
				// Date-only UNTIL is also legal.
				until, err = time.Parse("20060102", part.value)
				if err != nil {
					return nil, fmt.Errorf("ics: bad UNTIL %q", part.value)
				}
			}
			out.EndDate = &until
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

type rulePart struct {
	key   string
	value string
}

func splitRule(rule string) []rulePart {
	var out []rulePart
	for _, kv := range bytes.Split([]byte(rule), []byte(";")) {
		pair := bytes.SplitN(kv, []byte("="), 2)
		if len(pair) != 2 {
			continue
		}
		out = append(out, rulePart{key: string(pair[0]), value: string(pair[1])})
	}
	return out
}

func idFromUID(v string) int64 {
	var id int64
	var host string
	if _, err := fmt.Sscanf(v, "event-%d@%s", &id, &host); err != nil {
		return 0
	}
	if host != "whowhe2wha" {
		return 0
	}
	return id
}
