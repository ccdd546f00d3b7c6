package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidFrequency = errors.New("model: invalid recurrence frequency")

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Step advances t by one interval of the frequency. Monthly stepping uses
// calendar-month arithmetic, so the day-of-month can drift across short
// months (Jan 31 + 1 month lands on Mar 2 or 3). That drift is observed
// product behavior and is kept as-is.
func (f Frequency) Step(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t
	}
}

// Recurrence turns an event into a template. The owning event's When/EndWhen
// describe only the first occurrence; EndDate, when set, bounds the walk.
type Recurrence struct {
	Frequency Frequency
	EndDate   *time.Time
}

func (r Recurrence) Validate() error {
	if !r.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}
	return nil
}
