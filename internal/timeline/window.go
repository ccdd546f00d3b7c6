// Package timeline is the temporal layout engine: it resolves symbolic time
// scales into absolute windows, expands recurring event templates into
// concrete occurrences, packs projects into tiers and lanes, and maps
// everything into normalized render coordinates. All functions are pure and
// safe for concurrent use; PanController is the single stateful exception.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidScale = errors.New("timeline: invalid scale")

type Scale string

const (
	ScaleWeek    Scale = "week"
	ScaleMonth   Scale = "month"
	ScaleQuarter Scale = "quarter"
	ScaleYear    Scale = "year"
)

func (s Scale) IsValid() bool {
	switch s {
	case ScaleWeek, ScaleMonth, ScaleQuarter, ScaleYear:
		return true
	default:
		return false
	}
}

// Window duration bounds for free-form zoom and pan input. The fixed scale
// enum always resolves inside this range, so only interactive durations
// need clamping.
const (
	MinWindowDuration = 3 * 24 * time.Hour
	MaxWindowDuration = 730 * 24 * time.Hour
)

// quarterDuration is a fixed 91.25-day approximation, not aligned to
// calendar quarters.
const quarterDuration = time.Duration(91.25 * 24 * float64(time.Hour))

// Window is the absolute [Start, End) interval currently being rendered,
// derived per render and never persisted.
type Window struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Contains reports whether t lies inside the window, both bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ScaleDuration returns the window width a scale resolves to relative to ref:
// week is exactly 7 days, month tracks the length of ref's calendar month,
// quarter is the fixed 91.25-day approximation, and year is 365 or 366 days
// depending on ref's year.
func ScaleDuration(s Scale, ref time.Time) (time.Duration, error) {
	switch s {
	case ScaleWeek:
		return 7 * 24 * time.Hour, nil
	case ScaleMonth:
		return time.Duration(daysInMonth(ref)) * 24 * time.Hour, nil
	case ScaleQuarter:
		return quarterDuration, nil
	case ScaleYear:
		days := 365
		if isLeapYear(ref.Year()) {
			days = 366
		}
		return time.Duration(days) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScale, s)
	}
}

// Resolve computes the window for a scale centered on ref: the reference date
// sits at the midpoint, never on a calendar boundary.
func Resolve(s Scale, ref time.Time) (Window, error) {
	d, err := ScaleDuration(s, ref)
	if err != nil {
		return Window{}, err
	}
	return CenteredWindow(ref, d), nil
}

// CenteredWindow builds a window of the given duration centered on ref.
func CenteredWindow(ref time.Time, d time.Duration) Window {
	start := ref.Add(-d / 2)
	return Window{Start: start, End: start.Add(d), Duration: d}
}

// ClampDuration bounds a free-form duration to the allowed window range so
// zoom/pan interactions cannot produce degenerate or runaway windows.
func ClampDuration(d time.Duration) time.Duration {
	if d < MinWindowDuration {
		return MinWindowDuration
	}
	if d > MaxWindowDuration {
		return MaxWindowDuration
	}
	return d
}

// NearestScale maps an arbitrary duration back to the closest scale for ref.
// Closeness is measured on the logarithm of durations, so ratio distance
// decides: 45 days is nearer to a month than to a week.
func NearestScale(d time.Duration, ref time.Time) Scale {
	if d <= 0 {
		d = MinWindowDuration
	}
	target := math.Log(float64(d))
	best := ScaleWeek
	bestDist := math.Inf(1)
	for _, s := range []Scale{ScaleWeek, ScaleMonth, ScaleQuarter, ScaleYear} {
		sd, err := ScaleDuration(s, ref)
		if err != nil {
			continue
		}
		dist := math.Abs(target - math.Log(float64(sd)))
		if dist < bestDist {
			bestDist = dist
			best = s
		}
	}
	return best
}

func daysInMonth(ref time.Time) int {
	y, m, _ := ref.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, ref.Location()).Day()
}

func isLeapYear(year int) bool {
	return time.Date(year, 2, 29, 0, 0, 0, 0, time.UTC).Day() == 29
}
