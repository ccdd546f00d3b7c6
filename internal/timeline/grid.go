package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

var (
	ErrInvalidGridMode = errors.New("timeline: invalid grid mode")
	ErrInvalidYearSpan = errors.New("timeline: invalid year span")
)

// GridMode selects the row arrangement of the density grid.
type GridMode string

const (
	GridModeWeekRow     GridMode = "week-row"
	GridModeMonthRow    GridMode = "month-row"
	GridModeTraditional GridMode = "traditional"
)

func (m GridMode) IsValid() bool {
	switch m {
	case GridModeWeekRow, GridModeMonthRow, GridModeTraditional:
		return true
	default:
		return false
	}
}

// Density classifies a day by occurrence count: 0, 1, 2, or 3-and-up.
type Density int

const (
	DensityNone Density = iota
	DensityLow
	DensityMedium
	DensityHigh
)

func ClassifyDensity(count int) Density {
	switch {
	case count <= 0:
		return DensityNone
	case count == 1:
		return DensityLow
	case count == 2:
		return DensityMedium
	default:
		return DensityHigh
	}
}

const dayKeyLayout = "2006-01-02"

// DayBucket is one calendar day's share of the grid: every occurrence whose
// interval covers the day, plus the density class.
type DayBucket struct {
	Date        time.Time
	Key         string
	Occurrences []Occurrence
	Density     Density
}

// YearSpan is an inclusive range of calendar years.
type YearSpan struct {
	StartYear int
	EndYear   int
}

func (s YearSpan) start() time.Time {
	return time.Date(s.StartYear, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s YearSpan) end() time.Time {
	return time.Date(s.EndYear+1, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

// Bucket expands events over the year span and collects them per day.
// A period occurrence populates every day its interval covers, not just its
// start day. The whole span is filled with one pass over the occurrences and
// a single day-keyed map, so multi-year spans stay cheap; days without
// occurrences still appear, classified DensityNone.
func Bucket(events []model.Event, span YearSpan, mode GridMode) ([]DayBucket, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGridMode, mode)
	}
	if span.EndYear < span.StartYear {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidYearSpan, span.StartYear, span.EndYear)
	}

	spanStart, spanEnd := span.start(), span.end()
	occs, err := Expand(events, spanStart, spanEnd)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]Occurrence)
	for _, occ := range occs {
		last := occ.Start.At
		if occ.End != nil {
			last = occ.End.At
		}
		if last.After(spanEnd) {
			last = spanEnd
		}
		for d := dateOf(occ.Start.At); !d.After(dateOf(last)); d = d.AddDate(0, 0, 1) {
			key := d.Format(dayKeyLayout)
			byDay[key] = append(byDay[key], occ)
		}
	}

	out := make([]DayBucket, 0, 366*(span.EndYear-span.StartYear+1))
	for d := dateOf(spanStart); !d.After(dateOf(spanEnd)); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKeyLayout)
		occsForDay := byDay[key]
		out = append(out, DayBucket{
			Date:        d,
			Key:         key,
			Occurrences: occsForDay,
			Density:     ClassifyDensity(len(occsForDay)),
		})
	}
	return out, nil
}

// Rows arranges day buckets for rendering: seven-day rows starting on the
// span's first day for week-row mode, one row per calendar month for
// month-row mode, and per-month week grids with leading blank cells for the
// traditional mode (blanks are zero-value buckets with an empty Key).
func Rows(buckets []DayBucket, mode GridMode) [][]DayBucket {
	if len(buckets) == 0 {
		return nil
	}
	switch mode {
	case GridModeWeekRow:
		rows := make([][]DayBucket, 0, len(buckets)/7+1)
		for i := 0; i < len(buckets); i += 7 {
			end := i + 7
			if end > len(buckets) {
				end = len(buckets)
			}
			rows = append(rows, buckets[i:end])
		}
		return rows
	case GridModeMonthRow:
		return splitByMonth(buckets)
	case GridModeTraditional:
		var rows [][]DayBucket
		for _, month := range splitByMonth(buckets) {
			lead := int(month[0].Date.Weekday())
			row := make([]DayBucket, lead, 7)
			for _, b := range month {
				row = append(row, b)
				if len(row) == 7 {
					rows = append(rows, row)
					row = make([]DayBucket, 0, 7)
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
		return rows
	default:
		return nil
	}
}

func splitByMonth(buckets []DayBucket) [][]DayBucket {
	var out [][]DayBucket
	start := 0
	for i := 1; i <= len(buckets); i++ {
		if i == len(buckets) || buckets[i].Date.Month() != buckets[start].Date.Month() ||
			buckets[i].Date.Year() != buckets[start].Date.Year() {
			out = append(out, buckets[start:i])
			start = i
		}
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
