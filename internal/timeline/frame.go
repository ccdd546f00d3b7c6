package timeline

import (
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

// HolidayLaneY is the fixed vertical offset of holiday markers inside the
// holiday strip. The strip is time-axis aligned horizontally but lives in its
// own coordinate space above the tier stack; markers sharing a horizontal
// neighborhood are not staggered or merged (known accepted limitation).
const HolidayLaneY = 10.0

// HolidayStripHeight is the height reserved for the holiday strip by callers
// that stack it above the tier container.
const HolidayStripHeight = 24.0

// AxisBar is one tier's horizontal axis: Top/Height bound the band, AxisY is
// the central line droplines attach to.
type AxisBar struct {
	TierIndex int
	Name      string
	Top       float64
	Height    float64
	AxisY     float64
}

// Dropline connects a point marker to its tier's axis line.
type Dropline struct {
	FromY float64
	ToY   float64
}

// PointMarker is a non-period occurrence: one horizontal position in percent
// plus a dropline to the tier axis.
type PointMarker struct {
	Occurrence Occurrence
	X          float64
	Y          float64
	Dropline   Dropline
}

// SpanMarker is a period occurrence rendered as a horizontal span.
type SpanMarker struct {
	Occurrence Occurrence
	X1         float64
	X2         float64
	Y          float64
}

// TodayMarker marks "today" on one tier's axis bar. Every bar gets its own
// marker at the same horizontal coordinate.
type TodayMarker struct {
	TierIndex int
	X         float64
	Y         float64
}

type HolidayMarker struct {
	Holiday model.Holiday
	X       float64
	Y       float64
}

// Frame is one fully positioned render pass: every coordinate a renderer
// needs, nothing it must compute. Horizontal positions are 0-100 percent of
// the window; vertical positions are pixels in the packing's coordinate
// space. Identical inputs yield an identical frame.
type Frame struct {
	Window      Window
	TotalHeight float64
	Axes        []AxisBar
	Points      []PointMarker
	Spans       []SpanMarker
	Today       []TodayMarker
	Holidays    []HolidayMarker
}

// Position maps a timestamp to its horizontal percent in the window,
// clamping out-of-window instants to 0 or 100 rather than excluding them.
func Position(w Window, t time.Time) float64 {
	if w.Duration <= 0 {
		return 0
	}
	frac := float64(t.Sub(w.Start)) / float64(w.Duration)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac * 100
}

// MapFrame combines a window, expanded occurrences, a packing, holidays, and
// "today" into one renderable frame. Tier tops are accumulated in the same
// pass that places the axis bars, so bars and lanes share one coordinate
// space. Occurrences whose project has no lane are skipped; callers filter
// visibility upstream.
func MapFrame(w Window, occs []Occurrence, p Packing, holidays []model.Holiday, today time.Time) Frame {
	frame := Frame{Window: w, TotalHeight: p.TotalHeight}

	tierTops := make([]float64, len(p.Tiers))
	y := p.TopPadding
	for i, tier := range p.Tiers {
		tierTops[i] = y
		frame.Axes = append(frame.Axes, AxisBar{
			TierIndex: i,
			Name:      tier.Name,
			Top:       y,
			Height:    tier.Height,
			AxisY:     y + tier.Height/2,
		})
		y += tier.Height + p.Options.InterTierBarHeight
	}

	for _, occ := range occs {
		lane, ok := p.Lanes[occ.ProjectID]
		if !ok {
			continue
		}
		laneY := tierTops[lane.TierIndex] + lane.TopOffset

		if occ.Type == model.EventTypePeriod && occ.End != nil {
			frame.Spans = append(frame.Spans, SpanMarker{
				Occurrence: occ,
				X1:         Position(w, occ.Start.At),
				X2:         Position(w, occ.End.At),
				Y:          laneY,
			})
			continue
		}

		frame.Points = append(frame.Points, PointMarker{
			Occurrence: occ,
			X:          Position(w, occ.Start.At),
			Y:          laneY,
			Dropline: Dropline{
				FromY: laneY,
				ToY:   frame.Axes[lane.TierIndex].AxisY,
			},
		})
	}

	if w.Contains(today) {
		x := Position(w, today)
		for _, axis := range frame.Axes {
			frame.Today = append(frame.Today, TodayMarker{TierIndex: axis.TierIndex, X: x, Y: axis.AxisY})
		}
	}

	for _, h := range holidays {
		if !w.Contains(h.Date) {
			continue
		}
		frame.Holidays = append(frame.Holidays, HolidayMarker{
			Holiday: h,
			X:       Position(w, h.Date),
			Y:       HolidayLaneY,
		})
	}

	return frame
}
