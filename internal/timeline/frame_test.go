package timeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

func frameFixture(t *testing.T) (Window, []Occurrence, Packing) {
	t.Helper()
	ref := time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	w, err := Resolve(ScaleWeek, ref)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	visible := map[model.Category][]model.Project{
		model.CategoryHealth:  {{ID: 1, Name: "gym", Category: model.CategoryHealth}},
		model.CategoryFinance: {{ID: 2, Name: "taxes", Category: model.CategoryFinance}},
		model.CategoryWork:    {{ID: 3, Name: "launch", Category: model.CategoryWork}},
	}
	p := Pack(personalProfessionalConfig(), model.AllCategories(), visible, DefaultPackOptions())

	events := []model.Event{
		{ID: 1, ProjectID: 1, Name: "checkup", Type: model.EventTypeAppointment, When: tsAt(ref)},
		{
			ID: 2, ProjectID: 3, Name: "crunch", Type: model.EventTypePeriod,
			When:    tsAt(ref.Add(-24 * time.Hour)),
			EndWhen: tsAt(ref.Add(24 * time.Hour)),
		},
	}
	occs, err := Expand(events, w.Start, w.End)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	return w, occs, p
}

func TestMapFramePositionsClamped(t *testing.T) {
	w, _, p := frameFixture(t)
	occs := []Occurrence{
		{EventID: 1, ProjectID: 1, Type: model.EventTypeTask, Start: model.NewTimestamp(w.Start.Add(-48 * time.Hour))},
		{EventID: 2, ProjectID: 1, Type: model.EventTypeTask, Start: model.NewTimestamp(w.End.Add(48 * time.Hour))},
	}
	frame := MapFrame(w, occs, p, nil, w.Start)
	if len(frame.Points) != 2 {
		t.Fatalf("expected clamped markers, got %d", len(frame.Points))
	}
	if frame.Points[0].X != 0 || frame.Points[1].X != 100 {
		t.Fatalf("clamping failed: %v %v", frame.Points[0].X, frame.Points[1].X)
	}
	for _, pt := range frame.Points {
		if pt.X < 0 || pt.X > 100 {
			t.Fatalf("position %v outside [0, 100]", pt.X)
		}
	}
}

func TestMapFrameClassifiesPeriodsAndPoints(t *testing.T) {
	w, occs, p := frameFixture(t)
	frame := MapFrame(w, occs, p, nil, time.Time{})
	if len(frame.Points) != 1 || len(frame.Spans) != 1 {
		t.Fatalf("got %d points, %d spans", len(frame.Points), len(frame.Spans))
	}
	span := frame.Spans[0]
	if span.X1 >= span.X2 {
		t.Fatalf("span not ordered: [%v, %v]", span.X1, span.X2)
	}
	point := frame.Points[0]
	if point.X != 50 {
		t.Fatalf("centered appointment got X %v", point.X)
	}
	if point.Dropline.FromY != point.Y {
		t.Fatalf("dropline does not start at the marker: %+v", point.Dropline)
	}
	if point.Dropline.ToY != frame.Axes[0].AxisY {
		t.Fatalf("dropline does not reach the tier axis: %+v", point.Dropline)
	}
}

func TestMapFrameVerticalSharedCoordinateSpace(t *testing.T) {
	w, occs, p := frameFixture(t)
	frame := MapFrame(w, occs, p, nil, time.Time{})

	if len(frame.Axes) != 2 {
		t.Fatalf("expected one axis per tier, got %d", len(frame.Axes))
	}
	if frame.Axes[0].Top != p.TopPadding {
		t.Fatalf("first tier top got %v want %v", frame.Axes[0].Top, p.TopPadding)
	}
	wantSecond := p.TopPadding + p.Tiers[0].Height + p.Options.InterTierBarHeight
	if frame.Axes[1].Top != wantSecond {
		t.Fatalf("second tier top got %v want %v", frame.Axes[1].Top, wantSecond)
	}

	// The work-period span must sit inside tier 1's band.
	span := frame.Spans[0]
	if span.Y != frame.Axes[1].Top+p.Lanes[3].TopOffset {
		t.Fatalf("span Y %v not in tier 1 coordinates", span.Y)
	}
}

func TestMapFrameTodayPerAxis(t *testing.T) {
	w, occs, p := frameFixture(t)
	today := w.Start.Add(w.Duration / 4)
	frame := MapFrame(w, occs, p, nil, today)
	if len(frame.Today) != len(frame.Axes) {
		t.Fatalf("got %d today markers for %d axes", len(frame.Today), len(frame.Axes))
	}
	for _, m := range frame.Today {
		if m.X != frame.Today[0].X {
			t.Fatal("today markers disagree on horizontal position")
		}
	}

	frame = MapFrame(w, occs, p, nil, w.End.Add(time.Hour))
	if len(frame.Today) != 0 {
		t.Fatal("today outside the window still produced markers")
	}
}

func TestMapFrameHolidayStrip(t *testing.T) {
	w, occs, p := frameFixture(t)
	holidays := []model.Holiday{
		{Name: "Veterans Day", Date: time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC), Category: model.CategorySocial},
		{Name: "Christmas", Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), Category: model.CategoryFamily},
	}
	frame := MapFrame(w, occs, p, holidays, time.Time{})
	if len(frame.Holidays) != 0 {
		// Window is Nov 12-19; Veterans Day misses it by a day.
		t.Fatalf("out-of-window holidays included: %+v", frame.Holidays)
	}

	holidays[0].Date = time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	frame = MapFrame(w, occs, p, holidays, time.Time{})
	if len(frame.Holidays) != 1 {
		t.Fatalf("expected 1 holiday marker, got %d", len(frame.Holidays))
	}
	if frame.Holidays[0].Y != HolidayLaneY {
		t.Fatalf("holiday not in the fixed strip lane: %v", frame.Holidays[0].Y)
	}
}

func TestMapFrameIdempotent(t *testing.T) {
	w, occs, p := frameFixture(t)
	holidays := []model.Holiday{{Name: "Some Day", Date: w.Start.Add(time.Hour), Category: model.CategorySocial}}
	today := w.Start.Add(2 * time.Hour)
	a := MapFrame(w, occs, p, holidays, today)
	b := MapFrame(w, occs, p, holidays, today)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("recomputing a frame on unchanged inputs changed coordinates")
	}
}

func TestEndToEndWeekScenario(t *testing.T) {
	ref := time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	w, err := Resolve(ScaleWeek, ref)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if w.Start.Format("2006-01-02") != "2025-11-12" || w.End.Format("2006-01-02") != "2025-11-19" {
		t.Fatalf("window got [%s, %s]", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}

	visible := map[model.Category][]model.Project{
		model.CategoryHealth:  {{ID: 1, Name: "p1", Category: model.CategoryHealth}},
		model.CategoryFinance: {{ID: 2, Name: "p2", Category: model.CategoryFinance}},
		model.CategoryWork:    {{ID: 3, Name: "p3", Category: model.CategoryWork}},
	}
	p := Pack(personalProfessionalConfig(), model.AllCategories(), visible, DefaultPackOptions())

	p1, p2, p3 := p.Lanes[1], p.Lanes[2], p.Lanes[3]
	if p1.TierIndex != 0 || p2.TierIndex != 0 || p3.TierIndex != 1 {
		t.Fatalf("tier assignment: %+v %+v %+v", p1, p2, p3)
	}
	if p1.LaneIndex == p2.LaneIndex {
		t.Fatal("p1 and p2 share a lane")
	}
	if p.Tiers[1].LaneCount != 1 {
		t.Fatalf("p3 not alone in tier 1: %d lanes", p.Tiers[1].LaneCount)
	}
}
