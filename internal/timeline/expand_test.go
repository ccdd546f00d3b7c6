package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func tsAt(t time.Time) *model.Timestamp {
	v := model.NewTimestamp(t)
	return &v
}

func weeklyEvent(id int64, first time.Time) model.Event {
	return model.Event{
		ID:         id,
		ProjectID:  1,
		Name:       "gym session",
		Type:       model.EventTypeAppointment,
		When:       tsAt(first),
		Recurrence: &model.Recurrence{Frequency: model.FrequencyWeekly},
	}
}

func TestExpandDropsUnscheduled(t *testing.T) {
	events := []model.Event{{ID: 1, Name: "someday", Type: model.EventTypeTask}}
	occs, err := Expand(events, day(2025, 1, 1), day(2025, 12, 31))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(occs) != 0 {
		t.Fatalf("unscheduled event produced %d occurrences", len(occs))
	}
}

func TestExpandPassesThroughNonRecurring(t *testing.T) {
	inWindow := model.Event{
		ID: 1, ProjectID: 2, Name: "dentist", Type: model.EventTypeAppointment,
		When: tsAt(day(2025, 6, 10)),
	}
	outside := model.Event{
		ID: 2, ProjectID: 2, Name: "conference", Type: model.EventTypeAppointment,
		When: tsAt(day(2025, 9, 1)),
	}
	occs, err := Expand([]model.Event{inWindow, outside}, day(2025, 6, 1), day(2025, 6, 30))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(occs) != 1 || occs[0].EventID != 1 {
		t.Fatalf("unexpected occurrences: %+v", occs)
	}
	if occs[0].Recurring {
		t.Fatal("single occurrence flagged as recurring")
	}
}

func TestExpandWeeklyWindow(t *testing.T) {
	ev := weeklyEvent(1, day(2025, 1, 1))
	occs, err := Expand([]model.Event{ev}, day(2025, 1, 8), day(2025, 1, 22))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	want := []string{"2025-01-08", "2025-01-15", "2025-01-22"}
	if len(occs) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(occs), len(want))
	}
	for i, w := range want {
		if got := occs[i].Start.At.Format("2006-01-02"); got != w {
			t.Fatalf("occurrence[%d] got %s want %s", i, got, w)
		}
	}
}

func TestExpandPreservesTemplateDuration(t *testing.T) {
	ev := model.Event{
		ID: 1, ProjectID: 1, Name: "sprint", Type: model.EventTypePeriod,
		When:       tsAt(day(2025, 1, 6)),
		EndWhen:    tsAt(day(2025, 1, 8)),
		Recurrence: &model.Recurrence{Frequency: model.FrequencyWeekly},
	}
	occs, err := Expand([]model.Event{ev}, day(2025, 1, 1), day(2025, 1, 31))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(occs) == 0 {
		t.Fatal("no occurrences")
	}
	for _, occ := range occs {
		if occ.End == nil {
			t.Fatalf("period occurrence lost its end: %+v", occ)
		}
		if got := occ.End.At.Sub(occ.Start.At); got != 48*time.Hour {
			t.Fatalf("duration got %v want 48h", got)
		}
	}
}

func TestExpandMonthlyDriftAccumulates(t *testing.T) {
	ev := model.Event{
		ID: 1, ProjectID: 1, Name: "rent", Type: model.EventTypeTask,
		When:       tsAt(day(2025, 1, 31)),
		Recurrence: &model.Recurrence{Frequency: model.FrequencyMonthly},
	}
	occs, err := Expand([]model.Event{ev}, day(2025, 1, 1), day(2025, 5, 31))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	// Jan 31 -> Mar 3 (through short February), then the drifted date walks on.
	want := []string{"2025-01-31", "2025-03-03", "2025-04-03", "2025-05-03"}
	if len(occs) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %+v", len(occs), len(want), occs)
	}
	for i, w := range want {
		if got := occs[i].Start.At.Format("2006-01-02"); got != w {
			t.Fatalf("occurrence[%d] got %s want %s", i, got, w)
		}
	}
}

func TestExpandHonorsRecurrenceEndDate(t *testing.T) {
	stop := day(2025, 1, 15)
	ev := weeklyEvent(1, day(2025, 1, 1))
	ev.Recurrence.EndDate = &stop
	occs, err := Expand([]model.Event{ev}, day(2025, 1, 1), day(2025, 3, 1))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occs))
	}
	if last := occs[len(occs)-1].Start.At; last.After(stop) {
		t.Fatalf("occurrence past recurrence end: %v", last)
	}
}

func TestExpandShortCircuitsFutureTemplate(t *testing.T) {
	ev := weeklyEvent(1, day(2026, 1, 1))
	occs, err := Expand([]model.Event{ev}, day(2025, 1, 1), day(2025, 2, 1))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if len(occs) != 0 {
		t.Fatalf("template after window produced %d occurrences", len(occs))
	}
}

func TestExpandNeverAliasesTemplate(t *testing.T) {
	ev := model.Event{
		ID: 1, ProjectID: 1, Name: "review", Type: model.EventTypePeriod,
		When:       tsAt(day(2025, 1, 6)),
		EndWhen:    tsAt(day(2025, 1, 7)),
		Who:        []int64{10, 11},
		Recurrence: &model.Recurrence{Frequency: model.FrequencyDaily},
	}
	first, err := Expand([]model.Event{ev}, day(2025, 1, 6), day(2025, 1, 8))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	second, err := Expand([]model.Event{ev}, day(2025, 1, 6), day(2025, 1, 8))
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	first[0].Start.Display = "mutated"
	first[0].End.Display = "mutated"
	first[0].Who[0] = 99

	if ev.When.Display == "mutated" || ev.EndWhen.Display == "mutated" {
		t.Fatal("occurrence mutation reached the template")
	}
	if ev.Who[0] == 99 {
		t.Fatal("occurrence participant list aliases the template")
	}
	if second[0].Start.Display == "mutated" || second[0].Who[0] == 99 {
		t.Fatal("occurrence mutation reached a sibling expansion")
	}
	if second[0].Start.At != first[0].Start.At {
		t.Fatal("overlapping expansions disagree on occurrence times")
	}
}

func TestExpandFailsFastOnBadInput(t *testing.T) {
	bad := model.Event{
		ID: 1, Name: "broken", Type: model.EventTypePeriod,
		When:    tsAt(day(2025, 6, 10)),
		EndWhen: tsAt(day(2025, 6, 1)),
	}
	_, err := Expand([]model.Event{bad}, day(2025, 1, 1), day(2025, 12, 31))
	if !errors.Is(err, model.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}

	badFreq := model.Event{
		ID: 2, Name: "broken", Type: model.EventTypeTask,
		When:       tsAt(day(2025, 6, 10)),
		Recurrence: &model.Recurrence{Frequency: model.Frequency("hourly")},
	}
	_, err = Expand([]model.Event{badFreq}, day(2025, 1, 1), day(2025, 12, 31))
	if !errors.Is(err, model.ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}
