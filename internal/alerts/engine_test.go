package alerts

import (
	"testing"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

func TestEngineEmitsInTimeOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Alert{EventID: 2, Name: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alert{EventID: 1, Name: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.Name != "sooner" || second.Name != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Name, second.Name)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alert{EventID: int64(i), Name: "same", At: at}); err != nil {
			t.Fatalf("schedule alert: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alerts > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesAlertTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alert{EventID: 1, Name: "bad"}); err != ErrInvalidAlertTime {
		t.Fatalf("expected ErrInvalidAlertTime, got %v", err)
	}
}

func TestUpcomingSkipsStartedAndUnscheduled(t *testing.T) {
	now := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)
	started := model.NewTimestamp(now.Add(-time.Hour))
	soon := model.NewTimestamp(now.Add(2 * time.Hour))

	events := []model.Event{
		{ID: 1, ProjectID: 1, Name: "already running", Type: model.EventTypeAppointment, When: &started},
		{ID: 2, ProjectID: 1, Name: "checkup", Type: model.EventTypeAppointment, When: &soon},
		{ID: 3, ProjectID: 1, Name: "someday", Type: model.EventTypeTask},
	}

	got, err := Upcoming(events, now, 24*time.Hour)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	if got[0].EventID != 2 || got[0].Name != "checkup" || !got[0].At.Equal(soon.At) {
		t.Fatalf("unexpected alert: %+v", got[0])
	}
}

func TestUpcomingExpandsRecurringWithinHorizon(t *testing.T) {
	now := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)
	start := model.NewTimestamp(time.Date(2025, time.November, 10, 7, 0, 0, 0, time.UTC))

	events := []model.Event{
		{
			ID:         7,
			ProjectID:  1,
			Name:       "run",
			Type:       model.EventTypeTask,
			When:       &start,
			Recurrence: &model.Recurrence{Frequency: model.FrequencyDaily},
		},
	}

	got, err := Upcoming(events, now, 48*time.Hour)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(got))
	}
	for _, a := range got {
		if a.EventID != 7 || !a.At.After(now) {
			t.Fatalf("unexpected alert: %+v", a)
		}
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
