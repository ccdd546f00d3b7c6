package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "whowhe2wha-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func mustCreateProject(t *testing.T, repo *SQLiteRepository, name, category string) int64 {
	t.Helper()
	id, err := repo.CreateProject(context.Background(), Project{
		Name:      name,
		Category:  category,
		Color:     "teal",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return id
}

func TestEventCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	projectID := mustCreateProject(t, repo, "gym", "Health")

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	id, err := repo.CreateEvent(ctx, Event{
		ProjectID:    projectID,
		Name:         "checkup",
		Description:  "annual",
		Type:         "Appointment",
		StartAt:      &start,
		Participants: []int64{3, 1, 2},
		CreatedAt:    start,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	got, err := repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got.Name != "checkup" || got.StartAt == nil || !got.StartAt.Equal(start) {
		t.Fatalf("unexpected event: %#v", got)
	}
	if len(got.Participants) != 3 || got.Participants[0] != 3 {
		t.Fatalf("participant order not preserved: %v", got.Participants)
	}

	got.Name = "checkup v2"
	got.Participants = []int64{7}
	if err := repo.UpdateEvent(ctx, got); err != nil {
		t.Fatalf("update event: %v", err)
	}
	got, err = repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "checkup v2" || len(got.Participants) != 1 {
		t.Fatalf("update not applied: %#v", got)
	}

	list, err := repo.ListEvents(ctx, EventListFilter{ProjectID: projectID})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list got %d events", len(list))
	}

	if err := repo.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if _, err := repo.GetEvent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRecurrenceRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	projectID := mustCreateProject(t, repo, "rent", "Finance")

	start := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	recEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	id, err := repo.CreateEvent(ctx, Event{
		ProjectID:      projectID,
		Name:           "pay rent",
		Type:           "Task",
		StartAt:        &start,
		RecurrenceFreq: "monthly",
		RecurrenceEnd:  &recEnd,
		CreatedAt:      start,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	got, err := repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	ev, err := got.ToModel()
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if ev.Recurrence == nil || ev.Recurrence.Frequency != model.FrequencyMonthly {
		t.Fatalf("recurrence lost: %#v", ev.Recurrence)
	}
	if ev.Recurrence.EndDate == nil || !ev.Recurrence.EndDate.Equal(recEnd) {
		t.Fatalf("recurrence end lost: %#v", ev.Recurrence)
	}
	if ev.When == nil || ev.When.Display == "" {
		t.Fatal("model event missing display timestamp")
	}
}

func TestDeleteProjectCascadesToEvents(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	projectID := mustCreateProject(t, repo, "launch", "Work")

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	id, err := repo.CreateEvent(ctx, Event{
		ProjectID: projectID,
		Name:      "ship it",
		Type:      "Milestone",
		StartAt:   &start,
		CreatedAt: start,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := repo.DeleteProject(ctx, projectID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := repo.GetEvent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("event survived project delete: %v", err)
	}
}

func TestHolidaysAndContacts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateHoliday(ctx, Holiday{
		Name:     "New Year",
		Date:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Category: "Family",
	}); err != nil {
		t.Fatalf("create holiday: %v", err)
	}
	holidays, err := repo.ListHolidays(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list holidays: %v", err)
	}
	if len(holidays) != 1 || holidays[0].Name != "New Year" {
		t.Fatalf("unexpected holidays: %#v", holidays)
	}

	contactID, err := repo.CreateContact(ctx, Contact{
		Name:      "Alex",
		Email:     "alex@example.com",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	contact, err := repo.GetContact(ctx, contactID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if contact.Email != "alex@example.com" {
		t.Fatalf("unexpected contact: %#v", contact)
	}

	locID, err := repo.CreateLocation(ctx, Location{
		Name:      "Office",
		Address:   "1 Main St",
		Lat:       37.77,
		Lon:       -122.41,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	loc, err := repo.GetLocation(ctx, locID)
	if err != nil {
		t.Fatalf("get location: %v", err)
	}
	if loc.Name != "Office" || loc.Lat != 37.77 {
		t.Fatalf("unexpected location: %#v", loc)
	}
}
