// Package snapshot dumps and restores the organizer database as a portable
// JSON document. Unlike the iCalendar codec it is lossless: every table the
// store owns round-trips, including participants and recurrence rules.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/llm-case-studies/whowhe2wha/internal/storage"
)

// Version is bumped whenever the snapshot shape changes incompatibly.
const Version = 1

type Snapshot struct {
	Version   int                `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	Projects  []storage.Project  `json:"projects"`
	Locations []storage.Location `json:"locations"`
	Contacts  []storage.Contact  `json:"contacts"`
	Holidays  []storage.Holiday  `json:"holidays"`
	Events    []storage.Event    `json:"events"`
}

// Dump reads the entire store into a snapshot.
func Dump(ctx context.Context, repo storage.Repository) (Snapshot, error) {
	snap := Snapshot{Version: Version, CreatedAt: time.Now().UTC()}

	var err error
	if snap.Projects, err = repo.ListProjects(ctx, storage.ProjectListFilter{}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: projects: %w", err)
	}
	if snap.Locations, err = repo.ListLocations(ctx, storage.ListFilter{}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: locations: %w", err)
	}
	if snap.Contacts, err = repo.ListContacts(ctx, storage.ListFilter{}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: contacts: %w", err)
	}
	if snap.Holidays, err = repo.ListHolidays(ctx, storage.ListFilter{}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: holidays: %w", err)
	}
	if snap.Events, err = repo.ListEvents(ctx, storage.EventListFilter{}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: events: %w", err)
	}
	return snap, nil
}

// Restore writes a snapshot into the store. The store assigns fresh row IDs,
// so cross-references (project, location, participants) are remapped from
// the snapshot's IDs to the newly assigned ones. Restoring into a non-empty
// store is allowed and purely additive.
func Restore(ctx context.Context, repo storage.Repository, snap Snapshot) error {
	if snap.Version != Version {
		return fmt.Errorf("snapshot: unsupported version %d", snap.Version)
	}

	projects := make(map[int64]int64, len(snap.Projects))
	for _, p := range snap.Projects {
		oldID := p.ID
		p.ID = 0
		id, err := repo.CreateProject(ctx, p)
		if err != nil {
			return fmt.Errorf("snapshot: restore project %q: %w", p.Name, err)
		}
		projects[oldID] = id
	}

	locations := make(map[int64]int64, len(snap.Locations))
	for _, l := range snap.Locations {
		oldID := l.ID
		l.ID = 0
		id, err := repo.CreateLocation(ctx, l)
		if err != nil {
			return fmt.Errorf("snapshot: restore location %q: %w", l.Name, err)
		}
		locations[oldID] = id
	}

	contacts := make(map[int64]int64, len(snap.Contacts))
	for _, c := range snap.Contacts {
		oldID := c.ID
		c.ID = 0
		id, err := repo.CreateContact(ctx, c)
		if err != nil {
			return fmt.Errorf("snapshot: restore contact %q: %w", c.Name, err)
		}
		contacts[oldID] = id
	}

	for _, h := range snap.Holidays {
		h.ID = 0
		if _, err := repo.CreateHoliday(ctx, h); err != nil {
			return fmt.Errorf("snapshot: restore holiday %q: %w", h.Name, err)
		}
	}

	for _, ev := range snap.Events {
		name := ev.Name
		ev.ID = 0
		var ok bool
		if ev.ProjectID, ok = projects[ev.ProjectID]; !ok {
			return fmt.Errorf("snapshot: event %q references unknown project", name)
		}
		if ev.WhereID != 0 {
			if ev.WhereID, ok = locations[ev.WhereID]; !ok {
				return fmt.Errorf("snapshot: event %q references unknown location", name)
			}
		}
		remapped := make([]int64, len(ev.Participants))
		for i, p := range ev.Participants {
			if remapped[i], ok = contacts[p]; !ok {
				return fmt.Errorf("snapshot: event %q references unknown contact", name)
			}
		}
		ev.Participants = remapped
		if _, err := repo.CreateEvent(ctx, ev); err != nil {
			return fmt.Errorf("snapshot: restore event %q: %w", name, err)
		}
	}
	return nil
}

// WriteFile dumps the store to path as indented JSON.
func WriteFile(ctx context.Context, repo storage.Repository, path string) error {
	snap, err := Dump(ctx, repo)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// ReadFile parses a snapshot written by WriteFile.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	return snap, nil
}
