package update

import (
	"context"
	"fmt"

	"github.com/llm-case-studies/whowhe2wha/internal/config"
	"github.com/llm-case-studies/whowhe2wha/internal/model"
	"github.com/llm-case-studies/whowhe2wha/internal/storage"
)

// LoadLibrary builds the in-memory organizer data the views work from: every
// stored entity plus the config's tier layout and holiday calendar. Stored
// holidays are appended after the config's.
func LoadLibrary(ctx context.Context, repo storage.Repository, cfg *config.Config) (Library, error) {
	lib := Library{
		Projects:  make(map[int64]model.Project),
		Locations: make(map[int64]model.Location),
		Contacts:  make(map[int64]model.Contact),
		Tiers:     cfg.TierConfig(),
		Holidays:  cfg.HolidayList(),
	}

	events, err := repo.ListEvents(ctx, storage.EventListFilter{})
	if err != nil {
		return Library{}, fmt.Errorf("load events: %w", err)
	}
	for _, ev := range events {
		domain, err := ev.ToModel()
		if err != nil {
			return Library{}, fmt.Errorf("event %d: %w", ev.ID, err)
		}
		lib.Events = append(lib.Events, domain)
	}

	projects, err := repo.ListProjects(ctx, storage.ProjectListFilter{})
	if err != nil {
		return Library{}, fmt.Errorf("load projects: %w", err)
	}
	for _, p := range projects {
		domain := p.ToModel()
		lib.Projects[domain.ID] = domain
	}

	locations, err := repo.ListLocations(ctx, storage.ListFilter{})
	if err != nil {
		return Library{}, fmt.Errorf("load locations: %w", err)
	}
	for _, l := range locations {
		lib.Locations[l.ID] = model.Location{ID: l.ID, Name: l.Name, Address: l.Address, Lat: l.Lat, Lon: l.Lon}
	}

	contacts, err := repo.ListContacts(ctx, storage.ListFilter{})
	if err != nil {
		return Library{}, fmt.Errorf("load contacts: %w", err)
	}
	for _, c := range contacts {
		lib.Contacts[c.ID] = model.Contact{ID: c.ID, Name: c.Name, Email: c.Email}
	}

	stored, err := repo.ListHolidays(ctx, storage.ListFilter{})
	if err != nil {
		return Library{}, fmt.Errorf("load holidays: %w", err)
	}
	for _, h := range stored {
		lib.Holidays = append(lib.Holidays, h.ToModel())
	}

	return lib, nil
}
