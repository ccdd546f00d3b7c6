package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateEvent(ctx context.Context, in Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	UpdateEvent(ctx context.Context, in Event) error
	DeleteEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context, filter EventListFilter) ([]Event, error)

	CreateProject(ctx context.Context, in Project) (int64, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	UpdateProject(ctx context.Context, in Project) error
	DeleteProject(ctx context.Context, id int64) error
	ListProjects(ctx context.Context, filter ProjectListFilter) ([]Project, error)

	CreateHoliday(ctx context.Context, in Holiday) (int64, error)
	ListHolidays(ctx context.Context, filter ListFilter) ([]Holiday, error)

	CreateLocation(ctx context.Context, in Location) (int64, error)
	GetLocation(ctx context.Context, id int64) (Location, error)
	ListLocations(ctx context.Context, filter ListFilter) ([]Location, error)

	CreateContact(ctx context.Context, in Contact) (int64, error)
	GetContact(ctx context.Context, id int64) (Contact, error)
	ListContacts(ctx context.Context, filter ListFilter) ([]Contact, error)
}
