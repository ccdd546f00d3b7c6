package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateEvent(ctx context.Context, in Event) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO events (project_id, name, description, type, start_at, end_at, where_id, recurrence_freq, recurrence_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ProjectID, in.Name, in.Description, in.Type,
		nullTime(in.StartAt), nullTime(in.EndAt), in.WhereID,
		in.RecurrenceFreq, nullTime(in.RecurrenceEnd), mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := r.replaceParticipants(ctx, id, in.Participants); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SQLiteRepository) GetEvent(ctx context.Context, id int64) (Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, name, description, type, start_at, end_at, where_id, recurrence_freq, recurrence_end, created_at
		FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	ev.Participants, err = r.loadParticipants(ctx, ev.ID)
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}

func (r *SQLiteRepository) UpdateEvent(ctx context.Context, in Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET project_id = ?, name = ?, description = ?, type = ?, start_at = ?, end_at = ?, where_id = ?, recurrence_freq = ?, recurrence_end = ?
		WHERE id = ?`,
		in.ProjectID, in.Name, in.Description, in.Type,
		nullTime(in.StartAt), nullTime(in.EndAt), in.WhereID,
		in.RecurrenceFreq, nullTime(in.RecurrenceEnd), in.ID,
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	return r.replaceParticipants(ctx, in.ID, in.Participants)
}

func (r *SQLiteRepository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, filter EventListFilter) ([]Event, error) {
	query := `SELECT id, project_id, name, description, type, start_at, end_at, where_id, recurrence_freq, recurrence_end, created_at FROM events`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.ProjectID != 0 {
		clauses = append(clauses, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY start_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		ev, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Participants, err = r.loadParticipants(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, in Project) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (name, category, color, created_at)
		VALUES (?, ?, ?, ?)`,
		in.Name, in.Category, in.Color, mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, category, color, created_at FROM projects WHERE id = ?`, id)
	item, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, in Project) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, category = ?, color = ? WHERE id = ?`,
		in.Name, in.Category, in.Color, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteProject removes a project; its events go with it via the foreign-key
// cascade.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListProjects(ctx context.Context, filter ProjectListFilter) ([]Project, error) {
	query := `SELECT id, name, category, color, created_at FROM projects`
	args := make([]any, 0, 3)
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		item, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateHoliday(ctx context.Context, in Holiday) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO holidays (name, date, category) VALUES (?, ?, ?)`,
		in.Name, mustTime(in.Date), in.Category,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListHolidays(ctx context.Context, filter ListFilter) ([]Holiday, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, date, category FROM holidays ORDER BY date ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Holiday, 0)
	for rows.Next() {
		var item Holiday
		var date string
		if err := rows.Scan(&item.ID, &item.Name, &date, &item.Category); err != nil {
			return nil, err
		}
		item.Date, err = parseRequiredTime(date)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateLocation(ctx context.Context, in Location) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (name, address, lat, lon, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.Name, in.Address, in.Lat, in.Lon, mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetLocation(ctx context.Context, id int64) (Location, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, address, lat, lon, created_at FROM locations WHERE id = ?`, id)
	item, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Location{}, ErrNotFound
		}
		return Location{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListLocations(ctx context.Context, filter ListFilter) ([]Location, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, address, lat, lon, created_at FROM locations ORDER BY name ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Location, 0)
	for rows.Next() {
		item, scanErr := scanLocation(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateContact(ctx context.Context, in Contact) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (name, email, created_at) VALUES (?, ?, ?)`,
		in.Name, in.Email, mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetContact(ctx context.Context, id int64) (Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, created_at FROM contacts WHERE id = ?`, id)
	var item Contact
	var created string
	if err := row.Scan(&item.ID, &item.Name, &item.Email, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Contact{}, err
	}
	item.CreatedAt = createdAt
	return item, nil
}

func (r *SQLiteRepository) ListContacts(ctx context.Context, filter ListFilter) ([]Contact, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, email, created_at FROM contacts ORDER BY name ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contact, 0)
	for rows.Next() {
		var item Contact
		var created string
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &created); err != nil {
			return nil, err
		}
		createdAt, parseErr := parseRequiredTime(created)
		if parseErr != nil {
			return nil, parseErr
		}
		item.CreatedAt = createdAt
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) replaceParticipants(ctx context.Context, eventID int64, contacts []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	for pos, contactID := range contacts {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO event_participants (event_id, position, contact_id) VALUES (?, ?, ?)`,
			eventID, pos, contactID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) loadParticipants(ctx context.Context, eventID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT contact_id FROM event_participants WHERE event_id = ? ORDER BY position ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (Event, error) {
	var out Event
	var start, end, recEnd sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.ProjectID, &out.Name, &out.Description, &out.Type,
		&start, &end, &out.WhereID, &out.RecurrenceFreq, &recEnd, &created); err != nil {
		return Event{}, err
	}
	var err error
	if out.StartAt, err = parseNullableTime(start); err != nil {
		return Event{}, err
	}
	if out.EndAt, err = parseNullableTime(end); err != nil {
		return Event{}, err
	}
	if out.RecurrenceEnd, err = parseNullableTime(recEnd); err != nil {
		return Event{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return Event{}, err
	}
	return out, nil
}

func scanProject(s scanner) (Project, error) {
	var out Project
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Category, &out.Color, &created); err != nil {
		return Project{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Project{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanLocation(s scanner) (Location, error) {
	var out Location
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Address, &out.Lat, &out.Lon, &created); err != nil {
		return Location{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Location{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}
