package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llm-case-studies/whowhe2wha/internal/alerts"
	"github.com/llm-case-studies/whowhe2wha/internal/commands"
	"github.com/llm-case-studies/whowhe2wha/internal/config"
	"github.com/llm-case-studies/whowhe2wha/internal/ics"
	"github.com/llm-case-studies/whowhe2wha/internal/log"
	"github.com/llm-case-studies/whowhe2wha/internal/model"
	"github.com/llm-case-studies/whowhe2wha/internal/snapshot"
	"github.com/llm-case-studies/whowhe2wha/internal/storage"
	"github.com/llm-case-studies/whowhe2wha/internal/timeline"
	"github.com/llm-case-studies/whowhe2wha/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "whowhe2wha failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("WHOWHE2WHA_CONFIG")
	if cfgPath == "" {
		cfgPath = "whowhe2wha.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log.Info("config loaded", "path", cfgPath, "db", cfg.DBPath)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := storage.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(os.Args) > 1 {
		return runCommand(ctx, repo, strings.Join(os.Args[1:], " "))
	}

	lib, err := update.LoadLibrary(ctx, repo, cfg)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	engine := alerts.NewEngine(64)
	engine.Start()
	defer engine.Stop()
	upcoming, err := alerts.Upcoming(lib.Events, now, 24*time.Hour)
	if err != nil {
		return err
	}
	for _, a := range upcoming {
		if err := engine.Schedule(a); err != nil {
			return err
		}
	}
	log.Info("alerts scheduled", "count", len(upcoming))

	m := update.NewModel(lib, timeline.Scale(cfg.DefaultScale), now)
	m.Alerts = engine
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

func runCommand(ctx context.Context, repo storage.Repository, input string) error {
	cmd, err := commands.Parse(input)
	if err != nil {
		return err
	}
	res, err := commands.Execute(cmd, commands.Handlers{
		ExportICS: func(a commands.PathArgs) (commands.Result, error) {
			events, err := loadEvents(ctx, repo)
			if err != nil {
				return commands.Result{}, err
			}
			data, err := ics.Export(events)
			if err != nil {
				return commands.Result{}, err
			}
			if err := os.WriteFile(a.Path, data, 0o644); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %d events to %s", len(events), a.Path)}, nil
		},
		ImportICS: func(a commands.PathArgs) (commands.Result, error) {
			n, err := importICS(ctx, repo, a.Path)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("imported %d events from %s", n, a.Path)}, nil
		},
		Backup: func(a commands.PathArgs) (commands.Result, error) {
			if err := snapshot.WriteFile(ctx, repo, a.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "backup written to " + a.Path}, nil
		},
		Restore: func(a commands.PathArgs) (commands.Result, error) {
			snap, err := snapshot.ReadFile(a.Path)
			if err != nil {
				return commands.Result{}, err
			}
			if err := snapshot.Restore(ctx, repo, snap); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "restored from " + a.Path}, nil
		},
	})
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

func loadEvents(ctx context.Context, repo storage.Repository) ([]model.Event, error) {
	stored, err := repo.ListEvents(ctx, storage.EventListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(stored))
	for _, ev := range stored {
		domain, err := ev.ToModel()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", ev.ID, err)
		}
		out = append(out, domain)
	}
	return out, nil
}

// importICS files imported events under a dedicated project, creating it on
// first use.
func importICS(ctx context.Context, repo storage.Repository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	events, err := ics.Import(data, 1)
	if err != nil {
		return 0, err
	}

	projectID, err := importProjectID(ctx, repo)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, ev := range events {
		stored := storage.EventFromModel(ev, time.Now().UTC())
		stored.ID = 0
		stored.ProjectID = projectID
		if _, err := repo.CreateEvent(ctx, stored); err != nil {
			return count, fmt.Errorf("import %q: %w", ev.Name, err)
		}
		count++
	}
	return count, nil
}

func importProjectID(ctx context.Context, repo storage.Repository) (int64, error) {
	projects, err := repo.ListProjects(ctx, storage.ProjectListFilter{})
	if err != nil {
		return 0, err
	}
	for _, p := range projects {
		if p.Name == "Imported" {
			return p.ID, nil
		}
	}
	return repo.CreateProject(ctx, storage.Project{
		Name:      "Imported",
		Category:  string(model.CategorySocial),
		CreatedAt: time.Now().UTC(),
	})
}
