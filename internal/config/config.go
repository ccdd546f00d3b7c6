package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

const holidayDateLayout = "2006-01-02"

// TierEntry is one tier in the configuration file.
type TierEntry struct {
	Name       string   `yaml:"name"`
	Categories []string `yaml:"categories"`
}

// HolidayEntry is one fixed-date marker in the configuration file.
type HolidayEntry struct {
	Name     string `yaml:"name"`
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
}

// Config is the application configuration. The timeline engine itself takes
// everything as in-memory values; this file is how the app assembles them.
type Config struct {
	// DBPath is the sqlite database location.
	DBPath string `yaml:"db_path"`

	// DefaultScale is the timeline scale on startup: week, month, quarter
	// or year.
	DefaultScale string `yaml:"default_scale"`

	// Tiers is the ordered swimlane configuration. Categories left out of
	// every tier fall into the last one.
	Tiers []TierEntry `yaml:"tiers"`

	// Holidays is the fixed holiday calendar shown in the marker strip.
	Holidays []HolidayEntry `yaml:"holidays"`
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:       "whowhe2wha.db",
		DefaultScale: "month",
		Tiers: []TierEntry{
			{Name: "Personal", Categories: []string{"Health", "Finance", "Family"}},
			{Name: "Professional", Categories: []string{"Work", "Learning", "Social"}},
		},
		Holidays: []HolidayEntry{
			{Name: "New Year's Day", Date: "2025-01-01", Category: "Family"},
			{Name: "Independence Day", Date: "2025-07-04", Category: "Social"},
			{Name: "Christmas", Date: "2025-12-25", Category: "Family"},
		},
	}
}

// Normalize fills zero values with defaults so older or partial config files
// keep working.
func (c *Config) Normalize() {
	if c.DBPath == "" {
		c.DBPath = "whowhe2wha.db"
	}
	switch c.DefaultScale {
	case "week", "month", "quarter", "year":
	default:
		c.DefaultScale = "month"
	}
	if c.Tiers == nil {
		c.Tiers = []TierEntry{}
	}
	if c.Holidays == nil {
		c.Holidays = []HolidayEntry{}
	}
}

// TierConfig converts the file entries into the domain tier configuration,
// dropping unknown category names rather than failing the whole load.
func (c *Config) TierConfig() model.TierConfig {
	out := make(model.TierConfig, 0, len(c.Tiers))
	for i, entry := range c.Tiers {
		tier := model.Tier{ID: int64(i + 1), Name: entry.Name}
		for _, name := range entry.Categories {
			cat := model.Category(name)
			if cat.IsValid() {
				tier.Categories = append(tier.Categories, cat)
			}
		}
		out = append(out, tier)
	}
	return out
}

// HolidayList converts the file entries into domain holidays. Entries with
// unparsable dates or unknown categories are skipped.
func (c *Config) HolidayList() []model.Holiday {
	out := make([]model.Holiday, 0, len(c.Holidays))
	for _, entry := range c.Holidays {
		date, err := time.Parse(holidayDateLayout, entry.Date)
		if err != nil {
			continue
		}
		cat := model.Category(entry.Category)
		if !cat.IsValid() {
			continue
		}
		out = append(out, model.Holiday{Name: entry.Name, Date: date.UTC(), Category: cat})
	}
	return out
}

// Load reads the config at path, creating it with defaults on first run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if saveErr := Save(path, cfg); saveErr != nil {
			return nil, saveErr
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config with 0600 permissions, creating parent directories
// as needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
