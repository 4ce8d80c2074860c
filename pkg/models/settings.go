package models

import (
	"fmt"
	"time"
)

// Settings represents the application configuration
type Settings struct {
	Data   DataSettings   `yaml:"data" toml:"data"`
	Search SearchSettings `yaml:"search" toml:"search"`
	UI     UISettings     `yaml:"ui" toml:"ui"`
	Log    LogSettings    `yaml:"log" toml:"log"`
}

// DataSettings controls where the item collection comes from
type DataSettings struct {
	Source   string `yaml:"source" toml:"source"`       // local path or http(s) URL
	BasePath string `yaml:"base_path" toml:"base_path"` // deployment prefix for relative URLs
	Watch    bool   `yaml:"watch" toml:"watch"`         // reload local data on change
}

// SearchSettings controls the full-text engine
type SearchSettings struct {
	Engine    string  `yaml:"engine" toml:"engine"` // "bleve" or "lite"
	Fuzzy     float64 `yaml:"fuzzy" toml:"fuzzy"`
	Prefix    bool    `yaml:"prefix" toml:"prefix"`
	NameBoost float64 `yaml:"name_boost" toml:"name_boost"`
}

// UISettings controls UI preferences
type UISettings struct {
	DebounceMS int `yaml:"debounce_ms" toml:"debounce_ms"`
	CardWidth  int `yaml:"card_width" toml:"card_width"`
	MaxColumns int `yaml:"max_columns" toml:"max_columns"`
}

// LogSettings controls structured logging
type LogSettings struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Search engine names
const (
	EngineBleve = "bleve"
	EngineLite  = "lite"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Data: DataSettings{
			Source:   "data.json",
			BasePath: "",
			Watch:    false,
		},
		Search: SearchSettings{
			Engine:    EngineBleve,
			Fuzzy:     0.2,
			Prefix:    true,
			NameBoost: 2,
		},
		UI: UISettings{
			DebounceMS: 300,
			CardWidth:  36,
			MaxColumns: 5,
		},
		Log: LogSettings{
			Level: "info",
			File:  "",
		},
	}
}

// Debounce returns the search bar debounce delay
func (s *Settings) Debounce() time.Duration {
	return time.Duration(s.UI.DebounceMS) * time.Millisecond
}

// Validate checks the settings for values the rest of the program cannot use
func (s *Settings) Validate() error {
	switch s.Search.Engine {
	case EngineBleve, EngineLite:
	default:
		return fmt.Errorf("unknown search engine: %s (must be: %s or %s)", s.Search.Engine, EngineBleve, EngineLite)
	}
	if s.Search.Fuzzy < 0 || s.Search.Fuzzy > 1 {
		return fmt.Errorf("search.fuzzy must be between 0 and 1, got %v", s.Search.Fuzzy)
	}
	if s.Search.NameBoost <= 0 {
		return fmt.Errorf("search.name_boost must be positive, got %v", s.Search.NameBoost)
	}
	if s.UI.DebounceMS < 0 {
		return fmt.Errorf("ui.debounce_ms cannot be negative")
	}
	if s.UI.CardWidth < 10 {
		return fmt.Errorf("ui.card_width must be at least 10, got %d", s.UI.CardWidth)
	}
	if s.UI.MaxColumns < 1 {
		return fmt.Errorf("ui.max_columns must be at least 1, got %d", s.UI.MaxColumns)
	}
	if s.Data.Source == "" {
		return fmt.Errorf("data.source cannot be empty")
	}
	return nil
}
