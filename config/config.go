// Package config loads the tagnote configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/tagnote/trigger"
)

var ErrInvalid = errors.New("config: invalid")

// Source kinds understood by Trigger.Source.
const (
	SourceMemory = "memory"
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// Config is the root configuration structure.
type Config struct {
	// MinQuery is the number of characters after a trigger symbol needed
	// before a lookup fires.
	MinQuery       int           `yaml:"min_query"`
	LookupTimeout  time.Duration `yaml:"lookup_timeout"`
	MaxSuggestions int           `yaml:"max_suggestions"`

	// Seed is an optional JSON or YAML note loaded on start.
	Seed string `yaml:"seed"`

	Triggers map[string]Trigger `yaml:"triggers"`

	// Styles maps a segment kind to a terminal colour ("212", "#ff87d7").
	Styles map[string]string `yaml:"styles"`
}

// Trigger binds one trigger symbol to a suggestion source.
type Trigger struct {
	Kind   string `yaml:"kind"`
	Source string `yaml:"source"`

	// memory
	Items []Item `yaml:"items,omitempty"`
	// file, sqlite
	Path string `yaml:"path,omitempty"`
	// http
	URL     string `yaml:"url,omitempty"`
	Results string `yaml:"results,omitempty"`
	Label   string `yaml:"label,omitempty"`
	Value   string `yaml:"value,omitempty"`
	Detail  string `yaml:"detail,omitempty"`
}

// Item is an inline candidate for memory sources.
type Item struct {
	Label  string `yaml:"label"`
	Value  any    `yaml:"value"`
	Detail string `yaml:"detail,omitempty"`
}

// Default returns the built-in configuration: "@" people and "#" dossiers
// served from memory.
func Default() *Config {
	return &Config{
		MinQuery:       trigger.MinQueryRich,
		LookupTimeout:  2 * time.Second,
		MaxSuggestions: 8,
		Triggers: map[string]Trigger{
			"@": {
				Kind:   "user",
				Source: SourceMemory,
				Items: []Item{
					{Label: "clark kent", Value: 1},
					{Label: "bruce lee", Value: 2},
					{Label: "bruce willis", Value: 3},
					{Label: "bruce wayne", Value: 4},
				},
			},
			"#": {
				Kind:   "dossier",
				Source: SourceMemory,
				Items: []Item{
					{Label: "hero", Value: 1},
					{Label: "actor", Value: 2},
					{Label: "douche", Value: 3},
				},
			},
		},
		Styles: map[string]string{
			"user":    "212",
			"date":    "81",
			"time":    "114",
			"dossier": "220",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills zero values with defaults and rejects unusable triggers.
func (c *Config) Validate() error {
	if c.MinQuery <= 0 {
		c.MinQuery = trigger.MinQueryRich
	}
	if c.LookupTimeout < 0 {
		c.LookupTimeout = 0
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = 8
	}

	for _, sym := range c.Symbols() {
		t := c.Triggers[sym]
		if utf8.RuneCountInString(sym) != 1 {
			return fmt.Errorf("%w: trigger %q must be a single character", ErrInvalid, sym)
		}
		if t.Kind == "" || t.Kind == "text" {
			return fmt.Errorf("%w: trigger %q needs an annotation kind", ErrInvalid, sym)
		}
		switch t.Source {
		case SourceMemory:
		case SourceFile, SourceSQLite:
			if t.Path == "" {
				return fmt.Errorf("%w: trigger %q: %s source needs a path", ErrInvalid, sym, t.Source)
			}
		case SourceHTTP:
			if t.URL == "" {
				return fmt.Errorf("%w: trigger %q: http source needs a url", ErrInvalid, sym)
			}
		default:
			return fmt.Errorf("%w: trigger %q: unknown source %q", ErrInvalid, sym, t.Source)
		}
	}
	return nil
}

// Symbols returns the configured trigger symbols in a stable order.
func (c *Config) Symbols() []string {
	out := make([]string, 0, len(c.Triggers))
	for sym := range c.Triggers {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
