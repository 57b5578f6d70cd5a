// Package config loads the TOML run configuration: the participant set
// with forbidden-giftee lists, plus output options for letter writing.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// ErrNoCandidates is returned by [Load] when the configuration contains
// no participants at all.
var ErrNoCandidates = errors.New("no candidates configured")

// Config is a fully parsed run configuration.
//
// Example file:
//
//	outpath   = "./letters"
//	asciiart  = "./reindeer.txt"
//	overwrite = false
//	max_tries = 25
//	seed      = 0
//
//	[candidates]
//	Alice   = ["Bob"]
//	Bob     = []
//	Charlie = []
type Config struct {
	// OutPath is the directory letters are written to. Defaults to ".".
	OutPath string `toml:"outpath"`

	// ArtPath optionally points to a text file appended to every letter.
	ArtPath string `toml:"asciiart"`

	// Overwrite allows replacing existing letter files.
	Overwrite bool `toml:"overwrite"`

	// MaxTries bounds the randomized draw attempts. 0 keeps the engine default.
	MaxTries int `toml:"max_tries"`

	// Seed makes draws reproducible when non-zero.
	Seed uint64 `toml:"seed"`

	// Candidates maps participant names to the names they must not give
	// a gift to. An empty list means unconstrained.
	Candidates map[string][]string `toml:"candidates"`
}

// Load reads and parses the TOML configuration at path and applies
// defaults. It returns [ErrNoCandidates] (wrapped) when the candidate
// table is missing or empty.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.OutPath == "" {
		cfg.OutPath = "."
	}
	if len(cfg.Candidates) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoCandidates)
	}

	return &cfg, nil
}

// UnknownNames returns forbidden-list entries that do not match any
// configured candidate, sorted and deduplicated. Such entries are
// harmless to the draw (they can never match a pick) but usually
// indicate a typo, so callers may want to warn about them.
func (c *Config) UnknownNames() []string {
	var unknown []string
	for _, banned := range c.Candidates {
		for _, name := range banned {
			if _, ok := c.Candidates[name]; !ok && !slices.Contains(unknown, name) {
				unknown = append(unknown, name)
			}
		}
	}
	slices.Sort(unknown)
	return unknown
}
