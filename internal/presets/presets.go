// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

// Package presets provides the quick-start comparison scenarios.
package presets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed presets.toml
var builtin []byte

// Preset is a named (source, target, scenario) triple.
type Preset struct {
	ID       string `toml:"id" json:"id"`
	Title    string `toml:"title" json:"title"`
	Source   string `toml:"source" json:"source"`
	Target   string `toml:"target" json:"target"`
	Scenario string `toml:"scenario" json:"scenario"`
}

type file struct {
	Presets []Preset `toml:"preset"`
}

// Catalog is an ordered, immutable list of presets.
type Catalog struct {
	presets []Preset
}

// Parse decodes a TOML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	if err := validate(f.Presets); err != nil {
		return nil, err
	}
	return &Catalog{presets: f.Presets}, nil
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-configured path
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	return Parse(data)
}

func validate(ps []Preset) error {
	if len(ps) == 0 {
		return errors.New("presets: catalog is empty")
	}
	var errs []string
	seen := make(map[string]bool, len(ps))
	for i, p := range ps {
		id := strings.TrimSpace(p.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Sprintf("preset %d: id is required", i+1))
		case seen[id]:
			errs = append(errs, fmt.Sprintf("preset %q: duplicate id", id))
		}
		seen[id] = true
		if strings.TrimSpace(p.Source) == "" || strings.TrimSpace(p.Target) == "" || strings.TrimSpace(p.Scenario) == "" {
			errs = append(errs, fmt.Sprintf("preset %q: source, target and scenario are required", id))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("presets validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// All returns the presets in file order.
func (c *Catalog) All() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Get looks a preset up by id.
func (c *Catalog) Get(id string) (Preset, bool) {
	for _, p := range c.presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// IDs returns the preset ids in order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.presets))
	for i, p := range c.presets {
		ids[i] = p.ID
	}
	return ids
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// All returns the built-in presets.
func All() []Preset {
	return Default().All()
}

// Get looks a built-in preset up by id.
func Get(id string) (Preset, bool) {
	return Default().Get(id)
}
