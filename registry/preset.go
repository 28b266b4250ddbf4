// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/preset.go
// Summary: Popup presets: named, reusable geometry and style requests.
// Usage: Built-ins are registered in code; users drop *.json files into
//        ~/.config/floatpane/presets/ and the manager scans them at startup.

package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/framegrace/floatpane/geometry"
)

// Preset describes a popup's placement and look.
type Preset struct {
	// Name is the unique identifier (e.g. "tooltip").
	Name string `json:"name"`

	Description string `json:"description,omitempty"`

	// Position is a snake_case geometry position (e.g. "editor_top_right").
	Position string `json:"position"`

	// Relative applies to the custom position only: editor, win or cursor.
	Relative string `json:"relative,omitempty"`

	Border string `json:"border,omitempty"`
	Theme  string `json:"theme,omitempty"`
	Title  string `json:"title,omitempty"`

	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
	Row    *int `json:"row,omitempty"`
	Col    *int `json:"col,omitempty"`
	ZIndex *int `json:"zindex,omitempty"`
	Blend  *int `json:"blend,omitempty"`

	Focusable    *bool `json:"focusable,omitempty"`
	NoWidthLimit *bool `json:"no_width_limit,omitempty"`

	// DurationMs is how long timed operations (notification) keep the popup up.
	DurationMs int `json:"duration_ms,omitempty"`

	Tags []string `json:"tags,omitempty"`
}

var validBorders = map[geometry.Border]bool{
	geometry.BorderNone:    true,
	geometry.BorderSingle:  true,
	geometry.BorderDouble:  true,
	geometry.BorderRounded: true,
	geometry.BorderSolid:   true,
	geometry.BorderShadow:  true,
}

// LoadPreset reads and validates a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate preset: %w", err)
	}
	return &p, nil
}

// Validate checks that the preset is well-formed.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.Position == "" {
		return fmt.Errorf("preset %q must specify 'position'", p.Name)
	}
	pos, err := geometry.ParsePosition(p.Position)
	if err != nil {
		return err
	}
	if p.Relative != "" {
		if pos != geometry.Custom {
			return fmt.Errorf("'relative' only applies to the custom position")
		}
		if _, err := geometry.ParseRelative(p.Relative); err != nil {
			return err
		}
	}
	if p.Border != "" && !validBorders[geometry.Border(p.Border)] {
		return fmt.Errorf("unknown border %q", p.Border)
	}
	if p.Blend != nil && (*p.Blend < 0 || *p.Blend > 100) {
		return fmt.Errorf("blend %d out of range 0-100", *p.Blend)
	}
	for _, v := range []*int{p.Width, p.Height} {
		if v != nil && *v < 1 {
			return fmt.Errorf("width and height must be positive")
		}
	}
	if p.DurationMs < 0 {
		return fmt.Errorf("duration_ms cannot be negative")
	}
	return nil
}

// Presets is the catalogue of built-in and user presets.
type Presets struct {
	mu       sync.RWMutex
	builtIn  map[string]*Preset
	external map[string]*Preset
}

// NewPresets creates an empty catalogue.
func NewPresets() *Presets {
	return &Presets{
		builtIn:  make(map[string]*Preset),
		external: make(map[string]*Preset),
	}
}

// RegisterBuiltIn adds a preset compiled into the binary. Built-ins win over
// user presets with the same name.
func (c *Presets) RegisterBuiltIn(p *Preset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builtIn[p.Name] = p
	log.Printf("Registry: Registered built-in preset '%s'", p.Name)
}

// Scan loads every *.json preset in dir, replacing previously scanned ones.
func (c *Presets) Scan(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.external = make(map[string]*Preset)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("Registry: Preset directory does not exist: %s", dir)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read preset directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		p, err := LoadPreset(path)
		if err != nil {
			log.Printf("Registry: Failed to load preset from %s: %v", path, err)
			continue
		}
		c.external[p.Name] = p
	}

	log.Printf("Registry: Loaded %d user presets, %d built-in presets", len(c.external), len(c.builtIn))
	return nil
}

// Get returns the preset called name, or nil.
func (c *Presets) Get(name string) *Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.builtIn[name]; ok {
		return p
	}
	return c.external[name]
}

// List returns every preset sorted by name.
func (c *Presets) List() []*Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []*Preset
	for name, p := range c.builtIn {
		seen[name] = true
		out = append(out, p)
	}
	for name, p := range c.external {
		if !seen[name] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of distinct presets.
func (c *Presets) Count() int {
	return len(c.List())
}
