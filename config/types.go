// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed getters over config sections.
// Notes: Values may arrive as JSON numbers, Go literals from defaults, or
//        strings typed by hand; every getter accepts all three.

package config

import (
	"encoding/json"
	"strconv"
	"time"
)

// Section returns the named section or nil if missing. The empty name is
// the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	return asSection(c[name])
}

// RegisterDefaults fills missing keys of a section without touching keys the
// user already set.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	target := c.Section(name)
	if target == nil {
		target = make(Section, len(defaults))
		c[name] = target
	}
	for key, value := range defaults {
		if _, ok := target[key]; !ok {
			target[key] = value
		}
	}
}

func (c Config) lookup(name, key string) (interface{}, bool) {
	section := c.Section(name)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// GetString returns a string value or defaultValue.
func (c Config) GetString(section, key, defaultValue string) string {
	if v, ok := c.lookup(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetFloat returns a numeric value or defaultValue.
func (c Config) GetFloat(section, key string, defaultValue float64) float64 {
	if v, ok := c.lookup(section, key); ok {
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return defaultValue
}

// GetInt returns a numeric value truncated to int, or defaultValue.
func (c Config) GetInt(section, key string, defaultValue int) int {
	v, ok := c.lookup(section, key)
	if !ok {
		return defaultValue
	}
	if s, isStr := v.(string); isStr {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return defaultValue
	}
	if f, ok := toFloat(v); ok {
		return int(f)
	}
	return defaultValue
}

// GetBool accepts booleans, "true"/"false" strings and numbers (non-zero is true).
func (c Config) GetBool(section, key string, defaultValue bool) bool {
	v, ok := c.lookup(section, key)
	if !ok {
		return defaultValue
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
		return defaultValue
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return defaultValue
}

// GetDuration reads an integer millisecond value. Missing or negative values
// fall back to defaultValue.
func (c Config) GetDuration(section, key string, defaultValue time.Duration) time.Duration {
	ms := c.GetInt(section, key, -1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}
