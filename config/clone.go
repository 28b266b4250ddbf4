// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone and overlay helpers for config maps.

package config

// Clone returns a copy of the config with every section copied.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name, raw := range cfg {
		if section := asSection(raw); section != nil {
			clone[name] = copySection(section)
			continue
		}
		clone[name] = raw
	}
	return clone
}

// Overlay returns base with every key of over written on top, section by
// section. Neither input is modified.
func Overlay(base, over Config) Config {
	out := Clone(base)
	if out == nil {
		out = make(Config)
	}
	for name, raw := range over {
		src := asSection(raw)
		if src == nil {
			out[name] = raw
			continue
		}
		dst := asSection(out[name])
		if dst == nil {
			out[name] = copySection(src)
			continue
		}
		for k, v := range src {
			dst[k] = v
		}
	}
	return out
}

func asSection(raw interface{}) Section {
	switch v := raw.(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

func copySection(s Section) Section {
	out := make(Section, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
