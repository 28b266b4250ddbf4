// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Supports init-time registration of built-in presets.

package registry

import "sync"

// BuiltInProvider returns a preset to register in a catalogue.
type BuiltInProvider func() *Preset

var (
	builtInMu        sync.RWMutex
	builtInProviders []BuiltInProvider
)

// RegisterBuiltInProvider registers an init-time built-in provider.
func RegisterBuiltInProvider(provider BuiltInProvider) {
	if provider == nil {
		return
	}
	builtInMu.Lock()
	builtInProviders = append(builtInProviders, provider)
	builtInMu.Unlock()
}

// RegisterBuiltIns registers all init-time built-ins into the catalogue.
func RegisterBuiltIns(c *Presets) {
	if c == nil {
		return
	}
	builtInMu.RLock()
	providers := append([]BuiltInProvider(nil), builtInProviders...)
	builtInMu.RUnlock()

	for _, provider := range providers {
		p := provider()
		if p == nil {
			continue
		}
		c.RegisterBuiltIn(p)
	}
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func init() {
	RegisterBuiltInProvider(func() *Preset {
		return &Preset{
			Name:        "notification",
			Description: "Transient message in the top right corner",
			Position:    "editor_top_right",
			Border:      "rounded",
			ZIndex:      intp(100),
			Focusable:   boolp(false),
			DurationMs:  3000,
		}
	})
	RegisterBuiltInProvider(func() *Preset {
		return &Preset{
			Name:        "tooltip",
			Description: "Small hint just below the cursor",
			Position:    "at_cursor",
			Border:      "single",
			ZIndex:      intp(60),
			Focusable:   boolp(false),
		}
	})
	RegisterBuiltInProvider(func() *Preset {
		return &Preset{
			Name:        "center",
			Description: "Centered dialog",
			Position:    "editor_center",
			Border:      "rounded",
			Focusable:   boolp(true),
		}
	})
	RegisterBuiltInProvider(func() *Preset {
		return &Preset{
			Name:        "sidebar",
			Description: "Full height panel on the right",
			Position:    "editor_right_wide",
			Border:      "single",
			Focusable:   boolp(true),
		}
	})
}
