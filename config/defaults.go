// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values backing every config section the popup core reads.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("popup", Section{
		"position":       "editor_center",
		"border":         "rounded",
		"theme":          "Float",
		"zindex":         50,
		"text_width":     0,
		"no_width_limit": false,
		"wrap":           true,
		"showbreak":      "",
		"focusable":      false,
		"enter":          false,
	})
	cfg.RegisterDefaults("fade", Section{
		"duration_ms": 1000,
		"step_ms":     10,
	})
	cfg.RegisterDefaults("move", Section{
		"cells":          1,
		"cells_per_step": 1,
		"interval_ms":    20,
	})
	cfg.RegisterDefaults("notification", Section{
		"duration_ms": 3000,
		"position":    "editor_top_right",
		"fade_ms":     400,
	})
	cfg.RegisterDefaults("theme", Section{
		"style": "catppuccin-mocha",
		"file":  "",
	})
	cfg.RegisterDefaults("screen", Section{
		"cmdline_height": 1,
		"tab_bar":        false,
	})
}
