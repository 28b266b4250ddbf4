// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/loader.go
// Summary: YAML theme override files layered on top of a Chroma style.
// Usage: Load("~/.config/floatpane/theme.yaml") or LoadFile(path).

package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/floatpane/host"
)

type yamlGroup struct {
	Fg string `yaml:"fg"`
	Bg string `yaml:"bg"`
}

type yamlTheme struct {
	Base   string               `yaml:"base"`
	Groups map[string]yamlGroup `yaml:"groups"`
}

// Parse builds a table from YAML. The optional "base" key names the Chroma
// style to start from; "groups" overrides individual highlight groups.
//
//	base: dracula
//	groups:
//	  FloatBorder: {fg: "#bd93f9"}
//	  Normal: {fg: white, bg: "#101010"}
func Parse(data []byte, fallbackBase string) (*Table, error) {
	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}
	base := yt.Base
	if base == "" {
		base = fallbackBase
	}
	t := FromChroma(base)
	if err := t.apply(yt.Groups); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile reads and parses a YAML theme file.
func LoadFile(path, fallbackBase string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return Parse(data, fallbackBase)
}

func (t *Table) apply(groups map[string]yamlGroup) error {
	for name, g := range groups {
		cur, _ := t.Get(name)
		fg, err := parseColor(g.Fg, cur.Fg)
		if err != nil {
			return fmt.Errorf("group %s fg: %w", name, err)
		}
		bg, err := parseColor(g.Bg, cur.Bg)
		if err != nil {
			return fmt.Errorf("group %s bg: %w", name, err)
		}
		t.Set(name, host.Highlight{Fg: fg, Bg: bg})
	}
	return nil
}

// parseColor accepts "#rrggbb", W3C names, "default"/"-" (unset) or empty
// (keep current).
func parseColor(s string, current tcell.Color) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return current, nil
	case "default", "-", "none":
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return current, fmt.Errorf("unknown colour %q", s)
	}
	return c.TrueColor(), nil
}
