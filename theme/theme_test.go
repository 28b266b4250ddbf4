// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromChromaSeedsGroups(t *testing.T) {
	tbl := FromChroma("monokai")
	if tbl.Name() != "monokai" {
		t.Fatalf("name = %q", tbl.Name())
	}
	for _, g := range []string{"Normal", "FloatNormal", "FloatBorder", "Comment", "Keyword"} {
		if _, ok := tbl.Get(g); !ok {
			t.Errorf("missing group %s", g)
		}
	}
	normal, _ := tbl.Get("Normal")
	if !normal.Bg.Valid() {
		t.Fatalf("monokai should define a background")
	}
}

func TestUnknownStyleFallsBack(t *testing.T) {
	tbl := FromChroma("definitely-not-a-style")
	if tbl.Style() == nil {
		t.Fatalf("expected fallback style")
	}
}

func TestParseOverrides(t *testing.T) {
	data := []byte(`
base: monokai
groups:
  FloatBorder: {fg: "#ff0000"}
  Custom: {fg: white, bg: "#101010"}
  Normal: {bg: default}
`)
	tbl, err := Parse(data, DefaultStyle)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	border, _ := tbl.Get("FloatBorder")
	if border.Fg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("border fg = %v", border.Fg)
	}
	custom, ok := tbl.Get("Custom")
	if !ok || custom.Bg != tcell.NewRGBColor(0x10, 0x10, 0x10) {
		t.Fatalf("custom = %+v", custom)
	}
	normal, _ := tbl.Get("Normal")
	if normal.Bg != tcell.ColorDefault || !normal.Fg.Valid() {
		t.Fatalf("normal = %+v", normal)
	}
}

func TestParseRejectsBadColour(t *testing.T) {
	if _, err := Parse([]byte("groups:\n  X: {fg: notacolour}\n"), DefaultStyle); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("groups:\n  Title: {fg: \"#00ff00\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadFile(path, "monokai")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tbl.Name() != "monokai" {
		t.Fatalf("fallback base not used: %s", tbl.Name())
	}
	title, _ := tbl.Get("Title")
	if title.Fg != tcell.NewRGBColor(0, 255, 0) {
		t.Fatalf("title = %+v", title)
	}
}
