// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/config"
	"github.com/framegrace/floatpane/host/tcellhost"
	"github.com/framegrace/floatpane/popup"
)

func newTestDemo(t *testing.T) *demo {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	s.SetSize(80, 24)
	h := tcellhost.New(s, tcellhost.Options{ForceTrueColor: true})
	t.Cleanup(h.Stop)
	m := popup.NewManager(h, config.Defaults())
	t.Cleanup(m.Close)
	return newDemo(m, h)
}

func TestDemoActions(t *testing.T) {
	d := newTestDemo(t)
	if !d.do("center") {
		t.Fatalf("center should not quit")
	}
	if d.focused == nil || !d.focused.Visible() {
		t.Fatalf("center popup not shown")
	}
	d.do("blend")
	if got := d.focused.BlendLevel(); got != 30 {
		t.Fatalf("blend = %d, want 30", got)
	}
	d.do("blend")
	if got := d.focused.BlendLevel(); got != 0 {
		t.Fatalf("blend = %d, want 0", got)
	}

	p := d.focused
	d.do("destroy")
	if !p.Destroyed() || d.focused != nil {
		t.Fatalf("destroy did not clear the focused popup")
	}
	d.do("fade")
	if d.h.Message() != "no popup focused" {
		t.Fatalf("message = %q", d.h.Message())
	}
	if d.do("quit") {
		t.Fatalf("quit should stop the loop")
	}
}

func TestDemoNotificationQueues(t *testing.T) {
	d := newTestDemo(t)
	d.do("notify")
	if got := d.m.Count(demoNamespace); got != 1 {
		t.Fatalf("count = %d", got)
	}
	var p *popup.Popup
	d.m.ForEach(demoNamespace, func(q *popup.Popup) { p = q })
	if !p.Visible() || !p.Busy() {
		t.Fatalf("notification should be visible and waiting")
	}
}

func TestDemoMouseDrag(t *testing.T) {
	d := newTestDemo(t)
	d.do("center")
	win := d.focused.State().Window
	start, _ := d.h.WindowRect(win)

	d.mouse(start.Row, start.Col+2, true)
	if d.dragging == nil || d.resizing {
		t.Fatalf("expected a drag gesture")
	}
	d.mouse(start.Row+1, start.Col+2, true)
	d.mouse(start.Row+1, start.Col+2, false)
	if d.dragging != nil || d.focused.Dragging() {
		t.Fatalf("drag not finished")
	}
	got, _ := d.h.WindowRect(win)
	if got.Row != start.Row+1 || got.Col != start.Col {
		t.Fatalf("rect after drag = %d,%d, want %d,%d", got.Row, got.Col, start.Row+1, start.Col)
	}
}

func TestDemoMouseResizeFromCorner(t *testing.T) {
	d := newTestDemo(t)
	d.do("center")
	win := d.focused.State().Window
	r, _ := d.h.WindowRect(win)
	row, col := r.Row+r.OuterHeight()-1, r.Col+r.OuterWidth()-1

	d.mouse(row, col, true)
	if !d.resizing {
		t.Fatalf("corner press should resize")
	}
	d.mouse(row, col-4, true)
	d.mouse(row, col-4, false)
	got, _ := d.h.WindowRect(win)
	if got.Width != r.Width-4 {
		t.Fatalf("width = %d, want %d", got.Width, r.Width-4)
	}
}

func TestLoadBase(t *testing.T) {
	name, lines, err := loadBase("")
	if err != nil || name != "help.md" || !reflect.DeepEqual(lines, helpLines) {
		t.Fatalf("default base = %q %d lines %v", name, len(lines), err)
	}

	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n\tfunc x() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	name, lines, err = loadBase(path)
	if err != nil {
		t.Fatalf("loadBase: %v", err)
	}
	want := []string{"package main", "    func x() {}"}
	if name != "main.go" || !reflect.DeepEqual(lines, want) {
		t.Fatalf("loadBase = %q %q", name, lines)
	}

	if _, _, err := loadBase(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadThemeFallsBack(t *testing.T) {
	cfg := config.Defaults()
	cfg.Section("theme")["file"] = "/nonexistent/theme.yaml"
	if got := loadTheme(cfg, "monokai").Name(); got != "monokai" {
		t.Fatalf("theme = %q", got)
	}
	if got := loadTheme(config.Defaults(), "").Name(); got == "" {
		t.Fatalf("empty theme name")
	}
}
