// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"reflect"
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func screen(rows, cols int) Metrics {
	return Metrics{Rows: rows, Cols: cols}
}

func TestResolveIsIdempotent(t *testing.T) {
	lines := []string{"hello", "wide ｗｏｒｌｄ", ""}
	anchor := WindowInfo{ID: 3, Row: 2, Col: 4, Width: 60, Height: 20}
	for p := AtCursor; p < Custom; p++ {
		in := Input{
			Position: p,
			Border:   BorderSingle,
			Lines:    lines,
			Metrics:  Metrics{Rows: 40, Cols: 120, CmdlineHeight: 1, TabBar: true},
			Anchor:   anchor,
			Wrap:     true,
		}
		first := Resolve(in)
		second := Resolve(in)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: resolve not idempotent: %+v vs %+v", p, first, second)
		}
	}
}

func TestWideTopScenario(t *testing.T) {
	in := Input{
		Position: EditorTopWide,
		Border:   BorderSingle,
		Lines:    []string{"x"},
		Metrics:  screen(40, 120),
	}
	r := Resolve(in)
	if r.Width != 118 {
		t.Fatalf("width = %d, want 118", r.Width)
	}
	if r.Row != 0 || r.Col != 0 {
		t.Fatalf("top wide should sit at origin, got (%d,%d)", r.Row, r.Col)
	}
}

func TestWideSideHeight(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		border  Border
		want    int
	}{
		{"bordered no tabbar", screen(40, 120), BorderSingle, 38},
		{"bordered with tabbar", Metrics{Rows: 40, Cols: 120, TabBar: true}, BorderSingle, 36},
		{"borderless with cmdline", Metrics{Rows: 40, Cols: 120, CmdlineHeight: 1}, BorderNone, 39},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(Input{Position: EditorLeftWide, Border: tt.border, Lines: []string{"a"}, Metrics: tt.metrics})
			if r.Height != tt.want {
				t.Fatalf("height = %d, want %d", r.Height, tt.want)
			}
		})
	}
}

func TestWrapExpandsHeight(t *testing.T) {
	line := strings.Repeat("a", 45)
	extra := WrappedRows([]string{line}, 20, 2)
	// ceil((45-20)/(20-2)) = ceil(25/18) = 2
	if extra != 2 {
		t.Fatalf("extra rows = %d, want 2", extra)
	}

	in := Input{
		Position:  Custom,
		Lines:     []string{line},
		Metrics:   screen(40, 120),
		Width:     intp(20),
		Wrap:      true,
		ShowBreak: "> ",
	}
	r := Resolve(in)
	if r.Width != 20 || r.Height != 3 {
		t.Fatalf("got %dx%d, want 20x3", r.Width, r.Height)
	}

	in.Wrap = false
	if r := Resolve(in); r.Height != 1 {
		t.Fatalf("wrap disabled height = %d, want 1", r.Height)
	}
}

func TestContentWidthLimit(t *testing.T) {
	long := strings.Repeat("x", 200)
	base := Input{Position: EditorCenter, Lines: []string{long}, Metrics: screen(50, 250)}

	if r := Resolve(base); r.Width != 79 {
		t.Fatalf("default cap = %d, want 79", r.Width)
	}
	base.TextWidth = 100
	if r := Resolve(base); r.Width != 100 {
		t.Fatalf("textwidth cap = %d, want 100", r.Width)
	}
	base.NoWidthLimit = true
	if r := Resolve(base); r.Width != 200 {
		t.Fatalf("no limit = %d, want 200", r.Width)
	}
	empty := Input{Position: EditorCenter, Metrics: screen(50, 250)}
	if r := Resolve(empty); r.Width != 1 || r.Height != 1 {
		t.Fatalf("empty content = %dx%d, want 1x1", r.Width, r.Height)
	}
}

func TestWindowRelativeWidthIgnoresContent(t *testing.T) {
	anchor := WindowInfo{ID: 7, Row: 5, Col: 10, Width: 50, Height: 20}
	top := Resolve(Input{Position: WinTop, Border: BorderRounded, Lines: []string{strings.Repeat("z", 90)}, Metrics: screen(40, 120), Anchor: anchor})
	if top.Width != 48 || top.Row != 5 || top.Col != 10 {
		t.Fatalf("win top = %+v", top)
	}
	bottom := Resolve(Input{Position: WinBottom, Border: BorderRounded, Lines: []string{"a", "b"}, Metrics: screen(40, 120), Anchor: anchor})
	// 5 + 20 - (2+2)
	if bottom.Row != 21 {
		t.Fatalf("win bottom row = %d, want 21", bottom.Row)
	}
}

func TestPositionTable(t *testing.T) {
	m := Metrics{Rows: 30, Cols: 100, CmdlineHeight: 2, TabBar: true}
	lines := []string{"0123456789"} // 10x1, outer 12x3
	tests := []struct {
		pos      Position
		row, col int
	}{
		{EditorCenter, 12, 44},
		{EditorCenterLeft, 12, 0},
		{EditorCenterRight, 12, 88},
		{EditorCenterTop, 1, 44},
		{EditorCenterBottom, 25, 44},
		{EditorTopLeft, 1, 0},
		{EditorTopRight, 1, 88},
		{EditorBotLeft, 25, 0},
		{EditorBotRight, 25, 88},
	}
	for _, tt := range tests {
		r := Resolve(Input{Position: tt.pos, Border: BorderSingle, Lines: lines, Metrics: m})
		if r.Row != tt.row || r.Col != tt.col {
			t.Errorf("%s: got (%d,%d), want (%d,%d)", tt.pos, r.Row, r.Col, tt.row, tt.col)
		}
		if r.Relative != RelativeEditor {
			t.Errorf("%s: relative = %s", tt.pos, r.Relative)
		}
	}
}

func TestAtCursor(t *testing.T) {
	r := Resolve(Input{Position: AtCursor, Lines: []string{"tip"}, Metrics: screen(24, 80)})
	if r.Relative != RelativeCursor || r.Row != 1 || r.Col != 1 {
		t.Fatalf("at cursor = %+v", r)
	}
}

func TestCustomPrecedenceAndClamp(t *testing.T) {
	m := screen(24, 80)
	in := Input{
		Position: Custom,
		Lines:    []string{"abc"},
		Metrics:  m,
		Row:      intp(5),
		Col:      intp(6),
	}
	if r := Resolve(in); r.Row != 5 || r.Col != 6 {
		t.Fatalf("request row/col = (%d,%d)", r.Row, r.Col)
	}

	in.Live = &Rect{Row: 10, Col: 20}
	if r := Resolve(in); r.Row != 10 || r.Col != 20 {
		t.Fatalf("live rect should win, got (%d,%d)", r.Row, r.Col)
	}

	in.Live = nil
	in.Row, in.Col = intp(100), intp(-4)
	r := Resolve(in)
	if r.Row != 23 || r.Col != 0 {
		t.Fatalf("clamped = (%d,%d), want (23,0)", r.Row, r.Col)
	}
}

func TestCustomExplicitSizeShortCircuits(t *testing.T) {
	in := Input{
		Position: Custom,
		Border:   BorderDouble,
		Lines:    []string{strings.Repeat("q", 300), "b", "c"},
		Metrics:  screen(24, 80),
		Width:    intp(12),
		Height:   intp(4),
		Wrap:     true,
	}
	r := Resolve(in)
	if r.Width != 12 || r.Height != 4 {
		t.Fatalf("explicit size = %dx%d", r.Width, r.Height)
	}
}

func TestParsePosition(t *testing.T) {
	for p := AtCursor; p <= Custom; p++ {
		got, err := ParsePosition(strings.ToUpper(p.String()))
		if err != nil || got != p {
			t.Fatalf("round trip %s: got %v err %v", p, got, err)
		}
	}
	if _, err := ParsePosition("middle-earth"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}

func TestClamp(t *testing.T) {
	m := Metrics{Rows: 20, Cols: 40, CmdlineHeight: 1}
	r := Clamp(Rect{Row: 30, Col: 50, Width: 10, Height: 5, Border: BorderSingle}, m)
	if r.Row != 12 || r.Col != 28 {
		t.Fatalf("clamp = (%d,%d), want (12,28)", r.Row, r.Col)
	}
}
