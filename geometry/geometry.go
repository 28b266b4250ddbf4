// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geometry/geometry.go
// Summary: Pure layout engine turning symbolic popup positions into rectangles.
// Usage: The popup package calls Resolve each time a popup is shown, redrawn or resized.
// Notes: Resolve never talks to the host; callers gather metrics and anchor info first.

package geometry

import (
	"github.com/mattn/go-runewidth"
)

// minContentLimit is the floor applied to the user's text width cap.
const minContentLimit = 79

// Rect is a resolved popup rectangle. Width/Height are content sizes and
// exclude the border.
type Rect struct {
	Relative  Relative
	Win       int
	Anchor    Corner
	Width     int
	Height    int
	Row       int
	Col       int
	Border    Border
	Focusable bool
	ZIndex    int
	Style     string
}

// OuterWidth includes the border.
func (r Rect) OuterWidth() int { return r.Width + Thickness(r.Border) }

// OuterHeight includes the border.
func (r Rect) OuterHeight() int { return r.Height + Thickness(r.Border) }

// Metrics describes the host screen.
type Metrics struct {
	Rows          int
	Cols          int
	CmdlineHeight int
	TabBar        bool
}

// AvailableRows excludes the command line reservation.
func (m Metrics) AvailableRows() int {
	rows := m.Rows - m.CmdlineHeight
	if rows < 0 {
		return 0
	}
	return rows
}

// TopMargin is the row reserved by a visible tab bar.
func (m Metrics) TopMargin() int {
	if m.TabBar {
		return 1
	}
	return 0
}

// WindowInfo is the on-screen placement of the anchor window.
type WindowInfo struct {
	ID     int
	Row    int
	Col    int
	Width  int
	Height int
}

// Input carries everything Resolve depends on.
type Input struct {
	Position Position
	Relative Relative // Custom only
	Border   Border
	Lines    []string
	Metrics  Metrics
	Anchor   WindowInfo

	// Live is the current on-screen rectangle when the popup is visible.
	Live *Rect

	Row, Col      *int
	Width, Height *int

	TextWidth    int
	NoWidthLimit bool
	Wrap         bool
	ShowBreak    string

	Corner    Corner
	Focusable bool
	ZIndex    int
	Style     string
}

// Resolve computes the rectangle for in. It is a pure function of its input.
func Resolve(in Input) Rect {
	rect := Rect{
		Relative:  RelativeEditor,
		Anchor:    in.Corner,
		Border:    in.Border,
		Focusable: in.Focusable,
		ZIndex:    in.ZIndex,
		Style:     in.Style,
	}
	if rect.Anchor == "" {
		rect.Anchor = CornerNW
	}
	if rect.Border == "" {
		rect.Border = BorderNone
	}

	custom := in.Position == Custom
	if custom && in.Width != nil && in.Height != nil {
		rect.Width, rect.Height = *in.Width, *in.Height
	} else {
		rect.Width = resolveWidth(in)
		if custom && in.Width != nil {
			rect.Width = *in.Width
		}
		rect.Height = resolveHeight(in, rect.Width)
		if custom && in.Height != nil {
			rect.Height = *in.Height
		}
	}

	if custom {
		resolveCustom(in, &rect)
		return rect
	}
	rect.Row, rect.Col = table(in, rect)
	if in.Position == AtCursor {
		rect.Relative = RelativeCursor
		return rect
	}
	rect.Row = max(rect.Row, 0)
	rect.Col = max(rect.Col, 0)
	return rect
}

func resolveWidth(in Input) int {
	b := Thickness(in.Border)
	switch {
	case in.Position.HorizontalWide():
		return max(in.Metrics.Cols-b, 1)
	case in.Position.WindowRelative():
		return max(in.Anchor.Width-b, 1)
	}
	w := 1
	for _, line := range in.Lines {
		w = max(w, DisplayWidth(line))
	}
	if !in.NoWidthLimit {
		w = min(w, max(in.TextWidth, minContentLimit))
	}
	return w
}

func resolveHeight(in Input, width int) int {
	if in.Position.VerticalWide() {
		h := in.Metrics.AvailableRows() - 2*in.Metrics.TopMargin() - Thickness(in.Border)
		return max(h, 1)
	}
	h := len(in.Lines)
	if in.Wrap {
		h += WrappedRows(in.Lines, width, DisplayWidth(in.ShowBreak))
	}
	return max(h, 1)
}

// WrappedRows counts the extra screen rows soft-wrapping adds to lines when
// displayed at width, each continuation row being prefixed by showbreak cells.
func WrappedRows(lines []string, width, showbreak int) int {
	if width <= 0 {
		return 0
	}
	span := width - showbreak
	if span < 1 {
		span = 1
	}
	extra := 0
	for _, line := range lines {
		dw := DisplayWidth(line)
		if dw > width {
			extra += (dw - width + span - 1) / span
		}
	}
	return extra
}

func table(in Input, r Rect) (row, col int) {
	m := in.Metrics
	rows, cols := m.AvailableRows(), m.Cols
	top := m.TopMargin()
	ow, oh := r.OuterWidth(), r.OuterHeight()
	centerRow, centerCol := (rows-oh)/2, (cols-ow)/2

	switch in.Position {
	case AtCursor:
		return 1, 1
	case WinTop:
		return in.Anchor.Row, in.Anchor.Col
	case WinBottom:
		return in.Anchor.Row + in.Anchor.Height - oh, in.Anchor.Col
	case EditorCenter:
		return centerRow, centerCol
	case EditorCenterLeft:
		return centerRow, 0
	case EditorCenterRight:
		return centerRow, cols - ow
	case EditorCenterTop:
		return top, centerCol
	case EditorCenterBottom:
		return rows - oh, centerCol
	case EditorLeftWide, EditorTopWide, EditorTopLeft:
		return top, 0
	case EditorRightWide, EditorTopRight:
		return top, cols - ow
	case EditorBottomWide, EditorBotLeft:
		return rows - oh, 0
	case EditorBotRight:
		return rows - oh, cols - ow
	}
	return 0, 0
}

// resolveCustom prefers the live rectangle when the popup is visible and
// falls back to the last requested row/col.
func resolveCustom(in Input, r *Rect) {
	r.Relative = in.Relative
	if r.Relative == RelativeWin {
		r.Win = in.Anchor.ID
	}
	switch {
	case in.Live != nil:
		r.Row, r.Col = in.Live.Row, in.Live.Col
		r.Relative = RelativeEditor
		r.Win = 0
	default:
		if in.Row != nil {
			r.Row = *in.Row
		}
		if in.Col != nil {
			r.Col = *in.Col
		}
	}
	if r.Relative == RelativeEditor {
		*r = Clamp(*r, in.Metrics)
	}
}

// Clamp keeps an editor-relative rectangle inside the available screen area.
func Clamp(r Rect, m Metrics) Rect {
	maxRow := m.AvailableRows() - r.OuterHeight()
	maxCol := m.Cols - r.OuterWidth()
	r.Row = max(min(r.Row, maxRow), 0)
	r.Col = max(min(r.Col, maxCol), 0)
	return r
}

// DisplayWidth is the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
