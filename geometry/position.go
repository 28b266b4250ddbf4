// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geometry/position.go
// Summary: Symbolic popup positions, relative modes and border kinds.

package geometry

import (
	"fmt"
	"strings"
)

// Position is a symbolic placement rule resolved to coordinates at render time.
type Position int

const (
	AtCursor Position = iota
	WinTop
	WinBottom
	EditorCenter
	EditorCenterLeft
	EditorCenterRight
	EditorCenterTop
	EditorCenterBottom
	EditorLeftWide
	EditorRightWide
	EditorTopWide
	EditorBottomWide
	EditorTopLeft
	EditorTopRight
	EditorBotLeft
	EditorBotRight
	Custom
)

var positionNames = [...]string{
	AtCursor:           "at_cursor",
	WinTop:             "win_top",
	WinBottom:          "win_bottom",
	EditorCenter:       "editor_center",
	EditorCenterLeft:   "editor_center_left",
	EditorCenterRight:  "editor_center_right",
	EditorCenterTop:    "editor_center_top",
	EditorCenterBottom: "editor_center_bottom",
	EditorLeftWide:     "editor_left_wide",
	EditorRightWide:    "editor_right_wide",
	EditorTopWide:      "editor_top_wide",
	EditorBottomWide:   "editor_bottom_wide",
	EditorTopLeft:      "editor_top_left",
	EditorTopRight:     "editor_top_right",
	EditorBotLeft:      "editor_bot_left",
	EditorBotRight:     "editor_bot_right",
	Custom:             "custom",
}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// ParsePosition accepts snake_case names, case-insensitively.
func ParsePosition(s string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range positionNames {
		if name == key {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// HorizontalWide reports the full-width top/bottom bars.
func (p Position) HorizontalWide() bool {
	return p == EditorTopWide || p == EditorBottomWide
}

// VerticalWide reports the full-height left/right bars.
func (p Position) VerticalWide() bool {
	return p == EditorLeftWide || p == EditorRightWide
}

// WindowRelative reports positions derived from the anchor window.
func (p Position) WindowRelative() bool {
	return p == WinTop || p == WinBottom
}

// Relative names what a rectangle's row/col are measured from.
type Relative int

const (
	RelativeEditor Relative = iota
	RelativeWin
	RelativeCursor
)

func (r Relative) String() string {
	switch r {
	case RelativeWin:
		return "win"
	case RelativeCursor:
		return "cursor"
	default:
		return "editor"
	}
}

// ParseRelative parses "editor", "win" or "cursor".
func ParseRelative(s string) (Relative, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "editor":
		return RelativeEditor, nil
	case "win", "window":
		return RelativeWin, nil
	case "cursor":
		return RelativeCursor, nil
	}
	return 0, fmt.Errorf("unknown relative mode %q", s)
}

// Border is the frame drawn around a popup.
type Border string

const (
	BorderNone    Border = "none"
	BorderSingle  Border = "single"
	BorderDouble  Border = "double"
	BorderRounded Border = "rounded"
	BorderSolid   Border = "solid"
	BorderShadow  Border = "shadow"
)

// Thickness is the number of rows (and columns) a border consumes.
// Any border other than none takes one cell on each side.
func Thickness(b Border) int {
	if b == "" || b == BorderNone {
		return 0
	}
	return 2
}

// Corner selects which corner of the rectangle row/col refer to.
type Corner string

const (
	CornerNW Corner = "NW"
	CornerNE Corner = "NE"
	CornerSW Corner = "SW"
	CornerSE Corner = "SE"
)
