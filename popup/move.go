// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/move.go
// Summary: Move driver shifting a popup by whole cells, optionally animated.

package popup

import (
	"fmt"
	"strings"
	"time"

	"github.com/framegrace/floatpane/geometry"
)

// Direction is a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts up, down, left and right.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) delta() (rows, cols int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// MoveOptions describes a move. Zero fields take the configured defaults.
// A negative Cells moves the opposite way.
type MoveOptions struct {
	Direction    Direction
	Cells        int
	CellsPerStep int
	Interval     time.Duration
	Animated     bool
}

func (p *Popup) moveDefaults(o MoveOptions) MoveOptions {
	if o.Cells == 0 {
		o.Cells = p.cfg.GetInt("move", "cells", 1)
	}
	if o.Cells < 0 {
		o.Cells = -o.Cells
		o.Direction = o.Direction.Opposite()
	}
	if o.CellsPerStep <= 0 {
		o.CellsPerStep = p.cfg.GetInt("move", "cells_per_step", 1)
	}
	if o.CellsPerStep <= 0 {
		o.CellsPerStep = 1
	}
	if o.Interval <= 0 {
		o.Interval = p.cfg.GetDuration("move", "interval_ms", 20*time.Millisecond)
	}
	return o
}

func (p *Popup) move(o MoveOptions) error {
	if !p.Visible() {
		return ErrInvalidWindow
	}
	o = p.moveDefaults(o)
	p.toCustom(geometry.RelativeEditor)
	if !o.Animated {
		return p.shift(o.Direction, o.Cells)
	}

	h := p.m.host
	tok := p.sched.Acquire()
	win := p.state.Window
	moved := 0
	var tick func()
	tick = func() {
		if !tok.Valid() {
			return
		}
		if p.destroyed || p.state.Window != win || !p.Visible() {
			p.hide()
			tok.Release()
			return
		}
		n := min(o.CellsPerStep, o.Cells-moved)
		if err := p.shift(o.Direction, n); err != nil {
			p.report(opMove, err)
			p.hide()
			tok.Release()
			return
		}
		moved += n
		if moved >= o.Cells {
			tok.Release()
			return
		}
		h.Defer(tick, o.Interval)
	}
	h.Defer(tick, o.Interval)
	return nil
}

// shift moves the live rectangle n cells, clamped to the usable screen.
func (p *Popup) shift(dir Direction, n int) error {
	h := p.m.host
	live, ok := h.WindowRect(p.state.Window)
	if !ok {
		return ErrInvalidWindow
	}
	dr, dc := dir.delta()
	live.Row += dr * n
	live.Col += dc * n
	return p.place(geometry.Clamp(live, h.Metrics()))
}

// place commits an editor-relative custom rectangle to state and host.
func (p *Popup) place(rect geometry.Rect) error {
	req := p.state.Request
	req.Relative = Ptr(geometry.RelativeEditor)
	req.Row = Ptr(rect.Row)
	req.Col = Ptr(rect.Col)
	p.state.Request = req
	p.state.Position = geometry.Custom
	p.state.Resolved = rect
	p.resolved = true
	return p.m.host.ReconfigureWindow(p.state.Window, rect)
}
