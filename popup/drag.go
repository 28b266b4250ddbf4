// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/drag.go
// Summary: Interactive drag and corner resize driven by pointer events.
// Notes: These bypass the scheduler but pause it for the gesture's duration
//        unless another driver already holds the token.

package popup

import (
	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/queue"
)

type dragState struct {
	resize bool
	offRow int
	offCol int
	win    host.Window
	tok    *queue.Token
}

// Dragging reports whether a drag or resize gesture is active.
func (p *Popup) Dragging() bool { return p.drag != nil }

// BeginDrag starts moving the popup with the pointer at (row, col).
func (p *Popup) BeginDrag(row, col int) error {
	return p.beginGesture(row, col, false)
}

// BeginResize starts resizing from the bottom-right corner.
func (p *Popup) BeginResize(row, col int) error {
	return p.beginGesture(row, col, true)
}

func (p *Popup) beginGesture(row, col int, resize bool) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if !p.Visible() {
		return ErrInvalidWindow
	}
	p.EndDrag()
	p.toCustom(geometry.RelativeEditor)

	live, ok := p.m.host.WindowRect(p.state.Window)
	if !ok {
		return ErrInvalidWindow
	}
	d := &dragState{
		resize: resize,
		offRow: row - live.Row,
		offCol: col - live.Col,
		win:    p.state.Window,
	}
	if !p.sched.Waiting() {
		d.tok = p.sched.Acquire()
	}
	p.drag = d
	return nil
}

// DragTo moves the popup so the grab point follows the pointer.
func (p *Popup) DragTo(row, col int) error {
	d, live, err := p.gesture(false)
	if err != nil || d == nil {
		return err
	}
	live.Row = row - d.offRow
	live.Col = col - d.offCol
	return p.place(geometry.Clamp(live, p.m.host.Metrics()))
}

// ResizeTo puts the bottom-right outer corner under the pointer. Border
// cells are subtracted so the content size shrinks by the frame.
func (p *Popup) ResizeTo(row, col int) error {
	d, live, err := p.gesture(true)
	if err != nil || d == nil {
		return err
	}
	m := p.m.host.Metrics()
	b := geometry.Thickness(live.Border)

	width := col - live.Col + 1 - b
	height := row - live.Row + 1 - b
	width = max(min(width, m.Cols-live.Col-b), 1)
	height = max(min(height, m.AvailableRows()-live.Row-b), 1)

	live.Width, live.Height = width, height
	req := p.state.Request
	req.Width = Ptr(width)
	req.Height = Ptr(height)
	p.state.Request = req
	return p.place(live)
}

func (p *Popup) gesture(resize bool) (*dragState, geometry.Rect, error) {
	d := p.drag
	if d == nil || d.resize != resize {
		return nil, geometry.Rect{}, nil
	}
	if !p.Visible() || p.state.Window != d.win {
		p.EndDrag()
		return nil, geometry.Rect{}, ErrInvalidWindow
	}
	live, ok := p.m.host.WindowRect(d.win)
	if !ok {
		p.EndDrag()
		return nil, geometry.Rect{}, ErrInvalidWindow
	}
	return d, live, nil
}

// EndDrag finishes any gesture and resumes the queue.
func (p *Popup) EndDrag() {
	d := p.drag
	if d == nil {
		return
	}
	p.drag = nil
	if d.tok != nil {
		d.tok.Release()
	}
}

// EndResize is EndDrag for resize gestures.
func (p *Popup) EndResize() { p.EndDrag() }
