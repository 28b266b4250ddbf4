// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/ops.go
// Summary: Synchronous popup operations dispatched by the scheduler.
// Notes: Every operation runs on the host's event loop. Asynchronous ones
//        (fade, animated move) hold the scheduler token until they finish.

package popup

import (
	"fmt"
	"log"

	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/queue"
)

const (
	opShow      = "show"
	opHide      = "hide"
	opRedraw    = "redraw"
	opResize    = "resize"
	opConfigure = "configure"
	opSetLines  = "set_lines"
	opBlend     = "blend"
	opFade      = "fade"
	opMove      = "move"
	opCustom    = "custom"
	opDestroy   = "destroy"
)

func (p *Popup) invoke(name string, args any) error {
	if p.destroyed {
		return wrapOp(name, ErrDestroyed)
	}
	var err error
	switch name {
	case opShow:
		err = p.show()
	case opHide:
		err = p.hide()
	case opRedraw:
		err = p.redraw()
	case opResize:
		err = p.resize()
	case opConfigure:
		req, _ := args.(Request)
		err = p.configure(req)
	case opSetLines:
		lines, _ := args.([]string)
		err = p.setLines(lines)
	case opBlend:
		v, _ := args.(int)
		p.setBlend(v)
	case opFade:
		a, _ := args.(fadeArgs)
		err = p.fade(a)
	case opMove:
		o, _ := args.(MoveOptions)
		err = p.move(o)
	case opCustom:
		rel, _ := args.(geometry.Relative)
		err = p.custom(rel)
	case opDestroy:
		err = p.destroy()
	default:
		err = fmt.Errorf("unknown operation %q", name)
	}
	return wrapOp(name, err)
}

func (p *Popup) reportItem(item queue.Item, err error) {
	p.report(item.Name, err)
}

func (p *Popup) show() error {
	h := p.m.host
	if !h.IsBufferValid(p.state.Buffer) {
		return ErrInvalidContent
	}
	rect := p.resolve()
	if p.Visible() {
		return h.ReconfigureWindow(p.state.Window, rect)
	}
	win, err := h.OpenWindow(p.state.Buffer, deref(p.state.Request.Enter, false), rect)
	if err != nil {
		return err
	}
	p.state.Window = win
	p.applyWindowOptions()
	p.watch(win)
	return nil
}

func (p *Popup) hide() error {
	win := p.state.Window
	if win == 0 {
		return nil
	}
	p.state.Window = 0
	p.disposeSubs()
	p.m.host.CloseWindow(win)
	p.EndDrag()
	return nil
}

func (p *Popup) redraw() error {
	p.invalidate()
	if !p.Visible() {
		return nil
	}
	if err := p.m.host.ReconfigureWindow(p.state.Window, p.resolve()); err != nil {
		return err
	}
	p.applyWindowOptions()
	return nil
}

func (p *Popup) resize() error {
	p.invalidate()
	if !p.Visible() {
		return nil
	}
	return p.m.host.ReconfigureWindow(p.state.Window, p.resolve())
}

func (p *Popup) configure(req Request) error {
	p.state.Request = MergeOverwrite(p.state.Request, req)
	if req.Position != nil {
		p.state.Position = *req.Position
	}
	if req.AnchorWin != nil {
		p.state.AnchorWin = *req.AnchorWin
	}
	if req.Theme != nil {
		p.state.Theme = *req.Theme
		if p.state.Theme == "" {
			p.state.Theme = DefaultTheme
		}
	}
	if req.Row != nil || req.Col != nil {
		p.reposition = true
	}
	if req.Blend != nil {
		p.setBlend(*req.Blend)
	}
	return p.redraw()
}

func (p *Popup) setLines(lines []string) error {
	h := p.m.host
	if !h.IsBufferValid(p.state.Buffer) {
		return ErrInvalidContent
	}
	h.SetBufferLines(p.state.Buffer, lines)
	return p.resize()
}

// toCustom rebases the popup onto the custom position using its current
// placement. Sizes that only made sense for the old position are pinned.
func (p *Popup) toCustom(rel geometry.Relative) {
	h := p.m.host
	prev := p.state.Position
	base := p.Geometry()
	if p.Visible() {
		if live, ok := h.WindowRect(p.state.Window); ok {
			base = live
		}
	}

	row, col := base.Row, base.Col
	switch rel {
	case geometry.RelativeWin:
		if info, ok := h.WindowInfo(p.anchor()); ok {
			row -= info.Row
			col -= info.Col
		}
	case geometry.RelativeCursor:
		row, col = 1, 1
	}

	req := p.state.Request
	req.Relative = Ptr(rel)
	req.Row = Ptr(row)
	req.Col = Ptr(col)
	if prev.HorizontalWide() || prev.VerticalWide() || prev.WindowRelative() {
		req.Width = Ptr(base.Width)
		req.Height = Ptr(base.Height)
	}
	p.state.Request = req
	p.state.Position = geometry.Custom
	p.reposition = true
	p.invalidate()
}

func (p *Popup) custom(rel geometry.Relative) error {
	p.toCustom(rel)
	return p.resize()
}

func (p *Popup) destroy() error {
	if p.destroyed {
		return nil
	}
	if p.opts.OnDispose != nil && p.opts.OnDispose(p) {
		log.Printf("Popup: Destroy of %d vetoed by dispose hook", p.state.ID)
		return nil
	}
	p.sched.Clear()
	p.hide()
	p.m.host.DeleteBuffer(p.state.Buffer)
	p.m.popups.Unregister(p.state.Namespace, p.state.ID)
	p.destroyed = true
	log.Printf("Popup: Destroyed %d (%s)", p.state.ID, p.state.Namespace)
	return nil
}
