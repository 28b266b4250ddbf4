// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/floatpane/demo.go
// Summary: Key and mouse bindings of the demo.

package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/host/tcellhost"
	"github.com/framegrace/floatpane/popup"
	"github.com/framegrace/floatpane/theme"
)

const demoNamespace = "demo"

var helpLines = []string{
	"# floatpane",
	"",
	"Keys:",
	"  n        notification",
	"  c        centered popup",
	"  t        tooltip at the mouse",
	"  s        sidebar",
	"  arrows   move the focused popup",
	"  m        slide the focused popup right",
	"  f        fade out the focused popup",
	"  b        toggle transparency",
	"  r        recenter",
	"  x        destroy the focused popup",
	"  T        next theme",
	"  q        quit",
	"",
	"Drag a popup with the mouse; drag its bottom-right corner to resize.",
}

var keyActions = map[rune]string{
	'n': "notify",
	'c': "center",
	't': "tooltip",
	's': "sidebar",
	'm': "slide",
	'f': "fade",
	'b': "blend",
	'r': "recenter",
	'x': "destroy",
	'T': "theme",
	'q': "quit",
}

var arrowDirections = map[tcell.Key]popup.Direction{
	tcell.KeyUp:    popup.Up,
	tcell.KeyDown:  popup.Down,
	tcell.KeyLeft:  popup.Left,
	tcell.KeyRight: popup.Right,
}

type demo struct {
	m        *popup.Manager
	h        *tcellhost.Host
	focused  *popup.Popup
	dragging *popup.Popup
	resizing bool
	themes   []string
	themeIdx int
	notes    int
}

func newDemo(m *popup.Manager, h *tcellhost.Host) *demo {
	return &demo{m: m, h: h, themes: theme.Available()}
}

func (d *demo) announce() {
	d.h.Notify("n notify  c center  t tooltip  s sidebar  arrows move  f fade  q quit", host.LevelInfo)
}

func (d *demo) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if dir, ok := arrowDirections[ev.Key()]; ok {
			d.report(d.moveFocused(dir))
			return true
		}
		if ev.Key() == tcell.KeyRune {
			if action, ok := keyActions[ev.Rune()]; ok {
				return d.do(action)
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		d.mouse(y, x, ev.Buttons()&tcell.Button1 != 0)
	}
	return true
}

// do runs a named action; it returns false when the demo should exit.
func (d *demo) do(action string) bool {
	var err error
	switch action {
	case "quit":
		return false
	case "notify":
		err = d.notify()
	case "center":
		err = d.open("center", helpLines)
	case "tooltip":
		err = d.open("tooltip", []string{"tooltip"})
	case "sidebar":
		err = d.open("sidebar", []string{"Sidebar", "", "popups: " + fmt.Sprint(d.m.Count(demoNamespace)+1)})
	case "slide":
		err = d.withFocused(func(p *popup.Popup) error {
			p.Queue().MoveWith(popup.MoveOptions{Direction: popup.Right, Cells: 10, Animated: true})
			return nil
		})
	case "fade":
		err = d.withFocused(func(p *popup.Popup) error {
			p.Queue().Fade(0)
			return nil
		})
	case "blend":
		err = d.withFocused(func(p *popup.Popup) error {
			level := 0
			if p.BlendLevel() == 0 {
				level = 30
			}
			return p.Now().Blend(level)
		})
	case "recenter":
		err = d.withFocused(func(p *popup.Popup) error {
			return p.Now().Configure(popup.Request{Position: popup.Ptr(geometry.EditorCenter)})
		})
	case "destroy":
		err = d.withFocused(func(p *popup.Popup) error {
			d.focused = nil
			return p.Now().Destroy()
		})
	case "theme":
		d.nextTheme()
	}
	d.report(err)
	return true
}

func (d *demo) report(err error) {
	if err != nil {
		log.Printf("Floatpane: %v", err)
		d.h.Notify(err.Error(), host.LevelError)
	}
}

func (d *demo) notify() error {
	d.notes++
	p, err := d.m.New(demoNamespace, []string{fmt.Sprintf(" Saved #%d ", d.notes)}, popup.Request{})
	if err != nil {
		return err
	}
	p.Queue().Notification(0).Destroy()
	return nil
}

func (d *demo) open(preset string, lines []string) error {
	p, err := d.m.FromPreset(demoNamespace, preset, lines)
	if err != nil {
		return err
	}
	if err := p.Now().Show(0); err != nil {
		return err
	}
	d.focused = p
	return nil
}

func (d *demo) withFocused(fn func(p *popup.Popup) error) error {
	if d.focused == nil || d.focused.Destroyed() {
		d.h.Notify("no popup focused", host.LevelWarn)
		return nil
	}
	return fn(d.focused)
}

func (d *demo) moveFocused(dir popup.Direction) error {
	return d.withFocused(func(p *popup.Popup) error {
		return p.Now().Move(dir, 1)
	})
}

func (d *demo) nextTheme() {
	if len(d.themes) == 0 {
		return
	}
	d.themeIdx = (d.themeIdx + 1) % len(d.themes)
	d.h.SetTheme(theme.FromChroma(d.themes[d.themeIdx]))
	d.h.Notify("theme: "+d.themes[d.themeIdx], host.LevelInfo)
}

// popupAt finds the demo popup whose window covers the cell.
func (d *demo) popupAt(row, col int) (*popup.Popup, geometry.Rect) {
	win, ok := d.h.WindowAt(row, col)
	if !ok {
		return nil, geometry.Rect{}
	}
	var found *popup.Popup
	d.m.ForEach(demoNamespace, func(p *popup.Popup) {
		if p.State().Window == win {
			found = p
		}
	})
	r, _ := d.h.WindowRect(win)
	return found, r
}

func (d *demo) mouse(row, col int, pressed bool) {
	if !pressed {
		if d.dragging != nil {
			d.dragging.EndDrag()
			d.dragging = nil
		}
		d.h.SetCursor(row, col)
		return
	}
	if d.dragging != nil {
		if d.resizing {
			d.report(d.dragging.ResizeTo(row, col))
		} else {
			d.report(d.dragging.DragTo(row, col))
		}
		return
	}
	p, r := d.popupAt(row, col)
	if p == nil {
		return
	}
	d.focused = p
	d.resizing = row == r.Row+r.OuterHeight()-1 && col == r.Col+r.OuterWidth()-1
	if d.resizing {
		d.report(p.BeginResize(row, col))
	} else {
		d.report(p.BeginDrag(row, col))
	}
	d.dragging = p
}
