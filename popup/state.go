// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/state.go
// Summary: Per-popup state and geometry resolution against the host.

package popup

import (
	"fmt"
	"log"

	"github.com/framegrace/floatpane/config"
	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/internal/colormath"
	"github.com/framegrace/floatpane/queue"
)

// DefaultTheme is the highlight theme used when none is configured.
const DefaultTheme = "Float"

// State is a snapshot of a popup.
type State struct {
	ID        int
	Namespace string
	Position  geometry.Position
	AnchorWin host.Window
	Request   Request
	Resolved  geometry.Rect
	Buffer    host.Buffer
	Window    host.Window
	Blend     int
	Theme     string
}

// Options tune a single popup.
type Options struct {
	// NoQueue makes the queued handle run every operation immediately.
	NoQueue bool

	// OnDispose runs before destruction; returning true vetoes it.
	OnDispose func(p *Popup) bool
}

// Option configures Options.
type Option func(*Options)

// WithNoQueue selects immediate execution for the queued handle.
func WithNoQueue() Option {
	return func(o *Options) { o.NoQueue = true }
}

// WithOnDispose installs a destruction hook.
func WithOnDispose(fn func(p *Popup) bool) Option {
	return func(o *Options) { o.OnDispose = fn }
}

// Popup is one floating overlay owned by a Manager.
type Popup struct {
	m     *Manager
	cfg   config.Config
	opts  Options
	sched *queue.Scheduler

	state      State
	resolved   bool
	reposition bool
	destroyed  bool

	subs []host.Subscription
	drag *dragState
}

// ID returns the registry id.
func (p *Popup) ID() int { return p.state.ID }

// Namespace returns the namespace the popup was created in.
func (p *Popup) Namespace() string { return p.state.Namespace }

// State returns a copy of the current state.
func (p *Popup) State() State {
	s := p.state
	s.Request = MergeOverwrite(Request{}, p.state.Request)
	return s
}

// Visible reports whether the popup's window is open.
func (p *Popup) Visible() bool {
	return p.state.Window != 0 && p.m.host.IsWindowValid(p.state.Window)
}

// Destroyed reports whether Destroy completed.
func (p *Popup) Destroyed() bool { return p.destroyed }

// BlendLevel returns the current transparency.
func (p *Popup) BlendLevel() int { return p.state.Blend }

// Pending reports the number of queued items.
func (p *Popup) Pending() int { return p.sched.Len() }

// Busy reports whether an asynchronous operation holds the queue.
func (p *Popup) Busy() bool { return p.sched.Waiting() }

// Geometry returns the cached rectangle, resolving it when invalidated.
func (p *Popup) Geometry() geometry.Rect {
	if !p.resolved {
		return p.resolve()
	}
	return p.state.Resolved
}

func (p *Popup) invalidate() { p.resolved = false }

func (p *Popup) bodyGroup() string   { return p.state.Theme + "Normal" }
func (p *Popup) borderGroup() string { return p.state.Theme + "Border" }
func (p *Popup) titleGroup() string  { return p.state.Theme + "Title" }

func (p *Popup) fadeBodyGroup() string   { return fmt.Sprintf("Floatpane%dBody", p.state.ID) }
func (p *Popup) fadeBorderGroup() string { return fmt.Sprintf("Floatpane%dBorder", p.state.ID) }

func (p *Popup) winHighlight(body, border string) string {
	return fmt.Sprintf("Normal:%s,FloatBorder:%s,FloatTitle:%s", body, border, p.titleGroup())
}

func (p *Popup) anchor() host.Window {
	h := p.m.host
	if p.state.AnchorWin == 0 || !h.IsWindowValid(p.state.AnchorWin) {
		p.state.AnchorWin = h.CurrentWindow()
	}
	return p.state.AnchorWin
}

// resolve recomputes geometry from the current state and host metrics.
func (p *Popup) resolve() geometry.Rect {
	h := p.m.host
	req := p.state.Request
	info, _ := h.WindowInfo(p.anchor())

	in := geometry.Input{
		Position:     p.state.Position,
		Relative:     deref(req.Relative, geometry.RelativeEditor),
		Border:       deref(req.Border, geometry.BorderNone),
		Lines:        h.BufferLines(p.state.Buffer),
		Metrics:      h.Metrics(),
		Anchor:       info,
		TextWidth:    deref(req.TextWidth, 0),
		NoWidthLimit: deref(req.NoWidthLimit, false),
		Wrap:         deref(req.Wrap, true),
		ShowBreak:    deref(req.ShowBreak, ""),
		Corner:       deref(req.Anchor, geometry.CornerNW),
		Focusable:    deref(req.Focusable, false),
		ZIndex:       deref(req.ZIndex, 50),
		Style:        "minimal",
	}
	if p.state.Position == geometry.Custom {
		in.Row, in.Col = req.Row, req.Col
		in.Width, in.Height = req.Width, req.Height
		if !p.reposition && p.Visible() {
			if live, ok := h.WindowRect(p.state.Window); ok {
				in.Live = &live
			}
		}
	}
	p.reposition = false

	rect := geometry.Resolve(in)
	p.state.Resolved = rect
	p.resolved = true
	return rect
}

func (p *Popup) setBlend(v int) {
	p.state.Blend = colormath.ClampPercent(v)
	if p.Visible() {
		p.m.host.SetWindowOption(p.state.Window, host.OptionBlend, p.state.Blend)
		p.applyColors()
	}
}

// applyColors points winhighlight at groups matching the current blend
// level: the theme groups at 0, the per-popup blended groups above it.
func (p *Popup) applyColors() {
	h, win := p.m.host, p.state.Window
	hl := p.winHighlight(p.bodyGroup(), p.borderGroup())
	if p.state.Blend > 0 && p.recolors() {
		p.paintBlend(p.state.Blend)
		hl = p.winHighlight(p.fadeBodyGroup(), p.fadeBorderGroup())
	}
	if cur, ok := h.WindowOption(win, host.OptionHighlight); !ok || cur != hl {
		h.SetWindowOption(win, host.OptionHighlight, hl)
	}
}

// applyWindowOptions pushes the per-window options derived from state.
func (p *Popup) applyWindowOptions() {
	h, win, req := p.m.host, p.state.Window, p.state.Request
	h.SetWindowOption(win, host.OptionBlend, p.state.Blend)
	p.applyColors()
	h.SetWindowOption(win, host.OptionWrap, deref(req.Wrap, true))
	h.SetWindowOption(win, host.OptionShowBreak, deref(req.ShowBreak, ""))
	h.SetWindowOption(win, host.OptionTextWidth, deref(req.TextWidth, 0))
	if req.Title != nil {
		h.SetWindowOption(win, host.OptionTitle, *req.Title)
	}
}

func (p *Popup) disposeSubs() {
	for _, s := range p.subs {
		s.Dispose()
	}
	p.subs = nil
}

func (p *Popup) report(op string, err error) {
	err = wrapOp(op, err)
	log.Printf("Popup: %d (%s): %v", p.state.ID, p.state.Namespace, err)
	p.m.host.Notify(err.Error(), host.LevelError)
}
