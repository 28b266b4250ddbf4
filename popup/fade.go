// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/fade.go
// Summary: Timer-stepped fade driver raising a popup's blend level.
// Notes: The driver holds the scheduler token for its whole run. Each tick
//        re-checks the token and the window, so ticks that fire after a
//        clear or destroy do nothing.

package popup

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/internal/blend"
	"github.com/framegrace/floatpane/internal/colormath"
	"github.com/framegrace/floatpane/queue"
)

const defaultFadeStep = 10 * time.Millisecond

type fadeArgs struct {
	Duration time.Duration
	Target   int
	AutoHide bool
}

type fader struct {
	p   *Popup
	tok *queue.Token
	win host.Window

	start     int
	target    int
	committed int
	steps     int
	i         int
	delta     float64
	step      time.Duration
	recolor   bool
	autoHide  bool
}

func (p *Popup) fade(a fadeArgs) error {
	h := p.m.host
	target := colormath.ClampPercent(a.Target)
	if !h.TrueColor() || !p.Visible() || target <= p.state.Blend {
		if a.AutoHide {
			return p.hide()
		}
		return nil
	}

	d := a.Duration
	if d <= 0 {
		d = p.cfg.GetDuration("fade", "duration_ms", time.Second)
	}
	step := p.cfg.GetDuration("fade", "step_ms", defaultFadeStep)
	if step <= 0 {
		step = defaultFadeStep
	}
	steps := int(d / step)
	if steps < 1 {
		steps = 1
	}

	f := &fader{
		p:         p,
		tok:       p.sched.Acquire(),
		win:       p.state.Window,
		start:     p.state.Blend,
		target:    target,
		committed: p.state.Blend,
		steps:     steps,
		step:      step,
		autoHide:  a.AutoHide,
	}
	f.delta = float64(target-f.start) / float64(steps)
	f.recolor = p.recolors()
	if f.recolor {
		p.paintBlend(f.start)
		h.SetWindowOption(f.win, host.OptionHighlight, p.winHighlight(p.fadeBodyGroup(), p.fadeBorderGroup()))
	}
	h.Defer(f.tick, step)
	return nil
}

func (f *fader) tick() {
	p := f.p
	if !f.tok.Valid() {
		return
	}
	if p.destroyed || p.state.Window != f.win || !p.Visible() {
		f.tok.Release()
		return
	}

	f.i++
	level := f.target
	if f.i < f.steps {
		level = f.start + int(math.Floor(f.delta*float64(f.i)))
	}
	if level > f.committed {
		f.commit(level)
	}
	if f.i < f.steps {
		p.m.host.Defer(f.tick, f.step)
		return
	}

	if f.target == 100 || f.autoHide {
		p.hide()
		p.state.Blend = f.start
	}
	f.tok.Release()
}

func (f *fader) commit(level int) {
	p := f.p
	f.committed = level
	p.state.Blend = level
	p.m.host.SetWindowOption(f.win, host.OptionBlend, level)
	if f.recolor {
		p.paintBlend(level)
	}
}

// recolors reports whether blending must also recolour the popup's groups.
func (p *Popup) recolors() bool {
	return p.m.host.TrueColor() && (p.m.cache.Differs(p.bodyGroup()) || p.m.cache.Differs(p.borderGroup()))
}

// paintBlend defines the per-popup body and border groups blended toward
// Normal at level.
func (p *Popup) paintBlend(level int) {
	c, h := p.m.cache, p.m.host
	h.DefineHighlight(p.fadeBodyGroup(), host.Highlight{
		Fg: hexColor(c.BlendToward(level, p.bodyGroup(), blend.NormalGroup, true)),
		Bg: hexColor(c.BlendToward(level, p.bodyGroup(), blend.NormalGroup, false)),
	})
	h.DefineHighlight(p.fadeBorderGroup(), host.Highlight{
		Fg: hexColor(c.BlendToward(level, p.borderGroup(), blend.NormalGroup, true)),
		Bg: hexColor(c.BlendToward(level, p.borderGroup(), blend.NormalGroup, false)),
	})
}

func hexColor(s string) tcell.Color {
	rgb, err := colormath.ParseHex(s)
	if err != nil {
		return tcell.ColorDefault
	}
	return rgb.Color()
}
