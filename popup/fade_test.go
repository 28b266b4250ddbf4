// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package popup

import (
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/host/hosttest"
)

func blendValues(h *hosttest.Host, win host.Window) []int {
	var out []int
	for _, v := range h.OptionValues(win, host.OptionBlend) {
		out = append(out, v.(int))
	}
	return out
}

func TestFadeIsMonotonicAndEndsAtTarget(t *testing.T) {
	m, h := newTestManager(t)
	p := newShown(t, m, h)
	win := p.State().Window

	p.Queue().Fade(time.Second)
	if !p.Busy() {
		t.Fatalf("fade should hold the queue")
	}
	h.RunUntilIdle(2 * time.Second)

	values := blendValues(h, win)
	if len(values) < 2 {
		t.Fatalf("expected committed blend values, got %v", values)
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("blend decreased at %d: %v", i, values)
		}
	}
	if last := values[len(values)-1]; last != 100 {
		t.Fatalf("fade should end at 100, ended at %d", last)
	}
	// one value from show plus at most one per integer step
	if len(values) > 101 {
		t.Fatalf("too many commits: %d", len(values))
	}
	if p.Visible() || p.Busy() {
		t.Fatalf("a full fade should hide the popup and release the queue")
	}
}

func TestFadeToPartialTarget(t *testing.T) {
	m, h := newTestManager(t)
	p := newShown(t, m, h)

	p.Queue().FadeTo(100*time.Millisecond, 60)
	h.Advance(50 * time.Millisecond)
	if got := p.BlendLevel(); got != 30 {
		t.Fatalf("expected halfway blend 30, got %d", got)
	}
	h.RunUntilIdle(time.Second)
	if !p.Visible() || p.BlendLevel() != 60 {
		t.Fatalf("partial fade should stay visible at 60, visible=%v blend=%d", p.Visible(), p.BlendLevel())
	}
}

func TestFadeNoops(t *testing.T) {
	tests := []struct {
		name  string
		hide  bool
		blend int
		noTC  bool
	}{
		{name: "no true colour", noTC: true},
		{name: "hidden", hide: true},
		{name: "target below current", blend: 70},
	}
	for _, tt := range tests {
		m, h := newTestManager(t)
		h.NoTrueColor = tt.noTC
		p := newShown(t, m, h)
		if tt.blend > 0 {
			p.Now().Blend(tt.blend)
		}
		if tt.hide {
			p.Now().Hide(0)
		}
		before := len(h.Options)

		p.Queue().FadeTo(100*time.Millisecond, 50)
		if p.Busy() {
			t.Fatalf("%s: fade should not start", tt.name)
		}
		h.RunUntilIdle(time.Second)
		if len(h.Options) != before {
			t.Fatalf("%s: fade touched window options", tt.name)
		}
	}
}

func TestFadeRecolorsThemedGroups(t *testing.T) {
	m, h := newTestManager(t)
	h.DefineHighlight("FloatNormal", host.Highlight{
		Fg: tcell.NewRGBColor(0xff, 0x00, 0x00),
		Bg: tcell.NewRGBColor(0x00, 0x00, 0xff),
	})
	p := newShown(t, m, h)
	win := p.State().Window

	p.Queue().FadeTo(100*time.Millisecond, 50)
	body := fmt.Sprintf("Floatpane%dBody", p.ID())
	border := fmt.Sprintf("Floatpane%dBorder", p.ID())
	want := fmt.Sprintf("Normal:%s,FloatBorder:%s,FloatTitle:FloatTitle", body, border)
	if v, _ := h.WindowOption(win, host.OptionHighlight); v != want {
		t.Fatalf("unexpected winhighlight during fade: %v", v)
	}

	h.RunUntilIdle(time.Second)
	got := h.ResolveHighlight(body)
	wantBg := hexColor(m.Cache().BlendToward(50, "FloatNormal", "Normal", false))
	wantFg := hexColor(m.Cache().BlendToward(50, "FloatNormal", "Normal", true))
	if got.Bg != wantBg || got.Fg != wantFg {
		t.Fatalf("body group not blended: %+v", got)
	}
}

func TestFadeSkipsRecolorForPlainTheme(t *testing.T) {
	m, h := newTestManager(t)
	p := newShown(t, m, h)

	p.Queue().FadeTo(50*time.Millisecond, 40)
	h.RunUntilIdle(time.Second)
	if hl := h.ResolveHighlight(fmt.Sprintf("Floatpane%dBody", p.ID())); hl != (host.Highlight{}) {
		t.Fatalf("groups matching Normal should not be redefined: %+v", hl)
	}
}

func TestDestroyNowDuringFade(t *testing.T) {
	m, h := newTestManager(t)
	p := newShown(t, m, h)

	p.Queue().Fade(time.Second).Blend(0)
	h.Advance(30 * time.Millisecond)
	if got := p.BlendLevel(); got != 3 {
		t.Fatalf("expected three committed steps, blend=%d", got)
	}
	if h.Pending() == 0 {
		t.Fatalf("expected pending fade ticks")
	}

	if err := p.Now().Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	before := len(h.Options)
	h.RunUntilIdle(2 * time.Second)
	if len(h.Options) != before {
		t.Fatalf("ticks after destroy must not touch the window")
	}
	if h.Pending() != 0 {
		t.Fatalf("fade should stop rescheduling after destroy")
	}
}

func TestOperationsAfterFadeRunInOrder(t *testing.T) {
	m, h := newTestManager(t)
	p := newShown(t, m, h)

	p.Queue().Fade(100 * time.Millisecond).Show(0)
	if !p.Busy() {
		t.Fatalf("show must wait for the fade")
	}
	h.RunUntilIdle(time.Second)
	if !p.Visible() || p.BlendLevel() != 0 {
		t.Fatalf("show after fade should reopen at the original blend, visible=%v blend=%d", p.Visible(), p.BlendLevel())
	}
	if h.Opened != 2 {
		t.Fatalf("expected the window to be reopened, opened=%d", h.Opened)
	}
}

func themedFloat(h *hosttest.Host) {
	h.DefineHighlight("FloatNormal", host.Highlight{
		Fg: tcell.NewRGBColor(0xff, 0x00, 0x00),
		Bg: tcell.NewRGBColor(0x00, 0x00, 0xff),
	})
}

func TestBlendResetAfterInterruptedFadeRestoresThemeGroups(t *testing.T) {
	m, h := newTestManager(t)
	themedFloat(h)
	p := newShown(t, m, h)
	win := p.State().Window

	p.Queue().Fade(time.Second)
	h.Advance(500 * time.Millisecond)
	if err := p.Now().Blend(0); err != nil {
		t.Fatalf("Blend: %v", err)
	}
	h.RunUntilIdle(2 * time.Second)

	if !p.Visible() || p.BlendLevel() != 0 {
		t.Fatalf("visible=%v blend=%d", p.Visible(), p.BlendLevel())
	}
	if v, _ := h.WindowOption(win, host.OptionHighlight); v != "Normal:FloatNormal,FloatBorder:FloatBorder,FloatTitle:FloatTitle" {
		t.Fatalf("winhighlight still points at blended groups: %v", v)
	}
}

func TestColorsFollowBlendLevel(t *testing.T) {
	m, h := newTestManager(t)
	themedFloat(h)
	p := newShown(t, m, h)
	win := p.State().Window
	body := fmt.Sprintf("Floatpane%dBody", p.ID())
	blended := fmt.Sprintf("Normal:%s,FloatBorder:Floatpane%dBorder,FloatTitle:FloatTitle", body, p.ID())

	tests := []struct {
		name string
		run  func() error
		want int
	}{
		{"partial fade then redraw", func() error {
			p.Queue().FadeTo(100*time.Millisecond, 50)
			h.RunUntilIdle(time.Second)
			return p.Now().Redraw()
		}, 50},
		{"interrupted fade then redraw", func() error {
			p.Queue().FadeTo(100*time.Millisecond, 90)
			h.Advance(50 * time.Millisecond)
			return p.Now().Redraw()
		}, 70},
		{"direct blend", func() error { return p.Now().Blend(20) }, 20},
	}
	for _, tt := range tests {
		if err := tt.run(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := p.BlendLevel(); got != tt.want {
			t.Fatalf("%s: blend = %d, want %d", tt.name, got, tt.want)
		}
		if v, _ := h.WindowOption(win, host.OptionHighlight); v != blended {
			t.Fatalf("%s: winhighlight = %v", tt.name, v)
		}
		want := hexColor(m.Cache().BlendToward(tt.want, "FloatNormal", "Normal", false))
		if got := h.ResolveHighlight(body).Bg; got != want {
			t.Fatalf("%s: body bg painted for the wrong level", tt.name)
		}
	}
}
