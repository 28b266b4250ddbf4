// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/request.go
// Summary: Partial popup configuration and the pure merge functions over it.
// Usage: Callers build a Request with Ptr; configure merges it with
//        MergeOverwrite, creation fills gaps from config via MergeDefaults.
// Notes: Merges never share pointers with their inputs, so a Request captured
//        in a queued operation cannot be changed afterwards.

package popup

import (
	"fmt"

	"github.com/framegrace/floatpane/config"
	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/registry"
)

// Request holds optional overrides. A nil field means "not set".
type Request struct {
	Position  *geometry.Position
	Relative  *geometry.Relative
	Border    *geometry.Border
	Anchor    *geometry.Corner
	AnchorWin *host.Window

	Width  *int
	Height *int
	Row    *int
	Col    *int
	ZIndex *int

	Focusable *bool
	Enter     *bool
	NoAutocmd *bool

	Theme *string
	Blend *int
	Title *string

	TextWidth    *int
	NoWidthLimit *bool
	Wrap         *bool
	ShowBreak    *string
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return &v }

func dup[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func overwrite[T any](base, patch *T) *T {
	if patch != nil {
		return dup(patch)
	}
	return dup(base)
}

func keep[T any](base, defaults *T) *T {
	if base != nil {
		return dup(base)
	}
	return dup(defaults)
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// MergeOverwrite returns base with every field set in patch replacing it.
func MergeOverwrite(base, patch Request) Request {
	return merge(base, patch, overwriteFuncs)
}

// MergeDefaults returns base with its unset fields taken from defaults.
func MergeDefaults(base, defaults Request) Request {
	return merge(base, defaults, keepFuncs)
}

type mergeFuncs struct {
	position func(a, b *geometry.Position) *geometry.Position
	relative func(a, b *geometry.Relative) *geometry.Relative
	border   func(a, b *geometry.Border) *geometry.Border
	corner   func(a, b *geometry.Corner) *geometry.Corner
	window   func(a, b *host.Window) *host.Window
	integer  func(a, b *int) *int
	boolean  func(a, b *bool) *bool
	str      func(a, b *string) *string
}

var overwriteFuncs = mergeFuncs{
	position: overwrite[geometry.Position],
	relative: overwrite[geometry.Relative],
	border:   overwrite[geometry.Border],
	corner:   overwrite[geometry.Corner],
	window:   overwrite[host.Window],
	integer:  overwrite[int],
	boolean:  overwrite[bool],
	str:      overwrite[string],
}

var keepFuncs = mergeFuncs{
	position: keep[geometry.Position],
	relative: keep[geometry.Relative],
	border:   keep[geometry.Border],
	corner:   keep[geometry.Corner],
	window:   keep[host.Window],
	integer:  keep[int],
	boolean:  keep[bool],
	str:      keep[string],
}

func merge(a, b Request, f mergeFuncs) Request {
	return Request{
		Position:     f.position(a.Position, b.Position),
		Relative:     f.relative(a.Relative, b.Relative),
		Border:       f.border(a.Border, b.Border),
		Anchor:       f.corner(a.Anchor, b.Anchor),
		AnchorWin:    f.window(a.AnchorWin, b.AnchorWin),
		Width:        f.integer(a.Width, b.Width),
		Height:       f.integer(a.Height, b.Height),
		Row:          f.integer(a.Row, b.Row),
		Col:          f.integer(a.Col, b.Col),
		ZIndex:       f.integer(a.ZIndex, b.ZIndex),
		Focusable:    f.boolean(a.Focusable, b.Focusable),
		Enter:        f.boolean(a.Enter, b.Enter),
		NoAutocmd:    f.boolean(a.NoAutocmd, b.NoAutocmd),
		Theme:        f.str(a.Theme, b.Theme),
		Blend:        f.integer(a.Blend, b.Blend),
		Title:        f.str(a.Title, b.Title),
		TextWidth:    f.integer(a.TextWidth, b.TextWidth),
		NoWidthLimit: f.boolean(a.NoWidthLimit, b.NoWidthLimit),
		Wrap:         f.boolean(a.Wrap, b.Wrap),
		ShowBreak:    f.str(a.ShowBreak, b.ShowBreak),
	}
}

// DefaultsFromConfig reads the popup section of cfg.
func DefaultsFromConfig(cfg config.Config) Request {
	pos, err := geometry.ParsePosition(cfg.GetString("popup", "position", "editor_center"))
	if err != nil {
		pos = geometry.EditorCenter
	}
	return Request{
		Position:     Ptr(pos),
		Border:       Ptr(geometry.Border(cfg.GetString("popup", "border", string(geometry.BorderRounded)))),
		Theme:        Ptr(cfg.GetString("popup", "theme", DefaultTheme)),
		ZIndex:       Ptr(cfg.GetInt("popup", "zindex", 50)),
		TextWidth:    Ptr(cfg.GetInt("popup", "text_width", 0)),
		NoWidthLimit: Ptr(cfg.GetBool("popup", "no_width_limit", false)),
		Wrap:         Ptr(cfg.GetBool("popup", "wrap", true)),
		ShowBreak:    Ptr(cfg.GetString("popup", "showbreak", "")),
		Focusable:    Ptr(cfg.GetBool("popup", "focusable", false)),
		Enter:        Ptr(cfg.GetBool("popup", "enter", false)),
	}
}

// RequestFromPreset converts a preset into a Request.
func RequestFromPreset(p *registry.Preset) (Request, error) {
	if p == nil {
		return Request{}, fmt.Errorf("nil preset")
	}
	if err := p.Validate(); err != nil {
		return Request{}, err
	}
	pos, _ := geometry.ParsePosition(p.Position)
	req := Request{
		Position:     Ptr(pos),
		Width:        dup(p.Width),
		Height:       dup(p.Height),
		Row:          dup(p.Row),
		Col:          dup(p.Col),
		ZIndex:       dup(p.ZIndex),
		Blend:        dup(p.Blend),
		Focusable:    dup(p.Focusable),
		NoWidthLimit: dup(p.NoWidthLimit),
	}
	if p.Relative != "" {
		rel, _ := geometry.ParseRelative(p.Relative)
		req.Relative = Ptr(rel)
	}
	if p.Border != "" {
		req.Border = Ptr(geometry.Border(p.Border))
	}
	if p.Theme != "" {
		req.Theme = Ptr(p.Theme)
	}
	if p.Title != "" {
		req.Title = Ptr(p.Title)
	}
	return req, nil
}
