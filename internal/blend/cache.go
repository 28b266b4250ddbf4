// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/blend/cache.go
// Summary: Memoised highlight resolution and colour blending for fades.
// Usage: One Cache is shared by every popup of a manager; the manager calls
//        Invalidate whenever the host reports a theme change.
// Notes: Entries are created lazily and only ever dropped all at once.

package blend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/internal/colormath"
)

// NormalGroup is the base highlight every other group falls back to.
const NormalGroup = "Normal"

var (
	fallbackFg = colormath.RGB{R: 0xff, G: 0xff, B: 0xff}
	fallbackBg = colormath.RGB{}
)

// Resolver looks up host highlight definitions.
type Resolver interface {
	ResolveHighlight(group string) host.Highlight
}

// Entry is a fully resolved highlight group.
type Entry struct {
	Fg    tcell.Color
	Bg    tcell.Color
	FgHex string
	BgHex string

	fg, bg colormath.RGB
}

type blendKey struct {
	src   int32
	dst   int32
	alpha int
}

// Cache memoises group lookups and blended colours.
type Cache struct {
	mu       sync.Mutex
	resolver Resolver
	groups   map[string]Entry
	blends   map[blendKey]string
}

// NewCache creates an empty cache backed by r.
func NewCache(r Resolver) *Cache {
	return &Cache{
		resolver: r,
		groups:   make(map[string]Entry),
		blends:   make(map[blendKey]string),
	}
}

// Invalidate drops every cached group and blend.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups = make(map[string]Entry)
	c.blends = make(map[blendKey]string)
}

// Size reports the number of cached groups and blends.
func (c *Cache) Size() (groups, blends int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.groups), len(c.blends)
}

// Group resolves name, filling undefined channels from Normal.
func (c *Cache) Group(name string) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groupLocked(name)
}

func (c *Cache) groupLocked(name string) Entry {
	if e, ok := c.groups[name]; ok {
		return e
	}
	var base Entry
	if name == NormalGroup {
		base = makeEntry(fallbackFg, fallbackBg)
	} else {
		base = c.groupLocked(NormalGroup)
	}
	hl := c.resolver.ResolveHighlight(name)
	fg, ok := colormath.FromColor(hl.Fg)
	if !ok {
		fg = base.fg
	}
	bg, ok := colormath.FromColor(hl.Bg)
	if !ok {
		bg = base.bg
	}
	e := makeEntry(fg, bg)
	c.groups[name] = e
	return e
}

func makeEntry(fg, bg colormath.RGB) Entry {
	return Entry{
		Fg:    fg.Color(),
		Bg:    bg.Color(),
		FgHex: fg.Hex(),
		BgHex: bg.Hex(),
		fg:    fg,
		bg:    bg,
	}
}

// Differs reports whether group resolves to colours other than Normal's.
func (c *Cache) Differs(group string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, n := c.groupLocked(group), c.groupLocked(NormalGroup)
	return g.fg != n.fg || g.bg != n.bg
}

// BlendToward moves src's foreground (or background) toward the luminosity
// of dst's background by alpha percent and returns the "#rrggbb" result.
func (c *Cache) BlendToward(alpha int, src, dst string, useFg bool) string {
	alpha = colormath.ClampPercent(alpha)

	c.mu.Lock()
	defer c.mu.Unlock()

	s, d := c.groupLocked(src), c.groupLocked(dst)
	from := s.bg
	if useFg {
		from = s.fg
	}
	key := blendKey{src: from.Value(), dst: d.bg.Value(), alpha: alpha}
	if hex, ok := c.blends[key]; ok {
		return hex
	}

	var hex string
	if from == d.bg {
		hex = d.BgHex
	} else {
		hex = colormath.TowardLuminosity(from, colormath.Luminosity(d.bg), alpha).Hex()
	}
	c.blends[key] = hex
	return hex
}
