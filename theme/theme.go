// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Highlight group tables derived from Chroma styles.
// Usage: Hosts keep a Table as their highlight store; popups resolve
//        Normal, <Theme>Normal and <Theme>Border through it.

package theme

import (
	"log"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/host"
)

// DefaultStyle is used when no style name is configured.
const DefaultStyle = "catppuccin-mocha"

// groupTokens maps well-known highlight groups to the Chroma token whose
// colours they borrow.
var groupTokens = map[string]chroma.TokenType{
	"Comment":  chroma.Comment,
	"Keyword":  chroma.Keyword,
	"String":   chroma.LiteralString,
	"Number":   chroma.LiteralNumber,
	"Function": chroma.NameFunction,
	"Title":    chroma.GenericHeading,
	"Error":    chroma.Error,
	"Warning":  chroma.GenericEmph,
	"Info":     chroma.NameBuiltin,
}

// Table is a mutable set of highlight groups.
type Table struct {
	mu     sync.RWMutex
	name   string
	style  *chroma.Style
	groups map[string]host.Highlight
}

// FromChroma builds a table from a registered Chroma style, falling back to
// DefaultStyle for unknown names.
func FromChroma(name string) *Table {
	if name == "" {
		name = DefaultStyle
	}
	style := styles.Get(name)
	if style == styles.Fallback && name != styles.Fallback.Name {
		log.Printf("Theme: Unknown style %q, using %s", name, style.Name)
	}
	t := &Table{name: style.Name, style: style, groups: make(map[string]host.Highlight)}
	t.seed()
	return t
}

func (t *Table) seed() {
	bg := t.style.Get(chroma.Background)
	fg := t.style.Get(chroma.Text).Colour
	if !fg.IsSet() {
		fg = bg.Colour
	}
	normal := host.Highlight{Fg: colour(fg), Bg: colour(bg.Background)}
	t.groups["Normal"] = normal

	for group, tok := range groupTokens {
		e := t.style.Get(tok)
		t.groups[group] = host.Highlight{Fg: colour(e.Colour), Bg: colour(e.Background)}
	}

	// Floating surfaces sit on a slightly lifted background with a muted frame.
	lifted := normal.Bg
	if hl, ok := t.groups["Comment"]; ok && hl.Bg.Valid() {
		lifted = hl.Bg
	} else if line := t.style.Get(chroma.LineHighlight); line.Background.IsSet() {
		lifted = colour(line.Background)
	}
	t.groups["FloatNormal"] = host.Highlight{Fg: normal.Fg, Bg: lifted}
	t.groups["FloatBorder"] = host.Highlight{Fg: t.groups["Comment"].Fg, Bg: lifted}
	t.groups["FloatTitle"] = host.Highlight{Fg: t.groups["Title"].Fg, Bg: lifted}
}

func colour(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// Name returns the resolved Chroma style name.
func (t *Table) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

// Style returns the Chroma style backing this table.
func (t *Table) Style() *chroma.Style {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.style
}

// Get returns the highlight for group.
func (t *Table) Get(group string) (host.Highlight, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	hl, ok := t.groups[group]
	return hl, ok
}

// Set defines or replaces group.
func (t *Table) Set(group string, hl host.Highlight) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.groups[group] = hl
}

// Groups lists defined group names in sorted order.
func (t *Table) Groups() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Token returns the highlight for a Chroma token type, inheriting unset
// channels from Normal.
func (t *Table) Token(tok chroma.TokenType) host.Highlight {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e := t.style.Get(tok)
	normal := t.groups["Normal"]
	hl := host.Highlight{Fg: colour(e.Colour), Bg: colour(e.Background)}
	if !hl.Fg.Valid() {
		hl.Fg = normal.Fg
	}
	if !hl.Bg.Valid() {
		hl.Bg = normal.Bg
	}
	return hl
}

// Available lists the Chroma style names that FromChroma accepts.
func Available() []string {
	return styles.Names()
}
