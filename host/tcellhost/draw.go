// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/tcellhost/draw.go
// Summary: Composes the base text, popup windows and command line onto the
//          tcell screen.

package tcellhost

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/internal/colormath"
)

// frame is the set of glyphs drawn around a bordered popup.
func frame(b geometry.Border) (lipgloss.Border, bool) {
	switch b {
	case geometry.BorderSingle:
		return lipgloss.NormalBorder(), true
	case geometry.BorderDouble:
		return lipgloss.DoubleBorder(), true
	case geometry.BorderRounded:
		return lipgloss.RoundedBorder(), true
	case geometry.BorderSolid:
		return lipgloss.HiddenBorder(), true
	case geometry.BorderShadow:
		return lipgloss.BlockBorder(), true
	}
	return lipgloss.Border{}, false
}

func style(hl host.Highlight) tcell.Style {
	return tcell.StyleDefault.Foreground(hl.Fg).Background(hl.Bg)
}

// Draw repaints the whole screen.
func (h *Host) Draw() {
	m := h.Metrics()
	normal := h.ResolveHighlight("Normal")
	h.screen.SetStyle(style(normal))
	h.screen.Clear()
	h.fill(0, 0, m.Cols, m.Rows, style(normal))

	top := m.TopMargin()
	if m.TabBar {
		tab := h.ResolveHighlight("FloatTitle")
		h.fill(0, 0, m.Cols, 1, style(tab))
		h.text(0, 0, m.Cols, " "+h.baseLabel()+" ", style(tab))
	}
	h.drawBase(top, m.AvailableRows())

	for _, id := range h.Windows() {
		h.drawWindow(h.windows[id])
	}

	if h.message != "" && m.CmdlineHeight > 0 {
		group := "Normal"
		switch h.messageLevel {
		case host.LevelError:
			group = "Error"
		case host.LevelWarn:
			group = "Warning"
		}
		hl := h.ResolveHighlight(group)
		if !hl.Bg.Valid() {
			hl.Bg = normal.Bg
		}
		h.text(0, m.AvailableRows(), m.Cols, h.message, style(hl))
	}
	h.screen.Show()
}

func (h *Host) baseLabel() string {
	if h.baseName == "" {
		return "[No Name]"
	}
	return h.baseName
}

func (h *Host) drawBase(top, bottom int) {
	if h.baseCache == nil {
		h.baseCache = colorize(h.baseName, h.baseLines, h.theme)
	}
	cols, _ := h.screen.Size()
	for i, segs := range h.baseCache {
		y := top + i
		if y >= bottom {
			break
		}
		x := 0
		for _, seg := range segs {
			x = h.text(x, y, cols, seg.text, style(seg.hl))
		}
	}
}

// groups returns the body, border and title groups named by winhighlight.
func groups(w *window) (body, border, title string) {
	body, border, title = "FloatNormal", "FloatBorder", "FloatTitle"
	v, _ := w.options[host.OptionHighlight].(string)
	for _, pair := range strings.Split(v, ",") {
		from, to, ok := strings.Cut(pair, ":")
		if !ok || to == "" {
			continue
		}
		switch from {
		case "Normal":
			body = to
		case "FloatBorder":
			border = to
		case "FloatTitle":
			title = to
		}
	}
	return body, border, title
}

func (h *Host) drawWindow(w *window) {
	r := w.abs
	bodyGroup, borderGroup, titleGroup := groups(w)
	body := h.ResolveHighlight(bodyGroup)
	edge := h.ResolveHighlight(borderGroup)
	head := h.ResolveHighlight(titleGroup)
	if !edge.Bg.Valid() {
		edge.Bg = body.Bg
	}
	if !head.Bg.Valid() {
		head.Bg = edge.Bg
	}
	blend, _ := w.options[host.OptionBlend].(int)
	blend = colormath.ClampPercent(blend)

	x0, y0 := r.Col, r.Row
	if glyphs, ok := frame(r.Border); ok {
		ow, oh := r.OuterWidth(), r.OuterHeight()
		right, bottom := x0+ow-1, y0+oh-1
		h.blendCell(x0, y0, glyphs.TopLeft, edge, blend)
		h.blendCell(right, y0, glyphs.TopRight, edge, blend)
		h.blendCell(x0, bottom, glyphs.BottomLeft, edge, blend)
		h.blendCell(right, bottom, glyphs.BottomRight, edge, blend)
		for x := x0 + 1; x < right; x++ {
			h.blendCell(x, y0, glyphs.Top, edge, blend)
			h.blendCell(x, bottom, glyphs.Bottom, edge, blend)
		}
		for y := y0 + 1; y < bottom; y++ {
			h.blendCell(x0, y, glyphs.Left, edge, blend)
			h.blendCell(right, y, glyphs.Right, edge, blend)
		}
		if title, _ := w.options[host.OptionTitle].(string); title != "" {
			title = runewidth.Truncate(title, r.Width, "…")
			tx := x0 + 1 + (r.Width-runewidth.StringWidth(title))/2
			h.blendText(tx, y0, x0+1+r.Width, title, head, blend)
		}
		x0, y0 = x0+1, y0+1
	}

	wrap := true
	if v, ok := w.options[host.OptionWrap].(bool); ok {
		wrap = v
	}
	showbreak, _ := w.options[host.OptionShowBreak].(string)
	rows := layout(h.BufferLines(w.buf), r.Width, wrap, showbreak)
	for y := 0; y < r.Height; y++ {
		line := ""
		if y < len(rows) {
			line = rows[y]
		}
		end := h.blendText(x0, y0+y, x0+r.Width, line, body, blend)
		for x := end; x < x0+r.Width; x++ {
			h.blendCell(x, y0+y, " ", body, blend)
		}
	}
}

// layout splits lines into display rows of at most width cells.
func layout(lines []string, width int, wrap bool, showbreak string) []string {
	if width <= 0 {
		return nil
	}
	brk := runewidth.StringWidth(showbreak)
	if brk >= width {
		showbreak, brk = "", 0
	}
	var rows []string
	for _, line := range lines {
		if !wrap || runewidth.StringWidth(line) <= width {
			rows = append(rows, line)
			continue
		}
		var sb strings.Builder
		used, limit := 0, width
		state := -1
		rest := line
		for rest != "" {
			var cluster string
			var w int
			cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
			if used+w > limit {
				rows = append(rows, sb.String())
				sb.Reset()
				sb.WriteString(showbreak)
				used, limit = brk, width
			}
			sb.WriteString(cluster)
			used += w
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// text writes s from (x, y) without blending and returns the next column.
func (h *Host) text(x, y, limit int, s string, st tcell.Style) int {
	state := -1
	for s != "" && x < limit {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		rs := []rune(cluster)
		h.screen.SetContent(x, y, rs[0], rs[1:], st)
		x += w
	}
	return x
}

func (h *Host) blendText(x, y, limit int, s string, hl host.Highlight, blend int) int {
	state := -1
	for s != "" && x < limit {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		h.blendCell(x, y, cluster, hl, blend)
		x += w
	}
	return x
}

// blendCell paints cluster over whatever is on screen. blend is the
// percentage of the underlying cell that shows through; blank cells reveal
// the underlying glyph.
func (h *Host) blendCell(x, y int, cluster string, hl host.Highlight, blend int) {
	cols, rows := h.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows || cluster == "" {
		return
	}
	rs := []rune(cluster)
	st := style(hl)
	if blend > 0 {
		prev, comb, under, _ := h.screen.GetContent(x, y)
		ufg, ubg, _ := under.Decompose()
		top, okTop := colormath.FromColor(hl.Bg)
		low, okLow := colormath.FromColor(ubg)
		if okTop && okLow {
			t := float64(blend) / 100
			st = st.Background(colormath.Mix(top, low, t).Color())
			if strings.TrimSpace(cluster) == "" && prev != ' ' && prev != 0 {
				rs = append([]rune{prev}, comb...)
				if fg, ok := colormath.FromColor(ufg); ok {
					st = st.Foreground(colormath.Mix(top, fg, t).Color())
				}
			}
		}
	}
	h.screen.SetContent(x, y, rs[0], rs[1:], st)
}

func (h *Host) fill(x, y, w, ht int, st tcell.Style) {
	for row := y; row < y+ht; row++ {
		for col := x; col < x+w; col++ {
			h.screen.SetContent(col, row, ' ', nil, st)
		}
	}
}
