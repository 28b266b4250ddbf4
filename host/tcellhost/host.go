// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/tcellhost/host.go
// Summary: host.Surface backed by a tcell screen.
// Usage: h := tcellhost.New(screen, tcellhost.Options{}); m := popup.NewManager(h, nil); h.Run(handler)
// Notes: Every Surface method must be called from the Run goroutine. Timers
//        fire on their own goroutines and append their callbacks to a FIFO
//        that the loop drains in submission order.

package tcellhost

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/theme"
)

// EditorWindow is the full-screen base window.
const EditorWindow host.Window = 1

// Options configure a Host.
type Options struct {
	CmdlineHeight int
	TabBar        bool
	Theme         *theme.Table
	// ForceTrueColor skips terminal colour detection.
	ForceTrueColor bool
}

type buffer struct {
	lines []string
}

type window struct {
	buf     host.Buffer
	req     geometry.Rect
	abs     geometry.Rect
	options map[string]any
}

type subscription struct {
	h     *Host
	id    int
	names []string
	scope host.Scope
	cb    func(host.Event)
}

func (s *subscription) Dispose() {
	delete(s.h.subs, s.id)
}

// Host draws popups over a base text view.
type Host struct {
	screen tcell.Screen
	opts   Options
	theme  *theme.Table

	buffers map[host.Buffer]*buffer
	nextBuf host.Buffer
	windows map[host.Window]*window
	nextWin host.Window
	current host.Window

	overrides map[string]host.Highlight
	subs      map[int]*subscription
	nextSub   int

	baseName  string
	baseLines []string
	baseCache [][]segment

	cursorRow, cursorCol int

	message      string
	messageLevel host.Level

	callsMu  sync.Mutex
	calls    []func()
	wake     chan struct{}
	quit     chan struct{}
	loopOnce sync.Once
	stopOnce sync.Once
	closed   atomic.Bool
}

var _ host.Surface = (*Host)(nil)

// New wraps an initialised screen.
func New(screen tcell.Screen, opts Options) *Host {
	if opts.CmdlineHeight <= 0 {
		opts.CmdlineHeight = 1
	}
	t := opts.Theme
	if t == nil {
		t = theme.FromChroma(theme.DefaultStyle)
	}
	return &Host{
		screen:    screen,
		opts:      opts,
		theme:     t,
		buffers:   make(map[host.Buffer]*buffer),
		windows:   make(map[host.Window]*window),
		nextWin:   EditorWindow,
		current:   EditorWindow,
		overrides: make(map[string]host.Highlight),
		subs:      make(map[int]*subscription),
	}
}

// SetBase replaces the text drawn underneath every popup. name is used for
// language detection.
func (h *Host) SetBase(name string, lines []string) {
	h.baseName = name
	h.baseLines = append([]string(nil), lines...)
	h.baseCache = nil
}

// SetCursor moves the cursor used by cursor-relative popups.
func (h *Host) SetCursor(row, col int) {
	h.cursorRow, h.cursorCol = row, col
	h.Emit(host.Event{Name: host.EventCursorMoved, Window: EditorWindow})
}

// Cursor returns the cursor position.
func (h *Host) Cursor() (row, col int) { return h.cursorRow, h.cursorCol }

// SetTheme swaps the highlight table and announces the change.
func (h *Host) SetTheme(t *theme.Table) {
	if t == nil {
		return
	}
	h.theme = t
	h.baseCache = nil
	log.Printf("TcellHost: Theme switched to %s", t.Name())
	h.Emit(host.Event{Name: host.EventThemeChanged})
}

// Theme returns the active highlight table.
func (h *Host) Theme() *theme.Table { return h.theme }

func (h *Host) CreateBuffer(lines []string) host.Buffer {
	h.nextBuf++
	h.buffers[h.nextBuf] = &buffer{lines: append([]string(nil), lines...)}
	return h.nextBuf
}

func (h *Host) SetBufferLines(buf host.Buffer, lines []string) {
	if b, ok := h.buffers[buf]; ok {
		b.lines = append([]string(nil), lines...)
	}
}

func (h *Host) BufferLines(buf host.Buffer) []string {
	b, ok := h.buffers[buf]
	if !ok {
		return nil
	}
	return append([]string(nil), b.lines...)
}

func (h *Host) IsBufferValid(buf host.Buffer) bool {
	_, ok := h.buffers[buf]
	return ok
}

func (h *Host) DeleteBuffer(buf host.Buffer) {
	delete(h.buffers, buf)
}

func (h *Host) OpenWindow(buf host.Buffer, enter bool, rect geometry.Rect) (host.Window, error) {
	if !h.IsBufferValid(buf) {
		return 0, fmt.Errorf("buffer %d is not valid", buf)
	}
	h.nextWin++
	w := &window{buf: buf, options: make(map[string]any)}
	h.windows[h.nextWin] = w
	h.place(w, rect)
	if enter {
		h.current = h.nextWin
	}
	return h.nextWin, nil
}

func (h *Host) ReconfigureWindow(win host.Window, rect geometry.Rect) error {
	w, ok := h.windows[win]
	if !ok {
		return errors.New("window is not valid")
	}
	h.place(w, rect)
	return nil
}

// place converts rect to absolute screen coordinates.
func (h *Host) place(w *window, rect geometry.Rect) {
	w.req = rect
	abs := rect
	switch rect.Relative {
	case geometry.RelativeCursor:
		abs.Row += h.cursorRow
		abs.Col += h.cursorCol
	case geometry.RelativeWin:
		if info, ok := h.WindowInfo(host.Window(rect.Win)); ok {
			abs.Row += info.Row
			abs.Col += info.Col
		}
	}
	abs.Relative = geometry.RelativeEditor
	abs.Win = 0
	w.abs = abs
}

func (h *Host) CloseWindow(win host.Window) {
	if _, ok := h.windows[win]; !ok {
		return
	}
	delete(h.windows, win)
	if h.current == win {
		h.current = EditorWindow
	}
	h.Emit(host.Event{Name: host.EventWindowClosed, Window: win})
}

func (h *Host) IsWindowValid(win host.Window) bool {
	if win == EditorWindow {
		return true
	}
	_, ok := h.windows[win]
	return ok
}

func (h *Host) WindowRect(win host.Window) (geometry.Rect, bool) {
	w, ok := h.windows[win]
	if !ok {
		return geometry.Rect{}, false
	}
	return w.abs, true
}

func (h *Host) CurrentWindow() host.Window { return h.current }

func (h *Host) WindowInfo(win host.Window) (geometry.WindowInfo, bool) {
	if win == EditorWindow {
		m := h.Metrics()
		top := m.TopMargin()
		return geometry.WindowInfo{
			ID:     int(EditorWindow),
			Row:    top,
			Width:  m.Cols,
			Height: m.AvailableRows() - top,
		}, true
	}
	w, ok := h.windows[win]
	if !ok {
		return geometry.WindowInfo{}, false
	}
	return geometry.WindowInfo{
		ID:     int(win),
		Row:    w.abs.Row,
		Col:    w.abs.Col,
		Width:  w.abs.Width,
		Height: w.abs.Height,
	}, true
}

// Windows lists open popup windows bottom to top.
func (h *Host) Windows() []host.Window {
	ids := make([]host.Window, 0, len(h.windows))
	for id := range h.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := h.windows[ids[i]].abs.ZIndex, h.windows[ids[j]].abs.ZIndex
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// WindowAt returns the topmost popup whose outer rectangle covers the cell.
func (h *Host) WindowAt(row, col int) (host.Window, bool) {
	wins := h.Windows()
	for i := len(wins) - 1; i >= 0; i-- {
		r := h.windows[wins[i]].abs
		if row >= r.Row && row < r.Row+r.OuterHeight() && col >= r.Col && col < r.Col+r.OuterWidth() {
			return wins[i], true
		}
	}
	return 0, false
}

func (h *Host) SetWindowOption(win host.Window, name string, value any) {
	if w, ok := h.windows[win]; ok {
		w.options[name] = value
	}
}

func (h *Host) WindowOption(win host.Window, name string) (any, bool) {
	w, ok := h.windows[win]
	if !ok {
		return nil, false
	}
	v, ok := w.options[name]
	return v, ok
}

// ResolveHighlight prefers groups defined at runtime over the theme table.
func (h *Host) ResolveHighlight(group string) host.Highlight {
	if hl, ok := h.overrides[group]; ok {
		return hl
	}
	hl, _ := h.theme.Get(group)
	return hl
}

func (h *Host) DefineHighlight(group string, hl host.Highlight) {
	h.overrides[group] = hl
}

func (h *Host) OnEvent(names []string, scope host.Scope, cb func(host.Event)) host.Subscription {
	h.nextSub++
	s := &subscription{h: h, id: h.nextSub, names: names, scope: scope, cb: cb}
	h.subs[s.id] = s
	return s
}

// Emit delivers ev to matching subscribers in subscription order.
func (h *Host) Emit(ev host.Event) {
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s, ok := h.subs[id]
		if !ok || !s.scope.Matches(ev) {
			continue
		}
		for _, name := range s.names {
			if name == ev.Name {
				s.cb(ev)
				break
			}
		}
	}
}

func (h *Host) Metrics() geometry.Metrics {
	cols, rows := h.screen.Size()
	return geometry.Metrics{
		Rows:          rows,
		Cols:          cols,
		CmdlineHeight: h.opts.CmdlineHeight,
		TabBar:        h.opts.TabBar,
	}
}

func (h *Host) TrueColor() bool {
	if h.opts.ForceTrueColor || h.screen.Colors() >= 1<<24 {
		return true
	}
	ct := strings.ToLower(os.Getenv("COLORTERM"))
	return ct == "truecolor" || ct == "24bit"
}

func (h *Host) Notify(msg string, level host.Level) {
	h.message = msg
	h.messageLevel = level
	log.Printf("TcellHost: notify(%d): %s", level, msg)
}

// Message returns the text shown on the command line.
func (h *Host) Message() string { return h.message }
