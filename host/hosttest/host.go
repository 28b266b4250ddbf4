// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/hosttest/host.go
// Summary: In-memory host.Surface used by package tests.
// Usage: hosttest.New() gives a 24x80 screen with one editor window; tests
//        drive timers through the embedded Clock and inspect recorded state.

package hosttest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
)

// EditorWindow is the id of the always-valid editor window.
const EditorWindow host.Window = 1

// Win is a popup window opened through the fake host.
type Win struct {
	Buf     host.Buffer
	Rect    geometry.Rect
	Abs     geometry.Rect
	Entered bool
	Options map[string]any
}

// OptionSet records one SetWindowOption call.
type OptionSet struct {
	Win   host.Window
	Name  string
	Value any
}

// Notification records one Notify call.
type Notification struct {
	Msg   string
	Level host.Level
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

// Host is a fake host.Surface.
type Host struct {
	*Clock

	Screen      geometry.Metrics
	NoTrueColor bool
	CursorRow   int
	CursorCol   int

	// OpenErr, when set, is returned by OpenWindow.
	OpenErr error

	Options       []OptionSet
	Notifications []Notification
	Opened        int
	Closed        int

	buffers    map[host.Buffer][]string
	nextBuf    host.Buffer
	windows    map[host.Window]*Win
	nextWin    host.Window
	current    host.Window
	highlights map[string]host.Highlight
	subs       map[int]*subscription
	nextSub    int
}

var _ host.Surface = (*Host)(nil)

// New returns a host with a 24x80 screen, a one-line command area and a
// Normal highlight of light grey on near-black.
func New() *Host {
	h := &Host{
		Clock:      NewClock(),
		Screen:     geometry.Metrics{Rows: 24, Cols: 80, CmdlineHeight: 1},
		buffers:    make(map[host.Buffer][]string),
		windows:    make(map[host.Window]*Win),
		nextWin:    EditorWindow,
		current:    EditorWindow,
		highlights: make(map[string]host.Highlight),
		subs:       make(map[int]*subscription),
	}
	h.highlights["Normal"] = host.Highlight{
		Fg: tcell.NewRGBColor(0xcd, 0xd6, 0xf4),
		Bg: tcell.NewRGBColor(0x1e, 0x1e, 0x2e),
	}
	return h
}

func (h *Host) CreateBuffer(lines []string) host.Buffer {
	h.nextBuf++
	h.buffers[h.nextBuf] = append([]string(nil), lines...)
	return h.nextBuf
}

func (h *Host) SetBufferLines(buf host.Buffer, lines []string) {
	if _, ok := h.buffers[buf]; ok {
		h.buffers[buf] = append([]string(nil), lines...)
	}
}

func (h *Host) BufferLines(buf host.Buffer) []string {
	return append([]string(nil), h.buffers[buf]...)
}

func (h *Host) IsBufferValid(buf host.Buffer) bool {
	_, ok := h.buffers[buf]
	return ok
}

func (h *Host) DeleteBuffer(buf host.Buffer) {
	delete(h.buffers, buf)
}

func (h *Host) OpenWindow(buf host.Buffer, enter bool, rect geometry.Rect) (host.Window, error) {
	if h.OpenErr != nil {
		return 0, h.OpenErr
	}
	if !h.IsBufferValid(buf) {
		return 0, fmt.Errorf("buffer %d is not valid", buf)
	}
	h.nextWin++
	w := &Win{Buf: buf, Entered: enter, Options: make(map[string]any)}
	h.windows[h.nextWin] = w
	h.place(w, rect)
	h.Opened++
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

func (h *Host) place(w *Win, rect geometry.Rect) {
	w.Rect = rect
	abs := rect
	switch rect.Relative {
	case geometry.RelativeCursor:
		abs.Row += h.CursorRow
		abs.Col += h.CursorCol
	case geometry.RelativeWin:
		if info, ok := h.WindowInfo(host.Window(rect.Win)); ok {
			abs.Row += info.Row
			abs.Col += info.Col
		}
	}
	abs.Relative = geometry.RelativeEditor
	abs.Win = 0
	w.Abs = abs
}

func (h *Host) CloseWindow(win host.Window) {
	if _, ok := h.windows[win]; !ok {
		return
	}
	delete(h.windows, win)
	h.Closed++
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
	return w.Abs, true
}

func (h *Host) CurrentWindow() host.Window { return h.current }

func (h *Host) WindowInfo(win host.Window) (geometry.WindowInfo, bool) {
	if win == EditorWindow {
		return geometry.WindowInfo{
			ID:     int(EditorWindow),
			Width:  h.Screen.Cols,
			Height: h.Screen.AvailableRows(),
		}, true
	}
	w, ok := h.windows[win]
	if !ok {
		return geometry.WindowInfo{}, false
	}
	return geometry.WindowInfo{ID: int(win), Row: w.Abs.Row, Col: w.Abs.Col, Width: w.Abs.Width, Height: w.Abs.Height}, true
}

// Window returns the fake window record, or nil.
func (h *Host) Window(win host.Window) *Win {
	return h.windows[win]
}

// OpenWindows counts popup windows currently open.
func (h *Host) OpenWindows() int { return len(h.windows) }

func (h *Host) SetWindowOption(win host.Window, name string, value any) {
	h.Options = append(h.Options, OptionSet{Win: win, Name: name, Value: value})
	if w, ok := h.windows[win]; ok {
		w.Options[name] = value
	}
}

func (h *Host) WindowOption(win host.Window, name string) (any, bool) {
	w, ok := h.windows[win]
	if !ok {
		return nil, false
	}
	v, ok := w.Options[name]
	return v, ok
}

// OptionValues returns every value set for name on win, in call order.
func (h *Host) OptionValues(win host.Window, name string) []any {
	var out []any
	for _, o := range h.Options {
		if o.Win == win && o.Name == name {
			out = append(out, o.Value)
		}
	}
	return out
}

func (h *Host) ResolveHighlight(group string) host.Highlight {
	return h.highlights[group]
}

func (h *Host) DefineHighlight(group string, hl host.Highlight) {
	h.highlights[group] = hl
}

func (h *Host) OnEvent(names []string, scope host.Scope, cb func(host.Event)) host.Subscription {
	h.nextSub++
	s := &subscription{h: h, id: h.nextSub, names: names, scope: scope, cb: cb}
	h.subs[s.id] = s
	return s
}

// Subscriptions counts live subscriptions.
func (h *Host) Subscriptions() int { return len(h.subs) }

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

func (h *Host) Metrics() geometry.Metrics { return h.Screen }

func (h *Host) TrueColor() bool { return !h.NoTrueColor }

func (h *Host) Notify(msg string, level host.Level) {
	h.Notifications = append(h.Notifications, Notification{Msg: msg, Level: level})
}
