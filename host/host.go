// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/host.go
// Summary: Contract between the popup core and the UI host that owns real
//          windows, buffers, highlights, timers and events.
// Usage: Implemented by tcellhost for terminals and hosttest for tests.

package host

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/geometry"
)

// Buffer identifies host-owned content. Zero is never valid.
type Buffer int

// Window identifies a host window. Zero is never valid.
type Window int

// Highlight is a named colour pair. tcell.ColorDefault marks an unset channel.
type Highlight struct {
	Fg tcell.Color
	Bg tcell.Color
}

// Level classifies transient notifications.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Event names delivered through OnEvent.
const (
	EventResized      = "resized"
	EventWindowClosed = "window_closed"
	EventThemeChanged = "theme_changed"
	EventCursorMoved  = "cursor_moved"
)

// Event is delivered to subscribers.
type Event struct {
	Name   string
	Window Window
}

// Scope narrows a subscription; a zero Window matches every window.
type Scope struct {
	Window Window
}

// Matches reports whether ev falls inside the scope.
func (s Scope) Matches(ev Event) bool {
	return s.Window == 0 || s.Window == ev.Window
}

// Subscription is returned by OnEvent.
type Subscription interface {
	Dispose()
}

// Surface is everything the popup core needs from its host.
type Surface interface {
	CreateBuffer(lines []string) Buffer
	SetBufferLines(buf Buffer, lines []string)
	BufferLines(buf Buffer) []string
	IsBufferValid(buf Buffer) bool
	DeleteBuffer(buf Buffer)

	OpenWindow(buf Buffer, enter bool, rect geometry.Rect) (Window, error)
	ReconfigureWindow(win Window, rect geometry.Rect) error
	CloseWindow(win Window)
	IsWindowValid(win Window) bool
	// WindowRect reports the live rectangle in absolute editor coordinates.
	WindowRect(win Window) (geometry.Rect, bool)
	CurrentWindow() Window
	WindowInfo(win Window) (geometry.WindowInfo, bool)

	SetWindowOption(win Window, name string, value any)
	WindowOption(win Window, name string) (any, bool)

	ResolveHighlight(group string) Highlight
	DefineHighlight(group string, hl Highlight)

	OnEvent(names []string, scope Scope, cb func(Event)) Subscription
	Defer(fn func(), delay time.Duration)
	Metrics() geometry.Metrics
	TrueColor() bool
	Notify(msg string, level Level)
}

// Window option names understood by hosts.
const (
	OptionBlend     = "winblend"
	OptionHighlight = "winhighlight"
	OptionWrap      = "wrap"
	OptionShowBreak = "showbreak"
	OptionTextWidth = "textwidth"
	OptionTitle     = "title"
)
