// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/tcellhost/loop.go
// Summary: Event loop and timer marshalling for the tcell host.

package tcellhost

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/floatpane/host"
)

// Handler receives input events the host does not consume itself.
// Returning false stops the loop.
type Handler func(ev tcell.Event) bool

func (h *Host) ensureLoop() {
	h.loopOnce.Do(func() {
		h.wake = make(chan struct{}, 1)
		h.quit = make(chan struct{})
	})
}

// Defer runs fn on the loop goroutine after delay. Calls made after Stop
// are dropped.
func (h *Host) Defer(fn func(), delay time.Duration) {
	h.ensureLoop()
	if h.closed.Load() {
		return
	}
	if delay <= 0 {
		h.enqueue(fn)
		return
	}
	time.AfterFunc(delay, func() { h.enqueue(fn) })
}

// enqueue appends fn to the loop's FIFO and wakes the loop.
func (h *Host) enqueue(fn func()) {
	if h.closed.Load() {
		return
	}
	h.callsMu.Lock()
	h.calls = append(h.calls, fn)
	h.callsMu.Unlock()
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// drain runs the calls queued so far in submission order.
func (h *Host) drain() {
	h.callsMu.Lock()
	batch := h.calls
	h.calls = nil
	h.callsMu.Unlock()
	for _, fn := range batch {
		if h.closed.Load() {
			return
		}
		fn()
	}
}

// Run draws the screen and dispatches events until Stop is called or
// handle returns false.
func (h *Host) Run(handle Handler) error {
	h.ensureLoop()
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-h.quit:
				return
			}
		}
	}()

	h.Draw()
	for {
		select {
		case <-h.wake:
			h.drain()
		case ev := <-events:
			if !h.handleEvent(ev, handle) {
				h.Stop()
				return nil
			}
		case <-h.quit:
			return nil
		}
		if h.closed.Load() {
			return nil
		}
		h.Draw()
	}
}

func (h *Host) handleEvent(ev tcell.Event, handle Handler) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		h.screen.Sync()
		log.Printf("TcellHost: Resized to %dx%d", h.Metrics().Cols, h.Metrics().Rows)
		h.Emit(host.Event{Name: host.EventResized})
		return true
	}
	if handle == nil {
		return true
	}
	return handle(ev)
}

// Stop ends Run and releases the terminal.
func (h *Host) Stop() {
	h.ensureLoop()
	h.stopOnce.Do(func() {
		h.closed.Store(true)
		close(h.quit)
		h.screen.Fini()
	})
}
