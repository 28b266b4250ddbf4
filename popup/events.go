// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/events.go
// Summary: Host event subscriptions of a visible popup.

package popup

import "github.com/framegrace/floatpane/host"

// watch subscribes to resize and close events for win on the next loop turn,
// so nothing fires against a window opened in the same tick.
func (p *Popup) watch(win host.Window) {
	h := p.m.host
	h.Defer(func() {
		if p.destroyed || p.state.Window != win || !p.Visible() {
			return
		}
		p.subs = append(p.subs,
			h.OnEvent([]string{host.EventResized}, host.Scope{}, func(host.Event) {
				p.onResized()
			}),
			h.OnEvent([]string{host.EventWindowClosed}, host.Scope{Window: win}, func(host.Event) {
				p.onClosed(win)
			}),
		)
	}, 0)
}

func (p *Popup) onResized() {
	if err := p.resize(); err != nil {
		p.report(opResize, err)
	}
}

// onClosed handles a window closed behind the popup's back.
func (p *Popup) onClosed(win host.Window) {
	if p.state.Window != win {
		return
	}
	p.state.Window = 0
	p.disposeSubs()
	p.EndDrag()
}
