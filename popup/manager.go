// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/manager.go
// Summary: Creates popups, owns the shared blend cache and the registry.
// Usage: m := popup.NewManager(surface, nil); p, _ := m.New("lsp", lines, popup.Request{})
// Notes: A nil config makes every namespace read config.Namespace(ns).

package popup

import (
	"fmt"
	"log"

	"github.com/framegrace/floatpane/config"
	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/host"
	"github.com/framegrace/floatpane/internal/blend"
	"github.com/framegrace/floatpane/internal/colormath"
	"github.com/framegrace/floatpane/queue"
	"github.com/framegrace/floatpane/registry"
)

// NotificationPreset names the preset used by Notification.
const NotificationPreset = "notification"

// Manager tracks every popup of one host.
type Manager struct {
	host    host.Surface
	cfg     config.Config
	cache   *blend.Cache
	popups  *registry.Registry[*Popup]
	presets *registry.Presets

	themeSub host.Subscription
}

// NewManager wires a manager to surface. Built-in presets are registered and
// the blend cache is cleared on every theme change.
func NewManager(surface host.Surface, cfg config.Config) *Manager {
	m := &Manager{
		host:    surface,
		cfg:     cfg,
		cache:   blend.NewCache(surface),
		popups:  registry.New[*Popup](),
		presets: registry.NewPresets(),
	}
	registry.RegisterBuiltIns(m.presets)
	m.themeSub = surface.OnEvent([]string{host.EventThemeChanged}, host.Scope{}, func(host.Event) {
		m.cache.Invalidate()
		log.Printf("Popup: Theme changed, blend cache cleared")
	})
	return m
}

// Host returns the surface the manager draws on.
func (m *Manager) Host() host.Surface { return m.host }

// Cache returns the shared blend cache.
func (m *Manager) Cache() *blend.Cache { return m.cache }

// Presets returns the preset catalogue.
func (m *Manager) Presets() *registry.Presets { return m.presets }

// ScanPresets loads user presets from dir, or from the config preset
// directory when dir is empty.
func (m *Manager) ScanPresets(dir string) error {
	if dir == "" {
		var err error
		if dir, err = config.PresetDir(); err != nil {
			return err
		}
	}
	return m.presets.Scan(dir)
}

func (m *Manager) configFor(ns string) config.Config {
	if m.cfg != nil {
		return m.cfg
	}
	return config.Namespace(ns)
}

// New creates a hidden popup holding lines in namespace ns.
func (m *Manager) New(ns string, lines []string, req Request, opts ...Option) (*Popup, error) {
	cfg := m.configFor(ns)
	full := MergeDefaults(req, DefaultsFromConfig(cfg))

	buf := m.host.CreateBuffer(lines)
	if !m.host.IsBufferValid(buf) {
		return nil, ErrInvalidContent
	}

	p := &Popup{m: m, cfg: cfg}
	for _, opt := range opts {
		opt(&p.opts)
	}
	p.state = State{
		Namespace: ns,
		Position:  deref(full.Position, geometry.EditorCenter),
		AnchorWin: deref(full.AnchorWin, 0),
		Request:   full,
		Buffer:    buf,
		Blend:     colormath.ClampPercent(deref(full.Blend, 0)),
		Theme:     deref(full.Theme, DefaultTheme),
	}
	if p.state.Theme == "" {
		p.state.Theme = DefaultTheme
	}
	p.sched = queue.New(m.host, p.invoke, p.reportItem)
	p.state.ID = m.popups.Register(ns, p)
	return p, nil
}

// FromPreset creates a popup from a named preset.
func (m *Manager) FromPreset(ns, name string, lines []string, opts ...Option) (*Popup, error) {
	preset := m.presets.Get(name)
	if preset == nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	base, err := RequestFromPreset(preset)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return m.New(ns, lines, base, opts...)
}

// Get returns the popup registered as id in ns.
func (m *Manager) Get(ns string, id int) (*Popup, bool) {
	return m.popups.Get(ns, id)
}

// Count returns the number of live popups in ns.
func (m *Manager) Count(ns string) int { return m.popups.Count(ns) }

// ForEach visits every popup of ns in creation order.
func (m *Manager) ForEach(ns string, fn func(p *Popup)) {
	m.popups.ForEachInNamespace(ns, func(_ int, p *Popup) { fn(p) })
}

// DestroyNamespace destroys every popup of ns immediately.
func (m *Manager) DestroyNamespace(ns string) {
	m.ForEach(ns, func(p *Popup) {
		if err := p.Now().Destroy(); err != nil {
			log.Printf("Popup: Failed to destroy %d: %v", p.ID(), err)
		}
	})
}

// Close destroys all popups and drops the theme subscription.
func (m *Manager) Close() {
	for _, ns := range m.popups.Namespaces() {
		m.DestroyNamespace(ns)
	}
	if m.themeSub != nil {
		m.themeSub.Dispose()
		m.themeSub = nil
	}
}

// notificationRequest is the preset plus the configured notification position.
func (m *Manager) notificationRequest(cfg config.Config) Request {
	var req Request
	if preset := m.presets.Get(NotificationPreset); preset != nil {
		if r, err := RequestFromPreset(preset); err == nil {
			req = r
		}
	}
	if pos, err := geometry.ParsePosition(cfg.GetString("notification", "position", "")); err == nil {
		req.Position = Ptr(pos)
	}
	return req
}
