// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	namespaces = nil
	loadErr = nil
}

func TestSystemDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if got := cfg.GetString("popup", "border", ""); got != "rounded" {
		t.Fatalf("expected popup.border rounded, got %q", got)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if disk.Section("fade") == nil {
		t.Fatalf("expected fade section to be present")
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	SetSystem(Config{"popup": Section{"border": "double"}})
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if got := disk.GetString("popup", "border", ""); got != "double" {
		t.Fatalf("expected border double, got %q", got)
	}
	if got := disk.GetString("popup", "theme", ""); got != "Float" {
		t.Fatalf("expected defaults re-applied, theme=%q", got)
	}
}

func TestNamespaceOverridesLayerOnSystem(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetStore()

	nsPath := filepath.Join(dir, "floatpane", "namespaces", "lsp", "config.json")
	if err := os.MkdirAll(filepath.Dir(nsPath), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(nsPath, []byte(`{"popup":{"border":"single"}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := Namespace("lsp")
	if got := cfg.GetString("popup", "border", ""); got != "single" {
		t.Fatalf("expected override single, got %q", got)
	}
	if got := cfg.GetString("popup", "theme", ""); got != "Float" {
		t.Fatalf("expected inherited theme Float, got %q", got)
	}
	if got := System().GetString("popup", "border", ""); got != "rounded" {
		t.Fatalf("system config mutated by overlay: %q", got)
	}

	if got := Namespace("missing").GetString("popup", "border", ""); got != "rounded" {
		t.Fatalf("missing namespace should inherit system, got %q", got)
	}
}

func TestSetNamespaceAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	SetNamespace("diag", Config{"fade": Section{"duration_ms": 250}})
	if got := Namespace("diag").GetDuration("fade", "duration_ms", 0); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", got)
	}
	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := Namespace("diag").GetDuration("fade", "duration_ms", 0); got != time.Second {
		t.Fatalf("expected reload to drop override, got %v", got)
	}
}

func TestTypedGetters(t *testing.T) {
	cfg := Config{
		"s": map[string]interface{}{
			"f":    1.5,
			"i":    float64(7),
			"istr": "9",
			"b":    "true",
			"d":    float64(40),
			"neg":  -1,
		},
	}
	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"float", cfg.GetFloat("s", "f", 0), 1.5},
		{"int from float64", cfg.GetInt("s", "i", 0), 7},
		{"int from string", cfg.GetInt("s", "istr", 0), 9},
		{"bool from string", cfg.GetBool("s", "b", false), true},
		{"duration", cfg.GetDuration("s", "d", 0), 40 * time.Millisecond},
		{"negative duration default", cfg.GetDuration("s", "neg", time.Second), time.Second},
		{"missing section", cfg.GetString("nope", "x", "dflt"), "dflt"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestOverlayDoesNotMutateInputs(t *testing.T) {
	base := Config{"popup": Section{"border": "rounded", "zindex": 50}}
	over := Config{"popup": map[string]interface{}{"border": "none"}, "extra": "x"}
	out := Overlay(base, over)
	if out.GetString("popup", "border", "") != "none" || out.GetInt("popup", "zindex", 0) != 50 {
		t.Fatalf("unexpected overlay result: %#v", out)
	}
	if base.GetString("popup", "border", "") != "rounded" {
		t.Fatalf("base mutated")
	}
	if out["extra"] != "x" {
		t.Fatalf("expected non-section key copied")
	}
}
