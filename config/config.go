// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System + namespace configuration store for floatpane.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "floatpane.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu         sync.RWMutex
	once       sync.Once
	system     Config
	namespaces map[string]Config
	loadErr    error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (floatpane.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Namespace returns the system configuration overlaid with the overrides in
// namespaces/<ns>/config.json. Missing override files are not an error.
func Namespace(ns string) Config {
	if ns == "" {
		return System()
	}
	once.Do(initStore)

	mu.RLock()
	cfg, ok := namespaces[ns]
	base := system
	mu.RUnlock()
	if ok {
		return Overlay(base, cfg)
	}

	mu.Lock()
	defer mu.Unlock()
	if cfg, ok := namespaces[ns]; ok {
		return Overlay(system, cfg)
	}
	loaded, err := loadNamespaceLocked(ns)
	if err != nil {
		log.Printf("Config: Failed to load namespace %q config: %v", ns, err)
		loaded = make(Config)
	}
	namespaces[ns] = loaded
	return Overlay(system, loaded)
}

// Reload refreshes the system config and drops cached namespace overrides.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	namespaces = make(map[string]Config)
	return loadErr
}

// SaveSystem persists the current system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SetSystem replaces the in-memory system config; defaults are re-applied.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
	applySystemDefaults(system)
}

// SetNamespace replaces the in-memory overrides of a namespace.
func SetNamespace(ns string, cfg Config) {
	if ns == "" {
		return
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	namespaces[ns] = Clone(cfg)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	namespaces = make(map[string]Config)
	loadErr = loadSystemLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
