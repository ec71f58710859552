// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System + app configuration store for texelstore.
// Usage: config.System() for viewer settings, config.App("storefront") for the
// storefront app. Both are loaded lazily on first use and cached.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "texelstore.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// store caches the system config and every app config read so far.
// A nil apps map means nothing has been loaded yet.
type store struct {
	mu     sync.RWMutex
	system Config
	apps   map[string]Config
	err    error
}

var std = &store{}

// ready loads the system config the first time the store is used.
func (s *store) ready() {
	s.mu.RLock()
	loaded := s.apps != nil
	s.mu.RUnlock()
	if loaded {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apps == nil {
		s.apps = make(map[string]Config)
		s.err = s.loadSystemLocked()
	}
}

// Err returns the most recent system config load error.
func Err() error {
	std.ready()
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.err
}

// System returns the system configuration (texelstore.json).
func System() Config {
	std.ready()
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.system
}

// App returns the config for a named app (apps/<app>/config.json). A file
// that cannot be read yields the built-in defaults.
func App(name string) Config {
	if name == "" {
		return nil
	}
	std.ready()

	std.mu.RLock()
	cfg, ok := std.apps[name]
	std.mu.RUnlock()
	if ok {
		return cfg
	}

	std.mu.Lock()
	defer std.mu.Unlock()
	if cfg, ok := std.apps[name]; ok {
		return cfg
	}
	cfg, err := loadApp(name)
	if err != nil {
		log.Printf("Config: Failed to load app %q config: %v", name, err)
		cfg = make(Config)
		applyAppDefaults(name, cfg)
	}
	std.apps[name] = cfg
	return cfg
}

// Reload re-reads the system config and every cached app config.
func Reload() error {
	std.ready()
	std.mu.Lock()
	defer std.mu.Unlock()

	std.err = std.loadSystemLocked()
	for name := range std.apps {
		cfg, err := loadApp(name)
		if err != nil {
			log.Printf("Config: Failed to reload app %q config: %v", name, err)
			continue
		}
		std.apps[name] = cfg
	}
	return std.err
}

// ReloadSystem re-reads the system config.
func ReloadSystem() error {
	std.ready()
	std.mu.Lock()
	defer std.mu.Unlock()
	std.err = std.loadSystemLocked()
	return std.err
}

// ReloadApp re-reads a single app config.
func ReloadApp(name string) error {
	if name == "" {
		return nil
	}
	std.ready()
	std.mu.Lock()
	defer std.mu.Unlock()
	cfg, err := loadApp(name)
	if err != nil {
		return err
	}
	std.apps[name] = cfg
	return nil
}

// SaveSystem writes the in-memory system config to disk.
func SaveSystem() error {
	std.ready()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	std.mu.RLock()
	defer std.mu.RUnlock()
	return writeConfig(path, std.system)
}

// SaveApp writes a named app config to disk, creating it from defaults when
// it was never loaded.
func SaveApp(name string) error {
	if name == "" {
		return nil
	}
	std.ready()
	path, err := appConfigPath(name)
	if err != nil {
		return err
	}
	std.mu.Lock()
	defer std.mu.Unlock()
	cfg := std.apps[name]
	if cfg == nil {
		cfg = make(Config)
		applyAppDefaults(name, cfg)
		std.apps[name] = cfg
	}
	return writeConfig(path, cfg)
}

// readConfig returns exists=false without error when path is missing.
func readConfig(path string) (cfg Config, exists bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
