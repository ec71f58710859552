// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load logic for the config store.
// Missing or empty files are seeded from the embedded defaults and written back.

package config

import "log"

func (s *store) loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		s.system = make(Config)
		applySystemDefaults(s.system)
		return err
	}
	s.system, err = loadFile(path, "system", func() Config { return embedded("") }, applySystemDefaults)
	return err
}

func loadApp(name string) (Config, error) {
	path, err := appConfigPath(name)
	if err != nil {
		return nil, err
	}
	return loadFile(path, "app "+name,
		func() Config { return embedded(name) },
		func(cfg Config) { applyAppDefaults(name, cfg) })
}

// loadFile reads path, seeds it from seed when it is missing or empty, and
// fills in any keys the file leaves out. A malformed file is never
// overwritten.
func loadFile(path, what string, seed func() Config, apply func(Config)) (Config, error) {
	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read %s config %s: %v", what, path, readErr)
		cfg = make(Config)
	}
	if exists && len(cfg) > 0 {
		apply(cfg)
		log.Printf("Config: Loaded %s config from %s", what, path)
		return cfg, nil
	}

	def := seed()
	if def == nil {
		if cfg == nil {
			cfg = make(Config)
		}
		apply(cfg)
		return cfg, readErr
	}
	apply(def)
	if readErr == nil {
		if err := writeConfig(path, def); err != nil {
			log.Printf("Config: Failed to write default %s config: %v", what, err)
			return def, err
		}
	}
	return def, readErr
}
