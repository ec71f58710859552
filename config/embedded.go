// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parsed defaults from the JSON files embedded in defaults/.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/framegrace/texelstore/defaults"
)

var embeddedCache sync.Map // name -> Config; "" is the system config

// embedded returns a private copy of the embedded defaults for app name, or
// the system defaults when name is empty. Apps without an embedded file get
// nil.
func embedded(name string) Config {
	if cached, ok := embeddedCache.Load(name); ok {
		return Clone(cached.(Config))
	}

	var data []byte
	var err error
	if name == "" {
		data, err = defaults.SystemConfig()
	} else {
		data, err = defaults.AppConfig(name)
	}
	if err != nil {
		return nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: Embedded defaults for %q are invalid: %v", name, err)
		return nil
	}
	embeddedCache.Store(name, cfg)
	return Clone(cfg)
}
