// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("viewer", Section{
		"upper_fraction":     0.6,
		"lower_fraction":     0.4,
		"hysteresis":         0.05,
		"lock_timeout_ms":    1000,
		"frame_interval_ms":  16,
		"scroll_duration_ms": 300,
		"scroll_easing":      "smoothstep",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "storefront":
		cfg.RegisterDefaults("carousel", Section{
			"items_per_view": 2,
		})
		cfg.RegisterDefaults("toast", Section{
			"duration_ms": 2500,
		})
		cfg.RegisterDefaults("theme", Section{})
	}
}
