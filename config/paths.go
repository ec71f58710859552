// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Locations of the texelstore config files under the user config dir.

package config

import (
	"errors"
	"os"
	"path/filepath"
)

var errNoAppName = errors.New("config: app name is required")

// configPath joins parts below $XDG_CONFIG_HOME/texelstore (or the platform
// equivalent reported by os.UserConfigDir).
func configPath(parts ...string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir, "texelstore"}, parts...)...), nil
}

func systemConfigPath() (string, error) {
	return configPath(systemConfigName)
}

func appConfigPath(app string) (string, error) {
	if app == "" {
		return "", errNoAppName
	}
	return configPath("apps", app, "config.json")
}
