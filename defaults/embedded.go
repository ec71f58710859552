// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Default configuration files compiled into the binary.

package defaults

import (
	"embed"
	"errors"
	"io/fs"
	"path"
)

//go:embed texelstore.json apps/*/config.json
var files embed.FS

// SystemConfig returns the embedded texelstore.json.
func SystemConfig() ([]byte, error) {
	return files.ReadFile("texelstore.json")
}

// AppConfig returns the embedded apps/<app>/config.json. Apps without
// defaults report fs.ErrNotExist.
func AppConfig(app string) ([]byte, error) {
	if app == "" {
		return nil, errors.New("defaults: app name is required")
	}
	return files.ReadFile(path.Join("apps", app, "config.json"))
}

// Apps lists the apps that ship embedded defaults.
func Apps() []string {
	entries, err := fs.ReadDir(files, "apps")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
