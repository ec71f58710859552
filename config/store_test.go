// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/framegrace/texelstore/defaults"
	"github.com/framegrace/texelstore/texelui/panelview"
)

func resetStore() {
	std = &store{}
}

func TestSystemDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if got := cfg.GetFloat("viewer", "upper_fraction", 0); got != 0.6 {
		t.Fatalf("upper_fraction = %v, want 0.6", got)
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
	if disk.Section("viewer") == nil {
		t.Fatalf("expected viewer section to be present")
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	System().Section("viewer")["hysteresis"] = 0.1
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
	if got := disk.GetFloat("viewer", "hysteresis", 0); got != 0.1 {
		t.Fatalf("hysteresis = %v, want 0.1", got)
	}
}

func TestPartialFileKeepsValuesAndFillsDefaults(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	path := filepath.Join(root, "texelstore", systemConfigName)
	if err := writeConfig(path, Config{
		"viewer": map[string]interface{}{"lock_timeout_ms": 250},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := System()
	if got := cfg.GetInt("viewer", "lock_timeout_ms", 0); got != 250 {
		t.Errorf("lock_timeout_ms = %d, want 250", got)
	}
	if got := cfg.GetFloat("viewer", "lower_fraction", 0); got != 0.4 {
		t.Errorf("lower_fraction = %v, want 0.4 from defaults", got)
	}
	if err := Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestBrokenFileReportsError(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	path := filepath.Join(root, "texelstore", systemConfigName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := System()
	if Err() == nil {
		t.Error("expected a load error for malformed JSON")
	}
	if got := cfg.GetFloat("viewer", "upper_fraction", 0); got != 0.6 {
		t.Errorf("upper_fraction = %v, want default 0.6", got)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Error("malformed file must not be overwritten")
	}
}

func TestAppDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := App("storefront")
	if cfg.Section("toast") == nil {
		t.Fatalf("expected toast section to be present")
	}

	path, err := appConfigPath("storefront")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected app config to be written: %v", err)
	}
}

func TestSaveAppWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	App("storefront").Section("carousel")["items_per_view"] = 3
	if err := SaveApp("storefront"); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}
	if err := ReloadApp("storefront"); err != nil {
		t.Fatalf("ReloadApp: %v", err)
	}
	if got := App("storefront").GetInt("carousel", "items_per_view", 0); got != 3 {
		t.Fatalf("items_per_view = %d, want 3", got)
	}
}

func TestReloadPicksUpDiskChanges(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	if got := System().GetFloat("viewer", "hysteresis", 0); got != 0.05 {
		t.Fatalf("hysteresis = %v, want 0.05", got)
	}
	if got := App("storefront").GetInt("carousel", "items_per_view", 0); got != 2 {
		t.Fatalf("items_per_view = %d, want 2", got)
	}

	sysPath := filepath.Join(root, "texelstore", systemConfigName)
	if err := writeConfig(sysPath, Config{
		"viewer": map[string]interface{}{"hysteresis": 0.2},
	}); err != nil {
		t.Fatalf("write system config: %v", err)
	}
	appPath, err := appConfigPath("storefront")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	if err := writeConfig(appPath, Config{
		"carousel": map[string]interface{}{"items_per_view": 4},
	}); err != nil {
		t.Fatalf("write app config: %v", err)
	}

	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := System().GetFloat("viewer", "hysteresis", 0); got != 0.2 {
		t.Errorf("hysteresis = %v after Reload, want 0.2", got)
	}
	if got := System().GetFloat("viewer", "upper_fraction", 0); got != 0.6 {
		t.Errorf("upper_fraction = %v after Reload, want default 0.6", got)
	}
	if got := App("storefront").GetInt("carousel", "items_per_view", 0); got != 4 {
		t.Errorf("items_per_view = %d after Reload, want 4", got)
	}
}

func TestReloadSystemReportsBrokenFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()
	if err := Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	path := filepath.Join(root, "texelstore", systemConfigName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ReloadSystem(); err == nil {
		t.Fatal("ReloadSystem should report malformed JSON")
	}
	if Err() == nil {
		t.Error("Err() should keep the reload error")
	}
	if got := System().GetFloat("viewer", "lower_fraction", 0); got != 0.4 {
		t.Errorf("lower_fraction = %v, want default 0.4", got)
	}

	if err := writeConfig(path, Config{"viewer": map[string]interface{}{"lower_fraction": 0.3}}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := ReloadSystem(); err != nil {
		t.Fatalf("ReloadSystem: %v", err)
	}
	if got := System().GetFloat("viewer", "lower_fraction", 0); got != 0.3 {
		t.Errorf("lower_fraction = %v, want 0.3", got)
	}
}

func TestViewerSettings(t *testing.T) {
	s := ViewerSettings(Config{
		"viewer": map[string]interface{}{
			"upper_fraction":     0.7,
			"lower_fraction":     0.3,
			"hysteresis":         0.0,
			"lock_timeout_ms":    500,
			"scroll_duration_ms": 0,
		},
	})
	want := panelview.Band{Upper: 0.7, Lower: 0.3}
	if s.Band != want {
		t.Errorf("Band = %+v, want %+v", s.Band, want)
	}
	if s.LockTimeout != 500*time.Millisecond {
		t.Errorf("LockTimeout = %v, want 500ms", s.LockTimeout)
	}
	if s.FrameInterval != panelview.DefaultFrameInterval {
		t.Errorf("FrameInterval = %v, want default", s.FrameInterval)
	}
	if s.ScrollDuration != 0 {
		t.Errorf("ScrollDuration = %v, want 0 (instant)", s.ScrollDuration)
	}
	if got := s.Controller().LockTimeout; got != 500*time.Millisecond {
		t.Errorf("Controller().LockTimeout = %v", got)
	}

	empty := ViewerSettings(nil)
	if empty.Band != panelview.DefaultBand() || empty.LockTimeout != panelview.DefaultLockTimeout {
		t.Errorf("nil config settings = %+v, want defaults", empty)
	}
}

func TestStorefrontSettings(t *testing.T) {
	s := StorefrontSettings(Config{
		"carousel": map[string]interface{}{"items_per_view": 0},
	})
	if s.ItemsPerView != 1 {
		t.Errorf("ItemsPerView = %d, want 1", s.ItemsPerView)
	}
	if s.ToastDuration != 2500*time.Millisecond {
		t.Errorf("ToastDuration = %v, want 2.5s", s.ToastDuration)
	}
	if s.Theme != nil {
		t.Errorf("Theme = %v, want nil without a theme section", s.Theme)
	}

	themed := StorefrontSettings(Config{
		"theme": map[string]interface{}{"header.bg": "navy", "toast.fg": 3.0, "accent.fg": ""},
	})
	if diff := cmp.Diff(map[string]string{"header.bg": "navy"}, themed.Theme); diff != "" {
		t.Errorf("Theme mismatch (-want +got):\n%s", diff)
	}
}

func TestTypedGetters(t *testing.T) {
	cfg := Config{
		"s": map[string]interface{}{
			"f": "1.5", "i": 3.0, "b": "true", "str": "x", "n": json.Number("7"),
		},
	}
	if got := cfg.GetFloat("s", "f", 0); got != 1.5 {
		t.Errorf("GetFloat = %v, want 1.5", got)
	}
	if got := cfg.GetInt("s", "i", 0); got != 3 {
		t.Errorf("GetInt = %d, want 3", got)
	}
	if got := cfg.GetInt("s", "n", 0); got != 7 {
		t.Errorf("GetInt(json.Number) = %d, want 7", got)
	}
	if !cfg.GetBool("s", "b", false) {
		t.Error("GetBool = false, want true")
	}
	if got := cfg.GetString("s", "missing", "d"); got != "d" {
		t.Errorf("GetString default = %q, want d", got)
	}

	clone := Clone(cfg)
	clone.Section("s")["str"] = "changed"
	if cfg.GetString("s", "str", "") != "x" {
		t.Error("Clone shares sections with the original")
	}
}

func TestGetMillisAndDeepClone(t *testing.T) {
	cfg := Config{
		"t": map[string]interface{}{"ok": 250.0, "neg": -5, "str": "40"},
		"nested": map[string]interface{}{
			"inner": map[string]interface{}{"k": "v"},
			"list":  []interface{}{"a"},
		},
	}
	tests := []struct {
		key  string
		want time.Duration
	}{
		{"ok", 250 * time.Millisecond},
		{"neg", time.Second},
		{"str", 40 * time.Millisecond},
		{"missing", time.Second},
	}
	for _, tt := range tests {
		if got := cfg.GetMillis("t", tt.key, time.Second); got != tt.want {
			t.Errorf("GetMillis(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}

	clone := Clone(cfg)
	clone.Section("nested")["inner"].(map[string]interface{})["k"] = "changed"
	clone.Section("nested")["list"].([]interface{})[0] = "b"
	if diff := cmp.Diff(map[string]interface{}{"k": "v"}, cfg.Section("nested")["inner"]); diff != "" {
		t.Errorf("nested map shared with clone (-want +got):\n%s", diff)
	}
	if got := cfg.Section("nested")["list"].([]interface{})[0]; got != "a" {
		t.Errorf("list element = %v, want a", got)
	}
}

func TestEmbeddedDefaultsParse(t *testing.T) {
	if embedded("") == nil {
		t.Fatal("embedded system defaults missing or invalid")
	}
	apps := defaults.Apps()
	if len(apps) == 0 {
		t.Fatal("no embedded app defaults")
	}
	for _, name := range apps {
		if embedded(name) == nil {
			t.Errorf("embedded defaults for %q missing or invalid", name)
		}
	}
	if embedded("no-such-app") != nil {
		t.Error("unknown app should have no embedded defaults")
	}

	a, b := embedded(""), embedded("")
	a.Section("viewer")["hysteresis"] = 0.5
	if b.GetFloat("viewer", "hysteresis", 0) != 0.05 {
		t.Error("embedded copies share state")
	}
}
