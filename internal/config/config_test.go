package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() error = %v", err)
	}
	if cfg.Paths == nil {
		t.Fatal("DefaultConfig() returned nil Paths")
	}
	if cfg.Grid.ColumnWidth == 0 || cfg.Grid.AutoScrollInterval() != 50*time.Millisecond {
		t.Fatalf("DefaultConfig() returned invalid grid settings: %+v", cfg.Grid)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(PathsAt(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Grid != DefaultGridSettings() {
		t.Fatalf("expected defaults, got %+v", cfg.Grid)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	paths := PathsAt(t.TempDir())
	body := `{
  "grid": {"column_width": 20, "autoscroll_interval_ms": 0, "theme": "light"},
  "keymap": {"bindings": {"copy": ["ctrl+y"]}}
}`
	if err := os.WriteFile(paths.ConfigPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Grid.ColumnWidth != 20 || cfg.Grid.Theme != "light" {
		t.Fatalf("overrides not applied: %+v", cfg.Grid)
	}
	if cfg.Grid.AutoScrollIntervalMs != 50 {
		t.Fatalf("a zero interval should keep the default, got %d", cfg.Grid.AutoScrollIntervalMs)
	}
	if cfg.Grid.LogLevel != "info" {
		t.Fatalf("unset keys should keep defaults, got %q", cfg.Grid.LogLevel)
	}
	if keys, ok := cfg.KeyMap.BindingFor("Copy"); !ok || keys[0] != "ctrl+y" {
		t.Fatalf("BindingFor(Copy) = %v, %v", keys, ok)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	paths := PathsAt(t.TempDir())
	if err := os.WriteFile(paths.ConfigPath, []byte("{"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(paths); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSaveGridSettingsKeepsOtherKeys(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "nested"))
	if err := os.MkdirAll(paths.Home, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(paths.ConfigPath, []byte(`{"keymap":{"bindings":{"save":["ctrl+w"]}}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	cfg.Grid.ColumnWidth = 9
	if err := cfg.SaveGridSettings(); err != nil {
		t.Fatalf("SaveGridSettings() error = %v", err)
	}

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), `"ctrl+w"`) {
		t.Fatalf("keymap overrides were dropped: %s", data)
	}
	reloaded, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if reloaded.Grid.ColumnWidth != 9 {
		t.Fatalf("ColumnWidth = %d, want 9", reloaded.Grid.ColumnWidth)
	}
}

func TestSaveGridSettingsNullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := saveGridSettings(path, DefaultGridSettings()); err != nil {
		t.Fatalf("saveGridSettings() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), `"column_width": 12`) {
		t.Fatalf("grid settings missing: %s", data)
	}
}

func TestSaveGridSettingsKeepsMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"keymap": {"bindings": {"save": ["ctrl+w"]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := saveGridSettings(path, DefaultGridSettings()); err == nil {
		t.Fatal("expected a parse error")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != body {
		t.Fatalf("malformed config was overwritten: %s", data)
	}
}
