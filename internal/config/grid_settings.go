package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// GridSettings are the user's grid preferences.
type GridSettings struct {
	ColumnWidth          int    // default column width in cells
	AutoScrollIntervalMs int    // delay between auto-scroll steps
	LogLevel             string // debug, info, warn or error
	Theme                string // "dark" or "light"
}

// DefaultGridSettings returns the built-in preferences.
func DefaultGridSettings() GridSettings {
	return GridSettings{
		ColumnWidth:          12,
		AutoScrollIntervalMs: 50,
		LogLevel:             "info",
		Theme:                "dark",
	}
}

// AutoScrollInterval returns the auto-scroll step as a duration.
func (g GridSettings) AutoScrollInterval() time.Duration {
	return time.Duration(g.AutoScrollIntervalMs) * time.Millisecond
}

// merge applies the fields present in raw. Out-of-range numbers keep the
// current value.
func (g *GridSettings) merge(raw json.RawMessage) error {
	var user struct {
		ColumnWidth          *int    `json:"column_width"`
		AutoScrollIntervalMs *int    `json:"autoscroll_interval_ms"`
		LogLevel             *string `json:"log_level"`
		Theme                *string `json:"theme"`
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return err
	}
	if user.ColumnWidth != nil && *user.ColumnWidth >= 3 {
		g.ColumnWidth = *user.ColumnWidth
	}
	if user.AutoScrollIntervalMs != nil && *user.AutoScrollIntervalMs > 0 {
		g.AutoScrollIntervalMs = *user.AutoScrollIntervalMs
	}
	if user.LogLevel != nil {
		g.LogLevel = *user.LogLevel
	}
	if user.Theme != nil {
		g.Theme = *user.Theme
	}
	return nil
}

func saveGridSettings(path string, settings GridSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	payload := map[string]any{}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(existing, &payload); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if payload == nil {
			payload = map[string]any{}
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	grid, ok := payload["grid"].(map[string]any)
	if !ok || grid == nil {
		grid = map[string]any{}
	}
	grid["column_width"] = settings.ColumnWidth
	grid["autoscroll_interval_ms"] = settings.AutoScrollIntervalMs
	grid["log_level"] = settings.LogLevel
	grid["theme"] = settings.Theme
	payload["grid"] = grid

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveGridSettings persists grid settings to the config file, keeping any
// other keys already in it.
func (c *Config) SaveGridSettings() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return saveGridSettings(c.Paths.ConfigPath, c.Grid)
}
