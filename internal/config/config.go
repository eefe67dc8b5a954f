package config

import (
	"encoding/json"
	"os"
	"strings"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// Config holds the application configuration
type Config struct {
	Paths  *Paths
	Grid   GridSettings
	KeyMap KeyMapConfig
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return &Config{
		Paths: paths,
		Grid:  DefaultGridSettings(),
	}, nil
}

// Load loads config overrides from ~/.cellgrid/config.json if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom loads the config file named by paths over the defaults.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := &Config{Paths: paths, Grid: DefaultGridSettings()}

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user struct {
		Grid   json.RawMessage `json:"grid,omitempty"`
		KeyMap KeyMapConfig    `json:"keymap,omitempty"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	if len(user.Grid) > 0 {
		if err := cfg.Grid.merge(user.Grid); err != nil {
			return nil, err
		}
	}
	if len(user.KeyMap.Bindings) > 0 {
		cfg.KeyMap = user.KeyMap
	}
	return cfg, nil
}
