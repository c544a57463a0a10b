// Package config provides the configuration system for skimread.
//
// Configuration is layered, higher layers overriding lower ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment (SKIMREAD_*)│  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file (toml/yaml) │  ← ~/.config/skimread/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Layers are merged as plain maps (see package loader) and decoded once into
// a Config, so a file only needs to name the settings it changes:
//
//	[log]
//	level = "debug"
//	file = "/tmp/skimread.log"
//
//	[keys]
//	nextPage = ["a", "space", "pgdn"]
//	quit = ["esc", "ctrl+c"]
//
//	[theme]
//	matchBackground = "#ffd700"
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources
//   - watcher: fsnotify-based change detection for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	keys, err := cfg.KeyMap()
package config
