// Package config provides the settings of the prompt engine.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by the CLI)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← GLYPHPROMPT_*
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← glyphprompt.toml / glyphprompt.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A settings file holds the tag delimiters, the category priority, the sprite
// formatter, stick detection, platform overrides, the device prompt profiles
// and the action maps. Action maps may also come from .inputactions JSON files
// listed under input_actions; relative paths resolve against the directory of
// the settings file.
//
// # Sub-packages
//
//   - loader: TOML and YAML decoding, parse errors, environment overrides
//   - watcher: fsnotify based live reload
//
// # Basic Usage
//
//	bundle, err := config.Load("glyphprompt.toml")
//	if errors.Is(err, config.ErrConfigurationMissing) {
//	    // no settings: the engine reports SETTINGS_MISSING
//	}
//
// The engine consumes a Provider; FileProvider reads a settings file on every
// Load and StaticProvider hands out a fixed bundle.
package config
