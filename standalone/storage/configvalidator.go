package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// detectPresentKeys unmarshals JSON bytes to determine which config keys
// are explicitly present in the file. Returns a flat set of dotted-path keys
// (e.g., "audio.volume", "window.width").
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	if _, ok := raw["version"]; ok {
		present["version"] = true
	}

	if audioRaw, ok := raw["audio"]; ok {
		var audio map[string]json.RawMessage
		if json.Unmarshal(audioRaw, &audio) == nil {
			if _, ok := audio["volume"]; ok {
				present["audio.volume"] = true
			}
		}
	}

	if windowRaw, ok := raw["window"]; ok {
		var window map[string]json.RawMessage
		if json.Unmarshal(windowRaw, &window) == nil {
			if _, ok := window["width"]; ok {
				present["window.width"] = true
			}
			if _, ok := window["height"]; ok {
				present["window.height"] = true
			}
		}
	}

	return present
}

// ApplyMissingDefaults fills in fields that were absent from the file.
// A present zero value, such as a volume of 0, is kept.
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	defaults := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = defaults.Version
	}
	if !presentKeys["audio.volume"] {
		config.Audio.Volume = defaults.Audio.Volume
	}
	if !presentKeys["window.width"] {
		config.Window.Width = defaults.Window.Width
	}
	if !presentKeys["window.height"] {
		config.Window.Height = defaults.Window.Height
	}
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
// validOptions maps each core option key to its allowed values.
func ValidateConfig(config *Config, validOptions map[string][]string) []string {
	var errors []string

	if config.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", config.Version))
	}

	if config.Audio.Volume < 0 || config.Audio.Volume > 2.0 {
		errors = append(errors, fmt.Sprintf("audio.volume: %.2f (valid: 0.0-2.0)", config.Audio.Volume))
	}

	if config.Window.Width < MinWindowWidth {
		errors = append(errors, fmt.Sprintf("window.width: %d (valid: >= %d)", config.Window.Width, MinWindowWidth))
	}

	if config.Window.Height < MinWindowHeight {
		errors = append(errors, fmt.Sprintf("window.height: %d (valid: >= %d)", config.Window.Height, MinWindowHeight))
	}

	keys := make([]string, 0, len(config.CoreOptions))
	for k := range config.CoreOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values, known := validOptions[k]
		if !known {
			errors = append(errors, fmt.Sprintf("coreOptions.%s: unknown option", k))
			continue
		}
		if !slices.Contains(values, config.CoreOptions[k]) {
			errors = append(errors, fmt.Sprintf("coreOptions.%s: %q (valid: %v)", k, config.CoreOptions[k], values))
		}
	}

	return errors
}

// CorrectConfig resets any invalid fields to their defaults from DefaultConfig().
// Invalid or unknown core options are dropped so the core uses its default.
func CorrectConfig(config *Config, validOptions map[string][]string) *Config {
	defaults := DefaultConfig()

	if config.Version != 1 {
		config.Version = defaults.Version
	}

	if config.Audio.Volume < 0 || config.Audio.Volume > 2.0 {
		config.Audio.Volume = defaults.Audio.Volume
	}

	if config.Window.Width < MinWindowWidth {
		config.Window.Width = defaults.Window.Width
	}

	if config.Window.Height < MinWindowHeight {
		config.Window.Height = defaults.Window.Height
	}

	for k, v := range config.CoreOptions {
		if values, known := validOptions[k]; !known || !slices.Contains(values, v) {
			delete(config.CoreOptions, k)
		}
	}

	return config
}
