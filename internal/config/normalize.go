// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Bridge.Source = strings.ToLower(strings.TrimSpace(cfg.Bridge.Source))
	cfg.HTTP.Listen = strings.TrimSpace(cfg.HTTP.Listen)

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "warning" {
		cfg.Log.Level = "warn"
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	// Defaults already cover zero values from Load; nothing else to fix up.
}
