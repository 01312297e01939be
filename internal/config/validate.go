// internal/config/validate.go
package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// BRIDGE
	// ------------------------------------------------------------

	if strings.TrimSpace(cfg.Bridge.Source) == "" {
		return fmt.Errorf("bridge.source must not be empty")
	}

	if cfg.Bridge.SettleMs < 0 {
		return fmt.Errorf("bridge.settle_ms must be >= 0, got %d", cfg.Bridge.SettleMs)
	}
	if cfg.Bridge.SettleMs > 5000 {
		return fmt.Errorf("bridge.settle_ms must be <= 5000, got %d", cfg.Bridge.SettleMs)
	}

	// ------------------------------------------------------------
	// HTTP
	// ------------------------------------------------------------

	if cfg.HTTP.Listen == "" {
		return fmt.Errorf("http.listen must not be empty")
	}
	if _, _, err := net.SplitHostPort(cfg.HTTP.Listen); err != nil {
		return fmt.Errorf("http.listen %q: %w", cfg.HTTP.Listen, err)
	}

	for name, v := range map[string]int{
		"http.read_timeout_ms":  cfg.HTTP.ReadTimeoutMs,
		"http.write_timeout_ms": cfg.HTTP.WriteTimeoutMs,
		"http.idle_timeout_ms":  cfg.HTTP.IdleTimeoutMs,
		"http.shutdown_secs":    cfg.HTTP.ShutdownSecs,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not supported", cfg.Log.Level)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q is not supported", cfg.Log.Format)
	}

	return nil
}
