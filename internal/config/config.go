// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Bridge BridgeConfig `koanf:"bridge"`
	HTTP   HTTPConfig   `koanf:"http"`
	Log    LogConfig    `koanf:"log"`
}

// ---- BRIDGE ----

type BridgeConfig struct {
	// Source selects the telemetry source implementation.
	Source string `koanf:"source"`

	// SettleMs is how long the connection guard waits after a
	// reconnection attempt before re-checking.
	SettleMs int `koanf:"settle_ms"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen         string `koanf:"listen"`
	ReadTimeoutMs  int    `koanf:"read_timeout_ms"`
	WriteTimeoutMs int    `koanf:"write_timeout_ms"`
	IdleTimeoutMs  int    `koanf:"idle_timeout_ms"`
	ShutdownSecs   int    `koanf:"shutdown_secs"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text, json
}

// Load reads configuration from defaults, an optional YAML file and
// BRIDGE_* environment variables, in that order of precedence
// (BRIDGE_HTTP_LISTEN -> http.listen).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("bridge.source", "sim")
	k.Set("bridge.settle_ms", 100)
	k.Set("http.listen", "127.0.0.1:5555")
	k.Set("http.read_timeout_ms", 5000)
	k.Set("http.write_timeout_ms", 10000)
	k.Set("http.idle_timeout_ms", 60000)
	k.Set("http.shutdown_secs", 5)
	k.Set("log.level", "info")
	k.Set("log.format", "text")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("BRIDGE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "BRIDGE_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	return &cfg, nil
}
