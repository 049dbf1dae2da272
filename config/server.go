package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds options for the quickfilter HTTP server.
type ServerConfig struct {
	Port         string `toml:"port"`
	DataDir      string `toml:"data_dir"`
	LogLevel     string `toml:"log_level"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// DefaultServerConfig returns the builtin server defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         "8080",
		DataDir:      "./quickfilter_data",
		LogLevel:     "info",
		MaxBodyBytes: 10 << 20,
	}
}

// LoadServerConfig reads a TOML config file and overlays it on the builtin
// defaults. A missing file is not an error: the defaults are returned as-is.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}
	return cfg, nil
}
