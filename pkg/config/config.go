/*
Package config manages TOML config for prefixserve.
*/
package config

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prefixserve/prefixserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Limiter LimiterConfig `toml:"limiter"`
	Dict    DictConfig    `toml:"dict"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MinQuery     int    `toml:"min_query"`
	MaxQuery     int    `toml:"max_query"`
	DefaultLimit int    `toml:"default_limit"`
	MaxLimit     int    `toml:"max_limit"`
	EnableFilter bool   `toml:"enable_filter"`
}

// LimiterConfig holds request throttling options.
type LimiterConfig struct {
	WindowMs    int `toml:"window_ms"`
	MaxRequests int `toml:"max_requests"`
}

// Window converts the configured window length to a duration.
func (lc LimiterConfig) Window() time.Duration {
	return time.Duration(lc.WindowMs) * time.Millisecond
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path string `toml:"path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8470",
			MinQuery:     2,
			MaxQuery:     60,
			DefaultLimit: 100,
			MaxLimit:     100,
			EnableFilter: true,
		},
		Limiter: LimiterConfig{
			WindowMs:    60000,
			MaxRequests: 100,
		},
		Dict: DictConfig{
			Path: "data/words.txt",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
