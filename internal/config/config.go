// Package config loads engine configuration from a YAML or JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/stagewalk/stagewalk/pkg/playback"
	"gopkg.in/yaml.v3"
)

// RedisConfig holds the connection settings for the snapshot store. An empty
// Addr disables Redis persistence and snapshots stay in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr" mapstructure:"addr"`
	Password string `yaml:"password" json:"password" mapstructure:"password"`
	DB       int    `yaml:"db" json:"db" mapstructure:"db"`
}

// Config represents the full engine configuration.
type Config struct {
	Addr      string          `yaml:"addr" json:"addr" mapstructure:"addr"`
	Container string          `yaml:"container" json:"container" mapstructure:"container"`
	LogLevel  string          `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
	Redis     RedisConfig     `yaml:"redis" json:"redis" mapstructure:"redis"`
	Timing    playback.Timing `yaml:"timing" json:"timing" mapstructure:"timing"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Addr:      ":8080",
		Container: "main",
		LogLevel:  "info",
		Timing:    playback.DefaultTiming(),
	}
}

// Load reads a configuration file (YAML or JSON) and applies STAGEWALK_*
// environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     cfg,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STAGEWALK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STAGEWALK_CONTAINER"); v != "" {
		cfg.Container = v
	}
	if v := os.Getenv("STAGEWALK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STAGEWALK_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("STAGEWALK_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("STAGEWALK_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}
