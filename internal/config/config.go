// Package config loads service configuration with koanf, layered as
// defaults, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/group-trip-engine/config.yaml",
}

type ServerConfig struct {
	Address string `koanf:"address"`
}

type StorageConfig struct {
	Path        string `koanf:"path"`
	CatalogPath string `koanf:"catalog_path"`
	PhrasesPath string `koanf:"phrases_path"`
	SeedOnEmpty bool   `koanf:"seed_on_empty"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Logging LoggingConfig `koanf:"logging"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Storage: StorageConfig{
			Path:        "data/trips.db",
			CatalogPath: "data/destinations.json",
			PhrasesPath: "",
			SeedOnEmpty: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the effective configuration: defaults, overridden by the first
// config file found, overridden by environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps environment variable names to config paths. Unmapped
// variables are skipped so ambient environment noise never reaches the
// config.
func envTransform(key string) string {
	mappings := map[string]string{
		"api_address":   "server.address",
		"db_path":       "storage.path",
		"catalog_path":  "storage.catalog_path",
		"phrases_path":  "storage.phrases_path",
		"seed_on_empty": "storage.seed_on_empty",
		"log_level":     "logging.level",
		"log_format":    "logging.format",
	}
	if mapped, ok := mappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
