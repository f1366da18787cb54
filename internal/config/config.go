package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	Registry RegistryConfig `yaml:"registry" envPrefix:"REGISTRY_"`
	Index    IndexConfig    `yaml:"index" envPrefix:"INDEX_"`
	Logging  LoggingConfig  `yaml:"logging" envPrefix:"LOG_"`
	Data     DataConfig     `yaml:"data" envPrefix:"DATA_"`
}

// RegistryConfig sizes the profile hash table.
type RegistryConfig struct {
	InitialBuckets int `yaml:"initial_buckets" env:"INITIAL_BUCKETS"`
}

// IndexConfig sizes the connectivity index.
type IndexConfig struct {
	InitialCapacity int `yaml:"initial_capacity" env:"INITIAL_CAPACITY"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // text|json
}

// DataConfig names the inputs loaded at startup.
type DataConfig struct {
	ProfilesPath    string `yaml:"profiles" env:"PROFILES"`
	ConnectionsPath string `yaml:"connections" env:"CONNECTIONS"`
	DBPath          string `yaml:"db" env:"DB"`
}

const (
	// EnvPrefix is prepended to every environment variable name
	EnvPrefix = "CONECTA_"

	defaultBuckets       = 16
	defaultCapacity      = 100
	defaultLoggingLevel  = "warn"
	defaultLoggingFormat = "text"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Registry: RegistryConfig{InitialBuckets: defaultBuckets},
		Index:    IndexConfig{InitialCapacity: defaultCapacity},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load starts from Default, applies the YAML file at path (if path is non-empty)
// and then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if c.Registry.InitialBuckets <= 0 {
		errs = append(errs, fmt.Errorf("registry.initial_buckets must be positive, got %d", c.Registry.InitialBuckets))
	}
	if c.Index.InitialCapacity <= 0 {
		errs = append(errs, fmt.Errorf("index.initial_capacity must be positive, got %d", c.Index.InitialCapacity))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
