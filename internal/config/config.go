package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for liftlog.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Filters FiltersConfig `mapstructure:"filters"`
	Logging LoggingConfig `mapstructure:"logging"`
	API     APIConfig     `mapstructure:"api"`
}

// SourceConfig selects where the workout export is read from.
// URL takes precedence over Path when both are set.
type SourceConfig struct {
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

// FiltersConfig controls which normalized records reach the engine.
// ExcludeExercises is matched as a case-insensitive substring against the
// exercise name; the defaults keep cardio out of lifting metrics.
type FiltersConfig struct {
	ExcludeExercises []string `mapstructure:"exclude_exercises"`
	ExcludeWarmups   bool     `mapstructure:"exclude_warmups"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("source.path", "WorkoutExport.csv")
	v.SetDefault("source.url", "")

	v.SetDefault("filters.exclude_exercises", []string{"Stair Stepper", "Cycling", "Running"})
	v.SetDefault("filters.exclude_warmups", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".liftlog"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("LIFTLOG")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("source.path", "LIFTLOG_SOURCE_PATH")
	_ = v.BindEnv("source.url", "LIFTLOG_SOURCE_URL")
	_ = v.BindEnv("api.listen_addr", "LIFTLOG_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "LIFTLOG_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK — use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Source.Path == "" && c.Source.URL == "" {
		return fmt.Errorf("source.path or source.url must be set")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
