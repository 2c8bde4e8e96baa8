package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		Source: SourceConfig{
			Path: "WorkoutExport.csv",
		},
		Filters: FiltersConfig{
			ExcludeExercises: []string{"Stair Stepper"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		API: APIConfig{
			ListenAddr: ":8080",
		},
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validCfg().Validate())
}

func TestValidateNoSource(t *testing.T) {
	cfg := validCfg()
	cfg.Source.Path = ""
	cfg.Source.URL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.path or source.url")
}

func TestValidateURLOnlyIsFine(t *testing.T) {
	cfg := validCfg()
	cfg.Source.Path = ""
	cfg.Source.URL = "https://example.com/WorkoutExport.csv"
	assert.NoError(t, cfg.Validate())
}

func TestValidateEmptyListenAddr(t *testing.T) {
	cfg := validCfg()
	cfg.API.ListenAddr = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.listen_addr")
}

func TestValidateBadLoggingFormat(t *testing.T) {
	cfg := validCfg()
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestLoadDefaults(t *testing.T) {
	// No config file ships in the repository, so Load sees pure defaults.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "WorkoutExport.csv", cfg.Source.Path)
	assert.Contains(t, cfg.Filters.ExcludeExercises, "Stair Stepper")
	assert.False(t, cfg.Filters.ExcludeWarmups)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.API.ListenAddr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LIFTLOG_SOURCE_URL", "https://example.com/WorkoutExport.csv")
	t.Setenv("LIFTLOG_API_AUTH_TOKEN", "sekret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/WorkoutExport.csv", cfg.Source.URL)
	assert.Equal(t, "sekret", cfg.API.AuthToken)
}
