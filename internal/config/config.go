// Package config loads geopins settings from an optional YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/geopins/internal/models"
)

const envConfigPath = "GEOPINS_CONFIG"

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("config file is invalid")

// Config holds all geopins configuration.
type Config struct {
	DatabasePath string `yaml:"database_path"`
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"` // debug, info, warn, error

	// MetricsAddr enables the Prometheus endpoint when non-empty (e.g. ":9090").
	MetricsAddr string `yaml:"metrics_addr"`

	Map  MapConfig  `yaml:"map"`
	Seed SeedConfig `yaml:"seed"`
}

// MapConfig configures the map canvas.
type MapConfig struct {
	DefaultZoom     float64 `yaml:"default_zoom"`
	SelectZoom      float64 `yaml:"select_zoom"`
	HighlightRadius float64 `yaml:"highlight_radius"` // metres
}

// SeedConfig is the location inserted into an empty database.
type SeedConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Location converts the seed to a model.
func (s SeedConfig) Location() models.Location {
	return models.Location{Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatabasePath: "./data/gps_locations.db",
		LogFile:      "./data/geopins.log",
		LogLevel:     "info",
		Map: MapConfig{
			DefaultZoom:     17.0,
			SelectZoom:      18.0,
			HighlightRadius: 50.0,
		},
		Seed: SeedConfig{
			Name:      models.DefaultSeedName,
			Latitude:  models.DefaultSeedLatitude,
			Longitude: models.DefaultSeedLongitude,
		},
	}
}

// Load reads the file at path over the defaults, then applies environment
// overrides. An empty path falls back to GEOPINS_CONFIG; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
		}
	}

	cfg.DatabasePath = getEnv("DB_PATH", cfg.DatabasePath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsAddr = getEnv("METRICS_ADDR", cfg.MetricsAddr)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would break the map canvas.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database_path is empty", ErrInvalidConfig)
	}
	if c.Map.DefaultZoom <= 0 || c.Map.SelectZoom <= 0 {
		return fmt.Errorf("%w: zoom levels must be positive", ErrInvalidConfig)
	}
	if c.Map.HighlightRadius <= 0 {
		return fmt.Errorf("%w: highlight_radius must be positive", ErrInvalidConfig)
	}
	if c.Seed.Name == "" {
		return fmt.Errorf("%w: seed.name is empty", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
