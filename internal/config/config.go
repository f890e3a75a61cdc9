// Package config loads the application settings shared by the command
// line tools: observer location, commute plan, model choices, logging and
// scheduled jobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/ephemeris"
)

// DefaultPath is read when EPHEMERIS_CONFIG is unset and the file exists.
const DefaultPath = "ephemeris.yaml"

// Config aggregates runtime configuration used across the tools.
type Config struct {
	Location  LocationConfig  `yaml:"location"`
	Commute   CommuteConfig   `yaml:"commute"`
	Algorithm AlgorithmConfig `yaml:"algorithm"`
	Log       LogConfig       `yaml:"log"`
	Jobs      []JobConfig     `yaml:"jobs"`
}

// LocationConfig is the default observer.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  int     `yaml:"timezone"`
	Altitude  float64 `yaml:"altitude"`
}

// CommuteConfig drives the leave-by columns of the commute tables.
type CommuteConfig struct {
	Minutes      float64 `yaml:"minutes"`
	WorkdayHours float64 `yaml:"workdayHours"`
}

// AlgorithmConfig names the model variants.
type AlgorithmConfig struct {
	Variant string `yaml:"variant"`
	Node    string `yaml:"node"`
	Radius  string `yaml:"radius"`
	Method  string `yaml:"method"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// JobConfig is one scheduled entry for the watch command.
type JobConfig struct {
	Name     string `yaml:"name"`
	Schedule string `yaml:"schedule"`
	Message  string `yaml:"message"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("EPHEMERIS_CONFIG"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultPath); err == nil {
		if err := hydrateFromFile(cfg, DefaultPath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadFile reads a specific file, then applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := hydrateFromFile(cfg, path); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EPHEMERIS_LAT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Latitude = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_LON"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Longitude = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_TZ"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Location.Timezone = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_ALTITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Altitude = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_COMMUTE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Commute.Minutes = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_ALGORITHM"); v != "" {
		cfg.Algorithm.Variant = v
	}
	if v := os.Getenv("EPHEMERIS_METHOD"); v != "" {
		cfg.Algorithm.Method = v
	}
	if v := os.Getenv("EPHEMERIS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("EPHEMERIS_LOG_DEVELOPMENT"); v != "" {
		cfg.Log.Development = v == "1" || strings.EqualFold(v, "true")
	}
}

// Default returns the built-in settings: Hammond, Louisiana, a 37 minute
// commute and an 8.5 hour workday.
func Default() *Config {
	return &Config{
		Location: LocationConfig{
			Latitude:  30.4275784357249,
			Longitude: -90.0914955109431,
			Timezone:  -6,
			Altitude:  1.8224,
		},
		Commute: CommuteConfig{
			Minutes:      37,
			WorkdayHours: 8.5,
		},
		Algorithm: AlgorithmConfig{
			Variant: "noaa",
			Node:    "cubic",
			Radius:  "fixed",
			Method:  "closed",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate ensures required fields are well-formed.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	loc := c.Observer()
	if err := ephemeris.Validate(ephemeris.Date{Year: 2000, Month: 1, Day: 1}, loc); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	if c.Commute.Minutes < 0 {
		return errors.New("commute.minutes must be non-negative")
	}
	if c.Commute.WorkdayHours < 0 || c.Commute.WorkdayHours > 24 {
		return errors.New("commute.workdayHours must be in [0, 24]")
	}
	if _, err := c.Model(); err != nil {
		return fmt.Errorf("algorithm: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	for i, job := range c.Jobs {
		if strings.TrimSpace(job.Schedule) == "" {
			return fmt.Errorf("jobs[%d].schedule is required", i)
		}
	}
	return nil
}

// Observer converts the location section.
func (c *Config) Observer() ephemeris.Location {
	return ephemeris.Location{
		Latitude:  c.Location.Latitude,
		Longitude: c.Location.Longitude,
		TZOffset:  c.Location.Timezone,
		Altitude:  c.Location.Altitude,
	}
}

// Model converts the algorithm section into an ephemeris.Config.
func (c *Config) Model() (ephemeris.Config, error) {
	cfg := ephemeris.DefaultConfig()
	var err error

	if c.Algorithm.Variant != "" {
		if cfg.Algorithm, err = ephemeris.ParseAlgorithm(c.Algorithm.Variant); err != nil {
			return cfg, err
		}
	}
	if c.Algorithm.Node != "" {
		if cfg.NodeForm, err = ephemeris.ParseNodeForm(c.Algorithm.Node); err != nil {
			return cfg, err
		}
	}
	if c.Algorithm.Radius != "" {
		if cfg.Radius, err = ephemeris.ParseRadiusModel(c.Algorithm.Radius); err != nil {
			return cfg, err
		}
	}
	if c.Algorithm.Method != "" {
		if cfg.Method, err = ephemeris.ParseMethod(c.Algorithm.Method); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Logger builds a zap logger from the log section. Development selects the
// console encoder; otherwise JSON is written to stderr.
func (c *Config) Logger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Log.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(c.Log.Level); err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
