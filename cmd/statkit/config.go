package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gostatlab/statkit/pkg/errors"
)

// Config holds the runtime settings for both workflows. Values come from
// defaults, then an optional YAML file, then command-line flags.
type Config struct {
	Seed     int    `yaml:"seed"`
	LogLevel string `yaml:"log_level"`

	Wine struct {
		TestSize float64 `yaml:"test_size"`
		Folds    int     `yaml:"folds"`
		KMin     int     `yaml:"k_min"`
		KMax     int     `yaml:"k_max"`
		Weights  string  `yaml:"weights"`
		PlotPath string  `yaml:"plot_path"`
	} `yaml:"wine"`

	House struct {
		ConfidenceLevel float64 `yaml:"confidence_level"`
		PlotDir         string  `yaml:"plot_dir"`
	} `yaml:"house"`
}

// DefaultConfig mirrors the settings of the canonical workflows.
func DefaultConfig() *Config {
	cfg := &Config{
		Seed:     42,
		LogLevel: "info",
	}
	cfg.Wine.TestSize = 0.2
	cfg.Wine.Folds = 5
	cfg.Wine.KMin = 1
	cfg.Wine.KMax = 50
	cfg.Wine.Weights = "uniform"
	cfg.Wine.PlotPath = "wine_accuracy_vs_k.png"
	cfg.House.ConfidenceLevel = 0.95
	cfg.House.PlotDir = "."
	return cfg
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults untouched.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "statkit: reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "statkit: parsing config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("log_level", "must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.Wine.TestSize <= 0 || c.Wine.TestSize >= 1 {
		return errors.NewValidationError("wine.test_size", "must be in (0, 1)", c.Wine.TestSize)
	}
	if c.Wine.Folds < 2 {
		return errors.NewValidationError("wine.folds", "must be at least 2", c.Wine.Folds)
	}
	if c.Wine.KMin < 1 || c.Wine.KMax < c.Wine.KMin {
		return errors.NewValidationError("wine.k_min/k_max", "need 1 <= k_min <= k_max", c.Wine.KMin)
	}
	if c.Wine.Weights != "uniform" && c.Wine.Weights != "distance" {
		return errors.NewValidationError("wine.weights", "must be uniform or distance", c.Wine.Weights)
	}
	if c.House.ConfidenceLevel <= 0 || c.House.ConfidenceLevel >= 1 {
		return errors.NewValidationError("house.confidence_level", "must be in (0, 1)", c.House.ConfidenceLevel)
	}
	return nil
}
