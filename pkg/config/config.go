package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config holds the tunable parameters of the process graph engine. All
// thresholds default to the values the detection rules were calibrated with.
type Config struct {
	// Graph size guard, enforced at the entity/edge add boundary.
	// Zero means unlimited.
	MaxNodes int `yaml:"max_nodes" validate:"min=0"`
	MaxEdges int `yaml:"max_edges" validate:"min=0"`

	// Risk rule thresholds.
	SPOFTaskThreshold      int     `yaml:"spof_task_threshold" validate:"min=1"`
	BrittleChainThreshold  int     `yaml:"brittle_chain_threshold" validate:"min=1"`
	BottleneckThreshold    int     `yaml:"bottleneck_threshold" validate:"min=1"`
	LowConfidenceRatio     float64 `yaml:"low_confidence_ratio" validate:"gte=0,lte=1"`
	LowConfidenceScore     float64 `yaml:"low_confidence_score" validate:"gte=0,lte=1"`

	// SOP generation defaults.
	DefaultDetailLevel string `yaml:"default_detail_level" validate:"oneof=brief standard detailed"`

	// Metrics listen address for the composition root, empty to disable.
	MetricsAddr string `yaml:"metrics_addr"`

	// Log level: DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// Default returns the configuration with the calibrated rule thresholds.
func Default() Config {
	return Config{
		MaxNodes:              0,
		MaxEdges:              0,
		SPOFTaskThreshold:     3,
		BrittleChainThreshold: 5,
		BottleneckThreshold:   4,
		LowConfidenceRatio:    0.3,
		LowConfidenceScore:    0.5,
		DefaultDetailLevel:    "standard",
		LogLevel:              "INFO",
	}
}

// Load reads a YAML configuration file, overlaying it on the defaults and
// validating the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config field %s: validation failed (%s)", e.Field(), e.Tag())
		}
		return err
	}
	return nil
}
