// Package config defines the stepreport configuration and its loading from
// files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/stepreport/internal/optimize"
)

// Optimizer profile names.
const (
	ProfileDefault = "default"
	ProfileReduced = "reduced"
)

// Config represents the complete configuration for the stepreport
// application. It supports loading from configuration files, environment
// variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Image optimization before annotation
	Optimizer OptimizerConfig `mapstructure:"optimizer" yaml:"optimizer" json:"optimizer"`

	// Image resolution search roots
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver" json:"resolver"`

	// Report output settings
	Report ReportConfig `mapstructure:"report" yaml:"report" json:"report"`
}

// OptimizerConfig contains screenshot downsizing settings. Profile selects a
// named preset; explicit non-zero fields override the preset's values, zero
// fields inherit from it. The reduced profile exists for constrained
// deployments.
type OptimizerConfig struct {
	Profile   string `mapstructure:"profile" yaml:"profile" json:"profile"`
	MaxWidth  int    `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
	MaxHeight int    `mapstructure:"max_height" yaml:"max_height" json:"max_height"`
	Quality   int    `mapstructure:"quality" yaml:"quality" json:"quality"`
}

// ResolverConfig contains image search settings. FallbackDirs is the ordered
// list of conventional directories tried after the capture's own locations.
type ResolverConfig struct {
	FallbackDirs []string `mapstructure:"fallback_dirs" yaml:"fallback_dirs" json:"fallback_dirs"`
}

// ReportConfig contains output settings.
type ReportConfig struct {
	Output string `mapstructure:"output" yaml:"output" json:"output"`
	Verify bool   `mapstructure:"verify" yaml:"verify" json:"verify"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Optimizer: OptimizerConfig{
			Profile: ProfileDefault,
		},
		Resolver: ResolverConfig{
			FallbackDirs: []string{"uploads"},
		},
	}
}

// Build returns the optimizer for this configuration.
func (o OptimizerConfig) Build() *optimize.Optimizer {
	opt := optimize.Default()
	if o.Profile == ProfileReduced {
		opt = optimize.Reduced()
	}
	if o.MaxWidth > 0 {
		opt.MaxWidth = o.MaxWidth
	}
	if o.MaxHeight > 0 {
		opt.MaxHeight = o.MaxHeight
	}
	if o.Quality > 0 {
		opt.Quality = o.Quality
	}
	return opt
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validProfiles := []string{ProfileDefault, ProfileReduced}
	if c.Optimizer.Profile != "" && !contains(validProfiles, c.Optimizer.Profile) {
		return fmt.Errorf("invalid optimizer profile: %s (must be one of: %s)",
			c.Optimizer.Profile, strings.Join(validProfiles, ", "))
	}

	if c.Optimizer.Quality < 0 || c.Optimizer.Quality > 100 {
		return fmt.Errorf("invalid optimizer quality: %d (must be between 0 and 100)", c.Optimizer.Quality)
	}
	if c.Optimizer.MaxWidth < 0 || c.Optimizer.MaxHeight < 0 {
		return fmt.Errorf("invalid optimizer bounds: %dx%d (must not be negative)",
			c.Optimizer.MaxWidth, c.Optimizer.MaxHeight)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
