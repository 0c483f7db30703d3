// Package config resolves the driver configuration from flags,
// environment, and an optional config file via viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"
)

// DefaultExamples are the paper examples benchmarked when no explicit
// list is given.
var DefaultExamples = []string{
	"section6-3-1",
	"section6-3-2",
	"section6-3-3",
	"section6-3-4",
	"section6-3-5",
}

// Config is the fully resolved driver configuration. Cargo holds the
// build-tool invocation already lexed into tokens; nothing downstream
// ever re-parses a command string.
type Config struct {
	Examples []string
	Times    int
	Cargo    []string
	Target   string
	Root     string

	Timeout     time.Duration
	Save        bool
	Compare     bool
	Threshold   float64
	HistoryFile string
	MetricsPort int
}

// Load builds a Config from the current viper state. The cargo command
// string is shell-lexed exactly once here; the token list is immutable
// afterwards.
func Load() (*Config, error) {
	cargoStr := viper.GetString("cargo")
	cargo, err := shellquote.Split(cargoStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cargo command %q: %w", cargoStr, err)
	}

	cfg := &Config{
		Examples:    viper.GetStringSlice("examples"),
		Times:       viper.GetInt("times"),
		Cargo:       cargo,
		Target:      viper.GetString("target"),
		Root:        viper.GetString("root"),
		Timeout:     viper.GetDuration("timeout"),
		Save:        viper.GetBool("save"),
		Compare:     viper.GetBool("compare"),
		Threshold:   viper.GetFloat64("threshold"),
		HistoryFile: viper.GetString("history_file"),
		MetricsPort: viper.GetInt("metrics_port"),
	}

	if cfg.Target == "" {
		cfg.Target = filepath.Join(cfg.Root, "target")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration values and returns an error listing
// everything that is invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.Times <= 0 {
		errs = append(errs, fmt.Sprintf("times must be positive, got: %d", c.Times))
	}
	if len(c.Cargo) == 0 {
		errs = append(errs, "cargo command must not be empty")
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("timeout must not be negative, got: %v", c.Timeout))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Sprintf("threshold must not be negative, got: %.2f", c.Threshold))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Sprintf("metrics_port must be a valid port, got: %d", c.MetricsPort))
	}
	for _, ex := range c.Examples {
		if strings.TrimSpace(ex) == "" {
			errs = append(errs, "example names must not be empty")
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
