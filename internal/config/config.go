// Package config loads the analyser configuration file.
//
// A configuration names the introspection host (Go packages or a YAML
// manifest), the root types to analyse and how to report the result:
//
//	version: "1"
//	packages: ["./examples/..."]
//	roots: [geometry.Polygon, graph.Node]
//	deep: true
//	log_level: info
//	format: text
//
// Command-line flags override values read from the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config is the analyser configuration.
type Config struct {
	Version  string   `yaml:"version"`
	Dir      string   `yaml:"dir,omitempty"`      // working directory for package patterns
	Packages []string `yaml:"packages,omitempty"` // Go package patterns
	Manifest string   `yaml:"manifest,omitempty"` // path of a YAML type manifest
	Roots    []string `yaml:"roots"`
	Deep     *bool    `yaml:"deep,omitempty"` // nil means deep
	LogLevel string   `yaml:"log_level,omitempty"`
	Format   string   `yaml:"format,omitempty"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)

	return &cfg
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	cfg.Format = strings.ToLower(cfg.Format)
}

// IsDeep reports whether member types are analysed transitively.
func (c *Config) IsDeep() bool {
	return c.Deep == nil || *c.Deep
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return level, nil
}

// Validate checks that the configuration can drive an analysis.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case len(c.Packages) == 0 && c.Manifest == "":
		errs = append(errs, errors.New("either packages or manifest is required"))
	case len(c.Packages) > 0 && c.Manifest != "":
		errs = append(errs, errors.New("packages and manifest are mutually exclusive"))
	}

	if len(c.Roots) == 0 {
		errs = append(errs, errors.New("at least one root type is required"))
	}

	if c.Format != FormatText && c.Format != FormatYAML {
		errs = append(errs, fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatText, FormatYAML))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
