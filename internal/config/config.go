package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// ViewportConfig is the initial containing block of a layout pass
type ViewportConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// InputConfig controls HTML parsing
type InputConfig struct {
	// Fragment parses input as a fragment instead of a full document
	Fragment bool `yaml:"fragment"`

	// KeepWhitespace keeps whitespace-only text nodes
	KeepWhitespace bool `yaml:"keep_whitespace"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Format string `yaml:"format"` // text or json
}

// Config holds configuration options for a render
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Viewport: ViewportConfig{X: 100, Y: 100, Width: 960, Height: 640},
		Input:    InputConfig{Fragment: false, KeepWhitespace: false},
		Output:   OutputConfig{Format: "text"},
		Logging:  LoggingConfig{Level: "none"},
	}
}

// Load reads a YAML configuration file over the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read configuration %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("unable to load configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option values
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 {
		return fmt.Errorf("viewport width must be positive, got %g", c.Viewport.Width)
	}
	if c.Viewport.Height < 0 {
		return fmt.Errorf("viewport height must not be negative, got %g", c.Viewport.Height)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format: %s (valid: text, json)", c.Output.Format)
	}
	return c.Logging.Validate()
}

// Dump encodes the configuration as YAML
func Dump(c Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return data, nil
}
