// Package config loads the rpn command configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/rpn"
)

// OutputFormat selects how results are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
)

// ColorMode controls colored error output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the rpn command configuration.
type Config struct {
	LogLevel      string       `yaml:"log_level"`
	TimeFormat    string       `yaml:"time_format"`
	Color         ColorMode    `yaml:"color"`
	AllowLeftover bool         `yaml:"allow_leftover"`
	Output        OutputFormat `yaml:"output"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel:      "warn",
		TimeFormat:    rpn.DefaultTimeFormat,
		Color:         ColorAuto,
		AllowLeftover: false,
		Output:        OutputText,
	}
}

var knownKeys = map[string]bool{
	"log_level":      true,
	"time_format":    true,
	"color":          true,
	"allow_leftover": true,
	"output":         true,
}

// Load reads the configuration file at path on top of Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML configuration on top of Default. An empty document
// yields the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(doc.Content) == 0 {
		return cfg, nil
	}

	node := doc.Content[0]
	if node.Kind != yaml.MappingNode {
		return Config{}, fmt.Errorf("config must be a mapping")
	}

	// MappingNode stores content as alternating key/value pairs
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if !knownKeys[keyNode.Value] {
			return Config{}, fmt.Errorf("line %d: unknown config key %q", keyNode.Line, keyNode.Value)
		}
		if valueNode.Kind != yaml.ScalarNode {
			return Config{}, fmt.Errorf("line %d: %q must be a scalar", valueNode.Line, keyNode.Value)
		}
	}

	if err := node.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "error", "warn", "warning", "info", "debug":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q; valid values: auto, always, never", c.Color)
	}
	switch c.Output {
	case OutputText, OutputYAML:
	default:
		return fmt.Errorf("invalid output %q; valid values: text, yaml", c.Output)
	}
	return nil
}

// Logger builds the logger described by the configuration.
func (c Config) Logger(w io.Writer) rpn.Logger {
	return rpn.NewLoggerWithOptions(rpn.ParseLogLevel(c.LogLevel), w, rpn.LoggerOptions{
		TimeFormat: c.TimeFormat,
		UTC:        true,
	})
}

// Options converts the configuration into evaluation options.
func (c Config) Options(logger rpn.Logger) rpn.Options {
	opts := rpn.DefaultOptions()
	opts.AllowLeftover = c.AllowLeftover
	opts.Logger = logger
	return opts
}
