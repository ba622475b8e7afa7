package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds run settings read from a YAML file.
// Zero values mean "not set" so that command-line flags can fill them in.
type Config struct {
	Path     string `yaml:"-"`
	MaxSteps int    `yaml:"max_steps"`
	MaxDepth int    `yaml:"max_depth"`
	Trace    bool   `yaml:"trace"`
	DumpIR   bool   `yaml:"dump_ir"`
	NoColor  bool   `yaml:"no_color"`
	Input    string `yaml:"input"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses a YAML config file from disk, returning a validated config.
// A relative input path is taken relative to the config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if cfg.Input != "" && !filepath.IsAbs(cfg.Input) {
		cfg.Input = filepath.Join(filepath.Dir(absPath), cfg.Input)
	}

	return cfg, nil
}

// Decode reads and validates a config document. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var issues []string
	if c.MaxSteps < 0 {
		issues = append(issues, fmt.Sprintf("max_steps must not be negative (got %d)", c.MaxSteps))
	}
	if c.MaxDepth < 0 {
		issues = append(issues, fmt.Sprintf("max_depth must not be negative (got %d)", c.MaxDepth))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
