// Package config loads the analyzer's HCL configuration file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete analyzer configuration.
type Config struct {
	Workers      int      `hcl:"workers,optional"`
	LogLevel     string   `hcl:"log_level,optional"`
	HandGlobs    []string `hcl:"hand_globs,optional"`
	ScenarioFile string   `hcl:"scenario_file,optional"`
	ReportFile   string   `hcl:"report_file,optional"`
}

// Default returns the default analyzer configuration.
func Default() *Config {
	return &Config{
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load reads configuration from an HCL file. A missing file is not an
// error; defaults apply.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// Validate checks the configuration for values the analyzer cannot run
// with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
