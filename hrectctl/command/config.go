// Copyright 2026 The hrect Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/hyperrect/hrect/pkg/logutil"
)

// Config holds the settings shared by every sub-command. It can be loaded
// from a YAML file; flags given on the command line take precedence.
type Config struct {
	Dims         int    `json:"dims"`
	LogLevel     string `json:"log-level"`
	OutputFormat string `json:"write-out"`
	NoSentinel   bool   `json:"no-sentinel"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Dims:         2,
		LogLevel:     logutil.DefaultLogLevel,
		OutputFormat: "simple",
	}
}

// ConfigFromFile loads the YAML file at path over the defaults.
func ConfigFromFile(path string) (*Config, error) {
	cfg := NewConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config file %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for unusable values.
func (cfg *Config) Validate() error {
	if cfg.Dims <= 0 {
		return fmt.Errorf("dims must be positive, got %d", cfg.Dims)
	}
	if _, ok := printerTypes[cfg.OutputFormat]; !ok {
		return fmt.Errorf("unsupported output format %q", cfg.OutputFormat)
	}
	if cfg.LogLevel == "" {
		return errors.New("log-level must not be empty")
	}
	return nil
}

// applyFlags overrides cfg with every global flag set on the command line.
func (cfg *Config) applyFlags(fs *pflag.FlagSet, gf *GlobalFlags) {
	if fs.Changed("dims") {
		cfg.Dims = gf.Dims
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = gf.LogLevel
	}
	if fs.Changed("write-out") {
		cfg.OutputFormat = gf.OutputFormat
	}
	if fs.Changed("no-sentinel") {
		cfg.NoSentinel = gf.NoSentinel
	}
}
