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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperrect/hrect/pkg/cobrautl"
	"github.com/hyperrect/hrect/pkg/dataset"
	"github.com/hyperrect/hrect/pkg/flags"
	"github.com/hyperrect/hrect/pkg/hrect"
	"github.com/hyperrect/hrect/pkg/logutil"
	"github.com/hyperrect/hrect/pkg/syncindex"
)

// GlobalFlags are flags that defined globally
// and are inherited to all sub-commands.
type GlobalFlags struct {
	ConfigFile   string
	Dims         int
	LogLevel     string
	OutputFormat string
	NoSentinel   bool
}

var display printer = &simplePrinter{w: os.Stdout}

var globalFlags GlobalFlags

const envPrefix = "HRECTCTL"

func RegisterGlobalFlags(cmd *cobra.Command) {
	def := NewConfig()
	cmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "path to a YAML configuration file; flags override its values")
	cmd.PersistentFlags().IntVar(&globalFlags.Dims, "dims", def.Dims, "number of dimensions of the index")
	cmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", def.LogLevel, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "write-out", "w", def.OutputFormat, "set the output format (simple, json, table)")
	cmd.PersistentFlags().BoolVar(&globalFlags.NoSentinel, "no-sentinel", def.NoSentinel, "accept -Inf as a coordinate")
}

// configFromCmd merges the config file with the command line flags and
// HRECTCTL_* environment variables. Flags win over the environment, which
// wins over the file.
func configFromCmd(cmd *cobra.Command) (*Config, error) {
	lg, err := logutil.CreateDefaultZapLogger(zap.WarnLevel)
	if err != nil {
		return nil, err
	}
	if err = flags.SetPflagsFromEnv(lg, envPrefix, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg := NewConfig()
	if globalFlags.ConfigFile != "" {
		if cfg, err = ConfigFromFile(globalFlags.ConfigFile); err != nil {
			return nil, err
		}
	}
	cfg.applyFlags(cmd.Flags(), &globalFlags)
	return cfg, cfg.Validate()
}

func mustConfigFromCmd(cmd *cobra.Command) *Config {
	cfg, err := configFromCmd(cmd)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, err)
	}
	initDisplay(cfg, os.Stdout)
	return cfg
}

func initDisplay(cfg *Config, w io.Writer) {
	if display = NewPrinter(cfg.OutputFormat, w); display == nil {
		cobrautl.ExitWithError(cobrautl.ExitBadFeature, fmt.Errorf("unsupported output format %q", cfg.OutputFormat))
	}
}

func mustLogger(cfg *Config) *zap.Logger {
	lg, err := logutil.NewLogger(cfg.LogLevel, logutil.ConsoleLogFormat)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, err)
	}
	return lg
}

func newIndex(cfg *Config, lg *zap.Logger) (*syncindex.Index[float64], error) {
	var opts []hrect.Option
	if cfg.NoSentinel {
		opts = append(opts, hrect.WithoutSentinel())
	}
	return syncindex.New[float64](syncindex.Config{
		Name:       "hrectctl",
		Dimensions: cfg.Dims,
		Logger:     lg,
		Options:    opts,
	})
}

// loadIndex builds an index holding every rectangle of the file at path.
// The file's dimension count must agree with cfg.
func loadIndex(cfg *Config, lg *zap.Logger, path string) (*syncindex.Index[float64], *dataset.File, error) {
	f, err := dataset.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if len(f.Rects) > 0 && f.Dims != cfg.Dims {
		return nil, nil, fmt.Errorf("%w: %s has %d dimensions, index has %d", dataset.ErrDimensionMismatch, path, f.Dims, cfg.Dims)
	}
	ix, err := newIndex(cfg, lg)
	if err != nil {
		return nil, nil, err
	}
	for i, r := range f.Rects {
		if err = ix.Insert(r.Start, r.End); err != nil {
			return nil, nil, fmt.Errorf("rects[%d]: %w", i, err)
		}
	}
	lg.Debug("loaded rectangles", zap.String("path", path), zap.Int("count", ix.Count()))
	return ix, f, nil
}

// parseVector parses a comma separated list of coordinates such as "1,2.5,-3".
func parseVector(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty coordinate list")
	}
	parts := strings.Split(s, ",")
	v := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}
