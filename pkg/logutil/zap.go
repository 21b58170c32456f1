// Copyright 2019 The etcd Authors
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
// Package logutil builds the zap loggers used by the index tools.
package logutil

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	JSONLogFormat    = "json"
	ConsoleLogFormat = "console"
	// DefaultLogFormat is JSONLogFormat
	DefaultLogFormat = JSONLogFormat
)

var DefaultLogLevel = "info"

// CreateDefaultZapLogger creates a logger with default zap configuration
func CreateDefaultZapLogger(level zapcore.Level) (*zap.Logger, error) {
	lcfg := DefaultZapLoggerConfig
	lcfg.Level = zap.NewAtomicLevelAt(level)
	c, err := lcfg.Build()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultZapLoggerConfig defines default zap logger configuration.
var DefaultZapLoggerConfig = zap.Config{
	Level: zap.NewAtomicLevelAt(ConvertToZapLevel(DefaultLogLevel)),

	Development: false,
	Sampling: &zap.SamplingConfig{
		Initial:    100,
		Thereafter: 100,
	},

	Encoding: DefaultLogFormat,

	// copied from "zap.NewProductionEncoderConfig" with some updates
	EncoderConfig: zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000000Z0700"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	},

	// Use "/dev/null" to discard all
	OutputPaths:      []string{"stderr"},
	ErrorOutputPaths: []string{"stderr"},
}

// ConvertToZapLevel converts log level string to zapcore.Level.
func ConvertToZapLevel(lvl string) zapcore.Level {
	var level zapcore.Level
	if err := level.Set(lvl); err != nil {
		panic(err)
	}
	return level
}

// ConvertToZapFormat converts and validated log format string.
func ConvertToZapFormat(format string) (string, error) {
	switch format {
	case ConsoleLogFormat:
		return ConsoleLogFormat, nil
	case JSONLogFormat:
		return JSONLogFormat, nil
	case "":
		return DefaultLogFormat, nil
	default:
		return "", fmt.Errorf("unknown log format: %s, supported values json, console", format)
	}
}

// NewLogger builds a logger at the given level and format. An unknown level
// is reported as an error rather than a panic.
func NewLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("unknown log level %q, supported values %v", level, levelNames())
	}
	enc, err := ConvertToZapFormat(format)
	if err != nil {
		return nil, err
	}
	lcfg := DefaultZapLoggerConfig
	lcfg.Level = zap.NewAtomicLevelAt(lvl)
	lcfg.Encoding = enc
	if enc == ConsoleLogFormat {
		lcfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}
	return lcfg.Build()
}

func levelNames() []string {
	var names []string
	for l := zapcore.DebugLevel; l <= zapcore.FatalLevel; l++ {
		names = append(names, l.String())
	}
	sort.Strings(names)
	return names
}
