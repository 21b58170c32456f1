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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func mustCreateCfgFile(t *testing.T, v any) string {
	t.Helper()
	b, err := yaml.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "hrectctl.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestConfigFromFile(t *testing.T) {
	path := mustCreateCfgFile(t, map[string]any{
		"dims":        3,
		"write-out":   "json",
		"no-sentinel": true,
	})
	cfg, err := ConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Dims: 3, LogLevel: "info", OutputFormat: "json", NoSentinel: true}, cfg)
}

func TestConfigFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
	}{
		{"zero dims", map[string]any{"dims": 0}},
		{"negative dims", map[string]any{"dims": -2}},
		{"unknown format", map[string]any{"write-out": "protobuf"}},
		{"empty log level", map[string]any{"log-level": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConfigFromFile(mustCreateCfgFile(t, tt.cfg))
			require.Error(t, err)
		})
	}
}

func TestConfigFromFileMissing(t *testing.T) {
	_, err := ConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigFromCmd(t *testing.T) {
	defer func(old GlobalFlags) { globalFlags = old }(globalFlags)

	path := mustCreateCfgFile(t, map[string]any{"dims": 3, "write-out": "table"})
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want *Config
	}{
		{
			name: "defaults",
			args: nil,
			want: NewConfig(),
		},
		{
			name: "file",
			args: []string{"--config", path},
			want: &Config{Dims: 3, LogLevel: "info", OutputFormat: "table"},
		},
		{
			name: "flags override file",
			args: []string{"--config", path, "--dims", "4", "--log-level", "debug", "--no-sentinel"},
			want: &Config{Dims: 4, LogLevel: "debug", OutputFormat: "table", NoSentinel: true},
		},
		{
			name: "environment",
			args: []string{"--config", path},
			env:  map[string]string{"HRECTCTL_DIMS": "5", "HRECTCTL_WRITE_OUT": "json"},
			want: &Config{Dims: 5, LogLevel: "info", OutputFormat: "json"},
		},
		{
			name: "flags override environment",
			args: []string{"--dims", "1"},
			env:  map[string]string{"HRECTCTL_DIMS": "5"},
			want: &Config{Dims: 1, LogLevel: "info", OutputFormat: "simple"},
		},
		{
			name: "flags only",
			args: []string{"-w", "json"},
			want: &Config{Dims: 2, LogLevel: "info", OutputFormat: "json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			globalFlags = GlobalFlags{}
			cmd := &cobra.Command{Use: "test"}
			RegisterGlobalFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			cfg, err := configFromCmd(cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}
