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
package logutil

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type commonLogFields struct {
	Level     string `json:"level"`
	Timestamp string `json:"ts"`
	Message   string `json:"msg"`
}

const (
	fractionSecondsPrecision = 6 // MicroSeconds
)

func TestEncodeTimePrecisionToMicroSeconds(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	syncer := zapcore.AddSync(buf)
	zc := zapcore.NewCore(
		zapcore.NewJSONEncoder(DefaultZapLoggerConfig.EncoderConfig),
		syncer,
		zap.NewAtomicLevelAt(zap.InfoLevel),
	)

	lg := zap.New(zc)
	lg.Info("TestZapLog")
	fields := commonLogFields{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	// example 1: 2024-06-06T23:37:21.948385Z
	// example 2 with zone offset: 2024-06-06T16:16:44.176778-0700
	regex := `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.(\d+)(Z|[+-]\d{4})`
	re := regexp.MustCompile(regex)
	matches := re.FindStringSubmatch(fields.Timestamp)
	require.Equal(t, 3, len(matches))
	require.Equalf(t, fractionSecondsPrecision, len(matches[1]), "unexpected timestamp %s", fields.Timestamp)
}

func TestLogFormat(t *testing.T) {
	tests := []struct {
		given       string
		want        string
		errExpected bool
	}{
		{"json", JSONLogFormat, false},
		{"console", ConsoleLogFormat, false},
		{"", JSONLogFormat, false},
		{"konsole", "", true},
	}

	for i, tt := range tests {
		got, err := ConvertToZapFormat(tt.given)
		if got != tt.want {
			t.Errorf("#%d: ConvertToZapFormat failure: want=%v, got=%v", i, tt.want, got)
		}

		if err != nil {
			if !tt.errExpected {
				t.Errorf("#%d: ConvertToZapFormat unexpected error: %v", i, err)
			}
		}
	}
}

func TestNewLogger(t *testing.T) {
	lg, err := NewLogger("debug", "console")
	require.NoError(t, err)
	require.True(t, lg.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("loud", "json")
	require.ErrorContains(t, err, "unknown log level")

	_, err = NewLogger("info", "xml")
	require.ErrorContains(t, err, "unknown log format")
}
