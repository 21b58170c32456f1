// Copyright 2015 The etcd Authors
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

// Package flags fills command line flags from the environment.
package flags

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// SetPflagsFromEnv parses all registered flags in the given flagset,
// and if they are not already set it attempts to set their values from
// environment variables. Environment variables take the name of the flag but
// are UPPERCASE, have the given prefix, and any dashes are replaced by
// underscores - for example: some-flag => HRECTCTL_SOME_FLAG
func SetPflagsFromEnv(lg *zap.Logger, prefix string, fs *pflag.FlagSet) error {
	var err error
	usedEnvKey := make(map[string]bool)
	fs.VisitAll(func(f *pflag.Flag) {
		if serr := setFlagFromEnv(lg, fs, prefix, f.Name, usedEnvKey, f.Changed); serr != nil {
			err = serr
		}
	})
	verifyEnv(lg, prefix, usedEnvKey)
	return err
}

// FlagToEnv converts flag string to upper-case environment variable key string.
func FlagToEnv(prefix, name string) string {
	return prefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func verifyEnv(lg *zap.Logger, prefix string, usedEnvKey map[string]bool) {
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.HasPrefix(kv[0], prefix+"_") && !usedEnvKey[kv[0]] {
			lg.Warn("unrecognized environment variable", zap.String("environment-variable", env))
		}
	}
}

func setFlagFromEnv(lg *zap.Logger, fs *pflag.FlagSet, prefix, fname string, usedEnvKey map[string]bool, alreadySet bool) error {
	key := FlagToEnv(prefix, fname)
	usedEnvKey[key] = true
	if alreadySet {
		if val := os.Getenv(key); val != "" {
			lg.Warn("ignoring environment variable because the flag is set",
				zap.String("environment-variable", key), zap.String("flag", fname))
		}
		return nil
	}
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	if serr := fs.Set(fname, val); serr != nil {
		return fmt.Errorf("invalid value %q for %s: %w", val, key, serr)
	}
	lg.Info("recognized and used environment variable",
		zap.String("variable-name", key), zap.String("variable-value", val))
	return nil
}
