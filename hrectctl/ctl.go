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
package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperrect/hrect/hrectctl/command"
)

const (
	cliName        = "hrectctl"
	cliDescription = "A command line tool to query, verify and benchmark hyper-rectangle indexes."
)

var (
	rootCmd = &cobra.Command{
		Use:        cliName,
		Short:      cliDescription,
		SuggestFor: []string{"hrectctl"},
	}
)

func init() {
	command.RegisterGlobalFlags(rootCmd)
	rootCmd.RegisterFlagCompletionFunc("write-out", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"simple", "json", "table"}, cobra.ShellCompDirectiveDefault
	})

	rootCmd.AddCommand(
		command.NewQueryCommand(),
		command.NewCheckCommand(),
		command.NewBenchCommand(),
		command.NewVersionCommand(),
	)
}

func Start() error {
	// Make help just show the usage
	rootCmd.SetHelpTemplate(`{{.UsageString}}`)
	return rootCmd.Execute()
}

func init() {
	cobra.EnablePrefixMatching = true
}
