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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperrect/hrect/pkg/cobrautl"
)

var (
	queryData  string
	queryStart string
	queryEnd   string
	queryAny   bool
	queryStats bool
)

// NewQueryCommand returns the cobra command for "query".
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query --data <file> --start <x,y,...> --end <x,y,...>",
		Short: "Loads a rectangle file and prints the rectangles overlapping a query",
		Run:   queryCommandFunc,
	}
	cmd.Flags().StringVar(&queryData, "data", "", "path to a YAML or JSON rectangle file")
	cmd.Flags().StringVar(&queryStart, "start", "", "comma separated start coordinates of the query")
	cmd.Flags().StringVar(&queryEnd, "end", "", "comma separated end coordinates of the query; defaults to --start")
	cmd.Flags().BoolVar(&queryAny, "any", false, "only report whether any rectangle overlaps")
	cmd.Flags().BoolVar(&queryStats, "stats", false, "print the index forest statistics instead of querying")
	cmd.MarkFlagRequired("data")
	return cmd
}

func queryCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("query command takes no arguments"))
	}
	cfg := mustConfigFromCmd(cmd)
	lg := mustLogger(cfg)
	defer lg.Sync()

	ix, _, err := loadIndex(cfg, lg, queryData)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitInvalidInput, err)
	}
	if queryStats {
		display.Stats(ix.Stats())
		return
	}

	start, end, err := queryBounds(queryStart, queryEnd)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, err)
	}
	if queryAny {
		ok, err := ix.DoOverlap(start, end)
		if err != nil {
			cobrautl.ExitWithError(cobrautl.ExitInvalidInput, err)
		}
		display.DoOverlap(ok)
		return
	}
	rs, err := ix.GetOverlaps(start, end)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitInvalidInput, err)
	}
	display.Overlaps(rs)
}

// queryBounds parses the query corners; a missing end makes a point query.
func queryBounds(start, end string) ([]float64, []float64, error) {
	s, err := parseVector(start)
	if err != nil {
		return nil, nil, fmt.Errorf("--start: %w", err)
	}
	if end == "" {
		return s, s, nil
	}
	e, err := parseVector(end)
	if err != nil {
		return nil, nil, fmt.Errorf("--end: %w", err)
	}
	return s, e, nil
}
