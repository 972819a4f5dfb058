// Copyright 2026 The Matchopt Authors
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

package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/opt"
)

func newStatsCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "count the steps of a matcher before and after optimization",
		Long: `Stats prints the number of steps of each kind in a matcher, before and
after optimization. It accepts the same optimizer flags as opt.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runStats),
	}
	addOutFlags(cmd.Flags())
	addOptFlags(cmd.Flags())
	return cmd
}

func runStats(cmd *Command, args []string) error {
	t, err := loadTree(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := optConfig(cmd)
	if err != nil {
		return err
	}
	before := t.CountKinds(t.Root)
	t = opt.Optimize(t, cfg)
	after := t.CountKinds(t.Root)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%-20s %6s %6s\n", "kind", "before", "after")
	var total [2]int
	for _, k := range adt.Kinds() {
		b, a := before[k], after[k]
		if a == 0 && b == 0 {
			continue
		}
		fmt.Fprintf(&buf, "%-20s %6d %6d\n", k, b, a)
		total[0] += b
		total[1] += a
	}
	fmt.Fprintf(&buf, "%-20s %6d %6d\n", "total", total[0], total[1])
	return writeOutput(cmd, buf.Bytes())
}
