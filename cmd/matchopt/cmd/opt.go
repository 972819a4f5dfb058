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
	"fmt"

	"github.com/spf13/cobra"

	"matchopt.dev/go/internal/core/opt"
	"matchopt.dev/go/matcher/format"
	"matchopt.dev/go/matcher/stats"
)

func newOptCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opt [file]",
		Short: "optimize a matcher",
		Long: `Opt reads a matcher from the given file, or from standard input, and
prints an equivalent matcher with the same or fewer steps.

By default fusion and factoring run once each. Settings can be read from a
YAML file with --config:

	passes:
	  fuse: true
	  factor: true
	rules: [capture_at_child, check_type_at_child, cancel_select_parent]
	fixpoint: false
	maxRounds: 8
	strict: false

Command line flags override the file.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runOpt),
	}
	addOutFlags(cmd.Flags())
	addOptFlags(cmd.Flags())
	cmd.Flags().Bool(string(flagStats), false, "print optimizer statistics to stderr")
	return cmd
}

func runOpt(cmd *Command, args []string) error {
	t, err := loadTree(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := optConfig(cmd)
	if err != nil {
		return err
	}
	var counts stats.Counts
	cfg.Counts = &counts

	t = opt.Optimize(t, cfg)

	if err := writeOutput(cmd, format.Tree(t)); err != nil {
		return err
	}
	if flagStats.Bool(cmd) {
		fmt.Fprintln(cmd.ErrOrStderr(), counts)
	}
	return nil
}
