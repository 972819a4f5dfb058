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

	"matchopt.dev/go/internal/core/opt"
	"matchopt.dev/go/internal/core/sim"
)

func newSimCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim tree input",
		Short: "match a program fragment against a matcher",
		Long: `Sim runs the matcher in the file tree against the program fragment in the
YAML file input and prints the rule that matched and the captured values.
The input is a tree of values:

	opcode: add
	type: i32
	operands:
	  - {opcode: load, type: i32}
	  - {opcode: const, type: i32, int: 4, preds: [imm]}

Either file may be "-" for standard input. With --opt, the matcher is
optimized first.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runSim),
	}
	addOutFlags(cmd.Flags())
	addOptFlags(cmd.Flags())
	cmd.Flags().Bool(string(flagOpt), false, "optimize the matcher before running it")
	return cmd
}

func runSim(cmd *Command, args []string) error {
	t, err := loadTree(cmd, args[:1])
	if err != nil {
		return err
	}
	data, err := readFile(cmd, args[1])
	if err != nil {
		return err
	}
	v, err := sim.Decode(data)
	exitOnErr(cmd, err, true)
	if flagOpt.Bool(cmd) {
		cfg, err := optConfig(cmd)
		if err != nil {
			return err
		}
		t = opt.Optimize(t, cfg)
	}

	res := sim.Run(t, v)

	var buf bytes.Buffer
	if !res.Matched {
		fmt.Fprintln(&buf, "no match")
	} else {
		fmt.Fprintf(&buf, "rule: %q\n", res.Rule)
		for _, c := range res.Captures {
			fmt.Fprintf(&buf, "capture %s: %v\n", c.Name, c.Value)
		}
	}
	fmt.Fprintf(&buf, "steps: %d\n", res.Steps)
	return writeOutput(cmd, buf.Bytes())
}
