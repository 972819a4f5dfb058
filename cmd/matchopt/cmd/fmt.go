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

	"matchopt.dev/go/matcher/format"
)

func newFmtCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "format a matcher",
		Long: `Fmt reads a matcher from the given file, or from standard input, and
prints it in canonical form: one step per line, indented with tabs.

With --check, nothing is printed and the command fails if the input is not
in canonical form.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runFmt),
	}
	addOutFlags(cmd.Flags())
	cmd.Flags().Bool(string(flagIDs), false, "annotate every step with its node ID")
	cmd.Flags().Bool(string(flagCheck), false, "only check whether the input is formatted")
	return cmd
}

func runFmt(cmd *Command, args []string) error {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	src, err := readFile(cmd, name)
	if err != nil {
		return err
	}
	t, err := parseTree(name, src)
	if err != nil {
		return err
	}
	var opts []format.Option
	if flagIDs.Bool(cmd) {
		opts = append(opts, format.ShowIDs())
	}
	out := format.Tree(t, opts...)

	if flagCheck.Bool(cmd) {
		if !bytes.Equal(src, out) {
			exitOnErr(cmd, fmt.Errorf("%s is not formatted", name), false)
		}
		return nil
	}
	return writeOutput(cmd, out)
}
