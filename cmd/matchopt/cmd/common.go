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
	"io"
	"os"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/opt"
	"matchopt.dev/go/internal/optconfig"
	"matchopt.dev/go/internal/optdebug"
	"matchopt.dev/go/matcher/parser"
)

// readFile returns the contents of the named file, or of standard input if
// the name is "-".
func readFile(cmd *Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// loadTree parses and verifies the matcher named by the first argument, or
// standard input if there is none.
func loadTree(cmd *Command, args []string) (*adt.Tree, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	data, err := readFile(cmd, name)
	if err != nil {
		return nil, err
	}
	return parseTree(name, data)
}

func parseTree(name string, data []byte) (*adt.Tree, error) {
	if name == "-" {
		name = "<stdin>"
	}
	t, err := parser.Parse(name, data)
	if err != nil {
		return nil, err
	}
	if err := adt.Verify(t); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// optConfig builds the optimizer configuration from, in increasing order of
// precedence, the --config file, the command line flags and MATCHOPT_DEBUG.
func optConfig(cmd *Command) (*opt.Config, error) {
	cfg := &opt.Config{}
	if path := flagConfig.String(cmd); path != "" {
		f, err := optconfig.Load(path)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(cfg); err != nil {
			return nil, err
		}
	}
	if flagNoFuse.IsSet(cmd) {
		cfg.NoFuse = flagNoFuse.Bool(cmd)
	}
	if flagNoFactor.IsSet(cmd) {
		cfg.NoFactor = flagNoFactor.Bool(cmd)
	}
	if flagFixpoint.IsSet(cmd) {
		cfg.Fixpoint = flagFixpoint.Bool(cmd)
	}
	if n := flagMaxRounds.Int(cmd); n != 0 {
		if n < 0 {
			return nil, fmt.Errorf("--%s must not be negative", flagMaxRounds)
		}
		cfg.MaxRounds = n
	}
	optconfig.ApplyDebug(optdebug.Flags, cfg)
	cfg.Log = cmd.Log()
	return cfg, nil
}

// writeOutput writes b to the --outfile file or, if it is unset or "-", to
// standard output.
func writeOutput(cmd *Command, b []byte) error {
	switch name := flagOutFile.String(cmd); name {
	case "", "-":
		_, err := cmd.OutOrStdout().Write(b)
		return err
	default:
		return os.WriteFile(name, b, 0o666)
	}
}
