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

	"github.com/spf13/pflag"
)

// Common flags
const (
	flagCheck     flagName = "check"
	flagConfig    flagName = "config"
	flagFixpoint  flagName = "fixpoint"
	flagIDs       flagName = "ids"
	flagLogFormat flagName = "log-format"
	flagMaxRounds flagName = "max-rounds"
	flagNoFactor  flagName = "no-factor"
	flagNoFuse    flagName = "no-fuse"
	flagOpt       flagName = "opt"
	flagOutFile   flagName = "outfile"
	flagStats     flagName = "stats"
	flagVerbose   flagName = "verbose"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.BoolP(string(flagVerbose), "v", false,
		"log a summary of every optimizer run")
	f.String(string(flagLogFormat), "",
		"log encoding: console or json (default from MATCHOPT_DEBUG)")
}

func addOutFlags(f *pflag.FlagSet) {
	f.StringP(string(flagOutFile), "o", "",
		"write the result to this file instead of stdout")
}

func addOptFlags(f *pflag.FlagSet) {
	f.Bool(string(flagNoFuse), false, "disable fusion of adjacent steps")
	f.Bool(string(flagNoFactor), false, "disable factoring of common prefixes")
	f.Bool(string(flagFixpoint), false, "repeat the passes until the tree no longer changes")
	f.Int(string(flagMaxRounds), 0, "maximum number of rounds with --fixpoint (default 8)")
	f.String(string(flagConfig), "", "read optimizer settings from this YAML file")
}

type flagName string

// ensureAdded detects if a flag is being used without it first being
// added to the flagSet. Because flagNames are global, it is quite
// easy to accidentally use a flag in a command without adding it to
// the flagSet.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

// IsSet reports whether the flag was given on the command line.
func (f flagName) IsSet(cmd *Command) bool {
	f.ensureAdded(cmd)
	return cmd.Flags().Changed(string(f))
}
