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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"
)

func newVersionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print matchopt version",
		Args:  cobra.NoArgs,
		RunE:  mkRunE(c, runVersion),
	}
	return cmd
}

const defaultVersion = "(devel)"

// version may be set with
// -ldflags='-X matchopt.dev/go/cmd/matchopt/cmd.version=<version>'.
var version = defaultVersion

func runVersion(cmd *Command, args []string) error {
	w := cmd.OutOrStdout()
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("unknown error reading build-info")
	}

	// Extra settings for tests, as a JSON list of {"Key", "Value"} objects.
	if v := os.Getenv("MATCHOPT_VERSION_TEST_CFG"); v != "" {
		var extra []debug.BuildSetting
		if err := json.Unmarshal([]byte(v), &extra); err != nil {
			return fmt.Errorf("MATCHOPT_VERSION_TEST_CFG: %w", err)
		}
		bi.Settings = append(bi.Settings, extra...)
	}

	v := version
	if v == defaultVersion && bi.Main.Version != "" {
		v = bi.Main.Version
	}
	if v == defaultVersion {
		if rev := vcsVersion(bi.Settings); rev != "" {
			v = rev
		}
	}

	fmt.Fprintf(w, "matchopt version %s\n\n", v)
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	for _, s := range bi.Settings {
		if s.Value == "" {
			continue
		}
		// Aligns keys up to the length of "vcs.revision" and a bit more.
		fmt.Fprintf(w, "%16s %s\n", s.Key, s.Value)
	}
	return nil
}

// vcsVersion derives a pseudo-version from the VCS build settings, or
// returns "" if there is no revision.
func vcsVersion(settings []debug.BuildSetting) string {
	var vcsTime time.Time
	var rev string
	for _, s := range settings {
		switch s.Key {
		case "vcs.time":
			// An invalid time yields a zero timestamp.
			vcsTime, _ = time.Parse(time.RFC3339Nano, s.Value)
		case "vcs.revision":
			rev = s.Value
		}
	}
	if rev == "" {
		return ""
	}
	// Twelve hex digits, as cmd/go uses.
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return module.PseudoVersion("", "", vcsTime, rev)
}
