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

package optconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"matchopt.dev/go/internal/core/fuse"
	"matchopt.dev/go/internal/core/opt"
	"matchopt.dev/go/internal/optdebug"
)

func ruleNames(rules []fuse.Rule) []string {
	if rules == nil {
		return nil
	}
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		start     opt.Config
		wantRules []string
		want      opt.Config // Rules are compared by name
	}{{
		name: "Empty",
		data: "",
	}, {
		name:  "EmptyKeepsStart",
		data:  "",
		start: opt.Config{NoFuse: true, Fixpoint: true},
		want:  opt.Config{NoFuse: true, Fixpoint: true},
	}, {
		name: "Passes",
		data: "passes: {fuse: false, factor: true}\n",
		want: opt.Config{NoFuse: true},
	}, {
		name:  "PassesReenable",
		data:  "passes: {factor: true}\n",
		start: opt.Config{NoFactor: true},
		want:  opt.Config{},
	}, {
		name:      "Rules",
		data:      "rules: [cancel_select_parent, capture_at_child]\n",
		wantRules: []string{fuse.CancelSelectParent, fuse.CaptureAtChild},
	}, {
		name:      "NoRules",
		data:      "rules: []\n",
		wantRules: []string{},
	}, {
		name: "Fixpoint",
		data: "fixpoint: true\nmaxRounds: 3\nstrict: true\n",
		want: opt.Config{Fixpoint: true, MaxRounds: 3, Strict: true},
	}, {
		name:  "FixpointOff",
		data:  "fixpoint: false\n",
		start: opt.Config{Fixpoint: true},
		want:  opt.Config{},
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse([]byte(test.data))
			qt.Assert(t, qt.IsNil(err))
			cfg := test.start
			qt.Assert(t, qt.IsNil(f.Apply(&cfg)))
			qt.Assert(t, qt.DeepEquals(ruleNames(cfg.Rules), test.wantRules))
			cfg.Rules = nil
			qt.Assert(t, qt.DeepEquals(cfg, test.want))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  string
	}{{
		name: "UnknownKey",
		data: "passes: {fuse: true}\nfusion: true\n",
		err:  `yaml: unmarshal errors:\n  line 2: field fusion not found in type optconfig.File`,
	}, {
		name: "UnknownRule",
		data: "rules: [capture_at_child, hoist]\n",
		err:  `unknown fusion rule "hoist"`,
	}, {
		name: "NegativeRounds",
		data: "maxRounds: -1\n",
		err:  `maxRounds must not be negative, got -1`,
	}, {
		name: "BadType",
		data: "fixpoint: sometimes\n",
		err:  `(?s)yaml: unmarshal errors:.*cannot unmarshal.*`,
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.data))
			qt.Assert(t, qt.ErrorMatches(err, test.err))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opt.yaml")
	err := os.WriteFile(path, []byte("rules: [nope]\n"), 0o666)
	qt.Assert(t, qt.IsNil(err))

	_, err = Load(path)
	qt.Assert(t, qt.ErrorMatches(err, `.*opt.yaml: unknown fusion rule "nope"`))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	qt.Assert(t, qt.ErrorIs(err, os.ErrNotExist))
}

func TestApplyDebug(t *testing.T) {
	cfg := opt.Config{NoFactor: true}
	ApplyDebug(optdebug.Config{Strict: true, NoFuse: true}, &cfg)
	qt.Assert(t, qt.DeepEquals(cfg, opt.Config{Strict: true, NoFuse: true, NoFactor: true}))
}
