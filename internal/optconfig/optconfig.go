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

// Package optconfig reads optimizer settings from a YAML file and merges
// them with the MATCHOPT_DEBUG flags.
//
// A configuration file looks like:
//
//	passes:
//	  fuse: true
//	  factor: true
//	rules:
//	  - capture_at_child
//	  - check_type_at_child
//	  - cancel_select_parent
//	fixpoint: true
//	maxRounds: 4
//
// Every key is optional. Absent keys keep the optimizer defaults.
package optconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"matchopt.dev/go/internal/core/fuse"
	"matchopt.dev/go/internal/core/opt"
	"matchopt.dev/go/internal/optdebug"
)

// File is the decoded form of a configuration file.
type File struct {
	Passes    Passes   `yaml:"passes"`
	Rules     []string `yaml:"rules"`
	Fixpoint  *bool    `yaml:"fixpoint"`
	MaxRounds int      `yaml:"maxRounds"`
	Strict    bool     `yaml:"strict"`
}

// Passes enables or disables the optimizer passes. A nil field keeps the
// pass enabled.
type Passes struct {
	Fuse   *bool `yaml:"fuse"`
	Factor *bool `yaml:"factor"`
}

// Load reads the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a configuration file. Unknown keys and unknown rule names are
// errors. An empty document yields the zero File.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if f.MaxRounds < 0 {
		return nil, fmt.Errorf("maxRounds must not be negative, got %d", f.MaxRounds)
	}
	if _, err := fuse.Lookup(f.Rules...); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply sets the fields of cfg that f specifies.
func (f *File) Apply(cfg *opt.Config) error {
	if f.Passes.Fuse != nil {
		cfg.NoFuse = !*f.Passes.Fuse
	}
	if f.Passes.Factor != nil {
		cfg.NoFactor = !*f.Passes.Factor
	}
	if f.Rules != nil {
		rules, err := fuse.Lookup(f.Rules...)
		if err != nil {
			return err
		}
		cfg.Rules = rules
	}
	if f.Fixpoint != nil {
		cfg.Fixpoint = *f.Fixpoint
	}
	if f.MaxRounds > 0 {
		cfg.MaxRounds = f.MaxRounds
	}
	cfg.Strict = cfg.Strict || f.Strict
	return nil
}

// ApplyDebug sets the fields of cfg that the MATCHOPT_DEBUG flags turn on.
// Flags only ever enable checks or disable passes; they never undo what a
// file or command line asked for.
func ApplyDebug(flags optdebug.Config, cfg *opt.Config) {
	cfg.Strict = cfg.Strict || flags.Strict
	cfg.Fixpoint = cfg.Fixpoint || flags.Fixpoint
	cfg.NoFuse = cfg.NoFuse || flags.NoFuse
	cfg.NoFactor = cfg.NoFactor || flags.NoFactor
}
