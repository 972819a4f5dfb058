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

// Package optdebug holds the MATCHOPT_DEBUG flags.
package optdebug

import (
	"sync"

	"matchopt.dev/go/internal/envflag"
)

// Flags holds the set of global MATCHOPT_DEBUG flags. It is initialized by
// Init.
var Flags Config

// Config holds the set of known MATCHOPT_DEBUG flags.
//
// When adding, deleting, or modifying entries below, update the help text of
// the matchopt command as well.
type Config struct {
	// Strict verifies the tree before and after every pass.
	Strict bool

	// LogOpt sets the log level for the optimizer.
	//
	//	0: no logging
	//	1: one line per run
	//	2: one line per rewrite
	LogOpt int

	// LogFormat selects the log encoding: "console" or "json".
	LogFormat string `envflag:"default:console"`

	// Fixpoint repeats the passes until nothing changes.
	Fixpoint bool

	// NoFuse and NoFactor disable a pass.
	NoFuse   bool
	NoFactor bool
}

// Init initializes Flags. It is not an init function so that a malformed
// variable is reported as an error by the command that needs the flags.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "MATCHOPT_DEBUG")
})
