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

// Package matcher is the entry point for optimizing instruction-selection
// matchers.
//
// A matcher is a decision tree: a chain of steps that navigate, check and
// capture parts of a program fragment, branching at scopes whose
// alternatives are tried in order. [Optimize] rewrites a matcher into an
// equivalent one with fewer steps.
//
//	t, err := matcher.Parse("isel.matcher", src)
//	if err != nil {
//		return err
//	}
//	t = matcher.Optimize(t, nil)
//	os.Stdout.Write(matcher.Format(t))
package matcher

import (
	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/opt"
	"matchopt.dev/go/matcher/format"
	"matchopt.dev/go/matcher/parser"
)

type (
	// A Tree owns the nodes of a matcher.
	Tree = adt.Tree

	// An ID addresses a node in a Tree.
	ID = adt.ID

	// A Node is a single matcher step.
	Node = adt.Node

	// A Kind is the variant of a Node.
	Kind = adt.Kind

	// Config controls an optimizer run. A nil *Config runs both passes once.
	Config = opt.Config

	// An InvariantError reports a malformed tree.
	InvariantError = adt.InvariantError
)

// NewTree returns an empty tree.
func NewTree() *Tree { return adt.NewTree() }

// Parse parses the text form of a matcher.
func Parse(filename string, src []byte) (*Tree, error) {
	return parser.Parse(filename, src)
}

// Format returns the text form of a matcher.
func Format(t *Tree) []byte {
	return format.Tree(t)
}

// Verify reports whether t is well formed. Optimize requires a well-formed
// tree.
func Verify(t *Tree) error {
	return adt.Verify(t)
}

// Optimize rewrites t into an equivalent tree with the same or fewer nodes.
// It consumes t: the caller must continue with the returned tree only.
func Optimize(t *Tree, cfg *Config) *Tree {
	return opt.Optimize(t, cfg)
}
