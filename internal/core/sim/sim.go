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

// Package sim interprets a matcher tree against a program fragment. It is the
// reference semantics the optimizer must preserve.
package sim

import (
	"fmt"
	"slices"

	"matchopt.dev/go/internal/core/adt"
)

// A Value is a node of the program representation being matched.
type Value struct {
	Opcode   string   `yaml:"opcode,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Int      int64    `yaml:"int,omitempty"`
	Preds    []string `yaml:"preds,omitempty"`
	Operands []*Value `yaml:"operands,omitempty"`
}

// absent is read for operands that do not exist. Matchers rely on the
// producer to check arity before navigating, so navigation itself never
// fails.
var absent = &Value{}

// Operand returns operand i of v.
func (v *Value) Operand(i int) *Value {
	if v == nil || i < 0 || i >= len(v.Operands) {
		return absent
	}
	return v.Operands[i]
}

// A Capture is a value recorded by a capture step.
type Capture struct {
	Name  string
	Value *Value
}

// Result describes the outcome of matching.
type Result struct {
	// Matched reports whether some alternative succeeded.
	Matched bool

	// Rule is the rule of the complete step reached, or "" if the winning
	// chain ended without one.
	Rule string

	// Captures holds the captured values of the winning chain, in order.
	Captures []Capture

	// Steps counts the nodes evaluated, including those of failed
	// alternatives.
	Steps int
}

// Run matches v against the tree. Alternatives of a scope are tried in order
// and the first that succeeds wins; a failed alternative leaves no trace.
func Run(t *adt.Tree, v *Value) Result {
	m := &machine{t: t}
	res, ok := m.chain(t.Root, state{path: []*Value{v}})
	if !ok {
		res = Result{}
	}
	res.Steps = m.steps
	return res
}

type machine struct {
	t     *adt.Tree
	steps int
}

type state struct {
	path     []*Value // path[len(path)-1] is the focus
	captures []Capture
}

func (s state) focus() *Value { return s.path[len(s.path)-1] }

func (s state) clone() state {
	return state{path: slices.Clone(s.path), captures: slices.Clone(s.captures)}
}

func (m *machine) chain(id adt.ID, s state) (Result, bool) {
	for id != adt.NoNode {
		m.steps++
		n := m.t.At(id)
		focus := s.focus()
		switch n.Kind {
		case adt.ScopeKind:
			for _, c := range n.Children {
				if res, ok := m.chain(c, s.clone()); ok {
					return res, true
				}
			}
			return Result{}, false

		case adt.SelectChildKind:
			s.path = append(s.path, focus.Operand(n.Index))

		case adt.SelectParentKind:
			if len(s.path) == 1 {
				return Result{}, false
			}
			s.path = s.path[:len(s.path)-1]

		case adt.CaptureKind:
			s.captures = append(s.captures, Capture{n.Name, focus})

		case adt.CaptureAtChildKind:
			s.captures = append(s.captures, Capture{n.Name, focus.Operand(n.Index)})

		case adt.CheckTypeKind:
			if focus.Type != n.Name {
				return Result{}, false
			}

		case adt.CheckTypeAtChildKind:
			if focus.Operand(n.Index).Type != n.Name {
				return Result{}, false
			}

		case adt.CheckOpcodeKind:
			if focus.Opcode != n.Name {
				return Result{}, false
			}

		case adt.CheckIntegerKind:
			if focus.Int != n.Value {
				return Result{}, false
			}

		case adt.CheckSameKind:
			if n.Index < 0 || n.Index >= len(s.captures) || s.captures[n.Index].Value != focus {
				return Result{}, false
			}

		case adt.CheckPredicateKind:
			if !slices.Contains(focus.Preds, n.Name) {
				return Result{}, false
			}

		case adt.CompleteKind:
			return Result{Matched: true, Rule: n.Name, Captures: s.captures}, true

		default:
			panic(fmt.Sprintf("sim: unknown node kind %v", n.Kind))
		}
		id = n.Next
	}
	return Result{Matched: true, Captures: s.captures}, true
}
