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

package matchtest

import (
	"fmt"
	"math/rand/v2"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/sim"
)

// The vocabulary is small so that random trees share prefixes and random
// inputs match some of their alternatives.
var (
	types    = []string{"i8", "i32"}
	opcodes  = []string{"add", "load", "const"}
	preds    = []string{"imm", "small"}
	names    = []string{"a", "b", "c"}
	integers = []int64{0, 1, 4}
)

const maxIndex = 2

// A Gen produces random matcher trees and inputs from a seeded source.
type Gen struct {
	r *rand.Rand

	// MaxDepth bounds the nesting of scopes.
	MaxDepth int

	// MaxSteps bounds the number of steps before the end of a chain.
	MaxSteps int

	// MaxAlts bounds the number of alternatives of a scope.
	MaxAlts int

	// MaxValueDepth bounds the height of generated inputs.
	MaxValueDepth int
}

// NewGen returns a generator with small default bounds.
func NewGen(seed uint64) *Gen {
	return &Gen{
		r:             rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		MaxDepth:      3,
		MaxSteps:      4,
		MaxAlts:       4,
		MaxValueDepth: 3,
	}
}

func pick[T any](r *rand.Rand, list []T) T {
	return list[r.IntN(len(list))]
}

// Tree returns a random well-formed tree.
func (g *Gen) Tree() *adt.Tree {
	t := adt.NewTree()
	t.Root = g.chain(t, nil, 0)
	return t
}

// chain allocates a chain that starts with the given labels followed by
// random steps and a random end.
func (g *Gen) chain(t *adt.Tree, prefix []adt.Node, depth int) adt.ID {
	steps := append([]adt.Node(nil), prefix...)
	for n := g.r.IntN(g.MaxSteps + 1); n > 0; n-- {
		if g.r.IntN(4) == 0 {
			// A burst that fusion rewrites.
			i := g.r.IntN(maxIndex)
			steps = append(steps, adt.SelectChild(i), g.step(), adt.SelectParent())
			continue
		}
		steps = append(steps, g.step())
	}

	var tail adt.ID
	switch r := g.r.IntN(8); {
	case depth < g.MaxDepth && r < 3:
		tail = g.scope(t, depth+1)
	case r < 7:
		tail = t.New(adt.Complete(fmt.Sprintf("r%d", g.r.IntN(10))))
	}
	if tail == adt.NoNode && len(steps) == 0 {
		steps = append(steps, g.step())
	}
	return t.ChainTo(tail, steps...)
}

// scope allocates a scope whose alternatives often start with the same
// steps.
func (g *Gen) scope(t *adt.Tree, depth int) adt.ID {
	heads := make([][]adt.Node, 1+g.r.IntN(2))
	for i := range heads {
		heads[i] = []adt.Node{g.step()}
		if g.r.IntN(2) == 0 {
			heads[i] = append(heads[i], g.step())
		}
	}
	n := 1 + g.r.IntN(g.MaxAlts)
	children := make([]adt.ID, n)
	for i := range children {
		var prefix []adt.Node
		if g.r.IntN(4) != 0 {
			prefix = pick(g.r, heads)
		}
		children[i] = g.chain(t, prefix, depth)
	}
	return t.NewScope(children...)
}

// step returns a random non-terminal label.
func (g *Gen) step() adt.Node {
	switch g.r.IntN(10) {
	case 0, 1:
		return adt.SelectChild(g.r.IntN(maxIndex))
	case 2:
		return adt.Capture(pick(g.r, names))
	case 3, 4:
		return adt.CheckType(pick(g.r, types))
	case 5:
		return adt.CheckOpcode(pick(g.r, opcodes))
	case 6:
		return adt.CheckInteger(pick(g.r, integers))
	case 7:
		return adt.CheckPredicate(pick(g.r, preds))
	case 8:
		return adt.CheckSame(g.r.IntN(2))
	default:
		if g.r.IntN(2) == 0 {
			return adt.CaptureAtChild(g.r.IntN(maxIndex), pick(g.r, names))
		}
		return adt.CheckTypeAtChild(g.r.IntN(maxIndex), pick(g.r, types))
	}
}

// Value returns a random input. Some operands are shared so that check_same
// can succeed.
func (g *Gen) Value() *sim.Value {
	var pool []*sim.Value
	return g.value(g.MaxValueDepth, &pool)
}

func (g *Gen) value(depth int, pool *[]*sim.Value) *sim.Value {
	if len(*pool) > 0 && g.r.IntN(5) == 0 {
		return pick(g.r, *pool)
	}
	v := &sim.Value{
		Opcode: pick(g.r, opcodes),
		Type:   pick(g.r, types),
		Int:    pick(g.r, integers),
	}
	for _, p := range preds {
		if g.r.IntN(2) == 0 {
			v.Preds = append(v.Preds, p)
		}
	}
	if depth > 0 {
		for n := g.r.IntN(maxIndex + 1); n > 0; n-- {
			v.Operands = append(v.Operands, g.value(depth-1, pool))
		}
	}
	*pool = append(*pool, v)
	return v
}
