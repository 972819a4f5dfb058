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

// Package factor merges alternatives of a scope that start with the same
// step.
//
// For a scope
//
//	scope {
//		{ check_type i32; A }
//		{ check_type i32; B }
//		{ check_type i8; C }
//	}
//
// factoring yields
//
//	scope {
//		{ check_type i32; scope { { A } { B } } }
//		{ check_type i8; C }
//	}
//
// A group of equal heads is emitted at the position of its first member. A
// later member is only moved forward past alternatives whose head
// contradicts the shared head, so no input can observe the new order.
package factor

import (
	"slices"

	"go.uber.org/zap"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/matcher/stats"
)

// A Config controls a factoring run. The zero value neither logs nor counts.
type Config struct {
	Counts *stats.Counts
	Log    *zap.Logger
}

// Tree factors every scope in the tree.
func Tree(t *adt.Tree, cfg *Config) {
	Chain(t, adt.RootSlot(), cfg)
}

// Chain factors the first scope reachable from the chain held by s. Nested
// scopes are factored before the scopes that contain them. If the scope is
// reduced to a single alternative, that alternative takes its place.
func Chain(t *adt.Tree, s adt.Slot, cfg *Config) {
	chainWithHash(t, s, cfg, adt.Hash)
}

func chainWithHash(t *adt.Tree, s adt.Slot, cfg *Config, hash func(adt.Node) uint64) {
	f := &factorer{t: t, hash: hash}
	if cfg != nil {
		f.Config = *cfg
	}
	if f.Counts == nil {
		f.Counts = &stats.Counts{}
	}
	if f.Log == nil {
		f.Log = zap.NewNop()
	}
	f.chain(s)
}

type factorer struct {
	Config
	t    *adt.Tree
	hash func(adt.Node) uint64
}

func (f *factorer) chain(s adt.Slot) {
	for steps := 1; ; steps++ {
		id := f.t.Get(s)
		if id == adt.NoNode {
			return
		}
		adt.Assertf(steps <= f.t.Live(), "node %v reached again: cycle in chain", id)
		if f.t.At(id).Kind == adt.ScopeKind {
			f.scope(s, id)
			return
		}
		s = adt.NextSlot(id)
	}
}

// An option is an alternative of the scope being factored. The label is
// kept so that the option can be inspected after its head was released.
type option struct {
	id    adt.ID
	label adt.Node
	hash  uint64
	tail  bool // the head has a successor
}

func (f *factorer) scope(s adt.Slot, scope adt.ID) {
	t := f.t
	n := len(t.At(scope).Children)
	adt.Assertf(n > 0, "scope %v without children", scope)

	options := make([]option, 0, n)
	for i := 0; i < n; i++ {
		cs := adt.ChildSlot(scope, i)
		f.chain(cs)
		id := t.Take(cs)
		adt.Assertf(id != adt.NoNode, "scope %v: child %d is empty", scope, i)
		head := t.At(id)
		label := head.Label()
		options = append(options, option{
			id:    id,
			label: label,
			hash:  f.hash(label),
			tail:  head.Next != adt.NoNode,
		})
	}

	buckets := make(map[uint64][]int, len(options))
	for i, o := range options {
		buckets[o.hash] = append(buckets[o.hash], i)
	}

	result := make([]adt.ID, 0, len(options))
	for i, o := range options {
		members := buckets[o.hash]
		pos := slices.Index(members, i)
		if pos < 0 {
			// Merged into the class of an earlier alternative.
			continue
		}
		members = slices.Delete(members, pos, pos+1)

		class := []int{i}
		if o.tail {
			class, members = f.collect(options, class, members)
		}
		if len(members) == 0 {
			delete(buckets, o.hash)
		} else {
			buckets[o.hash] = members
		}

		if len(class) > 1 {
			f.merge(options, class)
		}
		result = append(result, o.id)
	}

	adt.Assertf(len(result) > 0, "scope %v lost all alternatives", scope)
	if len(result) == 1 {
		t.Set(s, result[0])
		t.Free(scope)
		f.Counts.ScopesCollapsed++
		f.Log.Debug("collapse scope", zap.Stringer("scope", scope))
		return
	}
	t.At(scope).Children = result
}

// collect moves the members whose head equals the head of class[0] from
// members to class. Both lists are in ascending order.
func (f *factorer) collect(options []option, class, members []int) (newClass, rest []int) {
	first := options[class[0]]
	rest = members[:0]
	for _, j := range members {
		if o := options[j]; o.tail && adt.Equal(first.label, o.label) && canHoist(options, class, j) {
			class = append(class, j)
		} else {
			rest = append(rest, j)
		}
	}
	return class, rest
}

// canHoist reports whether alternative j can be moved up to the position of
// class[0]. Every alternative in between that is not part of the class must
// be unable to match together with the shared head.
func canHoist(options []option, class []int, j int) bool {
	head := options[class[0]].label
	for k := class[0] + 1; k < j; k++ {
		if slices.Contains(class, k) {
			continue
		}
		if !adt.Contradicts(options[k].label, head) {
			return false
		}
	}
	return true
}

// merge rewrites the class so that its first head is followed by a new
// scope over the suffixes of all members. The other heads are released.
func (f *factorer) merge(options []option, class []int) {
	t := f.t
	shared := options[class[0]].id
	suffixes := make([]adt.ID, 0, len(class))
	for k, j := range class {
		id := options[j].id
		suffixes = append(suffixes, t.TakeNext(id))
		if k > 0 {
			t.Free(id)
		}
	}
	nested := t.NewScope(suffixes...)
	t.SetNext(shared, nested)

	f.Counts.Classes++
	f.Counts.Merged += int64(len(class) - 1)
	f.Counts.ScopesCreated++
	f.Log.Debug("factor",
		zap.Stringer("head", options[class[0]].label),
		zap.Int("size", len(class)),
		zap.Stringer("scope", nested))

	// The suffixes may share further prefixes.
	f.chain(adt.NextSlot(shared))
}
