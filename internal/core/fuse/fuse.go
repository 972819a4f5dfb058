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

// Package fuse contracts adjacent matcher steps into single, more specific
// steps.
//
// Fusion is local: it never looks across the children of a scope and never
// changes which inputs a chain accepts.
package fuse

import (
	"go.uber.org/zap"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/matcher/stats"
)

// A Rule rewrites the chain starting at head. If it applies, it returns the
// new head of the chain and true; nodes it drops must be freed. If it does
// not apply, it must leave the tree untouched and return false.
type Rule struct {
	Name  string
	Apply func(t *adt.Tree, head adt.ID) (adt.ID, bool)

	// Kind is the stats counter incremented when the rule fires.
	Kind Effect
}

// An Effect classifies what a rule does, for statistics.
type Effect uint8

const (
	Fuses   Effect = iota // replaces a pair by a fused step
	Cancels               // removes a pair that undoes itself
)

// A Config controls a fusion run. The zero value uses DefaultRules and does
// not log or count.
type Config struct {
	Rules  []Rule
	Counts *stats.Counts
	Log    *zap.Logger
}

// Tree fuses the whole tree in place.
func Tree(t *adt.Tree, cfg *Config) {
	Chain(t, adt.RootSlot(), cfg)
}

// Chain fuses the chain held by s, and all chains nested in its scopes. If the
// head of the chain is replaced, s is updated.
func Chain(t *adt.Tree, s adt.Slot, cfg *Config) {
	f := &fuser{t: t}
	if cfg != nil {
		f.Config = *cfg
	}
	if f.Rules == nil {
		f.Rules = DefaultRules()
	}
	if f.Counts == nil {
		f.Counts = &stats.Counts{}
	}
	if f.Log == nil {
		f.Log = zap.NewNop()
	}
	f.chain(s)
}

type fuser struct {
	Config
	t *adt.Tree
}

func (f *fuser) chain(s adt.Slot) {
	t := f.t
	// Nodes left behind are never released by a rule, so a chain can only
	// pass more nodes than are live if it loops.
	passed := 0
	for {
		id := t.Get(s)
		if id == adt.NoNode {
			return
		}
		n := t.At(id)
		if n.Kind == adt.ScopeKind {
			adt.Assertf(len(n.Children) > 0, "scope %v without children", id)
			for i := range n.Children {
				f.chain(adt.ChildSlot(id, i))
			}
			return
		}
		if f.apply(s, id) {
			// The new head may start another pattern.
			continue
		}
		s = adt.NextSlot(id)
		passed++
		adt.Assertf(passed <= t.Live(), "node %v reached again: cycle in chain", id)
	}
}

// apply tries each rule at the head held by s and reports whether one fired.
func (f *fuser) apply(s adt.Slot, head adt.ID) bool {
	label := f.t.At(head).Label()
	for _, r := range f.Rules {
		newHead, ok := r.Apply(f.t, head)
		if !ok {
			continue
		}
		f.t.Set(s, newHead)
		switch r.Kind {
		case Fuses:
			f.Counts.Fused++
		case Cancels:
			f.Counts.Canceled++
		}
		f.Log.Debug("fuse",
			zap.String("rule", r.Name),
			zap.Stringer("slot", s),
			zap.Stringer("at", label))
		return true
	}
	return false
}
