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

package fuse

import (
	"fmt"

	"matchopt.dev/go/internal/core/adt"
)

// Names of the built-in rules.
const (
	CaptureAtChild     = "capture_at_child"
	CheckTypeAtChild   = "check_type_at_child"
	CancelSelectParent = "cancel_select_parent"
)

// DefaultRules returns the built-in rule table in the order it is applied.
func DefaultRules() []Rule {
	return []Rule{
		{Name: CaptureAtChild, Apply: captureAtChild, Kind: Fuses},
		{Name: CheckTypeAtChild, Apply: checkTypeAtChild, Kind: Fuses},
		{Name: CancelSelectParent, Apply: cancelSelectParent, Kind: Cancels},
	}
}

// Lookup returns the built-in rules with the given names, in the given order.
func Lookup(names ...string) ([]Rule, error) {
	all := DefaultRules()
	rules := make([]Rule, 0, len(names))
outer:
	for _, name := range names {
		for _, r := range all {
			if r.Name == name {
				rules = append(rules, r)
				continue outer
			}
		}
		return nil, fmt.Errorf("unknown fusion rule %q", name)
	}
	return rules, nil
}

// selectChildThen returns the select_child node at head and its successor if
// the successor has the given kind.
func selectChildThen(t *adt.Tree, head adt.ID, k adt.Kind) (sel, next *adt.Node, ok bool) {
	sel = t.At(head)
	if sel.Kind != adt.SelectChildKind || sel.Next == adt.NoNode {
		return nil, nil, false
	}
	next = t.At(sel.Next)
	if next.Kind != k {
		return nil, nil, false
	}
	return sel, next, true
}

// captureAtChild rewrites
//
//	select_child N -> capture "x" -> rest
//
// to
//
//	capture_at_child N "x" -> select_child N -> rest
//
// The fused step reads the child without moving the focus, so the
// navigation stays in place for whatever follows and may fuse again.
func captureAtChild(t *adt.Tree, head adt.ID) (adt.ID, bool) {
	sel, capture, ok := selectChildThen(t, head, adt.CaptureKind)
	if !ok {
		return head, false
	}
	return hoist(t, head, adt.CaptureAtChild(sel.Index, capture.Name)), true
}

// checkTypeAtChild rewrites
//
//	select_child N -> check_type T -> rest
//
// to
//
//	check_type_at_child N T -> select_child N -> rest
func checkTypeAtChild(t *adt.Tree, head adt.ID) (adt.ID, bool) {
	sel, check, ok := selectChildThen(t, head, adt.CheckTypeKind)
	if !ok {
		return head, false
	}
	return hoist(t, head, adt.CheckTypeAtChild(sel.Index, check.Name)), true
}

// hoist releases the successor of the select_child node at head and puts a
// new node with the given label in front of head.
func hoist(t *adt.Tree, head adt.ID, fused adt.Node) adt.ID {
	old := t.TakeNext(head)
	t.SetNext(head, t.TakeNext(old))
	t.Free(old)
	return t.ChainTo(head, fused)
}

// cancelSelectParent rewrites
//
//	select_child N -> select_parent -> rest
//
// to rest. The pair is kept when nothing follows it, as an empty chain is
// not a valid alternative.
func cancelSelectParent(t *adt.Tree, head adt.ID) (adt.ID, bool) {
	_, parent, ok := selectChildThen(t, head, adt.SelectParentKind)
	if !ok || parent.Next == adt.NoNode {
		return head, false
	}
	pid := t.TakeNext(head)
	rest := t.TakeNext(pid)
	t.Free(pid)
	t.Free(head)
	return rest, true
}
