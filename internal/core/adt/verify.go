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

package adt

import "fmt"

// An InvariantError reports a tree that violates the structural invariants
// the optimizer relies on. It indicates a bug upstream, not bad rules.
type InvariantError struct {
	Node ID
	Msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid matcher tree at %v: %s", e.Node, e.Msg)
}

// Assertf panics if b is false. It is used for violated structural
// invariants, which are programming errors in the producer of the tree.
func Assertf(b bool, format string, args ...any) {
	if !b {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// Verify checks that the tree reachable from Root is well formed:
//
//   - every link refers to a live node;
//   - every node is reachable exactly once, so there is no sharing and no
//     cycle;
//   - scopes have at least one child, no empty child and no successor;
//   - complete nodes have no successor;
//   - every live node is reachable, so nothing was leaked.
func Verify(t *Tree) error {
	seen := make(map[ID]bool, t.Live())
	stack := []ID{t.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for id != NoNode {
			if !t.IsLive(id) {
				return &InvariantError{id, "link to released node"}
			}
			if seen[id] {
				return &InvariantError{id, "node reachable more than once"}
			}
			seen[id] = true
			n := &t.nodes[id]
			if !n.Kind.IsValid() {
				return &InvariantError{id, fmt.Sprintf("unknown kind %v", n.Kind)}
			}
			switch n.Kind {
			case ScopeKind:
				if len(n.Children) == 0 {
					return &InvariantError{id, "scope without children"}
				}
				for i := len(n.Children) - 1; i >= 0; i-- {
					if n.Children[i] == NoNode {
						return &InvariantError{id, fmt.Sprintf("scope child %d is empty", i)}
					}
					stack = append(stack, n.Children[i])
				}
			default:
				if len(n.Children) > 0 {
					return &InvariantError{id, fmt.Sprintf("%v node has children", n.Kind)}
				}
			}
			if n.Kind.IsTerminal() && n.Next != NoNode {
				return &InvariantError{id, fmt.Sprintf("%v node has a successor", n.Kind)}
			}
			id = n.Next
		}
	}
	if live := t.Live(); live != len(seen) {
		return &InvariantError{NoNode, fmt.Sprintf("%d live nodes, %d reachable", live, len(seen))}
	}
	return nil
}
