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

import (
	"fmt"
	"slices"
)

// A Tree owns all nodes of a matcher. Root is the head of the top-level
// chain.
//
// A Tree is not safe for concurrent use. Distinct trees share nothing and may
// be used from different goroutines.
type Tree struct {
	Root ID

	nodes []Node // nodes[0] is the NoNode sentinel and is never live.
	free  []ID

	allocs int64
	frees  int64
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: make([]Node, 1)}
}

// New allocates a node with the given label and links and returns its ID.
// Children are copied.
func (t *Tree) New(n Node) ID {
	var id ID
	if k := len(t.free); k > 0 {
		id = t.free[k-1]
		t.free = t.free[:k-1]
	} else {
		id = ID(len(t.nodes))
		t.nodes = append(t.nodes, Node{})
	}
	n.Children = slices.Clone(n.Children)
	n.live = true
	t.nodes[id] = n
	t.allocs++
	return id
}

// At returns the node for id. The pointer is valid until the next call to
// New.
func (t *Tree) At(id ID) *Node {
	if !t.IsLive(id) {
		panic(fmt.Sprintf("assertion failed: access to released or invalid node %v", id))
	}
	return &t.nodes[id]
}

// IsLive reports whether id addresses an allocated node.
func (t *Tree) IsLive(id ID) bool {
	return id > NoNode && int(id) < len(t.nodes) && t.nodes[id].live
}

// Free releases a single node. Its successor and children are not released;
// the caller must have taken ownership of them first.
func (t *Tree) Free(id ID) {
	t.At(id)
	t.nodes[id] = Node{}
	t.free = append(t.free, id)
	t.frees++
}

// Release frees the chain starting at id, including all scope children.
func (t *Tree) Release(id ID) {
	stack := []ID{id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for id != NoNode {
			n := t.At(id)
			stack = append(stack, n.Children...)
			next := n.Next
			t.Free(id)
			id = next
		}
	}
}

// Live returns the number of allocated nodes.
func (t *Tree) Live() int {
	return len(t.nodes) - 1 - len(t.free)
}

// Allocs returns the number of node allocations made over the lifetime of t.
func (t *Tree) Allocs() int64 { return t.allocs }

// Frees returns the number of nodes released over the lifetime of t.
func (t *Tree) Frees() int64 { return t.frees }

// A Slot is an owning link: the root of a tree, the successor of a node, or
// one child of a scope. Rewrites address links through slots rather than
// through pointers so that allocation never invalidates them.
type Slot struct {
	owner ID
	index int
}

const nextIndex = -1

// RootSlot returns the slot holding Tree.Root.
func RootSlot() Slot { return Slot{owner: NoNode, index: nextIndex} }

// NextSlot returns the slot holding the successor of id.
func NextSlot(id ID) Slot { return Slot{owner: id, index: nextIndex} }

// ChildSlot returns the slot holding child i of scope id.
func ChildSlot(id ID, i int) Slot { return Slot{owner: id, index: i} }

func (s Slot) String() string {
	switch {
	case s.owner == NoNode:
		return "root"
	case s.index == nextIndex:
		return s.owner.String() + ".next"
	default:
		return fmt.Sprintf("%v.child[%d]", s.owner, s.index)
	}
}

// Get returns the node held by s.
func (t *Tree) Get(s Slot) ID {
	switch {
	case s.owner == NoNode:
		return t.Root
	case s.index == nextIndex:
		return t.At(s.owner).Next
	default:
		return t.At(s.owner).Children[s.index]
	}
}

// Set stores id in s, replacing whatever s held. The caller is responsible
// for the previous occupant.
func (t *Tree) Set(s Slot, id ID) {
	switch {
	case s.owner == NoNode:
		t.Root = id
	case s.index == nextIndex:
		t.SetNext(s.owner, id)
	default:
		t.At(s.owner).Children[s.index] = id
	}
}

// Take returns the node held by s and leaves s empty.
func (t *Tree) Take(s Slot) ID {
	id := t.Get(s)
	t.Set(s, NoNode)
	return id
}

// TakeNext detaches and returns the successor of id.
func (t *Tree) TakeNext(id ID) ID {
	n := t.At(id)
	next := n.Next
	n.Next = NoNode
	return next
}

// SetNext sets the successor of id.
func (t *Tree) SetNext(id, next ID) {
	n := t.At(id)
	if next != NoNode && n.Kind.IsTerminal() {
		panic(fmt.Sprintf("assertion failed: %v node %v cannot have a successor", n.Kind, id))
	}
	n.Next = next
}

// Chain allocates the given steps linked in order and returns the head.
// It returns NoNode if steps is empty.
func (t *Tree) Chain(steps ...Node) ID {
	return t.ChainTo(NoNode, steps...)
}

// ChainTo is like Chain, but links the last step to tail.
func (t *Tree) ChainTo(tail ID, steps ...Node) ID {
	head := tail
	for i := len(steps) - 1; i >= 0; i-- {
		n := steps[i]
		n.Next = NoNode
		id := t.New(n)
		if head != NoNode {
			t.SetNext(id, head)
		}
		head = id
	}
	return head
}

// NewScope allocates a scope over the given chains.
func (t *Tree) NewScope(children ...ID) ID {
	return t.New(Node{Kind: ScopeKind, Children: children})
}

// Walk calls f for every node reachable from id in depth-first pre-order:
// a node, then its scope children in order, then its successor. If f returns
// false, the children and successor of that node are skipped.
//
// Walk panics if it visits more nodes than are live, which means the links
// form a cycle or share a node.
func (t *Tree) Walk(id ID, f func(id ID, n *Node) bool) {
	stack := []ID{id}
	visited := 0
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == NoNode {
			continue
		}
		n := t.At(id)
		visited++
		Assertf(visited <= t.Live(), "node %v reached again: cycle or shared link", id)
		if !f(id, n) {
			continue
		}
		stack = append(stack, n.Next)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Count returns the number of nodes reachable from id.
func (t *Tree) Count(id ID) int {
	count := 0
	t.Walk(id, func(ID, *Node) bool {
		count++
		return true
	})
	return count
}

// CountKinds returns the number of reachable nodes per kind.
func (t *Tree) CountKinds(id ID) map[Kind]int {
	m := map[Kind]int{}
	t.Walk(id, func(_ ID, n *Node) bool {
		m[n.Kind]++
		return true
	})
	return m
}

// Clone returns a deep copy of the part of t reachable from Root. Nodes are
// renumbered in pre-order; released slots are not carried over.
func (t *Tree) Clone() *Tree {
	c := NewTree()
	c.Root = t.clone(c, t.Root)
	return c
}

// Compact renumbers the live part of t so that its arena holds no released
// slots. IDs from before the call are invalidated. The allocation counters are
// kept.
func (t *Tree) Compact() {
	c := t.Clone()
	t.Root = c.Root
	t.nodes = c.nodes
	t.free = nil
}

func (t *Tree) clone(c *Tree, id ID) ID {
	head := NoNode
	var prev ID
	for ; id != NoNode; id = t.At(id).Next {
		n := t.At(id)
		cid := c.New(n.Label())
		Assertf(c.Live() <= t.Live(), "node %v reached again: cycle or shared link", id)
		for _, child := range n.Children {
			x := t.clone(c, child)
			c.At(cid).Children = append(c.At(cid).Children, x)
		}
		if head == NoNode {
			head = cid
		} else {
			c.SetNext(prev, cid)
		}
		prev = cid
	}
	return head
}

// Equal reports whether the chains at a in t and at b in u have the same
// shape and labels.
func (t *Tree) Equal(a ID, u *Tree, b ID) bool {
	steps := 0
	return t.equal(a, u, b, &steps)
}

func (t *Tree) equal(a ID, u *Tree, b ID, steps *int) bool {
	for a != NoNode && b != NoNode {
		x, y := t.At(a), u.At(b)
		*steps++
		Assertf(*steps <= t.Live(), "node %v reached again: cycle or shared link", a)
		if !sameLabel(x, y) || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !t.equal(x.Children[i], u, y.Children[i], steps) {
				return false
			}
		}
		a, b = x.Next, y.Next
	}
	return a == b
}
