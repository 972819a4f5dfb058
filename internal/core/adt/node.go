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

// Package adt defines the matcher tree: an arena of nodes forming chains
// that branch only at scope nodes.
//
// Nodes are addressed by ID. An ID stays valid until the node is freed, even
// when the arena grows; pointers returned by [Tree.At] do not, so callers
// must not hold them across calls that allocate.
package adt

import (
	"fmt"
	"strconv"
	"strings"
)

// An ID addresses a node in a Tree.
type ID int32

// NoNode is the empty link: the end of a chain.
const NoNode ID = 0

func (id ID) String() string {
	if id == NoNode {
		return "nil"
	}
	return "n" + strconv.Itoa(int(id))
}

// A Node is a single matcher step.
//
// Only the operand fields reported by Kind.Operands are meaningful; the
// others are zero.
type Node struct {
	Kind Kind

	// Index is the operand position for SelectChild and the AtChild kinds,
	// and the capture number for CheckSame.
	Index int

	// Name is the capture name, type, opcode, predicate or rule.
	Name string

	// Value is the constant for CheckInteger.
	Value int64

	// Next is the successor. It is NoNode for terminal kinds.
	Next ID

	// Children are the alternatives of a scope, in priority order.
	Children []ID

	live bool
}

// Label returns the node without its links.
func (n Node) Label() Node {
	return Node{Kind: n.Kind, Index: n.Index, Name: n.Name, Value: n.Value}
}

// String formats the node's kind and operands the way the text format does.
func (n Node) String() string {
	var b strings.Builder
	b.WriteString(n.Kind.String())
	ops := n.Kind.Operands()
	if ops&IndexOperand != 0 {
		fmt.Fprintf(&b, " %d", n.Index)
	}
	if ops&NameOperand != 0 {
		if n.Kind.QuotedName() {
			fmt.Fprintf(&b, " %q", n.Name)
		} else {
			fmt.Fprintf(&b, " %s", n.Name)
		}
	}
	if ops&ValueOperand != 0 {
		fmt.Fprintf(&b, " %d", n.Value)
	}
	return b.String()
}

// Constructors for node labels. Links are set by the Tree.

func Scope() Node { return Node{Kind: ScopeKind} }
func SelectChild(i int) Node { return Node{Kind: SelectChildKind, Index: i} }
func SelectParent() Node { return Node{Kind: SelectParentKind} }
func Capture(name string) Node { return Node{Kind: CaptureKind, Name: name} }
func CheckType(typ string) Node { return Node{Kind: CheckTypeKind, Name: typ} }
func CheckOpcode(op string) Node { return Node{Kind: CheckOpcodeKind, Name: op} }
func CheckInteger(v int64) Node { return Node{Kind: CheckIntegerKind, Value: v} }
func CheckSame(capture int) Node { return Node{Kind: CheckSameKind, Index: capture} }
func CheckPredicate(p string) Node { return Node{Kind: CheckPredicateKind, Name: p} }
func Complete(rule string) Node { return Node{Kind: CompleteKind, Name: rule} }
func CaptureAtChild(i int, name string) Node {
	return Node{Kind: CaptureAtChildKind, Index: i, Name: name}
}
func CheckTypeAtChild(i int, typ string) Node {
	return Node{Kind: CheckTypeAtChildKind, Index: i, Name: typ}
}
