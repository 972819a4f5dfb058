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

// A Kind is the variant tag of a matcher node.
//
// The set of kinds is closed. Passes switch over it exhaustively and panic
// on a kind they do not know.
type Kind uint8

const (
	invalidKind Kind = iota

	// ScopeKind tries each child chain in order and stops at the first one
	// that matches. A scope has no successor of its own.
	ScopeKind

	// SelectChildKind makes operand Index of the focus the new focus.
	SelectChildKind

	// SelectParentKind makes the node enclosing the focus the new focus.
	SelectParentKind

	// CaptureKind records the focus under Name.
	CaptureKind

	// CaptureAtChildKind records operand Index of the focus under Name
	// without moving the focus.
	CaptureAtChildKind

	// CheckTypeKind asserts that the focus has type Name.
	CheckTypeKind

	// CheckTypeAtChildKind asserts that operand Index of the focus has type
	// Name without moving the focus.
	CheckTypeAtChildKind

	// CheckOpcodeKind asserts that the focus has opcode Name.
	CheckOpcodeKind

	// CheckIntegerKind asserts that the focus is the constant Value.
	CheckIntegerKind

	// CheckSameKind asserts that the focus is the value recorded by capture
	// number Index.
	CheckSameKind

	// CheckPredicateKind asserts that the named predicate holds for the
	// focus.
	CheckPredicateKind

	// CompleteKind ends a chain: rule Name matched. It has no successor.
	CompleteKind

	numKinds
)

var kindNames = [numKinds]string{
	invalidKind:          "invalid",
	ScopeKind:            "scope",
	SelectChildKind:      "select_child",
	SelectParentKind:     "select_parent",
	CaptureKind:          "capture",
	CaptureAtChildKind:   "capture_at_child",
	CheckTypeKind:        "check_type",
	CheckTypeAtChildKind: "check_type_at_child",
	CheckOpcodeKind:      "check_opcode",
	CheckIntegerKind:     "check_integer",
	CheckSameKind:        "check_same",
	CheckPredicateKind:   "check_predicate",
	CompleteKind:         "complete",
}

// String returns the keyword used for k in the text format.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns all valid kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds-1)
	for k := ScopeKind; k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindOf returns the kind for a text-format keyword.
func KindOf(keyword string) (Kind, bool) {
	for k := ScopeKind; k < numKinds; k++ {
		if kindNames[k] == keyword {
			return k, true
		}
	}
	return invalidKind, false
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k > invalidKind && k < numKinds
}

// IsTerminal reports whether nodes of kind k may not have a successor.
func (k Kind) IsTerminal() bool {
	return k == ScopeKind || k == CompleteKind
}

// An Operand describes which fields of a Node a kind uses.
type Operand uint8

const (
	IndexOperand Operand = 1 << iota
	NameOperand
	ValueOperand
)

// Operands reports which operand fields are meaningful for k. The printer,
// parser, hash and equality all derive from this table.
func (k Kind) Operands() Operand {
	switch k {
	case SelectChildKind, CheckSameKind:
		return IndexOperand
	case CaptureAtChildKind, CheckTypeAtChildKind:
		return IndexOperand | NameOperand
	case CaptureKind, CheckTypeKind, CheckOpcodeKind, CheckPredicateKind, CompleteKind:
		return NameOperand
	case CheckIntegerKind:
		return ValueOperand
	case ScopeKind, SelectParentKind:
		return 0
	}
	panic(fmt.Sprintf("unknown kind %v", k))
}

// QuotedName reports whether the Name operand of k is a free-form string
// (printed quoted) rather than an identifier.
func (k Kind) QuotedName() bool {
	switch k {
	case CaptureKind, CaptureAtChildKind, CompleteKind:
		return true
	}
	return false
}
