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
	"encoding/binary"
	"hash/maphash"
)

var seed = maphash.MakeSeed()

// Hasher defines the node-local hash and equivalence used to factor
// alternatives. Neither looks at successors or children.
//
// Hash and Equal are consistent: if Equal(x, y) then Hash(h, x) and
// Hash(h, y) write the same bytes.
type Hasher struct{}

// Hash writes the kind and operands of n to h.
func (Hasher) Hash(h *maphash.Hash, n Node) {
	var buf [17]byte
	buf[0] = byte(n.Kind)
	ops := n.Kind.Operands()
	if ops&IndexOperand != 0 {
		binary.LittleEndian.PutUint64(buf[1:], uint64(n.Index))
	}
	if ops&ValueOperand != 0 {
		binary.LittleEndian.PutUint64(buf[9:], uint64(n.Value))
	}
	h.Write(buf[:])
	if ops&NameOperand != 0 {
		h.WriteString(n.Name)
	}
}

// Equal reports whether x and y are the same step. Scopes are never equal,
// not even to themselves: two alternations cannot share a prefix.
func (Hasher) Equal(x, y Node) bool {
	if x.Kind == ScopeKind || y.Kind == ScopeKind {
		return false
	}
	return sameLabel(&x, &y)
}

// Hash returns the structural hash of n.
func Hash(n Node) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	Hasher{}.Hash(&h, n)
	return h.Sum64()
}

// Equal reports whether x and y are structurally equal. See Hasher.Equal.
func Equal(x, y Node) bool {
	return Hasher{}.Equal(x, y)
}

func sameLabel(x, y *Node) bool {
	return x.Kind == y.Kind &&
		x.Index == y.Index &&
		x.Name == y.Name &&
		x.Value == y.Value
}

// Contradicts reports whether x and y can never both succeed when evaluated
// at the same focus. It is conservative: false means "might overlap".
func Contradicts(x, y Node) bool {
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case CheckTypeKind, CheckOpcodeKind:
		return x.Name != y.Name
	case CheckTypeAtChildKind:
		return x.Index == y.Index && x.Name != y.Name
	case CheckIntegerKind:
		return x.Value != y.Value
	}
	return false
}
