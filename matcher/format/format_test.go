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

package format_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/matcher/format"
)

// sample builds the tree shown in the package documentation.
func sample() *adt.Tree {
	t := adt.NewTree()
	a := t.Chain(adt.CheckType("i32"), adt.Complete("add32"))
	b := t.Chain(adt.CheckType("i8"), adt.Complete("add8"))
	t.Root = t.ChainTo(t.NewScope(a, b), adt.CheckOpcode("add"))
	return t
}

func TestTree(t *testing.T) {
	got := format.Tree(sample())
	qt.Assert(t, qt.Equals(string(got), `check_opcode add
scope {
	{
		check_type i32
		complete "add32"
	}
	{
		check_type i8
		complete "add8"
	}
}
`))
}

func TestUseSpaces(t *testing.T) {
	got := format.Tree(sample(), format.UseSpaces(2))
	qt.Assert(t, qt.IsTrue(strings.Contains(string(got), "\n    check_type i8\n")))
	qt.Assert(t, qt.IsFalse(strings.Contains(string(got), "\t")))
}

func TestShowIDs(t *testing.T) {
	got := format.Tree(sample(), format.ShowIDs())
	qt.Assert(t, qt.Equals(string(got), `check_opcode add // n6
scope { // n5
	{
		check_type i32 // n2
		complete "add32" // n1
	}
	{
		check_type i8 // n4
		complete "add8" // n3
	}
}
`))
}

func TestChain(t *testing.T) {
	tr := sample()
	scope := tr.At(tr.Root).Next
	got := format.Chain(tr, tr.At(scope).Children[1])
	qt.Assert(t, qt.Equals(string(got), "check_type i8\ncomplete \"add8\"\n"))
}

func TestFprint(t *testing.T) {
	var b strings.Builder
	err := format.Fprint(&b, adt.NewTree())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(b.String(), ""))
}
