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

package parser_test

import (
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/go-quicktest/qt"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/matchtest"
	"matchopt.dev/go/matcher/format"
	"matchopt.dev/go/matcher/parser"
)

const all = `// Every kind of step.
check_opcode add
check_predicate imm
scope {
	{
		select_child 0
		select_parent
		capture "x y"
		capture_at_child 1 "z"
		check_type i32
		check_type_at_child 1 i8
		check_integer -3
		check_integer 42
		check_same 0
		complete "add\tri"
	}
	{
		complete ""
	}
	{
		check_type i8
	}
}
`

func TestParse(t *testing.T) {
	tree, err := parser.Parse("all.matcher", []byte(all))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(adt.Verify(tree)))
	qt.Assert(t, qt.Equals(tree.Count(tree.Root), 15))

	want := adt.NewTree()
	a := want.Chain(
		adt.SelectChild(0),
		adt.SelectParent(),
		adt.Capture("x y"),
		adt.CaptureAtChild(1, "z"),
		adt.CheckType("i32"),
		adt.CheckTypeAtChild(1, "i8"),
		adt.CheckInteger(-3),
		adt.CheckInteger(42),
		adt.CheckSame(0),
		adt.Complete("add\tri"),
	)
	b := want.Chain(adt.Complete(""))
	c := want.Chain(adt.CheckType("i8"))
	want.Root = want.ChainTo(want.NewScope(a, b, c),
		adt.CheckOpcode("add"), adt.CheckPredicate("imm"))

	qt.Assert(t, qt.IsTrue(tree.Equal(tree.Root, want, want.Root)),
		qt.Commentf("got:\n%s", format.Tree(tree)))
}

func TestRoundTrip(t *testing.T) {
	tree, err := parser.Parse("all.matcher", []byte(all))
	qt.Assert(t, qt.IsNil(err))
	out := format.Tree(tree)
	again, err := parser.Parse("out.matcher", out)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(tree.Equal(tree.Root, again, again.Root)))
	qt.Assert(t, qt.Equals(string(format.Tree(again)), string(out)))
}

func TestRoundTripRandom(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		tree := matchtest.NewGen(seed).Tree()
		src := format.Tree(tree, format.ShowIDs())
		got, err := parser.Parse("gen.matcher", src)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("seed %d:\n%s", seed, src))
		qt.Assert(t, qt.IsTrue(tree.Equal(tree.Root, got, got.Root)), qt.Commentf("seed %d", seed))
	}
}

func TestEmpty(t *testing.T) {
	tree, err := parser.Parse("empty.matcher", []byte("// nothing\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(tree.Root, adt.NoNode))
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		err  string
	}{{
		name: "StepAfterComplete",
		src:  "complete \"a\"\ncapture \"x\"\n",
		err:  `test.matcher:2:1: unexpected step after complete`,
	}, {
		name: "StepAfterScope",
		src:  "scope {\n{\ncomplete \"a\"\n}\n}\ncomplete \"b\"\n",
		err:  `test.matcher:6:1: unexpected step after scope`,
	}, {
		name: "EmptyAlternative",
		src:  "scope {\n\t{\n\t}\n}\n",
		err:  `test.matcher:2:2: empty alternative`,
	}, {
		name: "IntegerOverflow",
		src:  "check_integer 99999999999999999999\n",
		err:  `test.matcher:1:1: invalid integer 99999999999999999999`,
	}, {
		name: "UnknownStep",
		src:  "check_opcode add\ncheck_width 32\n",
		err:  `test.matcher:2:1: .*`,
	}, {
		name: "MissingOperand",
		src:  "select_child\n",
		err:  `test.matcher:\d+:\d+: .*`,
	}, {
		name: "EmptyScope",
		src:  "scope {\n}\n",
		err:  `test.matcher:\d+:\d+: .*`,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.Parse("test.matcher", []byte(tc.src))
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
			var perr participle.Error
			qt.Assert(t, qt.ErrorAs(err, &perr))
		})
	}
}
