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

package factor_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/factor"
	"matchopt.dev/go/matcher/format"
	"matchopt.dev/go/matcher/parser"
	"matchopt.dev/go/matcher/stats"
)

func parse(t *testing.T, src string) *adt.Tree {
	t.Helper()
	tree, err := parser.Parse("test.matcher", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	return tree
}

func dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	var b strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		b.WriteString(strings.TrimPrefix(line, "\t\t"))
	}
	return b.String()
}

func TestTree(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		out  string
		want stats.Counts
	}{{
		name: "CommonType",
		in: `
		scope {
			{
				check_type i32
				complete "A"
			}
			{
				check_type i32
				complete "B"
			}
			{
				check_type i8
				complete "C"
			}
		}
		`,
		out: `
		scope {
			{
				check_type i32
				scope {
					{
						complete "A"
					}
					{
						complete "B"
					}
				}
			}
			{
				check_type i8
				complete "C"
			}
		}
		`,
		want: stats.Counts{Classes: 1, Merged: 1, ScopesCreated: 1},
	}, {
		name: "HoistPastContradiction",
		in: `
		scope {
			{
				check_type i32
				complete "A"
			}
			{
				check_type i8
				complete "B"
			}
			{
				check_type i32
				complete "C"
			}
		}
		`,
		out: `
		scope {
			{
				check_type i32
				scope {
					{
						complete "A"
					}
					{
						complete "C"
					}
				}
			}
			{
				check_type i8
				complete "B"
			}
		}
		`,
		want: stats.Counts{Classes: 1, Merged: 1, ScopesCreated: 1},
	}, {
		name: "NoHoistPastOverlap",
		in: `
		scope {
			{
				check_type i32
				complete "A"
			}
			{
				check_opcode add
				complete "B"
			}
			{
				check_type i32
				complete "C"
			}
		}
		`,
		out: `
		scope {
			{
				check_type i32
				complete "A"
			}
			{
				check_opcode add
				complete "B"
			}
			{
				check_type i32
				complete "C"
			}
		}
		`,
	}, {
		name: "HeadWithoutTail",
		in: `
		scope {
			{
				check_type i32
			}
			{
				check_type i32
				complete "B"
			}
			{
				complete "C"
			}
			{
				complete "C"
			}
		}
		`,
		out: `
		scope {
			{
				check_type i32
			}
			{
				check_type i32
				complete "B"
			}
			{
				complete "C"
			}
			{
				complete "C"
			}
		}
		`,
	}, {
		name: "Collapse",
		in: `
		check_opcode add
		scope {
			{
				select_child 0
				complete "A"
			}
			{
				select_child 0
				complete "B"
			}
			{
				select_child 0
				complete "C"
			}
		}
		`,
		out: `
		check_opcode add
		select_child 0
		scope {
			{
				complete "A"
			}
			{
				complete "B"
			}
			{
				complete "C"
			}
		}
		`,
		want: stats.Counts{Classes: 1, Merged: 2, ScopesCreated: 1, ScopesCollapsed: 1},
	}, {
		name: "Recursive",
		in: `
		scope {
			{
				check_opcode add
				check_type i32
				complete "A"
			}
			{
				check_opcode add
				check_type i32
				complete "B"
			}
			{
				check_opcode add
				check_type i8
				complete "C"
			}
		}
		`,
		out: `
		check_opcode add
		scope {
			{
				check_type i32
				scope {
					{
						complete "A"
					}
					{
						complete "B"
					}
				}
			}
			{
				check_type i8
				complete "C"
			}
		}
		`,
		want: stats.Counts{Classes: 2, Merged: 3, ScopesCreated: 2, ScopesCollapsed: 1},
	}, {
		name: "InnerScopesFirst",
		in: `
		scope {
			{
				check_opcode add
				scope {
					{
						capture "x"
						complete "A"
					}
					{
						capture "x"
						complete "B"
					}
				}
			}
			{
				check_opcode sub
				complete "C"
			}
		}
		`,
		out: `
		scope {
			{
				check_opcode add
				capture "x"
				scope {
					{
						complete "A"
					}
					{
						complete "B"
					}
				}
			}
			{
				check_opcode sub
				complete "C"
			}
		}
		`,
		want: stats.Counts{Classes: 1, Merged: 1, ScopesCreated: 1, ScopesCollapsed: 1},
	}, {
		name: "ScopesNeverMerge",
		in: `
		scope {
			{
				scope {
					{
						complete "A"
					}
				}
			}
			{
				scope {
					{
						complete "A"
					}
				}
			}
		}
		`,
		out: `
		scope {
			{
				complete "A"
			}
			{
				complete "A"
			}
		}
		`,
		want: stats.Counts{ScopesCollapsed: 2},
	}, {
		name: "NoScope",
		in: `
		check_opcode add
		complete "A"
		`,
		out: `
		check_opcode add
		complete "A"
		`,
	}, {
		// Under the colliding hash every head shares one bucket, so only
		// structural equality keeps i8 and add out of the i32 class.
		name: "SameBucketDifferentHeads",
		in: `
		scope {
			{
				check_type i32
				complete "A"
			}
			{
				check_type i8
				complete "B"
			}
			{
				check_type i32
				complete "C"
			}
			{
				check_opcode add
				complete "D"
			}
		}
		`,
		out: `
		scope {
			{
				check_type i32
				scope {
					{
						complete "A"
					}
					{
						complete "C"
					}
				}
			}
			{
				check_type i8
				complete "B"
			}
			{
				check_opcode add
				complete "D"
			}
		}
		`,
		want: stats.Counts{Classes: 1, Merged: 1, ScopesCreated: 1},
	}}
	hashes := []struct {
		name string
		hash func(adt.Node) uint64
	}{
		{"maphash", adt.Hash},
		{"collide", func(adt.Node) uint64 { return 7 }},
	}
	for _, tc := range testCases {
		for _, h := range hashes {
			t.Run(tc.name+"/"+h.name, func(t *testing.T) {
				tree := parse(t, dedent(tc.in))
				before := tree.Count(tree.Root)

				var counts stats.Counts
				factor.TreeWithHash(tree, &factor.Config{Counts: &counts}, h.hash)

				got := string(format.Tree(tree))
				if diff := cmp.Diff(dedent(tc.out), got); diff != "" {
					t.Errorf("unexpected result (-want +got):\n%s", diff)
				}
				qt.Assert(t, qt.DeepEquals(counts, tc.want))
				qt.Assert(t, qt.IsNil(adt.Verify(tree)))
				qt.Assert(t, qt.IsTrue(tree.Count(tree.Root) <= before))
			})
		}
	}
}

func TestTreeDefaultHash(t *testing.T) {
	tree := parse(t, "scope {\n{ check_type i32 complete \"A\" }\n{ check_type i32 complete \"B\" }\n}\n")
	factor.Tree(tree, nil)
	qt.Assert(t, qt.Equals(string(format.Tree(tree)), dedent(`
		check_type i32
		scope {
			{
				complete "A"
			}
			{
				complete "B"
			}
		}
		`)))
}

func TestCycleInChainPanics(t *testing.T) {
	tree := adt.NewTree()
	head := tree.Chain(adt.CheckType("i32"), adt.CheckOpcode("add"))
	tree.SetNext(tree.At(head).Next, head)
	tree.Root = head
	qt.Assert(t, qt.PanicMatches(func() {
		factor.Tree(tree, nil)
	}, `assertion failed: node n\d+ reached again: cycle in chain`))
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tree := parse(t, "scope {\n{ capture \"x\" complete \"A\" }\n{ capture \"x\" complete \"B\" }\n}\n")
	factor.Tree(tree, &factor.Config{Log: zap.New(core)})

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	qt.Assert(t, qt.DeepEquals(msgs, []string{"factor", "collapse scope"}))
	qt.Assert(t, qt.Equals(logs.All()[0].ContextMap()["size"], any(int64(2))))
}
