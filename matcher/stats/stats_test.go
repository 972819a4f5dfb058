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

package stats_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"matchopt.dev/go/matcher/stats"
)

func TestString(t *testing.T) {
	c := stats.Counts{
		Fused:           5,
		Canceled:        2,
		Classes:         1,
		Merged:          1,
		ScopesCreated:   1,
		ScopesCollapsed: 1,
		Allocs:          6,
		Freed:           11,
		NodesBefore:     14,
		NodesAfter:      9,
		Rounds:          1,
	}
	qt.Assert(t, qt.Equals(c.String(), `Nodes:  14 -> 9
Rounds: 1

Fused:    5
Canceled: 2

Classes:         1
Merged:          1
ScopesCreated:   1
ScopesCollapsed: 1

Allocs: 6
Freed:  11`))
}

func TestAddSince(t *testing.T) {
	a := stats.Counts{Fused: 1, Classes: 2, NodesBefore: 10, NodesAfter: 8, Rounds: 1}
	b := stats.Counts{Fused: 3, Canceled: 1, NodesBefore: 8, NodesAfter: 6, Rounds: 2}

	sum := a
	sum.Add(b)
	qt.Assert(t, qt.Equals(sum, stats.Counts{
		Fused:       4,
		Canceled:    1,
		Classes:     2,
		NodesBefore: 10,
		NodesAfter:  6,
		Rounds:      3,
	}))

	diff := sum.Since(a)
	qt.Assert(t, qt.Equals(diff.Fused, b.Fused))
	qt.Assert(t, qt.Equals(diff.Canceled, b.Canceled))
	qt.Assert(t, qt.Equals(diff.Rounds, b.Rounds))
	qt.Assert(t, qt.Equals(diff.Changes(), int64(4)))

	var zero stats.Counts
	zero.Add(a)
	qt.Assert(t, qt.Equals(zero.NodesBefore, int64(10)))
}
