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

// Package stats holds counters describing what an optimizer run did.
package stats

import (
	"strings"
	"sync"
	"text/template"
)

// Counts holds counters for key events during an optimizer run.
type Counts struct {
	// Fusion counters

	// Fused counts pairs of steps replaced by a single fused step, such as
	// select_child followed by capture.
	Fused int64

	// Canceled counts select_child/select_parent pairs removed because they
	// undo each other.
	Canceled int64

	// Factoring counters

	// Classes counts groups of two or more alternatives that were merged
	// behind a shared head.
	Classes int64

	// Merged counts duplicate heads released while merging classes. It is
	// at least Classes.
	Merged int64

	// ScopesCreated counts scopes introduced to hold the suffixes of a class.
	ScopesCreated int64

	// ScopesCollapsed counts scopes replaced by their single remaining
	// alternative.
	ScopesCollapsed int64

	// Node counters

	Allocs int64 // Nodes allocated during the run.
	Freed  int64 // Nodes released during the run.

	// NodesBefore and NodesAfter are the reachable node counts of the input
	// and output tree.
	NodesBefore int64
	NodesAfter  int64

	// Rounds is the number of fusion+factoring rounds. It is 1 unless the
	// driver runs to a fix point.
	Rounds int64
}

// Changes reports the number of rewrites recorded in c.
func (c Counts) Changes() int64 {
	return c.Fused + c.Canceled + c.Classes + c.ScopesCollapsed
}

// Add accumulates the counters of other into c. NodesBefore keeps the first
// value seen and NodesAfter the last.
func (c *Counts) Add(other Counts) {
	c.Fused += other.Fused
	c.Canceled += other.Canceled
	c.Classes += other.Classes
	c.Merged += other.Merged
	c.ScopesCreated += other.ScopesCreated
	c.ScopesCollapsed += other.ScopesCollapsed
	c.Allocs += other.Allocs
	c.Freed += other.Freed
	c.Rounds += other.Rounds

	if c.NodesBefore == 0 {
		c.NodesBefore = other.NodesBefore
	}
	if other.NodesAfter != 0 {
		c.NodesAfter = other.NodesAfter
	}
}

// Since returns the counters accumulated since start was taken.
func (c Counts) Since(start Counts) Counts {
	c.Fused -= start.Fused
	c.Canceled -= start.Canceled
	c.Classes -= start.Classes
	c.Merged -= start.Merged
	c.ScopesCreated -= start.ScopesCreated
	c.ScopesCollapsed -= start.ScopesCollapsed
	c.Allocs -= start.Allocs
	c.Freed -= start.Freed
	c.Rounds -= start.Rounds

	// Node counts are snapshots, not accumulators.

	return c
}

var stats = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("stats").Parse(`{{"" -}}

Nodes:  {{.NodesBefore}} -> {{.NodesAfter}}
Rounds: {{.Rounds}}

Fused:    {{.Fused}}
Canceled: {{.Canceled}}

Classes:         {{.Classes}}
Merged:          {{.Merged}}
ScopesCreated:   {{.ScopesCreated}}
ScopesCollapsed: {{.ScopesCollapsed}}

Allocs: {{.Allocs}}
Freed:  {{.Freed}}`))
})

func (c Counts) String() string {
	buf := &strings.Builder{}
	err := stats().Execute(buf, c)
	if err != nil {
		panic(err)
	}
	return buf.String()
}
