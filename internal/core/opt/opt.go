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

// Package opt runs the matcher optimizer: fusion of adjacent steps followed
// by factoring of common prefixes.
package opt

import (
	"go.uber.org/zap"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/factor"
	"matchopt.dev/go/internal/core/fuse"
	"matchopt.dev/go/matcher/stats"
)

// DefaultMaxRounds bounds the number of rounds in fix-point mode.
const DefaultMaxRounds = 8

// Config controls an optimizer run. The zero value runs fusion with the
// default rules and then factoring, once.
type Config struct {
	// NoFuse and NoFactor disable the respective pass.
	NoFuse   bool
	NoFactor bool

	// Rules is the fusion rule table. If nil, fuse.DefaultRules is used.
	Rules []fuse.Rule

	// Fixpoint repeats both passes until a round changes nothing, or until
	// MaxRounds rounds have run. Factoring can leave a chain in a shape that
	// fusion rewrites, for instance when a scope collapses behind a
	// select_child.
	Fixpoint  bool
	MaxRounds int

	// Strict verifies the tree before and after every pass and panics with
	// an *adt.InvariantError if it is malformed.
	Strict bool

	// Counts, if not nil, accumulates statistics for the run.
	Counts *stats.Counts

	// Log receives debug output for every rewrite. It defaults to a no-op
	// logger.
	Log *zap.Logger
}

// Optimize rewrites t into an equivalent, smaller tree and returns it.
//
// Optimize takes ownership of t: nodes are released and allocated in its
// arena and t.Root is replaced. Callers must use the returned tree and must
// not hold on to IDs from before the call.
func Optimize(t *adt.Tree, cfg *Config) *adt.Tree {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.Counts == nil {
		c.Counts = &stats.Counts{}
	}
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	rounds := 1
	if c.Fixpoint {
		rounds = c.MaxRounds
		if rounds <= 0 {
			rounds = DefaultMaxRounds
		}
	}

	counts := c.Counts
	start := *counts
	allocs, frees := t.Allocs(), t.Frees()
	before := int64(t.Count(t.Root))

	c.verify(t, "input")
	for i := 0; i < rounds; i++ {
		round := *counts
		if !c.NoFuse {
			fuse.Tree(t, &fuse.Config{Rules: c.Rules, Counts: counts, Log: c.Log})
			c.verify(t, "fusion")
		}
		if !c.NoFactor {
			factor.Tree(t, &factor.Config{Counts: counts, Log: c.Log})
			c.verify(t, "factoring")
		}
		counts.Rounds++
		if counts.Since(round).Changes() == 0 {
			break
		}
	}

	counts.Allocs += t.Allocs() - allocs
	counts.Freed += t.Frees() - frees
	counts.NodesBefore = before
	counts.NodesAfter = int64(t.Count(t.Root))

	run := counts.Since(start)
	c.Log.Info("optimized",
		zap.Int64("before", counts.NodesBefore),
		zap.Int64("after", counts.NodesAfter),
		zap.Int64("rounds", run.Rounds),
		zap.Int64("fused", run.Fused),
		zap.Int64("canceled", run.Canceled),
		zap.Int64("classes", run.Classes))
	return t
}

func (c *Config) verify(t *adt.Tree, stage string) {
	if !c.Strict {
		return
	}
	if err := adt.Verify(t); err != nil {
		c.Log.Error("invalid tree", zap.String("after", stage), zap.Error(err))
		panic(err)
	}
}
