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

package matchtest

import (
	"testing"

	"github.com/go-quicktest/qt"

	"matchopt.dev/go/internal/core/adt"
)

func TestGenWellFormed(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		g := NewGen(seed)
		tree := g.Tree()
		qt.Assert(t, qt.IsNil(adt.Verify(tree)), qt.Commentf("seed %d", seed))
		qt.Assert(t, qt.Not(qt.IsNil(g.Value())))
	}
}

func TestGenDeterministic(t *testing.T) {
	a, b := NewGen(7).Tree(), NewGen(7).Tree()
	qt.Assert(t, qt.IsTrue(a.Equal(a.Root, b, b.Root)))
}
