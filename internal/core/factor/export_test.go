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

package factor

import "matchopt.dev/go/internal/core/adt"

// TreeWithHash is like Tree, but buckets alternatives with the given hash.
func TreeWithHash(t *adt.Tree, cfg *Config, hash func(adt.Node) uint64) {
	chainWithHash(t, adt.RootSlot(), cfg, hash)
}
