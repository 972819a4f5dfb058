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

// Package matchtest is a helper package for tests of the matcher optimizer.
// It should only be imported in _test.go files and test helpers.
package matchtest

import (
	"os"

	"github.com/kr/pretty"
)

// UpdateGoldenFiles determines whether golden tests should rewrite their
// expected output when it differs. It corresponds to
// testscript.Params.UpdateScripts.
var UpdateGoldenFiles = os.Getenv("MATCHOPT_UPDATE") != ""

// Dump returns a multi-line rendering of x for failure messages.
func Dump(x any) string {
	return pretty.Sprint(x)
}
