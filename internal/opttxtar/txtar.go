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

// Package opttxtar runs golden tests stored in txtar archives.
//
// An archive holds input files, such as in.matcher, and golden output files
// under out/NAME. The test function writes its results through the Test,
// which are compared with the golden files. With MATCHOPT_UPDATE=1, the
// golden files are rewritten instead.
package opttxtar

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"matchopt.dev/go/internal/core/adt"
	"matchopt.dev/go/internal/core/sim"
	"matchopt.dev/go/internal/matchtest"
	"matchopt.dev/go/matcher/parser"
)

// A TxTarTest runs all txtar archives below a directory.
type TxTarTest struct {
	// Root is the directory to search for .txtar files.
	Root string

	// Name selects the golden files: results are compared with out/Name.
	Name string

	// Update rewrites golden files that differ from the results.
	Update bool

	// Skip maps test names to the reason they are skipped.
	Skip map[string]string
}

// A Test is a single archive being run. It embeds *testing.T for reporting
// and is an io.Writer for the default golden file.
type Test struct {
	*testing.T

	Archive *txtar.Archive

	// Dir is the absolute path of the directory holding the archive.
	Dir string

	prefix   string
	buf      *bytes.Buffer
	outFiles []file
}

type file struct {
	name string
	buf  *bytes.Buffer
}

func (t *Test) Write(b []byte) (n int, err error) {
	if t.buf == nil {
		t.buf = &bytes.Buffer{}
		t.outFiles = append(t.outFiles, file{t.prefix, t.buf})
	}
	return t.buf.Write(b)
}

// Writer returns a writer for the golden file out/Name/name, or for out/Name
// if name is empty.
func (t *Test) Writer(name string) io.Writer {
	if name == "" {
		name = t.prefix
	} else {
		name = path.Join(t.prefix, name)
	}
	for _, f := range t.outFiles {
		if f.name == name {
			return f.buf
		}
	}
	w := &bytes.Buffer{}
	t.outFiles = append(t.outFiles, file{name, w})
	if name == t.prefix {
		t.buf = w
	}
	return w
}

// HasTag reports whether the archive comment has a line "#key".
func (t *Test) HasTag(key string) bool {
	tag := []byte("#" + key)
	s := bufio.NewScanner(bytes.NewReader(t.Archive.Comment))
	for s.Scan() {
		if bytes.Equal(bytes.TrimSpace(s.Bytes()), tag) {
			return true
		}
	}
	return false
}

// Value returns the value of a comment line "#key: value".
func (t *Test) Value(key string) (value string, ok bool) {
	prefix := []byte("#" + key + ":")
	s := bufio.NewScanner(bytes.NewReader(t.Archive.Comment))
	for s.Scan() {
		if b := s.Bytes(); bytes.HasPrefix(b, prefix) {
			return string(bytes.TrimSpace(b[len(prefix):])), true
		}
	}
	return "", false
}

// Bool reports whether the comment has a line "#key: true".
func (t *Test) Bool(key string) bool {
	s, ok := t.Value(key)
	return ok && s == "true"
}

// File returns the contents of the named archive file.
func (t *Test) File(name string) ([]byte, bool) {
	for _, f := range t.Archive.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// Files returns the names of the archive files matching pattern, in archive
// order. Golden files are never included.
func (t *Test) Files(pattern string) []string {
	var names []string
	for _, f := range t.Archive.Files {
		if strings.HasPrefix(f.Name, "out/") {
			continue
		}
		if ok, _ := path.Match(pattern, f.Name); ok {
			names = append(names, f.Name)
		}
	}
	return names
}

// Tree parses the named archive file as a matcher tree. It fails the test if
// the file is missing or malformed.
func (t *Test) Tree(name string) *adt.Tree {
	t.Helper()
	data, ok := t.File(name)
	if !ok {
		t.Fatalf("archive has no file %s", name)
	}
	tree, err := parser.Parse(name, data)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

// Input decodes the named archive file as a simulator input.
func (t *Test) Input(name string) *sim.Value {
	t.Helper()
	data, ok := t.File(name)
	if !ok {
		t.Fatalf("archive has no file %s", name)
	}
	v, err := sim.Decode(data)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return v
}

// Run runs f for every .txtar file below Root. The test name is the path of
// the archive relative to the enclosing testdata directory.
func (x *TxTarTest) Run(t *testing.T, f func(tc *Test)) {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	err = filepath.WalkDir(x.Root, func(fullpath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(fullpath) != ".txtar" {
			return nil
		}

		str := filepath.ToSlash(fullpath)
		testName := strings.TrimSuffix(str, ".txtar")
		if p := strings.Index(str, "testdata/"); p >= 0 {
			testName = testName[p+len("testdata/"):]
		}

		t.Run(testName, func(t *testing.T) {
			a, err := txtar.ParseFile(fullpath)
			if err != nil {
				t.Fatalf("error parsing txtar file: %v", err)
			}
			tc := &Test{
				T:       t,
				Archive: a,
				Dir:     filepath.Dir(filepath.Join(dir, fullpath)),
				prefix:  path.Join("out", x.Name),
			}
			if tc.HasTag("skip") {
				t.Skip()
			}
			if msg, ok := x.Skip[testName]; ok {
				t.Skip(msg)
			}

			f(tc)

			if x.check(tc) {
				if err := os.WriteFile(fullpath, txtar.Format(a), 0o666); err != nil {
					t.Fatal(err)
				}
			}
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

// check compares the results of tc with the golden files and reports whether
// the archive was modified.
func (x *TxTarTest) check(tc *Test) (update bool) {
	a := tc.Archive
	for _, sub := range tc.outFiles {
		var gold *txtar.File
		for i := range a.Files {
			if a.Files[i].Name == sub.name {
				gold = &a.Files[i]
			}
		}
		result := sub.buf.Bytes()
		switch {
		case gold == nil:
			a.Files = append(a.Files, txtar.File{Name: sub.name})
			gold = &a.Files[len(a.Files)-1]
		case bytes.Equal(gold.Data, result):
			continue
		}
		if x.Update || matchtest.UpdateGoldenFiles {
			update = true
			gold.Data = result
			continue
		}
		tc.Errorf("result for %s differs: (-want +got)\n%s",
			sub.name, cmp.Diff(string(gold.Data), string(result)))
	}
	return update
}
