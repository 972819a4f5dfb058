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

// Package format prints matcher trees in the text format read by package
// parser.
//
// Each step is printed on its own line. A scope prints each alternative as a
// braced block:
//
//	check_opcode add
//	scope {
//		{
//			check_type i32
//			complete "add32"
//		}
//		{
//			check_type i8
//			complete "add8"
//		}
//	}
package format

import (
	"bytes"
	"io"
	"strings"

	"matchopt.dev/go/internal/core/adt"
)

// An Option sets behavior of the printer.
type Option func(c *config)

// UseSpaces specifies that indentation should use n spaces instead of a tab.
func UseSpaces(n int) Option {
	return func(c *config) {
		c.indent = strings.Repeat(" ", n)
	}
}

// ShowIDs annotates every step with the ID of its node. The annotation is a
// comment and is ignored by the parser.
func ShowIDs() Option {
	return func(c *config) { c.ids = true }
}

type config struct {
	indent string
	ids    bool
}

func newConfig(opts []Option) *config {
	c := &config{indent: "\t"}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Tree returns the text form of the tree.
func Tree(t *adt.Tree, opts ...Option) []byte {
	return Chain(t, t.Root, opts...)
}

// Chain returns the text form of the chain starting at id.
func Chain(t *adt.Tree, id adt.ID, opts ...Option) []byte {
	var buf bytes.Buffer
	p := &printer{config: newConfig(opts), t: t, w: &buf}
	p.chain(id, 0)
	return buf.Bytes()
}

// Fprint writes the text form of the tree to w.
func Fprint(w io.Writer, t *adt.Tree, opts ...Option) error {
	_, err := w.Write(Tree(t, opts...))
	return err
}

type printer struct {
	*config
	t *adt.Tree
	w *bytes.Buffer
}

func (p *printer) line(depth int, s string, id adt.ID) {
	for i := 0; i < depth; i++ {
		p.w.WriteString(p.indent)
	}
	p.w.WriteString(s)
	if p.ids && id != adt.NoNode {
		p.w.WriteString(" // ")
		p.w.WriteString(id.String())
	}
	p.w.WriteByte('\n')
}

func (p *printer) chain(id adt.ID, depth int) {
	for ; id != adt.NoNode; id = p.t.At(id).Next {
		n := p.t.At(id)
		if n.Kind != adt.ScopeKind {
			p.line(depth, n.Label().String(), id)
			continue
		}
		p.line(depth, "scope {", id)
		for _, c := range n.Children {
			p.line(depth+1, "{", adt.NoNode)
			p.chain(c, depth+2)
			p.line(depth+1, "}", adt.NoNode)
		}
		p.line(depth, "}", adt.NoNode)
	}
}
