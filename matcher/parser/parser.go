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

// Package parser reads matcher trees in the text format written by package
// format.
package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"matchopt.dev/go/internal/core/adt"
)

type chainNode struct {
	Steps []*stepNode `parser:"@@*"`
}

type stepNode struct {
	Pos lexer.Position

	Scope            *scopeNode  `parser:"  'scope' '{' @@ '}'"`
	SelectChild      *int        `parser:"| 'select_child' @Int"`
	SelectParent     bool        `parser:"| @'select_parent'"`
	Capture          *string     `parser:"| 'capture' @String"`
	CaptureAtChild   *indexName  `parser:"| 'capture_at_child' @@"`
	CheckType        *string     `parser:"| 'check_type' @Ident"`
	CheckTypeAtChild *indexIdent `parser:"| 'check_type_at_child' @@"`
	CheckOpcode      *string     `parser:"| 'check_opcode' @Ident"`
	CheckInteger     *string     `parser:"| 'check_integer' @('-'? Int)"`
	CheckSame        *int        `parser:"| 'check_same' @Int"`
	CheckPredicate   *string     `parser:"| 'check_predicate' @Ident"`
	Complete         *string     `parser:"| 'complete' @String"`
}

type scopeNode struct {
	Alts []*altNode `parser:"@@+"`
}

type altNode struct {
	Pos   lexer.Position
	Chain *chainNode `parser:"'{' @@ '}'"`
}

type indexName struct {
	Index int    `parser:"@Int"`
	Name  string `parser:"@String"`
}

type indexIdent struct {
	Index int    `parser:"@Int"`
	Name  string `parser:"@Ident"`
}

var parser = participle.MustBuild[chainNode](
	participle.Unquote("String"),
)

// Parse parses the text form of a matcher tree. The filename is only used
// in error positions.
//
// Errors are of type participle.Error and carry the position of the
// offending token.
func Parse(filename string, src []byte) (*adt.Tree, error) {
	ast, err := parser.ParseBytes(filename, src)
	if err != nil {
		return nil, err
	}
	t := adt.NewTree()
	root, err := build(t, ast)
	if err != nil {
		return nil, err
	}
	t.Root = root
	return t, nil
}

// build allocates the chain back to front, so every node is created after
// its successor.
func build(t *adt.Tree, c *chainNode) (adt.ID, error) {
	next := adt.NoNode
	for i := len(c.Steps) - 1; i >= 0; i-- {
		st := c.Steps[i]
		n, err := label(st)
		if err != nil {
			return adt.NoNode, err
		}
		if n.Kind.IsTerminal() && i != len(c.Steps)-1 {
			return adt.NoNode, participle.Errorf(c.Steps[i+1].Pos,
				"unexpected step after %s", n.Kind)
		}
		var id adt.ID
		if n.Kind == adt.ScopeKind {
			children := make([]adt.ID, 0, len(st.Scope.Alts))
			for _, alt := range st.Scope.Alts {
				if len(alt.Chain.Steps) == 0 {
					return adt.NoNode, participle.Errorf(alt.Pos, "empty alternative")
				}
				child, err := build(t, alt.Chain)
				if err != nil {
					return adt.NoNode, err
				}
				children = append(children, child)
			}
			id = t.NewScope(children...)
		} else {
			id = t.New(n)
			if next != adt.NoNode {
				t.SetNext(id, next)
			}
		}
		next = id
	}
	return next, nil
}

func label(st *stepNode) (adt.Node, error) {
	switch {
	case st.Scope != nil:
		return adt.Scope(), nil
	case st.SelectChild != nil:
		return adt.SelectChild(*st.SelectChild), nil
	case st.SelectParent:
		return adt.SelectParent(), nil
	case st.Capture != nil:
		return adt.Capture(*st.Capture), nil
	case st.CaptureAtChild != nil:
		return adt.CaptureAtChild(st.CaptureAtChild.Index, st.CaptureAtChild.Name), nil
	case st.CheckType != nil:
		return adt.CheckType(*st.CheckType), nil
	case st.CheckTypeAtChild != nil:
		return adt.CheckTypeAtChild(st.CheckTypeAtChild.Index, st.CheckTypeAtChild.Name), nil
	case st.CheckOpcode != nil:
		return adt.CheckOpcode(*st.CheckOpcode), nil
	case st.CheckInteger != nil:
		v, err := strconv.ParseInt(*st.CheckInteger, 10, 64)
		if err != nil {
			return adt.Node{}, participle.Errorf(st.Pos, "invalid integer %s", *st.CheckInteger)
		}
		return adt.CheckInteger(v), nil
	case st.CheckSame != nil:
		return adt.CheckSame(*st.CheckSame), nil
	case st.CheckPredicate != nil:
		return adt.CheckPredicate(*st.CheckPredicate), nil
	case st.Complete != nil:
		return adt.Complete(*st.Complete), nil
	}
	return adt.Node{}, participle.Errorf(st.Pos, "empty step")
}
