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

package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode reads a value from its YAML form:
//
//	opcode: add
//	type: i32
//	operands:
//	  - {opcode: load, type: i32}
//	  - {opcode: const, type: i32, int: 4}
func Decode(data []byte) (*Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var v Value
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decoding input: empty document")
		}
		return nil, fmt.Errorf("decoding input: %w", err)
	}
	return &v, nil
}

// String returns a compact, single-line form of v such as
// "add:i32(load:i32, const:i32=4)".
func (v *Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *Value) write(b *strings.Builder) {
	if v == nil || v == absent {
		b.WriteString("_")
		return
	}
	b.WriteString(v.Opcode)
	if v.Type != "" {
		b.WriteString(":")
		b.WriteString(v.Type)
	}
	if v.Int != 0 {
		fmt.Fprintf(b, "=%d", v.Int)
	}
	if len(v.Preds) > 0 {
		fmt.Fprintf(b, "[%s]", strings.Join(v.Preds, ","))
	}
	if len(v.Operands) > 0 {
		b.WriteString("(")
		for i, o := range v.Operands {
			if i > 0 {
				b.WriteString(", ")
			}
			o.write(b)
		}
		b.WriteString(")")
	}
}
