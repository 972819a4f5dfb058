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
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDecode(t *testing.T) {
	v, err := Decode([]byte(`
opcode: add
type: i32
operands:
  - {opcode: load, type: i32, preds: [imm]}
  - {opcode: const, type: i8, int: -4}
`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v, &Value{
		Opcode: "add",
		Type:   "i32",
		Operands: []*Value{
			{Opcode: "load", Type: "i32", Preds: []string{"imm"}},
			{Opcode: "const", Type: "i8", Int: -4},
		},
	}))
	qt.Assert(t, qt.Equals(v.String(), "add:i32(load:i32[imm], const:i8=-4)"))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	qt.Assert(t, qt.ErrorMatches(err, `decoding input: empty document`))

	_, err = Decode([]byte("opcode: add\nwidth: 32\n"))
	qt.Assert(t, qt.ErrorMatches(err, `(?s)decoding input: yaml: unmarshal errors:.*field width not found.*`))
}

func TestOperand(t *testing.T) {
	v := input()
	qt.Assert(t, qt.Equals(v.Operand(1).Opcode, "const"))
	qt.Assert(t, qt.Equals(v.Operand(2), absent))
	qt.Assert(t, qt.Equals(v.Operand(-1), absent))
	var nilValue *Value
	qt.Assert(t, qt.Equals(nilValue.Operand(0), absent))
	qt.Assert(t, qt.Equals(absent.String(), "_"))
}
