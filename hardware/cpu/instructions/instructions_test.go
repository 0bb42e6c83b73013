// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/test"
)

func TestTable(t *testing.T) {
	for i, defn := range instructions.Definitions {
		test.ExpectEquality(t, int(defn.OpCode), i)
		test.ExpectInequality(t, defn.Operator.String(), "unknown operator", defn.OpCode)
	}

	jams := 0
	for _, defn := range instructions.Definitions {
		if defn.Operator == instructions.KIL {
			jams++
		}
	}
	test.ExpectEquality(t, jams, 12)
}

func TestDefinitions(t *testing.T) {
	brk := instructions.Definitions[0x00]
	test.ExpectEquality(t, brk.Operator, instructions.Brk)
	test.ExpectEquality(t, brk.Bytes, 2)
	test.ExpectEquality(t, brk.Cycles, 7)
	test.ExpectEquality(t, brk.Effect, instructions.Interrupt)

	lda := instructions.Definitions[0xb1]
	test.ExpectEquality(t, lda.Operator, instructions.Lda)
	test.ExpectEquality(t, lda.AddressingMode, instructions.IndirectIndexed)
	test.ExpectEquality(t, lda.PageSensitive, true)
	test.ExpectEquality(t, lda.Undocumented(), false)

	sta := instructions.Definitions[0x9d]
	test.ExpectEquality(t, sta.Effect, instructions.Write)
	test.ExpectEquality(t, sta.PageSensitive, false)
	test.ExpectEquality(t, sta.Cycles, 5)

	dcp := instructions.Definitions[0xc3]
	test.ExpectEquality(t, dcp.Operator, instructions.DCP)
	test.ExpectEquality(t, dcp.Cycles, 8)
	test.ExpectEquality(t, dcp.Undocumented(), true)
	test.ExpectEquality(t, dcp.Operator.String(), "DCP")

	bne := instructions.Definitions[0xd0]
	test.ExpectEquality(t, bne.IsBranch(), true)
	test.ExpectEquality(t, instructions.Definitions[0x4c].IsBranch(), false)
}
