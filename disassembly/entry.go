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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
)

// Entry is a single disassembled instruction.
type Entry struct {
	Address uint16

	// the PRG bank the entry was found in. always zero for disassemblies of
	// a byte slice
	Bank int

	// the definition of the instruction. nil if the entry is data rather
	// than an instruction
	Defn *instructions.Definition

	// the bytes that make up the instruction including the opcode
	Bytecode []uint8

	Operator string
	Operand  string
}

// String returns the entry with the address and the bytecode.
func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("$%04x  ", e.Address))

	bc := make([]string, 0, 3)
	for _, b := range e.Bytecode {
		bc = append(bc, fmt.Sprintf("%02x", b))
	}
	s.WriteString(fmt.Sprintf("%-8s  ", strings.Join(bc, " ")))

	s.WriteString(e.Instruction())
	return strings.TrimRight(s.String(), " ")
}

// Instruction returns the operator and operand of the entry.
func (e Entry) Instruction() string {
	if e.Operand == "" {
		return e.Operator
	}
	return fmt.Sprintf("%s %s", e.Operator, e.Operand)
}
