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

	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
)

// Decode performs a linear disassembly of data. The origin is the address of
// the first byte of data.
func Decode(origin uint16, data []uint8) []Entry {
	entries := make([]Entry, 0, len(data)/2)

	for i := 0; i < len(data); {
		addr := origin + uint16(i)
		e := decode(addr, data[i:])
		entries = append(entries, e)
		i += len(e.Bytecode)
	}

	return entries
}

// decode the instruction at the start of data. the data slice may be longer
// than the instruction
func decode(addr uint16, data []uint8) Entry {
	defn := &instructions.Definitions[data[0]]

	// the instruction is truncated by the end of the data
	if defn.Bytes > len(data) {
		return Entry{
			Address:  addr,
			Bytecode: data[:1],
			Operator: ".byte",
			Operand:  fmt.Sprintf("$%02x", data[0]),
		}
	}

	e := Entry{
		Address:  addr,
		Defn:     defn,
		Bytecode: data[:defn.Bytes],
		Operator: defn.Operator.String(),
	}

	var operand uint16
	switch defn.Bytes {
	case 2:
		operand = uint16(data[1])
	case 3:
		operand = uint16(data[1]) | uint16(data[2])<<8
	}

	e.Operand = formatOperand(addr, defn, operand)

	return e
}

func formatOperand(addr uint16, defn *instructions.Definition, operand uint16) string {
	switch defn.AddressingMode {
	case instructions.Implied:
		return ""
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", operand)
	case instructions.Relative:
		return fmt.Sprintf("$%04x", addr+2+uint16(int8(operand)))
	case instructions.Absolute:
		if s, ok := symbols[operand]; ok {
			return s
		}
		return fmt.Sprintf("$%04x", operand)
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", operand)
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", operand)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("($%02x,X)", operand)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("($%02x),Y", operand)
	case instructions.AbsoluteIndexedX:
		if s, ok := symbols[operand]; ok {
			return s + ",X"
		}
		return fmt.Sprintf("$%04x,X", operand)
	case instructions.AbsoluteIndexedY:
		if s, ok := symbols[operand]; ok {
			return s + ",Y"
		}
		return fmt.Sprintf("$%04x,Y", operand)
	case instructions.ZeroPageIndexedX:
		return fmt.Sprintf("$%02x,X", operand)
	case instructions.ZeroPageIndexedY:
		return fmt.Sprintf("$%02x,Y", operand)
	}
	return "?"
}
