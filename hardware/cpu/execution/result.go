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

package execution

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
)

// Interrupt identifies the interrupt sequence that followed an instruction.
type Interrupt int

// List of interrupt sequences.
const (
	NoInterrupt Interrupt = iota
	NMI
	IRQ
)

func (i Interrupt) String() string {
	switch i {
	case NMI:
		return "NMI"
	case IRQ:
		return "IRQ"
	}
	return ""
}

// Result records the state and outcome of the most recent CPU instruction.
type Result struct {
	// the address at which the instruction began
	Address uint16

	// a reference to the instruction definition
	Defn *instructions.Definition

	// the number of bytes read during instruction decode. if this value is
	// less than Defn.Bytes then the instruction has not yet been fully
	// decoded
	ByteCount int

	// the operand of the instruction. for branch instructions this is the
	// offset value
	InstructionData uint16

	// the actual number of cycles taken by the instruction. usually the same
	// as Defn.Cycles but in the case of page faults and branches, this value
	// may be different
	Cycles int

	// whether an extra cycle was required because of 8 bit adder overflow
	PageFault bool

	// whether a known buggy code path (in the emulated CPU) was triggered
	CPUBug Bug

	// whether the instruction has completed
	Final bool

	// cycles stolen by OAM DMA or DMC sample fetches once the instruction had
	// completed
	DMACycles int

	// the interrupt sequence (if any) that was run after the instruction and
	// the number of cycles it took
	Interrupt       Interrupt
	InterruptCycles int
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

// TotalCycles returns the number of cycles consumed by the instruction, its
// DMA and any interrupt sequence.
func (r Result) TotalCycles() int {
	return r.Cycles + r.DMACycles + r.InterruptCycles
}

// String returns the instruction in a simple disassembly format.
func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%04X  ???", r.Address)
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%04X  %s", r.Address, r.Defn.Operator))

	switch r.Defn.AddressingMode {
	case instructions.Implied:
	case instructions.Immediate:
		s.WriteString(fmt.Sprintf(" #$%02X", r.InstructionData))
	case instructions.Relative:
		s.WriteString(fmt.Sprintf(" $%02X", r.InstructionData))
	case instructions.Absolute:
		s.WriteString(fmt.Sprintf(" $%04X", r.InstructionData))
	case instructions.ZeroPage:
		s.WriteString(fmt.Sprintf(" $%02X", r.InstructionData))
	case instructions.Indirect:
		s.WriteString(fmt.Sprintf(" ($%04X)", r.InstructionData))
	case instructions.IndexedIndirect:
		s.WriteString(fmt.Sprintf(" ($%02X,X)", r.InstructionData))
	case instructions.IndirectIndexed:
		s.WriteString(fmt.Sprintf(" ($%02X),Y", r.InstructionData))
	case instructions.AbsoluteIndexedX:
		s.WriteString(fmt.Sprintf(" $%04X,X", r.InstructionData))
	case instructions.AbsoluteIndexedY:
		s.WriteString(fmt.Sprintf(" $%04X,Y", r.InstructionData))
	case instructions.ZeroPageIndexedX:
		s.WriteString(fmt.Sprintf(" $%02X,X", r.InstructionData))
	case instructions.ZeroPageIndexedY:
		s.WriteString(fmt.Sprintf(" $%02X,Y", r.InstructionData))
	}

	if r.Interrupt != NoInterrupt {
		s.WriteString(fmt.Sprintf(" [%s]", r.Interrupt))
	}

	return s.String()
}
