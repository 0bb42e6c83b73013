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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/test"
)

const origin = uint16(0x8000)

func TestStatusInstructions(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")

	// SEC; CLC; CLI; SEI; SED; CLD; CLV
	next := mem.putInstructions(origin, 0x38, 0x18, 0x58, 0x78, 0xf8, 0xd8, 0xb8)
	step(t, mc) // SEC
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzC")
	step(t, mc) // CLC
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
	step(t, mc) // CLI
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // SEI
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
	step(t, mc) // SED
	test.ExpectEquality(t, mc.Status.String(), "sv-bDIzc")
	step(t, mc) // CLD
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
	step(t, mc) // CLV
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")

	// PHP; PLP
	mem.putInstructions(next, 0x08, 0x28)
	step(t, mc) // PHP
	test.ExpectEquality(t, mc.SP.Value(), 0xfc)

	// the break bit is set in the pushed value
	mem.assert(t, 0x01fd, 0x34)

	// mangle status register
	mc.Status.Sign = true
	mc.Status.Overflow = true

	step(t, mc) // PLP
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
}

func TestArithmetic(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// LDA #1; ADC #10; SEC; SBC #8
	mem.putInstructions(origin, 0xa9, 1, 0x69, 10, 0x38, 0xe9, 8)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 11)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 3)
	test.ExpectEquality(t, mc.Status.Carry, true)

	// signed overflow. LDA #$7f; CLC; ADC #$01
	mc.LoadPC(origin)
	mem.putInstructions(origin, 0xa9, 0x7f, 0x18, 0x69, 0x01)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x80)
	test.ExpectEquality(t, mc.Status.Overflow, true)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.Status.Carry, false)
}

func TestNoDecimalMode(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// SED; LDA #$09; CLC; ADC #$01; SEC; SBC #$01
	mem.putInstructions(origin, 0xf8, 0xa9, 0x09, 0x18, 0x69, 0x01, 0x38, 0xe9, 0x01)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x0a)
	test.ExpectEquality(t, mc.Status.DecimalMode, true)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x09)

	// the decimal flag is still pushed by PHP
	mem.putInstructions(mc.PC.Address(), 0x08)
	step(t, mc)
	mem.assert(t, 0x01fd, 0x3d)
}

func TestBitwise(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// ORA #$FF; EOR #$F0; AND #$01
	mem.putInstructions(origin, 0x09, 0xff, 0x49, 0xf0, 0x29, 0x01)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0xff)
	test.ExpectEquality(t, mc.Status.Sign, true)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x0f)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x01)

	// BIT $10
	mem.internal[0x10] = 0xc0
	mem.putInstructions(mc.PC.Address(), 0x24, 0x10)
	step(t, mc)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.Status.Overflow, true)
	test.ExpectEquality(t, mc.Status.Zero, true)
}

// every opcode except JAM completes in the number of cycles given by the
// instruction table when no page is crossed
func TestCycleTable(t *testing.T) {
	mem := newMockMem()

	for _, defn := range instructions.Definitions {
		if defn.Operator == instructions.KIL {
			continue
		}

		mem.clear()
		mc := newCPU(mem, origin)
		mem.putInstructions(origin, defn.OpCode)

		err := mc.ExecuteInstruction(cpu.NilCycleCallback)
		if err != nil {
			t.Fatalf("%s: %v", defn, err)
		}
		if err := mc.LastResult.IsValid(); err != nil {
			t.Errorf("%s: %v", defn, err)
		}
		test.ExpectEquality(t, mc.LastResult.PageFault, false, defn)
	}
}

func TestPageCrossing(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// LDX #$01; LDA $80FF,X
	mem.putInstructions(origin, 0xa2, 0x01, 0xbd, 0xff, 0x80)
	mem.internal[0x8100] = 0x55
	step(t, mc)
	r := step(t, mc)
	test.ExpectEquality(t, r.PageFault, true)
	test.ExpectEquality(t, r.Cycles, 5)
	test.ExpectEquality(t, mc.A.Value(), 0x55)

	// STA $80FF,X always takes five cycles and is never a page fault
	mem.putInstructions(mc.PC.Address(), 0x9d, 0xff, 0x80)
	r = step(t, mc)
	test.ExpectEquality(t, r.PageFault, false)
	test.ExpectEquality(t, r.Cycles, 5)

	// LDY #$01; LDA ($20),Y
	mem.put16(0x20, 0x12ff)
	mem.internal[0x1300] = 0x66
	mem.putInstructions(mc.PC.Address(), 0xa0, 0x01, 0xb1, 0x20)
	step(t, mc)
	r = step(t, mc)
	test.ExpectEquality(t, r.PageFault, true)
	test.ExpectEquality(t, r.Cycles, 6)
	test.ExpectEquality(t, mc.A.Value(), 0x66)
}

func TestZeroPageWrapping(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// LDY #$01; LDA ($FF),Y
	mem.internal[0x00ff] = 0x34
	mem.internal[0x0000] = 0x12
	mem.internal[0x0100] = 0x56
	mem.internal[0x1235] = 0x77
	mem.putInstructions(origin, 0xa0, 0x01, 0xb1, 0xff)
	step(t, mc)
	r := step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x77)
	test.ExpectEquality(t, r.CPUBug, execution.IndirectIndexedBug)

	// LDX #$01; LDA ($FE,X)
	mem.internal[0x1234] = 0x88
	mem.putInstructions(mc.PC.Address(), 0xa2, 0x01, 0xa1, 0xfe)
	step(t, mc)
	r = step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x88)
	test.ExpectEquality(t, r.CPUBug, execution.IndexedIndirectBug)

	// LDX #$10; LDA $F8,X
	mem.internal[0x0008] = 0x99
	mem.internal[0x0108] = 0xaa
	mem.putInstructions(mc.PC.Address(), 0xa2, 0x10, 0xb5, 0xf8)
	step(t, mc)
	r = step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x99)
	test.ExpectEquality(t, r.CPUBug, execution.ZeroPageIndexBug)
}

func TestJumps(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// JMP $9000
	mem.putInstructions(origin, 0x4c, 0x00, 0x90)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x9000)

	// JMP ($02FF) reads the high byte from $0200
	mem.internal[0x02ff] = 0x00
	mem.internal[0x0200] = 0xa0
	mem.internal[0x0300] = 0x40
	mem.putInstructions(0x9000, 0x6c, 0xff, 0x02)
	r := step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0xa000)
	test.ExpectEquality(t, r.CPUBug, execution.JmpIndirectAddressingBug)
}

func TestBranching(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// BNE not taken (zero flag is set by LDA #0)
	mem.putInstructions(origin, 0xa9, 0x00, 0xd0, 0x10)
	step(t, mc)
	r := step(t, mc)
	test.ExpectEquality(t, r.Cycles, 2)
	test.ExpectEquality(t, mc.PC.Address(), 0x8004)

	// BEQ taken, no page cross
	mem.putInstructions(0x8004, 0xf0, 0x10)
	r = step(t, mc)
	test.ExpectEquality(t, r.Cycles, 3)
	test.ExpectEquality(t, mc.PC.Address(), 0x8016)

	// BEQ taken, backwards across a page
	mc.LoadPC(0x8100)
	mem.putInstructions(0x8100, 0xf0, 0xfc)
	r = step(t, mc)
	test.ExpectEquality(t, r.Cycles, 4)
	test.ExpectEquality(t, r.PageFault, true)
	test.ExpectEquality(t, mc.PC.Address(), 0x80fe)
}

func TestReadModifyWrite(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// INC $10 writes the unmodified value before the modified value
	mem.internal[0x10] = 0x41
	mem.putInstructions(origin, 0xe6, 0x10)
	r := step(t, mc)
	test.ExpectEquality(t, r.Cycles, 5)
	test.ExpectEquality(t, len(mem.writes), 2)
	test.ExpectEquality(t, mem.writes[0], access{address: 0x10, data: 0x41})
	test.ExpectEquality(t, mem.writes[1], access{address: 0x10, data: 0x42})

	// ASL A
	mem.putInstructions(mc.PC.Address(), 0xa9, 0x81, 0x0a)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x02)
	test.ExpectEquality(t, mc.Status.Carry, true)
}

func TestSubroutines(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// JSR $9000; RTS
	mem.putInstructions(origin, 0x20, 0x00, 0x90)
	mem.putInstructions(0x9000, 0x60)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x9000)
	test.ExpectEquality(t, mc.SP.Value(), 0xfb)
	mem.assert(t, 0x01fd, 0x80)
	mem.assert(t, 0x01fc, 0x02)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x8003)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
}

func TestBreak(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)
	mem.put16(0xfffe, 0x9000)

	// CLI; BRK; (padding)
	mem.putInstructions(origin, 0x58, 0x00, 0xea)
	mem.putInstructions(0x9000, 0x40)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x9000)
	test.ExpectEquality(t, mc.Status.InterruptDisable, true)
	mem.assert(t, 0x01fd, 0x80)
	mem.assert(t, 0x01fc, 0x03)
	mem.assert(t, 0x01fb, 0x30)

	// RTI
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), 0x8003)
	test.ExpectEquality(t, mc.Status.InterruptDisable, false)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
}

func TestNMI(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)
	mem.put16(0xfffa, 0x9000)
	mem.putInstructions(origin, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea)
	mem.putInstructions(0x9000, 0xea, 0x40)

	mc.SetNMILine(true)
	r := step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.NMI)
	test.ExpectEquality(t, r.InterruptCycles, 7)
	test.ExpectEquality(t, mc.PC.Address(), 0x9000)

	// the break bit is clear in the pushed status
	mem.assert(t, 0x01fd, 0x80)
	mem.assert(t, 0x01fc, 0x01)
	mem.assert(t, 0x01fb, 0x24)

	// the line is still high but there has been no new edge
	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.NoInterrupt)
	step(t, mc) // RTI
	test.ExpectEquality(t, mc.PC.Address(), 0x8001)
	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.NoInterrupt)

	// a new edge
	mc.SetNMILine(false)
	step(t, mc)
	mc.SetNMILine(true)
	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.NMI)
}

func TestIRQ(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)
	mem.put16(0xfffe, 0x9000)

	// NOP; CLI; NOP; NOP
	mem.putInstructions(origin, 0xea, 0x58, 0xea, 0xea)

	// the interrupt disable flag is set on power on
	mc.SetIRQLine(true)
	r := step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.NoInterrupt)

	// the effect of CLI is delayed by one instruction
	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.NoInterrupt)
	r = step(t, mc)
	test.ExpectEquality(t, r.Interrupt, execution.IRQ)
	test.ExpectEquality(t, mc.PC.Address(), 0x9000)
	test.ExpectEquality(t, mc.Status.InterruptDisable, true)
	mem.assert(t, 0x01fb, 0x20)
}

func TestJam(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)
	mem.putInstructions(origin, 0xea, 0x02, 0xea)

	step(t, mc)
	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cpu.IllegalOpcode))
	test.ExpectEquality(t, mc.Killed, true)

	// the CPU stays halted
	err = mc.ExecuteInstruction(cpu.NilCycleCallback)
	test.ExpectSuccess(t, curated.Is(err, cpu.IllegalOpcode))
	test.ExpectEquality(t, mc.PC.Address(), 0x8002)

	// until it is reset
	mc.Reset()
	test.ExpectEquality(t, mc.Killed, false)
}

func TestBoot(t *testing.T) {
	mem := newMockMem()
	mem.put16(0xfffc, 0xc000)

	mc := cpu.NewCPU(nil, mem)
	mc.Reset()

	var cycles int
	err := mc.Boot(func() error {
		cycles++
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cycles, 7)
	test.ExpectEquality(t, mc.Cycles(), 7)
	test.ExpectEquality(t, mc.PC.Address(), 0xc000)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
	test.ExpectEquality(t, mc.Status.InterruptDisable, true)

	// nothing is written during the reset sequence
	test.ExpectEquality(t, len(mem.writes), 0)
}

func TestOAMDMA(t *testing.T) {
	mem := &dmaMem{mockMem: newMockMem()}
	for i := 0; i < 256; i++ {
		mem.internal[0x0200+i] = uint8(i)
	}

	mc := cpu.NewCPU(nil, mem)
	mc.Reset()
	mc.LoadPC(origin)

	// LDA #$02; STA $4014. the DMA begins on an odd cycle
	mem.putInstructions(origin, 0xa9, 0x02, 0x8d, 0x14, 0x40)
	step(t, mc)
	r := step(t, mc)
	test.ExpectEquality(t, r.Cycles, 4)
	test.ExpectEquality(t, r.DMACycles, 514)

	// the STA write plus 256 writes to OAMDATA
	test.DemandEquality(t, len(mem.writes), 257)
	for i, w := range mem.writes[1:] {
		test.ExpectEquality(t, w, access{address: 0x2004, data: uint8(i)})
	}

	// LDA $10; STA $4014. the DMA begins on an even cycle
	mem.writes = mem.writes[:0]
	mc.Reset()
	mc.LoadPC(origin)
	mem.putInstructions(origin, 0xa5, 0x10, 0x8d, 0x14, 0x40)
	mem.internal[0x10] = 0x02
	step(t, mc)
	r = step(t, mc)
	test.ExpectEquality(t, r.DMACycles, 513)
}

func TestDMCStall(t *testing.T) {
	mem := &dmaMem{mockMem: newMockMem()}
	mc := cpu.NewCPU(nil, mem)
	mc.Reset()
	mc.LoadPC(origin)
	mem.putInstructions(origin, 0xea)

	mem.stall = 4
	r := step(t, mc)
	test.ExpectEquality(t, r.Cycles, 2)
	test.ExpectEquality(t, r.DMACycles, 4)
	test.ExpectEquality(t, r.TotalCycles(), 6)
	test.ExpectEquality(t, mc.Cycles(), 6)
}

func TestUndocumented(t *testing.T) {
	mem := newMockMem()
	mc := newCPU(mem, origin)

	// LAX $10
	mem.internal[0x10] = 0x8f
	next := mem.putInstructions(origin, 0xa7, 0x10)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0x8f)
	test.ExpectEquality(t, mc.X.Value(), 0x8f)
	test.ExpectEquality(t, mc.Status.Sign, true)

	// LDX #$0f; SAX $11
	next = mem.putInstructions(next, 0xa2, 0x0f, 0x87, 0x11)
	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x11, 0x0f)

	// DCP $11. memory is decremented and compared with A
	next = mem.putInstructions(next, 0xc7, 0x11)
	step(t, mc)
	mem.assert(t, 0x11, 0x0e)
	test.ExpectEquality(t, mc.Status.Carry, true)

	// LDA #$01; RLA $12. the zero and sign flags are set from A
	mem.internal[0x12] = 0x40
	next = mem.putInstructions(next, 0xa9, 0x01, 0x18, 0x27, 0x12)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x12, 0x80)
	test.ExpectEquality(t, mc.A.Value(), 0x00)
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, mc.Status.Sign, false)

	// LDA #$ff; SRE $13
	mem.internal[0x13] = 0x03
	next = mem.putInstructions(next, 0xa9, 0xff, 0x47, 0x13)
	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x13, 0x01)
	test.ExpectEquality(t, mc.A.Value(), 0xfe)
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectEquality(t, mc.Status.Sign, true)

	// LDA #$10; CLC; RRA $14. 0x02 rotates to 0x01 and is added to A
	mem.internal[0x14] = 0x02
	next = mem.putInstructions(next, 0xa9, 0x10, 0x18, 0x67, 0x14)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x14, 0x01)
	test.ExpectEquality(t, mc.A.Value(), 0x11)
	test.ExpectEquality(t, mc.Status.Zero, false)

	// LDA #$ff; SEC; ARR #$ff
	next = mem.putInstructions(next, 0xa9, 0xff, 0x38, 0x6b, 0xff)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), 0xff)
	test.ExpectEquality(t, mc.Status.Carry, true)
	test.ExpectEquality(t, mc.Status.Overflow, false)

	// LDX #$0f; AXS #$01
	next = mem.putInstructions(next, 0xa2, 0x0f, 0xcb, 0x01)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.X.Value(), 0x0e)
	test.ExpectEquality(t, mc.Status.Carry, true)

	// LDY #$ff; LDX #$00; SHY $1000,X
	mem.putInstructions(next, 0xa0, 0xff, 0xa2, 0x00, 0x9c, 0x00, 0x10)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x1000, 0x11)
}
