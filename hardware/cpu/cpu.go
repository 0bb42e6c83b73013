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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/hardware/cpu/registers"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
)

// IllegalOpcode is returned by ExecuteInstruction() when the CPU encounters
// one of the twelve opcodes that halt the 2A03. The CPU stays halted until it
// is reset.
const IllegalOpcode = "cpu: illegal opcode (%#02x) at %#04x"

// CPU implements the 6502 core of the 2A03 as found in the NES. Register
// logic is implemented by the types in the registers sub-package.
type CPU struct {
	env *environment.Environment

	PC     registers.ProgramCounter
	A      *registers.Register
	X      *registers.Register
	Y      *registers.Register
	SP     *registers.StackPointer
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8  *registers.Register
	acc16 registers.ProgramCounter

	mem cpubus.Memory

	// dma is nil if the memory implementation does not support DMA
	dma cpubus.DMA

	// cycleCallback is called for additional emulator functionality
	cycleCallback func() error

	// the cycle count in LastResult that is incremented by each cycle. points
	// to one of Cycles, DMACycles or InterruptCycles
	count *int

	// total number of cycles since power on
	cycles uint64

	// LastResult records the details of the most recent instruction.
	LastResult execution.Result

	// the cpu has encountered a JAM instruction. requires a Reset()
	Killed bool

	// the state of the interrupt lines as driven by the rest of the system
	nmiLine bool
	irqLine bool

	// the NMI line is edge sensitive. needNMI is raised when the line goes
	// high and stays raised until the interrupt has been serviced
	prevNMILine bool
	needNMI     bool
	prevNeedNMI bool

	// the IRQ line is level sensitive and masked by the interrupt disable
	// flag
	runIRQ     bool
	prevRunIRQ bool
}

// NewCPU is the preferred method of initialisation for the CPU structure. The
// environment argument can be nil.
func NewCPU(env *environment.Environment, mem cpubus.Memory) *CPU {
	mc := &CPU{
		env:   env,
		PC:    registers.NewProgramCounter(0),
		A:     registers.NewRegister(0, "A"),
		X:     registers.NewRegister(0, "X"),
		Y:     registers.NewRegister(0, "Y"),
		SP:    registers.NewStackPointer(0),
		acc8:  registers.NewAnonRegister(0),
		acc16: registers.NewProgramCounter(0),
	}
	mc.Plumb(mem)
	mc.count = &mc.LastResult.Cycles
	return mc
}

// Plumb a new memory implementation into the CPU.
func (mc *CPU) Plumb(mem cpubus.Memory) {
	mc.mem = mem
	mc.dma, _ = mem.(cpubus.DMA)
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s %s %s %s %s=%s",
		mc.PC.Label(), mc.PC, mc.A, mc.X, mc.Y, mc.SP,
		mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers to their power-on state. Does not load PC
// with the RESET vector. Use Boot() for that.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Killed = false
	mc.cycles = 0

	if mc.env != nil && mc.env.Prefs.RandomState.Get().(bool) {
		mc.A.Load(uint8(mc.env.Random.Intn(0x100)))
		mc.X.Load(uint8(mc.env.Random.Intn(0x100)))
		mc.Y.Load(uint8(mc.env.Random.Intn(0x100)))
	} else {
		mc.A.Load(0)
		mc.X.Load(0)
		mc.Y.Load(0)
	}

	mc.PC.Load(0)
	mc.SP.Load(0)
	mc.Status.Reset()
	mc.Status.InterruptDisable = true

	mc.nmiLine = false
	mc.irqLine = false
	mc.prevNMILine = false
	mc.needNMI = false
	mc.prevNeedNMI = false
	mc.runIRQ = false
	mc.prevRunIRQ = false
}

// SoftReset prepares the CPU for the reset sequence without altering the
// general purpose registers. This is the effect of pressing the reset button
// on the console. Use Boot() to run the reset sequence.
func (mc *CPU) SoftReset() {
	mc.LastResult.Reset()
	mc.Killed = false
	mc.needNMI = false
	mc.prevNeedNMI = false
	mc.runIRQ = false
	mc.prevRunIRQ = false
}

// Boot runs the seven cycle reset sequence. The sequence is the same as an
// interrupt except that the stack is read rather than written and the PC is
// loaded from the RESET vector.
func (mc *CPU) Boot(cycleCallback func() error) error {
	mc.cycleCallback = cycleCallback
	mc.count = &mc.LastResult.InterruptCycles

	for i := 0; i < 2; i++ {
		if _, err := mc.read8Bit(mc.PC.Address()); err != nil {
			return err
		}
	}

	for i := 0; i < 3; i++ {
		if _, err := mc.read8Bit(mc.SP.Address()); err != nil {
			return err
		}
		mc.SP.Decrement()
	}

	mc.Status.InterruptDisable = true

	address, err := mc.read16Bit(cpubus.Reset)
	if err != nil {
		return err
	}
	mc.PC.Load(address)
	mc.LastResult.Final = true

	return nil
}

// LoadPCIndirect loads the contents of indirectAddress into the PC. The read
// does not consume any cycles.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) error {
	lo, err := mc.mem.Read(indirectAddress)
	if err != nil {
		return err
	}
	hi, err := mc.mem.Read(indirectAddress + 1)
	if err != nil {
		return err
	}
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
	return nil
}

// LoadPC loads the contents of directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

// Cycles returns the number of CPU cycles since the last Reset().
func (mc *CPU) Cycles() uint64 {
	return mc.cycles
}

// SetNMILine sets the state of the NMI line. An NMI is triggered when the
// line changes from low to high.
func (mc *CPU) SetNMILine(v bool) {
	mc.nmiLine = v
}

// SetIRQLine sets the state of the IRQ line. An IRQ is triggered for as long
// as the line is high and the interrupt disable flag is clear.
func (mc *CPU) SetIRQLine(v bool) {
	mc.irqLine = v
}

// tick ends a cycle. the cycle callback is run and then the interrupt lines
// are polled.
func (mc *CPU) tick() error {
	*mc.count++
	mc.cycles++

	err := mc.cycleCallback()

	// the interrupt lines are sampled at the end of every cycle. it is the
	// state of the lines at the end of the second to last cycle of an
	// instruction that decides whether the interrupt sequence is run
	mc.prevNeedNMI = mc.needNMI
	if !mc.prevNMILine && mc.nmiLine {
		mc.needNMI = true
	}
	mc.prevNMILine = mc.nmiLine

	mc.prevRunIRQ = mc.runIRQ
	mc.runIRQ = mc.irqLine && !mc.Status.InterruptDisable

	return err
}

// read8Bit returns 8bit value from the specified address
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	val, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}

	// +1 cycle
	err = mc.tick()
	if err != nil {
		return 0, err
	}

	return val, nil
}

// write8Bit writes 8 bits to the specified address
//
// side-effects:
//   - calls cycleCallback after memory write
func (mc *CPU) write8Bit(address uint16, value uint8) error {
	err := mc.mem.Write(address, value)
	if err != nil {
		return err
	}

	// +1 cycle
	return mc.tick()
}

// read16Bit returns 16bit value from the specified address
//
// side-effects:
//   - calls cycleCallback after each 8bit read
func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(address + 1)
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// read16BitZeroPage returns the 16bit value from the zero page pointer. the
// high byte of the pointer wraps around to the start of the zero page.
//
// side-effects:
//   - calls cycleCallback after each 8bit read
func (mc *CPU) read16BitZeroPage(pointer uint8) (uint16, error) {
	lo, err := mc.read8Bit(uint16(pointer))
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(uint16(pointer + 1))
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// push value onto the stack
//
// side-effects:
//   - calls cycleCallback after memory write
func (mc *CPU) push(value uint8) error {
	err := mc.write8Bit(mc.SP.Address(), value)
	mc.SP.Decrement()
	return err
}

// pull value from the stack
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Increment()
	return mc.read8Bit(mc.SP.Address())
}

// read 8bits from the PC location has a variety of additional side-effects
// depending on context.
type read8BitPCeffect int

const (
	newOpcode read8BitPCeffect = iota
	loNibble
	hiNibble
	padding
)

// read8BitPC reads 8 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback at end of function
//   - updates LastResult.ByteCount
//   - additional side effect updates LastResult as appropriate
func (mc *CPU) read8BitPC(effect read8BitPCeffect) error {
	v, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		return err
	}

	mc.PC.Add(1)
	mc.LastResult.ByteCount++

	switch effect {
	case newOpcode:
		mc.LastResult.Defn = &instructions.Definitions[v]
	case loNibble:
		mc.LastResult.InstructionData = uint16(v)
	case hiNibble:
		mc.LastResult.InstructionData = (uint16(v) << 8) | mc.LastResult.InstructionData
	case padding:
	}

	// +1 cycle
	return mc.tick()
}

// read16BitPC reads 16 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback after each 8 bit read
//   - updates LastResult.ByteCount
//   - updates InstructionData field, once before each call to cycleCallback
func (mc *CPU) read16BitPC() error {
	if err := mc.read8BitPC(loNibble); err != nil {
		return err
	}
	return mc.read8BitPC(hiNibble)
}

func (mc *CPU) branch(flag bool, offset uint16) error {
	if !flag {
		return nil
	}

	// a taken branch that does not cross a page ignores an IRQ that arrives
	// during its final cycle. the interrupt will run after the next
	// instruction instead
	if mc.runIRQ && !mc.prevRunIRQ {
		mc.runIRQ = false
	}

	// sign extend offset
	if offset&0x0080 == 0x0080 {
		offset |= 0xff00
	}

	// phantom read
	// +1 cycle
	_, err := mc.read8Bit(mc.PC.Address())
	if err != nil {
		return err
	}

	oldPC := mc.PC.Address()
	mc.acc16.Load(oldPC)
	mc.acc16.Add(offset)

	mc.LastResult.PageFault = oldPC&0xff00 != mc.acc16.Address()&0xff00
	if mc.LastResult.PageFault {
		// phantom read of the address with the unfixed MSB
		// +1 cycle
		_, err := mc.read8Bit(oldPC&0xff00 | mc.acc16.Address()&0x00ff)
		if err != nil {
			return err
		}
	}

	mc.PC.Load(mc.acc16.Address())

	return nil
}

// NilCycleCallback can be provided as an argument to ExecuteInstruction().
// It's a convenient do-nothing function.
func NilCycleCallback() error {
	return nil
}

// ExecuteInstruction steps CPU forward one instruction. The basic process when
// executing an instruction is this:
//
//  1. read opcode and look up instruction definition
//  2. read operands (if any) according to the addressing mode of the instruction
//  3. using the operator as a guide, perform the instruction on the data
//  4. run any pending DMA
//  5. run the interrupt sequence if an interrupt is pending
//
// All instructions take at least 2 cycles. After each cycle, the
// cycleCallback() function is run, thereby allowing the rest of the NES
// hardware to operate.
//
// The cycleCallback argument should never be nil. Use the NilCycleCallback()
// function in this package if you want a nil effect.
func (mc *CPU) ExecuteInstruction(cycleCallback func() error) error {
	if mc.Killed {
		return curated.Errorf(IllegalOpcode, mc.LastResult.Defn.OpCode, mc.LastResult.Address)
	}

	mc.cycleCallback = cycleCallback

	// prepare new round of results
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()
	mc.count = &mc.LastResult.Cycles

	// +1 cycle
	err := mc.read8BitPC(newOpcode)
	if err != nil {
		mc.LastResult.ByteCount = 1
		mc.LastResult.Final = true
		return err
	}

	defn := mc.LastResult.Defn

	if defn.Operator == instructions.KIL {
		mc.Killed = true
		mc.LastResult.Final = true
		return curated.Errorf(IllegalOpcode, defn.OpCode, mc.LastResult.Address)
	}

	err = mc.executeInstruction(defn)
	if err != nil {
		return err
	}

	mc.LastResult.Final = true

	// DMA halts the CPU at the end of an instruction
	if mc.dma != nil {
		mc.count = &mc.LastResult.DMACycles
		err = mc.serviceDMA()
		if err != nil {
			return err
		}
	}

	if mc.prevNeedNMI || mc.prevRunIRQ {
		mc.count = &mc.LastResult.InterruptCycles
		return mc.interrupt()
	}

	return nil
}

func (mc *CPU) executeInstruction(defn *instructions.Definition) error {
	var err error

	// address is the actual address to use to access memory (after any indexing
	// has taken place)
	var address uint16

	// the address before indexing. the undocumented SHX family of
	// instructions use the MSB of this address
	var base uint16

	// value is read from the program for immediate/relative mode, and from
	// memory for all other modes. for RMW instructions, the value will change
	// during execution and be written back to memory
	var value uint8

	switch defn.AddressingMode {
	case instructions.Implied:
		if defn.Operator == instructions.Brk {
			// BRK is unusual in that it increases the PC by two bytes despite
			// being an implied addressing instruction
			// +1 cycle
			err = mc.read8BitPC(padding)
			if err != nil {
				return err
			}
		} else {
			// phantom read
			// +1 cycle
			_, err = mc.read8Bit(mc.PC.Address())
			if err != nil {
				return err
			}
		}

	case instructions.Immediate:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		value = uint8(mc.LastResult.InstructionData)

	case instructions.Relative:
		// most of the addressing cycles for this addressing mode are consumed
		// in the branch() function

		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Absolute:
		// JSR reads its address in the operator switch below
		if defn.Effect != instructions.Subroutine {
			// +2 cycles
			err := mc.read16BitPC()
			if err != nil {
				return err
			}
			address = mc.LastResult.InstructionData
		}

	case instructions.ZeroPage:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Indirect:
		// indirect addressing (without indexing) is only used for the JMP command

		// +2 cycles
		err := mc.read16BitPC()
		if err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		// the high byte of the JMP address is read from the same page as the
		// low byte, even if the low byte is at the end of the page
		if indirectAddress&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
		}

		// +2 cycles
		lo, err := mc.read8Bit(indirectAddress)
		if err != nil {
			return err
		}
		hi, err := mc.read8Bit(indirectAddress&0xff00 | uint16(uint8(indirectAddress)+1))
		if err != nil {
			return err
		}
		address = (uint16(hi) << 8) | uint16(lo)

	case instructions.IndexedIndirect: // x indexing
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		indirectAddress := uint8(mc.LastResult.InstructionData)

		// phantom read before adjusting the index
		// +1 cycle
		_, err = mc.read8Bit(uint16(indirectAddress))
		if err != nil {
			return err
		}

		// the indexed pointer never leaves the zero page
		mc.acc8.Load(mc.X.Value())
		mc.acc8.Add(indirectAddress, false)
		if mc.acc8.Value() == 0xff {
			mc.LastResult.CPUBug = execution.IndexedIndirectBug
		}

		// +2 cycles
		address, err = mc.read16BitZeroPage(mc.acc8.Value())
		if err != nil {
			return err
		}

	case instructions.IndirectIndexed: // y indexing
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		indirectAddress := uint8(mc.LastResult.InstructionData)
		if indirectAddress == 0xff {
			mc.LastResult.CPUBug = execution.IndirectIndexedBug
		}

		// +2 cycles
		base, err = mc.read16BitZeroPage(indirectAddress)
		if err != nil {
			return err
		}

		address, err = mc.indexed(defn, base, mc.Y.Address())
		if err != nil {
			return err
		}

	case instructions.AbsoluteIndexedX:
		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}
		base = mc.LastResult.InstructionData

		address, err = mc.indexed(defn, base, mc.X.Address())
		if err != nil {
			return err
		}

	case instructions.AbsoluteIndexedY:
		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}
		base = mc.LastResult.InstructionData

		address, err = mc.indexed(defn, base, mc.Y.Address())
		if err != nil {
			return err
		}

	case instructions.ZeroPageIndexedX:
		address, err = mc.zeroPageIndexed(mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.ZeroPageIndexedY:
		// used by LDX, STX, LAX and SAX
		address, err = mc.zeroPageIndexed(mc.Y.Value())
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("cpu: unknown addressing mode for %s", defn.Operator)
	}

	// read value from memory using address found in AddressingMode switch
	// above only when the addressing mode is not implied or immediate and
	// the instruction is a Read or RMW instruction
	if !(defn.AddressingMode == instructions.Implied || defn.AddressingMode == instructions.Immediate) {
		switch defn.Effect {
		case instructions.Read:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}
		case instructions.RMW:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}

			// the unmodified value is written back before the modified value
			// +1 cycle
			err = mc.write8Bit(address, value)
			if err != nil {
				return err
			}
		}
	}

	// actually perform instruction based on operator group
	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		// the flag is stored but the 2A03 has no decimal mode
		mc.Status.DecimalMode = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		// +1 cycle
		err = mc.push(mc.A.Value())
		if err != nil {
			return err
		}

	case instructions.Pla:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return err
		}
		mc.A.Load(value)
		mc.setZN(mc.A)

	case instructions.Php:
		// +1 cycle
		err = mc.push(mc.Status.Push(true))
		if err != nil {
			return err
		}

	case instructions.Plp:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return err
		}
		mc.Status.FromValue(value)

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.setZN(mc.A)

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.setZN(mc.X)

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.setZN(mc.Y)

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.setZN(mc.A)

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.setZN(mc.X)

	case instructions.Txs:
		// does not affect status register
		mc.SP.Load(mc.X.Value())

	case instructions.Eor:
		mc.A.EOR(value)
		mc.setZN(mc.A)

	case instructions.Ora:
		mc.A.ORA(value)
		mc.setZN(mc.A)

	case instructions.And:
		mc.A.AND(value)
		mc.setZN(mc.A)

	case instructions.Lda:
		mc.A.Load(value)
		mc.setZN(mc.A)

	case instructions.Ldx:
		mc.X.Load(value)
		mc.setZN(mc.X)

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.setZN(mc.Y)

	case instructions.Sta:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value())
		if err != nil {
			return err
		}

	case instructions.Stx:
		// +1 cycle
		err = mc.write8Bit(address, mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.Sty:
		// +1 cycle
		err = mc.write8Bit(address, mc.Y.Value())
		if err != nil {
			return err
		}

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.setZN(mc.X)

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.setZN(mc.Y)

	case instructions.Dex:
		mc.X.Add(0xff, false)
		mc.setZN(mc.X)

	case instructions.Dey:
		mc.Y.Add(0xff, false)
		mc.setZN(mc.Y)

	case instructions.Asl:
		r := mc.shiftRegister(defn, value)
		mc.Status.Carry = r.ASL()
		mc.setZN(r)
		value = r.Value()

	case instructions.Lsr:
		r := mc.shiftRegister(defn, value)
		mc.Status.Carry = r.LSR()
		mc.setZN(r)
		value = r.Value()

	case instructions.Ror:
		r := mc.shiftRegister(defn, value)
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		mc.setZN(r)
		value = r.Value()

	case instructions.Rol:
		r := mc.shiftRegister(defn, value)
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		mc.setZN(r)
		value = r.Value()

	case instructions.Adc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.setZN(mc.A)

	case instructions.Sbc, instructions.SBC:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.setZN(mc.A)

	case instructions.Inc:
		mc.acc8.Load(value)
		mc.acc8.Add(1, false)
		mc.setZN(mc.acc8)
		value = mc.acc8.Value()

	case instructions.Dec:
		mc.acc8.Load(value)
		mc.acc8.Add(0xff, false)
		mc.setZN(mc.acc8)
		value = mc.acc8.Value()

	case instructions.Cmp:
		mc.compare(mc.A.Value(), value)

	case instructions.Cpx:
		mc.compare(mc.X.Value(), value)

	case instructions.Cpy:
		mc.compare(mc.Y.Value(), value)

	case instructions.Bit:
		mc.acc8.Load(value)
		mc.Status.Sign = mc.acc8.IsNegative()
		mc.Status.Overflow = mc.acc8.IsBitV()
		mc.acc8.AND(mc.A.Value())
		mc.Status.Zero = mc.acc8.IsZero()

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		err = mc.branch(!mc.Status.Carry, address)

	case instructions.Bcs:
		err = mc.branch(mc.Status.Carry, address)

	case instructions.Beq:
		err = mc.branch(mc.Status.Zero, address)

	case instructions.Bmi:
		err = mc.branch(mc.Status.Sign, address)

	case instructions.Bne:
		err = mc.branch(!mc.Status.Zero, address)

	case instructions.Bpl:
		err = mc.branch(!mc.Status.Sign, address)

	case instructions.Bvc:
		err = mc.branch(!mc.Status.Overflow, address)

	case instructions.Bvs:
		err = mc.branch(mc.Status.Overflow, address)

	case instructions.Jsr:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}

		// the current value of the PC is now correct, even though we've only
		// read one byte of the address so far. RTS increments the PC when
		// read from the stack, meaning that the PC will be correct at that
		// point

		// internal operation. the stack is read but the value is discarded
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +2 cycles
		err = mc.push(uint8(mc.PC.Address() >> 8))
		if err != nil {
			return err
		}
		err = mc.push(uint8(mc.PC.Address()))
		if err != nil {
			return err
		}

		// +1 cycle
		err = mc.read8BitPC(hiNibble)
		if err != nil {
			return err
		}

		mc.PC.Load(mc.LastResult.InstructionData)

	case instructions.Rts:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +2 cycles
		lo, err := mc.pull()
		if err != nil {
			return err
		}
		hi, err := mc.pull()
		if err != nil {
			return err
		}
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

		// +1 cycle
		_, err = mc.read8Bit(mc.PC.Address())
		if err != nil {
			return err
		}
		mc.PC.Add(1)

	case instructions.Brk:
		// +2 cycles
		err = mc.push(uint8(mc.PC.Address() >> 8))
		if err != nil {
			return err
		}
		err = mc.push(uint8(mc.PC.Address()))
		if err != nil {
			return err
		}

		// an NMI that arrives before the status register is pushed hijacks
		// the BRK sequence
		vector := cpubus.IRQ
		if mc.needNMI {
			mc.needNMI = false
			vector = cpubus.NMI
		}

		// +1 cycle
		err = mc.push(mc.Status.Push(true))
		if err != nil {
			return err
		}
		mc.Status.InterruptDisable = true

		// +2 cycles
		address, err = mc.read16Bit(vector)
		if err != nil {
			return err
		}
		mc.PC.Load(address)

		// the NMI (if any) has been serviced
		mc.prevNeedNMI = false

	case instructions.Rti:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return err
		}
		mc.Status.FromValue(value)

		// +2 cycles
		lo, err := mc.pull()
		if err != nil {
			return err
		}
		hi, err := mc.pull()
		if err != nil {
			return err
		}
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	// undocumented instructions

	case instructions.NOP:
		// does nothing (multi-byte nop)

	case instructions.LAX:
		if defn.AddressingMode == instructions.Immediate {
			// unstable. the A register is ORed with a magic constant
			value &= mc.A.Value() | 0xee
		}
		mc.A.Load(value)
		mc.X.Load(value)
		mc.setZN(mc.A)

	case instructions.SAX:
		mc.acc8.Load(mc.A.Value())
		mc.acc8.AND(mc.X.Value())

		// +1 cycle
		err = mc.write8Bit(address, mc.acc8.Value())
		if err != nil {
			return err
		}

	case instructions.DCP:
		mc.acc8.Load(value)
		mc.acc8.Add(0xff, false)
		value = mc.acc8.Value()
		mc.compare(mc.A.Value(), value)

	case instructions.ISC:
		mc.acc8.Load(value)
		mc.acc8.Add(1, false)
		value = mc.acc8.Value()
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.setZN(mc.A)

	case instructions.SLO:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.ASL()
		value = mc.acc8.Value()
		mc.A.ORA(value)
		mc.setZN(mc.A)

	case instructions.RLA:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.ROL(mc.Status.Carry)
		value = mc.acc8.Value()
		mc.A.AND(value)
		mc.setZN(mc.A)

	case instructions.SRE:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.LSR()
		value = mc.acc8.Value()
		mc.A.EOR(value)
		mc.setZN(mc.A)

	case instructions.RRA:
		mc.acc8.Load(value)
		mc.Status.Carry = mc.acc8.ROR(mc.Status.Carry)
		value = mc.acc8.Value()
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.setZN(mc.A)

	case instructions.ANC:
		// bit 7 of the result is copied into the carry flag
		mc.A.AND(value)
		mc.setZN(mc.A)
		mc.Status.Carry = mc.A.IsNegative()

	case instructions.ASR:
		mc.A.AND(value)
		mc.Status.Carry = mc.A.LSR()
		mc.setZN(mc.A)

	case instructions.ARR:
		mc.A.AND(value)
		mc.A.ROR(mc.Status.Carry)
		mc.setZN(mc.A)
		mc.Status.Carry = mc.A.IsBitV()
		mc.Status.Overflow = mc.A.IsBitV() != (mc.A.Value()&0x20 == 0x20)

	case instructions.AXS:
		mc.X.AND(mc.A.Value())

		// subtract behaves like CMP as far as the carry flag is concerned
		mc.Status.Carry, _ = mc.X.Subtract(value, true)
		mc.setZN(mc.X)

	case instructions.XAA:
		// unstable. the A register is ORed with a magic constant
		mc.A.ORA(0xee)
		mc.A.AND(mc.X.Value())
		mc.A.AND(value)
		mc.setZN(mc.A)

	case instructions.LAS:
		mc.acc8.Load(mc.SP.Value())
		mc.acc8.AND(value)
		mc.SP.Load(mc.acc8.Value())
		mc.A.Load(mc.acc8.Value())
		mc.X.Load(mc.acc8.Value())
		mc.setZN(mc.acc8)

	case instructions.AHX:
		mc.acc8.Load(mc.A.Value())
		mc.acc8.AND(mc.X.Value())
		err = mc.storeHighByteAND(base, address, mc.acc8.Value())
		if err != nil {
			return err
		}

	case instructions.TAS:
		mc.acc8.Load(mc.A.Value())
		mc.acc8.AND(mc.X.Value())
		mc.SP.Load(mc.acc8.Value())
		err = mc.storeHighByteAND(base, address, mc.acc8.Value())
		if err != nil {
			return err
		}

	case instructions.SHY:
		err = mc.storeHighByteAND(base, address, mc.Y.Value())
		if err != nil {
			return err
		}

	case instructions.SHX:
		err = mc.storeHighByteAND(base, address, mc.X.Value())
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("cpu: unknown operator (%s)", defn.Operator)
	}

	if err != nil {
		return err
	}

	// for RMW instructions: write altered value back to memory
	if defn.Effect == instructions.RMW {
		// +1 cycle
		err = mc.write8Bit(address, value)
		if err != nil {
			return err
		}
	}

	return nil
}

// indexed adds the index to the base address. a phantom read of the address
// before the MSB has been fixed happens if the addition crosses a page or if
// the instruction writes to memory.
func (mc *CPU) indexed(defn *instructions.Definition, base uint16, index uint16) (uint16, error) {
	// add index to LSB of address
	mc.acc16.Load(index)
	mc.acc16.Add(base & 0x00ff)
	address := mc.acc16.Address()

	// check for page fault
	pageFault := address&0xff00 == 0x0100
	mc.LastResult.PageFault = defn.PageSensitive && pageFault

	if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
		// phantom read (always happens for Write and RMW)
		// +1 cycle
		_, err := mc.read8Bit((base & 0xff00) | (address & 0x00ff))
		if err != nil {
			return 0, err
		}
	}

	// fix MSB of address
	mc.acc16.Add(base & 0xff00)
	return mc.acc16.Address(), nil
}

// zeroPageIndexed reads the zero page operand and adds the index to it. the
// result never leaves the zero page.
func (mc *CPU) zeroPageIndexed(index uint8) (uint16, error) {
	// +1 cycle
	err := mc.read8BitPC(loNibble)
	if err != nil {
		return 0, err
	}

	// phantom read from base address before index adjustment
	// +1 cycle
	_, err = mc.read8Bit(mc.LastResult.InstructionData)
	if err != nil {
		return 0, err
	}

	indirectAddress := uint8(mc.LastResult.InstructionData)
	mc.acc8.Load(indirectAddress)
	mc.acc8.Add(index, false)

	if uint16(indirectAddress)+uint16(index) > 0xff {
		mc.LastResult.CPUBug = execution.ZeroPageIndexBug
	}

	return mc.acc8.Address(), nil
}

// storeHighByteAND is used by the SHX family of instructions. the value is
// ANDed with the MSB of the base address plus one. if the indexing crossed a
// page then the MSB of the target address is replaced by the stored value.
func (mc *CPU) storeHighByteAND(base uint16, address uint16, value uint8) error {
	value &= uint8(base>>8) + 1
	if base&0xff00 != address&0xff00 {
		address = (uint16(value) << 8) | (address & 0x00ff)
	}

	// +1 cycle
	return mc.write8Bit(address, value)
}

// shiftRegister returns the register to use for the shift and rotate
// instructions. the accumulator is used unless the instruction is RMW.
func (mc *CPU) shiftRegister(defn *instructions.Definition, value uint8) *registers.Register {
	if defn.Effect == instructions.RMW {
		mc.acc8.Load(value)
		return mc.acc8
	}
	return mc.A
}

func (mc *CPU) compare(r uint8, value uint8) {
	mc.acc8.Load(r)
	mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
	mc.setZN(mc.acc8)
}

func (mc *CPU) setZN(r *registers.Register) {
	mc.Status.Zero = r.IsZero()
	mc.Status.Sign = r.IsNegative()
}
