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

// Package cpu emulates the 6502 core of the 2A03 found in the NES. Like all
// 8-bit processors of the era, the 6502 executes instructions according to
// the single byte value read from an address pointed to by the program
// counter. This single byte is the opcode and is looked up in the instruction
// table. The instruction definition for that opcode is then used to move
// execution of the program forward.
//
// The 2A03 differs from a stock 6502 in that it has no decimal mode. The
// decimal flag can be set and cleared but has no effect on ADC and SBC.
//
// The instance of the CPU type requires an instance of a cpubus.Memory
// implementation as the sole argument. If the memory also implements the
// cpubus.DMA interface then the CPU will halt for OAM DMA and DMC sample
// fetches.
//
// The bread-and-butter of the CPU type is the ExecuteInstruction() function.
// Its sole argument is a callback function to be called at every cycle
// boundary of the instruction.
//
//	mc := cpu.NewCPU(nil, mem)
//	mc.Reset()
//	mc.Boot(cpu.NilCycleCallback)
//
//	for {
//		err := mc.ExecuteInstruction(func() error {
//			numCycles++
//			return nil
//		})
//	}
//
// The NES emulation uses the callback to run the PPU three times for every
// CPU cycle and to step the APU and the cartridge. The callback is also where
// the interrupt lines are updated with SetNMILine() and SetIRQLine().
//
// The LastResult field can be probed for information about the last
// instruction executed. See the execution package for more information.
package cpu
