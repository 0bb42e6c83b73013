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

// Package disassembly produces a linear disassembly of 6502 machine code. It
// can be used with a byte slice or with the PRG banks of a cartridge as
// currently mapped into the CPU address space.
//
// Operands that refer to the hardware registers of the console are replaced
// with the canonical name of the register. For example:
//
//	STA $2000
//
// becomes:
//
//	STA PPUCTRL
//
// The disassembly is linear. Every byte is assumed to be the start of an
// instruction if the previous instruction has ended. Data embedded in the
// program will therefore be disassembled as though it were code.
package disassembly
