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

// Package memory implements the CPU address space of the NES. The Memory type
// satisfies the cpubus.Memory interface and decodes every address to the
// component that responds to it:
//
//	0x0000 to 0x1fff	2k internal RAM, mirrored every 0x0800 bytes
//	0x2000 to 0x3fff	PPU registers, mirrored every 8 bytes
//	0x4000 to 0x4017	APU and I/O registers
//	0x4018 to 0x401f	test registers (not used)
//	0x4020 to 0xffff	cartridge
//
// Reads of addresses that nothing responds to return the value that was last
// placed on the data bus. Write-only registers behave in the same way. The
// controller ports only drive the lower five bits of the data bus and the
// remaining bits are also the open bus value.
//
// The type also satisfies the cpubus.DMA interface. Writing to OAMDMA starts
// an OAM DMA transfer which is performed by the CPU. The DMC stall cycles
// are forwarded from the APU.
package memory
