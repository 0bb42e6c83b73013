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
package cpubus

// Interrupt vectors.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
)

// PPU registers. The eight registers are mirrored every eight bytes through
// to 0x3fff.
const (
	PPUCTRL   = uint16(0x2000)
	PPUMASK   = uint16(0x2001)
	PPUSTATUS = uint16(0x2002)
	OAMADDR   = uint16(0x2003)
	OAMDATA   = uint16(0x2004)
	PPUSCROLL = uint16(0x2005)
	PPUADDR   = uint16(0x2006)
	PPUDATA   = uint16(0x2007)
)

// APU and I/O registers.
const (
	APUOrigin  = uint16(0x4000)
	OAMDMA     = uint16(0x4014)
	APUSTATUS  = uint16(0x4015)
	JOY1       = uint16(0x4016)
	JOY2       = uint16(0x4017)
	APUFRAME   = uint16(0x4017)
	APUMemtop  = uint16(0x4017)
	CartOrigin = uint16(0x4020)
)
