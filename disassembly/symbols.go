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

// canonical names for the registers of the PPU, APU and controller ports
var symbols = map[uint16]string{
	0x2000: "PPUCTRL",
	0x2001: "PPUMASK",
	0x2002: "PPUSTATUS",
	0x2003: "OAMADDR",
	0x2004: "OAMDATA",
	0x2005: "PPUSCROLL",
	0x2006: "PPUADDR",
	0x2007: "PPUDATA",

	0x4000: "SQ1_VOL",
	0x4001: "SQ1_SWEEP",
	0x4002: "SQ1_LO",
	0x4003: "SQ1_HI",
	0x4004: "SQ2_VOL",
	0x4005: "SQ2_SWEEP",
	0x4006: "SQ2_LO",
	0x4007: "SQ2_HI",
	0x4008: "TRI_LINEAR",
	0x400a: "TRI_LO",
	0x400b: "TRI_HI",
	0x400c: "NOISE_VOL",
	0x400e: "NOISE_LO",
	0x400f: "NOISE_HI",
	0x4010: "DMC_FREQ",
	0x4011: "DMC_RAW",
	0x4012: "DMC_START",
	0x4013: "DMC_LEN",
	0x4014: "OAMDMA",
	0x4015: "SND_CHN",
	0x4016: "JOY1",
	0x4017: "JOY2",
}

// the names of the interrupt vectors at the end of the address space
var vectors = []struct {
	address uint16
	name    string
}{
	{0xfffa, "NMI"},
	{0xfffc, "RESET"},
	{0xfffe, "IRQ"},
}
