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

package ppu

// background holds the latches and shift registers of the background
// pipeline.
type background struct {
	// latched values of the tile currently being fetched
	nt uint8
	at uint8
	lo uint8
	hi uint8

	// the high byte of each register is the tile being drawn
	patternLo uint16
	patternHi uint16
	attribLo  uint16
	attribHi  uint16
}

func (bg *background) shift() {
	bg.patternLo <<= 1
	bg.patternHi <<= 1
	bg.attribLo <<= 1
	bg.attribHi <<= 1
}

// load the latched tile into the low byte of the shift registers
func (bg *background) load() {
	bg.patternLo = bg.patternLo&0xff00 | uint16(bg.lo)
	bg.patternHi = bg.patternHi&0xff00 | uint16(bg.hi)
	if bg.at&0x01 == 0x01 {
		bg.attribLo = bg.attribLo&0xff00 | 0x00ff
	} else {
		bg.attribLo &= 0xff00
	}
	if bg.at&0x02 == 0x02 {
		bg.attribHi = bg.attribHi&0xff00 | 0x00ff
	} else {
		bg.attribHi &= 0xff00
	}
}

// the pixel value and palette for the fine X scroll value
func (bg *background) pixel(fineX uint8) (uint8, uint8) {
	bit := uint16(0x8000) >> fineX
	var px, pal uint8
	if bg.patternLo&bit != 0 {
		px |= 0x01
	}
	if bg.patternHi&bit != 0 {
		px |= 0x02
	}
	if bg.attribLo&bit != 0 {
		pal |= 0x01
	}
	if bg.attribHi&bit != 0 {
		pal |= 0x02
	}
	return px, pal
}

// the background fetch for the dot. the fetches happen in a repeating eight
// dot pattern: nametable, attribute, pattern low, pattern high.
func (ppu *PPU) fetchBackground(dot int) {
	switch (dot - 1) % 8 {
	case 0:
		ppu.bg.load()
		if dot == 257 {
			return
		}
		ppu.bg.nt = ppu.read(0x2000 | ppu.v&0x0fff)

	case 2:
		addr := 0x23c0 | ppu.v&0x0c00 | (ppu.v>>4)&0x38 | (ppu.v>>2)&0x07
		at := ppu.read(addr)
		if ppu.v&0x0040 == 0x0040 {
			at >>= 4
		}
		if ppu.v&0x0002 == 0x0002 {
			at >>= 2
		}
		ppu.bg.at = at & 0x03

	case 4:
		ppu.bg.lo = ppu.read(ppu.patternAddress())

	case 6:
		ppu.bg.hi = ppu.read(ppu.patternAddress() + 8)

	case 7:
		ppu.incrementX()
	}
}

// the address of the pattern for the latched nametable entry
func (ppu *PPU) patternAddress() uint16 {
	var table uint16
	if ppu.ctrl&ctrlBackgroundTable == ctrlBackgroundTable {
		table = 0x1000
	}
	return table | uint16(ppu.bg.nt)<<4 | (ppu.v>>12)&0x07
}
