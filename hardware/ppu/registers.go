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

// PPUCTRL bits.
const (
	ctrlNametable       = 0x03
	ctrlIncrement       = 0x04
	ctrlSpriteTable     = 0x08
	ctrlBackgroundTable = 0x10
	ctrlSpriteSize      = 0x20
	ctrlNMI             = 0x80
)

// PPUMASK bits.
const (
	maskGreyscale      = 0x01
	maskBackgroundLeft = 0x02
	maskSpritesLeft    = 0x04
	maskShowBackground = 0x08
	maskShowSprites    = 0x10
	maskEmphasis       = 0xe0
)

// PPUSTATUS bits.
const (
	statusOverflow   = 0x20
	statusSpriteZero = 0x40
	statusVBlank     = 0x80
)

// the register numbers as decoded from the CPU address
const (
	regCtrl = iota
	regMask
	regStatus
	regOAMAddr
	regOAMData
	regScroll
	regAddr
	regData
)

// is the PPU currently fetching data for rendering
func (ppu *PPU) renderingActive() bool {
	return ppu.renderingEnabled() && (ppu.Scanline < PostRenderScanline || ppu.Scanline == ppu.preRenderScanline())
}

// ReadRegister is called on a CPU read of 0x2000 to 0x3fff. Only the lowest
// three bits of the address are significant. Reads of write-only registers
// return the value of the PPU data bus latch.
func (ppu *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 0x07 {
	case regStatus:
		ppu.latch = ppu.status&0xe0 | ppu.latch&0x1f
		ppu.status &^= statusVBlank
		ppu.w = false

		// reading on the dot before the vblank flag is set
		if ppu.Scanline == VBlankScanline && ppu.Dot == 1 {
			ppu.suppressVBlank = true
		}

	case regOAMData:
		ppu.latch = ppu.oam[ppu.oamAddr]
		if ppu.oamAddr&0x03 == 0x02 {
			// unimplemented bits of the attribute byte
			ppu.latch &= 0xe3
		}

	case regData:
		addr := ppu.v & 0x3fff
		if addr >= 0x3f00 {
			// palette reads are not buffered. the buffer is filled with the
			// nametable data 'underneath' the palette
			ppu.latch = ppu.readPalette(addr) | ppu.latch&0xc0
			ppu.readBuffer = ppu.read(addr - 0x1000)
		} else {
			ppu.latch = ppu.readBuffer
			ppu.readBuffer = ppu.read(addr)
		}
		ppu.incrementVRAMAddress()
	}

	return ppu.latch
}

// WriteRegister is called on a CPU write to 0x2000 to 0x3fff. Only the lowest
// three bits of the address are significant.
func (ppu *PPU) WriteRegister(addr uint16, data uint8) {
	ppu.latch = data

	switch addr & 0x07 {
	case regCtrl:
		ppu.ctrl = data
		ppu.t = ppu.t&0xf3ff | uint16(data&ctrlNametable)<<10

	case regMask:
		ppu.mask = data

	case regOAMAddr:
		ppu.oamAddr = data

	case regOAMData:
		if ppu.renderingActive() {
			// writes during rendering do not change OAM but the address is
			// still incremented (by four)
			ppu.oamAddr += 4
			return
		}
		ppu.oam[ppu.oamAddr] = data
		ppu.oamAddr++

	case regScroll:
		if !ppu.w {
			ppu.t = ppu.t&0xffe0 | uint16(data)>>3
			ppu.x = data & 0x07
		} else {
			ppu.t = ppu.t&0x8c1f | uint16(data&0x07)<<12 | uint16(data&0xf8)<<2
		}
		ppu.w = !ppu.w

	case regAddr:
		if !ppu.w {
			ppu.t = ppu.t&0x00ff | uint16(data&0x3f)<<8
		} else {
			ppu.t = ppu.t&0xff00 | uint16(data)
			ppu.v = ppu.t
			if !ppu.renderingActive() {
				ppu.mem.PPUAddressChanged(ppu.v & 0x3fff)
			}
		}
		ppu.w = !ppu.w

	case regData:
		addr := ppu.v & 0x3fff
		if addr >= 0x3f00 {
			ppu.writePalette(addr, data)
		} else {
			ppu.mem.PPUAddressChanged(addr)
			ppu.mem.PPUWrite(addr, data)
		}
		ppu.incrementVRAMAddress()
	}
}

// the increment after a PPUDATA access. during rendering the increment
// happens through the coarse X and Y increment logic
func (ppu *PPU) incrementVRAMAddress() {
	if ppu.renderingActive() {
		ppu.incrementX()
		ppu.incrementY()
		return
	}
	if ppu.ctrl&ctrlIncrement == ctrlIncrement {
		ppu.v += 32
	} else {
		ppu.v++
	}
	ppu.v &= 0x7fff
}

// palette RAM index for address. 0x3f10, 0x3f14, 0x3f18 and 0x3f1c are
// mirrors of 0x3f00, 0x3f04, 0x3f08 and 0x3f0c
func paletteIndex(addr uint16) uint16 {
	addr &= 0x1f
	if addr&0x13 == 0x10 {
		addr &^= 0x10
	}
	return addr
}

func (ppu *PPU) readPalette(addr uint16) uint8 {
	return ppu.paletteRAM[paletteIndex(addr)] & 0x3f
}

func (ppu *PPU) writePalette(addr uint16, data uint8) {
	ppu.paletteRAM[paletteIndex(addr)] = data & 0x3f
}
