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

// the number of sprites that can be displayed on a scanline
const spritesPerLine = 8

// a sprite selected for display on the next scanline
type lineSprite struct {
	index int
	y     uint8
	tile  uint8
	attr  uint8
	x     uint8

	// pattern data after flipping has been applied
	lo uint8
	hi uint8
}

// sprite attribute bits
const (
	attrPalette  = 0x03
	attrPriority = 0x20
	attrFlipH    = 0x40
	attrFlipV    = 0x80
)

// sprites is the sprite pipeline. sprites are selected at the end of a
// scanline for display on the following scanline.
type sprites struct {
	// sprites found during evaluation
	found []lineSprite

	// sprites being drawn on the current scanline
	line []lineSprite
}

type spritePixel struct {
	px     uint8
	pal    uint8
	behind bool
	zero   bool
}

func (sp *sprites) reset() {
	sp.found = sp.found[:0]
	sp.line = sp.line[:0]
}

// no sprites on the next scanline
func (sp *sprites) clear() {
	sp.found = sp.found[:0]
}

// the first opaque sprite pixel at x
func (sp *sprites) pixel(x int) spritePixel {
	for _, s := range sp.line {
		o := x - int(s.x)
		if o < 0 || o > 7 {
			continue
		}
		bit := uint8(0x80) >> o
		var px uint8
		if s.lo&bit != 0 {
			px |= 0x01
		}
		if s.hi&bit != 0 {
			px |= 0x02
		}
		if px == 0 {
			continue
		}
		return spritePixel{
			px:     px,
			pal:    s.attr & attrPalette,
			behind: s.attr&attrPriority == attrPriority,
			zero:   s.index == 0,
		}
	}
	return spritePixel{}
}

func (ppu *PPU) spriteHeight() int {
	if ppu.ctrl&ctrlSpriteSize == ctrlSpriteSize {
		return 16
	}
	return 8
}

func (ppu *PPU) spriteInRange(y uint8) bool {
	row := ppu.Scanline - int(y)
	return row >= 0 && row < ppu.spriteHeight()
}

// select the sprites that will be drawn on the following scanline
func (ppu *PPU) evaluateSprites() {
	ppu.sprites.found = ppu.sprites.found[:0]

	limit := ppu.env == nil || ppu.env.Prefs.SpriteLimit.Get().(bool)
	overflowBug := ppu.env == nil || ppu.env.Prefs.SpriteOverflowBug.Get().(bool)

	n := 0
	for n < 64 && len(ppu.sprites.found) < spritesPerLine {
		if ppu.spriteInRange(ppu.oam[n*4]) {
			ppu.sprites.found = append(ppu.sprites.found, ppu.oamSprite(n))
		}
		n++
	}

	// the search for a ninth sprite. on the hardware the byte offset is
	// incremented along with the sprite number so the overflow flag is set
	// unreliably
	m := 0
	for i := n; i < 64; i++ {
		if ppu.spriteInRange(ppu.oam[i*4+m]) {
			ppu.status |= statusOverflow
			break
		}
		if overflowBug {
			m = (m + 1) & 0x03
		}
	}

	if limit {
		return
	}

	for ; n < 64; n++ {
		if ppu.spriteInRange(ppu.oam[n*4]) {
			ppu.sprites.found = append(ppu.sprites.found, ppu.oamSprite(n))
		}
	}
}

func (ppu *PPU) oamSprite(n int) lineSprite {
	o := ppu.oam[n*4 : n*4+4]
	return lineSprite{
		index: n,
		y:     o[0],
		tile:  o[1],
		attr:  o[2],
		x:     o[3],
	}
}

// fetch pattern data for the sprites selected by evaluateSprites(). there are
// eight dots for each of the eight sprite slots. unused slots fetch tile 0xff
func (ppu *PPU) fetchSprites(dot int) {
	slot := (dot - 257) / 8
	step := (dot - 257) % 8

	if dot == 257 {
		ppu.sprites.line = ppu.sprites.line[:0]
	}

	switch step {
	case 0:
		ppu.read(0x2000 | ppu.v&0x0fff)
	case 2:
		ppu.read(0x2000 | ppu.v&0x0fff)
	case 4, 6:
		var s lineSprite
		used := slot < len(ppu.sprites.found)
		if used {
			s = ppu.sprites.found[slot]
		} else {
			s = lineSprite{y: 0xff, tile: 0xff}
		}

		addr := ppu.spritePatternAddress(s)
		if step == 6 {
			addr += 8
		}
		d := ppu.read(addr)
		if s.attr&attrFlipH == attrFlipH {
			d = reverseBits(d)
		}

		if !used {
			return
		}
		if step == 4 {
			ppu.sprites.found[slot].lo = d
			return
		}
		ppu.sprites.found[slot].hi = d
		ppu.sprites.line = append(ppu.sprites.line, ppu.sprites.found[slot])

	case 7:
		// sprites beyond the eighth are only present when the sprite limit
		// is disabled. they are fetched outside of the normal fetch pattern
		// and are not seen by the cartridge
		if dot == 320 {
			for i := spritesPerLine; i < len(ppu.sprites.found); i++ {
				s := ppu.sprites.found[i]
				addr := ppu.spritePatternAddress(s)
				s.lo = ppu.mem.PPURead(addr)
				s.hi = ppu.mem.PPURead(addr + 8)
				if s.attr&attrFlipH == attrFlipH {
					s.lo = reverseBits(s.lo)
					s.hi = reverseBits(s.hi)
				}
				ppu.sprites.line = append(ppu.sprites.line, s)
			}
		}
	}
}

// the address of the low pattern byte for the sprite on the next scanline
func (ppu *PPU) spritePatternAddress(s lineSprite) uint16 {
	h := ppu.spriteHeight()

	row := (ppu.Scanline - int(s.y)) & (h - 1)
	if s.attr&attrFlipV == attrFlipV {
		row = h - 1 - row
	}

	if h == 8 {
		var table uint16
		if ppu.ctrl&ctrlSpriteTable == ctrlSpriteTable {
			table = 0x1000
		}
		return table | uint16(s.tile)<<4 | uint16(row)
	}

	table := uint16(s.tile&0x01) * 0x1000
	tile := uint16(s.tile & 0xfe)
	if row >= 8 {
		tile++
		row -= 8
	}
	return table | tile<<4 | uint16(row)
}

func reverseBits(b uint8) uint8 {
	b = b&0xf0>>4 | b&0x0f<<4
	b = b&0xcc>>2 | b&0x33<<2
	b = b&0xaa>>1 | b&0x55<<1
	return b
}
