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

// the v and t registers are laid out as follows:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll

// move to the next tile horizontally, switching nametable on overflow
func (ppu *PPU) incrementX() {
	if ppu.v&0x001f == 0x001f {
		ppu.v &^= 0x001f
		ppu.v ^= 0x0400
	} else {
		ppu.v++
	}
}

// move to the next pixel row, then to the next tile row. rows 30 and 31 are
// the attribute table and do not switch nametable when they overflow but row
// 29 does
func (ppu *PPU) incrementY() {
	if ppu.v&0x7000 != 0x7000 {
		ppu.v += 0x1000
		return
	}

	ppu.v &^= 0x7000

	y := (ppu.v & 0x03e0) >> 5
	switch y {
	case 29:
		y = 0
		ppu.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	ppu.v = ppu.v&^0x03e0 | y<<5
}

// copy the horizontal bits from t to v
func (ppu *PPU) copyX() {
	ppu.v = ppu.v&^0x041f | ppu.t&0x041f
}

// copy the vertical bits from t to v
func (ppu *PPU) copyY() {
	ppu.v = ppu.v&^0x7be0 | ppu.t&0x7be0
}
