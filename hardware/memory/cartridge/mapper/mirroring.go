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

package mapper

// Mirroring describes how the four logical nametables in PPU space
// 0x2000-0x2fff are mapped onto the physical VRAM.
type Mirroring int

// List of valid Mirroring values.
const (
	// nametables 0 and 1 share the first 1k page. 2 and 3 share the second
	Horizontal Mirroring = iota

	// nametables 0 and 2 share the first 1k page. 1 and 3 share the second
	Vertical

	// all nametables refer to the same page
	SingleLow
	SingleHigh

	// the cartridge supplies an additional 2k of VRAM
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case SingleLow:
		return "single (low)"
	case SingleHigh:
		return "single (high)"
	case FourScreen:
		return "four screen"
	}
	return "unknown mirroring"
}

// VRAMSize returns the amount of nametable memory required for the mirroring
// type.
func (m Mirroring) VRAMSize() int {
	if m == FourScreen {
		return 0x1000
	}
	return 0x0800
}

// Nametable maps a PPU address in the range 0x2000 to 0x3eff to an index into
// nametable memory.
func (m Mirroring) Nametable(addr uint16) uint16 {
	addr &= 0x0fff
	table := addr >> 10
	offset := addr & 0x03ff

	switch m {
	case Horizontal:
		return (table>>1)<<10 | offset
	case Vertical:
		return (table&0x01)<<10 | offset
	case SingleLow:
		return offset
	case SingleHigh:
		return 0x0400 | offset
	}

	return addr
}
