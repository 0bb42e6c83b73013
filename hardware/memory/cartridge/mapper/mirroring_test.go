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

package mapper_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

func TestNametable(t *testing.T) {
	// the four logical nametables for each mirroring type
	expected := map[mapper.Mirroring][4]uint16{
		mapper.Horizontal: {0x000, 0x000, 0x400, 0x400},
		mapper.Vertical:   {0x000, 0x400, 0x000, 0x400},
		mapper.SingleLow:  {0x000, 0x000, 0x000, 0x000},
		mapper.SingleHigh: {0x400, 0x400, 0x400, 0x400},
		mapper.FourScreen: {0x000, 0x400, 0x800, 0xc00},
	}

	for m, tables := range expected {
		for i, base := range tables {
			addr := 0x2000 + uint16(i)*0x400
			test.ExpectEquality(t, m.Nametable(addr), base, m)
			test.ExpectEquality(t, m.Nametable(addr+0x3ff), base+0x3ff, m)

			// 0x3000 to 0x3eff mirrors 0x2000 to 0x2eff
			if addr+0x1000 < 0x3f00 {
				test.ExpectEquality(t, m.Nametable(addr+0x1000), base, m)
			}
		}
	}

	test.ExpectEquality(t, mapper.FourScreen.VRAMSize(), 0x1000)
	test.ExpectEquality(t, mapper.Vertical.VRAMSize(), 0x0800)
}
