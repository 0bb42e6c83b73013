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

package cartridge

import (
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

const (
	ejectedName = "ejected"
	ejectedHash = "nohash"
)

// ejected implements the mapper.CartMapper interface for the state of the
// console when no cartridge is inserted. Nothing on the CPU bus is driven and
// CHR reads return zero.
type ejected struct {
	board
}

func newEjected() *ejected {
	return &ejected{}
}

func (cart *ejected) String() string {
	return ejectedName
}

// ID implements the mapper.CartMapper interface.
func (cart *ejected) ID() string {
	return "-"
}

// Reset implements the mapper.CartMapper interface.
func (cart *ejected) Reset() {
}

// CPURead implements the mapper.CartMapper interface.
func (cart *ejected) CPURead(_ uint16) (uint8, bool) {
	return 0, false
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *ejected) CPUWrite(_ uint16, _ uint8) {
}

// CHRRead implements the mapper.CartMapper interface.
func (cart *ejected) CHRRead(_ uint16) uint8 {
	return 0
}

// CHRWrite implements the mapper.CartMapper interface.
func (cart *ejected) CHRWrite(_ uint16, _ uint8) {
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *ejected) NumBanks() int {
	return 0
}

// GetBank implements the mapper.CartMapper interface.
func (cart *ejected) GetBank(_ uint16) mapper.BankInfo {
	return mapper.BankInfo{NonCart: true}
}
