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
	"fmt"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// nrom is the simplest board. 16k or 32k of PRG ROM with no bank switching. A
// 16k ROM is mirrored at 0xc000.
//
// Family Basic carts have PRG RAM at 0x6000 and so every NROM board is given
// some.
type nrom struct {
	board
	mappingID   string
	description string
}

func newNROM(img image) (mapper.CartMapper, error) {
	cart := &nrom{
		board:       newBoard(img, true),
		mappingID:   "000",
		description: "NROM",
	}

	if len(cart.prg) != prgUnit && len(cart.prg) != 2*prgUnit {
		return nil, fmt.Errorf("%s: PRG ROM must be 16k or 32k", cart.description)
	}

	return cart, nil
}

func (cart *nrom) String() string {
	return fmt.Sprintf("%s [%s] %dk", cart.mappingID, cart.description, len(cart.prg)/1024)
}

// ID implements the mapper.CartMapper interface.
func (cart *nrom) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *nrom) Reset() {
}

// CPURead implements the mapper.CartMapper interface.
func (cart *nrom) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x8000 {
		return cart.prg[int(addr-0x8000)%len(cart.prg)], true
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *nrom) CPUWrite(addr uint16, data uint8) {
	cart.writeRAM(addr, data)
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *nrom) NumBanks() int {
	return 1
}

// GetBank implements the mapper.CartMapper interface.
func (cart *nrom) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	return mapper.BankInfo{Size: len(cart.prg)}
}
