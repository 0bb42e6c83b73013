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

// axrom boards switch 32k of PRG and select the single screen nametable page.
//
//	7  bit  0
//	---- ----
//	xxxM xPPP
//	   |  |||
//	   |  +++- select 32k PRG bank
//	   +------ select nametable page
type axrom struct {
	board
	mappingID   string
	description string

	bank int
}

func newAxROM(img image) (mapper.CartMapper, error) {
	cart := &axrom{
		board:       newBoard(img, false),
		mappingID:   "007",
		description: "AxROM",
	}
	cart.Reset()
	return cart, nil
}

func (cart *axrom) String() string {
	return fmt.Sprintf("%s [%s] Bank: %d (%s)", cart.mappingID, cart.description, cart.bank, cart.mirroring)
}

// ID implements the mapper.CartMapper interface.
func (cart *axrom) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *axrom) Reset() {
	cart.bank = 0
	cart.mirroring = mapper.SingleLow
}

// CPURead implements the mapper.CartMapper interface.
func (cart *axrom) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x8000 {
		return cart.readPRG(cart.bank, 2*prgUnit, addr), true
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *axrom) CPUWrite(addr uint16, data uint8) {
	if addr >= 0x8000 {
		cart.bank = int(data&0x07) % cart.prgBanks(2*prgUnit)
		if data&0x10 == 0x10 {
			cart.mirroring = mapper.SingleHigh
		} else {
			cart.mirroring = mapper.SingleLow
		}
		return
	}
	cart.writeRAM(addr, data)
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *axrom) NumBanks() int {
	return cart.prgBanks(2 * prgUnit)
}

// GetBank implements the mapper.CartMapper interface.
func (cart *axrom) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	return mapper.BankInfo{Number: cart.bank, Size: 2 * prgUnit}
}
