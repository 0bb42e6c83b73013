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

// gxrom boards switch 32k of PRG and 8k of CHR with a single register.
//
//	7  bit  0
//	---- ----
//	xxPP xxCC
//	  ||   ||
//	  ||   ++- select 8k CHR bank
//	  ++------ select 32k PRG bank
type gxrom struct {
	board
	mappingID   string
	description string

	prgBank int
	chrBank int
}

func newGxROM(img image) (mapper.CartMapper, error) {
	cart := &gxrom{
		board:       newBoard(img, false),
		mappingID:   "066",
		description: "GxROM",
	}
	return cart, nil
}

func (cart *gxrom) String() string {
	return fmt.Sprintf("%s [%s] Bank: %d CHR: %d", cart.mappingID, cart.description, cart.prgBank, cart.chrBank)
}

// ID implements the mapper.CartMapper interface.
func (cart *gxrom) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *gxrom) Reset() {
	cart.prgBank = 0
	cart.chrBank = 0
}

// CPURead implements the mapper.CartMapper interface.
func (cart *gxrom) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x8000 {
		return cart.readPRG(cart.prgBank, 2*prgUnit, addr), true
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *gxrom) CPUWrite(addr uint16, data uint8) {
	if addr >= 0x8000 {
		cart.prgBank = int(data>>4&0x03) % cart.prgBanks(2*prgUnit)
		cart.chrBank = int(data&0x03) % cart.chrBanks(chrUnit)
		return
	}
	cart.writeRAM(addr, data)
}

// CHRRead implements the mapper.CartMapper interface.
func (cart *gxrom) CHRRead(addr uint16) uint8 {
	return cart.readCHR(cart.chrBank, chrUnit, addr)
}

// CHRWrite implements the mapper.CartMapper interface.
func (cart *gxrom) CHRWrite(addr uint16, data uint8) {
	cart.writeCHR(cart.chrBank, chrUnit, addr, data)
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *gxrom) NumBanks() int {
	return cart.prgBanks(2 * prgUnit)
}

// GetBank implements the mapper.CartMapper interface.
func (cart *gxrom) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	return mapper.BankInfo{Number: cart.prgBank, Size: 2 * prgUnit}
}
