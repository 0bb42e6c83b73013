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

// uxrom boards switch a 16k bank into 0x8000. The last bank is fixed at 0xc000.
// Any write to 0x8000 to 0xffff selects the bank.
//
// Bus conflicts are not emulated.
type uxrom struct {
	board
	mappingID   string
	description string

	bank int
}

func newUxROM(img image) (mapper.CartMapper, error) {
	cart := &uxrom{
		board:       newBoard(img, false),
		mappingID:   "002",
		description: "UxROM",
	}
	return cart, nil
}

func (cart *uxrom) String() string {
	return fmt.Sprintf("%s [%s] Bank: %d", cart.mappingID, cart.description, cart.bank)
}

// ID implements the mapper.CartMapper interface.
func (cart *uxrom) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *uxrom) Reset() {
	cart.bank = 0
}

// CPURead implements the mapper.CartMapper interface.
func (cart *uxrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0xc000:
		return cart.readPRG(cart.prgBanks(prgUnit)-1, prgUnit, addr), true
	case addr >= 0x8000:
		return cart.readPRG(cart.bank, prgUnit, addr), true
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *uxrom) CPUWrite(addr uint16, data uint8) {
	if addr >= 0x8000 {
		cart.bank = int(data) % cart.prgBanks(prgUnit)
		return
	}
	cart.writeRAM(addr, data)
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *uxrom) NumBanks() int {
	return cart.prgBanks(prgUnit)
}

// GetBank implements the mapper.CartMapper interface.
func (cart *uxrom) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	if addr >= 0xc000 {
		return mapper.BankInfo{Number: cart.NumBanks() - 1, Size: prgUnit}
	}
	return mapper.BankInfo{Number: cart.bank, Size: prgUnit}
}
