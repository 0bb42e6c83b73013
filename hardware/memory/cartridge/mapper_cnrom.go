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

// cnrom boards have fixed PRG (as NROM) and switch 8k of CHR ROM with any
// write to 0x8000 to 0xffff.
type cnrom struct {
	board
	mappingID   string
	description string

	chrBank int
}

func newCNROM(img image) (mapper.CartMapper, error) {
	cart := &cnrom{
		board:       newBoard(img, false),
		mappingID:   "003",
		description: "CNROM",
	}
	return cart, nil
}

func (cart *cnrom) String() string {
	return fmt.Sprintf("%s [%s] CHR: %d", cart.mappingID, cart.description, cart.chrBank)
}

// ID implements the mapper.CartMapper interface.
func (cart *cnrom) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *cnrom) Reset() {
	cart.chrBank = 0
}

// CPURead implements the mapper.CartMapper interface.
func (cart *cnrom) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x8000 {
		return cart.prg[int(addr-0x8000)%len(cart.prg)], true
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *cnrom) CPUWrite(addr uint16, data uint8) {
	if addr >= 0x8000 {
		cart.chrBank = int(data) % cart.chrBanks(chrUnit)
		return
	}
	cart.writeRAM(addr, data)
}

// CHRRead implements the mapper.CartMapper interface.
func (cart *cnrom) CHRRead(addr uint16) uint8 {
	return cart.readCHR(cart.chrBank, chrUnit, addr)
}

// CHRWrite implements the mapper.CartMapper interface.
func (cart *cnrom) CHRWrite(addr uint16, data uint8) {
	cart.writeCHR(cart.chrBank, chrUnit, addr, data)
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *cnrom) NumBanks() int {
	return 1
}

// GetBank implements the mapper.CartMapper interface.
func (cart *cnrom) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	return mapper.BankInfo{Size: len(cart.prg)}
}
