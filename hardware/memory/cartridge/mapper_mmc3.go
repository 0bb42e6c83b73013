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

// mmc3 (TxROM) boards have eight bank registers, selected by writing to the
// bank select register (even addresses 0x8000 to 0x9ffe) and loaded by writing
// to the bank data register (odd addresses 0x8001 to 0x9fff).
//
//	R0	2k CHR at 0x0000 (or 0x1000)
//	R1	2k CHR at 0x0800 (or 0x1800)
//	R2	1k CHR at 0x1000 (or 0x0000)
//	R3	1k CHR at 0x1400 (or 0x0400)
//	R4	1k CHR at 0x1800 (or 0x0800)
//	R5	1k CHR at 0x1c00 (or 0x0c00)
//	R6	8k PRG at 0x8000 (or 0xc000)
//	R7	8k PRG at 0xa000
//
// Bit 6 of bank select swaps the R6 window with the second-last PRG bank and
// bit 7 swaps the CHR halves. The last PRG bank is always at 0xe000.
//
// The scanline counter is clocked by rising edges of PPU A12. An edge only
// counts if A12 has been low for at least three CPU cycles, which filters out
// the rapid toggling during sprite pattern fetches.
type mmc3 struct {
	board
	mappingID   string
	description string

	// nametable mirroring from the header. four screen boards ignore writes
	// to the mirroring register
	fourScreen bool

	bankSelect uint8
	registers  [8]uint8

	ramEnabled  bool
	ramWriteNot bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irq        bool

	// the state of A12 and the number of CPU cycles it has been low for
	a12    bool
	a12Low int
}

// the number of CPU cycles A12 must be low for the following rising edge to
// clock the IRQ counter
const mmc3A12Filter = 3

func newMMC3(img image) (mapper.CartMapper, error) {
	cart := &mmc3{
		board:       newBoard(img, true),
		mappingID:   "004",
		description: "MMC3",
	}
	cart.fourScreen = cart.mirroring == mapper.FourScreen
	cart.Reset()
	return cart, nil
}

func (cart *mmc3) String() string {
	return fmt.Sprintf("%s [%s] PRG: %d/%d/%d/%d IRQ: %d/%d",
		cart.mappingID, cart.description,
		cart.prgBank(0x8000), cart.prgBank(0xa000), cart.prgBank(0xc000), cart.prgBank(0xe000),
		cart.irqCounter, cart.irqLatch)
}

// ID implements the mapper.CartMapper interface.
func (cart *mmc3) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *mmc3) Reset() {
	cart.bankSelect = 0
	cart.registers = [8]uint8{0, 2, 4, 5, 6, 7, 0, 1}
	cart.ramEnabled = true
	cart.ramWriteNot = false
	cart.irqLatch = 0
	cart.irqCounter = 0
	cart.irqReload = false
	cart.irqEnabled = false
	cart.irq = false
	cart.a12 = false
	cart.a12Low = 0
}

// the 8k PRG bank mapped at the address
func (cart *mmc3) prgBank(addr uint16) int {
	last := cart.prgBanks(0x2000) - 1
	swap := cart.bankSelect&0x40 == 0x40

	switch addr & 0xe000 {
	case 0x8000:
		if swap {
			return last - 1
		}
		return int(cart.registers[6])
	case 0xa000:
		return int(cart.registers[7])
	case 0xc000:
		if swap {
			return int(cart.registers[6])
		}
		return last - 1
	}
	return last
}

// the 1k CHR bank mapped at the address
func (cart *mmc3) chrBank(addr uint16) int {
	if cart.bankSelect&0x80 == 0x80 {
		addr ^= 0x1000
	}

	slot := addr >> 10 & 0x07
	switch slot {
	case 0, 1:
		return int(cart.registers[0]&0xfe) | int(slot&0x01)
	case 2, 3:
		return int(cart.registers[1]&0xfe) | int(slot&0x01)
	}
	return int(cart.registers[slot-2])
}

// CPURead implements the mapper.CartMapper interface.
func (cart *mmc3) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x8000 {
		return cart.readPRG(cart.prgBank(addr), 0x2000, addr), true
	}
	if !cart.ramEnabled {
		return 0, false
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *mmc3) CPUWrite(addr uint16, data uint8) {
	if addr < 0x8000 {
		if cart.ramEnabled && !cart.ramWriteNot {
			cart.writeRAM(addr, data)
		}
		return
	}

	even := addr&0x01 == 0x00

	switch addr & 0xe000 {
	case 0x8000:
		if even {
			cart.bankSelect = data
		} else {
			cart.registers[cart.bankSelect&0x07] = data
		}
	case 0xa000:
		if even {
			if !cart.fourScreen {
				if data&0x01 == 0x01 {
					cart.mirroring = mapper.Horizontal
				} else {
					cart.mirroring = mapper.Vertical
				}
			}
		} else {
			cart.ramEnabled = data&0x80 == 0x80
			cart.ramWriteNot = data&0x40 == 0x40
		}
	case 0xc000:
		if even {
			cart.irqLatch = data
		} else {
			cart.irqCounter = 0
			cart.irqReload = true
		}
	case 0xe000:
		if even {
			cart.irqEnabled = false
			cart.irq = false
		} else {
			cart.irqEnabled = true
		}
	}
}

// CHRRead implements the mapper.CartMapper interface.
func (cart *mmc3) CHRRead(addr uint16) uint8 {
	return cart.readCHR(cart.chrBank(addr), 0x0400, addr)
}

// CHRWrite implements the mapper.CartMapper interface.
func (cart *mmc3) CHRWrite(addr uint16, data uint8) {
	cart.writeCHR(cart.chrBank(addr), 0x0400, addr, data)
}

// PPUAddressChanged implements the mapper.CartMapper interface.
func (cart *mmc3) PPUAddressChanged(addr uint16) {
	a12 := addr&0x1000 == 0x1000
	if a12 && !cart.a12 && cart.a12Low >= mmc3A12Filter {
		cart.clockCounter()
	}
	if a12 {
		cart.a12Low = 0
	}
	cart.a12 = a12
}

// Step implements the mapper.CartMapper interface.
func (cart *mmc3) Step() {
	if !cart.a12 {
		cart.a12Low++
	}
}

func (cart *mmc3) clockCounter() {
	if cart.irqCounter == 0 || cart.irqReload {
		cart.irqCounter = cart.irqLatch
		cart.irqReload = false
	} else {
		cart.irqCounter--
	}

	if cart.irqCounter == 0 && cart.irqEnabled {
		cart.irq = true
	}
}

// IRQ implements the mapper.CartMapper interface.
func (cart *mmc3) IRQ() bool {
	return cart.irq
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *mmc3) NumBanks() int {
	return cart.prgBanks(0x2000)
}

// GetBank implements the mapper.CartMapper interface.
func (cart *mmc3) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	return mapper.BankInfo{Number: cart.prgBank(addr) % cart.NumBanks(), Size: 0x2000}
}
