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

// mmc1 (SxROM) boards are programmed through a five bit serial port. Each
// write to 0x8000 to 0xffff shifts bit 0 of the data into the shift register.
// A write with bit 7 set clears the shift register. On the fifth write the
// register selected by bits 13 and 14 of the address is loaded.
//
//	0x8000 to 0x9fff	control
//	0xa000 to 0xbfff	CHR bank 0
//	0xc000 to 0xdfff	CHR bank 1
//	0xe000 to 0xffff	PRG bank
//
// Control register:
//
//	4bit0
//	-----
//	CPPMM
//	|||||
//	|||++- mirroring (0: single low; 1: single high; 2: vertical; 3: horizontal)
//	|++--- PRG bank mode (0, 1: 32k; 2: first bank fixed at 0x8000; 3: last bank fixed at 0xc000)
//	+----- CHR bank mode (0: 8k; 1: two 4k banks)
//
// On 512k SUROM boards bit 4 of the CHR bank 0 register selects the 256k
// half of PRG ROM.
type mmc1 struct {
	board
	mappingID   string
	description string

	shift   uint8
	control uint8
	chr0    uint8
	chr1    uint8
	prgReg  uint8

	// consecutive writes to the serial port are ignored. the cycle of the
	// last write is noted
	cycle     uint64
	lastWrite uint64
}

// the shift register is full when this bit reaches bit 0
const mmc1ShiftReset = 0x10

func newMMC1(img image) (mapper.CartMapper, error) {
	cart := &mmc1{
		board:       newBoard(img, true),
		mappingID:   "001",
		description: "MMC1",
	}
	cart.Reset()
	return cart, nil
}

func (cart *mmc1) String() string {
	return fmt.Sprintf("%s [%s] PRG: %s CHR: %d/%d (%s)", cart.mappingID, cart.description,
		cart.GetBank(0x8000), cart.chrBank(0), cart.chrBank(1), cart.mirroring)
}

// ID implements the mapper.CartMapper interface.
func (cart *mmc1) ID() string {
	return cart.mappingID
}

// Reset implements the mapper.CartMapper interface.
func (cart *mmc1) Reset() {
	cart.shift = mmc1ShiftReset
	cart.chr0 = 0
	cart.chr1 = 0
	cart.prgReg = 0
	cart.lastWrite = ^uint64(0)
	cart.writeControl(0x0c)
}

// Step implements the mapper.CartMapper interface.
func (cart *mmc1) Step() {
	cart.cycle++
}

func (cart *mmc1) writeControl(data uint8) {
	cart.control = data & 0x1f
	switch cart.control & 0x03 {
	case 0:
		cart.mirroring = mapper.SingleLow
	case 1:
		cart.mirroring = mapper.SingleHigh
	case 2:
		cart.mirroring = mapper.Vertical
	case 3:
		cart.mirroring = mapper.Horizontal
	}
}

// 256k outer bank on SUROM boards
func (cart *mmc1) outerBank() int {
	if len(cart.board.prg) > 0x40000 {
		return int(cart.chr0&0x10) >> 4
	}
	return 0
}

// the 16k bank mapped to the 0x8000 (half == 0) or 0xc000 (half == 1) window
func (cart *mmc1) prgBank(half int) int {
	bank := int(cart.prgReg & 0x0f)

	// the number of 16k banks in each 256k outer bank
	inner := cart.prgBanks(prgUnit)
	if inner > 16 {
		inner = 16
	}
	last := inner - 1

	switch (cart.control >> 2) & 0x03 {
	case 0, 1:
		bank = bank&0x0e | half
	case 2:
		if half == 0 {
			bank = 0
		}
	case 3:
		if half == 1 {
			bank = last
		}
	}

	return cart.outerBank()*16 + bank%inner
}

// the 4k CHR bank mapped to 0x0000 (half == 0) or 0x1000 (half == 1)
func (cart *mmc1) chrBank(half int) int {
	if cart.control&0x10 == 0x00 {
		return int(cart.chr0&0x1e) | half
	}
	if half == 0 {
		return int(cart.chr0)
	}
	return int(cart.chr1)
}

func (cart *mmc1) ramEnabled() bool {
	return cart.prgReg&0x10 == 0x00
}

// CPURead implements the mapper.CartMapper interface.
func (cart *mmc1) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0xc000:
		return cart.readPRG(cart.prgBank(1), prgUnit, addr), true
	case addr >= 0x8000:
		return cart.readPRG(cart.prgBank(0), prgUnit, addr), true
	}
	if !cart.ramEnabled() {
		return 0, false
	}
	return cart.readRAM(addr)
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *mmc1) CPUWrite(addr uint16, data uint8) {
	if addr < 0x8000 {
		if cart.ramEnabled() {
			cart.writeRAM(addr, data)
		}
		return
	}

	// writes on consecutive cycles (the dummy write of a RMW instruction) are
	// ignored by the serial port
	consecutive := cart.cycle > 0 && cart.lastWrite == cart.cycle-1
	cart.lastWrite = cart.cycle
	if consecutive {
		return
	}

	if data&0x80 == 0x80 {
		cart.shift = mmc1ShiftReset
		cart.writeControl(cart.control | 0x0c)
		return
	}

	complete := cart.shift&0x01 == 0x01
	cart.shift = cart.shift>>1 | (data&0x01)<<4
	if !complete {
		return
	}

	value := cart.shift
	cart.shift = mmc1ShiftReset

	switch (addr >> 13) & 0x03 {
	case 0:
		cart.writeControl(value)
	case 1:
		cart.chr0 = value
	case 2:
		cart.chr1 = value
	case 3:
		cart.prgReg = value
	}
}

// CHRRead implements the mapper.CartMapper interface.
func (cart *mmc1) CHRRead(addr uint16) uint8 {
	return cart.readCHR(cart.chrBank(int(addr>>12&0x01)), 0x1000, addr)
}

// CHRWrite implements the mapper.CartMapper interface.
func (cart *mmc1) CHRWrite(addr uint16, data uint8) {
	cart.writeCHR(cart.chrBank(int(addr>>12&0x01)), 0x1000, addr, data)
}

// NumBanks implements the mapper.CartMapper interface.
func (cart *mmc1) NumBanks() int {
	return cart.prgBanks(prgUnit)
}

// GetBank implements the mapper.CartMapper interface.
func (cart *mmc1) GetBank(addr uint16) mapper.BankInfo {
	if b, ok := cart.ramBank(addr); ok {
		return b
	}
	if addr >= 0xc000 {
		return mapper.BankInfo{Number: cart.prgBank(1), Size: prgUnit}
	}
	return mapper.BankInfo{Number: cart.prgBank(0), Size: prgUnit}
}
