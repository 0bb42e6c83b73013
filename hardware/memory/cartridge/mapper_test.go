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

package cartridge_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/cartridgetest"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

func TestUxROM(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 2,
		PRG:    cartridgetest.NumberedPRG(8),
	})
	test.ExpectEquality(t, cart.NumBanks(), 8)

	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)
	test.ExpectEquality(t, read(t, cart, 0xffff), 15)

	cart.CPUWrite(0x8000, 3)
	test.ExpectEquality(t, read(t, cart, 0x8000), 6)
	test.ExpectEquality(t, read(t, cart, 0xa000), 7)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)
	test.ExpectEquality(t, cart.GetBank(0x8000).Number, 3)
	test.ExpectEquality(t, cart.GetBank(0xc000).Number, 7)

	// no PRG RAM on UxROM boards
	_, ok := cart.CPURead(0x6000)
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, cart.GetBank(0x6000).NonCart)

	cart.Reset()
	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
}

func TestCNROM(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 3,
		PRG:    cartridgetest.NumberedPRG(2),
		CHR:    cartridgetest.NumberedCHR(4),
	})

	test.ExpectEquality(t, cart.PPURead(0x0000), 0)
	test.ExpectEquality(t, cart.PPURead(0x1c00), 7)

	cart.CPUWrite(0xffff, 2)
	test.ExpectEquality(t, cart.PPURead(0x0000), 16)
	test.ExpectEquality(t, cart.PPURead(0x1c00), 23)

	// PRG is fixed
	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
	test.ExpectEquality(t, read(t, cart, 0xc000), 2)
}

func TestAxROM(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 7,
		PRG:    cartridgetest.NumberedPRG(8),
	})
	test.ExpectEquality(t, cart.Mirroring(), mapper.SingleLow)
	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
	test.ExpectEquality(t, read(t, cart, 0xe000), 3)

	cart.CPUWrite(0x8000, 0x12)
	test.ExpectEquality(t, cart.Mirroring(), mapper.SingleHigh)
	test.ExpectEquality(t, read(t, cart, 0x8000), 8)
	test.ExpectEquality(t, read(t, cart, 0xe000), 11)

	// single screen mirroring means all four nametables are the same
	cart.PPUWrite(0x2000, 0xaa)
	test.ExpectEquality(t, cart.PPURead(0x2400), 0xaa)
	test.ExpectEquality(t, cart.PPURead(0x2800), 0xaa)
	test.ExpectEquality(t, cart.PPURead(0x2c00), 0xaa)

	// the low page is a different page
	cart.CPUWrite(0x8000, 0x02)
	test.ExpectEquality(t, cart.PPURead(0x2000), 0x00)
}

func TestGxROM(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 66,
		PRG:    cartridgetest.NumberedPRG(8),
		CHR:    cartridgetest.NumberedCHR(4),
	})
	cart.CPUWrite(0x8000, 0x21)
	test.ExpectEquality(t, read(t, cart, 0x8000), 8)
	test.ExpectEquality(t, cart.PPURead(0x0000), 8)
	test.ExpectEquality(t, cart.GetBank(0x8000).Number, 2)
}

// write a value to an MMC1 register through the serial port. the writes are
// two cycles apart
func mmc1Write(cart *cartridge.Cartridge, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		cart.Step()
		cart.Step()
		cart.CPUWrite(addr, value>>i&0x01)
	}
}

func TestMMC1(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 1,
		PRG:    cartridgetest.NumberedPRG(8),
		CHR:    cartridgetest.NumberedCHR(4),
	})

	// power on is mode 3. last bank fixed at 0xc000
	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)

	mmc1Write(cart, 0xe000, 3)
	test.ExpectEquality(t, read(t, cart, 0x8000), 6)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)

	// mode 2. first bank fixed at 0x8000. vertical mirroring
	mmc1Write(cart, 0x8000, 0x0a)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Vertical)
	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
	test.ExpectEquality(t, read(t, cart, 0xc000), 6)

	// 32k mode. the low bit of the bank number is ignored
	mmc1Write(cart, 0x8000, 0x03)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Horizontal)
	test.ExpectEquality(t, read(t, cart, 0x8000), 4)
	test.ExpectEquality(t, read(t, cart, 0xc000), 6)

	// 8k CHR mode
	mmc1Write(cart, 0xa000, 5)
	test.ExpectEquality(t, cart.PPURead(0x0000), 16)
	test.ExpectEquality(t, cart.PPURead(0x1000), 20)

	// 4k CHR mode
	mmc1Write(cart, 0x8000, 0x10)
	test.ExpectEquality(t, cart.Mirroring(), mapper.SingleLow)
	mmc1Write(cart, 0xc000, 2)
	test.ExpectEquality(t, cart.PPURead(0x0000), 20)
	test.ExpectEquality(t, cart.PPURead(0x1000), 8)

	// a write with bit 7 set resets the shift register and sets mode 3
	cart.Step()
	cart.Step()
	cart.CPUWrite(0x8000, 0x01)
	cart.Step()
	cart.Step()
	cart.CPUWrite(0x8000, 0x80)
	mmc1Write(cart, 0xe000, 1)
	test.ExpectEquality(t, read(t, cart, 0x8000), 2)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)

	// writes on consecutive cycles are ignored. the write immediately after
	// the fourth bit would otherwise be the fifth bit
	for i := 0; i < 4; i++ {
		cart.Step()
		cart.Step()
		cart.CPUWrite(0xe000, 0x00)
	}
	cart.Step()
	cart.CPUWrite(0xe000, 0x00)
	test.ExpectEquality(t, read(t, cart, 0x8000), 2)
	cart.Step()
	cart.Step()
	cart.CPUWrite(0xe000, 0x00)
	test.ExpectEquality(t, read(t, cart, 0x8000), 0)

	// PRG RAM disable
	cart.CPUWrite(0x6000, 0x55)
	test.ExpectEquality(t, read(t, cart, 0x6000), 0x55)
	mmc1Write(cart, 0xe000, 0x10)
	_, ok := cart.CPURead(0x6000)
	test.ExpectFailure(t, ok)
}

func TestMMC3Banks(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 4,
		PRG:    cartridgetest.NumberedPRG(8),
		CHR:    cartridgetest.NumberedCHR(8),
	})
	test.ExpectEquality(t, cart.NumBanks(), 16)

	test.ExpectEquality(t, read(t, cart, 0x8000), 0)
	test.ExpectEquality(t, read(t, cart, 0xa000), 1)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)
	test.ExpectEquality(t, read(t, cart, 0xe000), 15)

	cart.CPUWrite(0x8000, 0x06)
	cart.CPUWrite(0x8001, 4)
	test.ExpectEquality(t, read(t, cart, 0x8000), 4)
	test.ExpectEquality(t, read(t, cart, 0xc000), 14)

	// PRG swap
	cart.CPUWrite(0x8000, 0x46)
	test.ExpectEquality(t, read(t, cart, 0x8000), 14)
	test.ExpectEquality(t, read(t, cart, 0xc000), 4)
	test.ExpectEquality(t, read(t, cart, 0xe000), 15)

	// CHR. the 2k banks ignore the low bit
	cart.CPUWrite(0x8000, 0x00)
	cart.CPUWrite(0x8001, 9)
	test.ExpectEquality(t, cart.PPURead(0x0000), 8)
	test.ExpectEquality(t, cart.PPURead(0x0400), 9)
	cart.CPUWrite(0x8000, 0x05)
	cart.CPUWrite(0x8001, 33)
	test.ExpectEquality(t, cart.PPURead(0x1c00), 33)

	// CHR inversion
	cart.CPUWrite(0x8000, 0x80)
	test.ExpectEquality(t, cart.PPURead(0x1000), 8)
	test.ExpectEquality(t, cart.PPURead(0x0c00), 33)

	// mirroring
	cart.CPUWrite(0xa000, 0x00)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Vertical)
	cart.CPUWrite(0xa000, 0x01)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Horizontal)

	// PRG RAM write protection
	cart.CPUWrite(0x6000, 0x12)
	cart.CPUWrite(0xa001, 0xc0)
	cart.CPUWrite(0x6000, 0x34)
	test.ExpectEquality(t, read(t, cart, 0x6000), 0x12)
	cart.CPUWrite(0xa001, 0x00)
	_, ok := cart.CPURead(0x6000)
	test.ExpectFailure(t, ok)
}

// one scanline's worth of A12 activity. lowCycles is the number of CPU cycles
// that A12 is held low before rising
func scanline(cart *cartridge.Cartridge, lowCycles int) {
	cart.PPUAddressChanged(0x0000)
	for i := 0; i < lowCycles; i++ {
		cart.Step()
	}
	cart.PPUAddressChanged(0x1000)
	cart.Step()
}

func TestMMC3IRQ(t *testing.T) {
	cart := attach(t, cartridgetest.Image{
		Mapper: 4,
		PRG:    cartridgetest.NumberedPRG(2),
		CHR:    cartridgetest.NumberedCHR(1),
	})

	// reload value of 2 means an IRQ every third scanline
	cart.CPUWrite(0xc000, 2)
	cart.CPUWrite(0xc001, 0)
	cart.CPUWrite(0xe001, 0)

	var count int
	for line := 0; line < 30; line++ {
		scanline(cart, 80)
		if cart.IRQ() {
			count++
			test.ExpectEquality(t, line%3, 2)

			// acknowledge
			cart.CPUWrite(0xe000, 0)
			cart.CPUWrite(0xe001, 0)
			test.ExpectFailure(t, cart.IRQ())
		}
	}
	test.ExpectEquality(t, count, 10)

	// short low periods are filtered out and do not clock the counter
	cart.CPUWrite(0xc000, 0)
	cart.CPUWrite(0xc001, 0)
	for line := 0; line < 10; line++ {
		scanline(cart, 2)
	}
	test.ExpectFailure(t, cart.IRQ())

	// when the latch is zero every clock generates an IRQ
	scanline(cart, 3)
	test.ExpectSuccess(t, cart.IRQ())

	// disabled IRQ still clocks the counter but does not assert the line
	cart.CPUWrite(0xe000, 0)
	cart.CPUWrite(0xc000, 1)
	cart.CPUWrite(0xc001, 0)
	for line := 0; line < 10; line++ {
		scanline(cart, 80)
		test.ExpectFailure(t, cart.IRQ())
	}
}
