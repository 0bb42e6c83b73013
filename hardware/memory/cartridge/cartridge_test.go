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

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/cartridgetest"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

func attach(t *testing.T, img cartridgetest.Image) *cartridge.Cartridge {
	t.Helper()
	env := environment.NewEnvironment("test", nil)
	env.Quiet = true
	cart := cartridge.NewCartridge(env)
	test.DemandSuccess(t, cart.Attach(img.Loader("test.nes")))
	return cart
}

func cartridgeLoader(d []uint8) cartridgeloader.Loader {
	return cartridgeloader.NewLoaderFromData("test.nes", d)
}

func attachErr(img cartridgetest.Image) error {
	cart := cartridge.NewCartridge(nil)
	return cart.Attach(img.Loader("test.nes"))
}

func read(t *testing.T, cart *cartridge.Cartridge, addr uint16) uint8 {
	t.Helper()
	d, ok := cart.CPURead(addr)
	test.DemandSuccess(t, ok, addr)
	return d
}

func TestRomLoad(t *testing.T) {
	cart := cartridge.NewCartridge(nil)

	// bad magic
	d := cartridgetest.NOPLoop().Bytes()
	d[3] = 0x00
	err := cart.Attach(cartridgeLoader(d))
	test.ExpectSuccess(t, curated.Is(err, cartridge.RomLoad))

	// short header
	err = cart.Attach(cartridgeLoader([]uint8{'N', 'E', 'S', 0x1a, 1}))
	test.ExpectSuccess(t, curated.Is(err, cartridge.RomLoad))

	// no PRG
	err = attachErr(cartridgetest.Image{})
	test.ExpectSuccess(t, curated.Is(err, cartridge.RomLoad))

	// truncated PRG
	d = cartridgetest.NOPLoop().Bytes()
	err = cart.Attach(cartridgeLoader(d[:0x2000]))
	test.ExpectSuccess(t, curated.Is(err, cartridge.RomLoad))

	// truncated CHR
	d = cartridgetest.NOPLoop().Bytes()
	err = cart.Attach(cartridgeLoader(d[:len(d)-1]))
	test.ExpectSuccess(t, curated.Is(err, cartridge.RomLoad))

	// failed attachments leave the cartridge ejected
	test.ExpectSuccess(t, cart.IsEjected())

	// NROM must be 16k or 32k
	err = attachErr(cartridgetest.Image{PRG: make([]uint8, 0xc000)})
	test.ExpectSuccess(t, curated.Is(err, cartridge.RomLoad))
}

func TestUnsupportedMapper(t *testing.T) {
	img := cartridgetest.NOPLoop()
	img.Mapper = 5
	err := attachErr(img)
	test.ExpectSuccess(t, curated.Is(err, cartridge.UnsupportedMapper))
	test.ExpectEquality(t, err.Error(), "cartridge: unsupported mapper (5)")
}

func TestHeader(t *testing.T) {
	img := cartridgetest.Image{
		Mapper:   66,
		PRG:      cartridgetest.NumberedPRG(4),
		CHR:      cartridgetest.NumberedCHR(2),
		Vertical: true,
		Battery:  true,
	}
	cart := attach(t, img)
	test.ExpectEquality(t, cart.Header.Mapper, 66)
	test.ExpectEquality(t, cart.Header.PRGBanks, 4)
	test.ExpectEquality(t, cart.Header.CHRBanks, 2)
	test.ExpectEquality(t, cart.Header.Mirroring, mapper.Vertical)
	test.ExpectSuccess(t, cart.Header.Battery)
	test.ExpectEquality(t, cart.ID(), "066")
	test.ExpectEquality(t, cart.ShortName, "test")
	test.ExpectInequality(t, cart.Hash, "")
}

func TestDiskDude(t *testing.T) {
	// "DiskDude!" in bytes 7 to 15 of the header. the 'D' in byte 7 would
	// make this mapper 64 if the flags 7 nibble was used
	img := cartridgetest.NOPLoop()
	img.Mapper = 2
	d := img.Bytes()
	copy(d[7:], []uint8("DiskDude!"))
	cart := cartridge.NewCartridge(nil)
	test.ExpectSuccess(t, cart.Attach(cartridgeLoader(d)))
	test.ExpectEquality(t, cart.Header.Mapper, 2)

	// clean header uses the flags 7 nibble
	img.Mapper = 0x45
	err := attachErr(img)
	test.ExpectSuccess(t, curated.Is(err, cartridge.UnsupportedMapper))
	test.ExpectEquality(t, err.Error(), "cartridge: unsupported mapper (69)")
}

func TestTrainer(t *testing.T) {
	trainer := make([]uint8, 512)
	for i := range trainer {
		trainer[i] = uint8(i)
	}
	img := cartridgetest.NOPLoop()
	img.Trainer = trainer
	cart := attach(t, img)

	test.ExpectSuccess(t, cart.Header.Trainer)
	test.ExpectEquality(t, read(t, cart, 0x7000), 0x00)
	test.ExpectEquality(t, read(t, cart, 0x7001), 0x01)
	test.ExpectEquality(t, read(t, cart, 0x71ff), 0xff)

	// program is still at 0x8000
	test.ExpectEquality(t, read(t, cart, 0x8000), 0xea)
}

func TestNROM(t *testing.T) {
	cart := attach(t, cartridgetest.NOPLoop())

	// 16k mirrored at 0xc000
	test.ExpectEquality(t, read(t, cart, 0x8000), 0xea)
	test.ExpectEquality(t, read(t, cart, 0xc000), 0xea)
	test.ExpectEquality(t, read(t, cart, 0xfffc), 0x00)
	test.ExpectEquality(t, read(t, cart, 0xfffd), 0x80)

	// writes to ROM are ignored
	cart.CPUWrite(0x8000, 0x00)
	test.ExpectEquality(t, read(t, cart, 0x8000), 0xea)

	// PRG RAM
	cart.CPUWrite(0x6000, 0x42)
	test.ExpectEquality(t, read(t, cart, 0x6000), 0x42)

	// nothing in the expansion area
	_, ok := cart.CPURead(0x5000)
	test.ExpectFailure(t, ok)
	_, ok = cart.CPURead(0x4020)
	test.ExpectFailure(t, ok)

	// CHR ROM is not writable
	cart.PPUWrite(0x0010, 0xff)
	test.ExpectEquality(t, cart.PPURead(0x0010), 0x00)
}

func TestCHRRAM(t *testing.T) {
	img := cartridgetest.NOPLoop()
	img.CHR = nil
	cart := attach(t, img)
	test.ExpectEquality(t, cart.Header.CHRBanks, 0)

	cart.PPUWrite(0x0010, 0xff)
	cart.PPUWrite(0x1fff, 0x01)
	test.ExpectEquality(t, cart.PPURead(0x0010), 0xff)
	test.ExpectEquality(t, cart.PPURead(0x1fff), 0x01)
}

func TestMirroring(t *testing.T) {
	// horizontal
	cart := attach(t, cartridgetest.NOPLoop())
	cart.PPUWrite(0x2000, 0x01)
	cart.PPUWrite(0x2800, 0x02)
	test.ExpectEquality(t, cart.PPURead(0x2400), 0x01)
	test.ExpectEquality(t, cart.PPURead(0x2c00), 0x02)
	test.ExpectEquality(t, cart.PPURead(0x3000), 0x01)
	test.ExpectEquality(t, cart.PPURead(0x3800), 0x02)

	// vertical
	img := cartridgetest.NOPLoop()
	img.Vertical = true
	cart = attach(t, img)
	cart.PPUWrite(0x2000, 0x01)
	cart.PPUWrite(0x2400, 0x02)
	test.ExpectEquality(t, cart.PPURead(0x2800), 0x01)
	test.ExpectEquality(t, cart.PPURead(0x2c00), 0x02)
	test.ExpectEquality(t, cart.PPURead(0x33ff), 0x00)

	// four screen
	img.FourScreen = true
	cart = attach(t, img)
	test.ExpectEquality(t, cart.Mirroring(), mapper.FourScreen)
	for i := uint16(0); i < 4; i++ {
		cart.PPUWrite(0x2000+i*0x400, uint8(i+1))
	}
	for i := uint16(0); i < 4; i++ {
		test.ExpectEquality(t, cart.PPURead(0x2000+i*0x400), uint8(i+1))
	}
}

func TestBattery(t *testing.T) {
	img := cartridgetest.NOPLoop()
	cart := attach(t, img)
	test.ExpectFailure(t, cart.HasBattery())
	test.ExpectEquality(t, len(cart.BatteryRAM()), 0)
	test.ExpectFailure(t, cart.LoadBatteryRAM(make([]uint8, 0x2000)))

	img.Battery = true
	cart = attach(t, img)
	test.ExpectSuccess(t, cart.HasBattery())

	ram := make([]uint8, 0x2000)
	ram[0] = 0x11
	ram[0x1fff] = 0x22
	test.ExpectSuccess(t, cart.LoadBatteryRAM(ram))
	test.ExpectEquality(t, read(t, cart, 0x6000), 0x11)
	test.ExpectEquality(t, read(t, cart, 0x7fff), 0x22)

	cart.CPUWrite(0x6001, 0x33)
	ram = cart.BatteryRAM()
	test.ExpectEquality(t, ram[1], 0x33)

	// wrong size
	test.ExpectFailure(t, cart.LoadBatteryRAM(make([]uint8, 10)))

	// reset does not touch RAM
	cart.Reset()
	test.ExpectEquality(t, read(t, cart, 0x6001), 0x33)
}
