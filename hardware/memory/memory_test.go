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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/cartridgetest"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/test"
)

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()

	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true

	cart := cartridge.NewCartridge(env)
	test.DemandSuccess(t, cart.Attach(cartridgetest.NOPLoop().Loader("test.nes")))

	mem := memory.NewMemory(env, cart, controller.NewPads())
	mem.Plumb(ppu.NewPPU(env, cart), apu.NewAPU(env, mem))

	return mem
}

func readData(t *testing.T, mem *memory.Memory, address uint16, expected uint8) {
	t.Helper()
	d, err := mem.Read(address)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, expected, address)
}

func TestRAMMirrors(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Write(0x0001, 0x55))
	readData(t, mem, 0x0001, 0x55)
	readData(t, mem, 0x0801, 0x55)
	readData(t, mem, 0x1001, 0x55)
	readData(t, mem, 0x1801, 0x55)

	test.ExpectSuccess(t, mem.Write(0x1fff, 0xaa))
	test.ExpectEquality(t, mem.RAM.Peek(0x07ff), 0xaa)
}

func TestOpenBus(t *testing.T) {
	mem := newMemory(t)

	// unused test registers
	test.ExpectSuccess(t, mem.Write(0x0010, 0xab))
	readData(t, mem, 0x4018, 0xab)
	test.ExpectEquality(t, mem.OpenBus(), 0xab)

	// write-only APU register
	test.ExpectSuccess(t, mem.Write(0x0010, 0xcd))
	readData(t, mem, 0x4000, 0xcd)

	// NROM does not respond to the expansion area
	test.ExpectSuccess(t, mem.Write(0x0010, 0x12))
	readData(t, mem, 0x5000, 0x12)

	// the open bus value is updated by reads too
	readData(t, mem, 0x0010, 0x12)
	readData(t, mem, 0xfffd, 0x80)
	readData(t, mem, 0x401f, 0x80)
}

func TestControllerPorts(t *testing.T) {
	mem := newMemory(t)
	mem.Pads.Pad(0).Press(controller.A)

	test.ExpectSuccess(t, mem.Write(0x4016, 0x01))
	test.ExpectSuccess(t, mem.Write(0x4016, 0x00))

	// the upper three bits are the open bus value. in practice this is
	// usually 0x40 because of the high byte of the address
	test.ExpectSuccess(t, mem.Write(0x0000, 0x40))
	readData(t, mem, 0x4016, 0x41)

	// bits 5 to 7 are preserved but the low bits are the controller
	test.ExpectSuccess(t, mem.Write(0x0000, 0xff))
	readData(t, mem, 0x4016, 0xe0)

	// second controller has no buttons pressed
	test.ExpectSuccess(t, mem.Write(0x0000, 0x40))
	readData(t, mem, 0x4017, 0x40)
}

func TestAPUStatus(t *testing.T) {
	mem := newMemory(t)

	// bit 5 of the status register is open bus
	test.ExpectSuccess(t, mem.Write(0x0000, 0x20))
	readData(t, mem, 0x4015, 0x20)
	test.ExpectSuccess(t, mem.Write(0x0000, 0x00))
	readData(t, mem, 0x4015, 0x00)

	// length counter status of the first pulse channel
	test.ExpectSuccess(t, mem.Write(0x4015, 0x01))
	test.ExpectSuccess(t, mem.Write(0x4003, 0x08))
	readData(t, mem, 0x4015, 0x01)
}

func TestPPURegisters(t *testing.T) {
	mem := newMemory(t)

	// PPUADDR through a mirror
	test.ExpectSuccess(t, mem.Write(0x3456, 0x21))
	test.ExpectSuccess(t, mem.Write(0x200e, 0x00))
	test.ExpectSuccess(t, mem.Write(0x2007, 0x99))

	test.ExpectSuccess(t, mem.Write(0x2006, 0x21))
	test.ExpectSuccess(t, mem.Write(0x2006, 0x00))
	_, _ = mem.Read(0x2007)
	readData(t, mem, 0x3fff, 0x99)
}

func TestOAMDMA(t *testing.T) {
	mem := newMemory(t)

	page, ok := mem.OAMDMA()
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, mem.Write(0x4014, 0x02))
	page, ok = mem.OAMDMA()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, page, 0x02)

	// the request is cleared
	_, ok = mem.OAMDMA()
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, mem.StallCycles(), 0)
}

func TestCartridgeRAM(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Write(0x6000, 0x77))
	readData(t, mem, 0x6000, 0x77)

	// ROM is not writable
	test.ExpectSuccess(t, mem.Write(0x8000, 0x00))
	readData(t, mem, 0x8000, 0xea)
}
