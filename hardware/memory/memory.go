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

package memory

import (
	"fmt"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
	"github.com/jetsetilly/gophernes/hardware/ppu"
)

// Memory is the CPU bus of the NES.
type Memory struct {
	env *environment.Environment

	RAM  *RAM
	Cart *cartridge.Cartridge
	Pads *controller.Pads

	// the PPU and APU are plumbed in after creation because the APU needs a
	// reference to the memory for DMC reads
	PPU *ppu.PPU
	APU *apu.APU

	// the last value placed on the data bus
	openBus uint8

	// a write to OAMDMA has not yet been serviced by the CPU
	oamPending bool
	oamPage    uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The PPU and APU must be added with Plumb() before the memory is used.
func NewMemory(env *environment.Environment, cart *cartridge.Cartridge, pads *controller.Pads) *Memory {
	return &Memory{
		env:  env,
		RAM:  newRAM(env),
		Cart: cart,
		Pads: pads,
	}
}

// Plumb the PPU and APU into the memory.
func (mem *Memory) Plumb(p *ppu.PPU, a *apu.APU) {
	mem.PPU = p
	mem.APU = a
}

func (mem *Memory) String() string {
	return fmt.Sprintf("bus=%02x dma=%v", mem.openBus, mem.oamPending)
}

// Reset the memory bus. RAM is unchanged.
func (mem *Memory) Reset() {
	mem.openBus = 0
	mem.oamPending = false
	mem.oamPage = 0
}

// OpenBus returns the last value placed on the data bus.
func (mem *Memory) OpenBus() uint8 {
	return mem.openBus
}

// Read implements the cpubus.Memory interface.
func (mem *Memory) Read(address uint16) (uint8, error) {
	var data uint8

	switch {
	case address < 0x2000:
		data = mem.RAM.memory[address&(ramSize-1)]

	case address < cpubus.APUOrigin:
		data = mem.PPU.ReadRegister(address)

	case address == cpubus.APUSTATUS:
		data = mem.APU.ReadStatus() | mem.openBus&0x20

	case address == cpubus.JOY1:
		data = mem.Pads.Read(0)&controller.DrivenBits | mem.openBus&^controller.DrivenBits

	case address == cpubus.JOY2:
		data = mem.Pads.Read(1)&controller.DrivenBits | mem.openBus&^controller.DrivenBits

	case address < cpubus.CartOrigin:
		// write-only registers and the unused test registers
		data = mem.openBus

	default:
		var ok bool
		data, ok = mem.Cart.CPURead(address)
		if !ok {
			data = mem.openBus
		}
	}

	mem.openBus = data

	return data, nil
}

// Write implements the cpubus.Memory interface.
func (mem *Memory) Write(address uint16, data uint8) error {
	mem.openBus = data

	switch {
	case address < 0x2000:
		mem.RAM.memory[address&(ramSize-1)] = data

	case address < cpubus.APUOrigin:
		mem.PPU.WriteRegister(address, data)

	case address == cpubus.OAMDMA:
		mem.oamPending = true
		mem.oamPage = data

	case address == cpubus.JOY1:
		mem.Pads.Write(data)

	case address <= cpubus.APUMemtop:
		mem.APU.WriteRegister(address, data)

	case address < cpubus.CartOrigin:
		// unused test registers

	default:
		mem.Cart.CPUWrite(address, data)
	}

	return nil
}

// OAMDMA implements the cpubus.DMA interface.
func (mem *Memory) OAMDMA() (uint8, bool) {
	if !mem.oamPending {
		return 0, false
	}
	mem.oamPending = false
	return mem.oamPage, true
}

// StallCycles implements the cpubus.DMA interface.
func (mem *Memory) StallCycles() int {
	return mem.APU.StallCycles()
}

// DMCRead implements the apu.Memory interface. The DMC reads through the CPU
// bus and so the value read is seen as the open bus value.
func (mem *Memory) DMCRead(address uint16) uint8 {
	data, _ := mem.Read(address)
	return data
}
