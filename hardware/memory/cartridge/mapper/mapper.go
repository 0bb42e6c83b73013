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

package mapper

// CartMapper implementations hold the PRG and CHR data from the loaded ROM
// and keep track of which banks are mapped to individual addresses.
//
// Addresses are not normalised. CPU addresses are in the range 0x4020 to
// 0xffff and CHR addresses are in the range 0x0000 to 0x1fff.
type CartMapper interface {
	String() string
	ID() string

	// reset registers and bank selection to their power on arrangement. the
	// contents of PRG RAM are not affected
	Reset()

	// read from the cartridge on the CPU bus. the driven return value is false
	// if the mapper does not respond to the address, in which case the data
	// bus remains at the open bus value
	CPURead(addr uint16) (data uint8, driven bool)

	// write to the cartridge on the CPU bus. writes to addresses that the
	// cartridge does not respond to are silently ignored
	CPUWrite(addr uint16, data uint8)

	// access the CHR ROM or CHR RAM through whatever banking is currently in
	// effect. writes to CHR ROM are ignored
	CHRRead(addr uint16) uint8
	CHRWrite(addr uint16, data uint8)

	// the current nametable arrangement. some mappers are able to change this
	// at runtime
	Mirroring() Mirroring

	// PPUAddressChanged is called whenever the PPU places a new address on
	// its address bus. the address will be in the range 0x0000 to 0x3fff
	PPUAddressChanged(addr uint16)

	// Step is called once every CPU cycle
	Step()

	// the state of the cartridge's IRQ line
	IRQ() bool

	// the PRG RAM of the cartridge. nil if there is no PRG RAM
	PRGRAM() []uint8

	NumBanks() int
	GetBank(addr uint16) BankInfo
}
