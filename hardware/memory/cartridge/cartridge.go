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

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/logger"
)

// Cartridge defines the information and operations for an NES cartridge.
//
// The cartridge is connected to both the CPU bus and the PPU bus. As far as
// the PPU is concerned, the cartridge is responsible for everything in the
// range 0x0000 to 0x3eff. The console's own 2k of nametable memory (CIRAM) is
// owned by the Cartridge type because it is the cartridge that decides how the
// nametables are mapped onto it.
type Cartridge struct {
	env *environment.Environment

	Filename  string
	ShortName string
	Hash      string

	// the header of the attached iNES file
	Header Header

	mapper mapper.CartMapper

	// nametable memory. 2k for most mirroring types or 4k for four-screen
	// boards, in which case the additional memory is on the cartridge
	vram []uint8
}

// NewCartridge is the preferred method of initialisation for the cartridge
// type.
func NewCartridge(env *environment.Environment) *Cartridge {
	cart := &Cartridge{env: env}
	cart.Eject()
	return cart
}

func (cart *Cartridge) String() string {
	return fmt.Sprintf("%s\n%s", cart.Filename, cart.mapper)
}

// ID returns the mapper ID of the attached cartridge.
func (cart *Cartridge) ID() string {
	return cart.mapper.ID()
}

// Eject removes the cartridge. The CPU bus will not be driven by the
// cartridge after an Eject() and CHR reads will return zero.
func (cart *Cartridge) Eject() {
	cart.Filename = ejectedName
	cart.ShortName = ejectedName
	cart.Hash = ejectedHash
	cart.Header = Header{}
	cart.mapper = newEjected()
	cart.vram = make([]uint8, mapper.Horizontal.VRAMSize())
}

// IsEjected returns true if no cartridge is attached.
func (cart *Cartridge) IsEjected() bool {
	return cart.Hash == ejectedHash
}

// Attach the data in the cartridge loader. The data must be in the iNES
// format.
//
// Returns an error matching the RomLoad pattern if the data cannot be parsed
// or the UnsupportedMapper pattern if the mapper number in the header is not
// recognised.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	err := cartload.Load()
	if err != nil {
		return curated.Errorf(RomLoad, err)
	}

	img, err := parseINES(cartload.Data)
	if err != nil {
		return err
	}

	var m mapper.CartMapper

	switch img.header.Mapper {
	case 0:
		m, err = newNROM(img)
	case 1:
		m, err = newMMC1(img)
	case 2:
		m, err = newUxROM(img)
	case 3:
		m, err = newCNROM(img)
	case 4:
		m, err = newMMC3(img)
	case 7:
		m, err = newAxROM(img)
	case 66:
		m, err = newGxROM(img)
	default:
		return curated.Errorf(UnsupportedMapper, img.header.Mapper)
	}
	if err != nil {
		return curated.Errorf(RomLoad, err)
	}

	cart.Filename = cartload.Filename
	cart.ShortName = cartload.ShortName()
	cart.Hash = cartload.Hash
	cart.Header = img.header
	cart.mapper = m
	cart.vram = make([]uint8, img.header.Mirroring.VRAMSize())

	// the state of memory at power on is unknown
	if cart.env != nil && cart.env.Prefs.RandomState.Get().(bool) {
		cart.env.Random.Fill(cart.vram)
		if !img.header.Battery {
			cart.env.Random.Fill(m.PRGRAM())
		}
	}

	if img.header.Trainer {
		copy(m.PRGRAM()[trainerOrigin-0x6000:], img.trainer)
	}

	logger.Logf(cart.env, "cartridge", "attached %s (%s)", cart.ShortName, cart.Header)

	return nil
}

// Reset returns the mapper registers and bank selection to their power on
// arrangement. Memory is unchanged.
func (cart *Cartridge) Reset() {
	cart.mapper.Reset()
}

// CPURead reads the data at the CPU address. The driven return value is false
// if the cartridge does not respond to the address.
func (cart *Cartridge) CPURead(addr uint16) (uint8, bool) {
	return cart.mapper.CPURead(addr)
}

// CPUWrite writes data to the CPU address. Writes to ROM are usually bank
// switching operations.
func (cart *Cartridge) CPUWrite(addr uint16, data uint8) {
	cart.mapper.CPUWrite(addr, data)
}

// PPURead reads from the PPU address space. Only addresses in the range 0x0000
// to 0x3eff are meaningful. The palette at 0x3f00 is internal to the PPU.
func (cart *Cartridge) PPURead(addr uint16) uint8 {
	addr &= 0x3fff
	if addr < 0x2000 {
		return cart.mapper.CHRRead(addr)
	}
	return cart.vram[cart.nametable(addr)]
}

// PPUWrite writes to the PPU address space. Only addresses in the range 0x0000
// to 0x3eff are meaningful.
func (cart *Cartridge) PPUWrite(addr uint16, data uint8) {
	addr &= 0x3fff
	if addr < 0x2000 {
		cart.mapper.CHRWrite(addr, data)
		return
	}
	cart.vram[cart.nametable(addr)] = data
}

func (cart *Cartridge) nametable(addr uint16) uint16 {
	return cart.mapper.Mirroring().Nametable(addr) % uint16(len(cart.vram))
}

// PPUAddressChanged should be called whenever the PPU places a new address on
// its address bus.
func (cart *Cartridge) PPUAddressChanged(addr uint16) {
	cart.mapper.PPUAddressChanged(addr)
}

// Step should be called every CPU cycle.
func (cart *Cartridge) Step() {
	cart.mapper.Step()
}

// IRQ returns the state of the cartridge's IRQ line.
func (cart *Cartridge) IRQ() bool {
	return cart.mapper.IRQ()
}

// Mirroring returns the nametable mirroring currently in effect.
func (cart *Cartridge) Mirroring() mapper.Mirroring {
	return cart.mapper.Mirroring()
}

// NumBanks returns the number of PRG banks in the cartridge.
func (cart *Cartridge) NumBanks() int {
	return cart.mapper.NumBanks()
}

// GetBank returns the PRG bank currently mapped to the CPU address.
func (cart *Cartridge) GetBank(addr uint16) mapper.BankInfo {
	return cart.mapper.GetBank(addr)
}

// HasBattery returns true if the cartridge has battery backed PRG RAM.
func (cart *Cartridge) HasBattery() bool {
	return cart.Header.Battery && len(cart.mapper.PRGRAM()) > 0
}

// BatteryRAM returns a copy of the battery backed PRG RAM. Returns nil if the
// cartridge has no battery.
func (cart *Cartridge) BatteryRAM() []uint8 {
	if !cart.HasBattery() {
		return nil
	}
	ram := cart.mapper.PRGRAM()
	d := make([]uint8, len(ram))
	copy(d, ram)
	return d
}

// LoadBatteryRAM copies data into the battery backed PRG RAM. The data must be
// the same size as the RAM.
func (cart *Cartridge) LoadBatteryRAM(data []uint8) error {
	if !cart.HasBattery() {
		return curated.Errorf("cartridge: %v", "no battery backed RAM")
	}
	ram := cart.mapper.PRGRAM()
	if len(data) != len(ram) {
		return curated.Errorf("cartridge: battery RAM is %d bytes not %d", len(ram), len(data))
	}
	copy(ram, data)
	return nil
}
