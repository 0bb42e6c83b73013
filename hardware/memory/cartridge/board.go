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
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// board is the memory common to all cartridge boards. mapper implementations
// embed a board and add their own banking logic.
//
// the methods of board satisfy the parts of the mapper.CartMapper interface
// that many mappers have no interest in.
type board struct {
	prg []uint8
	chr []uint8

	// chr is RAM and can be written to
	chrRAM bool

	// PRG RAM mapped to 0x6000 to 0x7fff. nil if the board has none
	ram []uint8

	mirroring mapper.Mirroring
}

// newBoard copies the PRG and CHR data from the image. CHR RAM of 8k is
// allocated if the image has no CHR ROM. PRG RAM is allocated if withRAM is
// true or if the cartridge is battery backed.
func newBoard(img image, withRAM bool) board {
	b := board{
		prg:       make([]uint8, len(img.prg)),
		mirroring: img.header.Mirroring,
	}
	copy(b.prg, img.prg)

	if len(img.chr) == 0 {
		b.chr = make([]uint8, chrUnit)
		b.chrRAM = true
	} else {
		b.chr = make([]uint8, len(img.chr))
		copy(b.chr, img.chr)
	}

	if withRAM || img.header.Battery || img.header.Trainer {
		b.ram = make([]uint8, img.header.PRGRAMSize)
	}

	return b
}

// number of banks of the specified size in PRG ROM
func (b *board) prgBanks(size int) int {
	n := len(b.prg) / size
	if n == 0 {
		return 1
	}
	return n
}

// number of banks of the specified size in CHR memory
func (b *board) chrBanks(size int) int {
	n := len(b.chr) / size
	if n == 0 {
		return 1
	}
	return n
}

// readPRG returns the byte at offset within the specified bank. bank numbers
// beyond the size of the ROM wrap around
func (b *board) readPRG(bank int, size int, offset uint16) uint8 {
	bank %= b.prgBanks(size)
	return b.prg[(bank*size+int(offset)%size)%len(b.prg)]
}

func (b *board) readCHR(bank int, size int, offset uint16) uint8 {
	bank %= b.chrBanks(size)
	return b.chr[(bank*size+int(offset)%size)%len(b.chr)]
}

func (b *board) writeCHR(bank int, size int, offset uint16, data uint8) {
	if !b.chrRAM {
		return
	}
	bank %= b.chrBanks(size)
	b.chr[(bank*size+int(offset)%size)%len(b.chr)] = data
}

// readRAM returns false if the address does not map to PRG RAM
func (b *board) readRAM(addr uint16) (uint8, bool) {
	if len(b.ram) == 0 || addr < 0x6000 || addr > 0x7fff {
		return 0, false
	}
	return b.ram[int(addr-0x6000)%len(b.ram)], true
}

func (b *board) writeRAM(addr uint16, data uint8) {
	if len(b.ram) == 0 || addr < 0x6000 || addr > 0x7fff {
		return
	}
	b.ram[int(addr-0x6000)%len(b.ram)] = data
}

// ramBank returns BankInfo for an address in the PRG RAM range
func (b *board) ramBank(addr uint16) (mapper.BankInfo, bool) {
	if addr >= 0x6000 && addr <= 0x7fff {
		if len(b.ram) == 0 {
			return mapper.BankInfo{NonCart: true}, true
		}
		return mapper.BankInfo{Size: len(b.ram), IsRAM: true}, true
	}
	if addr < 0x6000 {
		return mapper.BankInfo{NonCart: true}, true
	}
	return mapper.BankInfo{}, false
}

// CHRRead implements the mapper.CartMapper interface. Unbanked 8k of CHR.
func (b *board) CHRRead(addr uint16) uint8 {
	return b.readCHR(0, chrUnit, addr)
}

// CHRWrite implements the mapper.CartMapper interface. Unbanked 8k of CHR.
func (b *board) CHRWrite(addr uint16, data uint8) {
	b.writeCHR(0, chrUnit, addr, data)
}

// Mirroring implements the mapper.CartMapper interface.
func (b *board) Mirroring() mapper.Mirroring {
	return b.mirroring
}

// PPUAddressChanged implements the mapper.CartMapper interface.
func (b *board) PPUAddressChanged(_ uint16) {
}

// Step implements the mapper.CartMapper interface.
func (b *board) Step() {
}

// IRQ implements the mapper.CartMapper interface.
func (b *board) IRQ() bool {
	return false
}

// PRGRAM implements the mapper.CartMapper interface.
func (b *board) PRGRAM() []uint8 {
	return b.ram
}
