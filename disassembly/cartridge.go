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

package disassembly

import (
	"fmt"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
)

// the range of the CPU address space that is disassembled by FromCartridge()
const (
	cartOrigin = 0x8000
	cartEnd    = 0xfffa
)

// FromCartridge disassembles the PRG banks of the cartridge that are mapped
// into the CPU address space from 0x8000. The vectors at the end of the
// address space are decoded as data.
func FromCartridge(cart *cartridge.Cartridge) []Entry {
	data := make([]uint8, 0, cartEnd-cartOrigin)
	for a := uint32(cartOrigin); a < cartEnd; a++ {
		d, _ := cart.CPURead(uint16(a))
		data = append(data, d)
	}

	entries := Decode(cartOrigin, data)

	// instructions never straddle the edge of a bank so the bank of the
	// first byte of an instruction is the bank of the entire instruction
	for i := range entries {
		entries[i].Bank = cart.GetBank(entries[i].Address).Number
	}

	for _, v := range vectors {
		lo, _ := cart.CPURead(v.address)
		hi, _ := cart.CPURead(v.address + 1)
		entries = append(entries, Entry{
			Address:  v.address,
			Bank:     cart.GetBank(v.address).Number,
			Bytecode: []uint8{lo, hi},
			Operator: ".word",
			Operand:  fmt.Sprintf("$%04x ; %s", uint16(lo)|uint16(hi)<<8, v.name),
		})
	}

	return entries
}
