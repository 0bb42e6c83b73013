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

// Package cartridgetest builds iNES images in memory for use in tests.
package cartridgetest

import (
	"github.com/jetsetilly/gophernes/cartridgeloader"
)

// Image describes an iNES file to be built with Bytes().
type Image struct {
	Mapper int

	// PRG data must be a multiple of 16k and CHR a multiple of 8k. A nil CHR
	// means the cartridge uses CHR RAM
	PRG []uint8
	CHR []uint8

	Vertical   bool
	FourScreen bool
	Battery    bool

	// a trainer is added to the image if this is not nil. it should be 512
	// bytes long
	Trainer []uint8

	// bytes 12 to 15 of the header. most images will leave these as zero
	Tail [4]uint8
}

// Bytes returns the image in the iNES format.
func (img Image) Bytes() []uint8 {
	hdr := []uint8{'N', 'E', 'S', 0x1a,
		uint8(len(img.PRG) / 0x4000), uint8(len(img.CHR) / 0x2000),
		uint8(img.Mapper&0x0f) << 4, uint8(img.Mapper & 0xf0),
		0, 0, 0, 0,
		img.Tail[0], img.Tail[1], img.Tail[2], img.Tail[3],
	}

	if img.Vertical {
		hdr[6] |= 0x01
	}
	if img.Battery {
		hdr[6] |= 0x02
	}
	if img.Trainer != nil {
		hdr[6] |= 0x04
	}
	if img.FourScreen {
		hdr[6] |= 0x08
	}

	d := append([]uint8{}, hdr...)
	d = append(d, img.Trainer...)
	d = append(d, img.PRG...)
	d = append(d, img.CHR...)
	return d
}

// Loader returns the image as a cartridgeloader.Loader.
func (img Image) Loader(name string) cartridgeloader.Loader {
	return cartridgeloader.NewLoaderFromData(name, img.Bytes())
}

// NumberedPRG returns PRG data of the specified number of 16k banks. Every
// byte in an 8k unit is the number of that unit. For example, the 16k bank 3
// contains the value 6 in the first half and 7 in the second half.
func NumberedPRG(banks int) []uint8 {
	return numbered(banks*0x4000, 0x2000)
}

// NumberedCHR returns CHR data of the specified number of 8k banks. Every
// byte in a 1k unit is the number of that unit.
func NumberedCHR(banks int) []uint8 {
	return numbered(banks*0x2000, 0x0400)
}

func numbered(size int, unit int) []uint8 {
	d := make([]uint8, size)
	for i := range d {
		d[i] = uint8(i / unit)
	}
	return d
}

// SetVectors sets the NMI, reset and IRQ vectors in the last bank of the PRG
// data.
func SetVectors(prg []uint8, nmi uint16, reset uint16, irq uint16) {
	v := len(prg) - 6
	prg[v] = uint8(nmi)
	prg[v+1] = uint8(nmi >> 8)
	prg[v+2] = uint8(reset)
	prg[v+3] = uint8(reset >> 8)
	prg[v+4] = uint8(irq)
	prg[v+5] = uint8(irq >> 8)
}

// NROM returns a 16k NROM image with the program placed at 0x8000 (and
// mirrored at 0xc000). All vectors point to 0x8000.
func NROM(program []uint8) Image {
	prg := make([]uint8, 0x4000)
	copy(prg, program)
	SetVectors(prg, 0x8000, 0x8000, 0x8000)
	return Image{
		PRG: prg,
		CHR: make([]uint8, 0x2000),
	}
}

// NOPLoop returns an NROM image that executes NOP instructions in an endless
// loop. The PPU and APU are never configured.
//
//	8000  NOP
//	8001  NOP
//	8002  JMP $8000
func NOPLoop() Image {
	return NROM([]uint8{0xea, 0xea, 0x4c, 0x00, 0x80})
}
