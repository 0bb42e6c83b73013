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
	"bytes"
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// Sentinal error patterns for cartridge loading.
const (
	RomLoad           = "cartridge: rom load: %v"
	UnsupportedMapper = "cartridge: unsupported mapper (%d)"
)

// the size of the units used by the iNES header
const (
	headerSize  = 16
	trainerSize = 512
	prgUnit     = 0x4000
	chrUnit     = 0x2000
	prgRAMUnit  = 0x2000
)

// the trainer is loaded into PRG RAM at this CPU address
const trainerOrigin = 0x7000

var inesMagic = []byte{'N', 'E', 'S', 0x1a}

// Header is the information parsed from the 16 byte header of an iNES file.
type Header struct {
	// number of 16k PRG ROM banks and 8k CHR ROM banks. a CHRBanks value of
	// zero means that the cartridge uses CHR RAM
	PRGBanks int
	CHRBanks int

	// the size of any PRG RAM in bytes
	PRGRAMSize int

	Mapper    int
	Mirroring mapper.Mirroring
	Battery   bool
	Trainer   bool

	// the header is in the NES 2.0 format. only the fields common to iNES are
	// used
	NES20 bool
}

func (h Header) String() string {
	s := fmt.Sprintf("mapper %d: %dk PRG, ", h.Mapper, h.PRGBanks*16)
	if h.CHRBanks == 0 {
		s = fmt.Sprintf("%s8k CHR RAM, %s", s, h.Mirroring)
	} else {
		s = fmt.Sprintf("%s%dk CHR, %s", s, h.CHRBanks*8, h.Mirroring)
	}
	if h.Battery {
		s = fmt.Sprintf("%s, battery", s)
	}
	return s
}

// image is the parsed content of an iNES file
type image struct {
	header  Header
	trainer []uint8
	prg     []uint8
	chr     []uint8
}

// parseINES splits iNES data into its constituent parts.
func parseINES(data []uint8) (image, error) {
	var img image

	if len(data) < headerSize {
		return img, curated.Errorf(RomLoad, "file too short for header")
	}
	if !bytes.Equal(data[:4], inesMagic) {
		return img, curated.Errorf(RomLoad, "not an iNES file")
	}

	flags6 := data[6]
	flags7 := data[7]

	img.header.PRGBanks = int(data[4])
	img.header.CHRBanks = int(data[5])
	img.header.Battery = flags6&0x02 == 0x02
	img.header.Trainer = flags6&0x04 == 0x04
	img.header.NES20 = flags7&0x0c == 0x08

	if img.header.PRGBanks == 0 {
		return img, curated.Errorf(RomLoad, "no PRG ROM")
	}

	switch {
	case flags6&0x08 == 0x08:
		img.header.Mirroring = mapper.FourScreen
	case flags6&0x01 == 0x01:
		img.header.Mirroring = mapper.Vertical
	default:
		img.header.Mirroring = mapper.Horizontal
	}

	// old dumps sometimes have garbage ("DiskDude!") in the tail of the
	// header. when that happens the upper nibble of the mapper number can't be
	// trusted
	img.header.Mapper = int(flags6 >> 4)
	if img.header.NES20 || bytes.Equal(data[12:16], []byte{0, 0, 0, 0}) {
		img.header.Mapper |= int(flags7 & 0xf0)
	}

	img.header.PRGRAMSize = prgRAMUnit
	if !img.header.NES20 && data[8] > 0 {
		img.header.PRGRAMSize = int(data[8]) * prgRAMUnit
	}

	data = data[headerSize:]

	if img.header.Trainer {
		if len(data) < trainerSize {
			return img, curated.Errorf(RomLoad, "truncated trainer")
		}
		img.trainer = data[:trainerSize]
		data = data[trainerSize:]
	}

	prgSize := img.header.PRGBanks * prgUnit
	if len(data) < prgSize {
		return img, curated.Errorf(RomLoad, fmt.Sprintf("truncated PRG ROM (%d of %d bytes)", len(data), prgSize))
	}
	img.prg = data[:prgSize]
	data = data[prgSize:]

	chrSize := img.header.CHRBanks * chrUnit
	if len(data) < chrSize {
		return img, curated.Errorf(RomLoad, fmt.Sprintf("truncated CHR ROM (%d of %d bytes)", len(data), chrSize))
	}
	img.chr = data[:chrSize]

	return img, nil
}
