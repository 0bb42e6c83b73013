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

// Package cartridge implements loading of iNES files and the mapping of
// cartridge memory into the CPU and PPU address spaces.
//
// The main difference between NES cartridge boards is how they map additional
// PRG and CHR memory into the address space. This is called bank-switching and
// the different schemes are called mappers. All of these differences are
// handled transparently by the package.
//
// Currently supported mappers are listed below, by their iNES number.
//
//	000	NROM
//	001	MMC1 (SxROM)
//	002	UxROM
//	003	CNROM
//	004	MMC3 (TxROM) including the scanline IRQ counter
//	007	AxROM
//	066	GxROM
//
// The cartridge also owns the console's nametable memory. Mirroring of the
// nametables is decided by the mapper and so PPU accesses in the range 0x2000
// to 0x3eff are resolved by the Cartridge type.
package cartridge
