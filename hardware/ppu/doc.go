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

// Package ppu emulates the 2C02 picture processing unit of the NES. The PPU
// is stepped one dot at a time by the NES type. For NTSC consoles there are
// three dots for every CPU cycle and for PAL consoles there are sixteen dots
// for every five CPU cycles.
//
// A frame is made up of 262 scanlines (312 for PAL) of 341 dots. Scanlines 0
// to 239 are visible and each visible dot results in a single pixel being
// written to the framebuffer. Scanline 241 is the start of the vertical blank
// and the last scanline of the frame is the pre-render scanline, during which
// the PPU prepares for the first visible scanline of the next frame.
//
// The PPU sees the cartridge through the Bus interface. Nametable memory
// (CIRAM) is part of the cartridge, because the mirroring of the nametables
// is decided by the cartridge mapper. Every read made by the rendering
// pipeline and every write to PPUADDR is seen by the cartridge through the
// PPUAddressChanged() function. Mappers like the MMC3 use this to monitor
// the A12 address line.
//
// Pixels in the framebuffer are not colours. They are the palette index in
// bits 0 to 5 and the PPUMASK emphasis bits in bits 6 to 8. The palette
// package converts these values to RGB.
package ppu
