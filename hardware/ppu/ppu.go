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

package ppu

import (
	"fmt"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
)

// Dimensions of the visible frame.
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// Dots and scanlines.
const (
	DotsPerScanline    = 341
	ScanlinesNTSC      = 262
	ScanlinesPAL       = 312
	VBlankScanline     = 241
	PostRenderScanline = 240
)

// Bus is the PPU's view of the cartridge. Addresses in the range 0x0000 to
// 0x3eff are resolved by the cartridge.
type Bus interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, data uint8)
	PPUAddressChanged(addr uint16)
}

// the palette RAM at power on
var powerOnPalette = [32]uint8{
	0x09, 0x01, 0x00, 0x01, 0x00, 0x02, 0x02, 0x0d, 0x08, 0x10, 0x08, 0x24, 0x00, 0x00, 0x04, 0x2c,
	0x09, 0x01, 0x34, 0x03, 0x00, 0x04, 0x00, 0x14, 0x08, 0x3a, 0x00, 0x02, 0x00, 0x20, 0x2c, 0x08,
}

// PPU implements the 2C02 picture processing unit.
type PPU struct {
	env *environment.Environment
	mem Bus

	// the PPU timing differs for PAL consoles
	pal       bool
	scanlines int

	// current position. the dot is the next dot to be processed
	Scanline int
	Dot      int
	Frame    int
	oddFrame bool

	// set when the pre-render scanline has completed. cleared on the call to
	// FrameComplete()
	frameComplete bool

	// the output of the PPU
	frame   []uint16
	Palette *palette.Palette

	// registers
	ctrl   uint8
	mask   uint8
	status uint8

	// the loopy registers. v is the current VRAM address and t is the
	// temporary VRAM address. x is the fine x scroll and w is the write toggle
	v uint16
	t uint16
	x uint8
	w bool

	// data bus latch. reads of write-only registers return this value
	latch uint8

	// buffered PPUDATA read
	readBuffer uint8

	// a read of PPUSTATUS on the dot before the vblank flag is set causes the
	// flag not to be set for that frame
	suppressVBlank bool

	paletteRAM [32]uint8

	oam     [256]uint8
	oamAddr uint8

	bg      background
	sprites sprites
}

// NewPPU is the preferred method of initialisation for the PPU type.
func NewPPU(env *environment.Environment, mem Bus) *PPU {
	ppu := &PPU{
		env:     env,
		mem:     mem,
		frame:   make([]uint16, FrameWidth*FrameHeight),
		Palette: palette.NewPalette(),
	}
	ppu.paletteRAM = powerOnPalette
	if env != nil && env.Prefs.RandomState.Get().(bool) {
		env.Random.Fill(ppu.oam[:])
	}
	ppu.Reset()
	return ppu
}

// Plumb a new bus into the PPU.
func (ppu *PPU) Plumb(mem Bus) {
	ppu.mem = mem
}

func (ppu *PPU) String() string {
	return fmt.Sprintf("fr=%d sl=%03d dt=%03d v=%#04x t=%#04x x=%d w=%v", ppu.Frame, ppu.Scanline, ppu.Dot, ppu.v, ppu.t, ppu.x, ppu.w)
}

// Reset the PPU to its post-reset state. The contents of OAM and palette RAM
// are unchanged.
func (ppu *PPU) Reset() {
	ppu.pal = ppu.env != nil && ppu.env.Prefs.IsPAL()
	if ppu.pal {
		ppu.scanlines = ScanlinesPAL
	} else {
		ppu.scanlines = ScanlinesNTSC
	}

	ppu.ctrl = 0
	ppu.mask = 0
	ppu.status = 0
	ppu.v = 0
	ppu.t = 0
	ppu.x = 0
	ppu.w = false
	ppu.latch = 0
	ppu.readBuffer = 0
	ppu.oamAddr = 0
	ppu.suppressVBlank = false

	ppu.Scanline = 0
	ppu.Dot = 0
	ppu.Frame = 0
	ppu.oddFrame = false
	ppu.frameComplete = false

	ppu.bg = background{}
	ppu.sprites.reset()
}

// IsPAL returns true if the PPU is using PAL timing.
func (ppu *PPU) IsPAL() bool {
	return ppu.pal
}

// Scanlines returns the number of scanlines in a frame.
func (ppu *PPU) Scanlines() int {
	return ppu.scanlines
}

// NMI returns the state of the NMI output. The CPU detects the rising edge of
// this line.
func (ppu *PPU) NMI() bool {
	return ppu.ctrl&ctrlNMI == ctrlNMI && ppu.status&statusVBlank == statusVBlank
}

// FrameComplete returns true once per frame, on the first call after the
// pre-render scanline has completed.
func (ppu *PPU) FrameComplete() bool {
	c := ppu.frameComplete
	ppu.frameComplete = false
	return c
}

// Framebuffer returns the frame of pixel values. The slice is the PPU's own
// buffer and so will change as the PPU continues to run. Each value is a
// palette index in bits 0 to 5 with the emphasis bits in bits 6 to 8.
func (ppu *PPU) Framebuffer() []uint16 {
	return ppu.frame
}

func (ppu *PPU) renderingEnabled() bool {
	return ppu.mask&(maskShowBackground|maskShowSprites) != 0x00
}

func (ppu *PPU) preRenderScanline() int {
	return ppu.scanlines - 1
}

// read from the PPU bus. the cartridge sees the address change
func (ppu *PPU) read(addr uint16) uint8 {
	ppu.mem.PPUAddressChanged(addr)
	return ppu.mem.PPURead(addr)
}

// Step moves the state of the PPU forward one dot.
func (ppu *PPU) Step() {
	pre := ppu.Scanline == ppu.preRenderScanline()
	visible := ppu.Scanline < PostRenderScanline
	rendering := ppu.renderingEnabled()

	switch {
	case ppu.Scanline == VBlankScanline && ppu.Dot == 1:
		if !ppu.suppressVBlank {
			ppu.status |= statusVBlank
		}
		ppu.suppressVBlank = false
	case pre && ppu.Dot == 1:
		ppu.status &^= statusVBlank | statusSpriteZero | statusOverflow
	}

	if rendering && (visible || pre) {
		ppu.renderLine(pre)
	}

	if visible && ppu.Dot >= 1 && ppu.Dot <= FrameWidth {
		ppu.renderPixel(rendering)
	}

	ppu.advance(pre, rendering)
}

// move to the next dot, skipping dot 340 of the pre-render scanline on odd
// NTSC frames when rendering is enabled
func (ppu *PPU) advance(pre bool, rendering bool) {
	ppu.Dot++

	if pre && ppu.Dot == DotsPerScanline-1 && ppu.oddFrame && rendering && !ppu.pal {
		ppu.Dot = DotsPerScanline
	}

	if ppu.Dot < DotsPerScanline {
		return
	}

	ppu.Dot = 0
	ppu.Scanline++

	if ppu.Scanline >= ppu.scanlines {
		ppu.Scanline = 0
		ppu.Frame++
		ppu.oddFrame = !ppu.oddFrame
		ppu.frameComplete = true
	}
}

// the work done for a dot on a render line (visible or pre-render) when
// rendering is enabled
func (ppu *PPU) renderLine(pre bool) {
	dot := ppu.Dot

	if (dot >= 1 && dot <= 257) || (dot >= 321 && dot <= 337) {
		if dot != 1 && dot != 321 {
			ppu.bg.shift()
		}
		ppu.fetchBackground(dot)
	}

	switch {
	case dot == 256:
		ppu.incrementY()
	case dot == 257:
		ppu.copyX()
		if pre {
			ppu.sprites.clear()
		} else {
			ppu.evaluateSprites()
		}
	case dot == 339:
		// unused nametable fetch. seen by the cartridge
		ppu.read(0x2000 | ppu.v&0x0fff)
	}

	if dot >= 257 && dot <= 320 {
		ppu.oamAddr = 0
		ppu.fetchSprites(dot)
		if pre && dot >= 280 && dot <= 304 {
			ppu.copyY()
		}
	}
}

// the colour index of the backdrop. when rendering is disabled and v points
// into palette RAM then the colour at v is displayed instead
func (ppu *PPU) backdrop(rendering bool) uint8 {
	if !rendering && ppu.v&0x3f00 == 0x3f00 {
		return ppu.readPalette(ppu.v)
	}
	return ppu.readPalette(0)
}

// output the pixel for the current dot
func (ppu *PPU) renderPixel(rendering bool) {
	x := ppu.Dot - 1

	var colour uint8

	if !rendering {
		colour = ppu.backdrop(false)
	} else {
		var bgPx, bgPal uint8
		if ppu.mask&maskShowBackground == maskShowBackground && (x >= 8 || ppu.mask&maskBackgroundLeft == maskBackgroundLeft) {
			bgPx, bgPal = ppu.bg.pixel(ppu.x)
		}

		var sp spritePixel
		if ppu.mask&maskShowSprites == maskShowSprites && (x >= 8 || ppu.mask&maskSpritesLeft == maskSpritesLeft) {
			sp = ppu.sprites.pixel(x)
		}

		if bgPx != 0 && sp.px != 0 && sp.zero && x != 255 {
			ppu.status |= statusSpriteZero
		}

		switch {
		case bgPx == 0 && sp.px == 0:
			colour = ppu.backdrop(true)
		case bgPx == 0 || (sp.px != 0 && !sp.behind):
			colour = ppu.readPalette(0x10 | uint16(sp.pal)<<2 | uint16(sp.px))
		default:
			colour = ppu.readPalette(uint16(bgPal)<<2 | uint16(bgPx))
		}
	}

	if ppu.mask&maskGreyscale == maskGreyscale {
		colour &= 0x30
	}

	ppu.frame[ppu.Scanline*FrameWidth+x] = uint16(colour&0x3f) | uint16(ppu.mask&maskEmphasis)<<1
}
