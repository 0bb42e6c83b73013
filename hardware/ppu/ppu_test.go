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

package ppu_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/test"
)

// flat memory with no nametable mirroring
type mockBus struct {
	mem      [0x4000]uint8
	lastAddr uint16
}

func (m *mockBus) PPURead(addr uint16) uint8 {
	return m.mem[addr&0x3fff]
}

func (m *mockBus) PPUWrite(addr uint16, data uint8) {
	m.mem[addr&0x3fff] = data
}

func (m *mockBus) PPUAddressChanged(addr uint16) {
	m.lastAddr = addr
}

func newPPU(t *testing.T) (*ppu.PPU, *mockBus) {
	t.Helper()
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true
	mem := &mockBus{}
	return ppu.NewPPU(env, mem), mem
}

// step until the PPU is about to process the dot
func stepUntil(p *ppu.PPU, scanline int, dot int) {
	for p.Scanline != scanline || p.Dot != dot {
		p.Step()
	}
}

func setAddr(p *ppu.PPU, addr uint16) {
	p.WriteRegister(0x2006, uint8(addr>>8))
	p.WriteRegister(0x2006, uint8(addr))
}

func TestVBlank(t *testing.T) {
	p, _ := newPPU(t)

	stepUntil(p, ppu.VBlankScanline, 1)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x80, 0x00)

	// the read on the dot before the flag is set suppresses the flag
	p.Step()
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x80, 0x00)

	// next frame
	stepUntil(p, 0, 0)
	stepUntil(p, ppu.VBlankScanline, 2)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x80, 0x80)

	// reading status clears the flag
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x80, 0x00)
}

func TestNMI(t *testing.T) {
	p, _ := newPPU(t)

	stepUntil(p, ppu.VBlankScanline, 2)
	test.ExpectFailure(t, p.NMI())

	// enabling NMI during vblank raises the line immediately
	p.WriteRegister(0x2000, 0x80)
	test.ExpectSuccess(t, p.NMI())

	// the flag is cleared at the start of the pre-render scanline
	stepUntil(p, p.Scanlines()-1, 2)
	test.ExpectFailure(t, p.NMI())
}

func TestFrameComplete(t *testing.T) {
	p, _ := newPPU(t)

	var count int
	for i := 0; i < ppu.ScanlinesNTSC*ppu.DotsPerScanline*3; i++ {
		p.Step()
		if p.FrameComplete() {
			count++
		}
	}
	test.ExpectEquality(t, count, 3)
	test.ExpectEquality(t, p.Frame, 3)
}

func TestOddFrame(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(0x2001, 0x08)

	frameLength := func() int {
		var n int
		for {
			p.Step()
			n++
			if p.FrameComplete() {
				return n
			}
		}
	}

	// the first frame is even
	test.ExpectEquality(t, frameLength(), ppu.ScanlinesNTSC*ppu.DotsPerScanline)
	test.ExpectEquality(t, frameLength(), ppu.ScanlinesNTSC*ppu.DotsPerScanline-1)
	test.ExpectEquality(t, frameLength(), ppu.ScanlinesNTSC*ppu.DotsPerScanline)
}

func TestPAL(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, env.Prefs.Region.Set("PAL"))
	p := ppu.NewPPU(env, &mockBus{})
	test.ExpectSuccess(t, p.IsPAL())
	test.ExpectEquality(t, p.Scanlines(), ppu.ScanlinesPAL)
}

func TestWriteToggle(t *testing.T) {
	p, _ := newPPU(t)

	// first write of PPUADDR followed by a read of PPUSTATUS. the second
	// write is treated as a first write
	p.WriteRegister(0x2006, 0x3f)
	_ = p.ReadRegister(0x2002)
	setAddr(p, 0x2105)
	p.WriteRegister(0x2007, 0xaa)

	setAddr(p, 0x2105)
	_ = p.ReadRegister(0x2007)
	test.ExpectEquality(t, p.ReadRegister(0x2007), 0xaa)
}

func TestBufferedRead(t *testing.T) {
	p, mem := newPPU(t)
	mem.mem[0x2000] = 0x11
	mem.mem[0x2001] = 0x22

	setAddr(p, 0x2000)

	// the first read is the stale buffer
	test.ExpectEquality(t, p.ReadRegister(0x2007), 0x00)
	test.ExpectEquality(t, p.ReadRegister(0x2007), 0x11)
	test.ExpectEquality(t, p.ReadRegister(0x2007), 0x22)

	// increment of 32
	mem.mem[0x2040] = 0x33
	p.WriteRegister(0x2000, 0x04)
	setAddr(p, 0x2020)
	_ = p.ReadRegister(0x2007)
	_ = p.ReadRegister(0x2007)
	test.ExpectEquality(t, p.ReadRegister(0x2007), 0x33)

	// the cartridge sees the address
	test.ExpectEquality(t, mem.lastAddr, 0x2060)
}

func TestPalette(t *testing.T) {
	p, mem := newPPU(t)

	// palette reads are not buffered
	setAddr(p, 0x3f10)
	p.WriteRegister(0x2007, 0x2a)
	setAddr(p, 0x3f00)
	test.ExpectEquality(t, p.ReadRegister(0x2007), 0x2a)

	// 0x3f01 is not mirrored by 0x3f11
	setAddr(p, 0x3f11)
	p.WriteRegister(0x2007, 0x15)
	setAddr(p, 0x3f01)
	test.ExpectInequality(t, p.ReadRegister(0x2007), 0x15)

	// palette data is six bits
	setAddr(p, 0x3f01)
	p.WriteRegister(0x2007, 0xff)
	setAddr(p, 0x3f01)
	test.ExpectEquality(t, p.ReadRegister(0x2007)&0x3f, 0x3f)

	// palette writes do not reach the cartridge
	test.ExpectEquality(t, mem.mem[0x3f01], 0x00)
}

func TestOAM(t *testing.T) {
	p, _ := newPPU(t)

	p.WriteRegister(0x2003, 0x00)
	for _, v := range []uint8{0x10, 0x20, 0xff, 0x30} {
		p.WriteRegister(0x2004, v)
	}

	p.WriteRegister(0x2003, 0x00)
	test.ExpectEquality(t, p.ReadRegister(0x2004), 0x10)

	// unimplemented bits of the attribute byte
	p.WriteRegister(0x2003, 0x02)
	test.ExpectEquality(t, p.ReadRegister(0x2004), 0xe3)
}

func TestRenderingDisabled(t *testing.T) {
	p, _ := newPPU(t)

	for !p.FrameComplete() {
		p.Step()
	}

	fb := p.Framebuffer()
	test.DemandEquality(t, len(fb), ppu.FrameWidth*ppu.FrameHeight)
	for i, px := range fb {
		if !test.ExpectEquality(t, px, 0x09, i) {
			break
		}
	}
}

func TestEmphasis(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(0x2001, 0xe1)

	for !p.FrameComplete() {
		p.Step()
	}

	// greyscale is applied to the palette value
	test.ExpectEquality(t, p.Framebuffer()[0], 0x1c0)
}

// fill pattern 0 with solid colour 3
func solidTile(mem *mockBus) {
	for i := 0; i < 16; i++ {
		mem.mem[i] = 0xff
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p, mem := newPPU(t)
	solidTile(mem)

	p.WriteRegister(0x2003, 0x00)
	for _, v := range []uint8{10, 0x00, 0x00, 20} {
		p.WriteRegister(0x2004, v)
	}

	// hide the remaining sprites
	for i := 4; i < 256; i++ {
		p.WriteRegister(0x2004, 0xff)
	}

	stepUntil(p, 0, 0)
	p.WriteRegister(0x2001, 0x1e)

	stepUntil(p, 11, 0)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x40, 0x00)
	stepUntil(p, 12, 0)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x40, 0x40)

	// no hit if sprites are disabled
	p.WriteRegister(0x2001, 0x0e)
	stepUntil(p, 0, 0)
	stepUntil(p, 100, 0)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x40, 0x00)
}

func TestSpriteOverflow(t *testing.T) {
	p, mem := newPPU(t)
	solidTile(mem)

	p.WriteRegister(0x2003, 0x00)
	for i := 0; i < 64; i++ {
		y := uint8(0xff)
		if i < 9 {
			y = 50
		}
		for _, v := range []uint8{y, 0x00, 0x00, uint8(i * 8)} {
			p.WriteRegister(0x2004, v)
		}
	}

	p.WriteRegister(0x2001, 0x18)

	stepUntil(p, 49, 0)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x20, 0x00)
	stepUntil(p, 51, 0)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x20, 0x20)

	// cleared on the pre-render scanline
	stepUntil(p, p.Scanlines()-1, 2)
	test.ExpectEquality(t, p.ReadRegister(0x2002)&0x20, 0x00)
}

func TestSpriteLimit(t *testing.T) {
	p, mem := newPPU(t)
	solidTile(mem)

	p.WriteRegister(0x2003, 0x00)
	for i := 0; i < 64; i++ {
		y := uint8(0xff)
		if i < 10 {
			y = 50
		}
		for _, v := range []uint8{y, 0x00, 0x01, uint8(i * 8)} {
			p.WriteRegister(0x2004, v)
		}
	}

	// sprite palette 1 colour 3 is distinct from the backdrop
	setAddr(p, 0x3f17)
	p.WriteRegister(0x2007, 0x16)

	p.WriteRegister(0x2001, 0x14)
	stepUntil(p, 52, 0)

	// the ninth sprite starts at x of 64
	fb := p.Framebuffer()
	test.ExpectEquality(t, fb[51*ppu.FrameWidth+60], 0x16)
	test.ExpectEquality(t, fb[51*ppu.FrameWidth+66], 0x09)
}
