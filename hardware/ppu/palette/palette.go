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

package palette

import (
	"fmt"
	"image"
	"image/color"
)

// NumColors is the number of distinct colours the PPU can generate, before
// colour emphasis.
const NumColors = 64

// NumEntries is the number of entries in a Palette, including the
// combinations of the three emphasis bits.
const NumEntries = NumColors * 8

// Emphasis bits as they appear in a pixel value.
const (
	EmphasisRed   = 0x040
	EmphasisGreen = 0x080
	EmphasisBlue  = 0x100
)

// the amount by which the channels that are not emphasised are reduced
const attenuation = 0.816328

// Palette maps pixel values from the PPU framebuffer to RGBA colours. The
// pixel value is a colour index in bits 0 to 5 and the emphasis bits in bits 6
// to 8.
type Palette struct {
	entries [NumEntries]color.RGBA
}

// the palette generated by the 2C02 PPU as measured on real hardware
var ntsc = [NumColors]uint32{
	0x666666, 0x002a88, 0x1412a7, 0x3b00a4, 0x5c007e, 0x6e0040, 0x6c0600, 0x561d00,
	0x333500, 0x0b4800, 0x005200, 0x004f08, 0x00404d, 0x000000, 0x000000, 0x000000,
	0xadadad, 0x155fd9, 0x4240ff, 0x7527fe, 0xa01acc, 0xb71e7b, 0xb53120, 0x994e00,
	0x6b6d00, 0x388700, 0x0c9300, 0x008f32, 0x007c8d, 0x000000, 0x000000, 0x000000,
	0xfffeff, 0x64b0ff, 0x9290ff, 0xc676ff, 0xf36aff, 0xfe6ecc, 0xfe8170, 0xea9e22,
	0xbcbe00, 0x88d800, 0x5ce430, 0x45e082, 0x48cdde, 0x4f4f4f, 0x000000, 0x000000,
	0xfffeff, 0xc0dfff, 0xd3d2ff, 0xe8c8ff, 0xfbc2ff, 0xfec4ea, 0xfeccc5, 0xf7d8a5,
	0xe4e594, 0xcfef96, 0xbdf4ab, 0xb3f3cc, 0xb5ebf2, 0xb8b8b8, 0x000000, 0x000000,
}

// NewPalette returns the default NTSC palette.
func NewPalette() *Palette {
	var c [NumColors]color.RGBA
	for i, v := range ntsc {
		c[i] = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	}
	return newPalette(c)
}

// LoadPalette creates a palette from the contents of a .pal file. The file
// contains RGB triplets for each of the 64 colours. Files with 512 entries,
// which specify the emphasised colours explicitly, are also accepted.
func LoadPalette(data []uint8) (*Palette, error) {
	switch len(data) {
	case NumColors * 3:
		var c [NumColors]color.RGBA
		for i := range c {
			c[i] = color.RGBA{R: data[i*3], G: data[i*3+1], B: data[i*3+2], A: 0xff}
		}
		return newPalette(c), nil
	case NumEntries * 3:
		p := &Palette{}
		for i := range p.entries {
			p.entries[i] = color.RGBA{R: data[i*3], G: data[i*3+1], B: data[i*3+2], A: 0xff}
		}
		return p, nil
	}
	return nil, fmt.Errorf("palette: unexpected file size (%d bytes)", len(data))
}

func newPalette(c [NumColors]color.RGBA) *Palette {
	p := &Palette{}
	for e := 0; e < 8; e++ {
		for i := range c {
			p.entries[e*NumColors+i] = emphasise(c[i], e)
		}
	}
	return p
}

// emphasis reduces the channels that are not emphasised. when all three
// channels are emphasised then every channel is reduced
func emphasise(c color.RGBA, e int) color.RGBA {
	if e == 0 {
		return c
	}

	atten := func(v uint8) uint8 {
		return uint8(float64(v) * attenuation)
	}

	all := e == 0x07
	if e&0x01 == 0 || all {
		c.R = atten(c.R)
	}
	if e&0x02 == 0 || all {
		c.G = atten(c.G)
	}
	if e&0x04 == 0 || all {
		c.B = atten(c.B)
	}

	return c
}

// Color returns the colour for the pixel value.
func (p *Palette) Color(pixel uint16) color.RGBA {
	return p.entries[pixel%NumEntries]
}

// Image converts a frame of pixel values into an RGBA image of the specified
// width.
func (p *Palette) Image(frame []uint16, width int) *image.RGBA {
	height := len(frame) / width
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, px := range frame {
		c := p.Color(px)
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}
