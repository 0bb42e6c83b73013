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

// Package gui is the root of the windowed front ends. The sub-packages
// implement the output.VideoRenderer and output.AudioMixer interfaces and
// forward user input to the emulation through the userinput package.
//
// Functions in this package are shared by all front ends.
package gui

import (
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
)

// PixelDepth is the number of bytes per pixel in an RGBA buffer.
const PixelDepth = 4

// Width and Height of the display in pixels.
const (
	Width  = ppu.FrameWidth
	Height = ppu.FrameHeight
)

// NewPixels returns an RGBA buffer large enough for a single frame. The alpha
// channel is preset to opaque.
func NewPixels() []byte {
	pixels := make([]byte, Width*Height*PixelDepth)
	for i := PixelDepth - 1; i < len(pixels); i += PixelDepth {
		pixels[i] = 255
	}
	return pixels
}

// Pixels converts the frame of PPU values to RGBA using the palette. The
// pixels slice should have been created with NewPixels(). The alpha channel
// is not touched.
func Pixels(frame []uint16, p *palette.Palette, pixels []byte) {
	for i, px := range frame {
		o := i * PixelDepth
		if o+PixelDepth > len(pixels) {
			return
		}
		c := p.Color(px)
		pixels[o] = c.R
		pixels[o+1] = c.G
		pixels[o+2] = c.B
	}
}

// Scale returns the window size for the scaling value. A scale of less than
// one is treated as one.
func Scale(scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	return Width * scale, Height * scale
}
