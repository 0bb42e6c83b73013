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

package gui_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/gui"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
	"github.com/jetsetilly/gophernes/test"
)

func TestPixels(t *testing.T) {
	pixels := gui.NewPixels()
	test.DemandEquality(t, len(pixels), gui.Width*gui.Height*gui.PixelDepth)
	test.ExpectEquality(t, pixels[3], 255)

	p := palette.NewPalette()
	frame := make([]uint16, gui.Width*gui.Height)
	frame[1] = 0x21
	gui.Pixels(frame, p, pixels)

	c := p.Color(0x21)
	test.ExpectEquality(t, pixels[4], c.R)
	test.ExpectEquality(t, pixels[5], c.G)
	test.ExpectEquality(t, pixels[6], c.B)
	test.ExpectEquality(t, pixels[7], 255)
}

func TestScale(t *testing.T) {
	w, h := gui.Scale(3)
	test.ExpectEquality(t, w, 768)
	test.ExpectEquality(t, h, 720)
	w, h = gui.Scale(0)
	test.ExpectEquality(t, w, 256)
	test.ExpectEquality(t, h, 240)
}
