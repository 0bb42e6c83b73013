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

// Package pngwriter saves the most recent frame of the emulation as a PNG
// image. The PNGWriter type implements the output.VideoRenderer interface and
// writes the image to disk when EndRendering() is called.
package pngwriter

import (
	"image/png"
	"os"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
	"github.com/jetsetilly/gophernes/logger"
)

// PNGWriter implements the output.VideoRenderer interface.
type PNGWriter struct {
	filename string
	frame    []uint16
	palette  *palette.Palette
}

// New is the preferred method of initialisation for the PNGWriter type.
func New(filename string) *PNGWriter {
	return &PNGWriter{
		filename: filename,
	}
}

// NewFrame implements the output.VideoRenderer interface.
func (pw *PNGWriter) NewFrame(frame []uint16, palette *palette.Palette) error {
	pw.frame = append(pw.frame[:0], frame...)
	pw.palette = palette
	return nil
}

// EndRendering implements the output.VideoRenderer interface.
func (pw *PNGWriter) EndRendering() (rerr error) {
	if len(pw.frame) == 0 {
		logger.Logf(logger.Allow, "pngwriter", "no frame to save")
		return nil
	}

	p := pw.palette
	if p == nil {
		p = palette.NewPalette()
	}
	img := p.Image(pw.frame, ppu.FrameWidth)

	f, err := os.Create(pw.filename)
	if err != nil {
		return curated.Errorf("pngwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("pngwriter: %v", err)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return curated.Errorf("pngwriter: %v", err)
	}

	logger.Logf(logger.Allow, "pngwriter", "saved: %s", pw.filename)

	return nil
}
