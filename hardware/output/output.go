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

package output

import (
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
)

// VideoRenderer implementations display, or otherwise work with, the frames
// produced by the PPU. For example digest.Video.
type VideoRenderer interface {
	// NewFrame is called once per frame with the completed framebuffer. The
	// frame slice belongs to the emulation and will change once NewFrame()
	// returns. Renderers that work with the frame from another goroutine must
	// take a copy.
	//
	// Values in the frame are palette indexes with the emphasis bits in bits
	// 6 to 8. Use the palette argument to convert values to RGB.
	NewFrame(frame []uint16, palette *palette.Palette) error

	// some renderers may need to conclude and/or dispose of resources gently.
	// for simplicity, the VideoRenderer should be considered unusable after
	// EndRendering() has been called
	EndRendering() error
}

// AudioSpec describes the format of the samples sent to an AudioMixer.
type AudioSpec struct {
	// samples per second. a rate of zero means no samples are produced
	Rate int

	// either 8 or 16. 8 bit samples are in the range -128 to 127 but are
	// still sent as int16 values
	Bits int
}

// AudioMixer implementations work with sound; most probably playing it. An
// example of an AudioMixer that does not play sound but otherwise works with
// it is the digest.Audio type.
type AudioMixer interface {
	// SetAudio is called once per frame with the samples produced during the
	// frame. The slice belongs to the emulation.
	SetAudio(samples []int16) error

	// some mixers may need to conclude and/or dispose of resources gently.
	// for simplicity, the AudioMixer should be considered unusable after
	// EndMixing() has been called
	EndMixing() error
}

// InputSource implementations set the state of the controllers. Tick() is
// called once per frame before the frame is run.
type InputSource interface {
	Tick(frame int, pads *controller.Pads) error
}

// BatteryStore implementations save and restore the battery backed RAM of a
// cartridge. The name is the short name of the cartridge.
type BatteryStore interface {
	LoadBattery(name string) ([]byte, error)
	SaveBattery(name string, data []byte) error
}
