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

package apu

// the value loaded into the length counter is selected by bits 3 to 7 of the
// fourth register of a channel
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// lengthCounter silences a channel once it reaches zero. it is clocked by
// the half frame signal from the frame sequencer.
type lengthCounter struct {
	enabled bool
	halt    bool
	value   uint8
}

func (lc *lengthCounter) load(idx uint8) {
	if lc.enabled {
		lc.value = lengthTable[idx&0x1f]
	}
}

func (lc *lengthCounter) setEnabled(enabled bool) {
	lc.enabled = enabled
	if !enabled {
		lc.value = 0
	}
}

func (lc *lengthCounter) clock() {
	if !lc.halt && lc.value > 0 {
		lc.value--
	}
}

func (lc *lengthCounter) active() bool {
	return lc.value > 0
}

// envelope generates the volume of the pulse and noise channels. it is
// clocked by the quarter frame signal from the frame sequencer.
type envelope struct {
	start    bool
	loop     bool
	constant bool

	// the constant volume or the divider period
	volume uint8

	divider uint8
	decay   uint8
}

func (env *envelope) write(data uint8) {
	env.loop = data&0x20 == 0x20
	env.constant = data&0x10 == 0x10
	env.volume = data & 0x0f
}

func (env *envelope) clock() {
	if env.start {
		env.start = false
		env.decay = 15
		env.divider = env.volume
		return
	}

	if env.divider > 0 {
		env.divider--
		return
	}

	env.divider = env.volume
	if env.decay > 0 {
		env.decay--
	} else if env.loop {
		env.decay = 15
	}
}

func (env *envelope) output() uint8 {
	if env.constant {
		return env.volume
	}
	return env.decay
}
