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

// the CPU cycle of each step of the frame sequencer. the first three steps
// are the same in both modes. 4-step mode raises the frame interrupt on the
// last three steps. the final value is the length of the sequence
type frameSteps [6]int

var (
	framesNTSC4 = frameSteps{7457, 14913, 22371, 29828, 29829, 29830}
	framesNTSC5 = frameSteps{7457, 14913, 22371, 29829, 37281, 37282}
	framesPAL4  = frameSteps{8313, 16627, 24939, 33252, 33253, 33254}
	framesPAL5  = frameSteps{8313, 16627, 24939, 33253, 41565, 41566}
)

type frameSequencer struct {
	fiveStep bool
	inhibit  bool
	irq      bool

	steps *frameSteps
	cycle int

	// a write to the frame counter register takes effect after a short delay
	pending      bool
	pendingValue uint8
	pendingDelay int
}

// the frame sequencer signal for a CPU cycle. the half frame signal is
// always accompanied by the quarter frame signal
type frameSignal int

const (
	frameNone frameSignal = iota
	frameQuarter
	frameHalf
)

// write to the frame counter register. the delay is three or four cycles
// depending on the parity of the CPU cycle
func (fs *frameSequencer) write(data uint8, oddCycle bool) {
	fs.inhibit = data&0x40 == 0x40
	if fs.inhibit {
		fs.irq = false
	}

	fs.pending = true
	fs.pendingValue = data
	if oddCycle {
		fs.pendingDelay = 4
	} else {
		fs.pendingDelay = 3
	}
}

// advance the sequencer by one CPU cycle
func (fs *frameSequencer) step(pal bool) frameSignal {
	if fs.pending {
		fs.pendingDelay--
		if fs.pendingDelay == 0 {
			fs.pending = false
			fs.setMode(fs.pendingValue&0x80 == 0x80, pal)
			fs.cycle = 0

			// entering 5-step mode immediately clocks the units
			if fs.fiveStep {
				return frameHalf
			}
			return frameNone
		}
	}

	fs.cycle++

	s := fs.steps
	switch fs.cycle {
	case s[0], s[2]:
		return frameQuarter
	case s[1]:
		return frameHalf
	case s[3]:
		fs.raise()
	case s[4]:
		fs.raise()
		return frameHalf
	case s[5]:
		fs.raise()
		fs.cycle = 0
	}

	return frameNone
}

// the frame interrupt is only raised in 4-step mode
func (fs *frameSequencer) raise() {
	if !fs.fiveStep && !fs.inhibit {
		fs.irq = true
	}
}

func (fs *frameSequencer) setMode(fiveStep bool, pal bool) {
	fs.fiveStep = fiveStep
	switch {
	case pal && fiveStep:
		fs.steps = &framesPAL5
	case pal:
		fs.steps = &framesPAL4
	case fiveStep:
		fs.steps = &framesNTSC5
	default:
		fs.steps = &framesNTSC4
	}
}
