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

var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

type triangle struct {
	length lengthCounter

	// the control flag is also the length counter halt flag
	control      bool
	linearReload uint8
	linear       uint8
	reloadFlag   bool

	// the timer is clocked every CPU cycle
	period uint16
	timer  uint16
	seqPos uint8
}

func (tr *triangle) write(reg uint16, data uint8) {
	switch reg {
	case 0:
		tr.control = data&0x80 == 0x80
		tr.length.halt = tr.control
		tr.linearReload = data & 0x7f
	case 2:
		tr.period = tr.period&0x0700 | uint16(data)
	case 3:
		tr.period = tr.period&0x00ff | uint16(data&0x07)<<8
		tr.length.load(data >> 3)
		tr.reloadFlag = true
	}
}

func (tr *triangle) clockTimer() {
	if tr.timer == 0 {
		tr.timer = tr.period
		if tr.length.active() && tr.linear > 0 {
			tr.seqPos = (tr.seqPos + 1) & 0x1f
		}
	} else {
		tr.timer--
	}
}

func (tr *triangle) clockLinear() {
	if tr.reloadFlag {
		tr.linear = tr.linearReload
	} else if tr.linear > 0 {
		tr.linear--
	}
	if !tr.control {
		tr.reloadFlag = false
	}
}

// the sequencer stops when either counter reaches zero. the output of a
// stopped sequencer is treated as silence rather than held at the last value
func (tr *triangle) output() uint8 {
	if !tr.length.active() || tr.linear == 0 {
		return 0
	}
	return triangleSequence[tr.seqPos]
}
