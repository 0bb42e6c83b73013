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

// timer periods in CPU cycles
var noisePeriodNTSC = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

var noisePeriodPAL = [16]uint16{
	4, 8, 14, 30, 60, 88, 118, 148, 188, 236, 354, 472, 708, 944, 1890, 3778,
}

type noise struct {
	length   lengthCounter
	envelope envelope

	// period table for the console region
	periods *[16]uint16

	// short mode takes the feedback from bit 6 rather than bit 1
	short bool

	period uint16
	timer  uint16

	// 15 bit linear feedback shift register
	shift uint16
}

func (n *noise) write(reg uint16, data uint8) {
	switch reg {
	case 0:
		n.length.halt = data&0x20 == 0x20
		n.envelope.write(data)
	case 2:
		n.short = data&0x80 == 0x80
		n.period = n.periods[data&0x0f]
	case 3:
		n.length.load(data >> 3)
		n.envelope.start = true
	}
}

func (n *noise) clockTimer() {
	if n.timer > 0 {
		n.timer--
		return
	}
	n.timer = n.period - 1

	var feedback uint16
	if n.short {
		feedback = (n.shift ^ n.shift>>6) & 0x01
	} else {
		feedback = (n.shift ^ n.shift>>1) & 0x01
	}
	n.shift = n.shift>>1 | feedback<<14
}

func (n *noise) output() uint8 {
	if !n.length.active() || n.shift&0x01 == 0x01 {
		return 0
	}
	return n.envelope.output()
}
