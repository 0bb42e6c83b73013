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

import "fmt"

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

type pulse struct {
	// pulse 1 negates the sweep change with the ones' complement and pulse 2
	// with the two's complement
	onesComplement bool

	length   lengthCounter
	envelope envelope

	duty    uint8
	dutyPos uint8

	// the timer is clocked every APU cycle
	period uint16
	timer  uint16

	sweepEnabled bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepReload  bool
	sweepDivider uint8
}

func (p *pulse) String() string {
	return fmt.Sprintf("prd=%03x len=%03d vol=%02d", p.period, p.length.value, p.output())
}

func (p *pulse) write(reg uint16, data uint8) {
	switch reg {
	case 0:
		p.duty = data >> 6
		p.length.halt = data&0x20 == 0x20
		p.envelope.write(data)
	case 1:
		p.sweepEnabled = data&0x80 == 0x80
		p.sweepPeriod = (data >> 4) & 0x07
		p.sweepNegate = data&0x08 == 0x08
		p.sweepShift = data & 0x07
		p.sweepReload = true
	case 2:
		p.period = p.period&0x0700 | uint16(data)
	case 3:
		p.period = p.period&0x00ff | uint16(data&0x07)<<8
		p.length.load(data >> 3)
		p.dutyPos = 0
		p.envelope.start = true
	}
}

// the sequencer counts down from zero: 0, 7, 6, 5 ... 1
func (p *pulse) clockTimer() {
	if p.timer == 0 {
		p.timer = p.period
		p.dutyPos = (p.dutyPos - 1) & 0x07
	} else {
		p.timer--
	}
}

// the period the sweep unit is moving towards. the value is calculated
// continuously and mutes the channel even when the sweep is disabled
func (p *pulse) sweepTarget() int {
	change := int(p.period >> p.sweepShift)
	if p.sweepNegate {
		change = -change
		if p.onesComplement {
			change--
		}
	}
	return int(p.period) + change
}

func (p *pulse) muted() bool {
	return p.period < 8 || p.sweepTarget() > 0x7ff
}

func (p *pulse) clockSweep() {
	if p.sweepDivider == 0 && p.sweepEnabled && p.sweepShift > 0 && !p.muted() {
		if t := p.sweepTarget(); t >= 0 {
			p.period = uint16(t)
		}
	}
	if p.sweepDivider == 0 || p.sweepReload {
		p.sweepDivider = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepDivider--
	}
}

func (p *pulse) output() uint8 {
	if !p.length.active() || p.muted() || dutyTable[p.duty][p.dutyPos] == 0 {
		return 0
	}
	return p.envelope.output()
}
