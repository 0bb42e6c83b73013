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

// output rates in CPU cycles
var dmcRateNTSC = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54,
}

var dmcRatePAL = [16]uint16{
	398, 354, 316, 298, 276, 236, 210, 198, 176, 148, 132, 118, 98, 78, 66, 50,
}

// the number of CPU cycles stolen by each sample fetch
const dmcStallCycles = 4

// Memory is used by the DMC to fetch sample data.
type Memory interface {
	DMCRead(addr uint16) uint8
}

type dmc struct {
	mem Memory

	rates *[16]uint16

	irqEnabled bool
	loop       bool
	rate       uint16
	timer      uint16

	irq bool

	// the sample as defined by the registers
	sampleAddr uint16
	sampleLen  uint16

	// the progress of the memory reader
	addr      uint16
	remaining uint16

	buffer      uint8
	bufferEmpty bool

	// the output unit
	shift   uint8
	bits    uint8
	silence bool
	level   uint8

	// cycles owed to the CPU by the memory reader
	stall int
}

func (d *dmc) write(reg uint16, data uint8) {
	switch reg {
	case 0:
		d.irqEnabled = data&0x80 == 0x80
		if !d.irqEnabled {
			d.irq = false
		}
		d.loop = data&0x40 == 0x40
		d.rate = d.rates[data&0x0f]
	case 1:
		d.level = data & 0x7f
	case 2:
		d.sampleAddr = 0xc000 | uint16(data)<<6
	case 3:
		d.sampleLen = uint16(data)<<4 | 0x0001
	}
}

func (d *dmc) setEnabled(enabled bool) {
	d.irq = false
	if !enabled {
		d.remaining = 0
		return
	}
	if d.remaining == 0 {
		d.restart()
	}
}

func (d *dmc) restart() {
	d.addr = d.sampleAddr
	d.remaining = d.sampleLen
}

func (d *dmc) active() bool {
	return d.remaining > 0
}

// fill the sample buffer if it is empty and there are bytes remaining
func (d *dmc) fetch() {
	if !d.bufferEmpty || d.remaining == 0 {
		return
	}

	d.buffer = d.mem.DMCRead(d.addr)
	d.bufferEmpty = false
	d.stall += dmcStallCycles

	if d.addr == 0xffff {
		d.addr = 0x8000
	} else {
		d.addr++
	}

	d.remaining--
	if d.remaining == 0 {
		if d.loop {
			d.restart()
		} else if d.irqEnabled {
			d.irq = true
		}
	}
}

func (d *dmc) clockTimer() {
	d.fetch()

	if d.timer > 0 {
		d.timer--
		return
	}
	d.timer = d.rate - 1

	if !d.silence {
		if d.shift&0x01 == 0x01 {
			if d.level <= 125 {
				d.level += 2
			}
		} else if d.level >= 2 {
			d.level -= 2
		}
	}
	d.shift >>= 1

	if d.bits > 0 {
		d.bits--
	}
	if d.bits == 0 {
		d.bits = 8
		if d.bufferEmpty {
			d.silence = true
		} else {
			d.silence = false
			d.shift = d.buffer
			d.bufferEmpty = true
		}
	}
}

func (d *dmc) output() uint8 {
	return d.level
}
