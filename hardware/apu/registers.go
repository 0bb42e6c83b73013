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

// status register bits
const (
	statusPulse1   = 0x01
	statusPulse2   = 0x02
	statusTriangle = 0x04
	statusNoise    = 0x08
	statusDMC      = 0x10
	statusFrameIRQ = 0x40
	statusDMCIRQ   = 0x80
)

// WriteRegister is called on a CPU write to 0x4000 to 0x4013, 0x4015 and
// 0x4017.
func (apu *APU) WriteRegister(addr uint16, data uint8) {
	switch {
	case addr <= 0x4003:
		apu.pulse1.write(addr&0x03, data)
	case addr <= 0x4007:
		apu.pulse2.write(addr&0x03, data)
	case addr <= 0x400b:
		apu.triangle.write(addr&0x03, data)
	case addr <= 0x400f:
		apu.noise.write(addr&0x03, data)
	case addr <= 0x4013:
		apu.dmc.write(addr&0x03, data)
	case addr == 0x4015:
		apu.pulse1.length.setEnabled(data&statusPulse1 == statusPulse1)
		apu.pulse2.length.setEnabled(data&statusPulse2 == statusPulse2)
		apu.triangle.length.setEnabled(data&statusTriangle == statusTriangle)
		apu.noise.length.setEnabled(data&statusNoise == statusNoise)
		apu.dmc.setEnabled(data&statusDMC == statusDMC)
	case addr == 0x4017:
		apu.frame.write(data, apu.cycles&0x01 == 0x01)
	}
}

// ReadStatus is called on a CPU read of 0x4015. Bit 5 is not driven by the
// APU and is always zero. The frame interrupt flag is cleared by the read.
func (apu *APU) ReadStatus() uint8 {
	var status uint8
	if apu.pulse1.length.active() {
		status |= statusPulse1
	}
	if apu.pulse2.length.active() {
		status |= statusPulse2
	}
	if apu.triangle.length.active() {
		status |= statusTriangle
	}
	if apu.noise.length.active() {
		status |= statusNoise
	}
	if apu.dmc.active() {
		status |= statusDMC
	}
	if apu.frame.irq {
		status |= statusFrameIRQ
	}
	if apu.dmc.irq {
		status |= statusDMCIRQ
	}

	apu.frame.irq = false

	return status
}
