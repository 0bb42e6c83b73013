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

package cpu

import (
	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
)

// interrupt runs the seven cycle interrupt sequence. the NMI takes priority
// over the IRQ if it has been raised by the time the status register is
// pushed onto the stack.
func (mc *CPU) interrupt() error {
	// the opcode and the next byte are read but discarded
	// +2 cycles
	for i := 0; i < 2; i++ {
		if _, err := mc.read8Bit(mc.PC.Address()); err != nil {
			return err
		}
	}

	// +2 cycles
	err := mc.push(uint8(mc.PC.Address() >> 8))
	if err != nil {
		return err
	}
	err = mc.push(uint8(mc.PC.Address()))
	if err != nil {
		return err
	}

	vector := cpubus.IRQ
	mc.LastResult.Interrupt = execution.IRQ
	if mc.needNMI {
		mc.needNMI = false
		vector = cpubus.NMI
		mc.LastResult.Interrupt = execution.NMI
	}

	// +1 cycle
	err = mc.push(mc.Status.Push(false))
	if err != nil {
		return err
	}
	mc.Status.InterruptDisable = true

	// +2 cycles
	address, err := mc.read16Bit(vector)
	if err != nil {
		return err
	}
	mc.PC.Load(address)

	return nil
}

// the number of bytes copied by OAM DMA
const oamDMALength = 256

// serviceDMA halts the CPU for as long as there are outstanding DMA requests.
func (mc *CPU) serviceDMA() error {
	for {
		if page, ok := mc.dma.OAMDMA(); ok {
			if err := mc.oamDMA(page); err != nil {
				return err
			}
			continue
		}

		if n := mc.dma.StallCycles(); n > 0 {
			for i := 0; i < n; i++ {
				if err := mc.tick(); err != nil {
					return err
				}
			}
			continue
		}

		return nil
	}
}

// oamDMA copies a page of CPU memory to OAMDATA. the copy takes 513 cycles,
// plus one more if it begins on an odd CPU cycle.
func (mc *CPU) oamDMA(page uint8) error {
	// halt cycle
	// +1 cycle
	if err := mc.tick(); err != nil {
		return err
	}

	// alignment cycle
	// +1 cycle
	if mc.cycles&0x01 == 0x01 {
		if err := mc.tick(); err != nil {
			return err
		}
	}

	// +512 cycles
	origin := uint16(page) << 8
	for i := uint16(0); i < oamDMALength; i++ {
		v, err := mc.read8Bit(origin | i)
		if err != nil {
			return err
		}
		err = mc.write8Bit(cpubus.OAMDATA, v)
		if err != nil {
			return err
		}
	}

	return nil
}
