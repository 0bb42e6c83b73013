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

package controller

import (
	"fmt"
)

// NumPads is the number of controller ports on the console.
const NumPads = 2

// the number of events that can be pushed before they are handled
const pushedQueueSize = 64

// Pads is the pair of controller ports. The CPU writes the strobe to 0x4016
// and reads the ports through 0x4016 and 0x4017.
type Pads struct {
	pads [NumPads]Pad

	// while the strobe is high the shift registers are continually reloaded
	strobe bool

	// events pushed from other goroutines
	pushed chan Event
}

// NewPads is the preferred method of initialisation for the Pads type.
func NewPads() *Pads {
	return &Pads{
		pushed: make(chan Event, pushedQueueSize),
	}
}

func (p *Pads) String() string {
	return fmt.Sprintf("P1: %s P2: %s", p.pads[0].state, p.pads[1].state)
}

// Reset clears the strobe and the shift registers. The button state is not
// changed.
func (p *Pads) Reset() {
	p.strobe = false
	for i := range p.pads {
		p.pads[i].shift = 0
	}
}

// Pad returns the pad connected to the numbered port. Player numbers start at
// zero.
func (p *Pads) Pad(player int) *Pad {
	return &p.pads[player%NumPads]
}

// Write is called on a CPU write to 0x4016. Bit 0 is the strobe. The shift
// registers are loaded when the strobe falls.
func (p *Pads) Write(data uint8) {
	strobe := data&0x01 == 0x01
	if strobe || p.strobe {
		for i := range p.pads {
			p.pads[i].latch()
		}
	}
	p.strobe = strobe
}

// Read is called on a CPU read of 0x4016 (player 0) or 0x4017 (player 1).
// Bits 0 to 4 are driven by the port. Bit 0 is the serial data from the
// standard controller. The other driven bits are always zero because expansion
// devices are not emulated.
func (p *Pads) Read(player int) uint8 {
	pad := &p.pads[player%NumPads]
	if p.strobe {
		pad.latch()
	}
	return pad.read()
}

// DrivenBits is the mask of the data bits driven by a controller read. The
// remaining bits are open bus.
const DrivenBits = 0x1f
