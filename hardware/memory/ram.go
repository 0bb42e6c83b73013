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

package memory

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/environment"
)

// the amount of internal RAM
const ramSize = 0x0800

// RAM is the internal RAM of the NES.
type RAM struct {
	memory [ramSize]uint8
}

func newRAM(env *environment.Environment) *RAM {
	ram := &RAM{}
	if env != nil && env.Prefs.RandomState.Get().(bool) {
		env.Random.Fill(ram.memory[:])
	}
	return ram
}

func (ram *RAM) String() string {
	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("     ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for y := 0; y < ramSize/16; y++ {
		s.WriteString(fmt.Sprintf("%03X- | ", y))
		for x := 0; x < 16; x++ {
			s.WriteString(fmt.Sprintf(" %02x", ram.memory[y*16+x]))
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// Peek returns the value at the address. The address is mirrored as it
// would be on the CPU bus.
func (ram *RAM) Peek(address uint16) uint8 {
	return ram.memory[address&(ramSize-1)]
}

// Poke sets the value at the address.
func (ram *RAM) Poke(address uint16, data uint8) {
	ram.memory[address&(ramSize-1)] = data
}
