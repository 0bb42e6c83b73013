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

package registers

import (
	"strings"
)

// StatusRegister is the special purpose register that stores the flags of
// the CPU.
//
// There is no break flag in the register itself. The break bit only exists in
// the copy of the status register that is pushed onto the stack. See
// Push().
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// bits of the status register as they appear on the stack
const (
	bitCarry            = 0x01
	bitZero             = 0x02
	bitInterruptDisable = 0x04
	bitDecimalMode      = 0x08
	bitBreak            = 0x10
	bitUnused           = 0x20
	bitOverflow         = 0x40
	bitSign             = 0x80
)

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

// String returns the flags as a string of eight characters. Upper case
// indicates the flag is set. The break flag (fourth character) and the
// unused bit (third character) are never set.
func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, on rune, off rune) {
		if set {
			s.WriteRune(on)
		} else {
			s.WriteRune(off)
		}
	}

	flag(sr.Sign, 'S', 's')
	flag(sr.Overflow, 'V', 'v')
	s.WriteRune('-')
	s.WriteRune('b')
	flag(sr.DecimalMode, 'D', 'd')
	flag(sr.InterruptDisable, 'I', 'i')
	flag(sr.Zero, 'Z', 'z')
	flag(sr.Carry, 'C', 'c')

	return s.String()
}

// Reset status flags to initial state.
func (sr *StatusRegister) Reset() {
	sr.FromValue(0)
}

// Value converts the StatusRegister into a single byte. The unused bit is
// always set and the break bit is always clear.
func (sr StatusRegister) Value() uint8 {
	v := uint8(bitUnused)

	if sr.Sign {
		v |= bitSign
	}
	if sr.Overflow {
		v |= bitOverflow
	}
	if sr.DecimalMode {
		v |= bitDecimalMode
	}
	if sr.InterruptDisable {
		v |= bitInterruptDisable
	}
	if sr.Zero {
		v |= bitZero
	}
	if sr.Carry {
		v |= bitCarry
	}

	return v
}

// Push returns the value of the status register as it should be written to
// the stack. The break bit is set for PHP and BRK and clear for hardware
// interrupts.
func (sr StatusRegister) Push(brk bool) uint8 {
	if brk {
		return sr.Value() | bitBreak
	}
	return sr.Value()
}

// FromValue converts an 8 bit integer (taken from the stack, for example) to
// the StatusRegister receiver. The break and unused bits are ignored.
func (sr *StatusRegister) FromValue(v uint8) {
	sr.Sign = v&bitSign == bitSign
	sr.Overflow = v&bitOverflow == bitOverflow
	sr.DecimalMode = v&bitDecimalMode == bitDecimalMode
	sr.InterruptDisable = v&bitInterruptDisable == bitInterruptDisable
	sr.Zero = v&bitZero == bitZero
	sr.Carry = v&bitCarry == bitCarry
}
