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
	"strings"
)

// Button is a bit in the state of a standard controller. The values are in the
// order that the buttons are shifted out of the controller.
type Button uint8

// List of valid Button values.
const (
	A      Button = 0x01
	B      Button = 0x02
	Select Button = 0x04
	Start  Button = 0x08
	Up     Button = 0x10
	Down   Button = 0x20
	Left   Button = 0x40
	Right  Button = 0x80
)

var buttonNames = []string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	s := strings.Builder{}
	for i, n := range buttonNames {
		if b&(1<<i) != 0 {
			if s.Len() > 0 {
				s.WriteString("+")
			}
			s.WriteString(n)
		}
	}
	if s.Len() == 0 {
		return "none"
	}
	return s.String()
}

// Pad is a standard NES controller. The state of the eight buttons is latched
// into a shift register when the strobe line falls and shifted out one bit per
// read.
type Pad struct {
	state Button
	shift uint8
}

// Press sets the button in the pad state.
func (pad *Pad) Press(b Button) {
	pad.state |= b
}

// Release clears the button in the pad state.
func (pad *Pad) Release(b Button) {
	pad.state &^= b
}

// Set replaces the entire pad state.
func (pad *Pad) Set(b Button) {
	pad.state = b
}

// State returns the current button state.
func (pad *Pad) State() Button {
	return pad.state
}

func (pad *Pad) latch() {
	pad.shift = uint8(pad.state)
}

// official controllers return 1 once all the buttons have been shifted out
func (pad *Pad) read() uint8 {
	v := pad.shift & 0x01
	pad.shift = pad.shift>>1 | 0x80
	return v
}
