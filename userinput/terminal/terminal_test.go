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

package terminal

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/test"
)

func TestParseKeys(t *testing.T) {
	keys := parseKeys([]byte{0x1b, '[', 'A', 'x', 0x1b, '[', 'D', '\r', 0x03, '?'})
	test.DemandEquality(t, len(keys), 5)
	test.ExpectEquality(t, keys[0], "Up")
	test.ExpectEquality(t, keys[1], "X")
	test.ExpectEquality(t, keys[2], "Left")
	test.ExpectEquality(t, keys[3], "Return")
	test.ExpectEquality(t, keys[4], "Ctrl-C")
}

func TestHold(t *testing.T) {
	trm := &Terminal{
		keys: make(chan string, 16),
		held: make(map[string]int),
	}
	pads := controller.NewPads()

	trm.keys <- "X"
	test.ExpectSuccess(t, trm.Tick(10, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(0).State(), controller.A)

	test.ExpectSuccess(t, trm.Tick(10+HoldFrames-1, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(0).State(), controller.A)

	test.ExpectSuccess(t, trm.Tick(10+HoldFrames, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(0).State(), controller.Button(0))

	trm.keys <- "Ctrl-C"
	test.ExpectSuccess(t, trm.Tick(20, pads))
	test.ExpectSuccess(t, trm.Quit())
}
