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

package userinput_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/test"
	"github.com/jetsetilly/gophernes/userinput"
)

func TestKeyboard(t *testing.T) {
	var c userinput.Controllers
	pads := controller.NewPads()

	test.ExpectSuccess(t, c.HandleUserInput(userinput.EventKeyboard{Key: "X", Down: true}, pads))
	test.ExpectSuccess(t, c.LastKeyHandled)
	test.ExpectSuccess(t, c.HandleUserInput(userinput.EventKeyboard{Key: "J", Down: true}, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(0).State(), controller.A)
	test.ExpectEquality(t, pads.Pad(1).State(), controller.Left)

	test.ExpectSuccess(t, c.HandleUserInput(userinput.EventKeyboard{Key: "X", Down: false}, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(0).State(), controller.Button(0))

	// unmapped keys are not handled
	test.ExpectSuccess(t, c.HandleUserInput(userinput.EventKeyboard{Key: "F12", Down: true}, pads))
	test.ExpectFailure(t, c.LastKeyHandled)

	// repeats are ignored
	test.ExpectSuccess(t, c.HandleUserInput(userinput.EventKeyboard{Key: "X", Down: true, Repeat: true}, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(0).State(), controller.Button(0))
}

func TestGamepad(t *testing.T) {
	var c userinput.Controllers
	pads := controller.NewPads()

	ev := userinput.EventGamepadButton{Player: 1, Button: userinput.GamepadButtonStart, Down: true}
	test.ExpectSuccess(t, c.HandleUserInput(ev, pads))
	pads.HandlePushedEvents()
	test.ExpectEquality(t, pads.Pad(1).State(), controller.Start)
	test.ExpectEquality(t, pads.Pad(0).State(), controller.Button(0))
}

func TestQuit(t *testing.T) {
	var c userinput.Controllers
	test.ExpectSuccess(t, c.HandleUserInput(userinput.EventQuit{}, controller.NewPads()))
	test.ExpectSuccess(t, c.Quit)
}
