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

package userinput

import (
	"github.com/jetsetilly/gophernes/hardware/controller"
)

// HandleInput conceptualises data being sent to the console controller ports.
// It is satisfied by the controller.Pads type. Events can be pushed from any
// goroutine.
type HandleInput interface {
	PushEvent(ev controller.Event) error
}

// Event represents all the different input events sent from a GUI.
type Event any

// EventQuit is sent when the GUI asks for the emulation to end.
type EventQuit struct{}

// EventKeyboard is sent when a key on the keyboard is pressed or released.
type EventKeyboard struct {
	Key    string
	Down   bool
	Repeat bool
}

// GamepadButton identifies a button on a real gamepad.
type GamepadButton int

// List of valid GamepadButton values.
const (
	GamepadButtonNone GamepadButton = iota
	GamepadButtonA
	GamepadButtonB
	GamepadButtonBack
	GamepadButtonStart
	GamepadButtonUp
	GamepadButtonDown
	GamepadButtonLeft
	GamepadButtonRight
)

// EventGamepadButton is sent when a button on a real gamepad is pressed or
// released. The Player field is the port the gamepad is assigned to.
type EventGamepadButton struct {
	Player int
	Button GamepadButton
	Down   bool
}
