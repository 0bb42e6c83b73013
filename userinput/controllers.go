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

type mapping struct {
	player int
	button controller.Button
}

// keyboard layout. the first player uses the arrow keys with Z and X. the
// second player uses IJKL with G and H
var keyboard = map[string]mapping{
	"Up":          {0, controller.Up},
	"Down":        {0, controller.Down},
	"Left":        {0, controller.Left},
	"Right":       {0, controller.Right},
	"Z":           {0, controller.B},
	"X":           {0, controller.A},
	"Right Shift": {0, controller.Select},
	"Return":      {0, controller.Start},

	"I": {1, controller.Up},
	"K": {1, controller.Down},
	"J": {1, controller.Left},
	"L": {1, controller.Right},
	"G": {1, controller.B},
	"H": {1, controller.A},
	"T": {1, controller.Select},
	"Y": {1, controller.Start},
}

var gamepad = map[GamepadButton]controller.Button{
	GamepadButtonA:     controller.A,
	GamepadButtonB:     controller.B,
	GamepadButtonBack:  controller.Select,
	GamepadButtonStart: controller.Start,
	GamepadButtonUp:    controller.Up,
	GamepadButtonDown:  controller.Down,
	GamepadButtonLeft:  controller.Left,
	GamepadButtonRight: controller.Right,
}

// Controllers keeps track of hardware userinput options.
type Controllers struct {
	// whether or not the last HandleUserInput() was for an event that was
	// consumed by the emulation as an input
	LastKeyHandled bool

	// is true if last event was a quit emulation event
	Quit bool
}

// HandleUserInput deciphers the Event and forwards the input to the
// emulation.
func (c *Controllers) HandleUserInput(ev Event, handle HandleInput) error {
	c.LastKeyHandled = false

	switch ev := ev.(type) {
	case EventQuit:
		c.Quit = true
	case EventKeyboard:
		// key repeats are of no interest to a controller
		if ev.Repeat {
			return nil
		}
		m, ok := keyboard[ev.Key]
		if !ok {
			return nil
		}
		c.LastKeyHandled = true
		return handle.PushEvent(controller.Event{Player: m.player, Button: m.button, Pressed: ev.Down})
	case EventGamepadButton:
		b, ok := gamepad[ev.Button]
		if !ok {
			return nil
		}
		c.LastKeyHandled = true
		return handle.PushEvent(controller.Event{Player: ev.Player, Button: b, Pressed: ev.Down})
	}

	return nil
}
