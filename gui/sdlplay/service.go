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

package sdlplay

import (
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

var gamepadButtons = map[sdl.GameControllerButton]userinput.GamepadButton{
	sdl.CONTROLLER_BUTTON_A:          userinput.GamepadButtonA,
	sdl.CONTROLLER_BUTTON_B:          userinput.GamepadButtonB,
	sdl.CONTROLLER_BUTTON_X:          userinput.GamepadButtonB,
	sdl.CONTROLLER_BUTTON_BACK:       userinput.GamepadButtonBack,
	sdl.CONTROLLER_BUTTON_START:      userinput.GamepadButtonStart,
	sdl.CONTROLLER_BUTTON_DPAD_UP:    userinput.GamepadButtonUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:  userinput.GamepadButtonDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:  userinput.GamepadButtonLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT: userinput.GamepadButtonRight,
}

// open the first two game controllers. they are assigned to the players in
// the order they are found
func (scr *SdlPlay) openGamepads() {
	player := 0
	for i := 0; i < sdl.NumJoysticks() && player < 2; i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		gc := sdl.GameControllerOpen(i)
		if gc == nil {
			continue
		}
		id := gc.Joystick().InstanceID()
		scr.gamepads[id] = gamepad{controller: gc, player: player}
		logger.Logf(logger.Allow, "sdlplay", "gamepad %s assigned to player %d", gc.Name(), player+1)
		player++
	}
}

// Service checks for SDL events and forwards them to the emulation. Returns
// false if the window has been closed. MUST ONLY be called from the main
// thread.
func (scr *SdlPlay) Service(handle userinput.HandleInput) (bool, error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		var uev userinput.Event

		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			uev = userinput.EventQuit{}

		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				uev = userinput.EventQuit{}
				break
			}
			uev = userinput.EventKeyboard{
				Key:    sdl.GetKeyName(ev.Keysym.Sym),
				Down:   ev.Type == sdl.KEYDOWN,
				Repeat: ev.Repeat != 0,
			}

		case *sdl.ControllerButtonEvent:
			g, ok := scr.gamepads[ev.Which]
			if !ok {
				continue
			}
			b, ok := gamepadButtons[sdl.GameControllerButton(ev.Button)]
			if !ok {
				continue
			}
			uev = userinput.EventGamepadButton{
				Player: g.player,
				Button: b,
				Down:   ev.Type == sdl.CONTROLLERBUTTONDOWN,
			}

		default:
			continue
		}

		if err := scr.controllers.HandleUserInput(uev, handle); err != nil {
			return false, err
		}
	}

	return !scr.controllers.Quit, nil
}
