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

package ebitenplay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jetsetilly/gophernes/userinput"
)

// ebiten keys and their names as used by the userinput package
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "Up",
	ebiten.KeyArrowDown:  "Down",
	ebiten.KeyArrowLeft:  "Left",
	ebiten.KeyArrowRight: "Right",
	ebiten.KeyZ:          "Z",
	ebiten.KeyX:          "X",
	ebiten.KeyShiftRight: "Right Shift",
	ebiten.KeyEnter:      "Return",
	ebiten.KeyI:          "I",
	ebiten.KeyK:          "K",
	ebiten.KeyJ:          "J",
	ebiten.KeyL:          "L",
	ebiten.KeyG:          "G",
	ebiten.KeyH:          "H",
	ebiten.KeyT:          "T",
	ebiten.KeyY:          "Y",
}

var gamepadButtons = map[ebiten.StandardGamepadButton]userinput.GamepadButton{
	ebiten.StandardGamepadButtonRightBottom: userinput.GamepadButtonA,
	ebiten.StandardGamepadButtonRightRight:  userinput.GamepadButtonA,
	ebiten.StandardGamepadButtonRightLeft:   userinput.GamepadButtonB,
	ebiten.StandardGamepadButtonCenterLeft:  userinput.GamepadButtonBack,
	ebiten.StandardGamepadButtonCenterRight: userinput.GamepadButtonStart,
	ebiten.StandardGamepadButtonLeftTop:     userinput.GamepadButtonUp,
	ebiten.StandardGamepadButtonLeftBottom:  userinput.GamepadButtonDown,
	ebiten.StandardGamepadButtonLeftLeft:    userinput.GamepadButtonLeft,
	ebiten.StandardGamepadButtonLeftRight:   userinput.GamepadButtonRight,
}

type input struct {
	keys   []ebiten.Key
	pads   []ebiten.GamepadID
	events []userinput.Event
}

func newInput() input {
	return input{
		keys: make([]ebiten.Key, 0, 16),
	}
}

// poll returns the input events since the previous call to poll
func (in *input) poll() []userinput.Event {
	in.events = in.events[:0]

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.events = append(in.events, userinput.EventQuit{})
		return in.events
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	in.appendKeys(true)
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	in.appendKeys(false)

	// gamepads are assigned to players in the order they are listed
	in.pads = ebiten.AppendGamepadIDs(in.pads[:0])
	for player, id := range in.pads {
		if player > 1 {
			break
		}
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for b, gb := range gamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				in.events = append(in.events, userinput.EventGamepadButton{Player: player, Button: gb, Down: true})
			} else if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
				in.events = append(in.events, userinput.EventGamepadButton{Player: player, Button: gb, Down: false})
			}
		}
	}

	return in.events
}

func (in *input) appendKeys(down bool) {
	for _, k := range in.keys {
		if n, ok := keyNames[k]; ok {
			in.events = append(in.events, userinput.EventKeyboard{Key: n, Down: down})
		}
	}
}
