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

// Event describes a change in the state of a button. Events are usually
// created by a GUI running in a different goroutine to the emulation.
type Event struct {
	Player  int
	Button  Button
	Pressed bool
}

func (ev Event) String() string {
	if ev.Pressed {
		return fmt.Sprintf("P%d %s pressed", ev.Player+1, ev.Button)
	}
	return fmt.Sprintf("P%d %s released", ev.Player+1, ev.Button)
}

// PushEvent pushes an Event onto the queue. It is safe to call this function
// from any goroutine. Will drop the event and return an error if queue is
// full.
func (p *Pads) PushEvent(ev Event) error {
	select {
	case p.pushed <- ev:
	default:
		return fmt.Errorf("controller: pushed event queue is full: input dropped")
	}
	return nil
}

// HandlePushedEvents applies all queued events to the pads. Should be called
// from the emulation goroutine.
func (p *Pads) HandlePushedEvents() {
	for {
		select {
		case ev := <-p.pushed:
			p.HandleEvent(ev)
		default:
			return
		}
	}
}

// HandleEvent applies the event to the pads immediately.
func (p *Pads) HandleEvent(ev Event) {
	pad := p.Pad(ev.Player)
	if ev.Pressed {
		pad.Press(ev.Button)
	} else {
		pad.Release(ev.Button)
	}
}
