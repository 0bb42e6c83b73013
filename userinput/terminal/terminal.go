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

// Package terminal reads controller input from a terminal in raw mode. It is
// useful when the emulation is running without a window.
//
// A terminal cannot report when a key is released so every key press is
// held for a fixed number of frames.
package terminal

import (
	"time"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/userinput"
	"github.com/pkg/term"
)

// HoldFrames is the number of frames a key press is held for.
const HoldFrames = 8

// the device that is opened if no device is specified
const defaultDevice = "/dev/tty"

// the control code for ctrl-c
const ctrlC = 0x03

// Terminal implements the output.InputSource interface.
type Terminal struct {
	tty *term.Term

	keys chan string
	quit chan bool
	done chan bool

	// the frame on which each held key was pressed
	held map[string]int

	controllers userinput.Controllers
}

// NewTerminal opens the terminal device and puts it into raw mode. The
// terminal is returned to its normal state with End().
func NewTerminal(device string) (*Terminal, error) {
	if device == "" {
		device = defaultDevice
	}

	tty, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}

	// a short read timeout means the service goroutine can notice a quit
	// signal
	if err := tty.SetReadTimeout(100 * time.Millisecond); err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, curated.Errorf("terminal: %v", err)
	}

	trm := &Terminal{
		tty:  tty,
		keys: make(chan string, 16),
		quit: make(chan bool),
		done: make(chan bool),
		held: make(map[string]int),
	}

	go trm.service()

	logger.Logf(logger.Allow, "terminal", "reading input from %s", device)

	return trm, nil
}

func (trm *Terminal) service() {
	defer close(trm.done)

	b := make([]byte, 8)
	for {
		select {
		case <-trm.quit:
			return
		default:
		}

		n, err := trm.tty.Read(b)
		if err != nil || n == 0 {
			continue
		}

		for _, k := range parseKeys(b[:n]) {
			select {
			case trm.keys <- k:
			default:
			}
		}
	}
}

// Quit returns true if the quit key (ctrl-c) has been pressed.
func (trm *Terminal) Quit() bool {
	return trm.controllers.Quit
}

// Tick implements the output.InputSource interface.
func (trm *Terminal) Tick(frame int, pads *controller.Pads) error {
	for k, f := range trm.held {
		if frame-f >= HoldFrames {
			delete(trm.held, k)
			err := trm.controllers.HandleUserInput(userinput.EventKeyboard{Key: k, Down: false}, pads)
			if err != nil {
				return curated.Errorf("terminal: %v", err)
			}
		}
	}

	for {
		select {
		case k := <-trm.keys:
			var ev userinput.Event
			if k == "Ctrl-C" {
				ev = userinput.EventQuit{}
			} else {
				ev = userinput.EventKeyboard{Key: k, Down: true}
			}
			if err := trm.controllers.HandleUserInput(ev, pads); err != nil {
				return curated.Errorf("terminal: %v", err)
			}
			if trm.controllers.LastKeyHandled {
				trm.held[k] = frame
			}
		default:
			return nil
		}
	}
}

// End stops reading the terminal and restores it to its normal state.
func (trm *Terminal) End() error {
	close(trm.quit)
	<-trm.done

	err := trm.tty.Restore()
	if err != nil {
		_ = trm.tty.Close()
		return curated.Errorf("terminal: %v", err)
	}
	if err := trm.tty.Close(); err != nil {
		return curated.Errorf("terminal: %v", err)
	}

	return nil
}

// parseKeys converts the bytes read from the terminal into key names. Arrow
// keys arrive as ANSI escape sequences. Letters are upper cased to match the
// key names used by userinput.
func parseKeys(b []byte) []string {
	var keys []string

	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == 0x1b && i+2 < len(b) && b[i+1] == '[':
			switch b[i+2] {
			case 'A':
				keys = append(keys, "Up")
			case 'B':
				keys = append(keys, "Down")
			case 'C':
				keys = append(keys, "Right")
			case 'D':
				keys = append(keys, "Left")
			}
			i += 2
		case c == ctrlC:
			keys = append(keys, "Ctrl-C")
		case c == '\r' || c == '\n':
			keys = append(keys, "Return")
		case c >= 'a' && c <= 'z':
			keys = append(keys, string(rune(c-'a'+'A')))
		case c >= 'A' && c <= 'Z':
			keys = append(keys, string(rune(c)))
		}
	}

	return keys
}
