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

package recorder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/cartridgetest"
	"github.com/jetsetilly/gophernes/recorder"
	"github.com/jetsetilly/gophernes/test"
)

// a program that reads the first controller and stores the state of the A
// button in zero page
//
//	8000  LDA #$01
//	8002  STA $4016
//	8005  LDA #$00
//	8007  STA $4016
//	800a  LDA $4016
//	800d  AND #$01
//	800f  STA $10
//	8011  JMP $8000
var program = []uint8{
	0xa9, 0x01, 0x8d, 0x16, 0x40,
	0xa9, 0x00, 0x8d, 0x16, 0x40,
	0xad, 0x16, 0x40,
	0x29, 0x01,
	0x85, 0x10,
	0x4c, 0x00, 0x80,
}

func newNES(t *testing.T) *hardware.NES {
	t.Helper()
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true
	nes, err := hardware.NewNES(env, cartridgetest.NROM(program).Loader("test.nes"))
	test.DemandSuccess(t, err)
	return nes
}

// presses A on frames 5 to 9
type script struct{}

func (script) Tick(frame int, pads *controller.Pads) error {
	if frame >= 5 && frame < 10 {
		pads.Pad(0).Press(controller.A)
	} else {
		pads.Pad(0).Release(controller.A)
	}
	return nil
}

func record(t *testing.T, fn string) {
	t.Helper()

	nes := newNES(t)
	rec, err := recorder.NewRecorder(fn, nes, script{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, nes.RunForFrameCount(15, nil))
	test.DemandSuccess(t, rec.End())
}

func TestRecordAndPlayback(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.transcript")
	record(t, fn)

	// the recording cannot overwrite an existing file
	_, err := recorder.NewRecorder(fn, newNES(t), nil)
	test.ExpectFailure(t, err)

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.Region, "NTSC")
	test.ExpectEquality(t, plb.CartName, "test.nes")

	nes := newNES(t)
	test.DemandSuccess(t, plb.AttachToNES(nes))

	var pressed []int
	err = nes.RunForFrameCount(15, func(frame int) (govern.State, error) {
		if nes.Mem.RAM.Peek(0x10) == 0x01 {
			pressed = append(pressed, frame)
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, plb.EndFrame())

	// frame numbers passed to the continue check are the number of frames
	// completed. input at the start of frame 5 is seen by the end of it
	test.DemandEquality(t, len(pressed), 5)
	test.ExpectEquality(t, pressed[0], 6)
	test.ExpectEquality(t, pressed[4], 10)
}

func TestPlaybackError(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.transcript")
	record(t, fn)

	// corrupt the hash of the last entry
	d, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	lines := strings.Split(strings.TrimSpace(string(d)), "\n")
	last := lines[len(lines)-1]
	lines[len(lines)-1] = last[:strings.LastIndex(last, ", ")] + ", 0123456789"
	test.DemandSuccess(t, os.WriteFile(fn, []byte(strings.Join(lines, "\n")), 0o600))

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)

	nes := newNES(t)
	test.DemandSuccess(t, plb.AttachToNES(nes))

	err = nes.RunForFrameCount(20, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, recorder.PlaybackError))
}

func TestBadTranscript(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.transcript")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a transcript\n"), 0o600))
	_, err := recorder.NewPlayback(fn)
	test.ExpectFailure(t, err)
}

func TestRegionMismatch(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.transcript")
	record(t, fn)

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)

	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true
	test.DemandSuccess(t, env.Prefs.Region.Set("PAL"))
	nes, err := hardware.NewNES(env, cartridgetest.NROM(program).Loader("test.nes"))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, plb.AttachToNES(nes))
}
