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

package recorder

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/output"
)

// Recorder transcribes the controller input of an emulation. It implements
// the output.InputSource interface.
type Recorder struct {
	nes    *hardware.NES
	output io.WriteCloser

	// the input source being recorded. can be nil, in which case only pushed
	// events are recorded
	source output.InputSource

	digest *digest.Video

	// the controller state at the previous tick
	last    [controller.NumPads]controller.Button
	started bool
}

// NewRecorder is the preferred method of implementation for the Recorder
// type. The recorder becomes the input source of the emulation. The source
// argument is the input source that is being recorded and can be nil.
//
// The emulation should be freshly reset so that the recording will play back
// from the start.
func NewRecorder(transcript string, nes *hardware.NES, source output.InputSource) (*Recorder, error) {
	if nes == nil {
		return nil, curated.Errorf("recorder: hardware is not suitable for recording")
	}

	rec := &Recorder{
		nes:    nes,
		source: source,
		digest: digest.NewVideo(),
	}

	// open file; fail if file already exists
	fn, err := os.OpenFile(transcript, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}
	rec.output = fn

	if err := writeHeader(rec.output, rec.nes); err != nil {
		rec.output.Close()
		return nil, err
	}

	nes.AddVideoRenderer(rec.digest)
	nes.SetInputSource(rec)

	return rec, nil
}

// End flushes all remaining transcription to the output file and closes it.
func (rec *Recorder) End() error {
	if rec.output == nil {
		return nil
	}

	// write the final state so that playback knows the last frame of the
	// recording
	err := rec.write(rec.nes.FrameNum())
	if err != nil {
		rec.output.Close()
		rec.output = nil
		return err
	}

	err = rec.output.Close()
	rec.output = nil
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}

	return nil
}

// Tick implements the output.InputSource interface.
func (rec *Recorder) Tick(frame int, pads *controller.Pads) error {
	if rec.source != nil {
		if err := rec.source.Tick(frame, pads); err != nil {
			return err
		}
	}

	// pushed events must be applied before the state is recorded
	pads.HandlePushedEvents()

	changed := !rec.started
	for i := range rec.last {
		s := pads.Pad(i).State()
		if s != rec.last[i] {
			changed = true
			rec.last[i] = s
		}
	}
	rec.started = true

	if !changed {
		return nil
	}

	return rec.write(frame)
}

func (rec *Recorder) write(frame int) error {
	if rec.output == nil {
		return curated.Errorf("recorder: recording has ended")
	}

	line := fmt.Sprintf("%d%s%#02x%s%#02x%s%s\n",
		frame, fieldSep,
		uint8(rec.last[0]), fieldSep,
		uint8(rec.last[1]), fieldSep,
		rec.digest.Hash(),
	)

	n, err := io.WriteString(rec.output, line)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	if n != len(line) {
		return curated.Errorf("recorder: output truncated")
	}

	return nil
}
