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
	"strconv"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/controller"
)

// PlaybackError is returned by Tick() if the state of the emulation does not
// match the state in the transcript.
const PlaybackError = "playback: unexpected state at line %d (frame %d)"

type playbackEntry struct {
	frame int
	pads  [controller.NumPads]controller.Button
	hash  string

	// the line in the recording file the playback event appears
	line int
}

// Playback is used to reperform the user input recorded in a previously
// recorded file. It implements the output.InputSource interface.
type Playback struct {
	transcript string

	CartName string
	CartHash string
	Region   string

	sequence []playbackEntry
	seqCt    int

	nes    *hardware.NES
	digest *digest.Video

	// the last frame where an event occurs
	endFrame int
}

func (plb *Playback) String() string {
	if plb.nes == nil || plb.endFrame == 0 {
		return "0/0"
	}
	currFrame := plb.nes.FrameNum()
	return fmt.Sprintf("%d/%d (%.1f%%)", currFrame, plb.endFrame, 100*(float64(currFrame)/float64(plb.endFrame)))
}

// EndFrame returns true if emulation has reached the last frame of the
// playback.
func (plb *Playback) EndFrame() bool {
	return plb.nes != nil && plb.nes.FrameNum() >= plb.endFrame
}

// NewPlayback is the preferred method of implementation for the Playback type.
func NewPlayback(transcript string) (*Playback, error) {
	tf, err := os.Open(transcript)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}
	defer tf.Close()

	return readPlayback(transcript, tf)
}

func readPlayback(transcript string, r io.Reader) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
		sequence:   make([]playbackEntry, 0),
	}

	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(string(buffer), "\n")

	// read header and perform validation checks
	err = plb.readHeader(lines)
	if err != nil {
		return nil, err
	}

	for i := numHeaderLines; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		toks := strings.Split(lines[i], fieldSep)
		if len(toks) != numFields {
			return nil, curated.Errorf("playback: expected %d fields at line %d", numFields, i+1)
		}

		entry := playbackEntry{line: i + 1}

		entry.frame, err = strconv.Atoi(toks[fieldFrame])
		if err != nil {
			return nil, curated.Errorf("playback: %v line %d, col %d", err, i+1, len(strings.Join(toks[:fieldFrame+1], fieldSep)))
		}

		for p, f := range []int{fieldPad0, fieldPad1} {
			v, err := strconv.ParseUint(toks[f], 0, 8)
			if err != nil {
				return nil, curated.Errorf("playback: %v line %d, col %d", err, i+1, len(strings.Join(toks[:f+1], fieldSep)))
			}
			entry.pads[p] = controller.Button(v)
		}

		entry.hash = toks[fieldHash]

		// frames must be in order in the transcript
		if entry.frame < plb.endFrame {
			return nil, curated.Errorf("playback: frame out of sequence at line %d", i+1)
		}
		plb.endFrame = entry.frame

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

// AttachToNES attaches the playback instance to the emulation as its input
// source. The emulation will be reset.
func (plb *Playback) AttachToNES(nes *hardware.NES) error {
	if nes == nil {
		return curated.Errorf("playback: no playback hardware available")
	}

	// keep it simple and disallow any difference in region. some recordings
	// may play back correctly but there is no compelling reason to figure
	// that out
	if nes.Spec().ID != plb.Region {
		return curated.Errorf("playback: recording was made with the %s region. trying to playback with a region of %s", plb.Region, nes.Spec().ID)
	}

	if plb.CartHash != "" && nes.Cart.Hash != plb.CartHash {
		return curated.Errorf("playback: cartridge hash does not match the recording (%s)", plb.CartName)
	}

	if err := nes.Reset(); err != nil {
		return curated.Errorf("playback: %v", err)
	}

	plb.nes = nes
	plb.seqCt = 0
	plb.digest = digest.NewVideo()

	nes.AddVideoRenderer(plb.digest)
	nes.SetInputSource(plb)

	return nil
}

// Tick implements the output.InputSource interface.
func (plb *Playback) Tick(frame int, pads *controller.Pads) error {
	for plb.seqCt < len(plb.sequence) {
		entry := plb.sequence[plb.seqCt]
		if entry.frame > frame {
			return nil
		}

		plb.seqCt++

		if entry.frame != frame || entry.hash != plb.digest.Hash() {
			return curated.Errorf(PlaybackError, entry.line, frame)
		}

		for i, s := range entry.pads {
			pads.Pad(i).Set(s)
		}
	}

	return nil
}
