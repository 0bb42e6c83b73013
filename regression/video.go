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

package regression

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/database"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware"
)

const videoEntryID = "video"

const (
	videoFieldCartName int = iota
	videoFieldRegion
	videoFieldNumFrames
	videoFieldMode
	videoFieldVideoDigest
	videoFieldAudioDigest
	videoFieldNotes
	numVideoFields
)

// VideoRegression is the simplest regression type. It runs the emulation for
// a set number of frames and compares the digest of the output with the
// digest recorded when the regression was added.
type VideoRegression struct {
	CartFile    string
	Region      string
	NumFrames   int
	Mode        DigestMode
	VideoDigest string
	AudioDigest string
	Notes       string
}

func deserialiseVideoEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &VideoRegression{}

	// basic sanity check
	if len(fields) > numVideoFields {
		return nil, curated.Errorf("video: too many fields")
	}
	if len(fields) < numVideoFields {
		return nil, curated.Errorf("video: too few fields")
	}

	var err error

	// string fields need no conversion
	reg.CartFile = fields[videoFieldCartName]
	reg.Region = fields[videoFieldRegion]
	reg.VideoDigest = fields[videoFieldVideoDigest]
	reg.AudioDigest = fields[videoFieldAudioDigest]
	reg.Notes = fields[videoFieldNotes]

	reg.NumFrames, err = strconv.Atoi(fields[videoFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf("video: invalid numFrames field (%s)", fields[videoFieldNumFrames])
	}

	reg.Mode, err = ParseDigestMode(fields[videoFieldMode])
	if err != nil {
		return nil, curated.Errorf("video: %v", err)
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg VideoRegression) ID() string {
	return videoEntryID
}

// String implements the database.Entry interface.
func (reg VideoRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s [%s] frames=%d digest=%s",
		reg.ID(), cartridgeloader.NewLoader(reg.CartFile).ShortName(),
		reg.Region, reg.NumFrames, reg.Mode))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *VideoRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.CartFile,
		reg.Region,
		strconv.Itoa(reg.NumFrames),
		reg.Mode.String(),
		reg.VideoDigest,
		reg.AudioDigest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg VideoRegression) CleanUp() error {
	// no cleanup required for video regression type
	return nil
}

// regress implements the regression.Regressor interface.
func (reg *VideoRegression) regress(newRegression bool, output io.Writer, msg string) (bool, string, error) {
	_, _ = io.WriteString(output, msg)

	if !reg.Mode.video() && !reg.Mode.audio() {
		return false, "", curated.Errorf("video: undefined digest mode")
	}

	nes, err := newNES(reg.Region, cartridgeloader.NewLoader(reg.CartFile))
	if err != nil {
		return false, "", curated.Errorf("video: %v", err)
	}

	vid := digest.NewVideo()
	aud := digest.NewAudio()
	if reg.Mode.video() {
		nes.AddVideoRenderer(vid)
	}
	if reg.Mode.audio() {
		nes.AddAudioMixer(aud)
	}

	err = nes.RunForFrameCount(reg.NumFrames, nil)
	if err != nil {
		return false, "", curated.Errorf("video: %v", err)
	}

	// flushes any audio remaining in the digest buffer
	err = nes.End()
	if err != nil {
		return false, "", curated.Errorf("video: %v", err)
	}

	var videoDigest, audioDigest string
	if reg.Mode.video() {
		videoDigest = vid.Hash()
	}
	if reg.Mode.audio() {
		audioDigest = aud.Hash()
	}

	if newRegression {
		reg.VideoDigest = videoDigest
		reg.AudioDigest = audioDigest
		return true, "", nil
	}

	if videoDigest != reg.VideoDigest {
		return false, "video digest mismatch", nil
	}
	if audioDigest != reg.AudioDigest {
		return false, "audio digest mismatch", nil
	}

	return true, "", nil
}

// the emulation used by the regression types. the environment is normalised
// so that every run of the test starts from the same state
func newNES(region string, cartload cartridgeloader.Loader) (*hardware.NES, error) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true
	env.Normalise()

	if region != "" {
		if err := env.Prefs.Region.Set(region); err != nil {
			return nil, err
		}
	}

	return hardware.NewNES(env, cartload)
}
