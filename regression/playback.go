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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/database"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/recorder"
)

const playbackEntryID = "playback"

const (
	playbackFieldScript int = iota
	playbackFieldNotes
	numPlaybackFields
)

// how often the progress of a playback is updated
const progressInterval = time.Second

// PlaybackRegression represents a regression type that processes a recording
// made with the recorder package. playback regressions can take a while to
// run because by their nature they extend over many frames - many more than
// is typical with the VideoRegression type.
type PlaybackRegression struct {
	Script string
	Notes  string
}

func deserialisePlaybackEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &PlaybackRegression{}

	// basic sanity check
	if len(fields) > numPlaybackFields {
		return nil, curated.Errorf("playback: too many fields")
	}
	if len(fields) < numPlaybackFields {
		return nil, curated.Errorf("playback: too few fields")
	}

	// string fields need no conversion
	reg.Script = fields[playbackFieldScript]
	reg.Notes = fields[playbackFieldNotes]

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg PlaybackRegression) ID() string {
	return playbackEntryID
}

// String implements the database.Entry interface.
func (reg PlaybackRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s", reg.ID(), filepath.Base(reg.Script)))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *PlaybackRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Script,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface. The script belonging to
// the regression is deleted.
func (reg PlaybackRegression) CleanUp() error {
	err := os.Remove(reg.Script)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// regress implements the regression.Regressor interface.
func (reg *PlaybackRegression) regress(newRegression bool, output io.Writer, msg string) (bool, string, error) {
	_, _ = io.WriteString(output, msg)

	plb, err := recorder.NewPlayback(reg.Script)
	if err != nil {
		return false, "", curated.Errorf("playback: %v", err)
	}

	nes, err := newNES(plb.Region, cartridgeloader.NewLoader(plb.CartName))
	if err != nil {
		return false, "", curated.Errorf("playback: %v", err)
	}

	err = plb.AttachToNES(nes)
	if err != nil {
		return false, "", curated.Errorf("playback: %v", err)
	}

	progress := time.Now()

	err = nes.Run(func() (govern.State, error) {
		if plb.EndFrame() {
			return govern.Ending, nil
		}
		if time.Since(progress) >= progressInterval {
			progress = time.Now()
			_, _ = fmt.Fprintf(output, "\r%s [%s]", msg, plb)
		}
		return govern.Running, nil
	})

	if err != nil {
		// a playback error means that the emulation has drifted from the
		// recording. this is a failure of the test rather than an error
		if curated.Has(err, recorder.PlaybackError) {
			return false, err.Error(), nil
		}
		return false, "", curated.Errorf("playback: %v", err)
	}

	// if this is a new regression we want to store the script in the
	// regression scripts directory
	if newRegression {
		newScript, err := uniqueFilename("playback", plb.CartName)
		if err != nil {
			return false, "", curated.Errorf("playback: %v", err)
		}

		if err := copyFile(newScript, reg.Script); err != nil {
			return false, "", curated.Errorf("playback: error copying playback script: %v", err)
		}

		// update script name in regression type
		reg.Script = newScript
	}

	return true, "", nil
}

func copyFile(dst string, src string) (rerr error) {
	of, err := os.Open(src)
	if err != nil {
		return err
	}
	defer of.Close()

	nf, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if err := nf.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	_, err = io.Copy(nf, of)
	return err
}
