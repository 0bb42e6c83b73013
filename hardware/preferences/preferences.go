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

package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/paths"
	"github.com/jetsetilly/gophernes/prefs"
)

// DefaultPrefsFile is the name of the preferences file in the resource path.
const DefaultPrefsFile = "preferences"

// Preferences defines and collates all the preference values used by the
// emulated hardware.
type Preferences struct {
	// nil if the preferences are volatile
	dsk *prefs.Disk

	// the timing of the console. either "NTSC" or "PAL"
	Region prefs.String

	// the limit of eight sprites per scanline. with the limit disabled every
	// sprite in range is drawn
	SpriteLimit prefs.Bool

	// the diagonal OAM scan that occurs once eight sprites have been found
	// for a scanline. if false the overflow flag is set correctly
	SpriteOverflowBug prefs.Bool

	// audio output sample rate and bit depth. a rate of zero means that no
	// samples are produced
	AudioRate prefs.Int
	AudioBits prefs.Int

	// initialise RAM and registers to an unknown state at power on
	RandomState prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The values are loaded from the prefs file in the resource
// path.
func NewPreferences() (*Preferences, error) {
	p := newPreferences()

	var err error
	p.dsk, err = prefs.NewDisk(paths.ResourcePath(DefaultPrefsFile))
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	for k, v := range map[string]prefs.Pref{
		"nes.region":            &p.Region,
		"nes.spritelimit":       &p.SpriteLimit,
		"nes.spriteoverflowbug": &p.SpriteOverflowBug,
		"audio.rate":            &p.AudioRate,
		"audio.bits":            &p.AudioBits,
		"nes.randomstate":       &p.RandomState,
	} {
		if err := p.dsk.Add(k, v); err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	err = p.dsk.Load(false)
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

// NewVolatilePreferences creates a Preferences instance with default values
// that is never loaded from or saved to disk. Values on the command line stack
// are not applied.
func NewVolatilePreferences() *Preferences {
	return newPreferences()
}

func newPreferences() *Preferences {
	p := &Preferences{}

	p.Region.SetHookPre(func(v prefs.Value) error {
		switch strings.ToUpper(v.(string)) {
		case "NTSC", "PAL":
			return nil
		}
		return fmt.Errorf("preferences: unknown region (%v)", v)
	})
	p.AudioBits.SetHookPre(func(v prefs.Value) error {
		switch v.(int) {
		case 8, 16:
			return nil
		}
		return fmt.Errorf("preferences: audio bits must be 8 or 16 (%v)", v)
	})
	p.AudioRate.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("preferences: audio rate cannot be negative (%v)", v)
		}
		return nil
	})

	p.SetDefaults()

	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.Region.Set("NTSC")
	_ = p.SpriteLimit.Set(true)
	_ = p.SpriteOverflowBug.Set(true)
	_ = p.AudioRate.Set(44100)
	_ = p.AudioBits.Set(16)
	_ = p.RandomState.Set(false)
}

// IsPAL returns true if the Region preference is PAL.
func (p *Preferences) IsPAL() bool {
	return strings.ToUpper(p.Region.String()) == "PAL"
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
