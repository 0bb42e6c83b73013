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

// Package battery stores the battery backed RAM of cartridges on disk. The
// Store type implements the output.BatteryStore interface.
package battery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/paths"
)

// the directory in the resource path where battery files are kept
const batteryPath = "battery"

// the file extension for battery files
const batteryExt = ".sav"

// Store saves and loads battery files in a single directory.
type Store struct {
	dir string
}

// NewStore is the preferred method of initialisation for the Store type. If
// the dir argument is empty the battery directory in the resource path is
// used.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = paths.ResourcePath(batteryPath)
	}
	return &Store{dir: dir}
}

func (s *Store) filename(name string) string {
	return filepath.Join(s.dir, name+batteryExt)
}

// LoadBattery implements the output.BatteryStore interface. A missing file is
// not an error. In that case a nil slice is returned.
func (s *Store) LoadBattery(name string) ([]byte, error) {
	fn := s.filename(name)

	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, curated.Errorf("battery: %v", err)
	}

	logger.Logf(logger.Allow, "battery", "loaded from %s", fn)

	return data, nil
}

// SaveBattery implements the output.BatteryStore interface.
func (s *Store) SaveBattery(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return curated.Errorf("battery: %v", err)
	}

	fn := s.filename(name)
	if err := os.WriteFile(fn, data, 0o600); err != nil {
		return curated.Errorf("battery: %v", err)
	}

	logger.Logf(logger.Allow, "battery", "saved to %s", fn)

	return nil
}
