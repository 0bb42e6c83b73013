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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/paths"
	"github.com/jetsetilly/gophernes/test"
)

func TestPaths(t *testing.T) {
	// make sure the base path is found in the current directory
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".gophernes", 0o700))

	test.ExpectEquality(t, paths.ResourcePath("foo/bar", "baz"), filepath.Join(".gophernes", "foo", "bar", "baz"))
	test.ExpectEquality(t, paths.ResourcePath("foo/bar", ""), filepath.Join(".gophernes", "foo", "bar"))
	test.ExpectEquality(t, paths.ResourcePath("", "baz"), filepath.Join(".gophernes", "baz"))
	test.ExpectEquality(t, paths.ResourcePath("", ""), ".gophernes")

	pth, err := paths.MkdirResourcePath("battery", "game.sav")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gophernes", "battery", "game.sav"))
	_, err = os.Stat(filepath.Join(".gophernes", "battery"))
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("recording", "/roms/Super Game.nes")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "recording_Super Game_"))

	fn = paths.UniqueFilename("wav", "")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "wav_"))
	test.ExpectEquality(t, len(fn), len("wav_YYYYMMDD_HHMMSS"))
}
