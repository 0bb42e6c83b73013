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

package cartridgeloader_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/test"
)

var image = []byte{'N', 'E', 'S', 0x1a, 0x01, 0x01}

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "game.nes")
	test.DemandSuccess(t, os.WriteFile(fn, image, 0o600))

	cl := cartridgeloader.NewLoader(fn)
	test.ExpectFailure(t, cl.HasLoaded())
	test.DemandSuccess(t, cl.Load())
	test.ExpectSuccess(t, cl.HasLoaded())
	test.ExpectEquality(t, string(cl.Data), string(image))
	test.ExpectEquality(t, cl.ShortName(), "game")

	// the hash of the data loaded from file is the same as the hash of the
	// data loaded from memory
	mem := cartridgeloader.NewLoaderFromData("game.nes", image)
	test.ExpectEquality(t, cl.Hash, mem.Hash)

	// unexpected hash
	cl = cartridgeloader.NewLoader(fn)
	cl.Hash = "0000"
	test.ExpectFailure(t, cl.Load())

	cl = cartridgeloader.NewLoader(filepath.Join(t.TempDir(), "missing.nes"))
	test.ExpectFailure(t, cl.Load())
}

func TestZip(t *testing.T) {
	b := &bytes.Buffer{}
	z := zip.NewWriter(b)
	w, err := z.Create("readme.txt")
	test.DemandSuccess(t, err)
	w.Write([]byte("hello"))
	w, err = z.Create("game.NES")
	test.DemandSuccess(t, err)
	w.Write(image)
	test.DemandSuccess(t, z.Close())

	fn := filepath.Join(t.TempDir(), "game.zip")
	test.DemandSuccess(t, os.WriteFile(fn, b.Bytes(), 0o600))

	cl := cartridgeloader.NewLoader(fn)
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, string(cl.Data), string(image))
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/game.nes" {
			http.NotFound(w, r)
			return
		}
		w.Write(image)
	}))
	defer srv.Close()

	cl := cartridgeloader.NewLoader(srv.URL + "/game.nes")
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, string(cl.Data), string(image))

	cl = cartridgeloader.NewLoader(srv.URL + "/missing.nes")
	test.ExpectFailure(t, cl.Load())
}
