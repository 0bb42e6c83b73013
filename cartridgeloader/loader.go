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

package cartridgeloader

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
)

// FileExtensions is the list of file extensions that are recognised by the
// cartridgeloader package.
var FileExtensions = [...]string{".NES", ".ZIP"}

// Loader is used to specify the cartridge image to use when creating the
// emulation.
type Loader struct {
	// filename of cartridge to load. can be a URL with a http or https scheme
	Filename string

	// expected hash of the loaded cartridge. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will not reload
	// the data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
	}
}

// NewLoaderFromData creates a Loader for data that is already in memory. The
// name is used as the Filename and need not refer to a real file.
func NewLoaderFromData(name string, data []byte) Loader {
	return Loader{
		Filename: name,
		Data:     data,
		Hash:     fmt.Sprintf("%x", sha1.Sum(data)),
	}
}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	s := filepath.Base(cl.Filename)
	return strings.TrimSuffix(s, filepath.Ext(s))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data. Filenames with a http or https scheme are fetched
// over the network. Files with a .zip extension are opened and the first
// file inside with a .nes extension is used.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(cl.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	var data []byte
	var err error

	switch scheme {
	case "http", "https":
		data, err = loadHTTP(cl.Filename)
	case "file":
		data, err = os.ReadFile(cl.Filename)
	default:
		// single letter schemes are windows drive letters
		if len(scheme) == 1 {
			data, err = os.ReadFile(cl.Filename)
		} else {
			err = fmt.Errorf("unsupported URL scheme (%s)", scheme)
		}
	}
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}

	if strings.ToUpper(filepath.Ext(cl.Filename)) == ".ZIP" {
		data, err = unzip(data)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("cartridgeloader: %v", "unexpected hash value")
	}

	cl.Hash = hash
	cl.Data = data

	return nil
}

func loadHTTP(filename string) ([]byte, error) {
	resp, err := http.Get(filename)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func unzip(data []byte) ([]byte, error) {
	z, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for _, f := range z.File {
		if strings.ToUpper(filepath.Ext(f.Name)) != ".NES" {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}

	return nil, fmt.Errorf("no .nes file in archive")
}
