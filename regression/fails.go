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
	"io/fs"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/jetsetilly/gophernes/paths"
)

func saveFails(keys []string) error {
	sort.Strings(keys)
	keys = slices.Compact(keys)

	pth, err := paths.MkdirResourcePath(regressionPath, regressionFails)
	if err != nil {
		return err
	}

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(k)
		s.WriteString("\n")
	}

	return os.WriteFile(pth, []byte(s.String()), 0o600)
}

func loadFails() ([]string, error) {
	b, err := os.ReadFile(paths.ResourcePath(regressionPath, regressionFails))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return []string{}, err
	}

	keys := strings.Split(string(b), "\n")
	keys = slices.DeleteFunc(keys, func(s string) bool {
		return len(strings.TrimSpace(s)) == 0
	})

	return keys, nil
}

var errNoPreviousFails = errors.New("no previous fails")

// replace the special key FAILS with the list of keys that failed last time
// the regression tests were run. the returned list is sorted and contains
// no duplicates
func addFailsToKeys(keys []string) ([]string, error) {
	keys = slices.Clone(keys)

	n := slices.IndexFunc(keys, func(s string) bool {
		return strings.ToUpper(s) == "FAILS"
	})
	if n >= 0 {
		keys = slices.Delete(keys, n, n+1)

		prevFails, err := loadFails()
		if err != nil {
			return keys, err
		}

		if len(prevFails) == 0 && len(keys) == 0 {
			return keys, errNoPreviousFails
		}

		keys = append(keys, prevFails...)
	}

	// keys with leading zeros must compare equal with keys without
	for i := range keys {
		keys[i] = strings.TrimLeft(keys[i], "0")
		if keys[i] == "" {
			keys[i] = "0"
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	keys = slices.Compact(keys)

	return keys, nil
}
