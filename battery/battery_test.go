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

package battery_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophernes/battery"
	"github.com/jetsetilly/gophernes/test"
)

func TestStore(t *testing.T) {
	s := battery.NewStore(filepath.Join(t.TempDir(), "battery"))

	d, err := s.LoadBattery("zelda")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(d), 0)

	data := []byte{1, 2, 3, 4}
	test.DemandSuccess(t, s.SaveBattery("zelda", data))

	d, err = s.LoadBattery("zelda")
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(d), len(data))
	for i := range d {
		test.ExpectEquality(t, d[i], data[i])
	}
}
