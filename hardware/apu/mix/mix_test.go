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

package mix_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/apu/mix"
	"github.com/jetsetilly/gophernes/test"
)

func TestSilence(t *testing.T) {
	v := mix.Mono(0, 0, 0, 0, 0)
	test.ExpectEquality(t, v, 0.0)
	test.ExpectEquality(t, mix.PCM16(v), 0)
	test.ExpectEquality(t, mix.PCM8(v), 0)
}

func TestTables(t *testing.T) {
	test.ExpectApproximate(t, float64(mix.Mono(15, 0, 0, 0, 0)), 95.52/(8128.0/15+100), 0.001)
	test.ExpectApproximate(t, float64(mix.Mono(0, 0, 15, 0, 0)), 163.67/(24329.0/45+100), 0.001)
	test.ExpectApproximate(t, float64(mix.Mono(0, 0, 0, 15, 0)), 163.67/(24329.0/30+100), 0.001)
	test.ExpectApproximate(t, float64(mix.Mono(0, 0, 0, 0, 127)), 163.67/(24329.0/127+100), 0.001)

	// the pulse channels share a table
	test.ExpectEquality(t, mix.Mono(10, 0, 0, 0, 0), mix.Mono(0, 10, 0, 0, 0))
	test.ExpectEquality(t, mix.Mono(5, 5, 0, 0, 0), mix.Mono(0, 10, 0, 0, 0))

	// maximum output
	m := mix.Mono(15, 15, 15, 15, 127)
	test.ExpectSuccess(t, m <= 1.0)
	test.ExpectSuccess(t, mix.PCM16(m) > 0x7000)
}

func TestUnipolar(t *testing.T) {
	test.ExpectEquality(t, mix.PCM16(1.0), 0x7fff)
	test.ExpectEquality(t, mix.PCM8(1.0), 0x7f)

	// every possible mix converts to a sample that is not negative
	for p := uint8(0); p < 16; p++ {
		for tri := uint8(0); tri < 16; tri++ {
			for d := uint8(0); d < 128; d += 7 {
				v := mix.Mono(p, p, tri, tri, d)
				if !test.ExpectSuccess(t, mix.PCM16(v) >= 0, p, tri, d) {
					return
				}
				if !test.ExpectSuccess(t, mix.PCM8(v) >= 0, p, tri, d) {
					return
				}
			}
		}
	}
}
