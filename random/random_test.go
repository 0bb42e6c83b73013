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

package random_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/random"
	"github.com/jetsetilly/gophernes/test"
)

type clock struct {
	cycles uint64
}

func (c *clock) CPUCycles() uint64 {
	return c.cycles
}

func TestRandom(t *testing.T) {
	clk := &clock{cycles: 29781}
	a := random.NewRandom(clk)
	b := random.NewRandom(clk)
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}

	a.Reset()
	b.Reset()
	ra := make([]uint8, 2048)
	rb := make([]uint8, 2048)
	a.Fill(ra)
	b.Fill(rb)
	for i := range ra {
		test.DemandEquality(t, ra[i], rb[i], i)
	}
}

func TestRange(t *testing.T) {
	r := random.NewRandom(nil)
	for i := 0; i < 1000; i++ {
		v := r.Intn(10)
		test.DemandSuccess(t, v >= 0 && v < 10)
	}
}
