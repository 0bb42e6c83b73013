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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is implemented by the emulation that the Random instance serves. The
// cycle count is used to make the random number sensitive to time within the
// emulation.
type Clock interface {
	CPUCycles() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clk Clock

	// the number of calls to Intn(). separates random numbers requested on
	// the same clock cycle
	count int64

	// use zero seed rather than the random base seed. this is only useful
	// for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// The Clock can be nil and attached later with Plumb().
func NewRandom(clk Clock) *Random {
	return &Random{
		clk: clk,
	}
}

// Plumb a new clock into the random number generator.
func (rnd *Random) Plumb(clk Clock) {
	rnd.clk = clk
}

func (rnd *Random) rand() *rand.Rand {
	seed := rnd.count
	rnd.count++
	if rnd.clk != nil {
		seed += int64(rnd.clk.CPUCycles()) << 16
	}
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Intn returns a random number in the range 0 to n-1.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Fill the slice with random bytes.
func (rnd *Random) Fill(b []uint8) {
	r := rnd.rand()
	for i := range b {
		b[i] = uint8(r.Intn(256))
	}
}

// Reset the call counter. Two instances with the ZeroSeed flag set and the
// same clock will produce the same sequence after a Reset().
func (rnd *Random) Reset() {
	rnd.count = 0
}
