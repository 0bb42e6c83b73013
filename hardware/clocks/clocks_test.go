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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/clocks"
	"github.com/jetsetilly/gophernes/test"
)

func TestDividers(t *testing.T) {
	test.ExpectApproximate(t, float64(clocks.NTSC*1000000/clocks.NTSCCPUDivider), float64(clocks.NTSCCPU), 0.0001)
	test.ExpectApproximate(t, float64(clocks.PAL*1000000/clocks.PALCPUDivider), float64(clocks.PALCPU), 0.0001)

	// the ratio of dots to cycles matches the ratio of the dividers
	test.ExpectEquality(t, clocks.SpecNTSC.Dots*clocks.NTSCPPUDivider, clocks.SpecNTSC.Cycles*clocks.NTSCCPUDivider)
	test.ExpectEquality(t, clocks.SpecPAL.Dots*clocks.PALPPUDivider, clocks.SpecPAL.Cycles*clocks.PALCPUDivider)
}
