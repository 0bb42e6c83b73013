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

package performance

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/clocks"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/cartridgetest"
	"github.com/jetsetilly/gophernes/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := ParseProfileString("cpu,mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, ProfileCPU|ProfileMem)

	p, err = ParseProfileString("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, ProfileNone)

	p, err = ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, ProfileCPU|ProfileMem|ProfileTrace)

	_, err = ParseProfileString("cpu,gpu")
	test.ExpectFailure(t, err)
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := CalcFPS(clocks.SpecNTSC, 601, 10)
	test.ExpectApproximate(t, fps, 60.1, 0.0001)
	test.ExpectApproximate(t, accuracy, 100.0, 0.001)
}

func TestCheck(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true
	nes, err := hardware.NewNES(env, cartridgetest.NOPLoop().Loader("test.nes"))
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, check(w, ProfileNone, nes, 10*time.Millisecond, 50*time.Millisecond))
	test.ExpectSuccess(t, strings.Contains(w.String(), "fps"))
	test.ExpectSuccess(t, nes.FrameNum() > 0)
}
