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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/hardware"
)

// sentinel error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the time given for the frame rate to settle before measurement starts
const leadTime = 2 * time.Second

// Check the performance of the emulator by running the emulation for the
// specified duration. The result is written to the output.
//
// Emulation will create a cpu, memory profile, a trace (or a combination of
// those) as defined by the Profile argument.
func Check(output io.Writer, profile Profile, nes *hardware.NES, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	return check(output, profile, nes, leadTime, dur)
}

func check(output io.Writer, profile Profile, nes *hardware.NES, lead time.Duration, dur time.Duration) error {
	startFrame := nes.FrameNum()

	runner := func() error {
		// the lead time puts false on the timerChan. the conclusion of the
		// measurement period puts true on the timerChan
		timerChan := make(chan bool, 1)

		time.AfterFunc(lead, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		return nes.Run(func() (govern.State, error) {
			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}
				startFrame = nes.FrameNum()
			default:
			}
			return govern.Running, nil
		})
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := nes.FrameNum() - startFrame
	fps, accuracy := CalcFPS(nes.Spec(), numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
