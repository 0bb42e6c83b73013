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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with:
//
//	fps := limiter.NewFPSLimiter(60.0988)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderImage()
//	}
package limiter

import (
	"time"
)

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	secondsPerFrame time.Duration
	next            time.Time
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{}
	lim.SetLimit(framesPerSecond)
	return lim
}

// SetLimit changes the limit at which the FpsLimiter waits. A value of zero or
// less means that Wait() never blocks.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) {
	if framesPerSecond <= 0 {
		lim.secondsPerFrame = 0
	} else {
		lim.secondsPerFrame = time.Duration(float64(time.Second) / framesPerSecond)
	}
	lim.next = time.Time{}
}

// Wait will block until the next trigger. If the caller has fallen more than
// one frame behind the schedule is reset rather than trying to catch up.
func (lim *FpsLimiter) Wait() {
	if lim.secondsPerFrame == 0 {
		return
	}

	now := time.Now()
	if lim.next.IsZero() || now.Sub(lim.next) > lim.secondsPerFrame {
		lim.next = now.Add(lim.secondsPerFrame)
		return
	}

	time.Sleep(lim.next.Sub(now))
	lim.next = lim.next.Add(lim.secondsPerFrame)
}
