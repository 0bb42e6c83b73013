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

package apu

import "github.com/jetsetilly/gophernes/hardware/apu/mix"

// sampler converts the APU output, which changes every CPU cycle, into
// samples at the output sample rate. the accumulator adds the sample rate on
// every CPU cycle and a sample is produced every time it passes the CPU clock
// rate. samples are the average of the output since the previous sample.
type sampler struct {
	rate  int
	bits  int
	clock int

	acc int

	sum   float32
	count int

	samples []int16
}

func (s *sampler) reset(rate int, bits int, clock int) {
	s.rate = rate
	s.bits = bits
	s.clock = clock
	s.acc = 0
	s.sum = 0
	s.count = 0
	if s.samples == nil {
		s.samples = make([]int16, 0, 2048)
	}
	s.samples = s.samples[:0]
}

func (s *sampler) enabled() bool {
	return s.rate > 0
}

// add the output for one CPU cycle
func (s *sampler) push(v float32) {
	s.sum += v
	s.count++

	s.acc += s.rate
	if s.acc < s.clock {
		return
	}
	s.acc -= s.clock

	v = s.sum / float32(s.count)
	s.sum = 0
	s.count = 0

	if s.bits == 8 {
		s.samples = append(s.samples, mix.PCM8(v))
	} else {
		s.samples = append(s.samples, mix.PCM16(v))
	}
}
