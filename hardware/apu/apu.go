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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/apu/mix"
	"github.com/jetsetilly/gophernes/hardware/clocks"
	"github.com/jetsetilly/gophernes/logger"
)

// APU implements the audio processing unit of the 2A03.
type APU struct {
	env *environment.Environment

	pal bool

	pulse1   pulse
	pulse2   pulse
	triangle triangle
	noise    noise
	dmc      dmc

	frame frameSequencer

	// number of CPU cycles since reset. the APU cycle is half the CPU cycle
	cycles uint64

	sampler sampler
}

// NewAPU is the preferred method of initialisation for the APU type. The
// memory argument is used by the DMC to fetch sample data.
func NewAPU(env *environment.Environment, mem Memory) *APU {
	apu := &APU{
		env: env,
	}
	apu.Plumb(mem)
	apu.Reset()
	return apu
}

// Plumb a new memory implementation into the APU.
func (apu *APU) Plumb(mem Memory) {
	apu.dmc.mem = mem
}

func (apu *APU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("p1: %s  ", apu.pulse1.String()))
	s.WriteString(fmt.Sprintf("p2: %s  ", apu.pulse2.String()))
	s.WriteString(fmt.Sprintf("tr: len=%03d lin=%03d  ", apu.triangle.length.value, apu.triangle.linear))
	s.WriteString(fmt.Sprintf("ns: len=%03d  ", apu.noise.length.value))
	s.WriteString(fmt.Sprintf("dmc: lvl=%03d rem=%04d", apu.dmc.level, apu.dmc.remaining))
	return s.String()
}

// Reset the APU to its power on state. All channels are disabled.
func (apu *APU) Reset() {
	apu.pal = apu.env != nil && apu.env.Prefs.IsPAL()

	mem := apu.dmc.mem
	apu.pulse1 = pulse{onesComplement: true}
	apu.pulse2 = pulse{}
	apu.triangle = triangle{}
	apu.noise = noise{shift: 0x0001}
	apu.dmc = dmc{mem: mem, bufferEmpty: true, bits: 8}

	if apu.pal {
		apu.noise.periods = &noisePeriodPAL
		apu.dmc.rates = &dmcRatePAL
	} else {
		apu.noise.periods = &noisePeriodNTSC
		apu.dmc.rates = &dmcRateNTSC
	}
	apu.noise.period = apu.noise.periods[0]
	apu.dmc.rate = apu.dmc.rates[0]

	apu.frame = frameSequencer{}
	apu.frame.setMode(false, apu.pal)

	apu.cycles = 0

	rate := 0
	bits := 16
	if apu.env != nil {
		rate = apu.env.Prefs.AudioRate.Get().(int)
		bits = apu.env.Prefs.AudioBits.Get().(int)
	}
	spec := clocks.SpecNTSC
	if apu.pal {
		spec = clocks.SpecPAL
	}
	apu.sampler.reset(rate, bits, spec.CPU)

	logger.Logf(apu.env, "apu", "sample rate %dHz at %d bits", rate, bits)
}

// IsPAL returns true if the APU is using PAL timing.
func (apu *APU) IsPAL() bool {
	return apu.pal
}

// Cycles returns the number of APU cycles since reset. There is one APU cycle
// for every two CPU cycles.
func (apu *APU) Cycles() uint64 {
	return apu.cycles / 2
}

// IRQ returns the state of the APU IRQ output. The frame interrupt and the
// DMC interrupt share the line.
func (apu *APU) IRQ() bool {
	return apu.frame.irq || apu.dmc.irq
}

// StallCycles returns the number of cycles the CPU must be halted for while
// the DMC reads sample data. The count is cleared by this call.
func (apu *APU) StallCycles() int {
	n := apu.dmc.stall
	apu.dmc.stall = 0
	return n
}

// Step the APU by one CPU cycle.
func (apu *APU) Step() {
	apu.cycles++

	switch apu.frame.step(apu.pal) {
	case frameHalf:
		apu.quarterFrame()
		apu.halfFrame()
	case frameQuarter:
		apu.quarterFrame()
	}

	// the pulse channels are clocked every APU cycle
	if apu.cycles&0x01 == 0x00 {
		apu.pulse1.clockTimer()
		apu.pulse2.clockTimer()
	}
	apu.triangle.clockTimer()
	apu.noise.clockTimer()
	apu.dmc.clockTimer()

	if apu.sampler.enabled() {
		apu.sampler.push(apu.mix())
	}
}

func (apu *APU) quarterFrame() {
	apu.pulse1.envelope.clock()
	apu.pulse2.envelope.clock()
	apu.noise.envelope.clock()
	apu.triangle.clockLinear()
}

func (apu *APU) halfFrame() {
	apu.pulse1.length.clock()
	apu.pulse2.length.clock()
	apu.triangle.length.clock()
	apu.noise.length.clock()
	apu.pulse1.clockSweep()
	apu.pulse2.clockSweep()
}

func (apu *APU) mix() float32 {
	return mix.Mono(apu.pulse1.output(), apu.pulse2.output(), apu.triangle.output(), apu.noise.output(), apu.dmc.output())
}

// Samples returns the audio samples produced since the last call to
// ClearSamples(). The returned slice is the APU's own buffer.
func (apu *APU) Samples() []int16 {
	return apu.sampler.samples
}

// ClearSamples empties the sample buffer.
func (apu *APU) ClearSamples() {
	apu.sampler.samples = apu.sampler.samples[:0]
}
