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

// Package clocks defines the constant values that define the speed of the
// master clock in the NES console and the dividers that derive the CPU, PPU
// and APU clocks from it.
//
// Values taken from:
// https://www.nesdev.org/wiki/Cycle_reference_chart
package clocks

// Master clock frequencies in MHz.
const (
	NTSC = 21.477272
	PAL  = 26.601712
)

// Dividers of the master clock.
const (
	NTSCCPUDivider = 12
	NTSCPPUDivider = 4
	PALCPUDivider  = 16
	PALPPUDivider  = 5
)

// CPU clock frequencies in Hz.
const (
	NTSCCPU = 1789773
	PALCPU  = 1662607
)

// Frame rates.
const (
	NTSCFrameRate = 60.0988
	PALFrameRate  = 50.0070
)

// Spec is the clock information for a region.
type Spec struct {
	ID string

	// CPU frequency in Hz
	CPU int

	// the number of PPU dots for every n CPU cycles. for NTSC this is 3 dots
	// for every 1 cycle. for PAL it is 16 dots for every 5 cycles
	Dots   int
	Cycles int

	FrameRate float64
}

// The supported region specifications.
var (
	SpecNTSC = Spec{ID: "NTSC", CPU: NTSCCPU, Dots: 3, Cycles: 1, FrameRate: NTSCFrameRate}
	SpecPAL  = Spec{ID: "PAL", CPU: PALCPU, Dots: 16, Cycles: 5, FrameRate: PALFrameRate}
)

// Counters holds the cycle counts of the three clocked units of the console.
// Every count is measured from the last reset.
type Counters struct {
	CPU uint64
	PPU uint64
	APU uint64
}
