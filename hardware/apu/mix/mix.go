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

// Package mix combines the output of the five APU channels into a single
// value. The mix is non-linear and is implemented with the two lookup tables
// described on the NESDev wiki:
//
// https://www.nesdev.org/wiki/APU_Mixer
//
// The pulse channels share one table and the triangle, noise and DMC channels
// share the other.
package mix

var pulse [31]float32
var tnd [203]float32

func init() {
	for n := 1; n < len(pulse); n++ {
		pulse[n] = float32(95.52 / (8128.0/float64(n) + 100.0))
	}
	for n := 1; n < len(tnd); n++ {
		tnd[n] = float32(163.67 / (24329.0/float64(n) + 100.0))
	}
}

// Mono returns the mixed output of the channels in the range 0.0 to 1.0. The
// pulse and noise values are in the range 0 to 15, the triangle value in the
// range 0 to 15 and the DMC value in the range 0 to 127.
func Mono(pulse1 uint8, pulse2 uint8, triangle uint8, noise uint8, dmc uint8) float32 {
	p := int(pulse1&0x0f) + int(pulse2&0x0f)
	t := 3*int(triangle&0x0f) + 2*int(noise&0x0f) + int(dmc&0x7f)
	v := pulse[p] + tnd[t]
	if v > 1.0 {
		return 1.0
	}
	return v
}

// PCM16 converts a mixed value to a signed 16 bit sample.
//
// The conversion is unipolar. The range 0.0 to 1.0 maps to 0 to 0x7fff so
// that a silent console produces samples of zero and no sample is ever
// negative. The output therefore carries a DC offset whenever a channel is
// sounding, as the output of the console does before the high-pass filters
// of the audio circuit. Consumers that need a centred signal must remove the
// offset themselves.
func PCM16(v float32) int16 {
	return int16(v * 0x7fff)
}

// PCM8 converts a mixed value to a signed 8 bit sample. The sample is returned
// as an int16 for convenience. The conversion is unipolar in the same way as
// PCM16(), with a range of 0 to 0x7f.
func PCM8(v float32) int16 {
	return int16(v * 0x7f)
}
