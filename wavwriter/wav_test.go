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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophernes/hardware/output"
	"github.com/jetsetilly/gophernes/test"
	"github.com/jetsetilly/gophernes/wavwriter"
)

func TestBadSpec(t *testing.T) {
	_, err := wavwriter.New("x.wav", output.AudioSpec{Rate: 0, Bits: 16})
	test.ExpectFailure(t, err)
	_, err = wavwriter.New("x.wav", output.AudioSpec{Rate: 44100, Bits: 12})
	test.ExpectFailure(t, err)
}

func TestWrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.wav")

	aw, err := wavwriter.New(fn, output.AudioSpec{Rate: 22050, Bits: 16})
	test.DemandSuccess(t, err)

	samples := []int16{0, 100, -100, 32767, -32768}
	test.ExpectSuccess(t, aw.SetAudio(samples))
	test.ExpectSuccess(t, aw.SetAudio(samples))
	test.ExpectEquality(t, aw.NumSamples(), 10)
	test.DemandSuccess(t, aw.EndMixing())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(22050))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))
	test.ExpectEquality(t, dec.NumChans, uint16(1))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), 10)
	for i, v := range buf.Data {
		test.ExpectEquality(t, v, int(samples[i%len(samples)]), i)
	}
}
