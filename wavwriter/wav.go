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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirety and written to disk
// when EndMixing() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/output"
	"github.com/jetsetilly/gophernes/logger"
)

// the WAVE format tag for uncompressed PCM data
const wavFormatPCM = 1

// WavWriter implements the output.AudioMixer interface.
type WavWriter struct {
	filename string
	spec     output.AudioSpec
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, spec output.AudioSpec) (*WavWriter, error) {
	if spec.Rate <= 0 {
		return nil, curated.Errorf("wavwriter: sample rate must be more than zero")
	}
	if spec.Bits != 8 && spec.Bits != 16 {
		return nil, curated.Errorf("wavwriter: unsupported bit depth (%d)", spec.Bits)
	}

	aw := &WavWriter{
		filename: filename,
		spec:     spec,
		buffer:   make([]int, 0),
	}

	return aw, nil
}

// SetAudio implements the output.AudioMixer interface.
func (aw *WavWriter) SetAudio(samples []int16) error {
	for _, s := range samples {
		v := int(s)

		// eight bit wav data is unsigned
		if aw.spec.Bits == 8 {
			v += 128
		}

		aw.buffer = append(aw.buffer, v)
	}

	return nil
}

// NumSamples returns the number of samples buffered so far.
func (aw *WavWriter) NumSamples() int {
	return len(aw.buffer)
}

// EndMixing implements the output.AudioMixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.spec.Rate, aw.spec.Bits, 1, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.spec.Rate,
		},
		Data:           aw.buffer,
		SourceBitDepth: aw.spec.Bits,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	// the encoder must be closed for the chunk sizes in the header to be set
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
