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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
)

// the length of the buffer used to compute the digest. the first part of the
// buffer is reserved for the previous digest value
const audioBufferLength = 1024 * sha1.Size

// the position in the buffer where new sample data is placed
const audioBufferStart = sha1.Size

// Audio is an implementation of output.AudioMixer. Samples are buffered and
// added to a chained sha1 digest as the buffer fills.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{}
	dig.buffer = make([]uint8, audioBufferLength)
	dig.bufferCt = audioBufferStart
	return dig
}

func (dig *Audio) String() string {
	return dig.Hash()
}

// Hash implements the digest.Digest interface. Samples that have not yet
// been flushed are not included.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Audio) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.bufferCt = audioBufferStart
}

// SetAudio implements the output.AudioMixer interface.
func (dig *Audio) SetAudio(samples []int16) error {
	for _, s := range samples {
		dig.buffer[dig.bufferCt] = uint8(s)
		dig.buffer[dig.bufferCt+1] = uint8(s >> 8)
		dig.bufferCt += 2

		if dig.bufferCt >= audioBufferLength {
			if err := dig.flush(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (dig *Audio) flush() error {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	n := copy(dig.buffer, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf("digest: audio: digest error while flushing audio stream")
	}
	dig.bufferCt = audioBufferStart
	return nil
}

// EndMixing implements the output.AudioMixer interface. Any buffered samples
// are added to the digest.
func (dig *Audio) EndMixing() error {
	if dig.bufferCt > audioBufferStart {
		return dig.flush()
	}
	return nil
}
