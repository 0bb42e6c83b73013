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
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
)

// Video is an implementation of output.VideoRenderer. Every frame is added to
// a chained sha1 digest.
type Video struct {
	digest [sha1.Size]byte
	pixels []byte

	// the sum of every pixel value in the most recent frame
	checksum uint64

	frames int
}

// the size of each pixel in the hashed data. the pixels are hashed as the
// sixteen bit values produced by the PPU
const pixelDepth = 2

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

func (dig *Video) String() string {
	return dig.Hash()
}

// Hash implements the digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.checksum = 0
	dig.frames = 0
}

// Frames returns the number of frames added to the digest.
func (dig *Video) Frames() int {
	return dig.frames
}

// Checksum returns the sum of every pixel value in the most recent frame.
func (dig *Video) Checksum() uint64 {
	return dig.checksum
}

// NewFrame implements the output.VideoRenderer interface.
func (dig *Video) NewFrame(frame []uint16, _ *palette.Palette) error {
	// room for the previous digest at the head of the data
	l := len(dig.digest) + len(frame)*pixelDepth
	if len(dig.pixels) != l {
		dig.pixels = make([]byte, l)
	}

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	n := copy(dig.pixels, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf("digest: video: digest error during new frame")
	}

	dig.checksum = 0
	for i, px := range frame {
		dig.pixels[n+i*pixelDepth] = byte(px)
		dig.pixels[n+i*pixelDepth+1] = byte(px >> 8)
		dig.checksum += uint64(px)
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++

	return nil
}

// EndRendering implements the output.VideoRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
