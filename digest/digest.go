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

// Package digest contains implementations of the output.VideoRenderer and
// output.AudioMixer interfaces such that a cryptographic hash is produced.
// The hash can then be used to compare output from subsequent emulation
// executions. If a new hash differs from a previously recorded value then
// something has changed. This is the basis for regression tests and playback
// verification.
package digest

// Digest implementations return a cryptographic hash. How the hash is
// generated is the concern of the implementation.
type Digest interface {
	Hash() string
	ResetDigest()
}
