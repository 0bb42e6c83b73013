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

// Package output defines the interfaces through which the NES emulation
// communicates with the outside world. The emulation has no knowledge of how
// frames are displayed, how sound is played or where controller input comes
// from.
//
// The outer packages of the project implement these interfaces. For example,
// the sdlplay package implements VideoRenderer and AudioMixer, the terminal
// package implements InputSource and the wavwriter package implements
// AudioMixer.
package output
