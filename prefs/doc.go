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

// Package prefs facilitates the storage of preferential values. The Bool,
// Int, Float and String types hold live values that can be read from any
// goroutine. Generic is for values that are made up of more than one live
// value.
//
// Values are grouped with a Disk instance and saved to and loaded from a
// file with one "key :: value" entry per line.
//
//	dsk, err := prefs.NewDisk(fn)
//	var rate prefs.Int
//	err = dsk.Add("audio.rate", &rate)
//	err = dsk.Load(true)
//
// The command line stack allows values to be set for the duration of a
// single emulation without those values being written to disk by mistake.
// Values on the stack are consumed when they are applied by Load().
package prefs
