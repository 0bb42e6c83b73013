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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a method of handling program modes (and sub-modes)
// with a different set of flags for each mode.
//
// Arguments are given to the Modes type with NewArgs() and then parsed with
// Parse(). Flags are added before the call to Parse() in the same way as
// with the flag package.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PLAY")
//	p, err := md.Parse()
//
// If sub-modes were added then, after Parse(), the Mode() function returns
// the mode that was selected by the first non-flag argument. If the first
// non-flag argument is not a sub-mode then the first sub-mode in the list is
// selected by default.
//
// NewMode() prepares the Modes type for another round of flags, for the
// arguments that follow the mode selector:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "number of frames to run for")
//		p, err := md.Parse()
//		...
//		run(md.GetArg(0), *frames)
//	}
//
// Sub-mode comparisons are case insensitive.
package modalflag
