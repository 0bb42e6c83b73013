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

// Package curated is a helper package for the plain Go language error type.
// Errors created with Errorf() carry the pattern they were created with and
// that pattern is what identifies the error.
//
// Packages that produce errors that the caller might want to react to export
// the pattern as a string constant. For example, the cartridge package
// exports:
//
//	const UnsupportedMapper = "cartridge: unsupported mapper: %d"
//
// and a caller can test for it with:
//
//	if curated.Is(err, cartridge.UnsupportedMapper) {
//		...
//	}
//
// Has() is similar to Is() but will search the entire chain of wrapped
// errors. Errors are wrapped by passing them as a value to Errorf():
//
//	err = curated.Errorf("nes: %v", err)
//
// IsAny() answers whether the error was created by curated.Errorf() at all.
// We can think of curated errors as 'expected' and uncurated errors as
// 'unexpected'.
//
// The Error() implementation normalises the message so that adjacent
// duplicate parts are removed. This means that a package can prefix an error
// with its own name without worrying about whether the error it is wrapping
// was already prefixed in the same way.
package curated
