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

// Package test bundles helper functions that remove common boilerplate from
// tests written for the standard go test harness.
//
// The Expect functions report a failure with t.Errorf() and return false so
// that the caller can decide whether to continue. The Demand functions are
// equivalent but end the test immediately with t.Fatalf().
//
// ExpectSuccess() and ExpectFailure() interpret their argument according to
// type. A bool is a success if it is true and an error is a success if it is
// nil. An untyped nil is also considered a success. This may not be how we
// want to interpret nil in all situations but because of how errors usually
// work we need to interpret nil in this way.
//
// All Expect and Demand functions accept optional tags which are prefixed to
// the failure message. This is useful when testing inside a loop.
//
// The writer types implement io.Writer and are used to capture output.
// CompareWriter keeps everything. CappedWriter keeps everything up to a fixed
// size. RingWriter keeps only the most recent output.
package test
