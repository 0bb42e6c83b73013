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

// Package regression facilitates the regression testing of emulation code. By
// adding test results to a database, the tests can be rerun automatically and
// checked for consistency.
//
// Currently, two main types of test are supported. First the video
// regression. This test runs the emulation for a set number of frames,
// generating a digest of the video output, the audio output or both. The
// digests are compared with those generated the last time the test was run.
//
// The second test is the playback regression. This test plays back a
// recording made with the recorder package. The recording contains a digest
// of the video output for every frame where input changes and the test fails
// if the emulation drifts from the recording.
//
// The video regression is more useful for test ROMs that produce their output
// without user input. The playback type is more useful for real world ROMs
// (ie. games).
//
// The database and the playback scripts are stored in the resource path (see
// the paths package).
package regression
