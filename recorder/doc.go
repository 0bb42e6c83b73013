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

// Package recorder handles the recording and playback of controller input.
//
// A Recorder wraps another output.InputSource and writes the state of both
// controllers to a transcript every time the state changes. Alongside the
// input state the transcript records the video digest at that point in the
// emulation. A Playback reads the transcript and sets the controller states
// at the correct frame. If the video digest at the point of playback does
// not match the recorded value then the PlaybackError is returned.
//
// Recording and playback both attach a digest.Video to the emulation.
package recorder
