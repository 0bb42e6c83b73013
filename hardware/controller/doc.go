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

// Package controller implements the two controller ports of the NES with a
// standard controller plugged into each.
//
// Button state can be set directly, through the Pad type, or by pushing
// events with Pads.PushEvent(). Pushed events are safe to use from a
// different goroutine and are applied when the emulation calls
// HandlePushedEvents().
package controller
