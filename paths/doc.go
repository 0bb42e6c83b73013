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

// Package paths contains functions to prepare paths to emulator resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the path to the preferences
// file:
//
//	pth := paths.ResourcePath("preferences")
//
// If the base resource path ".gophernes" is present in the current directory
// then that is the base path that will be used. Otherwise the user's config
// directory, as returned by os.UserConfigDir(), is used. On a modern Linux
// system the path above would be:
//
//	/home/user/.config/gophernes/preferences
package paths
