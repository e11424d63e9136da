// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package resources contains functions to prepare paths for PokeyPlay
// resources: the preferences file and any files written by the capture and
// render commands when a relative name is not given.
//
// For "release" builds the correct path is rooted in the user's
// configuration directory. On Linux systems this is something like:
//
//	/home/user/.config/pokeyplay/
//
// For non-"release" builds, the correct path is rooted in the current working
// directory:
//
//	.pokeyplay
//
// The package does this because during development it is more convenient to
// have the config directory close to hand. For release binaries however, the
// config directory should be somewhere the end-user expects.
//
// # portable.txt
//
// An exception to the above rules is when an empty file named 'portable.txt' is
// in the same directory as the PokeyPlay program binary. When the file exists
// the resources are saved in a directory named 'PokeyPlay_UserData' in the
// same directory as the program binary.
package resources
