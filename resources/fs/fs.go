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

// Package fs is a thin layer over the os package for the file operations
// required by the resources package. The layer exists so that platforms
// without a usable filesystem can be given an alternative implementation.
package fs

import (
	"os"
)

// MkdirAll is a wrapper for os.MkdirAll(). An empty path is not an error.
func MkdirAll(path string, perm os.FileMode) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, perm)
}
