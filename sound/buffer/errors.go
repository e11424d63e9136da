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

package buffer

import "fmt"

// InvariantError is the value of a panic raised when an audio buffer is found
// in an impossible state. It indicates a programming error and is never
// returned as an ordinary error.
type InvariantError struct {
	Op     string
	Detail string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("audio buffer: %s: %s", e.Op, e.Detail)
}

func invariant(op string, detail string) {
	panic(InvariantError{Op: op, Detail: detail})
}
