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

package mix

// LevelShift removes the DC component from the output. A running sum of the
// shifted output nudges the shift up or down by one unit whenever the sum
// passes the filter constant, or whenever a single value would clip.
type LevelShift struct {
	// the filter constant. a value of zero disables the level shift
	Constant int32

	shift   int32
	average int32
}

// NewLevelShift returns a level shift in the reset state.
func NewLevelShift(constant int) LevelShift {
	return LevelShift{
		Constant: int32(constant),
		shift:    128,
	}
}

// Reset the shift to its initial value.
func (ls *LevelShift) Reset() {
	ls.shift = 128
	ls.average = 0
}

// Shift returns the current level shift.
func (ls *LevelShift) Shift() int32 {
	return ls.shift
}

// Apply the level shift to the mapped value and return the signed sample.
func (ls *LevelShift) Apply(val int32) int8 {
	if ls.Constant == 0 {
		return int8(max(min(val, 127), -128))
	}

	val -= ls.shift
	ls.average += val

	if val > 127 || ls.average > ls.Constant {
		if ls.shift < 127 {
			ls.shift++
		}
		ls.average = 0
	}
	if val < -128 || ls.average < -ls.Constant {
		if ls.shift > -128 {
			ls.shift--
		}
		ls.average = 0
	}

	return int8(max(min(val, 127), -128))
}
