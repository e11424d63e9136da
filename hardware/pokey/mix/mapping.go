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

// Package mix contains the final stages of the POKEY output path. The averaged
// channel level is passed through a gamma/volume mapping table and then an
// adaptive DC level shift before it is delivered as a signed 8bit sample.
package mix

import (
	"math"
)

// Default values for the mapping and the level shift
const (
	DefaultGamma          = 70
	DefaultVolume         = 100
	DefaultFilterConstant = 512
)

// Mapping converts an averaged channel level in the range 0 to 255 to a signed
// 8bit output level.
type Mapping [256]int8

// NewMapping creates the table for the gamma and volume values. Both values
// are percentages.
//
//	out = round(pow(in/255, gamma) * volume * 127) - 128
//
// The result is clamped to the signed 8bit range.
func NewMapping(gamma int, volume int) Mapping {
	var m Mapping

	g := float64(gamma) / 100.0
	v := float64(volume) / 100.0 * 127.0

	for i := range m {
		in := float64(i) / 255.0
		out := int(0.5+math.Pow(in, g)*v) - 128
		out = max(min(out, 127), -128)
		m[i] = int8(out)
	}

	return m
}

// Lookup returns the output level for the input level.
func (m *Mapping) Lookup(in uint8) int32 {
	return int32(m[in])
}
