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

// Package clocks contains the clock frequencies of the host machine and the
// fixed dividers used by the POKEY to derive its reference clocks.
package clocks

const Mhz = 1000000

// the POKEY is clocked by the CPU clock. the figures are in Hz
const (
	NTSC = 1789773
	PAL  = 1773447

	// used before the TV standard has been decided
	Default = 1789790
)

// dividers from the CPU clock to the two reference clocks
const (
	// 1.79MHz / 28 = 64kHz
	Base64kHz = 28

	// 1.79MHz / 114 = 15.7kHz. this is also the number of CPU cycles in
	// a scanline
	Base15kHz = 114
)

// ScanlineCycles is the number of CPU cycles per scanline
const ScanlineCycles = Base15kHz

// PokeyFreqBase is the nominal rate of the scanline clock, used by the sound
// manager to convert cycles to samples
const PokeyFreqBase = 15700
