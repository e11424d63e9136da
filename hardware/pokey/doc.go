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

// Package pokey implements the POKEY sound, serial and input chip. The chip
// has four audio channels, each a divide-by-N counter whose output flip-flop
// is gated by a set of polynomial counters. Channels can be linked in pairs to
// form 16bit counters and channels 2 and 3 can act as high-pass filters on
// channels 0 and 1.
//
// Sample generation is event driven. Rather than stepping the chip at the
// 1.79MHz clock rate, ComputeSamples() moves directly from one event to the
// next, where an event is either a channel counter running out or the next
// output sample being due.
//
// The derived state of the channels (the divisors, whether channels are
// linked, and whether a channel is muted) is recomputed by a single function
// whenever a register changes. See derive.go.
//
// The timers, the serial port and the potentiometers are advanced separately
// by the Step() function, which is driven by the CPU clock.
//
// Information about POKEY is taken from chapter 5 of the Altirra Hardware
// Reference Manual:
//
// https://www.virtualdub.org/downloads/Altirra%20Hardware%20Reference%20Manual.pdf
//
// References to this document in comments will be abbreviated to 'Altirra Reference'
//
// And the original POKEY document from Atari for additional clarity:
//
// http://visual6502.org/images/C012294_Pokey/pokey.pdf
//
// References in comments will be abbreviated to 'Atari POKEY'
package pokey
