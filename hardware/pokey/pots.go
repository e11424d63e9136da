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

package pokey

// the value of an unconnected potentiometer
const potUnconnected = 228

type potState struct {
	count [8]uint8
	max   [8]uint8

	// bit is cleared when the count for the potentiometer reaches the maximum
	allPot uint8

	// fast mode counts once per cycle rather than once per scanline
	fast bool

	// cycles accumulated in fast mode
	carry int
}

func (p *potState) reset() {
	for i := range p.count {
		p.count[i] = potUnconnected
		p.max[i] = potUnconnected
	}
	p.allPot = 0x00
	p.fast = false
	p.carry = 0
}

// increment all counters by n, stopping at the maximum
func (p *potState) advance(n int) {
	for i := range p.count {
		v := int(p.count[i]) + n
		if v >= int(p.max[i]) {
			p.allPot &^= 1 << i
			p.count[i] = p.max[i]
		} else {
			p.count[i] = uint8(v)
		}
	}
}

// write to the POTGO register. the counters are reset and the maximum values
// are sampled from the paddles. only the first chip is connected to the
// paddles
func (pk *Pokey) potGo() {
	for i := range pk.pots.count {
		pk.pots.count[i] = 0
		if pk.paddles != nil && pk.unit == 0 {
			pk.pots.max[i] = pk.paddles.Pot(i)
		} else {
			pk.pots.max[i] = potUnconnected
		}
	}
	pk.pots.allPot = 0xff
	pk.pots.fast = pk.skctl&0x04 == 0x04
	pk.pots.carry = 0
}

// stepPots advances the counters by the number of cycles. in slow mode the
// counters advance once per scanline, which is handled by stepScanline()
func (pk *Pokey) stepPots(cycles int) {
	if pk.pots.fast {
		pk.pots.advance(cycles)
	}
}
