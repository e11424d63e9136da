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

import (
	"github.com/jetsetilly/pokeyplay/hardware/clocks"
)

// timer interrupt bits indexed by channel. channel 2 cannot generate an
// interrupt
var timerIRQ = [4]uint8{0x01, 0x02, 0x00, 0x04}

// generateIRQ signals the interrupt bits in IRQSTAT. the bits are in positive
// logic but IRQSTAT is active low
func (pk *Pokey) generateIRQ(bits uint8) {
	pk.irqstat &^= bits
	if pk.irqen&bits != 0 && pk.irq != nil {
		pk.irq.PullIRQ()
	}
}

// Step advances the timers, the serial port and the potentiometers by the
// number of CPU cycles. The audio counters are not affected. They are
// advanced by ComputeSamples().
func (pk *Pokey) Step(cycles int) {
	if cycles <= 0 {
		return
	}

	if !pk.initState {
		pk.random.advance(cycles)
	}

	pk.stepTimers(cycles)
	pk.stepPots(cycles)

	pk.stepCarry += cycles
	for pk.stepCarry >= clocks.ScanlineCycles {
		pk.stepCarry -= clocks.ScanlineCycles
		pk.stepScanline()
	}
}

// the timer interrupts use a separate counter from the audio counter. errors
// are allowed to accumulate so that the rate is correct on average
func (pk *Pokey) stepTimers(cycles int) {
	for n := range pk.channel {
		ch := &pk.channel[n]
		if ch.divNMax <= 0 {
			continue
		}
		ch.divNIRQ += int32(cycles)
		if ch.divNIRQ > ch.divNMax {
			if pk.irqen&timerIRQ[n] != 0 {
				pk.generateIRQ(timerIRQ[n])
			}
			ch.divNIRQ %= ch.divNMax
		}
	}
}

func (pk *Pokey) stepScanline() {
	pk.stepSerial()
	if !pk.pots.fast {
		pk.pots.advance(1)
	}
}
