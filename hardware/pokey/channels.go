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

import "fmt"

// Registers are the values written to the AUDF and AUDC register pair for a
// channel.
type Registers struct {
	// noise and volume come from the AUDCx registers. noise is the upper 4-bits
	// and the volume is the lower 4-bits
	Noise  uint8
	Volume uint8

	// frequency value comes from the AUDFx registers
	Freq uint8
}

func (reg Registers) String() string {
	return fmt.Sprintf("%04b @ %08b ^ %04b", reg.Noise, reg.Freq, reg.Volume)
}

// AUDC returns the value of the AUDC register.
func (reg Registers) AUDC() uint8 {
	return reg.Noise<<4 | reg.Volume
}

// output levels of a channel. the full scale value is ANDed with the volume
const (
	outputLow  = 0x00
	outputHigh = 0x0f
)

type channel struct {
	Registers Registers

	// the channel number
	num int

	// "Each register controls a divide-by-N counter, where N is the value written to the register
	// AUDF(X), plus 1."
	//
	// the counter is measured in CPU cycles and counts down to zero. divNMax is the reload value
	// computed from the AUDF register and the clock selection in AUDCTL
	divNCnt int32
	divNMax int32

	// reload value for the low channel of a 16bit linked pair. the low channel runs through the
	// full 8bit span of the counter unless the high channel has also run out
	divFullMax int32

	// separate counter for timer interrupts. the audio counter is advanced by sample generation
	// and the irq counter by the Step() function
	divNIRQ int32

	// the output flip-flop. either outputLow or outputHigh
	outBit uint8

	// high-pass filter latch. only used when this channel is being filtered by the channel two
	// above it. the latch takes the value of outBit whenever the filtering channel runs out
	//
	// from 'Altirra Reference', page 107:
	//
	// "the high-pass filter is implemented as a D flip-flop that samples the output of the
	// filtered channel whenever the filtering channel's counter underflows"
	hiFlop uint8

	// channel is the low byte of a 16bit timer. the next channel up is the high byte
	linkedLow bool

	// channel is the high byte of a 16bit timer. the next channel down is the low byte
	linkedHigh bool

	// whether the channel contributes to the output and generates events. derived from the
	// register set whenever a register changes
	on bool
}

func (ch *channel) String() string {
	s := fmt.Sprintf("Ch%d: %s", ch.num, ch.Registers.String())
	if !ch.on {
		s = fmt.Sprintf("%s (muted)", s)
	}
	return s
}

func (ch *channel) loadAUDF(data uint8) {
	// current divNCnt continues as normal even though we've changed the frequency in the register.
	// the new value is used on the next reload
	ch.Registers.Freq = data
}

func (ch *channel) loadAUDC(data uint8) {
	ch.Registers.Noise = (data & 0xf0) >> 4
	ch.Registers.Volume = (data & 0x0f)
}

// volume-only mode. the volume is output directly and the flip-flop is ignored
func (ch *channel) volumeOnly() bool {
	return ch.Registers.Noise&0x01 == 0x01
}

// the gate selection for the channel. see the gates table in polynomials.go
func (ch *channel) gate() gate {
	return gates[ch.Registers.Noise>>1]
}

// the pure tone distortions are the two settings that don't use the 5bit
// polynomial or the 4/9/17bit polynomials. these are the only settings that
// are candidates for muting
func (ch *channel) pureTone() bool {
	d := ch.Registers.Noise & 0x0e
	return d == 0x0a || d == 0x0e
}

// level is the contribution of the channel to the output at this moment
func (ch *channel) level() int32 {
	if ch.volumeOnly() {
		return int32(ch.Registers.Volume)
	}
	if !ch.on {
		return 0
	}
	return int32((ch.hiFlop ^ ch.outBit) & ch.Registers.Volume)
}

// reloadValue returns the value added to the counter when it runs out. high
// is the counter of the linked high channel for the low channel of a linked
// pair, and zero otherwise
func (ch *channel) reloadValue(high int32) int32 {
	if high < ch.divNMax {
		return ch.divNMax
	}
	return ch.divFullMax
}

// toggle the output flip-flop on underflow, subject to the polynomial gates.
// the second gate is not a simple gate but a comparison with the proposed
// output. this emulates the N-2 rule that applies to the divisor
func (ch *channel) toggle(p *polynomials) {
	g := ch.gate()
	if g.first(p) == 0 {
		return
	}

	out := ch.outBit ^ outputHigh
	if g.second == nil || g.second(p)*outputHigh == out {
		ch.outBit = out
	}
}
