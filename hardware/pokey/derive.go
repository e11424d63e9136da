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

// AUDCTL bits indexed by channel
var (
	// channel is clocked at 1.79MHz
	mhz17Flag = [4]uint8{0x40, 0x00, 0x20, 0x00}

	// channel is the high byte of a 16bit linked pair
	linkHiFlag = [4]uint8{0x00, 0x10, 0x00, 0x08}

	// channel is the low byte of a 16bit linked pair
	linkLoFlag = [4]uint8{0x10, 0x00, 0x08, 0x00}

	// channel is filtering the channel two below it
	filterFlag = [4]uint8{0x00, 0x00, 0x04, 0x02}
)

// the reload constants for channels clocked at 1.79MHz. the constants account
// for the cycles taken by the counter to reload itself
const (
	fastReloadUnlinked = 4
	fastReloadLinked   = 7
)

// channels with a divisor below this value produce a tone above 22kHz
const audibleDivisor = 80

// divisors closer together than this produce an audible beat
const beatDifference = 10

// registerSet is the part of the chip state that the derived channel state
// depends on
type registerSet struct {
	regs        [4]Registers
	audctl      uint8
	skctl       uint8
	serialSound bool

	// serial input state used by the asynchronous receive mode
	serInBytes   int
	serInCounter int
	serInDelay   int
}

// derivedChannel is the per-channel state that follows from the register set
type derivedChannel struct {
	divNMax    int32
	divFullMax int32
	linkedLow  bool
	linkedHigh bool
	on         bool
}

// derivedState is the result of derive()
type derivedState struct {
	timeBase   int32
	prefer9bit bool
	channel    [4]derivedChannel

	// the channels to which the derived state applies. this may be more than
	// the channels requested
	mask uint8

	// serial delays measured in scanlines. the delays only change if the
	// corresponding flag is set
	serInDelay     int
	serInDelaySet  bool
	serOutDelay    int
	serOutDelaySet bool
}

// serial delay for a byte of ten bits, given the divisor of the channel
// clocking the serial port. the result is in scanlines rounded up
func serialDelay(divisor int32) int {
	return int((20*divisor + clocks.Base15kHz - 1) / clocks.Base15kHz)
}

// derive is the one path by which the derived channel state is computed from
// the register set. mask indicates which channels have changed. derived state
// for the other channels is taken from prev, although the muting of those
// channels can still change as a result of the changed channels
func derive(rs registerSet, prev [4]derivedChannel, mask uint8) derivedState {
	d := derivedState{
		channel:    prev,
		timeBase:   clocks.Base64kHz,
		prefer9bit: rs.audctl&0x80 == 0x80,
	}

	if rs.audctl&0x01 == 0x01 {
		d.timeBase = clocks.Base15kHz
	}

	// if channel 2 changes and the serial port is clocked by the timers then
	// channel 3 must be updated too because its divisor may have been changed
	// by the asynchronous receive mode
	if rs.serialSound && rs.skctl&0x30 != 0 && mask&0x04 == 0x04 {
		mask |= 0x08
	}
	d.mask = mask

	// divisors are only recomputed for the changed channels. a counter that is
	// running continues with the old divisor until it is reloaded
	for n := range 4 {
		if mask&(1<<n) == 0 {
			continue
		}
		d.channel[n] = divisor(rs, n, d.timeBase)
	}

	// muting is decided for every channel once all divisors are known. the
	// result does not depend on the order in which the registers were written
	for n := range 4 {
		mute(rs, &d, n)
	}

	serialTiming(rs, &d)

	if rs.serialSound {
		serialMuting(rs, &d)
	}

	return d
}

func divisor(rs registerSet, n int, timeBase int32) derivedChannel {
	var c derivedChannel

	f := int32(rs.regs[n].Freq)

	switch {
	case rs.audctl&linkHiFlag[n] != 0:
		// high byte of a 16bit counter. the clock selection is that of the low
		// byte channel
		c.linkedHigh = true
		lo := int32(rs.regs[n-1].Freq)
		if rs.audctl&mhz17Flag[n-1] != 0 {
			c.divNMax = (f << 8) + lo + fastReloadLinked
		} else {
			c.divNMax = ((f << 8) + lo + 1) * timeBase
		}
		c.divFullMax = c.divNMax

	case rs.audctl&linkLoFlag[n] != 0:
		// low byte of a 16bit counter. the counter runs through the full
		// 8bit range unless the high byte has also run out
		c.linkedLow = true
		if rs.audctl&mhz17Flag[n] != 0 {
			c.divNMax = f + fastReloadLinked
			c.divFullMax = 255 + fastReloadLinked
		} else {
			c.divNMax = (f + 1) * timeBase
			c.divFullMax = (255 + 1) * timeBase
		}

	default:
		if rs.audctl&mhz17Flag[n] != 0 {
			c.divNMax = f + fastReloadUnlinked
		} else {
			c.divNMax = (f + 1) * timeBase
		}
		c.divFullMax = c.divNMax
	}

	return c
}

// mute decides whether the channel should be on. in order:
//
//  1. a channel in volume-only mode with a non-zero volume is on
//  2. a channel with a volume of zero is off
//  3. a channel using the polynomial counters is on
//  4. a pure tone channel with an audible divisor is on
//  5. a pure tone channel that is part of a 16bit pair is on
//  6. a pure tone channel with an inaudible divisor is forced on, along with
//     the other channel, if another inaudible pure tone channel has a divisor
//     close enough to produce an audible beat
//
// a channel filtering another channel is on if the filtered channel is on
func mute(rs registerSet, d *derivedState, n int) {
	c := &d.channel[n]
	reg := rs.regs[n]

	if rs.audctl&filterFlag[n] != 0 {
		c.on = d.channel[n-2].on
	} else {
		c.on = false
	}

	volumeOnly := reg.Noise&0x01 == 0x01
	if reg.Volume == 0 {
		return
	}
	if volumeOnly {
		c.on = true
		return
	}

	ch := channel{Registers: reg}
	if !ch.pureTone() {
		c.on = true
		return
	}
	if c.divNMax >= audibleDivisor {
		c.on = true
		return
	}
	if c.linkedLow || c.linkedHigh {
		c.on = true
		return
	}

	// the beat frequency exception. this is preserved as documented behaviour
	// rather than verified hardware behaviour
	for m := range 4 {
		if m == n || d.channel[m].divNMax >= audibleDivisor {
			continue
		}

		// a filtering channel is tested with the distortion of the channel
		// being tested
		other := channel{Registers: rs.regs[m]}
		if rs.audctl&filterFlag[m] != 0 {
			other.Registers.Noise = reg.Noise
		}
		if other.Registers.Volume == 0 || other.volumeOnly() || !other.pureTone() {
			continue
		}

		diff := c.divNMax - d.channel[m].divNMax
		if diff != 0 && diff < beatDifference && diff > -beatDifference {
			c.on = true
			d.channel[m].on = true
		}
	}
}

// the serial port is clocked by the timers. the delays are measured in
// scanlines
func serialTiming(rs registerSet, d *derivedState) {
	// the input clock is controlled by bits 4 and 5 of SKCTL. whether or not
	// the mode is asynchronous the input is clocked by channel 3
	if rs.skctl&0x30 != 0 && d.mask&0x0c != 0 {
		d.serInDelay = serialDelay(d.channel[3].divNMax)
		d.serInDelaySet = true
	}

	// the output clock is controlled by bits 5 and 6 of SKCTL
	switch rs.skctl & 0x60 {
	case 0x20, 0x40:
		// clocked by channel 3 (or channels 2 and 3)
		if d.mask&0x0c != 0 {
			d.serOutDelay = serialDelay(d.channel[3].divNMax)
			d.serOutDelaySet = true
		}
	case 0x60:
		// clocked by channel 1 (or channels 0 and 1)
		if d.mask&0x03 != 0 {
			d.serOutDelay = serialDelay(d.channel[1].divNMax)
			d.serOutDelaySet = true
		}
	}
}

// the influence of the serial port on the channels. the timers drive the
// serial port so serial activity is audible
func serialMuting(rs registerSet, d *derivedState) {
	if rs.skctl&0x08 == 0x08 {
		// two-tone mode. only the higher of the tones in channels 0 and 1
		// survives unless channel 1 has the lower tone, in which case the
		// serial output decides. the serial shift register is not
		// emulated but a forced break is
		if d.channel[0].divNMax > d.channel[1].divNMax {
			d.channel[0].on = false
		} else if rs.skctl&0x80 == 0x80 {
			d.channel[0].on = false
		} else {
			d.channel[1].on = false
		}
	} else if rs.skctl&0x60 == 0x60 {
		// channels 0 and 1 are used as the output clock
		if rs.regs[0].Volume != 0 {
			d.channel[0].on = true
		}
		if rs.regs[1].Volume != 0 {
			d.channel[1].on = true
		}
	}

	if rs.skctl&0x10 == 0x10 {
		// asynchronous receive mode. the timer is halted until the start
		// bit is received and runs freely until the stop bit. the tone of
		// the transfer is too high to hear so what is heard is the
		// modulation caused by the starting and stopping. the factor of 21
		// is approximately ten bits times two. like the beat frequency
		// exception this is a preserved quirk
		delay := rs.serInDelay
		if d.serInDelaySet {
			delay = d.serInDelay
		}
		if rs.serInBytes > 0 && rs.serInCounter <= delay {
			if rs.regs[2].Volume != 0 {
				d.channel[2].on = true
			}
			if rs.regs[3].Volume != 0 {
				d.channel[3].on = true

				// the divisor is only stretched when it has just been
				// recomputed
				if d.mask&0x08 == 0x08 {
					d.channel[3].divNMax *= 21
				}
			}
		} else {
			d.channel[2].on = false
			d.channel[3].on = false
		}
	} else if rs.skctl&0x70 != 0 {
		// serial output activity
		if rs.regs[2].Volume != 0 {
			d.channel[2].on = true
		}
		if rs.regs[3].Volume != 0 {
			d.channel[3].on = true
		}
	}
}

// registerSet returns the current register set of the chip
func (pk *Pokey) registerSet() registerSet {
	rs := registerSet{
		audctl:       pk.audctl,
		skctl:        pk.skctl,
		serialSound:  pk.cfg.SerialSound,
		serInBytes:   len(pk.serial.inBytes),
		serInCounter: pk.serial.inCounter,
		serInDelay:   pk.serial.inDelay,
	}
	for i := range pk.channel {
		rs.regs[i] = pk.channel[i].Registers
	}
	return rs
}

func (pk *Pokey) derivedChannels() [4]derivedChannel {
	var dc [4]derivedChannel
	for i := range pk.channel {
		ch := &pk.channel[i]
		dc[i] = derivedChannel{
			divNMax:    ch.divNMax,
			divFullMax: ch.divFullMax,
			linkedLow:  ch.linkedLow,
			linkedHigh: ch.linkedHigh,
			on:         ch.on,
		}
	}
	return dc
}

// updateSound recomputes the derived state for the channels in the mask and
// applies it to the chip
func (pk *Pokey) updateSound(mask uint8) {
	d := derive(pk.registerSet(), pk.derivedChannels(), mask)

	pk.timeBase = d.timeBase
	pk.noise.prefer9bit = d.prefer9bit
	pk.random.prefer9bit = d.prefer9bit

	for n := range pk.channel {
		ch := &pk.channel[n]
		dc := d.channel[n]

		ch.on = dc.on
		ch.divNMax = dc.divNMax
		ch.divFullMax = dc.divFullMax
		ch.linkedLow = dc.linkedLow
		ch.linkedHigh = dc.linkedHigh

		// a channel that is off has its counter stopped and the high-pass latch
		// of the channel it might be filtering is cleared
		if !ch.on {
			ch.divNCnt = 0
			if n >= 2 {
				pk.channel[n-2].hiFlop = 0
			}
		}

		// the latch has no effect on a channel that is not being filtered
		if n >= 2 && pk.audctl&filterFlag[n] == 0 {
			pk.channel[n-2].hiFlop = 0
		}
	}

	if d.serInDelaySet {
		pk.serial.inDelay = d.serInDelay
	}
	if d.serOutDelaySet {
		pk.serial.outDelay = d.serOutDelay
		pk.serial.xmtDoneDelay = d.serOutDelay
	}
}
