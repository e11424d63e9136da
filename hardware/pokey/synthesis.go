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

// filtered channels. the channel two above filters the channel when the
// corresponding AUDCTL bit is set
var filteredBy = [2]uint8{0x04, 0x02}

// ComputeSamples synthesizes count samples at the sample rate and delivers
// them to the sink. The offset is added to the averaged channel level before
// the output mapping and is used to emulate the console speaker.
//
// The loop does not step through every cycle of the chip clock. Each iteration
// moves directly to the next event, which is either a channel counter running
// out or the next sample being due. When both happen at the same time the
// channel event is handled first.
func (pk *Pokey) ComputeSamples(sink Sink, count int, rate int, offset uint8) {
	if count <= 0 || rate <= 0 {
		return
	}

	// number of cycles per sample as a 24.8 fixed point value
	sampleMax := (int64(pk.cfg.Clock) << 8) / int64(rate)

	for count > 0 {
		next := -1
		eventMin := int32(pk.sampleCnt >> 8)

		for n := range pk.channel {
			ch := &pk.channel[n]
			if ch.on && !ch.volumeOnly() && ch.divNCnt <= eventMin {
				eventMin = ch.divNCnt
				next = n
			}
		}

		// integrate the channel levels over the elapsed cycles
		var current int32
		for n := range pk.channel {
			ch := &pk.channel[n]
			current += ch.level()
			if ch.on && !ch.volumeOnly() {
				ch.divNCnt -= eventMin
			}
		}

		pk.output += int64(current) * int64(eventMin) * 3
		pk.outcnt += int64(eventMin)
		pk.sampleCnt -= int64(eventMin) << 8
		pk.noise.elapse(int(eventMin))

		if next >= 0 {
			pk.channelEvent(next)
			continue
		}

		pk.sampleCnt += sampleMax

		// average of the levels since the last sample
		out := int64(offset)
		if pk.outcnt > 0 {
			out += pk.output / pk.outcnt
		}
		out = min(out, 255)

		val := pk.levelShift.Apply(pk.mapping.Lookup(uint8(out)))
		sink.PutSample(uint8(val))
		count--

		pk.output = 0
		pk.outcnt = 0
	}
}

// the counter of the channel has run out
func (pk *Pokey) channelEvent(n int) {
	ch := &pk.channel[n]

	pk.noise.catchUp()

	// the reload value of the low byte of a 16bit pair depends on the state of
	// the high byte
	var high int32
	if ch.linkedLow {
		high = pk.channel[n+1].divNCnt
	}
	ch.divNCnt += ch.reloadValue(high)

	// a filtering channel latches the output of the filtered channel
	if n >= 2 {
		f := n - 2
		if pk.audctl&filteredBy[f] != 0 {
			pk.channel[f].hiFlop = pk.channel[f].outBit
		}
	}

	ch.toggle(&pk.noise)
}
