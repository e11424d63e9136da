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

// Snapshot is the persisted state of the chip. Everything else is derived
// from these values when the snapshot is restored: the polynomial positions,
// the output flip-flops and the divider reload values.
type Snapshot struct {
	AudioFreq [4]uint8 `yaml:"audio_freq"`
	AudioCtrl [4]uint8 `yaml:"audio_ctrl"`
	AUDCTL    uint8    `yaml:"audctl"`
	SkStat    uint8    `yaml:"skstat"`
	SkCtrl    uint8    `yaml:"skctl"`
	IRQStat   uint8    `yaml:"irqstat"`
	IRQEnable uint8    `yaml:"irqen"`

	// the serial down-counters and the queue of serial input bytes
	SerInCnt   int     `yaml:"serin_count"`
	SerOutCnt  int     `yaml:"serout_count"`
	SerXmtCnt  int     `yaml:"serxmt_count"`
	SerInQueue []uint8 `yaml:"serin_queue,omitempty"`
}

// Snapshot returns the persistable state of the chip.
func (pk *Pokey) Snapshot() Snapshot {
	s := Snapshot{
		AUDCTL:    pk.audctl,
		SkStat:    pk.skstat,
		SkCtrl:    pk.skctl,
		IRQStat:   pk.irqstat,
		IRQEnable: pk.irqen,
		SerInCnt:  pk.serial.inCounter,
		SerOutCnt: pk.serial.outCounter,
		SerXmtCnt: pk.serial.xmtDoneCounter,
	}
	for n := range pk.channel {
		s.AudioFreq[n] = pk.channel[n].Registers.Freq
		s.AudioCtrl[n] = pk.channel[n].Registers.AUDC()
	}
	if len(pk.serial.inBytes) > 0 {
		s.SerInQueue = append([]uint8{}, pk.serial.inBytes...)
	}
	return s
}

// Restore the chip from the snapshot.
func (pk *Pokey) Restore(s Snapshot) {
	for n := range pk.channel {
		ch := &pk.channel[n]
		ch.loadAUDF(s.AudioFreq[n])
		ch.loadAUDC(s.AudioCtrl[n])
		ch.hiFlop = 0
		ch.divNCnt = 0
		ch.divNIRQ = 0
	}
	pk.resetOutputs()
	pk.audctl = s.AUDCTL
	pk.skstat = s.SkStat
	pk.skctl = s.SkCtrl
	pk.initState = s.SkCtrl&0x03 == 0x00
	pk.irqstat = s.IRQStat
	pk.irqen = s.IRQEnable

	pk.serial.inCounter = s.SerInCnt
	pk.serial.outCounter = s.SerOutCnt
	pk.serial.xmtDoneCounter = s.SerXmtCnt
	pk.serial.inBytes = append(pk.serial.inBytes[:0], s.SerInQueue...)

	pk.noise.reset()
	pk.updateSound(0x0f)
}
