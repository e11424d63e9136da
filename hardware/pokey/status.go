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

// Status is a summary of the chip state for display purposes.
type Status struct {
	Label     string
	Channels  [4]Registers
	Muted     [4]bool
	Divisors  [4]int32
	AUDCTL    uint8
	SkStat    uint8
	SkCtrl    uint8
	KBCode    uint8
	IRQStat   uint8
	IRQEnable uint8

	SerInDelay  int
	SerOutDelay int
	SerXmtDelay int
	SerInCnt    int
	SerOutCnt   int
	SerXmtCnt   int
	SerInBytes  int

	LevelShift int32
}

// Status returns the current status of the chip. Reading the status has no
// side effects.
func (pk *Pokey) Status() Status {
	s := Status{
		Label:       pk.Label(),
		AUDCTL:      pk.audctl,
		SkStat:      pk.skstat,
		SkCtrl:      pk.skctl,
		KBCode:      0x3f,
		IRQStat:     pk.irqstat,
		IRQEnable:   pk.irqen,
		SerInDelay:  pk.serial.inDelay,
		SerOutDelay: pk.serial.outDelay,
		SerXmtDelay: pk.serial.xmtDoneDelay,
		SerInCnt:    pk.serial.inCounter,
		SerOutCnt:   pk.serial.outCounter,
		SerXmtCnt:   pk.serial.xmtDoneCounter,
		SerInBytes:  len(pk.serial.inBytes),
		LevelShift:  pk.levelShift.Shift(),
	}
	for n := range pk.channel {
		s.Channels[n] = pk.channel[n].Registers
		s.Muted[n] = !pk.channel[n].on
		s.Divisors[n] = pk.channel[n].divNMax
	}
	return s
}
