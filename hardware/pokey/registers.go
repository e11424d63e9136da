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
	"errors"
	"fmt"
)

// ErrRegister is returned by Access() for an address outside of the chip.
var ErrRegister = errors.New("pokey register")

// Write registers
const (
	AUDF1  = 0x00
	AUDC1  = 0x01
	AUDF2  = 0x02
	AUDC2  = 0x03
	AUDF3  = 0x04
	AUDC3  = 0x05
	AUDF4  = 0x06
	AUDC4  = 0x07
	AUDCTL = 0x08
	STIMER = 0x09
	SKRES  = 0x0a
	POTGO  = 0x0b
	SEROUT = 0x0d
	IRQEN  = 0x0e
	SKCTL  = 0x0f
)

// Read registers
const (
	POT0   = 0x00
	ALLPOT = 0x08
	KBCODE = 0x09
	RANDOM = 0x0a
	SERIN  = 0x0d
	IRQST  = 0x0e
	SKSTAT = 0x0f
)

// NumRegisters is the number of addressable registers.
const NumRegisters = 16

// Access is the memory mapped interface to the chip. The origin is the
// address of the first register. The bool return value is false if the
// address is not a chip register, in which case the error is also set.
func (pk *Pokey) Access(write bool, origin uint16, idx uint16, data uint8) (uint8, bool, error) {
	if idx < origin || idx >= origin+NumRegisters {
		return 0, false, fmt.Errorf("%w: not a pokey address (%#04x)", ErrRegister, idx)
	}

	reg := uint8(idx - origin)
	if write {
		pk.Write(reg, data)
		return 0, true, nil
	}
	return pk.Read(reg), true, nil
}

// Read the register. Only the lower four bits of the register number are
// used.
func (pk *Pokey) Read(reg uint8) uint8 {
	reg &= 0x0f

	switch reg {
	case 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07:
		return pk.pots.count[reg]
	case ALLPOT:
		return pk.pots.allPot
	case KBCODE:
		// no keyboard is connected
		return 0x3f
	case RANDOM:
		if pk.initState {
			return 0xff
		}
		return pk.random.rnd
	case SERIN:
		return pk.serIn()
	case IRQST:
		// bit 3 is not latched. it is controlled directly by the state of the
		// serial output register
		if pk.serial.xmtDoneCounter > 0 {
			return pk.irqstat | 0x08
		}
		return pk.irqstat &^ 0x08
	case SKSTAT:
		// bit 0 is always set
		v := pk.skstat | 0x01

		// bit 1 is set when the serial input register is not busy
		if pk.serial.inCounter == 0 {
			v |= 0x02
		}

		// bit 4 is the serial input line
		v &^= 0x10
		if pk.serialLine() {
			v |= 0x10
		}
		return v
	}

	// unused registers
	return 0x00
}

// Write the register. Only the lower four bits of the register number are
// used.
func (pk *Pokey) Write(reg uint8, data uint8) {
	reg &= 0x0f

	if pk.observer != nil {
		pk.observer.RegisterWrite(reg, data)
	}

	switch reg {
	case AUDF1, AUDF2, AUDF3, AUDF4:
		n := int(reg >> 1)
		ch := &pk.channel[n]
		if ch.Registers.Freq == data {
			return
		}
		ch.loadAUDF(data)

		// a channel that is the low byte of a 16bit pair also changes the
		// divisor of the high byte
		if pk.audctl&linkLoFlag[n] != 0 {
			pk.updateSound((1 << n) | (1 << (n + 1)))
		} else {
			pk.updateSound(1 << n)
		}
	case AUDC1, AUDC2, AUDC3, AUDC4:
		n := int(reg >> 1)
		ch := &pk.channel[n]
		if ch.Registers.AUDC() == data {
			return
		}
		ch.loadAUDC(data)
		pk.updateSound(1 << n)
	case AUDCTL:
		if pk.audctl == data {
			return
		}
		pk.audctl = data
		pk.updateSound(0x0f)
	case STIMER:
		pk.stimer()
	case SKRES:
		// reset the error bits 5 to 7 of SKSTAT
		pk.skstat |= 0xe0
	case POTGO:
		pk.potGo()
	case SEROUT:
		pk.serOut(data)
	case IRQEN:
		pk.irqEnable(data)
	case SKCTL:
		pk.skctlWrite(data)
	}
}

// write to the STIMER register. all channel counters are reloaded and the
// output flip-flops are reset
//
// the low byte channel of a 16bit pair clocked at 1.79MHz is reloaded three
// cycles short. the difference between the linked and unlinked reload
// constants is taken by the first count of the low byte
func (pk *Pokey) stimer() {
	pk.noise.reset()

	for n := range pk.channel {
		ch := &pk.channel[n]
		ch.divNCnt = ch.divNMax
		ch.divNIRQ = 0
		if ch.linkedLow && pk.audctl&mhz17Flag[n] != 0 {
			ch.divNCnt -= fastReloadLinked - fastReloadUnlinked
		}
		if !ch.on {
			ch.divNCnt = 0
		}
	}

	pk.resetOutputs()
}

func (pk *Pokey) irqEnable(data uint8) {
	pk.irqen = data

	// interrupts that are disabled are also cleared
	pk.irqstat |= ^data

	// the serial output complete interrupt is signalled immediately if the
	// output register is empty
	if pk.serial.xmtDoneCounter > 0 {
		pk.irqstat |= 0x08
	} else {
		pk.irqstat &^= 0x08
		pk.generateIRQ(0x08)
	}

	// drop the interrupt line if there is nothing pending
	if pk.irqen&pk.irqstat == pk.irqen && pk.irq != nil {
		pk.irq.DropIRQ()
	}
}

func (pk *Pokey) skctlWrite(data uint8) {
	if data&0x03 == 0x00 {
		// initialisation state. the counters and polynomials are reset
		for n := range pk.channel {
			pk.channel[n].divNCnt = 0
			pk.channel[n].divNIRQ = 0
		}
		pk.noise.reset()
		pk.random.initialise()
		pk.resetOutputs()
		pk.initState = true

		// force the update of the derived state
		pk.skctl = ^data
	} else {
		pk.initState = false
	}

	if pk.skctl != data {
		pk.skctl = data
		pk.updateSound(0x0f)
	}
}
