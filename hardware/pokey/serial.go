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
	"github.com/jetsetilly/pokeyplay/logger"
)

// the serial port timing. counters and delays are measured in scanlines
type serialState struct {
	inCounter      int
	outCounter     int
	xmtDoneCounter int

	inDelay      int
	outDelay     int
	xmtDoneDelay int

	// bytes waiting to be read from SERIN. the first byte is the one in
	// flight
	inBytes []uint8

	// the most recent byte written to SEROUT
	lastOut uint8
}

func (s *serialState) reset() {
	s.inCounter = 0
	s.outCounter = 0
	s.xmtDoneCounter = 0
	s.inBytes = s.inBytes[:0]

	// overridden as soon as SKCTL selects a timer for the serial port
	s.inDelay = 9
	s.outDelay = 9
	s.xmtDoneDelay = 9
}

// the number of scanlines for a byte of ten bits at the baud rate
func baudDelay(clock int, baud int) int {
	if baud <= 0 {
		return 0
	}
	cycles := 10 * clock / baud
	return (cycles + clocks.Base15kHz - 1) / clocks.Base15kHz
}

// SignalSerialBytes is called by the serial device when bytes have arrived on
// the serial input line. The first byte is available after delay scanlines
// plus the time it takes to receive a byte. If baud is non-zero the receive
// time is taken from the baud rate rather than from the timers.
//
// An empty data slice can be used to ask the chip to call RequestInput()
// again when the delay has expired.
func (pk *Pokey) SignalSerialBytes(data []uint8, delay int, baud int) {
	if pk.serial.inCounter > 0 || len(pk.serial.inBytes) > 0 {
		logger.Log(pk.perm, pk.Label(), "clashing read on serial input line: serial transfer is still busy")
	}

	if d := baudDelay(pk.cfg.Clock, baud); d > 0 {
		pk.serial.inDelay = d
	}

	pk.serial.inBytes = append(pk.serial.inBytes[:0], data...)
	pk.serial.inCounter = delay + pk.serial.inDelay

	// channels 2 and 3 synchronise to the serial input
	if pk.cfg.SerialSound {
		pk.updateSound(0x0c)
	}
}

// SignalCommandFrame is called by the serial device when a command frame is
// sent. Any serial traffic in progress is aborted.
func (pk *Pokey) SignalCommandFrame() {
	if pk.serial.inCounter > 0 || pk.serial.outCounter > 0 || len(pk.serial.inBytes) > 0 {
		logger.Log(pk.perm, pk.Label(), "clashing command frame on serial line: serial transfer is still busy")
		pk.serial.inBytes = pk.serial.inBytes[:0]
		pk.serial.inCounter = 0
		pk.serial.outCounter = 0
	}
}

// serial receive is only possible at 19200 baud in asynchronous mode with
// channels 2 and 3 linked
func (pk *Pokey) receiveMode() bool {
	return pk.skctl&0xf0 == 0x10 && pk.audctl&0x28 == 0x28
}

// serial transmit is only possible with the output clocked by channels 2 and 3
// linked
func (pk *Pokey) transmitMode() bool {
	return pk.skctl&0xf0 == 0x20 && pk.audctl&0x28 == 0x28
}

// read of the SERIN register
func (pk *Pokey) serIn() uint8 {
	if !pk.receiveMode() {
		if len(pk.serial.inBytes) > 0 {
			logger.Log(pk.perm, pk.Label(), "serial transfer mode unsuitable for waiting serial data")
			pk.serial.inBytes = pk.serial.inBytes[:0]
			pk.skstat &^= 0x80
		}
		return 0xff
	}

	if len(pk.serial.inBytes) == 0 {
		logger.Log(pk.perm, pk.Label(), "unexpected read of serial input")

		// framing error. the error bits of SKSTAT are active low
		pk.skstat &^= 0x80
		return 0xff
	}

	b := pk.serial.inBytes[0]
	pk.serial.inBytes = pk.serial.inBytes[1:]

	if len(pk.serial.inBytes) == 0 {
		if pk.device != nil {
			pk.device.RequestInput()
		}
	} else {
		pk.serial.inCounter = pk.serial.inDelay
	}

	return b
}

// write to the SEROUT register
func (pk *Pokey) serOut(data uint8) {
	pk.serial.lastOut = data

	if !pk.transmitMode() {
		return
	}

	if pk.device != nil {
		pk.device.SerialOut(data)
	}

	pk.serial.outCounter = pk.serial.outDelay

	// the output register cannot be empty because it has just been filled
	pk.serial.xmtDoneCounter = 0

	if pk.cfg.SerialSound {
		pk.updateSound(0x0c)
	}
}

// the state of the serial input line. the line is high when idle. when a byte
// is in flight the bit is selected by how much of the receive time has elapsed:
// a zero start bit, eight data bits least significant bit first, and a stop bit
func (pk *Pokey) serialLine() bool {
	s := &pk.serial
	if len(s.inBytes) == 0 || s.inCounter <= 0 || s.inCounter > s.inDelay || s.inDelay <= 0 {
		return true
	}

	elapsed := s.inDelay - s.inCounter
	pos := elapsed * 10 / s.inDelay

	switch pos {
	case 0:
		return false
	case 9:
		return true
	default:
		return (s.inBytes[0]>>(pos-1))&0x01 == 0x01
	}
}

// the serial counters are advanced once per scanline
func (pk *Pokey) stepSerial() {
	s := &pk.serial

	if s.inCounter > 0 {
		s.inCounter--
		if s.inCounter == 0 {
			if len(s.inBytes) > 0 {
				// serial input has finished
				pk.generateIRQ(0x20)
			} else if pk.device != nil {
				pk.device.RequestInput()
			}
		}
	}

	if s.outCounter > 0 {
		s.outCounter--
		if s.outCounter == 0 {
			// serial output register is empty and can be reloaded
			pk.generateIRQ(0x10)
			s.xmtDoneCounter = s.xmtDoneDelay
		}
	}

	// bit 3 of IRQSTAT is not a latch. it is read directly from the counter
	// but the interrupt is still generated
	if s.xmtDoneCounter > 0 {
		s.xmtDoneCounter--
		if s.xmtDoneCounter == 0 {
			pk.generateIRQ(0x08)
		}
	}
}
