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
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
	"github.com/jetsetilly/pokeyplay/test"
)

type serialRecorder struct {
	out      []uint8
	requests int
}

func (s *serialRecorder) SerialOut(data uint8) {
	s.out = append(s.out, data)
}

func (s *serialRecorder) RequestInput() {
	s.requests++
}

func TestSerialReceive(t *testing.T) {
	var irq irqRecorder
	var dev serialRecorder

	pk := newTestPokey(t)
	pk.AttachIRQ(&irq)
	pk.AttachSerial(&dev)

	// asynchronous receive with channels 2 and 3 linked
	pk.Write(AUDCTL, 0x28)
	pk.Write(AUDF3, 0x28)
	pk.Write(SKCTL, 0x13)
	pk.Write(IRQEN, 0x20)
	test.ExpectEquality(t, irq.pulled, 0)

	pk.SignalSerialBytes([]uint8{0x12, 0x34}, 2, 0)
	test.ExpectEquality(t, pk.serial.inCounter, 2+pk.serial.inDelay)

	// input is busy
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x02, 0x00)

	pk.Step(pk.serial.inCounter * clocks.ScanlineCycles)
	test.ExpectEquality(t, irq.pulled, 1)
	test.ExpectEquality(t, pk.Read(IRQST)&0x20, 0x00)
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x02, 0x02)

	test.ExpectEquality(t, pk.Read(SERIN), 0x12)
	test.ExpectEquality(t, dev.requests, 0)
	test.ExpectEquality(t, pk.serial.inCounter, pk.serial.inDelay)

	test.ExpectEquality(t, pk.Read(SERIN), 0x34)
	test.ExpectEquality(t, dev.requests, 1)

	// reading an empty register is a framing error
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x80, 0x80)
	test.ExpectEquality(t, pk.Read(SERIN), 0xff)
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x80, 0x00)
	pk.Write(SKRES, 0x00)
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x80, 0x80)
}

func TestSerialReceiveWrongMode(t *testing.T) {
	pk := newTestPokey(t)
	pk.SignalSerialBytes([]uint8{0x12}, 0, 19200)

	// the baud rate decides the receive time
	test.ExpectEquality(t, pk.serial.inDelay, baudDelay(pk.Config().Clock, 19200))

	// the chip is not in a receive mode so the byte is lost
	test.ExpectEquality(t, pk.Read(SERIN), 0xff)
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x80, 0x00)
	test.ExpectEquality(t, len(pk.serial.inBytes), 0)
}

func TestSerialRequestInput(t *testing.T) {
	var dev serialRecorder

	pk := newTestPokey(t)
	pk.AttachSerial(&dev)

	// an empty signal asks to be called back once the delay has expired
	pk.SignalSerialBytes(nil, 5, 0)
	pk.Step((5 + pk.serial.inDelay) * clocks.ScanlineCycles)
	test.ExpectEquality(t, dev.requests, 1)
}

func TestSerialCommandFrame(t *testing.T) {
	pk := newTestPokey(t)
	pk.SignalSerialBytes([]uint8{0x01, 0x02}, 10, 0)
	pk.SignalCommandFrame()
	test.ExpectEquality(t, len(pk.serial.inBytes), 0)
	test.ExpectEquality(t, pk.serial.inCounter, 0)
}

func TestSerialTransmit(t *testing.T) {
	var irq irqRecorder
	var dev serialRecorder

	pk := newTestPokey(t)
	pk.AttachIRQ(&irq)
	pk.AttachSerial(&dev)

	// not in transmit mode
	pk.Write(SEROUT, 0x40)
	test.ExpectEquality(t, len(dev.out), 0)

	pk.Write(AUDCTL, 0x28)
	pk.Write(SKCTL, 0x23)
	test.ExpectEquality(t, pk.serial.outDelay, serialDelay(pk.channel[3].divNMax))
	test.ExpectEquality(t, pk.serial.outDelay, 2)

	// the output register is empty so the interrupt is signalled at once
	pk.Write(IRQEN, 0x18)
	test.ExpectEquality(t, irq.pulled, 1)

	pk.Write(SEROUT, 0x41)
	test.ExpectEquality(t, len(dev.out), 1)
	test.ExpectEquality(t, dev.out[0], 0x41)
	test.ExpectEquality(t, pk.Read(IRQST)&0x18, 0x10)

	// output register is emptied after the output delay
	pk.Step(2 * clocks.ScanlineCycles)
	test.ExpectEquality(t, irq.pulled, 2)
	test.ExpectEquality(t, pk.Read(IRQST)&0x18, 0x08)

	// transmission is complete one scanline later
	pk.Step(clocks.ScanlineCycles)
	test.ExpectEquality(t, irq.pulled, 3)
	test.ExpectEquality(t, pk.Read(IRQST)&0x08, 0x00)
}

func TestSerialLine(t *testing.T) {
	pk := newTestPokey(t)

	// idle line is high
	test.ExpectSuccess(t, pk.serialLine())

	pk.serial.inBytes = []uint8{0x01}
	pk.serial.inDelay = 10

	// start bit
	pk.serial.inCounter = 10
	test.ExpectFailure(t, pk.serialLine())
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x10, 0x00)

	// first data bit
	pk.serial.inCounter = 9
	test.ExpectSuccess(t, pk.serialLine())
	test.ExpectEquality(t, pk.Read(SKSTAT)&0x10, 0x10)

	// second data bit
	pk.serial.inCounter = 8
	test.ExpectFailure(t, pk.serialLine())

	// stop bit
	pk.serial.inCounter = 1
	test.ExpectSuccess(t, pk.serialLine())
}

func TestBaudDelay(t *testing.T) {
	test.ExpectEquality(t, baudDelay(clocks.NTSC, 0), 0)

	// ten bits at 19200 baud is a little over 8 scanlines
	test.ExpectEquality(t, baudDelay(clocks.NTSC, 19200), 9)
}
