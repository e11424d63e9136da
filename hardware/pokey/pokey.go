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
	"github.com/jetsetilly/pokeyplay/hardware/pokey/mix"
	"github.com/jetsetilly/pokeyplay/logger"
)

// IRQLine is the interrupt input of the CPU.
type IRQLine interface {
	PullIRQ()
	DropIRQ()
}

// SerialDevice is the far end of the serial port. Bytes written to SEROUT are
// forwarded with SerialOut(). RequestInput() is called when the serial input
// queue has been emptied by the CPU.
type SerialDevice interface {
	SerialOut(data uint8)
	RequestInput()
}

// PotSource supplies the paddle positions sampled when POTGO is written.
type PotSource interface {
	Pot(n int) uint8
}

// RegisterObserver is notified of every register write.
type RegisterObserver interface {
	RegisterWrite(reg uint8, data uint8)
}

// Sink receives the synthesized samples. A sample is a signed 8bit value
// passed as a uint8.
type Sink interface {
	PutSample(sample uint8)
}

// Config values for the chip. They can be changed at any time with the
// Configure() function.
type Config struct {
	// the frequency of the CPU clock in Hz
	Clock int

	// gamma and volume as percentages. these define the output mapping
	Gamma  int
	Volume int

	// constant for the DC level shift. zero disables the level shift
	FilterConstant int

	// serial port activity affects the muting of channels
	SerialSound bool
}

// DefaultConfig returns the configuration used by NewPokey().
func DefaultConfig() Config {
	return Config{
		Clock:          clocks.Default,
		Gamma:          mix.DefaultGamma,
		Volume:         mix.DefaultVolume,
		FilterConstant: mix.DefaultFilterConstant,
		SerialSound:    true,
	}
}

// Pokey is a single POKEY chip.
type Pokey struct {
	// the unit number is used to identify the chip in log entries
	unit int

	cfg Config

	// log entries are created with this permission
	perm logger.Permission

	channel [4]channel
	noise   polynomials
	random  randomGenerator

	// the AUDCTL register
	audctl uint8

	// number of CPU cycles per tick of the base clock. either clocks.Base64kHz
	// or clocks.Base15kHz depending on bit 0 of AUDCTL
	timeBase int32

	// SKCTL is in the initialisation state when the lower two bits are clear
	initState bool

	// serial and interrupt registers
	skctl   uint8
	skstat  uint8
	irqstat uint8
	irqen   uint8

	serial serialState
	pots   potState

	// cycles carried over from Step() that have not yet reached a scanline
	stepCarry int

	// synthesis state. sampleCnt is a 24.8 fixed point count of cycles to the
	// next sample. output and outcnt accumulate the weighted channel levels
	// since the previous sample
	sampleCnt int64
	output    int64
	outcnt    int64

	mapping    mix.Mapping
	levelShift mix.LevelShift

	irq      IRQLine
	device   SerialDevice
	paddles  PotSource
	observer RegisterObserver
}

// NewPokey is the preferred method of initialisation for the Pokey type. The
// chip is cold started and ready for use.
func NewPokey(unit int) *Pokey {
	pk := &Pokey{
		unit: unit,
		perm: logger.Allow,
	}
	for i := range pk.channel {
		pk.channel[i].num = i
	}
	pk.Configure(DefaultConfig())
	pk.ColdStart()
	return pk
}

func (pk *Pokey) String() string {
	return pk.Label()
}

// Label returns the name of the chip, suitable for display.
func (pk *Pokey) Label() string {
	if pk.unit == 0 {
		return "Pokey"
	}
	return "ExtraPokey"
}

// Configure the chip. The output mapping is regenerated.
func (pk *Pokey) Configure(cfg Config) {
	if cfg.Clock <= 0 {
		cfg.Clock = clocks.Default
	}
	pk.cfg = cfg
	pk.mapping = mix.NewMapping(cfg.Gamma, cfg.Volume)
	pk.levelShift = mix.NewLevelShift(cfg.FilterConstant)
}

// Config returns the current configuration.
func (pk *Pokey) Config() Config {
	return pk.cfg
}

// SetLogging sets the permission used for log entries created by the chip.
func (pk *Pokey) SetLogging(perm logger.Permission) {
	pk.perm = perm
}

// AttachIRQ connects the interrupt line.
func (pk *Pokey) AttachIRQ(irq IRQLine) {
	pk.irq = irq
}

// AttachSerial connects a serial device.
func (pk *Pokey) AttachSerial(dev SerialDevice) {
	pk.device = dev
}

// AttachPaddles connects the source of paddle positions.
func (pk *Pokey) AttachPaddles(src PotSource) {
	pk.paddles = src
}

// AttachObserver connects an observer of register writes.
func (pk *Pokey) AttachObserver(obs RegisterObserver) {
	pk.observer = obs
}

// ColdStart resets the chip, including the polynomial counters.
func (pk *Pokey) ColdStart() {
	pk.noise.reset()
	pk.random.initialise()
	pk.WarmStart()
}

// WarmStart resets the registers of the chip. The polynomial counters
// continue from their current position.
func (pk *Pokey) WarmStart() {
	pk.irqstat = 0xff
	pk.irqen = 0x00
	pk.skstat = 0xf0
	pk.skctl = 0x00
	pk.initState = true
	pk.serial.reset()

	pk.noise.pending = 0
	for i := range pk.channel {
		ch := &pk.channel[i]
		ch.Registers = Registers{}
		ch.divNCnt = 0
		ch.divNIRQ = 0
		ch.hiFlop = 0
		ch.on = false
	}
	pk.resetOutputs()

	pk.audctl = 0x00
	pk.timeBase = clocks.Base64kHz
	pk.updateSound(0x0f)

	pk.sampleCnt = 0
	pk.output = 0
	pk.outcnt = 0
	pk.stepCarry = 0
	pk.levelShift.Reset()

	pk.pots.reset()
}

// channel 0 and 1 outputs are set low. channel 2 and 3 outputs are set high.
// strange but the hardware manual says so
func (pk *Pokey) resetOutputs() {
	pk.channel[0].outBit = outputLow
	pk.channel[1].outBit = outputLow
	pk.channel[2].outBit = outputHigh
	pk.channel[3].outBit = outputHigh
}
