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

package sound

import (
	"fmt"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

// Config for the Manager.
type Config struct {
	// the sample rate of the device
	SamplingFreq int

	// the rate of the scanline clock. cycles passed to Tick() are converted
	// to samples with this value
	PokeyFreq int

	// the size of a fragment in samples is 1 << FragSize. the target number
	// of buffered samples is NumFrags fragments
	FragSize uint
	NumFrags int

	// the format of the samples. normally decided by the device
	Format buffer.Format

	// the console speaker adds ConsoleVolume to the output when it is on
	ConsoleSpeaker bool
	ConsoleVolume  int

	// the rate of sample generation never changes. used when there is no
	// device clock to follow, for example when writing to a file
	FixedRate bool
}

// DefaultConfig returns the default configuration for the Manager.
func DefaultConfig() Config {
	return Config{
		SamplingFreq:   44100,
		PokeyFreq:      clocks.PokeyFreqBase,
		FragSize:       9,
		NumFrags:       6,
		Format:         buffer.Format{Signed: true, SixteenBit: true, LittleEndian: true, Stereo: true},
		ConsoleSpeaker: true,
		ConsoleVolume:  32,
	}
}

// Validate the configuration. Errors are wrapped ErrFormat errors from the
// buffer package.
func (cfg Config) Validate() error {
	if err := cfg.Format.Validate(); err != nil {
		return err
	}
	if cfg.SamplingFreq < 4000 || cfg.SamplingFreq > 192000 {
		return fmt.Errorf("%w: sampling frequency out of range (%d)", buffer.ErrFormat, cfg.SamplingFreq)
	}
	if cfg.PokeyFreq <= 0 {
		return fmt.Errorf("%w: pokey frequency must be positive", buffer.ErrFormat)
	}
	if cfg.FragSize < 2 || cfg.FragSize > 16 {
		return fmt.Errorf("%w: fragment size exponent out of range (%d)", buffer.ErrFormat, cfg.FragSize)
	}
	if cfg.NumFrags < 2 || cfg.NumFrags > 16 {
		return fmt.Errorf("%w: number of fragments out of range (%d)", buffer.ErrFormat, cfg.NumFrags)
	}
	return nil
}

// FragSamples returns the number of samples in a fragment.
func (cfg Config) FragSamples() int {
	return 1 << cfg.FragSize
}

// BufferSize returns the target number of buffered samples.
func (cfg Config) BufferSize() int {
	return cfg.FragSamples() * cfg.NumFrags
}
