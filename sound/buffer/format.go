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

package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is returned when a sample format or channel count cannot be
// supported.
var ErrFormat = errors.New("audio format")

// Format of the samples in an AudioBuffer.
type Format struct {
	// samples are signed. unsigned samples are offset by 128
	Signed bool

	// samples are 16bit. the 8bit sample is placed in the high byte
	SixteenBit bool

	// byte order of 16bit samples
	LittleEndian bool

	// the sample is duplicated for a stereo device. this is the format used
	// when there is only one chip but the device only supports stereo
	Stereo bool

	// the buffer has a second slot for each sample, filled by a second chip
	Interleaved bool
}

func (f Format) String() string {
	var s strings.Builder

	if f.Signed {
		s.WriteString("signed")
	} else {
		s.WriteString("unsigned")
	}

	if f.SixteenBit {
		s.WriteString(" 16bit")
		if f.LittleEndian {
			s.WriteString(" little-endian")
		} else {
			s.WriteString(" big-endian")
		}
	} else {
		s.WriteString(" 8bit")
	}

	switch {
	case f.Stereo:
		s.WriteString(" stereo")
	case f.Interleaved:
		s.WriteString(" interleaved")
	default:
		s.WriteString(" mono")
	}

	return s.String()
}

// Validate returns an error wrapping ErrFormat if the format is not
// supported.
func (f Format) Validate() error {
	if f.Stereo && f.Interleaved {
		return fmt.Errorf("%w: stereo duplication of interleaved samples would require 4 channels", ErrFormat)
	}
	return nil
}

// Channels returns the number of channels the audio device must be opened
// with.
func (f Format) Channels() int {
	if f.Stereo || f.Interleaved {
		return 2
	}
	return 1
}

// BytesPerChannel returns the size of a single channel of a sample.
func (f Format) BytesPerChannel() int {
	if f.SixteenBit {
		return 2
	}
	return 1
}

// the number of bytes written by one chip for each sample
func (f Format) slotBytes() int {
	n := f.BytesPerChannel()
	if f.Stereo {
		n <<= 1
	}
	return n
}

// SampleShift is the exponent of the number of bytes used by each sample,
// including the interleave slot.
func (f Format) SampleShift() uint {
	var shift uint
	if f.Stereo {
		shift++
	}
	if f.SixteenBit {
		shift++
	}
	if f.Interleaved {
		shift++
	}
	return shift
}

// BytesPerSample returns the number of bytes used by each sample, including
// the interleave slot.
func (f Format) BytesPerSample() int {
	return 1 << f.SampleShift()
}

// Silence fills p with the silent level in the format.
func (f Format) Silence(p []uint8) {
	var level uint8
	if !f.Signed {
		level = 0x80
	}

	if !f.SixteenBit {
		for i := range p {
			p[i] = level
		}
		return
	}

	// the 16bit level is in the high byte only
	hi := 0
	if f.LittleEndian {
		hi = 1
	}
	for i := range p {
		if i&1 == hi {
			p[i] = level
		} else {
			p[i] = 0
		}
	}
}
