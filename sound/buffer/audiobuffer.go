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

// SampleSink receives one signed 8bit sample per call.
type SampleSink interface {
	PutSample(sample uint8)
}

// AudioBuffer is a run of bytes with read and write cursors. Samples are
// written at the write cursor and consumed from the read cursor. The read
// cursor never passes the write cursor and the write cursor never passes the
// end of the buffer.
//
// Consumed bytes are not reclaimed until the buffer is reallocated with
// Realloc() or reset with Reset().
type AudioBuffer struct {
	format Format
	shift  uint

	data     []uint8
	readPtr  int
	writePtr int
}

// NewAudioBuffer is the preferred method of initialisation for the
// AudioBuffer type. The buffer has no space until Realloc() is called.
func NewAudioBuffer(format Format) *AudioBuffer {
	return &AudioBuffer{
		format: format,
		shift:  format.SampleShift(),
	}
}

// Format returns the sample format of the buffer.
func (b *AudioBuffer) Format() Format {
	return b.format
}

// SampleShift is the exponent of the number of bytes per sample.
func (b *AudioBuffer) SampleShift() uint {
	return b.shift
}

// Realloc makes room for the number of samples. The buffer only grows. The
// read and write cursors are reset to the start of the buffer.
func (b *AudioBuffer) Realloc(samples int) {
	size := max(samples, 0) << b.shift
	if size > len(b.data) {
		b.data = make([]uint8, size)
	}
	b.readPtr = 0
	b.writePtr = 0
}

// Reset the read and write cursors to the start of the buffer.
func (b *AudioBuffer) Reset() {
	b.readPtr = 0
	b.writePtr = 0
}

// Rewind moves the read cursor to the start of the buffer. Samples that have
// been read are made ready again.
func (b *AudioBuffer) Rewind() {
	b.readPtr = 0
}

// Cap returns the size of the buffer in bytes.
func (b *AudioBuffer) Cap() int {
	return len(b.data)
}

// ReadPos returns the position of the read cursor.
func (b *AudioBuffer) ReadPos() int {
	return b.readPtr
}

// WritePos returns the position of the write cursor.
func (b *AudioBuffer) WritePos() int {
	return b.writePtr
}

// SetWritePos moves the write cursor. It is used to direct the output of a
// second chip to the interleave slot.
func (b *AudioBuffer) SetWritePos(pos int) {
	if pos < b.readPtr || pos > len(b.data) {
		invariant("SetWritePos", "write cursor moved outside of the buffer")
	}
	b.writePtr = pos
}

// ReadyBytes returns the number of bytes that can be played.
func (b *AudioBuffer) ReadyBytes() int {
	if b.writePtr < b.readPtr {
		invariant("ReadyBytes", "an empty audio buffer has been detected in the queue")
	}
	return b.writePtr - b.readPtr
}

// FreeBytes returns the number of bytes that can be filled.
func (b *AudioBuffer) FreeBytes() int {
	if b.writePtr > len(b.data) {
		invariant("FreeBytes", "an overrun audio buffer has been detected in the queue")
	}
	return len(b.data) - b.writePtr
}

// ReadySamples returns the number of samples that can be played.
func (b *AudioBuffer) ReadySamples() int {
	return b.ReadyBytes() >> b.shift
}

// FreeSamples returns the number of samples that can be filled.
func (b *AudioBuffer) FreeSamples() int {
	return b.FreeBytes() >> b.shift
}

// IsEmpty returns true if there is nothing to play.
func (b *AudioBuffer) IsEmpty() bool {
	return b.readPtr >= b.writePtr
}

// ChannelOffset returns the number of bytes from the write cursor to the
// interleave slot. It is zero if the format is not interleaved.
func (b *AudioBuffer) ChannelOffset() int {
	if !b.format.Interleaved {
		return 0
	}
	return b.format.slotBytes()
}

// PutSample implements the SampleSink interface.
func (b *AudioBuffer) PutSample(out uint8) {
	if b.writePtr+b.format.slotBytes() > len(b.data) {
		invariant("PutSample", "an overrun audio buffer has been detected in the queue")
	}

	if !b.format.Signed {
		out += 128
	}

	// the 8bit sample is placed in the high byte of a 16bit sample
	if b.format.SixteenBit {
		hi, lo := 1, 0
		if !b.format.LittleEndian {
			hi, lo = 0, 1
		}
		b.data[b.writePtr+hi] = out
		b.data[b.writePtr+lo] = 0
		b.writePtr += 2
		if b.format.Stereo {
			b.data[b.writePtr+hi] = out
			b.data[b.writePtr+lo] = 0
			b.writePtr += 2
		}
	} else {
		b.data[b.writePtr] = out
		b.writePtr++
		if b.format.Stereo {
			b.data[b.writePtr] = out
			b.writePtr++
		}
	}

	// skip the slot of the second chip
	if b.format.Interleaved {
		b.writePtr += b.format.slotBytes()
	}
}

// GetSample returns the sample at the read cursor as a signed 8bit sample. It
// is the inverse of PutSample().
func (b *AudioBuffer) GetSample() uint8 {
	if b.readPtr+b.format.slotBytes() > b.writePtr {
		invariant("GetSample", "an empty audio buffer has been detected in the queue")
	}

	var data uint8
	if b.format.SixteenBit && b.format.LittleEndian {
		data = b.data[b.readPtr+1]
	} else {
		data = b.data[b.readPtr]
	}

	// the duplicated stereo sample and the interleave slot are skipped
	b.readPtr += b.format.slotBytes()
	if b.format.Interleaved {
		b.readPtr += b.format.slotBytes()
	}

	if !b.format.Signed {
		data -= 128
	}
	return data
}

// CopyBuffer converts the ready samples of src into the format of this buffer
// and adds them at the write cursor. No more samples are copied than there is
// room for. The samples are consumed from src.
func (b *AudioBuffer) CopyBuffer(src *AudioBuffer) {
	samples := min(src.ReadySamples(), b.FreeSamples())

	srcPtr := src.readPtr
	dstPtr := b.writePtr

	for range samples {
		b.PutSample(src.GetSample())
	}

	// the second channel of an interleaved buffer is copied separately. if
	// the source is not interleaved the first channel is copied again
	if offset := b.ChannelOffset(); offset != 0 {
		end := src.readPtr
		src.readPtr = srcPtr + src.ChannelOffset()
		b.writePtr = dstPtr + offset
		for range samples {
			b.PutSample(src.GetSample())
		}
		src.readPtr = end
		b.writePtr -= offset
	}
}

// AddOffset adds the offset to every sample from the start of the buffer to
// the write cursor. It is used to add the console speaker after the samples
// have been generated.
func (b *AudioBuffer) AddOffset(offset uint8) {
	step, pos := 1, 0
	if b.format.SixteenBit {
		step = 2
		if b.format.LittleEndian {
			pos = 1
		}
	}
	for ; pos < b.writePtr; pos += step {
		b.data[pos] += offset
	}
}

// CheckForMuting returns true if any sample from the start of the buffer to
// the write cursor is different to the value. The value is a signed sample.
func (b *AudioBuffer) CheckForMuting(value uint8) bool {
	if !b.format.Signed {
		value += 128
	}

	step, pos := 1, 0
	if b.format.SixteenBit {
		step = 2
		if b.format.LittleEndian {
			pos = 1
		}
	}
	for ; pos < b.writePtr; pos += step {
		if b.data[pos] != value {
			return true
		}
	}
	return false
}

// Bytes returns the bytes that are ready to be played. The bytes are not
// consumed. The slice is only valid until the buffer is next written to.
func (b *AudioBuffer) Bytes() []uint8 {
	return b.data[b.readPtr:b.writePtr]
}

// Consume n bytes from the read cursor. It is not possible to consume more
// bytes than are ready.
func (b *AudioBuffer) Consume(n int) {
	b.readPtr += min(max(n, 0), b.ReadyBytes())
}

// Read implements the io.Reader interface. It copies the ready bytes into p
// and consumes them.
func (b *AudioBuffer) Read(p []uint8) (int, error) {
	n := copy(p, b.data[b.readPtr:b.writePtr])
	b.readPtr += n
	return n, nil
}
