package backend

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

// the canonical 44 byte header of a PCM wav file
type wavHeader struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// WavHeaderSize is the size of the header written to the start of a wav file
const WavHeaderSize = 44

func newWavHeader(format buffer.Format, rate int, dataSize uint32) wavHeader {
	channels := format.Channels()
	bits := format.BytesPerChannel() * 8
	align := format.BytesPerSample()
	return wavHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      WavHeaderSize - 8 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		Channels:      uint16(channels),
		SampleRate:    uint32(rate),
		ByteRate:      uint32(rate * align),
		BlockAlign:    uint16(align),
		BitsPerSample: uint16(bits),
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// Wav is a polled device that records to a file. Recording starts with the
// first buffer that is not silent.
type Wav struct {
	filename   string
	sixteenBit bool

	f *os.File
	w *bufio.Writer
	m *sound.Manager

	// the value of a silent sample. taken from the first sample generated
	muting     uint8
	haveMuting bool
	recording  bool

	dataSize uint32

	// the first error encountered during recording. no more data is written
	// once an error has occurred
	err error
}

// NewWav is the preferred method of initialisation for the Wav type.
func NewWav(filename string, sixteenBit bool) *Wav {
	return &Wav{
		filename:   filename,
		sixteenBit: sixteenBit,
	}
}

// Prepare implements the Device interface. Samples in a wav file are either
// unsigned 8bit or signed 16bit little-endian. The sample rate is fixed.
func (w *Wav) Prepare(cfg *sound.Config) {
	cfg.Format = buffer.Format{
		Signed:       w.sixteenBit,
		SixteenBit:   w.sixteenBit,
		LittleEndian: true,
		Interleaved:  cfg.Format.Interleaved,
	}
	cfg.FixedRate = true
}

// Start implements the Device interface.
func (w *Wav) Start(m *sound.Manager) error {
	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("backend: wav: %w: %w", ErrDevice, err)
	}

	w.f = f
	w.w = bufio.NewWriter(f)
	w.m = m

	// the header is written again with the correct sizes when the file is
	// closed
	err = binary.Write(w.w, binary.LittleEndian, newWavHeader(m.Config().Format, m.Config().SamplingFreq, 0))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("backend: wav: %w", err)
	}

	m.AttachPoller(w)
	return nil
}

// Recording returns true if samples are being written to the file.
func (w *Wav) Recording() bool {
	return w.recording
}

func (w *Wav) write(ab *buffer.AudioBuffer) error {
	if w.err != nil {
		return w.err
	}

	if !w.recording {
		if ab.IsEmpty() {
			return nil
		}
		if !w.haveMuting {
			w.muting = ab.GetSample()
			w.haveMuting = true
			ab.Rewind()
		}
		if !ab.CheckForMuting(w.muting) {
			return nil
		}
		w.recording = true
		logger.Logf(logger.Allow, "wav", "recording to %s", w.filename)
	}

	n, err := w.w.Write(ab.Bytes())
	w.dataSize += uint32(n)
	if err != nil {
		w.err = fmt.Errorf("backend: wav: recording aborted: %w", err)
		logger.Log(logger.Allow, "wav", w.err)
	}
	return w.err
}

// Poll implements the sound.Poller interface.
func (w *Wav) Poll() {
	_ = w.m.Drain(w.write)
}

// Close implements the Device interface. Remaining samples are written and
// the header is updated.
func (w *Wav) Close() error {
	if w.f == nil {
		return nil
	}

	w.m.AttachPoller(nil)
	_ = w.m.Flush(w.write)

	err := w.w.Flush()
	if err == nil {
		_, err = w.f.Seek(0, io.SeekStart)
	}
	if err == nil {
		err = binary.Write(w.f, binary.LittleEndian, newWavHeader(w.m.Config().Format, w.m.Config().SamplingFreq, w.dataSize))
	}

	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.f = nil

	if err != nil {
		return fmt.Errorf("backend: wav: %w", err)
	}
	return w.err
}
