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
	"errors"
	"fmt"
	"sync"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

// Synthesizer produces samples. Implemented by pokey.Pokey.
type Synthesizer interface {
	ComputeSamples(sink pokey.Sink, count int, rate int, offset uint8)
}

// Poller is implemented by devices that must be fed from the emulation. The
// Poll() function is called on every Tick().
type Poller interface {
	Poll()
}

// Manager owns the audio buffers and decides how many samples the chips
// should produce.
//
// Every buffer is in exactly one of three places: the free pool, the ready
// queue or the playing slot. Buffers move from the free pool to the ready
// queue when they are filled, from the ready queue to the playing slot when
// the device starts reading them, and back to the free pool when they have
// been played.
type Manager struct {
	// critical section shared with the device goroutine. all access to the
	// buffers, the rate controller and, when called from Read(), the chips
	// happens inside the critical section
	crit sync.Mutex

	cfg  Config
	perm logger.Permission

	left  Synthesizer
	right Synthesizer

	free    []*buffer.AudioBuffer
	ready   []*buffer.AudioBuffer
	playing *buffer.AudioBuffer

	// the rate of sample generation in Hz. the differential adjustment is a
	// temporary change to the effective frequency that is cleared every frame
	effectiveFreq      int64
	differentialAdjust int64

	// samples generated but not yet played
	bufferedSamples int64

	// the remainder of the cycles to samples conversion
	cycleCarry int64

	// samples due to be generated on the next Tick()
	updateSamples int64

	// the chip parameters have changed and the buffers should be updated as
	// soon as possible
	updateBuffer bool

	// the emulation is waiting in UpdateSound() and Read() is allowed to
	// generate samples
	mayRunChips bool

	speaker bool

	// number of silent samples given to Read() because there was nothing to
	// play
	silence int64

	// count of rate corrections
	overruns  int
	underruns int

	poller Poller
}

// NewManager is the preferred method of initialisation for the Manager type.
// The right chip is optional but must be provided if the format is
// interleaved.
func NewManager(cfg Config, left Synthesizer, right Synthesizer) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	if left == nil {
		return nil, errors.New("sound: a chip is required")
	}
	if cfg.Format.Interleaved && right == nil {
		return nil, fmt.Errorf("sound: %w: interleaved format requires a second chip", buffer.ErrFormat)
	}

	m := &Manager{
		cfg:   cfg,
		perm:  logger.Allow,
		left:  left,
		right: right,
	}
	m.WarmStart()

	return m, nil
}

// SetLogging sets the permission used for log entries created by the Manager.
func (m *Manager) SetLogging(perm logger.Permission) {
	m.perm = perm
}

// AttachPoller connects a device that must be fed from the emulation.
func (m *Manager) AttachPoller(p Poller) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.poller = p
}

// Config returns the configuration of the Manager.
func (m *Manager) Config() Config {
	return m.cfg
}

// WarmStart discards all buffers and resets the rate controller. It is safe
// to call while a device is reading.
func (m *Manager) WarmStart() {
	m.crit.Lock()
	defer m.crit.Unlock()

	m.speaker = false
	m.cleanBuffer()

	m.effectiveFreq = int64(m.cfg.SamplingFreq)
	m.differentialAdjust = 0
	m.bufferedSamples = 0
	m.cycleCarry = 0
	m.updateSamples = 0
	m.updateBuffer = false
	m.silence = 0
	m.overruns = 0
	m.underruns = 0
}

// all buffers are returned to the free pool
func (m *Manager) cleanBuffer() {
	for _, ab := range m.ready {
		ab.Reset()
		m.free = append(m.free, ab)
	}
	m.ready = m.ready[:0]
	if m.playing != nil {
		m.playing.Reset()
		m.free = append(m.free, m.playing)
		m.playing = nil
	}
}

// ConsoleSpeaker turns the console speaker on or off.
func (m *Manager) ConsoleSpeaker(on bool) {
	m.crit.Lock()
	defer m.crit.Unlock()
	if m.speaker != on {
		m.speaker = on
		m.updateBuffer = true
	}
}

// GenerateSamples asks the chips for the number of samples and adds them to
// the ready queue. It returns the number of samples generated.
func (m *Manager) GenerateSamples(n int) int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.generate(n)
}

// generate must be called from inside the critical section
func (m *Manager) generate(n int) int {
	if n <= 0 {
		return 0
	}

	frag := m.cfg.FragSamples()

	// the tail of the ready queue is used if there is room for all the
	// samples. otherwise a buffer of at least a fragment is taken from the
	// free pool or created
	var ab *buffer.AudioBuffer
	if len(m.ready) > 0 {
		ab = m.ready[len(m.ready)-1]
	}
	if ab == nil || ab.FreeSamples() < n {
		if len(m.free) > 0 {
			ab = m.free[0]
			m.free = m.free[1:]
		} else {
			ab = buffer.NewAudioBuffer(m.cfg.Format)
		}
		m.ready = append(m.ready, ab)
		ab.Realloc(max(n, frag))
	}

	var offset uint8
	if m.cfg.ConsoleSpeaker && m.speaker {
		offset = uint8(m.cfg.ConsoleVolume)
	}

	start := ab.WritePos()
	m.left.ComputeSamples(ab, n, m.cfg.SamplingFreq, offset)

	// the second chip writes into the interleave slot
	if disp := ab.ChannelOffset(); disp != 0 {
		end := ab.WritePos()
		ab.SetWritePos(start + disp)
		m.right.ComputeSamples(ab, n, m.cfg.SamplingFreq, offset)
		ab.SetWritePos(end)
	}

	m.bufferedSamples += int64(n)
	return n
}

// the target number of buffered samples above which the rate is reduced
func (m *Manager) highWater() int64 {
	return int64(m.cfg.BufferSize() + m.cfg.FragSamples())
}

// the number of buffered samples below which the rate is increased
func (m *Manager) lowWater() int64 {
	return int64(m.cfg.FragSamples() << 2)
}

// Overrun reduces the rate of sample generation if the number of buffered
// samples is above the high water mark. It has no effect otherwise.
func (m *Manager) Overrun() {
	m.crit.Lock()
	defer m.crit.Unlock()
	if m.bufferedSamples > m.highWater() {
		m.adjustOverrun()
	}
}

// Underrun increases the rate of sample generation if the number of buffered
// samples is below the low water mark. It has no effect otherwise.
func (m *Manager) Underrun() {
	m.crit.Lock()
	defer m.crit.Unlock()
	if m.bufferedSamples < m.lowWater() {
		m.adjustUnderrun()
	}
}

// too many samples are buffered. the frequency is reduced by a small amount,
// down to half the sampling frequency, and a temporary reduction proportional
// to the excess is added on top
func (m *Manager) adjustOverrun() {
	if m.cfg.FixedRate {
		return
	}

	newfreq := (m.effectiveFreq * 4095) >> 12
	if newfreq >= m.effectiveFreq {
		newfreq--
	}
	newfreq = max(newfreq, int64(m.cfg.SamplingFreq)>>1)
	m.effectiveFreq = newfreq

	m.differentialAdjust = -((m.bufferedSamples - int64(m.cfg.BufferSize())) * newfreq) >> 13
	if -m.differentialAdjust >= newfreq>>1 {
		m.differentialAdjust = -(newfreq >> 1)
	}

	// samples that would have been generated are dropped
	m.updateSamples = 0

	m.overruns++
	logger.Log(m.perm, "sound", "buffer overrun: reducing sample rate")
}

// too few samples are buffered. the frequency is increased by a small amount
// up to twice the sampling frequency
func (m *Manager) adjustUnderrun() {
	if m.cfg.FixedRate {
		return
	}

	newfreq := (m.effectiveFreq << 12) / 4095
	if newfreq <= m.effectiveFreq {
		newfreq++
	}
	m.effectiveFreq = min(newfreq, int64(m.cfg.SamplingFreq)<<1)

	m.differentialAdjust = 0
	m.updateBuffer = true

	m.underruns++
	logger.Log(m.perm, "sound", "buffer underrun: increasing sample rate")
}

// Tick converts the number of CPU cycles into samples and generates them.
// Should be called once per scanline.
func (m *Manager) Tick(cycles int) {
	m.crit.Lock()
	poller := m.poller
	m.crit.Unlock()

	// the poller reads from the Manager so it must be called outside of the
	// critical section
	if poller != nil {
		poller.Poll()
	}

	m.crit.Lock()
	defer m.crit.Unlock()

	remaining := m.effectiveFreq + m.differentialAdjust
	div := int64(m.cfg.PokeyFreq) * clocks.ScanlineCycles
	samples := (remaining*int64(cycles) + m.cycleCarry) / div
	m.cycleCarry += remaining*int64(cycles) - samples*div

	m.updateSamples += samples
	if m.updateSamples > 0 {
		m.generate(int(m.updateSamples))
		m.updateSamples = 0
		m.updateBuffer = false
	}
}

// UpdateSound should be called once per frame. The frequency is reduced if
// too many samples are buffered. The wait function is then called, during
// which the device may generate samples itself if it runs out. Finally, the
// buffer is topped up if it is running low.
func (m *Manager) UpdateSound(wait func()) {
	m.crit.Lock()
	m.updateBuffer = true
	m.differentialAdjust = 0
	if m.bufferedSamples > m.highWater() {
		m.adjustOverrun()
	}
	m.mayRunChips = true
	m.crit.Unlock()

	if wait != nil {
		wait()
	}

	m.crit.Lock()
	m.mayRunChips = false
	if !m.cfg.FixedRate && m.bufferedSamples < m.lowWater() {
		m.generate(int(m.lowWater() - m.bufferedSamples))
		m.adjustUnderrun()
	}
	poller := m.poller
	m.crit.Unlock()

	if poller != nil {
		poller.Poll()
	}
}

// a ready buffer is complete if it is full or if a later buffer has been
// started because it did not have room for the last request
func (m *Manager) complete(i int) bool {
	return m.ready[i].FreeSamples() == 0 || i < len(m.ready)-1
}

// the next buffer to play. only complete buffers are played
func (m *Manager) nextPlaying() bool {
	if m.playing != nil {
		return true
	}
	if len(m.ready) == 0 || !m.complete(0) {
		return false
	}
	m.playing = m.ready[0]
	m.ready = m.ready[1:]
	return true
}

// Read implements the io.Reader interface for devices that are driven by
// their own goroutine. Only whole samples are read. If there is nothing to
// play, and the chips cannot be run, the remainder of p is filled with
// silence.
func (m *Manager) Read(p []uint8) (int, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	bps := m.cfg.Format.BytesPerSample()
	want := len(p) &^ (bps - 1)

	var n int
	var underrun bool

	for n < want {
		if !m.nextPlaying() {
			if !underrun {
				underrun = true
				m.adjustUnderrun()
			}

			if !m.mayRunChips {
				m.cfg.Format.Silence(p[n:want])
				m.silence += int64((want - n) / bps)
				n = want
				break
			}

			// fill the tail of the ready queue or create a new buffer
			fill := (want - n) / bps
			if len(m.ready) > 0 {
				fill = m.ready[len(m.ready)-1].FreeSamples()
			}
			m.generate(max(fill, m.cfg.FragSamples()))
			continue
		}

		c := copy(p[n:want], m.playing.Bytes())
		m.playing.Consume(c)
		m.bufferedSamples -= int64(c / bps)
		n += c

		if m.playing.IsEmpty() {
			m.free = append(m.free, m.playing)
			m.playing = nil
		}
	}

	return n, nil
}

// Drain passes every complete buffer in the ready queue to the
// function. The buffer is returned to the free pool when the function
// returns. Used by devices that write whole buffers.
func (m *Manager) Drain(f func(ab *buffer.AudioBuffer) error) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	for len(m.ready) > 0 && m.complete(0) {
		ab := m.ready[0]
		m.ready = m.ready[1:]
		m.bufferedSamples -= int64(ab.ReadySamples())

		err := f(ab)
		ab.Reset()
		m.free = append(m.free, ab)
		if err != nil {
			return err
		}
	}

	return nil
}

// Flush passes the remaining samples in the ready queue to the function,
// including the partly filled tail. Used when a device is closed.
func (m *Manager) Flush(f func(ab *buffer.AudioBuffer) error) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	for len(m.ready) > 0 {
		ab := m.ready[0]
		m.ready = m.ready[1:]
		m.bufferedSamples -= int64(ab.ReadySamples())

		err := f(ab)
		ab.Reset()
		m.free = append(m.free, ab)
		if err != nil {
			return err
		}
	}

	return nil
}

// Status is a summary of the Manager's state.
type Status struct {
	EffectiveFreq      int
	DifferentialAdjust int
	Buffered           int
	ReadyBuffers       int
	FreeBuffers        int
	Playing            bool
	Overruns           int
	Underruns          int
	Silence            int
}

func (s Status) String() string {
	return fmt.Sprintf("%dHz (%+d) buffered=%d ready=%d free=%d overruns=%d underruns=%d",
		s.EffectiveFreq, s.DifferentialAdjust, s.Buffered, s.ReadyBuffers, s.FreeBuffers,
		s.Overruns, s.Underruns)
}

// Status returns the current state of the Manager.
func (m *Manager) Status() Status {
	m.crit.Lock()
	defer m.crit.Unlock()
	return Status{
		EffectiveFreq:      int(m.effectiveFreq),
		DifferentialAdjust: int(m.differentialAdjust),
		Buffered:           int(m.bufferedSamples),
		ReadyBuffers:       len(m.ready),
		FreeBuffers:        len(m.free),
		Playing:            m.playing != nil,
		Overruns:           m.overruns,
		Underruns:          m.underruns,
		Silence:            int(m.silence),
	}
}
