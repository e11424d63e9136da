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

package sound_test

import (
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// produces the same sample value every time. the offset is added to the value
type constSynth struct {
	value  uint8
	offset uint8
	count  int
}

func (s *constSynth) ComputeSamples(sink pokey.Sink, count int, _ int, offset uint8) {
	s.offset = offset
	s.count += count
	for range count {
		sink.PutSample(s.value + offset)
	}
}

type countingPoller struct {
	polls int
}

func (p *countingPoller) Poll() {
	p.polls++
}

func newManager(t *testing.T, format buffer.Format, left sound.Synthesizer, right sound.Synthesizer) *sound.Manager {
	t.Helper()
	cfg := sound.DefaultConfig()
	cfg.Format = format
	m, err := sound.NewManager(cfg, left, right)
	require.NoError(t, err)
	m.SetLogging(logger.Deny)
	return m
}

func TestNewManagerErrors(t *testing.T) {
	cfg := sound.DefaultConfig()
	_, err := sound.NewManager(cfg, nil, nil)
	assert.Error(t, err)

	cfg.Format = buffer.Format{Signed: true, Interleaved: true}
	_, err = sound.NewManager(cfg, &constSynth{}, nil)
	assert.ErrorIs(t, err, buffer.ErrFormat)

	cfg = sound.DefaultConfig()
	cfg.SamplingFreq = 100
	_, err = sound.NewManager(cfg, &constSynth{}, nil)
	assert.ErrorIs(t, err, buffer.ErrFormat)
}

func TestGenerateReusesTail(t *testing.T) {
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)

	assert.Equal(t, 100, m.GenerateSamples(100))
	assert.Equal(t, 1, m.Status().ReadyBuffers)

	// fits in the remainder of the first fragment
	m.GenerateSamples(100)
	assert.Equal(t, 1, m.Status().ReadyBuffers)

	// does not fit
	m.GenerateSamples(400)
	assert.Equal(t, 2, m.Status().ReadyBuffers)
	assert.Equal(t, 600, m.Status().Buffered)

	assert.Equal(t, 0, m.GenerateSamples(0))
	assert.Equal(t, 600, m.Status().Buffered)
}

func TestGenerateInterleaved(t *testing.T) {
	frag := sound.DefaultConfig().FragSamples()
	m := newManager(t, buffer.Format{Signed: true, Interleaved: true}, &constSynth{value: 1}, &constSynth{value: 2})
	m.GenerateSamples(frag)

	var data []uint8
	err := m.Drain(func(ab *buffer.AudioBuffer) error {
		data = append(data, ab.Bytes()...)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, data, frag*2)
	for i := 0; i < len(data); i += 2 {
		assert.Equal(t, uint8(1), data[i])
		assert.Equal(t, uint8(2), data[i+1])
	}
	assert.Equal(t, 0, m.Status().Buffered)
	assert.Equal(t, 1, m.Status().FreeBuffers)
}

func TestConsoleSpeaker(t *testing.T) {
	synth := &constSynth{}
	m := newManager(t, buffer.Format{Signed: true}, synth, nil)

	m.GenerateSamples(1)
	assert.Equal(t, uint8(0), synth.offset)

	m.ConsoleSpeaker(true)
	m.GenerateSamples(1)
	assert.Equal(t, uint8(sound.DefaultConfig().ConsoleVolume), synth.offset)

	m.ConsoleSpeaker(false)
	m.GenerateSamples(1)
	assert.Equal(t, uint8(0), synth.offset)
}

func TestOverrunWithinBounds(t *testing.T) {
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)
	freq := m.Status().EffectiveFreq

	// nothing is buffered so there is no overrun
	m.Overrun()
	m.Overrun()
	assert.Equal(t, freq, m.Status().EffectiveFreq)
	assert.Equal(t, 0, m.Status().Overruns)
}

func TestOverrun(t *testing.T) {
	cfg := sound.DefaultConfig()
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)

	m.GenerateSamples(cfg.BufferSize() + cfg.FragSamples() + 1000)
	m.Overrun()

	st := m.Status()
	assert.Less(t, st.EffectiveFreq, cfg.SamplingFreq)
	assert.Negative(t, st.DifferentialAdjust)
	assert.GreaterOrEqual(t, st.DifferentialAdjust, -(st.EffectiveFreq >> 1))
	assert.Equal(t, 1, st.Overruns)

	// the temporary adjustment is cleared by the next frame
	require.NoError(t, m.Drain(func(_ *buffer.AudioBuffer) error { return nil }))
	m.UpdateSound(nil)
	assert.Equal(t, 0, m.Status().DifferentialAdjust)
}

func TestUnderrunClamp(t *testing.T) {
	cfg := sound.DefaultConfig()
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)

	prev := m.Status().EffectiveFreq
	for range 5000 {
		m.Underrun()
		freq := m.Status().EffectiveFreq
		assert.GreaterOrEqual(t, freq, prev)
		assert.LessOrEqual(t, freq, cfg.SamplingFreq*2)
		prev = freq
	}
	assert.Equal(t, cfg.SamplingFreq*2, prev)
}

func TestOverrunClamp(t *testing.T) {
	cfg := sound.DefaultConfig()
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)
	m.GenerateSamples(cfg.BufferSize() + cfg.FragSamples() + 1000)

	prev := m.Status().EffectiveFreq
	for range 20000 {
		m.Overrun()
		s := m.Status()
		assert.LessOrEqual(t, s.EffectiveFreq, prev)
		assert.GreaterOrEqual(t, s.EffectiveFreq, cfg.SamplingFreq/2)
		assert.Positive(t, s.EffectiveFreq+s.DifferentialAdjust)
		prev = s.EffectiveFreq
	}
	assert.Equal(t, cfg.SamplingFreq/2, prev)
}

func TestUnderrunWithinBounds(t *testing.T) {
	cfg := sound.DefaultConfig()
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)
	m.GenerateSamples(cfg.BufferSize())

	m.Underrun()
	assert.Equal(t, cfg.SamplingFreq, m.Status().EffectiveFreq)
	assert.Equal(t, 0, m.Status().Underruns)
}

func TestTickConversion(t *testing.T) {
	cfg := sound.DefaultConfig()
	cfg.Format = buffer.Format{Signed: true}
	cfg.FixedRate = true

	poller := &countingPoller{}
	m, err := sound.NewManager(cfg, &constSynth{}, nil)
	require.NoError(t, err)
	m.AttachPoller(poller)

	// one second of scanlines is exactly one second of samples
	for range cfg.PokeyFreq {
		m.Tick(114)
	}
	assert.Equal(t, cfg.SamplingFreq, m.Status().Buffered)
	assert.Equal(t, cfg.PokeyFreq, poller.polls)
}

func TestReadSilence(t *testing.T) {
	m := newManager(t, sound.DefaultConfig().Format, &constSynth{value: 10}, nil)

	p := make([]uint8, 102)
	for i := range p {
		p[i] = 0xff
	}

	n, err := m.Read(p)
	require.NoError(t, err)

	// rounded down to whole samples
	assert.Equal(t, 100, n)
	for i := range n {
		assert.Equal(t, uint8(0), p[i])
	}
	assert.Equal(t, 25, m.Status().Silence)
	assert.Equal(t, 1, m.Status().Underruns)
}

func TestReadReady(t *testing.T) {
	frag := sound.DefaultConfig().FragSamples()
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{value: 5}, nil)
	m.GenerateSamples(frag)

	p := make([]uint8, frag/2)
	n, err := m.Read(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)
	for _, v := range p {
		assert.Equal(t, uint8(5), v)
	}

	st := m.Status()
	assert.Equal(t, frag/2, st.Buffered)
	assert.True(t, st.Playing)
	assert.Equal(t, 0, st.Silence)
}

func TestReadPartialBuffer(t *testing.T) {
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{value: 5}, nil)

	// a partly filled buffer is not played
	m.GenerateSamples(10)
	p := make([]uint8, 10)
	_, err := m.Read(p)
	require.NoError(t, err)
	assert.Equal(t, make([]uint8, 10), p)

	// until a new buffer is started after it
	m.GenerateSamples(sound.DefaultConfig().FragSamples())
	_, err = m.Read(p)
	require.NoError(t, err)
	for _, v := range p {
		assert.Equal(t, uint8(5), v)
	}
}

func TestReadDuringWait(t *testing.T) {
	synth := &constSynth{value: 7}
	m := newManager(t, buffer.Format{Signed: true}, synth, nil)

	p := make([]uint8, 300)
	m.UpdateSound(func() {
		n, err := m.Read(p)
		require.NoError(t, err)
		assert.Equal(t, len(p), n)
	})

	for _, v := range p {
		assert.Equal(t, uint8(7), v)
	}
	assert.Equal(t, 0, m.Status().Silence)

	// the buffer was topped up after the wait
	cfg := sound.DefaultConfig()
	assert.GreaterOrEqual(t, m.Status().Buffered, cfg.FragSamples()<<2)
}

func TestFlush(t *testing.T) {
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{value: 3}, nil)
	m.GenerateSamples(10)

	var drained int
	require.NoError(t, m.Drain(func(ab *buffer.AudioBuffer) error {
		drained += ab.ReadySamples()
		return nil
	}))
	assert.Equal(t, 0, drained)

	require.NoError(t, m.Flush(func(ab *buffer.AudioBuffer) error {
		drained += ab.ReadySamples()
		return nil
	}))
	assert.Equal(t, 10, drained)
	assert.Equal(t, 0, m.Status().Buffered)
}

func TestManagerWarmStart(t *testing.T) {
	m := newManager(t, buffer.Format{Signed: true}, &constSynth{}, nil)
	m.GenerateSamples(1000)
	m.Underrun()
	m.ConsoleSpeaker(true)

	m.WarmStart()
	st := m.Status()
	assert.Equal(t, 0, st.Buffered)
	assert.Equal(t, 0, st.ReadyBuffers)
	assert.Equal(t, 1, st.FreeBuffers)
	assert.Equal(t, sound.DefaultConfig().SamplingFreq, st.EffectiveFreq)
}
