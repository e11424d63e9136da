package backend

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

type constSynth struct{}

func (constSynth) ComputeSamples(sink pokey.Sink, count int, _ int, offset uint8) {
	for range count {
		sink.PutSample(0x40 + offset)
	}
}

// an SDL device with the device queue replaced
func newQueueSDL(t *testing.T, queue func(sdl.AudioDeviceID, []byte) error) (*SDL, *sound.Manager) {
	t.Helper()

	cfg := sound.DefaultConfig()
	cfg.FixedRate = true
	m, err := sound.NewManager(cfg, constSynth{}, nil)
	require.NoError(t, err)
	m.SetLogging(logger.Deny)

	s := NewSDL()
	s.m = m
	s.target = uint32(cfg.BufferSize() * cfg.Format.BytesPerSample())
	s.queued = func(sdl.AudioDeviceID) uint32 { return 0 }
	s.queue = queue

	return s, m
}

func TestSDLQueue(t *testing.T) {
	var queued int
	s, m := newQueueSDL(t, func(_ sdl.AudioDeviceID, b []byte) error {
		queued += len(b)
		return nil
	})

	frag := m.Config().FragSamples()
	m.GenerateSamples(frag)
	s.Poll()

	// a full buffer is queued
	assert.Equal(t, frag*m.Config().Format.BytesPerSample(), queued)
}

func TestSDLQueueError(t *testing.T) {
	logger.Clear()

	s, m := newQueueSDL(t, func(_ sdl.AudioDeviceID, _ []byte) error {
		return errors.New("device lost")
	})

	m.GenerateSamples(m.Config().FragSamples())
	s.Poll()

	var found bool
	for _, e := range logger.Entries() {
		if e.Tag == "sdl" && strings.Contains(e.Detail, "device lost") {
			found = true
		}
	}
	assert.True(t, found)
}
