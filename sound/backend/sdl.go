package backend

import (
	"fmt"

	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL is a polled device using the SDL audio queue. Buffers are queued from
// the emulation goroutine as they are completed.
type SDL struct {
	dev sdl.AudioDeviceID
	m   *sound.Manager

	// number of bytes in the device queue above which no more buffers are
	// queued
	target uint32

	// access to the device queue
	queued func(sdl.AudioDeviceID) uint32
	queue  func(sdl.AudioDeviceID, []byte) error
}

// NewSDL is the preferred method of initialisation for the SDL type.
func NewSDL() *SDL {
	return &SDL{
		queued: sdl.GetQueuedAudioSize,
		queue:  sdl.QueueAudio,
	}
}

// Prepare implements the Device interface. All formats are supported by SDL
// so the configuration is unchanged.
func (s *SDL) Prepare(_ *sound.Config) {
}

func sdlFormat(f buffer.Format) sdl.AudioFormat {
	switch {
	case f.SixteenBit && f.Signed && f.LittleEndian:
		return sdl.AUDIO_S16LSB
	case f.SixteenBit && f.Signed:
		return sdl.AUDIO_S16MSB
	case f.SixteenBit && f.LittleEndian:
		return sdl.AUDIO_U16LSB
	case f.SixteenBit:
		return sdl.AUDIO_U16MSB
	case f.Signed:
		return sdl.AUDIO_S8
	}
	return sdl.AUDIO_U8
}

// Start implements the Device interface.
func (s *SDL) Start(m *sound.Manager) error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("backend: sdl: %w: %w", ErrDevice, err)
	}

	cfg := m.Config()

	spec := &sdl.AudioSpec{
		Freq:     int32(cfg.SamplingFreq),
		Format:   sdlFormat(cfg.Format),
		Channels: uint8(cfg.Format.Channels()),
		Samples:  uint16(cfg.FragSamples()),
	}

	var err error
	s.dev, err = sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return fmt.Errorf("backend: sdl: %w: %w", ErrDevice, err)
	}

	s.m = m
	s.target = uint32(cfg.BufferSize() * cfg.Format.BytesPerSample())
	m.AttachPoller(s)
	sdl.PauseAudioDevice(s.dev, false)

	return nil
}

// Poll implements the sound.Poller interface.
func (s *SDL) Poll() {
	if s.queued(s.dev) >= s.target {
		return
	}
	err := s.m.Drain(func(ab *buffer.AudioBuffer) error {
		return s.queue(s.dev, ab.Bytes())
	})
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "queue audio: %v", err)
	}
}

// Close implements the Device interface.
func (s *SDL) Close() error {
	if s.m == nil {
		return nil
	}
	s.m.AttachPoller(nil)
	s.m = nil
	sdl.CloseAudioDevice(s.dev)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}
