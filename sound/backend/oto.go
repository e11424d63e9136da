package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

// the number of bytes buffered by the player below which the emulation is
// nudged
const prefetch = 2048

// Oto is a pull device using the oto library.
type Oto struct {
	ctx *oto.Context
	p   *oto.Player
	m   *sound.Manager

	nudger Nudger

	// the paused field is accessed by the Read() function via the audio
	// engine, and by the emulation which is in another goroutine
	crit   sync.Mutex
	paused bool
}

// NewOto is the preferred method of initialisation for the Oto type.
func NewOto(nudger Nudger) *Oto {
	return &Oto{nudger: nudger}
}

// Prepare implements the Device interface. The oto library only supports
// signed 16bit little-endian samples.
func (o *Oto) Prepare(cfg *sound.Config) {
	cfg.Format = buffer.Format{
		Signed:       true,
		SixteenBit:   true,
		LittleEndian: true,
		Stereo:       cfg.Format.Stereo,
		Interleaved:  cfg.Format.Interleaved,
	}
}

// Start implements the Device interface.
func (o *Oto) Start(m *sound.Manager) error {
	cfg := m.Config()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SamplingFreq,
		ChannelCount: cfg.Format.Channels(),
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("backend: oto: %w: %w", ErrDevice, err)
	}
	<-ready

	o.ctx = ctx
	o.m = m
	o.p = ctx.NewPlayer(o)
	o.p.Play()

	return nil
}

// Pause or resume playback.
func (o *Oto) Pause(paused bool) {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.paused = paused
	if o.p != nil {
		if paused {
			o.p.Pause()
		} else {
			o.p.Play()
		}
	}
}

// Read implements the io.Reader interface.
func (o *Oto) Read(buf []uint8) (int, error) {
	o.crit.Lock()
	defer o.crit.Unlock()
	if o.paused {
		return 0, nil
	}

	if o.nudger != nil && o.p.BufferedSize() < prefetch {
		o.nudger.Nudge()
	}

	return o.m.Read(buf)
}

// Close implements the Device interface.
func (o *Oto) Close() error {
	if o.p == nil {
		return nil
	}
	err := o.p.Close()
	o.p = nil
	if err != nil {
		return errors.Join(errors.New("backend: oto"), err)
	}
	return nil
}
