package backend

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

// Ebiten is a pull device using the audio package of the ebiten game engine.
// Useful when the ebiten display is also in use because there can only be
// one audio context in a program.
type Ebiten struct {
	p *audio.Player
	m *sound.Manager

	nudger Nudger
}

// NewEbiten is the preferred method of initialisation for the Ebiten type.
func NewEbiten(nudger Nudger) *Ebiten {
	return &Ebiten{nudger: nudger}
}

// Prepare implements the Device interface. The ebiten audio package expects
// signed 16bit little-endian stereo samples.
func (e *Ebiten) Prepare(cfg *sound.Config) {
	cfg.Format = buffer.Format{
		Signed:       true,
		SixteenBit:   true,
		LittleEndian: true,
		Stereo:       !cfg.Format.Interleaved,
		Interleaved:  cfg.Format.Interleaved,
	}
}

// Start implements the Device interface.
func (e *Ebiten) Start(m *sound.Manager) error {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(m.Config().SamplingFreq)
	} else if ctx.SampleRate() != m.Config().SamplingFreq {
		return fmt.Errorf("backend: ebiten: %w: audio context already exists with a sample rate of %d", buffer.ErrFormat, ctx.SampleRate())
	}

	e.m = m

	var err error
	e.p, err = ctx.NewPlayer(e)
	if err != nil {
		return fmt.Errorf("backend: ebiten: %w: %w", ErrDevice, err)
	}

	// the buffer is kept small. the latency is decided by the Manager
	e.p.SetBufferSize(time.Duration(m.Config().FragSamples()) * time.Second / time.Duration(m.Config().SamplingFreq))
	e.p.Play()

	return nil
}

// Read implements the io.Reader interface.
func (e *Ebiten) Read(buf []uint8) (int, error) {
	if e.nudger != nil && e.m.Status().Buffered < e.m.Config().FragSamples() {
		e.nudger.Nudge()
	}
	return e.m.Read(buf)
}

// Close implements the Device interface.
func (e *Ebiten) Close() error {
	if e.p == nil {
		return nil
	}
	err := e.p.Close()
	e.p = nil
	return err
}
