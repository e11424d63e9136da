package backend

import (
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

// Null is a polled device that discards all samples. Used when there is no
// audio hardware.
type Null struct {
	m *sound.Manager

	// number of samples discarded
	Samples int
}

// NewNull is the preferred method of initialisation for the Null type.
func NewNull() *Null {
	return &Null{}
}

// Prepare implements the Device interface. There is no device clock so the
// sample rate is fixed.
func (n *Null) Prepare(cfg *sound.Config) {
	cfg.FixedRate = true
}

// Start implements the Device interface.
func (n *Null) Start(m *sound.Manager) error {
	n.m = m
	m.AttachPoller(n)
	return nil
}

// Poll implements the sound.Poller interface.
func (n *Null) Poll() {
	_ = n.m.Drain(func(ab *buffer.AudioBuffer) error {
		n.Samples += ab.ReadySamples()
		return nil
	})
}

// Close implements the Device interface.
func (n *Null) Close() error {
	if n.m != nil {
		n.m.AttachPoller(nil)
		n.m = nil
	}
	return nil
}
