package hardware

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
	"github.com/jetsetilly/pokeyplay/hardware/peripherals"
	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/hardware/spec"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/sound"
)

// Player writes to the chips at regular intervals. Implemented by the
// players in the sap package.
type Player interface {
	Frame() error
	FastPlay() int
}

// Console drives one or two chips and the sound manager a scanline at a
// time. The sound manager is ticked at the end of every scanline and updated
// at the end of every frame.
type Console struct {
	Spec    spec.Spec
	Chips   []*pokey.Pokey
	Paddles *peripherals.Paddles
	Sound   *sound.Manager

	player Player

	// scanlines until the next call of the player
	countdown int

	// paces the emulation. nil if the emulation runs as fast as possible
	lmt *limiter

	frames int

	// state of the interrupt line
	irq      bool
	irqCount int
}

// NewConsole is the preferred method of initialisation for the Console type.
// The clock in the chip configuration is replaced by the clock of the TV
// specification.
func NewConsole(tv spec.Spec, stereo bool, cfg pokey.Config) *Console {
	con := &Console{
		Spec:    tv,
		Paddles: peripherals.NewPaddles(),
	}

	n := 1
	if stereo {
		n = 2
	}

	cfg.Clock = tv.Clock
	for i := range n {
		pk := pokey.NewPokey(i)
		pk.Configure(cfg)
		pk.AttachIRQ(con)
		con.Chips = append(con.Chips, pk)
	}
	con.Chips[0].AttachPaddles(con.Paddles)

	return con
}

// Left returns the chip used for the left channel, or the only chip.
func (con *Console) Left() *pokey.Pokey {
	return con.Chips[0]
}

// Right returns the chip used for the right channel. Returns nil if the
// console is not stereo.
func (con *Console) Right() *pokey.Pokey {
	if len(con.Chips) < 2 {
		return nil
	}
	return con.Chips[1]
}

// AttachSound connects the sound manager.
func (con *Console) AttachSound(m *sound.Manager) {
	con.Sound = m
}

// AttachPlayer connects the player. The player is called immediately on the
// next scanline.
func (con *Console) AttachPlayer(p Player) {
	con.player = p
	con.countdown = 0
}

// SetRealtime paces the emulation to the frame rate of the TV specification.
func (con *Console) SetRealtime(on bool) {
	if con.lmt != nil {
		con.lmt.Stop()
		con.lmt = nil
	}
	if on {
		con.lmt = newLimiter(con.Spec)
	}
}

// Nudge implements the backend.Nudger interface.
func (con *Console) Nudge() {
	if con.lmt != nil {
		con.lmt.Nudge()
	}
}

// PullIRQ implements the pokey.IRQLine interface.
func (con *Console) PullIRQ() {
	if !con.irq {
		con.irqCount++
	}
	con.irq = true
}

// DropIRQ implements the pokey.IRQLine interface.
func (con *Console) DropIRQ() {
	con.irq = false
}

// IRQ returns the state of the interrupt line and the number of times it has
// been pulled.
func (con *Console) IRQ() (bool, int) {
	return con.irq, con.irqCount
}

// Frames returns the number of frames run.
func (con *Console) Frames() int {
	return con.frames
}

// Reset warm starts the chips and the sound manager.
func (con *Console) Reset() {
	for _, pk := range con.Chips {
		pk.WarmStart()
	}
	if con.Sound != nil {
		con.Sound.WarmStart()
	}
	con.countdown = 0
	con.irq = false
}

// RunFrame runs the console for a single frame. Returns io.EOF if the player
// has finished.
func (con *Console) RunFrame() error {
	for range con.Spec.Scanlines {
		if con.player != nil {
			if con.countdown <= 0 {
				if err := con.player.Frame(); err != nil {
					return err
				}
				con.countdown = max(con.player.FastPlay(), 1)
			}
			con.countdown--
		}

		for _, pk := range con.Chips {
			pk.Step(clocks.ScanlineCycles)
		}

		if con.Sound != nil {
			con.Sound.Tick(clocks.ScanlineCycles)
		}
	}

	var wait func()
	if con.lmt != nil {
		wait = con.lmt.Wait
	}

	if con.Sound != nil {
		con.Sound.UpdateSound(wait)
	} else if wait != nil {
		wait()
	}

	con.frames++
	return nil
}

// Run the console for the number of frames, or until the context is done if
// the number of frames is zero. The end of the player is not an error.
func (con *Console) Run(ctx context.Context, frames int) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := con.RunFrame(); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Logf(logger.Allow, "console", "player finished after %d frames", con.frames)
				return nil
			}
			return fmt.Errorf("console: %w", err)
		}
	}
	return nil
}
