package sap

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
)

// Capture records the register writes of a player and writes them out as a
// TYPE R file.
type Capture struct {
	header Header
	shadow [2][RegistersPerFrame]uint8
	data   []uint8
}

// NewCapture is the preferred method of initialisation for the Capture type.
// The descriptive tags of the header are kept in the captured file.
func NewCapture(h Header) *Capture {
	return &Capture{
		header: Header{
			Author:   h.Author,
			Name:     h.Name,
			Date:     h.Date,
			Songs:    1,
			Stereo:   h.Stereo,
			NTSC:     h.NTSC,
			Type:     'R',
			FastPlay: h.FastPlay,
		},
	}
}

type captureChip struct {
	c    *Capture
	chip int
}

// RegisterWrite implements the pokey.RegisterObserver interface.
func (cc captureChip) RegisterWrite(reg uint8, data uint8) {
	if reg < RegistersPerFrame {
		cc.c.shadow[cc.chip][reg] = data
	}
}

// Observer returns the register observer for the chip. The chip must be 0 or
// 1.
func (c *Capture) Observer(chip int) pokey.RegisterObserver {
	return captureChip{c: c, chip: chip & 0x01}
}

// EndFrame records the current value of the registers.
func (c *Capture) EndFrame() {
	c.data = append(c.data, c.shadow[0][:]...)
	if c.header.Stereo {
		c.data = append(c.data, c.shadow[1][:]...)
	}
}

// Frames returns the number of frames captured.
func (c *Capture) Frames() int {
	if c.header.Stereo {
		return len(c.data) / (RegistersPerFrame * 2)
	}
	return len(c.data) / RegistersPerFrame
}

type capturePlayer struct {
	Player
	c *Capture
}

func (cp capturePlayer) Frame() error {
	err := cp.Player.Frame()
	if err == nil {
		cp.c.EndFrame()
	}
	return err
}

// Wrap the player so that a frame is captured after every call of Frame().
func (c *Capture) Wrap(p Player) Player {
	return capturePlayer{Player: p, c: c}
}

// WriteTo implements the io.WriterTo interface.
func (c *Capture) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	n, err := c.header.WriteTo(bw)
	if err != nil {
		return n, err
	}

	m, err := bw.Write(c.data)
	n += int64(m)
	if err != nil {
		return n, err
	}

	return n, bw.Flush()
}

// Save the captured frames to a file.
func (c *Capture) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("sap: %w", err)
	}

	_, err = c.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("sap: %w", err)
	}
	return nil
}

// WriteTo writes the header in the text format of a SAP file. Lines are
// terminated with CR LF.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	var n int64
	var err error

	line := func(format string, args ...any) {
		if err != nil {
			return
		}
		var m int
		m, err = fmt.Fprintf(w, format+"\r\n", args...)
		n += int64(m)
	}

	line("SAP")
	if h.Author != "" {
		line("AUTHOR \"%s\"", h.Author)
	}
	if h.Name != "" {
		line("NAME \"%s\"", h.Name)
	}
	if h.Date != "" {
		line("DATE \"%s\"", h.Date)
	}
	if h.Songs > 1 {
		line("SONGS %d", h.Songs)
	}
	if h.DefSong > 0 {
		line("DEFSONG %d", h.DefSong)
	}
	if h.Stereo {
		line("STEREO")
	}
	if h.NTSC {
		line("NTSC")
	}
	line("TYPE %c", h.Type)
	if h.FastPlay != 0 {
		line("FASTPLAY %d", h.FastPlay)
	}
	if h.Type != 'R' {
		if h.Init != 0 {
			line("INIT %04X", h.Init)
		}
		if h.Player != 0 {
			line("PLAYER %04X", h.Player)
		}
		if h.Music != 0 {
			line("MUSIC %04X", h.Music)
		}
	}
	for _, t := range h.Times {
		line("TIME %s", t)
	}

	return n, err
}
