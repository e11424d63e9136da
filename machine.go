package main

import (
	"errors"

	"github.com/jetsetilly/pokeyplay/hardware"
	"github.com/jetsetilly/pokeyplay/hardware/spec"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/prefs"
	"github.com/jetsetilly/pokeyplay/sap"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/backend"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
)

type machineOptions struct {
	prefs prefs.Prefs

	// the song number in the SAP file
	song int

	// force the PAL specification regardless of the SAP file
	pal bool

	// duplicate the output of a mono file to both channels
	stereo bool

	// the audio device and the file it writes to, if any
	device   string
	filename string

	// the device is used as a clock for the emulation
	realtime bool

	// paddle positions in the form N=POS
	paddles []string
}

type machine struct {
	file    *sap.File
	con     *hardware.Console
	dev     backend.Device
	capture *sap.Capture
}

func newMachine(filename string, opts machineOptions) (*machine, error) {
	f, err := sap.Load(filename)
	if err != nil {
		return nil, err
	}

	tv := spec.PAL
	if f.Header.NTSC && !opts.pal {
		tv = spec.NTSC
	}

	m := &machine{
		file: f,
		con:  hardware.NewConsole(tv, f.Header.Stereo, opts.prefs.PokeyConfig()),
	}

	for _, p := range opts.paddles {
		if err := m.con.Paddles.Parse(p); err != nil {
			return nil, err
		}
	}

	chips := make([]sap.Chip, 0, len(m.con.Chips))
	for _, pk := range m.con.Chips {
		chips = append(chips, pk)
	}

	pl, err := sap.NewPlayer(f, opts.song, chips...)
	if err != nil {
		return nil, err
	}

	m.capture = sap.NewCapture(f.Header)
	for i, pk := range m.con.Chips {
		pk.AttachObserver(m.capture.Observer(i))
	}
	m.con.AttachPlayer(m.capture.Wrap(pl))

	cfg := opts.prefs.SoundConfig()
	cfg.Format.Interleaved = f.Header.Stereo
	cfg.Format.Stereo = !f.Header.Stereo && (cfg.Format.Stereo || opts.stereo)

	err = m.openDevice(opts, cfg)
	if audioUnavailable(err) && opts.filename == "" {
		logger.Logf(logger.Allow, "pokeyplay", "%v: audio disabled", err)
		opts.device = "null"
		opts.realtime = false
		err = m.openDevice(opts, cfg)
	}
	if err != nil {
		return nil, err
	}

	m.con.SetRealtime(opts.realtime)

	return m, nil
}

// audio is disabled rather than the program stopped if the format is not
// supported or the device cannot be used
func audioUnavailable(err error) bool {
	return errors.Is(err, buffer.ErrFormat) || errors.Is(err, backend.ErrDevice)
}

func (m *machine) openDevice(opts machineOptions, cfg sound.Config) error {
	dev, err := backend.Open(opts.device, backend.Options{
		Filename:   opts.filename,
		SixteenBit: cfg.Format.SixteenBit,
		Nudger:     m.con,
	})
	if err != nil {
		return err
	}
	dev.Prepare(&cfg)

	var right sound.Synthesizer
	if r := m.con.Right(); r != nil {
		right = r
	}

	snd, err := sound.NewManager(cfg, m.con.Left(), right)
	if err != nil {
		return err
	}
	m.con.AttachSound(snd)

	if err := dev.Start(snd); err != nil {
		return err
	}
	m.dev = dev

	logger.Logf(logger.Allow, "pokeyplay", "audio: %s", cfg.Format)

	return nil
}

// the number of frames in the duration. zero seconds is zero frames
func (m *machine) frames(seconds float64) int {
	return int(seconds * m.con.Spec.FrameRate)
}

func (m *machine) close() error {
	if m.dev == nil {
		return nil
	}
	return m.dev.Close()
}
