package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/monitor"
	"github.com/jetsetilly/pokeyplay/prefs"
	"github.com/jetsetilly/pokeyplay/sound/backend"
	"github.com/jetsetilly/pokeyplay/version"
	"github.com/jetsetilly/pokeyplay/waveform"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = version.ApplicationName
	app.Usage = "POKEY sound chip player"
	ver, rev, _ := version.Version()
	app.Version = fmt.Sprintf("%s (%s)", ver, rev)
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "log",
			Usage: "echo log entries to stderr",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("log") {
			logger.SetEcho(os.Stderr, true)
		}
		return nil
	}

	songFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "song",
			Usage: "song number in the SAP file",
		},
		cli.BoolFlag{
			Name:  "pal",
			Usage: "use PAL timing regardless of the SAP file",
		},
		cli.StringSliceFlag{
			Name:  "paddle",
			Usage: "paddle position in the form N=POS",
		},
		cli.BoolFlag{
			Name:  "log",
			Usage: "echo log entries to stderr",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "play",
			Usage:     "play a SAP file",
			ArgsUsage: "FILE.sap",
			Action:    play,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "backend",
					Usage: fmt.Sprintf("audio device (%s)", strings.Join(backend.List, ", ")),
				},
				cli.BoolFlag{
					Name:  "stereo",
					Usage: "play a mono file on both channels",
				},
				cli.Float64Flag{
					Name:  "seconds",
					Usage: "number of seconds to play. zero plays until the end of the song",
				},
				cli.StringFlag{
					Name:  "capture",
					Usage: "save register writes to a TYPE R SAP file",
				},
			}, songFlags...),
		},
		{
			Name:      "render",
			Usage:     "render a SAP file to a WAV file",
			ArgsUsage: "FILE.sap",
			Action:    render,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out",
					Usage: "the WAV file to write",
				},
				cli.Float64Flag{
					Name:  "seconds",
					Usage: "number of seconds to render",
					Value: 10,
				},
				cli.BoolFlag{
					Name:  "8bit",
					Usage: "write unsigned 8bit samples",
				},
			}, songFlags...),
		},
		{
			Name:   "plot",
			Usage:  "plot the output of a single channel",
			Action: plot,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "audf",
					Usage: "value of the AUDF1 register",
					Value: 0x40,
				},
				cli.IntFlag{
					Name:  "audc",
					Usage: "value of the AUDC1 register",
					Value: 0xaf,
				},
				cli.IntFlag{
					Name:  "audctl",
					Usage: "value of the AUDCTL register",
				},
				cli.IntFlag{
					Name:  "samples",
					Usage: "number of samples to plot",
					Value: 1000,
				},
				cli.StringFlag{
					Name:  "out",
					Usage: "the PNG file to write",
					Value: "waveform.png",
				},
			},
		},
		{
			Name:      "status",
			Usage:     "show the state of the chips after a number of frames",
			ArgsUsage: "FILE.sap",
			Action:    status,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Usage: "number of frames to run",
					Value: 50,
				},
			}, songFlags...),
		},
		{
			Name:   "prefs",
			Usage:  "show the preferences",
			Action: showPrefs,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "reset",
					Usage: "save the default preferences",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		monitor.NewMonitor(os.Stderr).Error(err)
		os.Exit(1)
	}
}

func loadPrefs() prefs.Prefs {
	p, err := prefs.Load()
	if err != nil {
		logger.Log(logger.Allow, "pokeyplay", err)
	}
	return p
}

func filename(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("a single SAP file is required")
	}
	return c.Args().First(), nil
}

func songOptions(c *cli.Context) machineOptions {
	if c.Bool("log") {
		logger.SetEcho(os.Stderr, true)
	}
	return machineOptions{
		prefs:   loadPrefs(),
		song:    c.Int("song"),
		pal:     c.Bool("pal"),
		paddles: c.StringSlice("paddle"),
	}
}

func play(c *cli.Context) error {
	fn, err := filename(c)
	if err != nil {
		return err
	}

	opts := songOptions(c)
	opts.stereo = c.Bool("stereo")
	opts.device = opts.prefs.Backend
	if c.IsSet("backend") {
		opts.device = c.String("backend")
	}
	switch opts.device {
	case "null", "wav":
		return fmt.Errorf("%s device is not suitable for play. use the render command", opts.device)
	}
	opts.realtime = true

	m, err := newMachine(fn, opts)
	if err != nil {
		return err
	}
	defer m.close()

	mon := monitor.NewMonitor(os.Stdout)
	mon.Song(m.file.Header)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := m.con.Run(ctx, m.frames(c.Float64("seconds"))); err != nil {
		return err
	}

	if capture := c.String("capture"); capture != "" {
		if err := m.capture.Save(capture); err != nil {
			return err
		}
		logger.Logf(logger.Allow, "pokeyplay", "%d frames captured to %s", m.capture.Frames(), capture)
	}

	return nil
}

func render(c *cli.Context) error {
	fn, err := filename(c)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		return errors.New("render requires an output file")
	}

	opts := songOptions(c)
	opts.device = "wav"
	opts.filename = out
	opts.prefs.Format.SixteenBit = !c.Bool("8bit")

	m, err := newMachine(fn, opts)
	if err != nil {
		return err
	}

	err = m.con.Run(context.Background(), max(m.frames(c.Float64("seconds")), 1))
	if cerr := m.close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return err
	}
	if len(data) < backend.WavHeaderSize {
		return fmt.Errorf("%s: file is too short", out)
	}

	fmt.Printf("%s: %016x\n", out, xxhash.Sum64(data[backend.WavHeaderSize:]))

	return nil
}

func plot(c *cli.Context) error {
	p := loadPrefs()

	pk := pokey.NewPokey(0)
	pk.Configure(p.PokeyConfig())
	pk.Write(pokey.SKCTL, 0x03)
	pk.Write(pokey.AUDCTL, uint8(c.Int("audctl")))
	pk.Write(pokey.AUDF1, uint8(c.Int("audf")))
	pk.Write(pokey.AUDC1, uint8(c.Int("audc")))

	s := waveform.Capture(pk, c.Int("samples"), p.SamplingFreq)

	f, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()

	title := fmt.Sprintf("AUDF1=%02x AUDC1=%02x AUDCTL=%02x", c.Int("audf"), c.Int("audc"), c.Int("audctl"))
	return waveform.Plot(f, title, s)
}

func status(c *cli.Context) error {
	fn, err := filename(c)
	if err != nil {
		return err
	}

	opts := songOptions(c)
	opts.device = "null"

	m, err := newMachine(fn, opts)
	if err != nil {
		return err
	}
	defer m.close()

	if err := m.con.Run(context.Background(), max(c.Int("frames"), 1)); err != nil {
		return err
	}

	mon := monitor.NewMonitor(os.Stdout)
	mon.Song(m.file.Header)
	for _, pk := range m.con.Chips {
		mon.Chip(pk.Status())
	}
	mon.Sound(m.con.Sound.Config(), m.con.Sound.Status())

	return nil
}

func showPrefs(c *cli.Context) error {
	p := loadPrefs()
	if c.Bool("reset") {
		p = prefs.Default()
		if err := p.Save(); err != nil {
			return err
		}
	}

	data, err := p.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	return nil
}
