package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/hardware/spec"
	"github.com/jetsetilly/pokeyplay/logger"
	"github.com/jetsetilly/pokeyplay/prefs"
	"github.com/jetsetilly/pokeyplay/sap"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/backend"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
	"github.com/jetsetilly/pokeyplay/test"
)

// writes a TYPE R file with a square wave on the first channel
func writeSAP(t *testing.T, frames int) string {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("SAP\r\nNAME \"square\"\r\nTYPE R\r\n")
	for i := range frames {
		b.Write([]uint8{0x40 + uint8(i), 0xaf, 0, 0, 0, 0, 0, 0, 0})
	}

	fn := filepath.Join(t.TempDir(), "square.sap")
	test.ExpectSuccess(t, os.WriteFile(fn, b.Bytes(), 0600))
	return fn
}

func TestMachineStatus(t *testing.T) {
	logger.Clear()

	m, err := newMachine(writeSAP(t, 10), machineOptions{
		prefs:  prefs.Default(),
		device: "null",
	})
	test.ExpectSuccess(t, err)
	defer m.close()

	test.ExpectEquality(t, m.con.Spec.ID, spec.PAL.ID)
	test.ExpectEquality(t, len(m.con.Chips), 1)
	test.ExpectSuccess(t, m.con.Sound.Config().FixedRate)

	test.ExpectSuccess(t, m.con.Run(context.Background(), 0))
	test.ExpectEquality(t, m.con.Frames(), 10)
	test.ExpectEquality(t, m.capture.Frames(), 10)
	test.ExpectEquality(t, m.con.Left().Status().Channels[0].Freq, uint8(0x49))

	capture := filepath.Join(t.TempDir(), "capture.sap")
	test.ExpectSuccess(t, m.capture.Save(capture))
	f, err := sap.Load(capture)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f.Frames(), 10)
}

func TestMachineRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")

	m, err := newMachine(writeSAP(t, 50), machineOptions{
		prefs:    prefs.Default(),
		device:   "wav",
		filename: out,
		pal:      true,
	})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, m.frames(1.0), 49)
	test.ExpectSuccess(t, m.con.Run(context.Background(), 25))
	test.ExpectSuccess(t, m.close())

	data, err := os.ReadFile(out)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, len(data) > backend.WavHeaderSize)
	test.ExpectEquality(t, string(data[:4]), "RIFF")
}

func TestMachineErrors(t *testing.T) {
	_, err := newMachine(filepath.Join(t.TempDir(), "missing.sap"), machineOptions{
		prefs:  prefs.Default(),
		device: "null",
	})
	test.ExpectFailure(t, err)

	_, err = newMachine(writeSAP(t, 1), machineOptions{
		prefs:   prefs.Default(),
		device:  "null",
		paddles: []string{"9=100"},
	})
	test.ExpectFailure(t, err)

	_, err = newMachine(writeSAP(t, 1), machineOptions{
		prefs: prefs.Default(),
		song:  1,
	})
	test.ExpectFailure(t, err)
}

func TestAudioUnavailable(t *testing.T) {
	test.ExpectSuccess(t, audioUnavailable(fmt.Errorf("sound: %w: no stereo", buffer.ErrFormat)))
	test.ExpectSuccess(t, audioUnavailable(fmt.Errorf("backend: sdl: %w: %w", backend.ErrDevice, errors.New("no audio"))))
	test.ExpectFailure(t, audioUnavailable(fmt.Errorf("sap: %w", sap.ErrFormat)))
	test.ExpectFailure(t, audioUnavailable(nil))

	// a device that cannot be started is not reported as a format problem
	dev, err := backend.Open("wav", backend.Options{Filename: filepath.Join(t.TempDir(), "missing", "out.wav")})
	test.ExpectSuccess(t, err)
	cfg := prefs.Default().SoundConfig()
	dev.Prepare(&cfg)
	snd, err := sound.NewManager(cfg, pokey.NewPokey(0), nil)
	test.ExpectSuccess(t, err)
	err = dev.Start(snd)
	test.ExpectSuccess(t, errors.Is(err, backend.ErrDevice))
	test.ExpectFailure(t, errors.Is(err, buffer.ErrFormat))
}
