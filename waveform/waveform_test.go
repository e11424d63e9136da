package waveform_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/test"
	"github.com/jetsetilly/pokeyplay/waveform"
)

func TestXYs(t *testing.T) {
	s := waveform.Samples{0, 0, 10, 10, 0}
	xys := s.XYs()

	// two extra points for the two edges
	test.ExpectEquality(t, len(xys), 7)
	test.ExpectEquality(t, xys[2].X, 2.0)
	test.ExpectEquality(t, xys[2].Y, 0.0)
	test.ExpectEquality(t, xys[3].X, 2.0)
	test.ExpectEquality(t, xys[3].Y, 10.0)
}

func TestPlot(t *testing.T) {
	pk := pokey.NewPokey(0)
	pk.Write(pokey.SKCTL, 0x03)
	pk.Write(pokey.AUDF1, 0x40)
	pk.Write(pokey.AUDC1, 0xaf)

	s := waveform.Capture(pk, 500, 44100)
	test.ExpectEquality(t, len(s), 500)

	var buf bytes.Buffer
	err := waveform.Plot(&buf, "test", s)
	test.ExpectSuccess(t, err)

	img, err := png.Decode(&buf)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, img.Bounds().Dx() > 0)

	err = waveform.Plot(&buf, "empty", nil)
	test.ExpectFailure(t, err)
}
