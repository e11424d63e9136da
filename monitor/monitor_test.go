package monitor_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/monitor"
	"github.com/jetsetilly/pokeyplay/sap"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/test"
)

func TestMonitor(t *testing.T) {
	var buf bytes.Buffer
	mon := monitor.NewMonitor(&buf)

	pk := pokey.NewPokey(0)
	pk.Write(pokey.AUDF1, 0x1f)
	mon.Chip(pk.Status())

	out := buf.String()
	test.ExpectSuccess(t, strings.Contains(out, "Pokey Status"))
	test.ExpectSuccess(t, strings.Contains(out, "AudioFreq0"))
	test.ExpectSuccess(t, strings.Contains(out, "1f"))
	test.ExpectSuccess(t, strings.Contains(out, "SerInBytes"))

	buf.Reset()
	mon.Sound(sound.DefaultConfig(), sound.Status{EffectiveFreq: 44100, Buffered: 10})
	out = buf.String()
	test.ExpectSuccess(t, strings.Contains(out, "44100Hz"))
	test.ExpectSuccess(t, strings.Contains(out, "signed 16bit little-endian stereo"))

	buf.Reset()
	mon.Song(sap.Header{Name: "Tune", Type: 'B', Songs: 1, FastPlay: 312})
	out = buf.String()
	test.ExpectSuccess(t, strings.Contains(out, "Tune"))
	test.ExpectFailure(t, strings.Contains(out, "Author"))

	buf.Reset()
	mon.Error(errors.New("test error"))
	test.ExpectSuccess(t, strings.Contains(buf.String(), "test error"))
}
