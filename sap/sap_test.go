package sap_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/jetsetilly/pokeyplay/sap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chipRecorder struct {
	regs   [16]uint8
	writes int
}

func (c *chipRecorder) Read(reg uint8) uint8 {
	return c.regs[reg&0x0f]
}

func (c *chipRecorder) Write(reg uint8, data uint8) {
	c.regs[reg&0x0f] = data
	c.writes++
}

func block(start uint16, code ...uint8) []uint8 {
	end := start + uint16(len(code)) - 1
	b := []uint8{uint8(start), uint8(start >> 8), uint8(end), uint8(end >> 8)}
	return append(b, code...)
}

func typeB(header string, code []uint8) []uint8 {
	data := []uint8("SAP\r\n" + header)
	data = append(data, 0xff, 0xff)
	return append(data, code...)
}

// the INIT routine stores the song number at 0x0600. the PLAYER routine sets
// AUDC1 and writes a frame counter to AUDF1
var playerCode = block(0x1000,
	0x8d, 0x00, 0x06, // STA $0600
	0x60,             // RTS
	0xa9, 0x0f,       // LDA #$0f
	0x8d, 0x01, 0xd2, // STA $D201
	0xee, 0x01, 0x06, // INC $0601
	0xad, 0x01, 0x06, // LDA $0601
	0x8d, 0x00, 0xd2, // STA $D200
	0x60,             // RTS
)

func TestParseTypeB(t *testing.T) {
	data := typeB("AUTHOR \"Someone\"\r\nNAME \"Tune\"\r\nDATE \"1985\"\r\nSONGS 2\r\nTYPE B\r\nINIT 1000\r\nPLAYER 1004\r\nTIME 01:02.50 LOOP\r\nTIME 00:10.000\r\n", playerCode)

	f, err := sap.Parse(data)
	require.NoError(t, err)

	h := f.Header
	assert.Equal(t, "Someone", h.Author)
	assert.Equal(t, "Tune", h.Name)
	assert.Equal(t, "1985", h.Date)
	assert.Equal(t, 2, h.Songs)
	assert.Equal(t, uint8('B'), h.Type)
	assert.Equal(t, uint16(0x1000), h.Init)
	assert.Equal(t, uint16(0x1004), h.Player)
	assert.Equal(t, sap.DefaultFastPlayPAL, h.FastPlay)
	require.Len(t, h.Times, 2)
	assert.Equal(t, 62500*time.Millisecond, h.Times[0].Duration)
	assert.True(t, h.Times[0].Loop)
	assert.Equal(t, "01:02.500 LOOP", h.Times[0].String())
	assert.Equal(t, 10*time.Second, h.Times[1].Duration)
	assert.False(t, h.Times[1].Loop)

	require.Len(t, f.Blocks, 1)
	assert.Equal(t, uint16(0x1000), f.Blocks[0].Start)
	assert.Equal(t, uint16(0x1012), f.Blocks[0].End)
	assert.Len(t, f.Blocks[0].Data, 19)
}

func TestParseUnixLineEndings(t *testing.T) {
	data := []uint8("SAP\nNTSC\nTYPE B\nPLAYER 1004\n")
	data = append(data, 0xff, 0xff)
	data = append(data, playerCode...)

	f, err := sap.Parse(data)
	require.NoError(t, err)
	assert.True(t, f.Header.NTSC)
	assert.Equal(t, sap.DefaultFastPlayNTSC, f.Header.FastPlay)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data []uint8
	}{
		{"signature", []uint8("PAS\r\nTYPE B\r\n")},
		{"missing type", typeB("PLAYER 1004\r\n", playerCode)},
		{"unknown type", typeB("TYPE X\r\nPLAYER 1004\r\n", playerCode)},
		{"missing player", typeB("TYPE B\r\n", playerCode)},
		{"missing marker", append([]uint8("SAP\r\nTYPE B\r\nPLAYER 1004\r\n"), playerCode...)},
		{"bad address", typeB("TYPE B\r\nPLAYER 10G4\r\n", playerCode)},
		{"block order", typeB("TYPE B\r\nPLAYER 1004\r\n", []uint8{0x00, 0x10, 0x10, 0x00, 0x00})},
		{"truncated block", typeB("TYPE B\r\nPLAYER 1004\r\n", playerCode[:10])},
		{"defsong", typeB("SONGS 2\r\nDEFSONG 2\r\nTYPE B\r\nPLAYER 1004\r\n", playerCode)},
		{"time", typeB("TYPE B\r\nPLAYER 1004\r\nTIME 100\r\n", playerCode)},
		{"partial frame", []uint8("SAP\r\nTYPE R\r\n\x01\x02\x03")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sap.Parse(tt.data)
			assert.ErrorIs(t, err, sap.ErrFormat)
		})
	}
}

func TestTypeBPlayer(t *testing.T) {
	f, err := sap.Parse(typeB("SONGS 2\r\nTYPE B\r\nINIT 1000\r\nPLAYER 1004\r\n", playerCode))
	require.NoError(t, err)

	chip := &chipRecorder{}
	p, err := sap.NewPlayer(f, 1, chip)
	require.NoError(t, err)
	assert.Equal(t, sap.DefaultFastPlayPAL, p.FastPlay())

	cpu, ok := p.(*sap.CPUPlayer)
	require.True(t, ok)
	assert.Equal(t, uint8(1), cpu.Peek(0x0600))

	require.NoError(t, p.Frame())
	assert.Equal(t, uint8(0x0f), chip.regs[1])
	assert.Equal(t, uint8(1), chip.regs[0])

	require.NoError(t, p.Frame())
	assert.Equal(t, uint8(2), chip.regs[0])
	assert.Equal(t, 4, chip.writes)

	_, err = sap.NewPlayer(f, 2, chip)
	assert.Error(t, err)
}

func TestVCount(t *testing.T) {
	code := block(0x1000,
		0xad, 0x0b, 0xd4, // LDA $D40B
		0x8d, 0x00, 0x06, // STA $0600
		0x60,             // RTS
	)
	f, err := sap.Parse(typeB("TYPE B\r\nFASTPLAY 156\r\nPLAYER 1000\r\n", code))
	require.NoError(t, err)

	p, err := sap.NewPlayer(f, 0, &chipRecorder{})
	require.NoError(t, err)
	cpu := p.(*sap.CPUPlayer)

	require.NoError(t, p.Frame())
	assert.Equal(t, uint8(0), cpu.Peek(0x0600))
	require.NoError(t, p.Frame())
	assert.Equal(t, uint8(78), cpu.Peek(0x0600))
	require.NoError(t, p.Frame())
	assert.Equal(t, uint8(0), cpu.Peek(0x0600))
}

func TestRunaway(t *testing.T) {
	code := block(0x1000, 0x4c, 0x00, 0x10) // JMP $1000
	f, err := sap.Parse(typeB("TYPE B\r\nPLAYER 1000\r\n", code))
	require.NoError(t, err)

	p, err := sap.NewPlayer(f, 0, &chipRecorder{})
	require.NoError(t, err)
	assert.Error(t, p.Frame())
}

func TestUnsupportedType(t *testing.T) {
	f, err := sap.Parse(typeB("TYPE D\r\nINIT 1000\r\n", playerCode))
	require.NoError(t, err)

	_, err = sap.NewPlayer(f, 0, &chipRecorder{})
	assert.ErrorIs(t, err, sap.ErrUnsupported)
}

func TestCaptureRoundTrip(t *testing.T) {
	c := sap.NewCapture(sap.Header{Name: "Captured", FastPlay: 312, Type: 'B'})
	obs := c.Observer(0)

	for frame := range 3 {
		obs.RegisterWrite(0x00, uint8(frame))
		obs.RegisterWrite(0x01, 0xa8)
		obs.RegisterWrite(0x08, 0x01)

		// not captured
		obs.RegisterWrite(0x0f, 0x03)

		c.EndFrame()
	}
	assert.Equal(t, 3, c.Frames())

	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)

	f, err := sap.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint8('R'), f.Header.Type)
	assert.Equal(t, "Captured", f.Header.Name)
	assert.Equal(t, 312, f.Header.FastPlay)
	require.Equal(t, 3, f.Frames())

	chip := &chipRecorder{}
	p, err := sap.NewPlayer(f, 0, chip)
	require.NoError(t, err)

	for frame := range 3 {
		require.NoError(t, p.Frame())
		assert.Equal(t, uint8(frame), chip.regs[0])
		assert.Equal(t, uint8(0xa8), chip.regs[1])
		assert.Equal(t, uint8(0x01), chip.regs[8])
		assert.Equal(t, uint8(0x00), chip.regs[0x0f])
	}
	assert.ErrorIs(t, p.Frame(), io.EOF)
}

func TestCaptureStereo(t *testing.T) {
	c := sap.NewCapture(sap.Header{Stereo: true, NTSC: true, FastPlay: 131})
	c.Observer(0).RegisterWrite(0x00, 0x11)
	c.Observer(1).RegisterWrite(0x00, 0x22)

	// the player writes and the frame is captured afterwards
	left := &chipRecorder{}
	f := &sap.File{
		Header:    sap.Header{Type: 'R', Stereo: true, Songs: 1, FastPlay: 131},
		Registers: make([]uint8, sap.RegistersPerFrame*2),
	}
	p, err := sap.NewPlayer(f, 0, left, &chipRecorder{})
	require.NoError(t, err)
	require.NoError(t, c.Wrap(p).Frame())
	assert.Equal(t, 1, c.Frames())

	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)

	g, err := sap.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, g.Header.Stereo)
	assert.True(t, g.Header.NTSC)
	require.Equal(t, 1, g.Frames())
	assert.Equal(t, uint8(0x11), g.Registers[0])
	assert.Equal(t, uint8(0x22), g.Registers[sap.RegistersPerFrame])

	right := &chipRecorder{}
	p, err = sap.NewPlayer(g, 0, left, right)
	require.NoError(t, err)
	require.NoError(t, p.Frame())
	assert.Equal(t, uint8(0x11), left.regs[0])
	assert.Equal(t, uint8(0x22), right.regs[0])
}
