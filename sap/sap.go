// Package sap reads, plays and writes SAP files.
//
// A SAP file is a text header followed by binary data. The header is a list
// of tags, one per line. For TYPE B files the binary data is a list of blocks
// in the Atari executable format, each block preceded by the start and end
// addresses. The INIT routine is called once with the song number in the
// accumulator and the PLAYER routine is called once every FASTPLAY
// scanlines.
//
// For TYPE R files the binary data is a dump of the first nine registers of
// the chip for every call of the player. Stereo files have nine bytes for
// each of the two chips.
package sap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is returned for a malformed SAP file.
var ErrFormat = errors.New("sap format")

// ErrUnsupported is returned by NewPlayer() for a file type that can not be
// played.
var ErrUnsupported = errors.New("sap type not supported")

// RegistersPerFrame is the number of registers of each chip in every frame
// of a TYPE R file.
const RegistersPerFrame = 9

// Scanline counts used when the FASTPLAY tag is missing
const (
	DefaultFastPlayPAL  = 312
	DefaultFastPlayNTSC = 262
)

// Time is the duration of a song, as given by a TIME tag.
type Time struct {
	Duration time.Duration
	Loop     bool
}

func (t Time) String() string {
	m := int(t.Duration / time.Minute)
	s := int((t.Duration % time.Minute) / time.Second)
	ms := int((t.Duration % time.Second) / time.Millisecond)
	if t.Loop {
		return fmt.Sprintf("%02d:%02d.%03d LOOP", m, s, ms)
	}
	return fmt.Sprintf("%02d:%02d.%03d", m, s, ms)
}

// Header of a SAP file.
type Header struct {
	Author string
	Name   string
	Date   string

	Songs   int
	DefSong int

	Stereo bool
	NTSC   bool

	Type byte

	// number of scanlines between each call of the player
	FastPlay int

	Init   uint16
	Player uint16
	Music  uint16

	Times []Time
}

// Block of data loaded into memory before the INIT routine is called.
type Block struct {
	Start uint16
	End   uint16
	Data  []uint8
}

// File is a parsed SAP file.
type File struct {
	Header Header

	// memory blocks for TYPE B files
	Blocks []Block

	// register dumps for TYPE R files
	Registers []uint8
}

// Frames returns the number of frames in a TYPE R file.
func (f *File) Frames() int {
	return len(f.Registers) / f.frameSize()
}

func (f *File) frameSize() int {
	if f.Header.Stereo {
		return RegistersPerFrame * 2
	}
	return RegistersPerFrame
}

// Load the SAP file from disk.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("sap: %w", err)
	}
	return Parse(data)
}

var tags = []string{
	"AUTHOR", "NAME", "DATE", "SONGS", "DEFSONG", "STEREO", "NTSC", "TYPE",
	"FASTPLAY", "INIT", "PLAYER", "MUSIC", "COVOX", "TIME",
}

// returns true if the line begins with a known tag
func isTag(line []byte) bool {
	for _, t := range tags {
		if bytes.HasPrefix(line, []byte(t)) {
			if len(line) == len(t) {
				return true
			}
			switch line[len(t)] {
			case ' ', '\r', '\n':
				return true
			}
		}
	}
	return false
}

// Parse SAP data.
func Parse(data []uint8) (*File, error) {
	var pos int
	switch {
	case bytes.HasPrefix(data, []byte("SAP\r\n")):
		pos = 5
	case bytes.HasPrefix(data, []byte("SAP\n")):
		pos = 4
	default:
		return nil, fmt.Errorf("sap: %w: missing signature", ErrFormat)
	}

	f := &File{
		Header: Header{
			Songs: 1,
		},
	}

	for pos < len(data) && isTag(data[pos:]) {
		end := bytes.IndexByte(data[pos:], '\n')
		if end == -1 {
			end = len(data)
		} else {
			end += pos
		}

		line := strings.TrimSpace(string(data[pos:end]))
		if err := f.Header.parseTag(line); err != nil {
			return nil, err
		}

		pos = end + 1
	}
	pos = min(pos, len(data))

	if f.Header.FastPlay == 0 {
		if f.Header.NTSC {
			f.Header.FastPlay = DefaultFastPlayNTSC
		} else {
			f.Header.FastPlay = DefaultFastPlayPAL
		}
	}

	switch f.Header.Type {
	case 0:
		return nil, fmt.Errorf("sap: %w: missing TYPE tag", ErrFormat)

	case 'R':
		f.Registers = data[pos:]
		if len(f.Registers)%f.frameSize() != 0 {
			return nil, fmt.Errorf("sap: %w: register data is not a whole number of frames", ErrFormat)
		}

	case 'B', 'C', 'D', 'S':
		if !bytes.HasPrefix(data[pos:], []byte{0xff, 0xff}) {
			return nil, fmt.Errorf("sap: %w: missing binary marker", ErrFormat)
		}
		var err error
		f.Blocks, err = parseBlocks(data[pos:])
		if err != nil {
			return nil, err
		}
		if f.Header.Type == 'B' && f.Header.Player == 0 {
			return nil, fmt.Errorf("sap: %w: TYPE B requires the PLAYER tag", ErrFormat)
		}

	default:
		return nil, fmt.Errorf("sap: %w: unknown TYPE (%c)", ErrFormat, f.Header.Type)
	}

	if f.Header.DefSong >= f.Header.Songs {
		return nil, fmt.Errorf("sap: %w: DEFSONG out of range", ErrFormat)
	}

	return f, nil
}

func parseAddress(tag string, value string) (uint16, error) {
	v, err := strconv.ParseUint(value, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("sap: %w: %s: %w", ErrFormat, tag, err)
	}
	return uint16(v), nil
}

func parseDecimal(tag string, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("sap: %w: %s: %w", ErrFormat, tag, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("sap: %w: %s: negative value", ErrFormat, tag)
	}
	return v, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func (h *Header) parseTag(line string) error {
	tag, value, _ := strings.Cut(line, " ")
	value = strings.TrimSpace(value)

	var err error

	switch tag {
	case "AUTHOR":
		h.Author = unquote(value)
	case "NAME":
		h.Name = unquote(value)
	case "DATE":
		h.Date = unquote(value)
	case "SONGS":
		h.Songs, err = parseDecimal(tag, value)
		if err == nil && h.Songs == 0 {
			err = fmt.Errorf("sap: %w: SONGS must be at least one", ErrFormat)
		}
	case "DEFSONG":
		h.DefSong, err = parseDecimal(tag, value)
	case "STEREO":
		h.Stereo = true
	case "NTSC":
		h.NTSC = true
	case "TYPE":
		if len(value) != 1 {
			return fmt.Errorf("sap: %w: TYPE (%s)", ErrFormat, value)
		}
		h.Type = value[0]
	case "FASTPLAY":
		h.FastPlay, err = parseDecimal(tag, value)
	case "INIT":
		h.Init, err = parseAddress(tag, value)
	case "PLAYER":
		h.Player, err = parseAddress(tag, value)
	case "MUSIC":
		h.Music, err = parseAddress(tag, value)
	case "TIME":
		var t Time
		t, err = parseTime(value)
		h.Times = append(h.Times, t)
	}

	return err
}

// parse a TIME value in the form MM:SS.mmm with an optional LOOP suffix
func parseTime(value string) (Time, error) {
	var t Time

	if v, ok := strings.CutSuffix(value, "LOOP"); ok {
		t.Loop = true
		value = strings.TrimSpace(v)
	}

	mins, secs, ok := strings.Cut(value, ":")
	if !ok {
		return t, fmt.Errorf("sap: %w: TIME (%s)", ErrFormat, value)
	}

	m, err := strconv.Atoi(mins)
	if err != nil {
		return t, fmt.Errorf("sap: %w: TIME: %w", ErrFormat, err)
	}

	s, err := strconv.ParseFloat(secs, 64)
	if err != nil {
		return t, fmt.Errorf("sap: %w: TIME: %w", ErrFormat, err)
	}

	t.Duration = time.Duration(m)*time.Minute + time.Duration(s*float64(time.Second)).Round(time.Millisecond)
	return t, nil
}

func parseBlocks(data []uint8) ([]Block, error) {
	var blocks []Block

	pos := 0
	for pos < len(data) {
		// the marker is optional for all but the first block
		if pos+1 < len(data) && data[pos] == 0xff && data[pos+1] == 0xff {
			pos += 2
		}

		if pos+4 > len(data) {
			return nil, fmt.Errorf("sap: %w: truncated block header", ErrFormat)
		}

		start := uint16(data[pos]) | uint16(data[pos+1])<<8
		end := uint16(data[pos+2]) | uint16(data[pos+3])<<8
		pos += 4

		if end < start {
			return nil, fmt.Errorf("sap: %w: block end (%#04x) before start (%#04x)", ErrFormat, end, start)
		}

		n := int(end-start) + 1
		if pos+n > len(data) {
			return nil, fmt.Errorf("sap: %w: truncated block at %#04x", ErrFormat, start)
		}

		blocks = append(blocks, Block{
			Start: start,
			End:   end,
			Data:  data[pos : pos+n],
		})
		pos += n
	}

	return blocks, nil
}
