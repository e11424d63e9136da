package sap

import (
	"fmt"
	"io"

	"github.com/beevik/go6502/cpu"
)

// Player writes to the chips once every FastPlay() scanlines.
type Player interface {
	// Frame is called once every FastPlay() scanlines. Returns io.EOF when
	// there is nothing more to play
	Frame() error

	// FastPlay returns the number of scanlines between calls to Frame()
	FastPlay() int
}

// NewPlayer returns a player for the song in the file. The chips are written
// to by the player. The second chip is only used if the file is stereo.
func NewPlayer(f *File, song int, chips ...Chip) (Player, error) {
	if len(chips) == 0 {
		return nil, fmt.Errorf("sap: no chips to play with")
	}
	if song < 0 || song >= f.Header.Songs {
		return nil, fmt.Errorf("sap: song %d out of range (%d songs)", song, f.Header.Songs)
	}
	if !f.Header.Stereo {
		chips = chips[:1]
	}

	switch f.Header.Type {
	case 'R':
		return &RegisterPlayer{
			file:  f,
			chips: chips,
		}, nil
	case 'B', 'C':
		return newCPUPlayer(f, song, chips)
	}

	return nil, fmt.Errorf("sap: %w: TYPE %c", ErrUnsupported, f.Header.Type)
}

// RegisterPlayer plays TYPE R files.
type RegisterPlayer struct {
	file  *File
	chips []Chip
	frame int
}

// Frame implements the Player interface.
func (p *RegisterPlayer) Frame() error {
	if p.frame >= p.file.Frames() {
		return io.EOF
	}

	data := p.file.Registers[p.frame*p.file.frameSize():]
	for c, chip := range p.chips {
		regs := data[c*RegistersPerFrame : (c+1)*RegistersPerFrame]
		for r, v := range regs {
			chip.Write(uint8(r), v)
		}
	}
	p.frame++

	return nil
}

// FastPlay implements the Player interface.
func (p *RegisterPlayer) FastPlay() int {
	return p.file.Header.FastPlay
}

// Rewind to the first frame.
func (p *RegisterPlayer) Rewind() {
	p.frame = 0
}

// the maximum number of instructions a routine can execute before it is
// considered to have crashed
const maxInstructions = 1000000

// CPUPlayer plays TYPE B and TYPE C files by running the player routine on a
// 6502.
type CPUPlayer struct {
	file *File
	mem  *memory
	cpu  *cpu.CPU

	// the scanline at the start of the next call of the player routine
	line int

	// address of the routine called every frame
	play uint16
}

func newCPUPlayer(f *File, song int, chips []Chip) (*CPUPlayer, error) {
	scanlines := DefaultFastPlayPAL
	if f.Header.NTSC {
		scanlines = DefaultFastPlayNTSC
	}

	p := &CPUPlayer{
		file: f,
		mem: &memory{
			chips:     chips,
			ntsc:      f.Header.NTSC,
			scanlines: scanlines,
		},
	}
	p.cpu = cpu.NewCPU(cpu.NMOS, p.mem)
	p.mem.cycles = func() uint64 { return p.cpu.Cycles }
	p.mem.loadBlocks(f.Blocks)

	var err error

	switch f.Header.Type {
	case 'B':
		p.play = f.Header.Player
		if f.Header.Init != 0 {
			err = p.call(f.Header.Init, uint8(song), 0, 0)
		}

	case 'C':
		// the music address is passed to the player through the X and Y
		// registers. the song number is then selected
		p.play = f.Header.Player + 6
		err = p.call(f.Header.Player+3, 0x70, uint8(f.Header.Music), uint8(f.Header.Music>>8))
		if err == nil {
			err = p.call(f.Header.Player+3, 0x00, uint8(song), 0)
		}
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

// returns true if the routine has returned to the caller
func (p *CPUPlayer) returned() bool {
	opcode := p.mem.LoadByte(p.cpu.Reg.PC)
	inst := p.cpu.InstSet.Lookup(opcode)

	switch {
	case inst.Opcode == 0x00:
		return true
	case inst.Opcode == 0x40 && p.cpu.Reg.SP == 0xff:
		return true
	case inst.Opcode == 0x60 && p.cpu.Reg.SP == 0xff:
		return true
	}
	return false
}

// call the routine at the address with the registers set. the routine ends
// when the top level RTS (or RTI) is reached or on a BRK
func (p *CPUPlayer) call(addr uint16, a, x, y uint8) error {
	p.mem.startAt(p.line)

	p.cpu.SetPC(addr)
	p.cpu.Reg.A = a
	p.cpu.Reg.X = x
	p.cpu.Reg.Y = y
	p.cpu.Reg.SP = 0xff

	for range maxInstructions {
		if p.returned() {
			return nil
		}
		p.cpu.Step()
	}

	return fmt.Errorf("sap: routine at %#04x did not return", addr)
}

// Frame implements the Player interface.
func (p *CPUPlayer) Frame() error {
	err := p.call(p.play, 0, 0, 0)
	p.line = (p.line + p.file.Header.FastPlay) % p.mem.scanlines
	return err
}

// FastPlay implements the Player interface.
func (p *CPUPlayer) FastPlay() int {
	return p.file.Header.FastPlay
}

// Peek returns the value in memory at the address. Hardware registers are
// not read.
func (p *CPUPlayer) Peek(addr uint16) uint8 {
	return p.mem.b[addr]
}
