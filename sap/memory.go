package sap

import "github.com/jetsetilly/pokeyplay/hardware/clocks"

// Chip is the register interface of a POKEY.
type Chip interface {
	Read(reg uint8) uint8
	Write(reg uint8, data uint8)
}

// hardware addresses visible to the player routines
const (
	gtiaPAL    = 0xd014
	pokeyBase  = 0xd200
	pokeyEnd   = 0xd2ff
	anticWSYNC = 0xd40a
	anticVCNT  = 0xd40b
)

// memory is a flat 64K address space with the POKEY mapped at 0xd200. In
// stereo the second chip is mapped at 0xd210. Reads of PAL and VCOUNT are
// supported because player routines use them for timing.
type memory struct {
	b     [64 * 1024]uint8
	chips []Chip
	ntsc  bool

	// scanlines in a frame and the current scanline
	scanlines int
	scanline  int

	// the CPU cycle count and the count at the start of the current scanline
	cycles func() uint64
	lineAt uint64
}

func (m *memory) chip(addr uint16) Chip {
	if addr&0x10 == 0x10 && len(m.chips) > 1 {
		return m.chips[1]
	}
	return m.chips[0]
}

func (m *memory) vcount() uint8 {
	return uint8(m.scanline >> 1)
}

// advance the scanline counter to account for the cycles used so far
func (m *memory) sync() {
	if m.cycles == nil {
		return
	}
	for m.cycles()-m.lineAt >= clocks.ScanlineCycles {
		m.nextLine(m.lineAt + clocks.ScanlineCycles)
	}
}

func (m *memory) nextLine(at uint64) {
	m.scanline++
	if m.scanline >= m.scanlines {
		m.scanline = 0
	}
	m.lineAt = at
}

// set the current scanline. used at the start of each call of a player
// routine
func (m *memory) startAt(line int) {
	m.scanline = line % m.scanlines
	if m.cycles != nil {
		m.lineAt = m.cycles()
	}
}

// LoadByte loads a single byte from the address and returns it.
func (m *memory) LoadByte(addr uint16) uint8 {
	switch {
	case addr >= pokeyBase && addr <= pokeyEnd:
		return m.chip(addr).Read(uint8(addr & 0x0f))
	case addr == gtiaPAL:
		if m.ntsc {
			return 0x0f
		}
		return 0x01
	case addr == anticVCNT:
		m.sync()
		return m.vcount()
	}
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and returns them.
func (m *memory) LoadBytes(addr uint16, b []uint8) {
	if int(addr)+len(b) <= len(m.b) {
		copy(b, m.b[addr:])
	} else {
		r0 := len(m.b) - int(addr)
		copy(b, m.b[addr:])
		clear(b[r0:])
	}
}

// LoadAddress loads a 16-bit address value from the requested address and
// returns it. The high byte of an address at the end of a page is taken from
// the start of the same page.
func (m *memory) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(m.b[addr]) | uint16(m.b[addr-0xff])<<8
	}
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address.
func (m *memory) StoreByte(addr uint16, v uint8) {
	switch {
	case addr >= pokeyBase && addr <= pokeyEnd:
		m.chip(addr).Write(uint8(addr&0x0f), v)
		return
	case addr == anticWSYNC:
		// the remainder of the scanline is skipped
		m.sync()
		if m.cycles != nil {
			m.nextLine(m.cycles())
		}
		return
	}
	m.b[addr] = v
}

// StoreBytes stores multiple bytes to the requested address.
func (m *memory) StoreBytes(addr uint16, b []uint8) {
	copy(m.b[addr:], b)
}

// StoreAddress stores a 16-bit address value to the requested address.
func (m *memory) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = uint8(v & 0xff)
	if (addr & 0xff) == 0xff {
		m.b[addr-0xff] = uint8(v >> 8)
	} else {
		m.b[addr+1] = uint8(v >> 8)
	}
}

func (m *memory) loadBlocks(blocks []Block) {
	for _, blk := range blocks {
		copy(m.b[blk.Start:int(blk.End)+1], blk.Data)
	}
}
