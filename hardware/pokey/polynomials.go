// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package pokey

// the polynomial tables hold one bit per entry. the tables are generated in the
// init() function below. polyNone is the bypass table and always reads high
var polyNone = []uint8{1}
var poly4bit []uint8
var poly5bit []uint8
var poly9bit []uint8
var poly17bit []uint8

// polynomials is the read position in each of the polynomial tables. the
// positions are not advanced every cycle. instead the number of elapsed cycles
// is accumulated in pending and applied when a channel consults the tables
type polynomials struct {
	ct4bit  int
	ct5bit  int
	ct9bit  int
	ct17bit int

	pending int

	// whether to use the 9bit polynomial instead of the 17bit. set via the
	// AUDCTL register
	prefer9bit bool
}

func (p *polynomials) reset() {
	p.ct4bit = 0
	p.ct5bit = 0
	p.ct9bit = 0
	p.ct17bit = 0
	p.pending = 0
}

// accumulate elapsed cycles without touching the table positions
func (p *polynomials) elapse(cycles int) {
	p.pending += cycles
}

// apply the pending cycles to the table positions
func (p *polynomials) catchUp() {
	if p.pending == 0 {
		return
	}

	// the modulo operation is deferred until the position runs off the end of
	// the table
	p.ct4bit += p.pending
	if p.ct4bit >= len(poly4bit) {
		p.ct4bit %= len(poly4bit)
	}
	p.ct5bit += p.pending
	if p.ct5bit >= len(poly5bit) {
		p.ct5bit %= len(poly5bit)
	}
	p.ct9bit += p.pending
	if p.ct9bit >= len(poly9bit) {
		p.ct9bit %= len(poly9bit)
	}
	p.ct17bit += p.pending
	if p.ct17bit >= len(poly17bit) {
		p.ct17bit %= len(poly17bit)
	}

	p.pending = 0
}

// the bit for the long polynomial, which is either the 9bit or 17bit table
// depending on AUDCTL
func (p *polynomials) long() uint8 {
	if p.prefer9bit {
		return poly9bit[p.ct9bit]
	}
	return poly17bit[p.ct17bit]
}

// gate describes which polynomial tables are consulted for a channel on
// underflow. the first gate must read high for the output to toggle. the
// second gate, if present, must match the proposed output
type gate struct {
	first  func(p *polynomials) uint8
	second func(p *polynomials) uint8
}

func gateNone(_ *polynomials) uint8 { return polyNone[0] }
func gate4(p *polynomials) uint8    { return poly4bit[p.ct4bit] }
func gate5(p *polynomials) uint8    { return poly5bit[p.ct5bit] }
func gateLong(p *polynomials) uint8 { return p.long() }

// gates indexed by the upper three bits of AUDC
var gates = [8]gate{
	{first: gate5, second: gateLong},
	{first: gate5, second: nil},
	{first: gate5, second: gate4},
	{first: gate5, second: nil},
	{first: gateNone, second: gateLong},
	{first: gateNone, second: nil},
	{first: gateNone, second: gate4},
	{first: gateNone, second: nil},
}

// randomGenerator models the RANDOM register. from 'Altirra Reference', page
// 111:
//
// "Eight bits of the shift register are visible to the CPU via RANDOM; this is
// most commonly used for random numbers, but it can also be used to test
// cycle counting hypotheses. RANDOM shifts right at the rate of one bit per
// machine cycle."
type randomGenerator struct {
	ct9bit     int
	ct17bit    int
	prefer9bit bool
	rnd        uint8
}

func (r *randomGenerator) initialise() {
	r.ct9bit = 0
	r.ct17bit = 0
	r.rnd = 0xff
}

func (r *randomGenerator) step() {
	r.ct9bit++
	if r.ct9bit >= len(poly9bit) {
		r.ct9bit = 0
	}

	r.ct17bit++
	if r.ct17bit >= len(poly17bit) {
		r.ct17bit = 0
	}

	r.rnd >>= 1
	if r.prefer9bit {
		r.rnd |= poly9bit[r.ct9bit] << 7
	} else {
		r.rnd |= poly17bit[r.ct17bit] << 7
	}
}

// advance the generator by the number of cycles. once eight or more cycles
// have elapsed every bit of rnd has been replaced so the value can be taken
// directly from the tables
func (r *randomGenerator) advance(cycles int) {
	if cycles < 8 {
		for range cycles {
			r.step()
		}
		return
	}

	r.ct9bit = (r.ct9bit + cycles) % len(poly9bit)
	r.ct17bit = (r.ct17bit + cycles) % len(poly17bit)

	tbl, ct := poly17bit, r.ct17bit
	if r.prefer9bit {
		tbl, ct = poly9bit, r.ct9bit
	}

	r.rnd = 0
	for k := range 8 {
		i := ct - k
		if i < 0 {
			i += len(tbl)
		}
		r.rnd |= tbl[i] << (7 - k)
	}
}

func init() {
	// initialisation sequences taken from the Altirra emulator

	var b uint32

	poly4bit = make([]uint8, (1<<4)-1)
	for i := range poly4bit {
		b = (b >> 1) + (^((b << 2) ^ (b << 3)) & 8)
		poly4bit[i] = uint8((b & 1))
	}

	b = 0
	poly5bit = make([]uint8, (1<<5)-1)
	for i := range poly5bit {
		b = (b >> 1) + (^((b << 2) ^ (b << 4)) & 16)
		poly5bit[i] = uint8((b & 1))
	}

	b = 0
	poly9bit = make([]uint8, (1<<9)-1)
	for i := range poly9bit {
		b = (b >> 1) + (^((b << 8) ^ (b << 3)) & 0x100)
		poly9bit[i] = uint8((b & 1))
	}

	b = 0
	poly17bit = make([]uint8, (1<<17)-1)
	for i := range poly17bit {
		b = (b >> 1) + (^((b << 16) ^ (b << 11)) & 0x10000)
		poly17bit[i] = uint8((b >> 8) & 0x01)
	}
}
