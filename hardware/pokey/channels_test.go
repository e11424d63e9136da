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

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/pokeyplay/test"
)

// the first position in the table holding the value
func tablePosition(t *testing.T, table []uint8, v uint8) int {
	t.Helper()
	for i, b := range table {
		if b == v {
			return i
		}
	}
	t.Fatalf("no %d in table", v)
	return 0
}

func TestToggleGates(t *testing.T) {
	type tables int
	const (
		none tables = iota
		long
		four
	)

	// the tables consulted for each setting of the upper three bits of AUDC
	distortions := []struct {
		noise  uint8
		poly5  bool
		second tables
	}{
		{noise: 0x0, poly5: true, second: long},
		{noise: 0x2, poly5: true, second: none},
		{noise: 0x4, poly5: true, second: four},
		{noise: 0x6, poly5: true, second: none},
		{noise: 0x8, poly5: false, second: long},
		{noise: 0xa, poly5: false, second: none},
		{noise: 0xc, poly5: false, second: four},
		{noise: 0xe, poly5: false, second: none},
	}

	for _, d := range distortions {
		for _, first := range []uint8{0, 1} {
			// a distortion without the 5bit polynomial always passes the
			// first gate
			if !d.poly5 && first == 0 {
				continue
			}

			for _, second := range []uint8{0, 1} {
				if d.second == none && second == 1 {
					continue
				}

				for _, from := range []uint8{outputLow, outputHigh} {
					t.Run(fmt.Sprintf("%x_%d_%d_%x", d.noise, first, second, from), func(t *testing.T) {
						var p polynomials
						if d.poly5 {
							p.ct5bit = tablePosition(t, poly5bit, first)
						}
						switch d.second {
						case long:
							p.ct17bit = tablePosition(t, poly17bit, second)
						case four:
							p.ct4bit = tablePosition(t, poly4bit, second)
						}

						ch := channel{Registers: Registers{Noise: d.noise, Volume: 0x0f}}
						ch.outBit = from
						ch.toggle(&p)

						// the output changes only when the first gate is open and
						// the second table agrees with the new output
						to := from ^ outputHigh
						expected := from
						switch {
						case first == 0:
						case d.second == none:
							expected = to
						case second*outputHigh == to:
							expected = to
						}
						test.ExpectEquality(t, ch.outBit, expected)
					})
				}
			}
		}
	}
}

func TestToggleLongSelection(t *testing.T) {
	var p polynomials
	p.prefer9bit = true
	p.ct9bit = tablePosition(t, poly9bit, 1)
	p.ct17bit = tablePosition(t, poly17bit, 0)

	// pure 9bit noise. the new output is high and the 9bit table agrees
	ch := channel{Registers: Registers{Noise: 0x8, Volume: 0x0f}}
	ch.toggle(&p)
	test.ExpectEquality(t, ch.outBit, uint8(outputHigh))

	// the 17bit table disagrees
	ch.outBit = outputLow
	p.prefer9bit = false
	ch.toggle(&p)
	test.ExpectEquality(t, ch.outBit, uint8(outputLow))
}
