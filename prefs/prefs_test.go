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

package prefs_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
	"github.com/jetsetilly/pokeyplay/hardware/spec"
	"github.com/jetsetilly/pokeyplay/prefs"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/test"
)

func TestDefault(t *testing.T) {
	p := prefs.Default()
	test.ExpectEquality(t, p.SoundConfig(), sound.DefaultConfig())
	test.ExpectSuccess(t, p.SoundConfig().Validate())

	cfg := p.PokeyConfig()
	test.ExpectEquality(t, cfg.Clock, clocks.NTSC)
	test.ExpectEquality(t, cfg.Gamma, 70)
	test.ExpectEquality(t, cfg.Volume, 100)
	test.ExpectEquality(t, cfg.FilterConstant, 512)
	test.ExpectSuccess(t, cfg.SerialSound)
}

func TestParse(t *testing.T) {
	p, err := prefs.Parse([]byte("tv: pal\nvolume: 150\nfragsize: 10\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.Spec().ID, spec.PAL.ID)
	test.ExpectEquality(t, p.PokeyConfig().Clock, clocks.PAL)
	test.ExpectEquality(t, p.Volume, 150)
	test.ExpectEquality(t, p.FragSize, uint(10))

	// missing fields keep their default value
	test.ExpectEquality(t, p.Gamma, 70)
	test.ExpectEquality(t, p.SamplingFreq, 44100)

	_, err = prefs.Parse([]byte("volume: [1, 2"))
	test.ExpectFailure(t, err)
}

func TestClamp(t *testing.T) {
	p, err := prefs.Parse([]byte("tv: secam\ngamma: 10\nvolume: 1000\nfilter: -5\nnumfrags: 100\nsamplingfreq: 10\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.TV, "NTSC")
	test.ExpectEquality(t, p.Gamma, 50)
	test.ExpectEquality(t, p.Volume, 300)
	test.ExpectEquality(t, p.FilterConstant, 0)
	test.ExpectEquality(t, p.NumFrags, 16)
	test.ExpectEquality(t, p.SamplingFreq, 4000)
	test.ExpectSuccess(t, p.SoundConfig().Validate())
}

func TestMarshal(t *testing.T) {
	p := prefs.Default()
	p.TV = "PAL"
	p.Backend = "sdl"
	p.Format.Interleaved = true
	p.Format.Stereo = false

	data, err := p.Marshal()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "backend: sdl"))

	q, err := prefs.Parse(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, q, p)
}
