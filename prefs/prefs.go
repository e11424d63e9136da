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

package prefs

import (
	"fmt"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"github.com/jetsetilly/pokeyplay/hardware/pokey/mix"
	"github.com/jetsetilly/pokeyplay/hardware/spec"
	"github.com/jetsetilly/pokeyplay/resources"
	"github.com/jetsetilly/pokeyplay/sound"
	"github.com/jetsetilly/pokeyplay/sound/buffer"
	"gopkg.in/yaml.v3"
)

// Filename is the name of the preferences file in the resources directory.
const Filename = "prefs.yaml"

// permitted ranges of the mixing values
const (
	minGamma          = 50
	maxGamma          = 150
	minVolume         = 0
	maxVolume         = 300
	maxFilterConstant = 1024
)

// Format is the sample format section of the preferences.
type Format struct {
	Signed       bool `yaml:"signed"`
	SixteenBit   bool `yaml:"sixteenbit"`
	LittleEndian bool `yaml:"littleendian"`
	Stereo       bool `yaml:"stereo"`
	Interleaved  bool `yaml:"interleaved"`
}

// Prefs are the user preferences.
type Prefs struct {
	SamplingFreq   int    `yaml:"samplingfreq"`
	PokeyFreq      int    `yaml:"pokeyfreq"`
	TV             string `yaml:"tv"`
	Gamma          int    `yaml:"gamma"`
	Volume         int    `yaml:"volume"`
	FilterConstant int    `yaml:"filter"`
	SerialSound    bool   `yaml:"serialsound"`
	ConsoleSpeaker bool   `yaml:"speaker"`
	ConsoleVolume  int    `yaml:"speakervolume"`
	FragSize       uint   `yaml:"fragsize"`
	NumFrags       int    `yaml:"numfrags"`
	Format         Format `yaml:"format"`
	Backend        string `yaml:"backend"`
}

// Default returns the default preferences.
func Default() Prefs {
	snd := sound.DefaultConfig()
	return Prefs{
		SamplingFreq:   snd.SamplingFreq,
		PokeyFreq:      snd.PokeyFreq,
		TV:             spec.NTSC.ID,
		Gamma:          mix.DefaultGamma,
		Volume:         mix.DefaultVolume,
		FilterConstant: mix.DefaultFilterConstant,
		SerialSound:    true,
		ConsoleSpeaker: snd.ConsoleSpeaker,
		ConsoleVolume:  snd.ConsoleVolume,
		FragSize:       snd.FragSize,
		NumFrags:       snd.NumFrags,
		Format: Format{
			Signed:       snd.Format.Signed,
			SixteenBit:   snd.Format.SixteenBit,
			LittleEndian: snd.Format.LittleEndian,
			Stereo:       snd.Format.Stereo,
			Interleaved:  snd.Format.Interleaved,
		},
	}
}

func clamp[T int | uint](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Clamp values to their permitted ranges. An unknown TV standard is replaced
// by NTSC.
func (p *Prefs) Clamp() {
	p.SamplingFreq = clamp(p.SamplingFreq, 4000, 192000)
	p.PokeyFreq = clamp(p.PokeyFreq, 1, clocks.PokeyFreqBase*4)
	p.Gamma = clamp(p.Gamma, minGamma, maxGamma)
	p.Volume = clamp(p.Volume, minVolume, maxVolume)
	p.FilterConstant = clamp(p.FilterConstant, 0, maxFilterConstant)
	p.ConsoleVolume = clamp(p.ConsoleVolume, 0, 255)
	p.FragSize = clamp(p.FragSize, 2, 16)
	p.NumFrags = clamp(p.NumFrags, 2, 16)

	if _, err := spec.Lookup(p.TV); err != nil {
		p.TV = spec.NTSC.ID
	}
}

// Spec returns the TV specification named by the preferences.
func (p Prefs) Spec() spec.Spec {
	tv, err := spec.Lookup(p.TV)
	if err != nil {
		return spec.NTSC
	}
	return tv
}

// PokeyConfig returns the chip configuration. The clock is taken from the TV
// specification.
func (p Prefs) PokeyConfig() pokey.Config {
	return pokey.Config{
		Clock:          p.Spec().Clock,
		Gamma:          p.Gamma,
		Volume:         p.Volume,
		FilterConstant: p.FilterConstant,
		SerialSound:    p.SerialSound,
	}
}

// SoundConfig returns the configuration for the sound Manager.
func (p Prefs) SoundConfig() sound.Config {
	return sound.Config{
		SamplingFreq: p.SamplingFreq,
		PokeyFreq:    p.PokeyFreq,
		FragSize:     p.FragSize,
		NumFrags:     p.NumFrags,
		Format: buffer.Format{
			Signed:       p.Format.Signed,
			SixteenBit:   p.Format.SixteenBit,
			LittleEndian: p.Format.LittleEndian,
			Stereo:       p.Format.Stereo,
			Interleaved:  p.Format.Interleaved,
		},
		ConsoleSpeaker: p.ConsoleSpeaker,
		ConsoleVolume:  p.ConsoleVolume,
	}
}

// Parse a YAML document. Fields missing from the document keep their default
// value.
func Parse(data []byte) (Prefs, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("prefs: %w", err)
	}
	p.Clamp()
	return p, nil
}

// Marshal the preferences as a YAML document.
func (p Prefs) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}
	return data, nil
}

// Load the preferences file. A missing file is not an error and the default
// preferences are returned.
func Load() (Prefs, error) {
	data, err := resources.Read(Filename)
	if err != nil {
		return Default(), fmt.Errorf("prefs: %w", err)
	}
	return Parse([]byte(data))
}

// Save the preferences file.
func (p Prefs) Save() error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := resources.Write(Filename, string(data)); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
