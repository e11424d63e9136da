// Package waveform plots the output of a chip as a PNG image.
package waveform

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/jetsetilly/pokeyplay/hardware/pokey"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// image size
const (
	width  = 10 * vg.Inch
	height = 4 * vg.Inch
)

// Samples collects the output of a chip. It implements the pokey.Sink
// interface.
type Samples []uint8

// PutSample implements the pokey.Sink interface.
func (s *Samples) PutSample(v uint8) {
	*s = append(*s, v)
}

// Capture count samples from the chip at the sample rate.
func Capture(pk *pokey.Pokey, count int, rate int) Samples {
	s := make(Samples, 0, count)
	pk.ComputeSamples(&s, count, rate, 0)
	return s
}

// XYs converts the samples to points for a step plot. the sample value is
// held until the next sample so that edges are vertical.
func (s Samples) XYs() plotter.XYs {
	xys := make(plotter.XYs, 0, len(s)*2)
	for i, v := range s {
		if i > 0 && s[i-1] != v {
			xys = append(xys, plotter.XY{X: float64(i), Y: float64(s[i-1])})
		}
		xys = append(xys, plotter.XY{X: float64(i), Y: float64(v)})
	}
	return xys
}

// Plot writes a PNG image of the samples to w.
func Plot(w io.Writer, title string, s Samples) error {
	if len(s) == 0 {
		return errors.New("waveform: no samples")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Amplitude"
	p.Y.Min = 0
	p.Y.Max = 255
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(s.XYs())
	if err != nil {
		return fmt.Errorf("waveform: %w", err)
	}
	line.Color = color.RGBA{R: 0x20, G: 0x60, B: 0xd0, A: 0xff}
	p.Add(line)

	c := vgimg.New(width, height)
	p.Draw(draw.New(c))

	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	if err != nil {
		return fmt.Errorf("waveform: %w", err)
	}
	return nil
}
