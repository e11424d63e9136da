package spec

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/pokeyplay/hardware/clocks"
)

// Spec describes the timing of a TV standard as it affects the POKEY
type Spec struct {
	ID string

	// the CPU clock in Hz. the POKEY is clocked by the CPU
	Clock int

	// number of scanlines in a frame. each scanline is clocks.ScanlineCycles
	// CPU cycles long
	Scanlines int

	// the nominal refresh rate
	FrameRate float64

	// the horizontal scan rate in Hz
	HorizScan float64
}

func (s Spec) String() string {
	return s.ID
}

// FrameCycles is the number of CPU cycles in a frame
func (s Spec) FrameCycles() int {
	return s.Scanlines * clocks.ScanlineCycles
}

var NTSC Spec
var PAL Spec

func init() {
	// "The NTSC machines generate 262 scanlines per frame at very nearly 60Hz.
	// PAL machines generate 312 scanlines at 50Hz"
	NTSC = Spec{
		ID:        "NTSC",
		Clock:     clocks.NTSC,
		Scanlines: 262,
	}

	PAL = Spec{
		ID:        "PAL",
		Clock:     clocks.PAL,
		Scanlines: 312,
	}

	for _, s := range []*Spec{&NTSC, &PAL} {
		s.HorizScan = float64(s.Clock) / clocks.ScanlineCycles
		s.FrameRate = s.HorizScan / float64(s.Scanlines)
	}
}

// Lookup returns the Spec for the ID. The ID is not case sensitive. An empty
// ID returns the NTSC spec.
func Lookup(id string) (Spec, error) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "", "NTSC":
		return NTSC, nil
	case "PAL":
		return PAL, nil
	}
	return Spec{}, fmt.Errorf("spec: unknown TV standard (%s)", id)
}
