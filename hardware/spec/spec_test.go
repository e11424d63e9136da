package spec_test

import (
	"testing"

	"github.com/jetsetilly/pokeyplay/hardware/spec"
	"github.com/jetsetilly/pokeyplay/test"
)

func TestFrameRate(t *testing.T) {
	test.ExpectApproximate(t, spec.NTSC.FrameRate, 59.92, 0.01)
	test.ExpectApproximate(t, spec.PAL.FrameRate, 49.86, 0.01)
	test.ExpectEquality(t, spec.NTSC.FrameCycles(), 262*114)
}

func TestLookup(t *testing.T) {
	s, err := spec.Lookup("pal")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.ID, "PAL")

	s, err = spec.Lookup("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.ID, "NTSC")

	_, err = spec.Lookup("SECAM")
	test.ExpectFailure(t, err)
}
