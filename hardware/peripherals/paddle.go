package peripherals

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// NumPaddles is the number of potentiometer inputs of the POKEY.
const NumPaddles = 8

// Unconnected is the position reported for a paddle that is not plugged in.
const Unconnected = 228

// Paddles represent the eight paddles that plug into the potentiometer inputs
// of the first POKEY. The position of a paddle is the number of scanlines it
// takes for the capacitor to charge.
//
// Positions can be changed from any goroutine.
type Paddles struct {
	crit     sync.Mutex
	position [NumPaddles]uint8
}

// NewPaddles is the preferred method of initialisation for the Paddles type.
// All paddles are unconnected.
func NewPaddles() *Paddles {
	pd := &Paddles{}
	pd.Reset()
	return pd
}

// Reset unplugs all paddles.
func (pd *Paddles) Reset() {
	pd.crit.Lock()
	defer pd.crit.Unlock()
	for i := range pd.position {
		pd.position[i] = Unconnected
	}
}

// Set the position of the paddle. The position is clamped to the range of
// the counter.
func (pd *Paddles) Set(n int, position int) error {
	if n < 0 || n >= NumPaddles {
		return fmt.Errorf("paddles: no paddle %d", n)
	}
	pd.crit.Lock()
	defer pd.crit.Unlock()
	pd.position[n] = uint8(min(max(position, 0), Unconnected))
	return nil
}

// Unplug the paddle.
func (pd *Paddles) Unplug(n int) {
	if n < 0 || n >= NumPaddles {
		return
	}
	pd.crit.Lock()
	defer pd.crit.Unlock()
	pd.position[n] = Unconnected
}

// Pot implements the pokey.PotSource interface.
func (pd *Paddles) Pot(n int) uint8 {
	pd.crit.Lock()
	defer pd.crit.Unlock()
	return pd.position[n&(NumPaddles-1)]
}

// Parse a paddle setting in the form N=POSITION and apply it.
func (pd *Paddles) Parse(s string) error {
	n, pos, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("paddles: setting must be in the form N=POSITION (%s)", s)
	}

	pn, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil {
		return fmt.Errorf("paddles: %w", err)
	}

	pv, err := strconv.Atoi(strings.TrimSpace(pos))
	if err != nil {
		return fmt.Errorf("paddles: %w", err)
	}

	return pd.Set(pn, pv)
}
