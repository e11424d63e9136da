// Package backend contains the audio devices that can be attached to a
// sound.Manager.
//
// Devices are either pull devices, that read from the Manager in their own
// goroutine (Oto and Ebiten), or polled devices, that are fed by the
// emulation through the sound.Poller interface (SDL, Wav and Null).
package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jetsetilly/pokeyplay/sound"
)

// Device is an audio output.
type Device interface {
	// Prepare changes the configuration to suit the device. It is called
	// before the Manager is created
	Prepare(cfg *sound.Config)

	// Start playback of samples from the Manager
	Start(m *sound.Manager) error

	// Close the device. Remaining samples are discarded, or in the case of
	// a file, written
	Close() error
}

// Nudger is used by pull devices to tell the emulation that samples are
// needed sooner than expected.
type Nudger interface {
	Nudge()
}

// Options for Open().
type Options struct {
	// the file to write to for the wav device
	Filename string

	// write 16bit samples to the file. 8bit samples otherwise
	SixteenBit bool

	// optional. used by pull devices when they are running low
	Nudger Nudger
}

// ErrUnknownDevice is returned by Open() for an unrecognised device name.
var ErrUnknownDevice = errors.New("unknown audio device")

// ErrDevice is returned by Start() when the device cannot be opened or
// started. The sample format is not at fault.
var ErrDevice = errors.New("audio device unavailable")

// List of device names accepted by Open().
var List = []string{"oto", "ebiten", "sdl", "wav", "null"}

// Open returns the named device. The device has not been started.
func Open(name string, opts Options) (Device, error) {
	switch strings.ToLower(name) {
	case "", "oto":
		return NewOto(opts.Nudger), nil
	case "ebiten":
		return NewEbiten(opts.Nudger), nil
	case "sdl":
		return NewSDL(), nil
	case "wav":
		if opts.Filename == "" {
			return nil, fmt.Errorf("backend: wav device requires a filename")
		}
		return NewWav(opts.Filename, opts.SixteenBit), nil
	case "null":
		return NewNull(), nil
	}
	return nil, fmt.Errorf("backend: %w: %s", ErrUnknownDevice, name)
}
