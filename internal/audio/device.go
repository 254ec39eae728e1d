// Package audio abstracts the output device. The engine talks to a Device
// only through this interface so the same lifecycle code runs against the
// real oto-backed output and the in-memory device the tests drive by hand.
package audio

import "errors"

var ErrNotConnected = errors.New("audio: no source connected")

// Device is one connection to an audio output. Connect installs the render
// callback; Start begins invoking it; Stop disconnects and guarantees that
// once it returns the callback will not be invoked again. A Device is
// single-use: after Stop it cannot be restarted.
type Device interface {
	// SampleRate reports the rate the device renders at. Synthesis
	// coefficients are baked against this value, so a rate change requires
	// a new Device.
	SampleRate() int
	Connect(src SampleSource) error
	Start() error
	// Pause suspends callback invocations while keeping the connection
	// alive; Start resumes them.
	Pause() error
	Stop() error
	// SetRouteListener registers a callback fired from the control context
	// when the output route or rate changes and the device must be rebuilt.
	SetRouteListener(fn func())
}

// OpenFunc opens a device at the preferred sample rate. Implementations may
// return a device running at a different rate; callers must read
// SampleRate() back rather than assume.
type OpenFunc func(sampleRate int) (Device, error)
