// Package platform abstracts the OS-specific capture/injection surface
// the daemon drives: an InputDevice delivers captured key events, an
// OutputDevice replays the processor's output. Production platforms
// are selected at build time (linux/windows/darwin); mock.go provides
// a zero-dependency pair for tests, grounded on the reference
// implementation's platform/mock module.
package platform

import (
	"fmt"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

// ErrorKind enumerates the ways an InputDevice/OutputDevice operation
// can fail.
type ErrorKind uint8

const (
	// EndOfStream is returned by NextEvent when no further events will
	// ever arrive (device closed, mock queue exhausted).
	EndOfStream ErrorKind = iota
	// InjectionFailed is returned by InjectEvent when the OS refused or
	// could not complete a synthetic event injection.
	InjectionFailed
	// GrabFailed is returned by Grab when exclusive access could not be
	// acquired (device busy, insufficient permission).
	GrabFailed
	// OpenFailed is returned when the underlying device node/API could
	// not be opened at all.
	OpenFailed
)

func (k ErrorKind) String() string {
	switch k {
	case EndOfStream:
		return "EndOfStream"
	case InjectionFailed:
		return "InjectionFailed"
	case GrabFailed:
		return "GrabFailed"
	case OpenFailed:
		return "OpenFailed"
	default:
		return "UnknownDeviceError"
	}
}

// DeviceError is the typed error returned by InputDevice/OutputDevice
// methods.
type DeviceError struct {
	Kind ErrorKind
	Msg  string
}

func (e *DeviceError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newDeviceError(kind ErrorKind, msg string) *DeviceError {
	return &DeviceError{Kind: kind, Msg: msg}
}

// InputDevice delivers physical key events from one OS input source.
type InputDevice interface {
	// NextEvent blocks until an event is available and returns it, or
	// returns an EndOfStream DeviceError once the device is exhausted
	// or closed.
	NextEvent() (keycode.KeyEvent, error)

	// Grab requests exclusive access to the device, preventing the OS
	// from delivering the physical events to any other consumer.
	Grab() error

	// Release relinquishes exclusive access acquired by Grab.
	Release() error

	// ID returns the device identifier used for device-pattern matching
	// (spec.md §4.4).
	ID() string
}

// OutputDevice replays synthetic key events into the OS input stream.
type OutputDevice interface {
	InjectEvent(ev keycode.KeyEvent) error
}

// BlockAware is implemented by platform backends that have no exclusive
// device grab and so rely on the daemon telling them which physical keys
// are currently remapped, so the original key can be suppressed instead
// of delivered to the OS a second time alongside the injected
// replacement (see WindowsPlatform's WH_KEYBOARD_LL hook).
type BlockAware interface {
	// SetBlocked installs the predicate the backend consults before
	// forwarding a captured key on to the rest of the OS. isBlocked may
	// be called from a different goroutine than the one that installed
	// it (Windows hook callbacks run on the thread pumping messages).
	SetBlocked(isBlocked func(keycode.KeyCode) bool)
}

// Platform bundles device discovery with the input/output surface the
// daemon needs: one OutputDevice shared across all discovered
// InputDevices.
type Platform interface {
	// Discover enumerates the input devices currently present.
	Discover() ([]InputDevice, error)

	// Output returns the shared synthetic-event injector.
	Output() (OutputDevice, error)

	// Name identifies the platform backend for logging ("linux-evdev",
	// "windows-lli", "darwin-cgeventtap", "mock").
	Name() string
}
