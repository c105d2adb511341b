//go:build linux

package platform

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

const (
	evKey        = 0x01
	inputEventSz = 24 // struct input_event on a 64-bit kernel: timeval(16) + type(2) + code(2) + value(4)
	eviocgrab    = 0x40044590
)

// LinuxPlatform discovers keyboard devices under /dev/input/event* and
// injects synthetic events through a /dev/uinput virtual keyboard.
type LinuxPlatform struct {
	devDir string
}

// NewLinuxPlatform builds a platform rooted at the standard evdev
// device directory.
func NewLinuxPlatform() *LinuxPlatform {
	return &LinuxPlatform{devDir: "/dev/input"}
}

// New builds the platform for the current OS.
func New() Platform { return NewLinuxPlatform() }

func (p *LinuxPlatform) Name() string { return "linux-evdev" }

func (p *LinuxPlatform) Discover() ([]InputDevice, error) {
	entries, err := os.ReadDir(p.devDir)
	if err != nil {
		return nil, newDeviceError(OpenFailed, err.Error())
	}

	var devices []InputDevice
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join(p.devDir, e.Name())
		dev, err := openEvdevInput(path)
		if err != nil {
			continue
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func (p *LinuxPlatform) Output() (OutputDevice, error) {
	return newUinputOutput()
}

// evdevInput reads raw input_event records from one /dev/input/eventN
// device node.
type evdevInput struct {
	id   string
	file *os.File
}

func openEvdevInput(path string) (*evdevInput, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &evdevInput{id: path, file: f}, nil
}

func (d *evdevInput) ID() string { return d.id }

func (d *evdevInput) Grab() error {
	if err := unix.IoctlSetInt(int(d.file.Fd()), eviocgrab, 1); err != nil {
		return newDeviceError(GrabFailed, err.Error())
	}
	return nil
}

func (d *evdevInput) Release() error {
	if err := unix.IoctlSetInt(int(d.file.Fd()), eviocgrab, 0); err != nil {
		return newDeviceError(GrabFailed, err.Error())
	}
	return nil
}

func (d *evdevInput) NextEvent() (keycode.KeyEvent, error) {
	buf := make([]byte, inputEventSz)
	for {
		n, err := d.file.Read(buf)
		if err != nil || n < inputEventSz {
			return keycode.KeyEvent{}, newDeviceError(EndOfStream, "")
		}

		evType := binary.LittleEndian.Uint16(buf[16:18])
		if evType != evKey {
			continue
		}
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))
		if value == 2 {
			// Auto-repeat: not a press/release transition.
			continue
		}

		kc, ok := evdevToKeyCode[code]
		if !ok {
			continue
		}
		sec := binary.LittleEndian.Uint64(buf[0:8])
		usec := binary.LittleEndian.Uint64(buf[8:16])
		ts := sec*1_000_000 + usec

		if value == 1 {
			return keycode.NewPress(kc, ts), nil
		}
		return keycode.NewRelease(kc, ts), nil
	}
}

// uinputOutput injects synthetic key events through a /dev/uinput
// virtual keyboard device.
type uinputOutput struct {
	file *os.File
}

func newUinputOutput() (*uinputOutput, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, newDeviceError(OpenFailed, err.Error())
	}
	return &uinputOutput{file: f}, nil
}

func (o *uinputOutput) InjectEvent(ev keycode.KeyEvent) error {
	code, ok := keyCodeToEvdev[ev.Key]
	if !ok {
		return newDeviceError(InjectionFailed, fmt.Sprintf("no evdev mapping for %s", ev.Key))
	}
	value := int32(0)
	if ev.Kind == keycode.Press {
		value = 1
	}
	if err := o.writeEvent(evKey, code, value); err != nil {
		return newDeviceError(InjectionFailed, err.Error())
	}
	return o.writeEvent(0x00 /* EV_SYN */, 0, 0)
}

func (o *uinputOutput) writeEvent(evType, code uint16, value int32) error {
	buf := make([]byte, inputEventSz)
	binary.LittleEndian.PutUint16(buf[16:18], evType)
	binary.LittleEndian.PutUint16(buf[18:20], code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(value))
	_, err := o.file.Write(buf)
	return err
}
