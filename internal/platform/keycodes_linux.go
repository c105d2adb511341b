//go:build linux

package platform

import (
	"golang.org/x/sys/unix"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

// evdevToKeyCode maps a subset of Linux evdev KEY_* scancodes
// (golang.org/x/sys/unix constants) to the engine's stable KeyCode
// space. Extending hardware coverage means adding entries here, never
// renumbering keycode.KeyCode itself.
var evdevToKeyCode = map[uint16]keycode.KeyCode{
	unix.KEY_A: keycode.A, unix.KEY_B: keycode.B, unix.KEY_C: keycode.C,
	unix.KEY_D: keycode.D, unix.KEY_E: keycode.E, unix.KEY_F: keycode.F,
	unix.KEY_G: keycode.G, unix.KEY_H: keycode.H, unix.KEY_I: keycode.I,
	unix.KEY_J: keycode.J, unix.KEY_K: keycode.K, unix.KEY_L: keycode.L,
	unix.KEY_M: keycode.M, unix.KEY_N: keycode.N, unix.KEY_O: keycode.O,
	unix.KEY_P: keycode.P, unix.KEY_Q: keycode.Q, unix.KEY_R: keycode.R,
	unix.KEY_S: keycode.S, unix.KEY_T: keycode.T, unix.KEY_U: keycode.U,
	unix.KEY_V: keycode.V, unix.KEY_W: keycode.W, unix.KEY_X: keycode.X,
	unix.KEY_Y: keycode.Y, unix.KEY_Z: keycode.Z,

	unix.KEY_0: keycode.Digit0, unix.KEY_1: keycode.Digit1,
	unix.KEY_2: keycode.Digit2, unix.KEY_3: keycode.Digit3,
	unix.KEY_4: keycode.Digit4, unix.KEY_5: keycode.Digit5,
	unix.KEY_6: keycode.Digit6, unix.KEY_7: keycode.Digit7,
	unix.KEY_8: keycode.Digit8, unix.KEY_9: keycode.Digit9,

	unix.KEY_LEFTSHIFT: keycode.LShift, unix.KEY_RIGHTSHIFT: keycode.RShift,
	unix.KEY_LEFTCTRL: keycode.LCtrl, unix.KEY_RIGHTCTRL: keycode.RCtrl,
	unix.KEY_LEFTALT: keycode.LAlt, unix.KEY_RIGHTALT: keycode.RAlt,
	unix.KEY_LEFTMETA: keycode.LMeta, unix.KEY_RIGHTMETA: keycode.RMeta,

	unix.KEY_UP: keycode.Up, unix.KEY_DOWN: keycode.Down,
	unix.KEY_LEFT: keycode.Left, unix.KEY_RIGHT: keycode.Right,
	unix.KEY_HOME: keycode.Home, unix.KEY_END: keycode.End,
	unix.KEY_PAGEUP: keycode.PageUp, unix.KEY_PAGEDOWN: keycode.PageDown,
	unix.KEY_INSERT: keycode.Insert, unix.KEY_DELETE: keycode.Delete,

	unix.KEY_SPACE: keycode.Space, unix.KEY_ENTER: keycode.Enter,
	unix.KEY_TAB: keycode.Tab, unix.KEY_ESC: keycode.Escape,
	unix.KEY_BACKSPACE: keycode.Backspace, unix.KEY_CAPSLOCK: keycode.CapsLock,
}

var keyCodeToEvdev map[keycode.KeyCode]uint16

func init() {
	keyCodeToEvdev = make(map[keycode.KeyCode]uint16, len(evdevToKeyCode))
	for scancode, kc := range evdevToKeyCode {
		keyCodeToEvdev[kc] = scancode
	}
}
