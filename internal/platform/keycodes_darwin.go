//go:build darwin

package platform

import "github.com/keyrxd/keyrx/pkg/keycode"

// macOS virtual keycodes (Carbon kVK_* constants, stable across OS
// releases despite the deprecated framework name), mapped to the
// engine's stable KeyCode space.
const (
	kVKShift    = 0x38
	kVKRShift   = 0x3C
	kVKControl  = 0x3B
	kVKRControl = 0x3E
	kVKOption   = 0x3A
	kVKROption  = 0x3D
	kVKCommand  = 0x37
	kVKRCommand = 0x36

	kVKSpace      = 0x31
	kVKReturn     = 0x24
	kVKTab        = 0x30
	kVKEscape     = 0x35
	kVKDelete     = 0x33 // Backspace
	kVKForwardDel = 0x75
	kVKCapsLock   = 0x39
	kVKUpArrow    = 0x7E
	kVKDownArrow  = 0x7D
	kVKLeftArrow  = 0x7B
	kVKRightArrow = 0x7C
	kVKHome       = 0x73
	kVKEnd        = 0x77
	kVKPageUp     = 0x74
	kVKPageDown   = 0x79
)

// ansiKeycodeToLetter lists the ANSI USB-keyboard layout's per-letter
// virtual keycodes, which are not numerically contiguous.
var ansiKeycodeToLetter = map[uint16]keycode.KeyCode{
	0x00: keycode.A, 0x0B: keycode.B, 0x08: keycode.C, 0x02: keycode.D,
	0x0E: keycode.E, 0x03: keycode.F, 0x05: keycode.G, 0x04: keycode.H,
	0x22: keycode.I, 0x26: keycode.J, 0x28: keycode.K, 0x25: keycode.L,
	0x2E: keycode.M, 0x2D: keycode.N, 0x1F: keycode.O, 0x23: keycode.P,
	0x0C: keycode.Q, 0x0F: keycode.R, 0x01: keycode.S, 0x11: keycode.T,
	0x20: keycode.U, 0x09: keycode.V, 0x0D: keycode.W, 0x07: keycode.X,
	0x10: keycode.Y, 0x06: keycode.Z,

	0x1D: keycode.Digit0, 0x12: keycode.Digit1, 0x13: keycode.Digit2,
	0x14: keycode.Digit3, 0x15: keycode.Digit4, 0x17: keycode.Digit5,
	0x16: keycode.Digit6, 0x1A: keycode.Digit7, 0x1C: keycode.Digit8,
	0x19: keycode.Digit9,
}

var vkToKeyCode map[uint16]keycode.KeyCode

func init() {
	vkToKeyCode = make(map[uint16]keycode.KeyCode, len(ansiKeycodeToLetter)+24)
	for vk, kc := range ansiKeycodeToLetter {
		vkToKeyCode[vk] = kc
	}
	vkToKeyCode[kVKShift] = keycode.LShift
	vkToKeyCode[kVKRShift] = keycode.RShift
	vkToKeyCode[kVKControl] = keycode.LCtrl
	vkToKeyCode[kVKRControl] = keycode.RCtrl
	vkToKeyCode[kVKOption] = keycode.LAlt
	vkToKeyCode[kVKROption] = keycode.RAlt
	vkToKeyCode[kVKCommand] = keycode.LMeta
	vkToKeyCode[kVKRCommand] = keycode.RMeta
	vkToKeyCode[kVKSpace] = keycode.Space
	vkToKeyCode[kVKReturn] = keycode.Enter
	vkToKeyCode[kVKTab] = keycode.Tab
	vkToKeyCode[kVKEscape] = keycode.Escape
	vkToKeyCode[kVKDelete] = keycode.Backspace
	vkToKeyCode[kVKForwardDel] = keycode.Delete
	vkToKeyCode[kVKCapsLock] = keycode.CapsLock
	vkToKeyCode[kVKUpArrow] = keycode.Up
	vkToKeyCode[kVKDownArrow] = keycode.Down
	vkToKeyCode[kVKLeftArrow] = keycode.Left
	vkToKeyCode[kVKRightArrow] = keycode.Right
	vkToKeyCode[kVKHome] = keycode.Home
	vkToKeyCode[kVKEnd] = keycode.End
	vkToKeyCode[kVKPageUp] = keycode.PageUp
	vkToKeyCode[kVKPageDown] = keycode.PageDown
}

var keyCodeToVK map[keycode.KeyCode]uint16

func init() {
	keyCodeToVK = make(map[keycode.KeyCode]uint16, len(vkToKeyCode))
	for vk, kc := range vkToKeyCode {
		keyCodeToVK[kc] = vk
	}
}
