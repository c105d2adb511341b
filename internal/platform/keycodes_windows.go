//go:build windows

package platform

import "github.com/keyrxd/keyrx/pkg/keycode"

// Win32 virtual-key codes (winuser.h), mapped to the engine's stable
// KeyCode space. Only the subset needed for the common remapping
// surface is listed; extend here as needed.
const (
	vkA = 0x41
	vkZ = 0x5A

	vk0 = 0x30
	vk9 = 0x39

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12 // Alt
	vkLWin    = 0x5B
	vkRWin    = 0x5C

	vkLShift   = 0xA0
	vkRShift   = 0xA1
	vkLControl = 0xA2
	vkRControl = 0xA3
	vkLMenu    = 0xA4
	vkRMenu    = 0xA5

	vkSpace     = 0x20
	vkReturn    = 0x0D
	vkTab       = 0x09
	vkEscape    = 0x1B
	vkBack      = 0x08
	vkCapital   = 0x14
	vkUp        = 0x26
	vkDown      = 0x28
	vkLeft      = 0x25
	vkRight     = 0x27
	vkHome      = 0x24
	vkEnd       = 0x23
	vkPrior     = 0x21 // Page Up
	vkNext      = 0x22 // Page Down
	vkInsert    = 0x2D
	vkDelete    = 0x2E
)

var vkToKeyCode = map[uint32]keycode.KeyCode{
	vkLShift: keycode.LShift, vkRShift: keycode.RShift,
	vkLControl: keycode.LCtrl, vkRControl: keycode.RCtrl,
	vkLMenu: keycode.LAlt, vkRMenu: keycode.RAlt,
	vkLWin: keycode.LMeta, vkRWin: keycode.RMeta,
	vkSpace: keycode.Space, vkReturn: keycode.Enter, vkTab: keycode.Tab,
	vkEscape: keycode.Escape, vkBack: keycode.Backspace, vkCapital: keycode.CapsLock,
	vkUp: keycode.Up, vkDown: keycode.Down, vkLeft: keycode.Left, vkRight: keycode.Right,
	vkHome: keycode.Home, vkEnd: keycode.End, vkPrior: keycode.PageUp, vkNext: keycode.PageDown,
	vkInsert: keycode.Insert, vkDelete: keycode.Delete,
}

func init() {
	letters := []keycode.KeyCode{
		keycode.A, keycode.B, keycode.C, keycode.D, keycode.E, keycode.F, keycode.G,
		keycode.H, keycode.I, keycode.J, keycode.K, keycode.L, keycode.M, keycode.N,
		keycode.O, keycode.P, keycode.Q, keycode.R, keycode.S, keycode.T, keycode.U,
		keycode.V, keycode.W, keycode.X, keycode.Y, keycode.Z,
	}
	for i, kc := range letters {
		vkToKeyCode[uint32(vkA+i)] = kc
	}

	digits := []keycode.KeyCode{
		keycode.Digit0, keycode.Digit1, keycode.Digit2, keycode.Digit3, keycode.Digit4,
		keycode.Digit5, keycode.Digit6, keycode.Digit7, keycode.Digit8, keycode.Digit9,
	}
	for i, kc := range digits {
		vkToKeyCode[uint32(vk0+i)] = kc
	}
}

var keyCodeToVK map[keycode.KeyCode]uint32

func init() {
	keyCodeToVK = make(map[keycode.KeyCode]uint32, len(vkToKeyCode))
	for vk, kc := range vkToKeyCode {
		keyCodeToVK[kc] = vk
	}
}
