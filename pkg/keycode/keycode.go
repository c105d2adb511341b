// Package keycode defines the closed set of physical keys the engine
// recognises and the value types used to describe a single key event.
package keycode

import "fmt"

// KeyCode is a stable integer encoding of a physical key. Values are part
// of the binary wire format (pkg/codec) and must never be renumbered once
// shipped; new keys are appended.
type KeyCode uint16

const (
	Unknown KeyCode = iota

	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	LShift
	RShift
	LCtrl
	RCtrl
	LAlt
	RAlt
	LMeta
	RMeta

	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Insert
	Delete

	Space
	Enter
	Tab
	Escape
	Backspace
	CapsLock
	ScrollLock
	NumLock
	PrintScreen
	Pause

	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadAdd
	NumpadSubtract
	NumpadMultiply
	NumpadDivide
	NumpadDecimal
	NumpadEnter

	MediaPlayPause
	MediaNext
	MediaPrevious
	MediaVolumeUp
	MediaVolumeDown
	MediaMute

	IntlBackslash
	IntlRo
	IntlYen
	KanaMode
	Hangul

	keyCodeCount
)

var names = map[KeyCode]string{
	Unknown: "Unknown",
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	Digit0: "0", Digit1: "1", Digit2: "2", Digit3: "3", Digit4: "4",
	Digit5: "5", Digit6: "6", Digit7: "7", Digit8: "8", Digit9: "9",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6", F7: "F7",
	F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12", F13: "F13",
	F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18", F19: "F19",
	F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",
	LShift: "LShift", RShift: "RShift", LCtrl: "LCtrl", RCtrl: "RCtrl",
	LAlt: "LAlt", RAlt: "RAlt", LMeta: "LMeta", RMeta: "RMeta",
	Up: "Up", Down: "Down", Left: "Left", Right: "Right", Home: "Home",
	End: "End", PageUp: "PageUp", PageDown: "PageDown", Insert: "Insert",
	Delete: "Delete",
	Space: "Space", Enter: "Enter", Tab: "Tab", Escape: "Escape",
	Backspace: "Backspace", CapsLock: "CapsLock", ScrollLock: "ScrollLock",
	NumLock: "NumLock", PrintScreen: "PrintScreen", Pause: "Pause",
	Numpad0: "Numpad0", Numpad1: "Numpad1", Numpad2: "Numpad2",
	Numpad3: "Numpad3", Numpad4: "Numpad4", Numpad5: "Numpad5",
	Numpad6: "Numpad6", Numpad7: "Numpad7", Numpad8: "Numpad8",
	Numpad9: "Numpad9", NumpadAdd: "NumpadAdd", NumpadSubtract: "NumpadSubtract",
	NumpadMultiply: "NumpadMultiply", NumpadDivide: "NumpadDivide",
	NumpadDecimal: "NumpadDecimal", NumpadEnter: "NumpadEnter",
	MediaPlayPause: "MediaPlayPause", MediaNext: "MediaNext",
	MediaPrevious: "MediaPrevious", MediaVolumeUp: "MediaVolumeUp",
	MediaVolumeDown: "MediaVolumeDown", MediaMute: "MediaMute",
	IntlBackslash: "IntlBackslash", IntlRo: "IntlRo", IntlYen: "IntlYen",
	KanaMode: "KanaMode", Hangul: "Hangul",
}

var byName map[string]KeyCode

func init() {
	byName = make(map[string]KeyCode, len(names))
	for code, name := range names {
		byName[name] = code
	}
}

// String implements fmt.Stringer.
func (k KeyCode) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(%d)", uint16(k))
}

// Valid reports whether k is a recognised, non-reserved key code.
func (k KeyCode) Valid() bool {
	_, ok := names[k]
	return ok
}

// Lookup resolves a bare key name (no VK_ prefix) to its KeyCode.
func Lookup(name string) (KeyCode, bool) {
	k, ok := byName[name]
	return k, ok
}

// Kind distinguishes a press from a release within a KeyEvent.
type Kind uint8

const (
	Press Kind = iota
	Release
)

func (k Kind) String() string {
	if k == Press {
		return "Press"
	}
	return "Release"
}

// KeyEvent is a value-typed physical or synthesized key transition.
// TimestampUS is microseconds from an unspecified monotonic epoch; the
// only requirement on it is that it is non-decreasing within a single
// device stream.
type KeyEvent struct {
	Kind        Kind
	Key         KeyCode
	TimestampUS uint64
}

// NewPress builds a Press KeyEvent.
func NewPress(key KeyCode, ts uint64) KeyEvent {
	return KeyEvent{Kind: Press, Key: key, TimestampUS: ts}
}

// NewRelease builds a Release KeyEvent.
func NewRelease(key KeyCode, ts uint64) KeyEvent {
	return KeyEvent{Kind: Release, Key: key, TimestampUS: ts}
}
