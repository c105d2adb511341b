package compiler

import (
	"strconv"
	"strings"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

// physicalModifierNames lists the KeyCode names that a target carrying
// an MD_/LK_ prefix must never collide with (spec.md §4.2).
var physicalModifierNames = map[string]bool{
	"LShift": true, "RShift": true,
	"LCtrl": true, "RCtrl": true,
	"LAlt": true, "RAlt": true,
	"LMeta": true, "RMeta": true,
}

// resolveFromKey resolves a `from` argument: a bare KeyCode name or the
// same name prefixed VK_.
func resolveFromKey(s string) (keycode.KeyCode, bool) {
	name := strings.TrimPrefix(s, "VK_")
	return keycode.Lookup(name)
}

// resolveVKTarget resolves a `VK_<key>` target to a KeyCode.
func resolveVKTarget(s string) (keycode.KeyCode, bool) {
	if !strings.HasPrefix(s, "VK_") {
		return keycode.Unknown, false
	}
	return keycode.Lookup(strings.TrimPrefix(s, "VK_"))
}

// parseStateIDSuffix parses the two-hex-digit suffix of an MD_/LK_
// target or a tap_hold `hold` argument, e.g. "MD_00" -> 0x00. It reports
// a PhysicalModifierNotAllowed diagnostic if the suffix is actually a
// physical modifier's KeyCode name rather than hex digits (e.g.
// "MD_LShift"), and MissingPrefix/OutOfRangeID otherwise.
func parseStateIDSuffix(prefix, s string, file string, line int) (uint8, *Error) {
	if !strings.HasPrefix(s, prefix) {
		return 0, newError(MissingPrefix, file, line, "expected prefix "+prefix+" on "+s)
	}
	suffix := strings.TrimPrefix(s, prefix)
	if physicalModifierNames[suffix] {
		return 0, newError(PhysicalModifierNotAllowed, file, line,
			prefix+suffix+" collides with a physical modifier name")
	}
	v, err := strconv.ParseUint(suffix, 16, 16)
	if err != nil || len(suffix) == 0 {
		return 0, newError(SyntaxError, file, line, "expected two hex digits after "+prefix+", got "+suffix)
	}
	if v > 0xFE {
		return 0, newError(OutOfRangeID, file, line, "id "+suffix+" exceeds 0xFE")
	}
	return uint8(v), nil
}
