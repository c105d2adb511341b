// Package devicestate owns the per-daemon runtime state: modifier and
// lock bitmaps, the bounded pressed-key tracker, the tap-hold state
// machine, and condition evaluation against that state. It is mutated
// only from the single engine thread (see internal/engine).
package devicestate

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

// DefaultPressedKeyCapacity and DefaultPressedOutputCapacity are the
// pressed_keys bounds described in spec.md §3: "capacity ≥32 inputs, ≥5
// outputs each".
const (
	DefaultPressedKeyCapacity    = 32
	DefaultPressedOutputCapacity = 5
)

// State is the engine's mutable per-daemon runtime state.
type State struct {
	modifiers [profile.MaxID + 1]bool
	locks     [profile.MaxID + 1]bool

	pressedKeys     *orderedmap.OrderedMap[keycode.KeyCode, []keycode.KeyCode]
	pressedKeyCap   int
	pressedOutCap   int

	TapHold *TapHoldProcessor
}

// New creates a DeviceState with the given pressed_keys bounds. A
// keyCapacity or outputCapacity of 0 uses the spec-minimum defaults.
func New(keyCapacity, outputCapacity int) *State {
	if keyCapacity <= 0 {
		keyCapacity = DefaultPressedKeyCapacity
	}
	if outputCapacity <= 0 {
		outputCapacity = DefaultPressedOutputCapacity
	}
	return &State{
		pressedKeys:   orderedmap.New[keycode.KeyCode, []keycode.KeyCode](),
		pressedKeyCap: keyCapacity,
		pressedOutCap: outputCapacity,
		TapHold:       newTapHoldProcessor(),
	}
}

// SetModifier sets modifier bit id. Returns ErrInvalidStateID (a no-op,
// state unchanged) if id > 254.
func (s *State) SetModifier(id uint8) error {
	if id > profile.MaxID {
		return &profile.ErrInvalidStateID{ID: int(id)}
	}
	s.modifiers[id] = true
	return nil
}

// ClearModifier clears modifier bit id. Same validity rule as SetModifier.
func (s *State) ClearModifier(id uint8) error {
	if id > profile.MaxID {
		return &profile.ErrInvalidStateID{ID: int(id)}
	}
	s.modifiers[id] = false
	return nil
}

// IsModifierActive reports whether modifier bit id is set. An id > 254
// is always reported inactive.
func (s *State) IsModifierActive(id uint8) bool {
	if id > profile.MaxID {
		return false
	}
	return s.modifiers[id]
}

// ToggleLock flips lock bit id. Same validity rule as SetModifier.
func (s *State) ToggleLock(id uint8) error {
	if id > profile.MaxID {
		return &profile.ErrInvalidStateID{ID: int(id)}
	}
	s.locks[id] = !s.locks[id]
	return nil
}

// IsLockActive reports whether lock bit id is set. An id > 254 is
// always reported inactive.
func (s *State) IsLockActive(id uint8) bool {
	if id > profile.MaxID {
		return false
	}
	return s.locks[id]
}

// RecordPress records the outputs actually injected for a physical press,
// so the matching release replays the same sequence regardless of any
// layer change in between (I3, P4). If the tracker is at capacity and
// `from` is not already tracked, the press is reported unmapped (false)
// and the caller must pass the input through without recording it,
// matching the "try-push returning false" behavior from spec.md §9.
func (s *State) RecordPress(from keycode.KeyCode, outputs []keycode.KeyCode) bool {
	if len(outputs) > s.pressedOutCap {
		outputs = outputs[:s.pressedOutCap]
	}
	if _, exists := s.pressedKeys.Get(from); !exists && s.pressedKeys.Len() >= s.pressedKeyCap {
		return false
	}
	// Copy so later mutation of the caller's slice cannot alias state.
	stored := make([]keycode.KeyCode, len(outputs))
	copy(stored, outputs)
	s.pressedKeys.Set(from, stored)
	return true
}

// TakeRelease removes and returns the recorded outputs for `from`, in
// the order they were injected (callers must reverse for release order
// per §4.4 step 3). The second return value is false if `from` was not
// tracked (untracked release, pass through as-is).
func (s *State) TakeRelease(from keycode.KeyCode) ([]keycode.KeyCode, bool) {
	outputs, ok := s.pressedKeys.Get(from)
	if !ok {
		return nil, false
	}
	s.pressedKeys.Delete(from)
	return outputs, true
}

// ClearAllPressed drops every tracked pressed-key entry, in reverse
// insertion order, invoking fn(from, outputs) for each before removal.
// Used during daemon shutdown/panic recovery to synthesize releases for
// every outstanding press.
func (s *State) ClearAllPressed(fn func(from keycode.KeyCode, outputs []keycode.KeyCode)) {
	var order []keycode.KeyCode
	for pair := s.pressedKeys.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	for i := len(order) - 1; i >= 0; i-- {
		from := order[i]
		outputs, _ := s.pressedKeys.Get(from)
		// Same reversal TakeRelease's callers apply (§4.4 step 3): a
		// multi-output press (e.g. a ModifiedOutput chord) must release
		// in the opposite order it was pressed.
		reversed := make([]keycode.KeyCode, len(outputs))
		for j, out := range outputs {
			reversed[len(outputs)-1-j] = out
		}
		fn(from, reversed)
	}
	for _, from := range order {
		s.pressedKeys.Delete(from)
	}
	for i := range s.modifiers {
		s.modifiers[i] = false
	}
}

// PressedKeyCount reports the number of tracked pressed-key entries
// (test/introspection helper).
func (s *State) PressedKeyCount() int {
	return s.pressedKeys.Len()
}
