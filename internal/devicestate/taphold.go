package devicestate

import "github.com/keyrxd/keyrx/pkg/keycode"

// tapHoldPhase is the per-key state from spec.md §4.3: {Idle,
// Pending(press_ts), HoldActive, TapFired}. TapFired is momentary and
// immediately returns to Idle, so it is not a stored phase here.
type tapHoldPhase uint8

const (
	phaseIdle tapHoldPhase = iota
	phasePending
	phaseHoldActive
)

type tapHoldKeyState struct {
	phase        tapHoldPhase
	pressTS      uint64
	tap          keycode.KeyCode
	holdModifier uint8
	thresholdUS  uint64
}

// TapHoldProcessor owns the per-physical-key tap-hold state machine.
// It is engine-thread-owned; see spec.md §5.
type TapHoldProcessor struct {
	keys map[keycode.KeyCode]*tapHoldKeyState
}

func newTapHoldProcessor() *TapHoldProcessor {
	return &TapHoldProcessor{keys: make(map[keycode.KeyCode]*tapHoldKeyState)}
}

// TapHoldOutcome describes what the FSM transition produced.
type TapHoldOutcome int

const (
	// OutcomeNone means no output and no modifier state change.
	OutcomeNone TapHoldOutcome = iota
	// OutcomeHoldActivated means the hold modifier bit was just set.
	OutcomeHoldActivated
	// OutcomeTapFired means Press(tap);Release(tap) must be injected as
	// raw, non-remapped output, and the key returns to Idle.
	OutcomeTapFired
	// OutcomeHoldReleased means the hold modifier bit was just cleared.
	OutcomeHoldReleased
)

// Begin starts tracking a tap-hold key on its initiating press. Any
// prior state for `from` is discarded (a double press without release
// simply restarts tracking, matching the "overwrite" edge case in §4.4).
func (p *TapHoldProcessor) Begin(from, tap keycode.KeyCode, holdModifier uint8, thresholdUS, pressTS uint64) {
	p.keys[from] = &tapHoldKeyState{
		phase:        phasePending,
		pressTS:      pressTS,
		tap:          tap,
		holdModifier: holdModifier,
		thresholdUS:  thresholdUS,
	}
}

// Tick advances any Pending tap-hold key whose dwell has now reached or
// exceeded its threshold into HoldActive. Called once per processed input event with
// the event's timestamp (the clock update in §4.4 step 1). Returns the
// set of keys that just transitioned, in map iteration order (order is
// irrelevant here: activation produces no output, only a modifier-bit
// side effect applied by the caller).
func (p *TapHoldProcessor) Tick(now uint64) []TransitionedKey {
	var out []TransitionedKey
	for from, st := range p.keys {
		if st.phase == phasePending && now-st.pressTS >= st.thresholdUS {
			st.phase = phaseHoldActive
			out = append(out, TransitionedKey{From: from, HoldModifier: st.holdModifier, Outcome: OutcomeHoldActivated})
		}
	}
	return out
}

// TransitionedKey describes one tap-hold key's state change.
type TransitionedKey struct {
	From         keycode.KeyCode
	HoldModifier uint8
	Tap          keycode.KeyCode
	Outcome      TapHoldOutcome
}

// PendingFrom returns the physical keys currently in the Pending phase,
// used to detect "rolling" presses of other keys while a tap-hold key
// is awaiting resolution.
func (p *TapHoldProcessor) PendingFrom() []keycode.KeyCode {
	var out []keycode.KeyCode
	for from, st := range p.keys {
		if st.phase == phasePending {
			out = append(out, from)
		}
	}
	return out
}

// IsTracked reports whether `from` has an active (Pending or HoldActive)
// tap-hold state.
func (p *TapHoldProcessor) IsTracked(from keycode.KeyCode) bool {
	_, ok := p.keys[from]
	return ok
}

// IsPending reports whether `from` is in the Pending phase.
func (p *TapHoldProcessor) IsPending(from keycode.KeyCode) bool {
	st, ok := p.keys[from]
	return ok && st.phase == phasePending
}

// IsHoldActive reports whether `from` is in the HoldActive phase.
func (p *TapHoldProcessor) IsHoldActive(from keycode.KeyCode) bool {
	st, ok := p.keys[from]
	return ok && st.phase == phaseHoldActive
}

// ResolveRelease handles a release of a tracked tap-hold key `from` at
// time now. It returns the outcome (OutcomeTapFired if the dwell was
// under threshold, OutcomeHoldReleased if it had already become a
// hold) and removes the key's tracked state.
func (p *TapHoldProcessor) ResolveRelease(from keycode.KeyCode, now uint64) (TransitionedKey, bool) {
	st, ok := p.keys[from]
	if !ok {
		return TransitionedKey{}, false
	}
	delete(p.keys, from)

	switch st.phase {
	case phasePending:
		return TransitionedKey{From: from, Outcome: OutcomeTapFired, Tap: st.tap}, true
	default: // phaseHoldActive
		return TransitionedKey{From: from, Outcome: OutcomeHoldReleased, HoldModifier: st.holdModifier}, true
	}
}

// Tap returns the tap KeyCode recorded for a Pending/HoldActive from,
// used by the caller to build the OutcomeTapFired output sequence.
func (p *TapHoldProcessor) Tap(from keycode.KeyCode) (keycode.KeyCode, bool) {
	st, ok := p.keys[from]
	if !ok {
		return keycode.Unknown, false
	}
	return st.tap, true
}

// RollingPress handles "a press of another physical key while `from` is
// Pending": per spec.md §9's resolved open question, rolling is treated
// as a hold. It forces `from` into HoldActive immediately so the other
// key is then processed under the new modifier state. Returns the
// modifier id that was just activated, and true if `from` was indeed
// Pending (a no-op otherwise).
func (p *TapHoldProcessor) RollingPress(from keycode.KeyCode) (uint8, bool) {
	st, ok := p.keys[from]
	if !ok || st.phase != phasePending {
		return 0, false
	}
	st.phase = phaseHoldActive
	return st.holdModifier, true
}
