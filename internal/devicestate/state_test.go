package devicestate

import (
	"testing"

	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

func TestModifierSetClear(t *testing.T) {
	s := New(0, 0)
	if s.IsModifierActive(3) {
		t.Fatal("expected modifier 3 inactive initially")
	}
	if err := s.SetModifier(3); err != nil {
		t.Fatalf("SetModifier(3): %v", err)
	}
	if !s.IsModifierActive(3) {
		t.Fatal("expected modifier 3 active after set")
	}
	if err := s.ClearModifier(3); err != nil {
		t.Fatalf("ClearModifier(3): %v", err)
	}
	if s.IsModifierActive(3) {
		t.Fatal("expected modifier 3 inactive after clear")
	}
}

func TestInvalidModifierIDRejected(t *testing.T) {
	s := New(0, 0)
	if err := s.SetModifier(255); err == nil {
		t.Fatal("expected error setting id 255")
	}
	if s.IsModifierActive(255) {
		t.Fatal("id 255 must never report active")
	}
}

func TestLockToggle(t *testing.T) {
	s := New(0, 0)
	if err := s.ToggleLock(0); err != nil {
		t.Fatalf("ToggleLock: %v", err)
	}
	if !s.IsLockActive(0) {
		t.Fatal("expected lock 0 active after first toggle")
	}
	if err := s.ToggleLock(0); err != nil {
		t.Fatalf("ToggleLock: %v", err)
	}
	if s.IsLockActive(0) {
		t.Fatal("expected lock 0 inactive after second toggle")
	}
}

func TestRecordAndTakeRelease(t *testing.T) {
	s := New(0, 0)
	ok := s.RecordPress(keycode.A, []keycode.KeyCode{keycode.B})
	if !ok {
		t.Fatal("expected RecordPress to succeed")
	}
	outputs, ok := s.TakeRelease(keycode.A)
	if !ok || len(outputs) != 1 || outputs[0] != keycode.B {
		t.Fatalf("unexpected TakeRelease result: %v, %v", outputs, ok)
	}
	if _, ok := s.TakeRelease(keycode.A); ok {
		t.Fatal("expected second TakeRelease to report untracked")
	}
}

func TestPressedKeyCapacity(t *testing.T) {
	s := New(2, 5)
	if !s.RecordPress(keycode.A, nil) {
		t.Fatal("expected first press to be recorded")
	}
	if !s.RecordPress(keycode.B, nil) {
		t.Fatal("expected second press to be recorded")
	}
	if s.RecordPress(keycode.C, nil) {
		t.Fatal("expected third press to be rejected at capacity")
	}
	// Overwriting an already-tracked key must still succeed.
	if !s.RecordPress(keycode.A, []keycode.KeyCode{keycode.D}) {
		t.Fatal("expected overwrite of tracked key to succeed")
	}
}

func TestClearAllPressedReverseOrder(t *testing.T) {
	s := New(0, 0)
	s.RecordPress(keycode.A, []keycode.KeyCode{keycode.A})
	s.RecordPress(keycode.B, []keycode.KeyCode{keycode.B})
	s.RecordPress(keycode.C, []keycode.KeyCode{keycode.C})
	s.SetModifier(1)

	var seen []keycode.KeyCode
	s.ClearAllPressed(func(from keycode.KeyCode, outputs []keycode.KeyCode) {
		seen = append(seen, from)
	})

	want := []keycode.KeyCode{keycode.C, keycode.B, keycode.A}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
	if s.PressedKeyCount() != 0 {
		t.Fatal("expected pressed_keys empty after ClearAllPressed")
	}
	if s.IsModifierActive(1) {
		t.Fatal("expected modifiers cleared after ClearAllPressed")
	}
}

func TestClearAllPressedReversesPerKeyOutputs(t *testing.T) {
	// A multi-output press (e.g. a ModifiedOutput chord) must release in
	// the opposite order it was pressed, same as TakeRelease's callers
	// apply on the normal release path.
	s := New(0, 0)
	s.RecordPress(keycode.Digit2, []keycode.KeyCode{keycode.LShift, keycode.Digit7})

	var got []keycode.KeyCode
	s.ClearAllPressed(func(from keycode.KeyCode, outputs []keycode.KeyCode) {
		got = append(got, outputs...)
	})

	want := []keycode.KeyCode{keycode.Digit7, keycode.LShift}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestConditionAllActiveEmptyIsTrue(t *testing.T) {
	s := New(0, 0)
	if !Evaluate(profile.AllActive(), s, nil) {
		t.Fatal("empty AllActive must evaluate true")
	}
}

func TestConditionNotActiveEmptyIsTrue(t *testing.T) {
	s := New(0, 0)
	if !Evaluate(profile.NotActive(), s, nil) {
		t.Fatal("empty NotActive must evaluate true")
	}
}

func TestConditionDeMorganSingleItem(t *testing.T) {
	// P6 (NotActive(S) <-> not AllActive(S)) is specified for non-empty S;
	// for a single-item S, NOR and NAND coincide with plain negation.
	s := New(0, 0)
	item := []profile.ConditionItem{profile.ModifierActiveItem(1)}

	all := Evaluate(profile.AllActive(item...), s, nil)
	not := Evaluate(profile.NotActive(item...), s, nil)
	if not == all {
		t.Fatalf("NotActive(S) must be the negation of AllActive(S): all=%v not=%v", all, not)
	}

	s.SetModifier(1)
	all = Evaluate(profile.AllActive(item...), s, nil)
	not = Evaluate(profile.NotActive(item...), s, nil)
	if not == all {
		t.Fatalf("NotActive(S) must be the negation of AllActive(S): all=%v not=%v", all, not)
	}
}

func TestConditionDeviceMatches(t *testing.T) {
	s := New(0, 0)
	id := "Keyboard1"
	if !Evaluate(profile.DeviceMatches("Key*"), s, &id) {
		t.Fatal("expected device match")
	}
	if Evaluate(profile.DeviceMatches("Key*"), s, nil) {
		t.Fatal("expected no match with nil device id")
	}
}
