package engine

import (
	"testing"

	"github.com/keyrxd/keyrx/internal/devicestate"
	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

func TestPassThroughUnmappedKey(t *testing.T) {
	cfg := wildcardDevice(profile.BaseMapping(profile.Simple(keycode.A, keycode.B)))
	p := NewProcessor(cfg)
	s := devicestate.New(0, 0)

	out := p.Process(s, keycode.NewPress(keycode.Z, 0), nil)
	if len(out) != 1 || out[0] != keycode.NewPress(keycode.Z, 0) {
		t.Fatalf("expected pass-through, got %v", out)
	}
	if s.PressedKeyCount() != 0 {
		t.Fatal("pass-through must not be recorded in pressed_keys")
	}
}

func TestReleaseOfUntrackedKeyPassesThrough(t *testing.T) {
	cfg := wildcardDevice()
	p := NewProcessor(cfg)
	s := devicestate.New(0, 0)

	out := p.Process(s, keycode.NewRelease(keycode.A, 0), nil)
	if len(out) != 1 || out[0] != keycode.NewRelease(keycode.A, 0) {
		t.Fatalf("expected pass-through release, got %v", out)
	}
}

func TestDoublePressOverwritesRecordedOutputs(t *testing.T) {
	cfg := wildcardDevice(profile.BaseMapping(profile.Simple(keycode.A, keycode.B)))
	p := NewProcessor(cfg)
	s := devicestate.New(0, 0)

	p.Process(s, keycode.NewPress(keycode.A, 0), nil)
	out := p.Process(s, keycode.NewPress(keycode.A, 1), nil)
	if len(out) != 1 || out[0] != keycode.NewPress(keycode.B, 1) {
		t.Fatalf("expected second press to re-emit mapped output, got %v", out)
	}
	if s.PressedKeyCount() != 1 {
		t.Fatalf("expected exactly one tracked entry after double press, got %d", s.PressedKeyCount())
	}

	release := p.Process(s, keycode.NewRelease(keycode.A, 2), nil)
	if len(release) != 1 || release[0] != keycode.NewRelease(keycode.B, 2) {
		t.Fatalf("expected a single release, got %v (no synthetic extra release)", release)
	}
}

// P1: every press has a matching release.
func TestPropertyEveryPressHasMatchingRelease(t *testing.T) {
	cfg := wildcardDevice(
		profile.BaseMapping(profile.Simple(keycode.A, keycode.B)),
		profile.BaseMapping(profile.ModifiedOutput(keycode.Digit2, keycode.Digit7, true, true, false, false)),
	)
	p := NewProcessor(cfg)
	s := devicestate.New(0, 0)

	var ts uint64
	tick := func() uint64 { ts++; return ts }

	presses := 0
	releases := 0
	for _, key := range []keycode.KeyCode{keycode.A, keycode.Digit2} {
		for _, ev := range p.Process(s, keycode.NewPress(key, tick()), nil) {
			if ev.Kind == keycode.Press {
				presses++
			}
		}
	}
	for _, key := range []keycode.KeyCode{keycode.A, keycode.Digit2} {
		for _, ev := range p.Process(s, keycode.NewRelease(key, tick()), nil) {
			if ev.Kind == keycode.Release {
				releases++
			}
		}
	}
	if presses != releases {
		t.Fatalf("unbalanced press/release: %d presses, %d releases", presses, releases)
	}
	if s.PressedKeyCount() != 0 {
		t.Fatalf("expected all pressed_keys entries cleared, got %d remaining", s.PressedKeyCount())
	}
}

// P5: invalid ids rejected without modifying state. State mutators take
// a uint8 (the bitmap's native domain, matching the two-hex-digit MD_/LK_
// wire prefixes), so 255 is the only in-band invalid value; ids above
// 255 are rejected earlier, at DSL-compile time (see pkg/compiler),
// which is exercised by profile.ValidID directly here.
func TestPropertyInvalidIDsRejected(t *testing.T) {
	s := devicestate.New(0, 0)
	if err := s.SetModifier(255); err == nil {
		t.Fatal("expected error for id 255")
	}
	if s.IsModifierActive(255) {
		t.Fatal("id 255 must never read active")
	}
	for _, id := range []int{255, 256, 1000, 65535} {
		if profile.ValidID(id) {
			t.Fatalf("expected ValidID(%d) == false", id)
		}
	}
}
