package devicestate

import (
	"testing"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

func TestTapHoldFiresOnQuickRelease(t *testing.T) {
	p := newTapHoldProcessor()
	p.Begin(keycode.Space, keycode.Space, 0, 200_000, 0)

	if transitions := p.Tick(50_000); len(transitions) != 0 {
		t.Fatalf("expected no transitions before threshold, got %v", transitions)
	}

	out, ok := p.ResolveRelease(keycode.Space, 50_000)
	if !ok || out.Outcome != OutcomeTapFired {
		t.Fatalf("expected tap fired, got %+v ok=%v", out, ok)
	}
	if out.Tap != keycode.Space {
		t.Fatalf("expected tap key Space, got %v", out.Tap)
	}
	if p.IsTracked(keycode.Space) {
		t.Fatal("expected key untracked after release resolution")
	}
}

func TestTapHoldActivatesOnThreshold(t *testing.T) {
	p := newTapHoldProcessor()
	p.Begin(keycode.Space, keycode.Space, 0, 200_000, 0)

	transitions := p.Tick(250_000)
	if len(transitions) != 1 || transitions[0].Outcome != OutcomeHoldActivated {
		t.Fatalf("expected hold activation at 250ms, got %v", transitions)
	}
	if !p.IsHoldActive(keycode.Space) {
		t.Fatal("expected Space to be HoldActive")
	}

	out, ok := p.ResolveRelease(keycode.Space, 300_000)
	if !ok || out.Outcome != OutcomeHoldReleased {
		t.Fatalf("expected hold released, got %+v ok=%v", out, ok)
	}
}

func TestTapHoldRollingPressTreatedAsHold(t *testing.T) {
	p := newTapHoldProcessor()
	p.Begin(keycode.Space, keycode.Space, 0, 200_000, 0)

	modID, ok := p.RollingPress(keycode.Space)
	if !ok {
		t.Fatal("expected rolling press on Pending key to succeed")
	}
	if modID != 0 {
		t.Fatalf("expected hold modifier 0, got %d", modID)
	}
	if !p.IsHoldActive(keycode.Space) {
		t.Fatal("expected Space forced into HoldActive by rolling press")
	}
}

func TestTapHoldZeroThresholdAlwaysHolds(t *testing.T) {
	p := newTapHoldProcessor()
	p.Begin(keycode.Space, keycode.Space, 0, 0, 0)
	transitions := p.Tick(1) // any later event resolves immediately
	if len(transitions) != 1 || transitions[0].Outcome != OutcomeHoldActivated {
		t.Fatalf("expected immediate hold with threshold_ms=0, got %v", transitions)
	}
}
