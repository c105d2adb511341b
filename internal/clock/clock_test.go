package clock

import "testing"

func TestVirtualClockAdvance(t *testing.T) {
	c := NewVirtualClock()
	if c.Now() != 0 {
		t.Fatalf("expected 0, got %d", c.Now())
	}
	c.Advance(100)
	if c.Now() != 100 {
		t.Fatalf("expected 100, got %d", c.Now())
	}
	c.Set(50)
	if c.Now() != 100 {
		t.Fatalf("Set should not move clock backward, got %d", c.Now())
	}
	c.Set(500)
	if c.Now() != 500 {
		t.Fatalf("expected 500, got %d", c.Now())
	}
}

func TestRealClockMonotonic(t *testing.T) {
	c := NewRealClock()
	first := c.Now()
	second := c.Now()
	if second < first {
		t.Fatalf("expected non-decreasing clock, got %d then %d", first, second)
	}
}
