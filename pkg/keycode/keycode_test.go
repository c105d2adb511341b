package keycode

import "testing"

func TestStringRoundTrip(t *testing.T) {
	cases := []KeyCode{A, Z, Digit0, F24, LShift, RMeta, Space, Numpad0, Hangul}
	for _, want := range cases {
		name := want.String()
		got, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q): not found", name)
		}
		if got != want {
			t.Errorf("Lookup(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestUnknownString(t *testing.T) {
	k := KeyCode(65000)
	if k.Valid() {
		t.Fatalf("KeyCode(65000) unexpectedly valid")
	}
	if k.String() == "" {
		t.Fatalf("String() empty for unknown keycode")
	}
}

func TestKindString(t *testing.T) {
	if Press.String() != "Press" {
		t.Errorf("Press.String() = %q", Press.String())
	}
	if Release.String() != "Release" {
		t.Errorf("Release.String() = %q", Release.String())
	}
}

func TestNewPressRelease(t *testing.T) {
	p := NewPress(A, 10)
	if p.Kind != Press || p.Key != A || p.TimestampUS != 10 {
		t.Errorf("NewPress produced unexpected event: %+v", p)
	}
	r := NewRelease(A, 20)
	if r.Kind != Release || r.Key != A || r.TimestampUS != 20 {
		t.Errorf("NewRelease produced unexpected event: %+v", r)
	}
}
