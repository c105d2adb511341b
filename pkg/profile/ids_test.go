package profile

import "testing"

func TestValidID(t *testing.T) {
	cases := []struct {
		id   int
		want bool
	}{
		{0, true},
		{254, true},
		{255, false},
		{256, false},
		{65535, false},
		{-1, false},
	}
	for _, c := range cases {
		if got := ValidID(c.id); got != c.want {
			t.Errorf("ValidID(%d) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestErrInvalidStateID(t *testing.T) {
	err := &ErrInvalidStateID{ID: 255}
	if err.Error() == "" {
		t.Fatal("expected non-empty error message")
	}
}
