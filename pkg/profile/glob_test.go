package profile

import "testing"

func TestMatchDevicePattern(t *testing.T) {
	cases := []struct {
		pattern, id string
		want        bool
	}{
		{"Keyboard1", "Keyboard1", true},
		{"Keyboard1", "Keyboard2", false},
		{"*", "anything", true},
		{"*", "*weird*", true},
		{"Key*", "Keyboard1", true},
		{"Key*", "Board1", false},
		{"*board", "Keyboard", true},
		{"*board", "Keyboard1", false},
		{"A*B", "AxyzB", true},
		{"A*B", "Axyz", false},
		{"A*mid*B", "A---mid---B", true},
		{"A*mid*B", "A---B", false},
		{"A*one*two*B", "A_one_two_B", true},
		{"A*one*two*B", "A_two_one_B", false},
	}
	for _, c := range cases {
		if got := MatchDevicePattern(c.pattern, c.id); got != c.want {
			t.Errorf("MatchDevicePattern(%q, %q) = %v, want %v", c.pattern, c.id, got, c.want)
		}
	}
}
