package main

import "testing"

func TestPadCenter(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"Echoed", 6, "Echoed"},
		{"too long", 4, "too "},
		{"", 3, "   "},
	}
	for _, c := range cases {
		if got := padCenter(c.in, c.width); got != c.want {
			t.Errorf("padCenter(%q, %d): got %q, want %q", c.in, c.width, got, c.want)
		}
	}
}
