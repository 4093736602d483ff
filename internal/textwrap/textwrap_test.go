package textwrap

import "testing"

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "water food", width: 20, want: "water food"},
		{name: "wraps at word boundary", in: "I need help now", width: 11, want: "I need help\nnow"},
		{name: "breaks long word", in: "abcdefgh", width: 3, want: "abc\ndef\ngh"},
		{name: "zero width passthrough", in: "water food", width: 0, want: "water food"},
		{name: "collapses runs of spaces", in: "water   food", width: 20, want: "water food"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.in, tc.width); got != tc.want {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}
