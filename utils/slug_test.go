package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"How to train your dragon", "how-to-train-your-dragon"},
		{"How to train your dragon", "how-to-train-your-dragon"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Ünïcödé Tïtle", "unicode-title"},
		{"100% Go!", "100-go"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
