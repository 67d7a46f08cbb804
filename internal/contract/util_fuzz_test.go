package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateText fuzzes TruncateText with random text and widths.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text  string
		width int
	}{
		{"wage <= 1000", 8},
		{"wage > 1000 && wage <= 2500", 12},
		{"", 0},
		{"héllo wörld", 5},
		{"abc", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		out := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(out) > width {
			t.Errorf("TruncateText(%q, %d) = %q exceeds width", text, width, out)
		}
	})
}
