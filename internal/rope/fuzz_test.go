package rope

import (
	"testing"
	"unicode/utf8"
)

// FuzzFromString tests rope creation from arbitrary strings.
func FuzzFromString(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")
	f.Add("\x00\x01\x02")

	f.Fuzz(func(t *testing.T, s string) {
		// Rope requires valid UTF-8
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s)

		if int(r.Len()) != len(s) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), len(s))
		}
		if int(r.Runes()) != utf8.RuneCountInString(s) {
			t.Errorf("rune count mismatch: got %d, want %d", r.Runes(), utf8.RuneCountInString(s))
		}
		if r.String() != s {
			t.Errorf("content mismatch")
		}
	})
}

// FuzzReplace drives Replace against a plain-string oracle.
func FuzzReplace(f *testing.F) {
	f.Add("hello world", 0, 5, "hi")
	f.Add("hello world", 6, 11, "universe")
	f.Add("abcdef", 2, 4, "XYZ")
	f.Add("日本語", 3, 6, "x")
	f.Add("", 0, 0, "seed")

	f.Fuzz(func(t *testing.T, initial string, start, end int, replacement string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(replacement) {
			return
		}

		// Clamp to a valid range on rune boundaries
		if start < 0 {
			start = 0
		}
		if start > len(initial) {
			start = len(initial)
		}
		if end < start {
			end = start
		}
		if end > len(initial) {
			end = len(initial)
		}
		for start < len(initial) && !isUTF8Start(initial[start]) {
			start++
		}
		for end < len(initial) && !isUTF8Start(initial[end]) {
			end++
		}
		if end < start {
			end = start
		}

		r := FromString(initial)
		r, err := r.Replace(ByteOffset(start), ByteOffset(end), replacement)
		if err != nil {
			t.Fatalf("Replace(%d, %d) returned error: %v", start, end, err)
		}

		expected := initial[:start] + replacement + initial[end:]
		if r.String() != expected {
			t.Errorf("replace mismatch: range [%d, %d)", start, end)
		}
		if int(r.Len()) != len(expected) {
			t.Errorf("length mismatch after replace: got %d, want %d", r.Len(), len(expected))
		}
	})
}
