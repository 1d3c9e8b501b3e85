package rope

import (
	"errors"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if r.Runes() != 0 {
		t.Errorf("New rope should have 0 runes, got %d", r.Runes())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"very long string", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != ByteOffset(len(tt.input)) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if r.Runes() != uint64(utf8.RuneCountInString(tt.input)) {
				t.Errorf("Runes() = %d, want %d", r.Runes(), utf8.RuneCountInString(tt.input))
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   ByteOffset
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty string", "hello", 3, "", "hello"},
		{"insert unicode", "hello", 5, " 世界", "hello 世界"},
		{"insert at unicode boundary", "世界", 3, "!", "世!界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r, err := r.Insert(tt.offset, tt.text)
			if err != nil {
				t.Fatalf("Insert returned error: %v", err)
			}
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInsertOutOfRange(t *testing.T) {
	r := FromString("hello")
	_, err := r.Insert(6, "x")
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Insert past end: got %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    ByteOffset
		end      ByteOffset
		expected string
	}{
		{"delete from start", "hello world", 0, 6, "world"},
		{"delete from end", "hello world", 5, 11, "hello"},
		{"delete from middle", "hello world", 5, 6, "helloworld"},
		{"delete all", "hello", 0, 5, ""},
		{"delete nothing", "hello", 3, 3, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r, err := r.Delete(tt.start, tt.end)
			if err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDeleteErrors(t *testing.T) {
	r := FromString("hello")

	if _, err := r.Delete(0, 6); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Delete past end: got %v, want ErrOffsetOutOfRange", err)
	}
	if _, err := r.Delete(3, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Delete inverted range: got %v, want ErrRangeInvalid", err)
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    ByteOffset
		end      ByteOffset
		text     string
		expected string
	}{
		{"replace word", "hello world", 6, 11, "universe", "hello universe"},
		{"replace with shorter", "hello world", 0, 5, "hi", "hi world"},
		{"replace with longer", "hi world", 0, 2, "hello", "hello world"},
		{"replace all", "hello", 0, 5, "world", "world"},
		{"replace nothing with insert", "hello", 5, 5, " world", "hello world"},
		{"replace with empty is delete", "hello world", 5, 11, "", "hello"},
		{"degenerate no-op", "hello", 2, 2, "", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r, err := r.Replace(tt.start, tt.end, tt.text)
			if err != nil {
				t.Fatalf("Replace returned error: %v", err)
			}
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		offset        ByteOffset
		expectedLeft  string
		expectedRight string
	}{
		{"split at start", "hello", 0, "", "hello"},
		{"split at end", "hello", 5, "hello", ""},
		{"split in middle", "hello", 3, "hel", "lo"},
		{"split empty", "", 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			left, right := r.Split(tt.offset)
			if left.String() != tt.expectedLeft {
				t.Errorf("left = %q, want %q", left.String(), tt.expectedLeft)
			}
			if right.String() != tt.expectedRight {
				t.Errorf("right = %q, want %q", right.String(), tt.expectedRight)
			}
		})
	}
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name     string
		left     string
		right    string
		expected string
	}{
		{"concat two strings", "hello ", "world", "hello world"},
		{"concat with empty left", "", "hello", "hello"},
		{"concat with empty right", "hello", "", "hello"},
		{"concat two empty", "", "", ""},
		{"concat long strings", strings.Repeat("a", 1000), strings.Repeat("b", 1000), strings.Repeat("a", 1000) + strings.Repeat("b", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := FromString(tt.left)
			right := FromString(tt.right)
			result := left.Concat(right)
			if result.String() != tt.expected {
				t.Errorf("got %q, want %q", result.String(), tt.expected)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	r := FromString("hello world")

	tests := []struct {
		name     string
		start    ByteOffset
		end      ByteOffset
		expected string
	}{
		{"full slice", 0, 11, "hello world"},
		{"first word", 0, 5, "hello"},
		{"last word", 6, 11, "world"},
		{"middle", 3, 8, "lo wo"},
		{"empty slice", 5, 5, ""},
		{"beyond end", 6, 100, "world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Slice(tt.start, tt.end)
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestImmutability(t *testing.T) {
	original := FromString("hello")
	modified, err := original.Insert(5, " world")
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	if original.String() != "hello" {
		t.Errorf("Original was modified: %q", original.String())
	}
	if modified.String() != "hello world" {
		t.Errorf("Modified is wrong: %q", modified.String())
	}
}

func TestLargeRope(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10000)
	r := FromString(text)

	if r.String() != text {
		t.Error("Large rope content mismatch")
	}
	if r.Height() < 2 {
		t.Errorf("Large rope should be a real tree, height = %d", r.Height())
	}

	r, err := r.Insert(50000, "INSERTED")
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if !strings.Contains(r.String(), "INSERTED") {
		t.Error("Insert into large rope failed")
	}
	if r.Len() != ByteOffset(len(text)+len("INSERTED")) {
		t.Errorf("Len() = %d after insert, want %d", r.Len(), len(text)+len("INSERTED"))
	}
}

func TestChunkIterator(t *testing.T) {
	text := strings.Repeat("hello world ", 100)
	r := FromString(text)

	var result strings.Builder
	iter := r.Chunks()
	for iter.Next() {
		result.WriteString(iter.Chunk().String())
	}

	if result.String() != text {
		t.Error("Chunk iterator did not produce correct output")
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.WriteString("hello")
	b.WriteString(" ")
	b.WriteString("world")

	r := b.Build()
	if r.String() != "hello world" {
		t.Errorf("Builder produced %q, want %q", r.String(), "hello world")
	}

	// Builder should be reset after Build
	if b.Len() != 0 {
		t.Error("Builder not reset after Build")
	}
}

func TestBuilderLarge(t *testing.T) {
	b := NewBuilder()
	piece := strings.Repeat("0123456789", 10)
	for i := 0; i < 100; i++ {
		b.WriteString(piece)
	}

	r := b.Build()
	want := strings.Repeat(piece, 100)
	if r.String() != want {
		t.Error("Builder content mismatch on large input")
	}
	if r.Len() != ByteOffset(len(want)) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(want))
	}
}

func TestEquals(t *testing.T) {
	r1 := FromString("hello world")
	r2 := FromString("hello").Concat(FromString(" world"))
	r3 := FromString("hello there")

	if !r1.Equals(r2) {
		t.Error("Ropes with equal content but different structure should be equal")
	}
	if r1.Equals(r3) {
		t.Error("Different ropes should not be equal")
	}
}

func TestOffsetOfRune(t *testing.T) {
	// "héllo 世界" : h(1) é(2) l(1) l(1) o(1) sp(1) 世(3) 界(3)
	r := FromString("héllo 世界")

	tests := []struct {
		rune     uint64
		expected ByteOffset
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{5, 6},
		{6, 7},
		{7, 10},
		{8, 13},
	}

	for _, tt := range tests {
		got, err := r.OffsetOfRune(tt.rune)
		if err != nil {
			t.Fatalf("OffsetOfRune(%d) returned error: %v", tt.rune, err)
		}
		if got != tt.expected {
			t.Errorf("OffsetOfRune(%d) = %d, want %d", tt.rune, got, tt.expected)
		}
	}

	if _, err := r.OffsetOfRune(9); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("OffsetOfRune past end: got %v, want ErrOffsetOutOfRange", err)
	}
}

func TestOffsetOfRuneLarge(t *testing.T) {
	// Force a multi-level tree and cross-chunk seeking.
	piece := "abcdéfgh" // 8 runes, 9 bytes
	text := strings.Repeat(piece, 500)
	r := FromString(text)

	if r.Height() < 2 {
		t.Fatalf("expected multi-level tree, height = %d", r.Height())
	}

	for _, n := range []uint64{0, 7, 8, 123, 1999, 4000} {
		got, err := r.OffsetOfRune(n)
		if err != nil {
			t.Fatalf("OffsetOfRune(%d) returned error: %v", n, err)
		}
		want := ByteOffset(len(string([]rune(text)[:n])))
		if got != want {
			t.Errorf("OffsetOfRune(%d) = %d, want %d", n, got, want)
		}
	}
}

// Property-based tests

func TestInsertDeleteProperty(t *testing.T) {
	f := func(s string, offset int, insert string) bool {
		if len(s) == 0 {
			offset = 0
		} else {
			offset = offset % (len(s) + 1)
			if offset < 0 {
				offset = -offset
			}
		}

		r := FromString(s)
		r, err := r.Insert(ByteOffset(offset), insert)
		if err != nil {
			return false
		}
		r, err = r.Delete(ByteOffset(offset), ByteOffset(offset+len(insert)))
		if err != nil {
			return false
		}
		return r.String() == s
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestConcatSplitProperty(t *testing.T) {
	f := func(s string, offset int) bool {
		if len(s) == 0 {
			return true
		}
		offset = offset % (len(s) + 1)
		if offset < 0 {
			offset = -offset
		}

		r := FromString(s)
		left, right := r.Split(ByteOffset(offset))
		result := left.Concat(right)
		return result.String() == s
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestLenProperty(t *testing.T) {
	f := func(s string) bool {
		r := FromString(s)
		return int(r.Len()) == len(s)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestRunesProperty(t *testing.T) {
	f := func(s string) bool {
		r := FromString(s)
		return int(r.Runes()) == utf8.RuneCountInString(s)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// TextSummary tests

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bytes ByteOffset
		runes uint64
	}{
		{"empty", "", 0, 0},
		{"ascii", "hello", 5, 5},
		{"unicode", "世界", 6, 2},
		{"mixed", "hello 世界", 12, 8},
		{"emoji", "🌍", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := ComputeSummary(tt.input)
			if sum.Bytes != tt.bytes {
				t.Errorf("Bytes = %d, want %d", sum.Bytes, tt.bytes)
			}
			if sum.Runes != tt.runes {
				t.Errorf("Runes = %d, want %d", sum.Runes, tt.runes)
			}
		})
	}
}

func TestSummaryAdd(t *testing.T) {
	s1 := ComputeSummary("hello ")
	s2 := ComputeSummary("世界")

	combined := s1.Add(s2)

	if combined.Bytes != 12 {
		t.Errorf("Combined bytes = %d, want 12", combined.Bytes)
	}
	if combined.Runes != 8 {
		t.Errorf("Combined runes = %d, want 8", combined.Runes)
	}

	if combined.Add(TextSummary{}.Zero()) != combined {
		t.Error("Adding the zero summary should be identity")
	}
}
