package search

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/skimread/internal/text"
)

func mustBuild(t *testing.T, s, pattern string) *Index {
	t.Helper()
	idx, err := BuildString(text.FromString(s), pattern)
	if err != nil {
		t.Fatalf("BuildString(%q, %q) failed: %v", s, pattern, err)
	}
	return idx
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    []Occurrence
	}{
		{"single letter", "the quick brown fox", "o", []Occurrence{{12, 12}, {17, 17}}},
		{"word", "one two one", "one", []Occurrence{{0, 2}, {8, 10}}},
		{"non overlapping", "aaaa", "aa", []Occurrence{{0, 1}, {2, 3}}},
		{"code points", "añoaño", "ño", []Occurrence{{1, 2}, {4, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := mustBuild(t, tt.text, tt.pattern)
			if diff := cmp.Diff(tt.want, idx.Occurrences()); diff != "" {
				t.Errorf("Occurrences() mismatch (-want +got):\n%s", diff)
			}
			if idx.Cursor() != 0 {
				t.Errorf("Cursor() = %d, expected 0", idx.Cursor())
			}
			if idx.Pattern() != tt.pattern {
				t.Errorf("Pattern() = %q, expected %q", idx.Pattern(), tt.pattern)
			}
		})
	}
}

func TestBuildNoMatch(t *testing.T) {
	src := text.FromString("the quick brown fox")

	if _, err := BuildString(src, "cat"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("BuildString(cat) = %v, expected ErrNoMatch", err)
	}
	if _, err := BuildString(src, ""); !errors.Is(err, ErrNoMatch) {
		t.Errorf("BuildString(\"\") = %v, expected ErrNoMatch", err)
	}
	if _, err := BuildString(text.New(), "a"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("BuildString on empty text = %v, expected ErrNoMatch", err)
	}
}

func TestQuickBrownFox(t *testing.T) {
	idx := mustBuild(t, "the quick brown fox", "o")

	if got := idx.NearestForward(0); got.Start != 12 {
		t.Errorf("NearestForward(0) = %v, expected start 12", got)
	}
	if idx.Cursor() != 0 {
		t.Errorf("Cursor() = %d, expected 0", idx.Cursor())
	}

	if idx.Previous() {
		t.Error("Previous() at first occurrence should not move")
	}
	if !idx.Next() {
		t.Error("Next() should move to second occurrence")
	}
	if idx.Current().Start != 17 {
		t.Errorf("Current() = %v, expected start 17", idx.Current())
	}
	if idx.Next() {
		t.Error("Next() at last occurrence should not move")
	}
	if idx.Cursor() != 1 {
		t.Errorf("Cursor() = %d, expected 1", idx.Cursor())
	}
	if !idx.Previous() {
		t.Error("Previous() should move back to first occurrence")
	}
	if idx.Current().Start != 12 {
		t.Errorf("Current() = %v, expected start 12", idx.Current())
	}
}

func TestNearestForward(t *testing.T) {
	// Occurrences of "ab" start at 2, 7 and 12.
	const s = "xxabxxxabxxxab"

	tests := []struct {
		from       int
		wantStart  int
		wantCursor int
	}{
		{0, 2, 0},
		{2, 2, 0},
		{3, 7, 1},
		{7, 7, 1},
		{8, 12, 2},
		{12, 12, 2},
		{13, 2, 0},
		{100, 2, 0},
	}

	for _, tt := range tests {
		idx := mustBuild(t, s, "ab")
		_ = idx.SetCursor(1)

		got := idx.NearestForward(tt.from)
		if got.Start != tt.wantStart {
			t.Errorf("NearestForward(%d) = %v, expected start %d", tt.from, got, tt.wantStart)
		}
		if idx.Cursor() != tt.wantCursor {
			t.Errorf("NearestForward(%d): Cursor() = %d, expected %d", tt.from, idx.Cursor(), tt.wantCursor)
		}
	}
}

func TestIsInside(t *testing.T) {
	idx := mustBuild(t, "xxabxxxabxxxab", "ab")

	inside := map[int]bool{2: true, 3: true, 7: true, 8: true, 12: true, 13: true}
	for i := -1; i < 16; i++ {
		if got := idx.IsInside(i); got != inside[i] {
			t.Errorf("IsInside(%d) = %v, expected %v", i, got, inside[i])
		}
	}
}

func TestIsInsideCurrent(t *testing.T) {
	idx := mustBuild(t, "xxabxxxabxxxab", "ab")

	if !idx.IsInsideCurrent(2) || !idx.IsInsideCurrent(3) {
		t.Error("IsInsideCurrent should cover the first occurrence")
	}
	if idx.IsInsideCurrent(7) {
		t.Error("IsInsideCurrent(7) should be false while cursor is 0")
	}

	idx.Next()
	if !idx.IsInsideCurrent(7) || !idx.IsInsideCurrent(8) {
		t.Error("IsInsideCurrent should follow the cursor")
	}
	if idx.IsInsideCurrent(2) {
		t.Error("IsInsideCurrent(2) should be false after Next")
	}
}

func TestSetCursor(t *testing.T) {
	idx := mustBuild(t, "abab", "ab")

	if err := idx.SetCursor(1); err != nil {
		t.Fatalf("SetCursor(1) failed: %v", err)
	}
	for _, n := range []int{2, -1} {
		if err := idx.SetCursor(n); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetCursor(%d) = %v, expected ErrIndexOutOfRange", n, err)
		}
	}
	if idx.Cursor() != 1 {
		t.Errorf("rejected SetCursor changed cursor to %d", idx.Cursor())
	}
}

func TestOccurrence(t *testing.T) {
	o := Occurrence{Start: 4, End: 6}
	if !o.Contains(4) || !o.Contains(6) || o.Contains(7) {
		t.Error("Contains() should be inclusive on both ends")
	}
	if o.String() != "[4:6]" {
		t.Errorf("String() = %q", o.String())
	}
}
