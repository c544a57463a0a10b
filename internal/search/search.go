// Package search indexes the occurrences of a literal pattern in a
// code-point buffer and navigates between them.
//
// Occurrences come from the buffer's non-overlapping left-to-right scan, so
// searching "aa" in "aaa" yields a single occurrence. An Index is built
// fresh for every submitted pattern and discarded when the search ends.
package search

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by search operations.
var (
	ErrNoMatch         = errors.New("pattern not found")
	ErrIndexOutOfRange = errors.New("occurrence number out of range")
)

// Finder locates the start offsets of every non-overlapping match of a
// pattern, in ascending order.
type Finder interface {
	FindAll(pattern []rune) []int
}

// Occurrence is the inclusive code-point span of one match.
type Occurrence struct {
	Start int
	End   int
}

// Contains returns true if offset i lies within the occurrence.
func (o Occurrence) Contains(i int) bool {
	return i >= o.Start && i <= o.End
}

// String returns a human-readable representation of the occurrence.
func (o Occurrence) String() string {
	return fmt.Sprintf("[%d:%d]", o.Start, o.End)
}

// Index holds the occurrences of one pattern and a cursor selecting the
// current occurrence.
type Index struct {
	pattern     []rune
	occurrences []Occurrence
	cursor      int
}

// Build finds every occurrence of pattern in f. It returns ErrNoMatch if the
// pattern is empty or does not occur.
func Build(f Finder, pattern []rune) (*Index, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("empty pattern: %w", ErrNoMatch)
	}

	starts := f.FindAll(pattern)
	if len(starts) == 0 {
		return nil, fmt.Errorf("%q: %w", string(pattern), ErrNoMatch)
	}

	idx := &Index{
		pattern:     append([]rune(nil), pattern...),
		occurrences: make([]Occurrence, len(starts)),
	}
	for i, start := range starts {
		idx.occurrences[i] = Occurrence{Start: start, End: start + len(pattern) - 1}
	}
	return idx, nil
}

// BuildString is Build with a string pattern.
func BuildString(f Finder, pattern string) (*Index, error) {
	return Build(f, []rune(pattern))
}

// Pattern returns the pattern the index was built for.
func (x *Index) Pattern() string {
	return string(x.pattern)
}

// Len returns the number of occurrences.
func (x *Index) Len() int {
	return len(x.occurrences)
}

// Occurrences returns a copy of the occurrences in ascending order.
func (x *Index) Occurrences() []Occurrence {
	out := make([]Occurrence, len(x.occurrences))
	copy(out, x.occurrences)
	return out
}

// Cursor returns the number of the current occurrence.
func (x *Index) Cursor() int {
	return x.cursor
}

// Current returns the current occurrence.
func (x *Index) Current() Occurrence {
	return x.occurrences[x.cursor]
}

// SetCursor selects occurrence n. Out of range numbers are rejected with
// ErrIndexOutOfRange and leave the cursor unchanged.
func (x *Index) SetCursor(n int) error {
	if n < 0 || n >= len(x.occurrences) {
		return fmt.Errorf("occurrence %d of %d: %w", n, len(x.occurrences), ErrIndexOutOfRange)
	}
	x.cursor = n
	return nil
}

// Next selects the following occurrence and reports whether it moved.
func (x *Index) Next() bool {
	if x.cursor+1 >= len(x.occurrences) {
		return false
	}
	x.cursor++
	return true
}

// Previous selects the preceding occurrence and reports whether it moved.
func (x *Index) Previous() bool {
	if x.cursor == 0 {
		return false
	}
	x.cursor--
	return true
}

// NearestForward selects the first occurrence starting at or after from and
// returns it. When every occurrence starts before from, it wraps to the
// first occurrence.
func (x *Index) NearestForward(from int) Occurrence {
	best := -1
	for i := len(x.occurrences) - 1; i >= 0; i-- {
		delta := x.occurrences[i].Start - from
		if delta < 0 {
			break
		}
		best = i
	}

	if best < 0 {
		best = 0
	}
	x.cursor = best
	return x.occurrences[best]
}

// IsInside returns true if offset i lies within any occurrence.
func (x *Index) IsInside(i int) bool {
	// Occurrences are sorted and disjoint, so the first one ending at or
	// after i is the only candidate.
	n := sort.Search(len(x.occurrences), func(k int) bool {
		return x.occurrences[k].End >= i
	})
	return n < len(x.occurrences) && x.occurrences[n].Contains(i)
}

// IsInsideCurrent returns true if offset i lies within the current
// occurrence.
func (x *Index) IsInsideCurrent(i int) bool {
	return x.occurrences[x.cursor].Contains(i)
}
