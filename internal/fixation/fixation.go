// Package fixation computes bionic-reading anchors for the words of a page.
//
// A word is a maximal run of letters and numbers. Each word gets an emphasis
// range near its middle; the renderer draws the word in bold from its first
// code point up to the start of that range, giving the eye a fixation point.
package fixation

import (
	"sort"
	"unicode"
)

// WordSpan locates one word and its emphasis range within a slice.
// End is exclusive; EmphasisStart and EmphasisEnd are inclusive.
type WordSpan struct {
	Start         int
	End           int
	EmphasisStart int
	EmphasisEnd   int

	// Whole is set for words starting with a digit, which are emphasized
	// from first to last code point.
	Whole bool
}

// Len returns the number of code points in the word.
func (w WordSpan) Len() int {
	return w.End - w.Start
}

// Spans is the ordered list of words of one slice.
type Spans []WordSpan

// Segment splits runes into words and computes each word's emphasis range.
// Offsets are relative to runes.
func Segment(runes []rune) Spans {
	var spans Spans
	start := -1
	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, span(runes, start, i))
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, span(runes, start, len(runes)))
	}
	return spans
}

// Emphasis returns the inclusive emphasis range for a word occupying
// [start, end) whose first code point is first.
//
// Words that start with a decimal digit are emphasized whole. Otherwise a
// one code point word emphasizes itself, an odd word of five or more
// emphasizes the middle code point and the one after it, and every other
// word emphasizes the two code points either side of its middle.
func Emphasis(start, end int, first rune) (int, int) {
	n := end - start
	half := n / 2
	switch {
	case unicode.IsDigit(first):
		return start, end - 1
	case n == 1:
		return start, start
	case n >= 5 && n%2 == 1:
		return start + half, start + half + 1
	default:
		return start + half - 1, start + half
	}
}

func span(runes []rune, start, end int) WordSpan {
	es, ee := Emphasis(start, end, runes[start])
	return WordSpan{
		Start:         start,
		End:           end,
		EmphasisStart: es,
		EmphasisEnd:   ee,
		Whole:         unicode.IsDigit(runes[start]),
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Lead returns true if offset i falls in the bold lead-in of a word, the part
// from the word's first code point through its emphasis start. A Whole word
// is lead-in throughout.
func (s Spans) Lead(i int) bool {
	w, ok := s.find(i)
	return ok && (w.Whole || i <= w.EmphasisStart)
}

// Emphasized returns true if offset i falls inside a word's emphasis range.
func (s Spans) Emphasized(i int) bool {
	w, ok := s.find(i)
	return ok && i >= w.EmphasisStart && i <= w.EmphasisEnd
}

// Word returns the span containing offset i.
func (s Spans) Word(i int) (WordSpan, bool) {
	return s.find(i)
}

func (s Spans) find(i int) (WordSpan, bool) {
	n := sort.Search(len(s), func(k int) bool { return s[k].End > i })
	if n < len(s) && i >= s[n].Start {
		return s[n], true
	}
	return WordSpan{}, false
}
