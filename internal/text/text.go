package text

import (
	"errors"
	"fmt"
	"unicode"
)

// Errors returned by text operations.
var (
	ErrInvalidIndex = errors.New("invalid index")
)

// Text is an ordered, mutable sequence of Unicode code points.
// The zero value is an empty text ready to use.
type Text struct {
	runes []rune
}

// New creates an empty text.
func New() *Text {
	return &Text{}
}

// FromString creates a text holding the code points of s.
func FromString(s string) *Text {
	return &Text{runes: []rune(s)}
}

// FromRunes creates a text holding a copy of r.
func FromRunes(r []rune) *Text {
	runes := make([]rune, len(r))
	copy(runes, r)
	return &Text{runes: runes}
}

// Len returns the number of code points.
func (t *Text) Len() int {
	return len(t.runes)
}

// IsEmpty returns true if the text holds no code points.
func (t *Text) IsEmpty() bool {
	return len(t.runes) == 0
}

// At returns the code point at index i.
// It panics if i is out of range, like a slice index.
func (t *Text) At(i int) rune {
	return t.runes[i]
}

// Runes returns a copy of the code points.
func (t *Text) Runes() []rune {
	out := make([]rune, len(t.runes))
	copy(out, t.runes)
	return out
}

// Slice returns a copy of the code points in the inclusive range [start, end].
// Out of range bounds are clamped; an empty range yields nil.
func (t *Text) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end >= len(t.runes) {
		end = len(t.runes) - 1
	}
	if start > end {
		return nil
	}
	out := make([]rune, end-start+1)
	copy(out, t.runes[start:end+1])
	return out
}

// String returns the text encoded as UTF-8.
func (t *Text) String() string {
	return string(t.runes)
}

// Equal reports whether the text holds exactly the code points of other.
func (t *Text) Equal(other []rune) bool {
	if len(t.runes) != len(other) {
		return false
	}
	for i, r := range other {
		if t.runes[i] != r {
			return false
		}
	}
	return true
}

// EqualString reports whether the text holds exactly the code points of s.
func (t *Text) EqualString(s string) bool {
	return t.Equal([]rune(s))
}

// Find returns the index of the first match of pattern whose start lies in the
// inclusive range [start, end], or -1 if there is none. A negative end means
// the last index of the text. The match must fit inside the text, so a
// pattern longer than what remains after start never matches. An empty
// pattern or an invalid range also yields -1.
func (t *Text) Find(pattern []rune, start, end int) int {
	n := len(t.runes)
	if n == 0 || len(pattern) == 0 {
		return -1
	}
	if end < 0 {
		end = n - 1
	}
	if start < 0 || start >= n || end >= n || end < start {
		return -1
	}
	if start+len(pattern) > n {
		return -1
	}
	if last := n - len(pattern); end > last {
		end = last
	}
	for i := start; i <= end; i++ {
		if hasPrefixAt(t.runes, pattern, i) {
			return i
		}
	}
	return -1
}

// FindString is Find with a string pattern.
func (t *Text) FindString(pattern string, start, end int) int {
	return t.Find([]rune(pattern), start, end)
}

// FindAll returns the start index of every non-overlapping match of pattern,
// in ascending order. After each hit the scan resumes one past the end of the
// match, so "aaa" holds a single match of "aa".
func (t *Text) FindAll(pattern []rune) []int {
	var indexes []int
	next := 0
	for next < len(t.runes) {
		i := t.Find(pattern, next, -1)
		if i < 0 {
			break
		}
		indexes = append(indexes, i)
		next = i + len(pattern)
	}
	return indexes
}

// FindAllString is FindAll with a string pattern.
func (t *Text) FindAllString(pattern string) []int {
	return t.FindAll([]rune(pattern))
}

// Contains reports whether pattern occurs anywhere in the text.
func (t *Text) Contains(pattern []rune) bool {
	return t.Find(pattern, 0, -1) >= 0
}

// ContainsString is Contains with a string pattern.
func (t *Text) ContainsString(pattern string) bool {
	return t.Contains([]rune(pattern))
}

// HasPrefix reports whether the text begins with prefix.
func (t *Text) HasPrefix(prefix []rune) bool {
	return hasPrefixAt(t.runes, prefix, 0)
}

// HasPrefixString is HasPrefix with a string prefix.
func (t *Text) HasPrefixString(prefix string) bool {
	return t.HasPrefix([]rune(prefix))
}

// HasSuffix reports whether the text ends with suffix.
func (t *Text) HasSuffix(suffix []rune) bool {
	return hasPrefixAt(t.runes, suffix, len(t.runes)-len(suffix))
}

// HasSuffixString is HasSuffix with a string suffix.
func (t *Text) HasSuffixString(suffix string) bool {
	return t.HasSuffix([]rune(suffix))
}

// Replace replaces the first match of pattern starting in [start, end] with
// replacement. It returns the index of the replaced match, or -1 if nothing
// matched. A negative end means the last index of the text.
func (t *Text) Replace(pattern, replacement []rune, start, end int) int {
	i := t.Find(pattern, start, end)
	if i < 0 {
		return -1
	}
	out := make([]rune, 0, len(t.runes)-len(pattern)+len(replacement))
	out = append(out, t.runes[:i]...)
	out = append(out, replacement...)
	out = append(out, t.runes[i+len(pattern):]...)
	t.runes = out
	return i
}

// ReplaceString is Replace with string arguments.
func (t *Text) ReplaceString(pattern, replacement string, start, end int) int {
	return t.Replace([]rune(pattern), []rune(replacement), start, end)
}

// ReplaceAll replaces every non-overlapping match of pattern, as located by
// FindAll, with replacement. The buffer is rebuilt in one pass. It returns
// the number of replacements; zero means the text is unchanged.
func (t *Text) ReplaceAll(pattern, replacement []rune) int {
	matches := t.FindAll(pattern)
	if len(matches) == 0 {
		return 0
	}

	size := len(t.runes) - len(matches)*len(pattern) + len(matches)*len(replacement)
	out := make([]rune, 0, size)
	last := 0
	for _, i := range matches {
		out = append(out, t.runes[last:i]...)
		out = append(out, replacement...)
		last = i + len(pattern)
	}
	out = append(out, t.runes[last:]...)
	t.runes = out
	return len(matches)
}

// ReplaceAllString is ReplaceAll with string arguments.
func (t *Text) ReplaceAllString(pattern, replacement string) int {
	return t.ReplaceAll([]rune(pattern), []rune(replacement))
}

// ReplaceMap applies ReplaceAllString for every pattern in m and returns the
// number of replacements made per pattern, zero included. Go map iteration
// order is random, so patterns whose matches interact give unspecified
// results.
func (t *Text) ReplaceMap(m map[string]string) map[string]int {
	counts := make(map[string]int, len(m))
	for pattern, replacement := range m {
		counts[pattern] = t.ReplaceAllString(pattern, replacement)
	}
	return counts
}

// Split returns the non-empty spans between matches of delim, located with
// the same non-overlapping scan as FindAll. A text without any match of
// delim yields no spans. The returned slices are capped views into the text
// and must not be retained across edits.
func (t *Text) Split(delim []rune) [][]rune {
	matches := t.FindAll(delim)
	if len(matches) == 0 {
		return nil
	}

	var parts [][]rune
	last := 0
	for _, i := range matches {
		if i > last {
			parts = append(parts, t.runes[last:i:i])
		}
		last = i + len(delim)
	}
	if last < len(t.runes) {
		parts = append(parts, t.runes[last:len(t.runes):len(t.runes)])
	}
	return parts
}

// SplitString is Split with a string delimiter, returning strings.
func (t *Text) SplitString(delim string) []string {
	parts := t.Split([]rune(delim))
	if parts == nil {
		return nil
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// TrimStart removes leading white space.
func (t *Text) TrimStart() {
	i := 0
	for i < len(t.runes) && unicode.IsSpace(t.runes[i]) {
		i++
	}
	if i == 0 {
		return
	}
	n := copy(t.runes, t.runes[i:])
	t.runes = t.runes[:n]
}

// TrimEnd removes trailing white space.
func (t *Text) TrimEnd() {
	i := len(t.runes)
	for i > 0 && unicode.IsSpace(t.runes[i-1]) {
		i--
	}
	t.runes = t.runes[:i]
}

// Trim removes leading and trailing white space, rebuilding the buffer.
func (t *Text) Trim() {
	start := 0
	for start < len(t.runes) && unicode.IsSpace(t.runes[start]) {
		start++
	}
	end := len(t.runes)
	for end > start && unicode.IsSpace(t.runes[end-1]) {
		end--
	}
	out := make([]rune, end-start)
	copy(out, t.runes[start:end])
	t.runes = out
}

// Insert inserts r before the code point at index at. Inserting at or past
// the end of the text is rejected with ErrInvalidIndex; use Append to add
// to the end.
func (t *Text) Insert(r []rune, at int) error {
	if at < 0 || at >= len(t.runes) {
		return fmt.Errorf("insert at %d in text of length %d: %w", at, len(t.runes), ErrInvalidIndex)
	}
	out := make([]rune, 0, len(t.runes)+len(r))
	out = append(out, t.runes[:at]...)
	out = append(out, r...)
	out = append(out, t.runes[at:]...)
	t.runes = out
	return nil
}

// InsertString is Insert with a string argument.
func (t *Text) InsertString(s string, at int) error {
	return t.Insert([]rune(s), at)
}

// Append adds r to the end of the text.
func (t *Text) Append(r []rune) {
	t.runes = append(t.runes, r...)
}

// AppendString adds the code points of s to the end of the text.
func (t *Text) AppendString(s string) {
	t.Append([]rune(s))
}

// Prepend adds r to the start of the text.
func (t *Text) Prepend(r []rune) {
	out := make([]rune, 0, len(r)+len(t.runes))
	out = append(out, r...)
	out = append(out, t.runes...)
	t.runes = out
}

// PrependString adds the code points of s to the start of the text.
func (t *Text) PrependString(s string) {
	t.Prepend([]rune(s))
}

// Join concatenates parts into a new text, allocating the final size once.
func Join(parts ...[]rune) *Text {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	runes := make([]rune, 0, size)
	for _, p := range parts {
		runes = append(runes, p...)
	}
	return &Text{runes: runes}
}

// JoinStrings concatenates the code points of parts into a new text.
func JoinStrings(parts ...string) *Text {
	converted := make([][]rune, len(parts))
	for i, s := range parts {
		converted[i] = []rune(s)
	}
	return Join(converted...)
}

// hasPrefixAt reports whether s[at:] begins with prefix.
func hasPrefixAt(s, prefix []rune, at int) bool {
	if at < 0 || at+len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[at+i] != r {
			return false
		}
	}
	return true
}
