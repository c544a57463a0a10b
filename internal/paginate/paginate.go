// Package paginate tiles a code-point buffer into screen-sized pages.
//
// A page is an inclusive range of global code-point offsets. The pages of a
// Table are ordered, contiguous and cover the whole buffer exactly once, so
// every offset belongs to exactly one page. Tables are rebuilt wholesale when
// the viewport changes size.
package paginate

import (
	"errors"
	"fmt"
)

// Errors returned by pagination.
var (
	ErrInvalidViewport = errors.New("invalid viewport")
	ErrIndexOutOfRange = errors.New("page number out of range")
)

// Source is the read-only view of a code-point buffer that pagination needs.
type Source interface {
	// Len returns the number of code points.
	Len() int
	// At returns the code point at index i.
	At(i int) rune
}

// Viewport is the visible size of the renderer in cells.
type Viewport struct {
	Columns int
	Rows    int
}

// Validate returns ErrInvalidViewport if either dimension is below one.
func (v Viewport) Validate() error {
	if v.Columns < 1 || v.Rows < 1 {
		return fmt.Errorf("%dx%d: %w", v.Columns, v.Rows, ErrInvalidViewport)
	}
	return nil
}

// String returns the viewport as COLUMNSxROWS.
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Columns, v.Rows)
}

// Page is an inclusive range of global code-point offsets.
type Page struct {
	Start int
	End   int
}

// Contains returns true if offset i lies within the page.
func (p Page) Contains(i int) bool {
	return i >= p.Start && i <= p.End
}

// Len returns the number of code points on the page.
func (p Page) Len() int {
	return p.End - p.Start + 1
}

// String returns a human-readable representation of the page.
func (p Page) String() string {
	return fmt.Sprintf("[%d:%d]", p.Start, p.End)
}

// Layout walks code points across a viewport, tracking the column and row
// the next code point will occupy. Pagination and painting share it so that
// a page always fills exactly the rows it was cut for.
type Layout struct {
	viewport Viewport
	Column   int
	Row      int
}

// NewLayout creates a layout positioned at the top-left cell.
func NewLayout(v Viewport) *Layout {
	return &Layout{viewport: v}
}

// Advance consumes r and reports whether it ends a page.
//
// A code point other than newline moves one column to the right until the
// last column is reached; the code point that occupies the last column wraps
// to the next row. A newline always moves to the next row. Moving past the
// last row ends the page and returns to the first row.
func (l *Layout) Advance(r rune) bool {
	if r != '\n' && l.Column < l.viewport.Columns-1 {
		l.Column++
		return false
	}

	l.Column = 0
	if l.Row >= l.viewport.Rows-1 {
		l.Row = 0
		return true
	}
	l.Row++
	return false
}

// Table is the ordered list of pages for one buffer and viewport, plus the
// number of the page currently shown.
type Table struct {
	viewport Viewport
	pages    []Page
	current  int
}

// Paginate splits src into pages that fit v.
// An empty source yields an empty table.
func Paginate(src Source, v Viewport) (*Table, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	t := &Table{viewport: v}
	n := src.Len()
	if n == 0 {
		return t, nil
	}

	layout := NewLayout(v)
	start := 0
	for i := 0; i < n; i++ {
		// A boundary on the final code point closes the last page below.
		if layout.Advance(src.At(i)) && i < n-1 {
			t.pages = append(t.pages, Page{Start: start, End: i})
			start = i + 1
		}
	}
	t.pages = append(t.pages, Page{Start: start, End: n - 1})

	return t, nil
}

// Viewport returns the viewport the table was built for.
func (t *Table) Viewport() Viewport {
	return t.viewport
}

// Len returns the number of pages.
func (t *Table) Len() int {
	return len(t.pages)
}

// IsEmpty returns true if the table has no pages.
func (t *Table) IsEmpty() bool {
	return len(t.pages) == 0
}

// Pages returns a copy of the pages.
func (t *Table) Pages() []Page {
	out := make([]Page, len(t.pages))
	copy(out, t.pages)
	return out
}

// Page returns page number n.
func (t *Table) Page(n int) (Page, bool) {
	if n < 0 || n >= len(t.pages) {
		return Page{}, false
	}
	return t.pages[n], true
}

// Current returns the current page number and page.
// The boolean is false for an empty table.
func (t *Table) Current() (int, Page, bool) {
	if len(t.pages) == 0 {
		return 0, Page{}, false
	}
	return t.current, t.pages[t.current], true
}

// SetCurrent makes page n current. Out of range numbers are rejected with
// ErrIndexOutOfRange and leave the current page unchanged.
func (t *Table) SetCurrent(n int) error {
	if n < 0 || n >= len(t.pages) {
		return fmt.Errorf("page %d of %d: %w", n, len(t.pages), ErrIndexOutOfRange)
	}
	t.current = n
	return nil
}

// Next moves to the following page and reports whether it moved.
func (t *Table) Next() bool {
	if t.current+1 >= len(t.pages) {
		return false
	}
	t.current++
	return true
}

// Previous moves to the preceding page and reports whether it moved.
func (t *Table) Previous() bool {
	if t.current == 0 {
		return false
	}
	t.current--
	return true
}

// First moves to the first page and reports whether it moved.
func (t *Table) First() bool {
	if t.current == 0 {
		return false
	}
	t.current = 0
	return true
}

// Last moves to the last page and reports whether it moved.
func (t *Table) Last() bool {
	last := len(t.pages) - 1
	if last < 0 || t.current == last {
		return false
	}
	t.current = last
	return true
}

// FindPage returns the number of the first page containing offset i, or 0
// if no page contains it.
func (t *Table) FindPage(i int) int {
	for n, p := range t.pages {
		if p.Contains(i) {
			return n
		}
	}
	return 0
}

// Runes returns a copy of the code points of p from src.
func Runes(src Source, p Page) []rune {
	if p.End < p.Start {
		return nil
	}
	out := make([]rune, 0, p.Len())
	for i := p.Start; i <= p.End && i < src.Len(); i++ {
		out = append(out, src.At(i))
	}
	return out
}
