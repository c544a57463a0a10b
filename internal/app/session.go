package app

import (
	"errors"
	"fmt"

	"github.com/dshills/skimread/internal/document"
	"github.com/dshills/skimread/internal/fixation"
	"github.com/dshills/skimread/internal/paginate"
	"github.com/dshills/skimread/internal/renderer"
	"github.com/dshills/skimread/internal/search"
	"github.com/dshills/skimread/internal/text"
)

// Mode is the reading state of a session.
type Mode int

const (
	// ModeBrowse pages through the text.
	ModeBrowse Mode = iota
	// ModeSearchInput collects a search pattern.
	ModeSearchInput
	// ModeSearchBrowse moves between the occurrences of a pattern.
	ModeSearchBrowse
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeSearchInput:
		return "search-input"
	case ModeSearchBrowse:
		return "search-browse"
	default:
		return "unknown"
	}
}

// Session holds the reading state of one text: its page table, the active
// search and the pattern being typed. Failed commands keep the prior state
// and leave a status message.
//
// A Session is not safe for concurrent use; the event loop owns it.
type Session struct {
	text   *text.Text
	table  *paginate.Table
	index  *search.Index
	mode   Mode
	input  []rune
	bionic bool

	message string
	logger  *Logger
}

// NewSession creates a session over t. Resize must be called before the
// session has pages.
func NewSession(t *text.Text, logger *Logger) *Session {
	if logger == nil {
		logger = NullLogger
	}
	return &Session{
		text:   t,
		bionic: true,
		logger: logger.WithComponent("session"),
	}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Message returns the status message.
func (s *Session) Message() string {
	return s.message
}

// SetMessage replaces the status message.
func (s *Session) SetMessage(msg string) {
	s.message = msg
}

// Input returns the pattern typed so far.
func (s *Session) Input() string {
	return string(s.input)
}

// Bionic reports whether word lead-ins are emphasized.
func (s *Session) Bionic() bool {
	return s.bionic
}

// SetBionic enables or disables emphasized lead-ins.
func (s *Session) SetBionic(on bool) {
	s.bionic = on
}

// ToggleBionic flips emphasized lead-ins.
func (s *Session) ToggleBionic() {
	s.bionic = !s.bionic
}

// Viewport returns the viewport of the current page table.
func (s *Session) Viewport() paginate.Viewport {
	if s.table == nil {
		return paginate.Viewport{}
	}
	return s.table.Viewport()
}

// Page returns the current page and its zero-based number. The boolean is
// false before the first resize and for an empty text.
func (s *Session) Page() (int, paginate.Page, bool) {
	if s.table == nil {
		return 0, paginate.Page{}, false
	}
	return s.table.Current()
}

// PageCount returns the number of pages.
func (s *Session) PageCount() int {
	if s.table == nil {
		return 0
	}
	return s.table.Len()
}

// Occurrences returns the occurrences of the active search.
func (s *Session) Occurrences() []search.Occurrence {
	if s.index == nil {
		return nil
	}
	return s.index.Occurrences()
}

// CurrentOccurrence returns the selected occurrence of the active search.
func (s *Session) CurrentOccurrence() (search.Occurrence, bool) {
	if s.index == nil {
		return search.Occurrence{}, false
	}
	return s.index.Current(), true
}

// Resize repaginates for a viewport of cols by rows, keeping the page that
// holds the start of the page shown before. An invalid viewport leaves the
// previous pages in place.
func (s *Session) Resize(cols, rows int) error {
	vp := paginate.Viewport{Columns: cols, Rows: rows}
	if s.table != nil && s.table.Viewport() == vp {
		return nil
	}

	table, err := paginate.Paginate(s.text, vp)
	if err != nil {
		return s.fail(NewOperationError("resize", vp.String(), err))
	}

	if _, page, ok := s.Page(); ok {
		_ = table.SetCurrent(table.FindPage(page.Start))
	}
	s.table = table
	s.logger.Debug("paginated %d code points into %d pages for %s", s.text.Len(), table.Len(), vp)
	return nil
}

// NextPage moves to the following page.
func (s *Session) NextPage() bool {
	return s.table != nil && s.table.Next()
}

// PreviousPage moves to the preceding page.
func (s *Session) PreviousPage() bool {
	return s.table != nil && s.table.Previous()
}

// FirstPage moves to the first page.
func (s *Session) FirstPage() bool {
	return s.table != nil && s.table.First()
}

// LastPage moves to the last page.
func (s *Session) LastPage() bool {
	return s.table != nil && s.table.Last()
}

// BeginSearch discards any active search and starts collecting a pattern.
func (s *Session) BeginSearch() {
	s.index = nil
	s.input = s.input[:0]
	s.message = ""
	s.mode = ModeSearchInput
}

// InputRune appends r to the pattern being typed.
func (s *Session) InputRune(r rune) {
	if s.mode != ModeSearchInput {
		return
	}
	s.input = append(s.input, r)
}

// DeleteRune removes the last code point of the pattern being typed.
func (s *Session) DeleteRune() {
	if s.mode != ModeSearchInput || len(s.input) == 0 {
		return
	}
	s.input = s.input[:len(s.input)-1]
}

// SubmitSearch searches for the typed pattern. An empty pattern returns to
// browsing silently; a pattern that does not occur returns to browsing with
// a message. Otherwise the session jumps to the first occurrence at or
// after the start of the current page, wrapping to the first occurrence.
func (s *Session) SubmitSearch() error {
	if s.mode != ModeSearchInput {
		return nil
	}
	pattern := document.Normalize(string(s.input))
	s.input = s.input[:0]
	s.mode = ModeBrowse

	if pattern == "" {
		s.message = ""
		return nil
	}

	idx, err := search.Build(s.text, []rune(pattern))
	if err != nil {
		return s.fail(NewOperationError("search", fmt.Sprintf("%q", pattern), err))
	}

	from := 0
	if _, page, ok := s.Page(); ok {
		from = page.Start
	}
	occ := idx.NearestForward(from)

	s.index = idx
	s.mode = ModeSearchBrowse
	s.jumpTo(occ.Start)
	s.message = s.matchMessage()
	s.logger.Debug("pattern %q: %d occurrences, selected %s", pattern, idx.Len(), occ)
	return nil
}

// CancelSearch discards the pattern and any active search.
func (s *Session) CancelSearch() {
	s.index = nil
	s.input = s.input[:0]
	s.message = ""
	s.mode = ModeBrowse
}

// NextOccurrence selects the following occurrence and shows its page.
func (s *Session) NextOccurrence() error {
	return s.step("next occurrence", (*search.Index).Next, "last match")
}

// PreviousOccurrence selects the preceding occurrence and shows its page.
func (s *Session) PreviousOccurrence() error {
	return s.step("previous occurrence", (*search.Index).Previous, "first match")
}

func (s *Session) step(op string, move func(*search.Index) bool, atEnd string) error {
	if s.index == nil {
		return s.fail(NewOperationError(op, "", ErrNoSearch))
	}
	if !move(s.index) {
		s.message = fmt.Sprintf("%s (%s)", s.matchMessage(), atEnd)
		return nil
	}
	s.jumpTo(s.index.Current().Start)
	s.message = s.matchMessage()
	return nil
}

// jumpTo shows the page containing offset i.
func (s *Session) jumpTo(i int) {
	if s.table == nil {
		return
	}
	_ = s.table.SetCurrent(s.table.FindPage(i))
}

func (s *Session) matchMessage() string {
	return fmt.Sprintf("match %d/%d", s.index.Cursor()+1, s.index.Len())
}

// fail records err as the status message and logs it.
func (s *Session) fail(err error) error {
	switch {
	case errors.Is(err, search.ErrNoMatch):
		s.message = "pattern not found"
	case errors.Is(err, paginate.ErrInvalidViewport):
		s.message = "window too small"
	case errors.Is(err, ErrNoSearch):
		s.message = "no search"
	default:
		s.message = err.Error()
	}
	s.logger.Warn("%v", err)
	return err
}

// View returns the frame for the current page.
func (s *Session) View() renderer.Frame {
	f := renderer.Frame{
		Prompting: s.mode == ModeSearchInput,
		Prompt:    string(s.input),
		Message:   s.message,
		PageCount: s.PageCount(),
	}

	n, page, ok := s.Page()
	if !ok {
		return f
	}
	f.PageNumber = n + 1
	f.Start = page.Start
	f.Runes = paginate.Runes(s.text, page)
	if s.bionic {
		f.Spans = fixation.Segment(f.Runes)
	}
	if s.index != nil {
		f.IsMatch = s.index.IsInside
		f.IsCurrent = s.index.IsInsideCurrent
	}
	return f
}
