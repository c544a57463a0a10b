package renderer

import (
	"github.com/dshills/skimread/internal/fixation"
	"github.com/dshills/skimread/internal/renderer/core"
)

// Frame is everything needed to paint one page.
type Frame struct {
	// Start is the global offset of Runes[0].
	Start int

	// Runes are the code points of the page.
	Runes []rune

	// Spans locate the words of Runes, relative to Runes. Nil disables
	// bold lead-ins.
	Spans fixation.Spans

	// IsMatch and IsCurrent take global offsets. Either may be nil when
	// no search is active.
	IsMatch   func(i int) bool
	IsCurrent func(i int) bool

	// PageNumber is one-based; both are zero for an empty document.
	PageNumber int
	PageCount  int

	// Prompting is set while a search pattern is being typed into Prompt.
	Prompting bool
	Prompt    string

	// Message is a transient status message.
	Message string
}

// styleAt returns the style of Runes[i].
func (f *Frame) styleAt(t *Theme, i int) core.Style {
	g := f.Start + i

	s := t.Text
	switch {
	case f.IsCurrent != nil && f.IsCurrent(g):
		s = t.Current
	case f.IsMatch != nil && f.IsMatch(g):
		s = t.Match
	}
	if f.Spans != nil && f.Spans.Lead(i) {
		s = s.Bold()
	}
	return s
}
