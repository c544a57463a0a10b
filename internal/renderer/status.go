package renderer

import (
	"fmt"

	"github.com/dshills/skimread/internal/renderer/core"
)

// statusText returns the status line content for f, noting code points
// the page could not show.
func statusText(f *Frame, hidden int) string {
	if f.Prompting {
		return "/ " + f.Prompt
	}
	s := fmt.Sprintf("page %d/%d", f.PageNumber, f.PageCount)
	if hidden > 0 {
		s += fmt.Sprintf(" [%d hidden]", hidden)
	}
	if f.Message != "" {
		s += "  " + f.Message
	}
	return s
}

// drawStatus fills row y with the status style and writes the status text,
// cut to the screen width. While prompting the cursor follows the input.
func (r *Renderer) drawStatus(f *Frame, hidden, width, y int) {
	style := r.theme.Status
	for x := 0; x < width; x++ {
		r.backend.SetCell(x, y, core.NewStyledCell(' ', style))
	}

	text := core.Truncate(statusText(f, hidden), width)
	x := 0
	for _, ch := range text {
		w := core.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
		for c := 1; c < w; c++ {
			r.backend.SetCell(x+c, y, core.ContinuationCell(style))
		}
		x += w
	}

	if f.Prompting && x < width {
		r.backend.ShowCursor(x, y)
	}
}
