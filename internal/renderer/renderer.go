package renderer

import (
	"sync"

	"github.com/dshills/skimread/internal/paginate"
	"github.com/dshills/skimread/internal/renderer/backend"
	"github.com/dshills/skimread/internal/renderer/core"
)

// OverflowMarker replaces the last cell of a row whose wide code points
// did not fit the screen.
const OverflowMarker = '>'

// Options configures the renderer.
type Options struct {
	// StatusLine reserves the last row for the page counter, messages and
	// the search prompt.
	StatusLine bool
}

// Renderer paints frames onto a backend.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend
	theme   Theme
	opts    Options

	frameCount uint64
	hidden     int
}

// New creates a renderer drawing to b.
func New(b backend.Backend, theme Theme, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		theme:   theme,
		opts:    opts,
	}
}

// SetTheme replaces the theme used by subsequent draws.
func (r *Renderer) SetTheme(t Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = t
}

// SetOptions replaces the options used by subsequent draws.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// FrameCount returns the number of frames drawn.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Hidden returns how many code points of the last frame could not be
// painted because their rows ran out of cells.
func (r *Renderer) Hidden() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hidden
}

// Viewport returns the text area for a screen of the given size. The
// status line takes one row when enabled and the screen has room for it.
func (r *Renderer) Viewport(width, height int) paginate.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport(width, height)
}

func (r *Renderer) viewport(width, height int) paginate.Viewport {
	if r.opts.StatusLine && height > 1 {
		height--
	}
	return paginate.Viewport{Columns: width, Rows: height}
}

// Draw clears the screen and paints f.
func (r *Renderer) Draw(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	r.backend.Clear()
	r.backend.HideCursor()

	hidden := 0
	vp := r.viewport(width, height)
	if vp.Validate() == nil {
		hidden = r.drawPage(&f, vp)
		if r.opts.StatusLine && height > 1 {
			r.drawStatus(&f, hidden, width, height-1)
		}
	}
	r.hidden = hidden

	r.backend.Show()
	r.frameCount++
}

// drawPage lays the frame's code points out row by row and returns how
// many could not be shown. Rows break where the paginator broke them;
// within a row each code point takes its display width. Wide code points
// can overrun a row, and such a row ends in OverflowMarker.
func (r *Renderer) drawPage(f *Frame, vp paginate.Viewport) int {
	layout := paginate.NewLayout(vp)
	x, row := 0, 0
	last := 0 // column of the last code point painted on the row
	hidden := 0
	marked := false

	for i, ch := range f.Runes {
		if ch != '\n' {
			w, ok := r.paint(x, row, vp.Columns, ch, f.styleAt(&r.theme, i))
			switch {
			case !ok:
				hidden++
				if !marked {
					hidden += r.markOverflow(x, last, row, vp.Columns)
					marked = true
				}
			case w > 0:
				last = x
			}
			x += w
		}

		if layout.Advance(ch) {
			break
		}
		if layout.Row != row {
			row = layout.Row
			x, last, marked = 0, 0, false
		}
	}
	return hidden
}

// paint draws ch at (x, y) and returns the number of columns it takes,
// and false if it did not fit.
func (r *Renderer) paint(x, y, width int, ch rune, style core.Style) (int, bool) {
	w := core.RuneWidth(ch)
	if w == 0 {
		if ch >= 32 && ch != 0x7F {
			return 0, true
		}
		// Control characters hold their layout column as a blank.
		ch, w = ' ', 1
	}
	if x+w > width {
		return w, false
	}

	r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
	for c := 1; c < w; c++ {
		r.backend.SetCell(x+c, y, core.ContinuationCell(style))
	}
	return w, true
}

// markOverflow puts OverflowMarker in the last cell of row y, where the
// first code point that did not fit would have started at x and the last
// painted one starts at last. It returns the number of painted code points
// the marker covers.
func (r *Renderer) markOverflow(x, last, y, width int) int {
	covered := 0
	if x >= width {
		// The row is full; the marker takes the place of its last code point.
		covered = 1
		if last < width-1 {
			r.backend.SetCell(last, y, core.NewStyledCell(' ', r.theme.Text))
		}
	}
	r.backend.SetCell(width-1, y, core.NewStyledCell(OverflowMarker, r.theme.Status))
	return covered
}
