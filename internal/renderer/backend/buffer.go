package backend

import (
	"strings"
	"sync"

	"github.com/dshills/skimread/internal/renderer/core"
)

// ScreenBuffer is an in-memory Backend. It keeps the cells drawn to it and
// replays events posted to it, which makes it the backend for tests and
// headless runs.
type ScreenBuffer struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int

	events   chan Event
	done     chan struct{}
	shutOnce sync.Once
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
	sb.allocate()
	return sb
}

// allocate creates the cell grid.
func (sb *ScreenBuffer) allocate() {
	sb.cells = make([][]core.Cell, sb.height)
	for y := range sb.cells {
		sb.cells[y] = make([]core.Cell, sb.width)
		for x := range sb.cells[y] {
			sb.cells[y][x] = core.EmptyCell()
		}
	}
}

func (sb *ScreenBuffer) Init() error {
	return nil
}

// Shutdown releases any goroutine blocked in PollEvent.
func (sb *ScreenBuffer) Shutdown() {
	sb.shutOnce.Do(func() { close(sb.done) })
}

func (sb *ScreenBuffer) Size() (int, int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.width, sb.height
}

func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if x >= 0 && x < sb.width && y >= 0 && y < sb.height {
		sb.cells[y][x] = cell
	}
}

func (sb *ScreenBuffer) GetCell(x, y int) core.Cell {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if x >= 0 && x < sb.width && y >= 0 && y < sb.height {
		return sb.cells[y][x]
	}
	return core.EmptyCell()
}

func (sb *ScreenBuffer) Clear() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	empty := core.EmptyCell()
	for y := range sb.cells {
		for x := range sb.cells[y] {
			sb.cells[y][x] = empty
		}
	}
}

// Show counts frames; see Shows.
func (sb *ScreenBuffer) Show() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.shows++
}

func (sb *ScreenBuffer) ShowCursor(x, y int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorX, sb.cursorY = x, y
	sb.cursorVisible = true
}

func (sb *ScreenBuffer) HideCursor() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorVisible = false
}

func (sb *ScreenBuffer) PollEvent() Event {
	select {
	case ev := <-sb.events:
		return ev
	case <-sb.done:
		return Event{Type: EventNone}
	}
}

func (sb *ScreenBuffer) PostEvent(event Event) bool {
	select {
	case sb.events <- event:
		return true
	default:
		return false
	}
}

// Resize changes the dimensions, clearing the content, and queues the
// matching resize event.
func (sb *ScreenBuffer) Resize(width, height int) {
	sb.mu.Lock()
	sb.width = width
	sb.height = height
	sb.allocate()
	sb.mu.Unlock()

	sb.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// CursorPosition returns the current cursor position for testing.
func (sb *ScreenBuffer) CursorPosition() (x, y int, visible bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.cursorX, sb.cursorY, sb.cursorVisible
}

// Shows returns how many times Show was called.
func (sb *ScreenBuffer) Shows() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.shows
}

// Row returns the text of row y with trailing blanks removed. Continuation
// cells of wide characters are skipped.
func (sb *ScreenBuffer) Row(y int) string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if y < 0 || y >= sb.height {
		return ""
	}

	var b strings.Builder
	for _, c := range sb.cells[y] {
		if c.IsContinuation() {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row as by Row.
func (sb *ScreenBuffer) Lines() []string {
	_, h := sb.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = sb.Row(y)
	}
	return lines
}
