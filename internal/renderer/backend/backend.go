// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"strings"

	"github.com/dshills/skimread/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt wakes the event loop; Data carries the payload.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Interrupt payload
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

var keyNames = map[Key]string{
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyCtrlC:     "ctrl+c",
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// KeyName returns the key's name as used in key bindings: the character
// itself for printable keys ("a", "/", "G"), "space" for the space bar and
// a lower-case name for special keys ("esc", "pgdn"). Ctrl on a character
// and Alt on any key add "ctrl+" and "alt+" prefixes. Non-key events
// return "".
func (e Event) KeyName() string {
	if e.Type != EventKey {
		return ""
	}

	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = keyNames[e.Key]
	}
	if name == "" {
		return ""
	}

	if e.Key == KeyRune && e.Mod.Has(ModCtrl) {
		name = "ctrl+" + strings.ToLower(name)
	}
	if e.Mod.Has(ModAlt) {
		name = "alt+" + name
	}
	return name
}

// KeyEvent builds a key event for a printable character.
func KeyEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// SpecialKeyEvent builds a key event for a non-character key.
func SpecialKeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// ParseKeyName is the inverse of KeyName for unmodified keys, used to
// script input in tests and demos.
func ParseKeyName(name string) (Event, bool) {
	if name == "space" {
		return KeyEvent(' '), true
	}
	if r := []rune(name); len(r) == 1 {
		return KeyEvent(r[0]), true
	}
	name = strings.ToLower(name)
	for k, n := range keyNames {
		if n == name {
			return SpecialKeyEvent(k), true
		}
	}
	return Event{}, false
}

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// Must be called when done with the backend.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the terminal.
	GetCell(x, y int) core.Cell

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// Returns an EventNone event once the backend is shut down.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	// Returns false if the queue is full.
	PostEvent(event Event) bool
}
