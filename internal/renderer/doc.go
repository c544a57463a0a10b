// Package renderer paints reading frames onto a terminal backend.
//
// A Frame is a snapshot of one page: its code points, the word spans used
// for bold lead-ins, and predicates telling which code points belong to a
// search occurrence. The renderer walks the frame with the same layout the
// paginator used to cut the page, so a page always fills exactly the rows it
// was cut for.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Renderer (Draw, Viewport)        │
//	├─────────────────────────────────────────┤
//	│   Theme   │  page layout  │ status line │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ ScreenBuffer        │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	theme, _ := renderer.NewTheme(cfg.Theme)
//	r := renderer.New(term, theme, renderer.Options{StatusLine: true})
//	r.Draw(session.View())
package renderer
