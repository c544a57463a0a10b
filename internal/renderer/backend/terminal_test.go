package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/skimread/internal/renderer/core"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	sim.SetSize(w, h)
	return term, sim
}

func TestTerminalSetCell(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 2)

	style := core.NewStyle(core.ColorFromRGB(0, 205, 0), core.ColorFromRGB(0, 0, 0)).Bold()
	term.SetCell(1, 0, core.NewStyledCell('x', style))
	term.Show()

	got := term.GetCell(1, 0)
	if got.Rune != 'x' {
		t.Errorf("Rune = %q, expected x", got.Rune)
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("bold attribute lost")
	}
	if got.Style.Foreground != core.ColorFromRGB(0, 205, 0) {
		t.Errorf("Foreground = %v, expected #00CD00", got.Style.Foreground)
	}
}

func TestTerminalEvents(t *testing.T) {
	term, sim := newSimTerminal(t, 10, 2)

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	ev := term.PollEvent()
	// The simulation screen reports its size before any input.
	for ev.Type == EventResize {
		ev = term.PollEvent()
	}
	if ev.KeyName() != "a" {
		t.Errorf("PollEvent() = %+v, expected key a", ev)
	}

	if !term.PostEvent(Event{Type: EventInterrupt, Data: 42}) {
		t.Fatal("PostEvent(interrupt) failed")
	}
	ev = term.PollEvent()
	if ev.Type != EventInterrupt || ev.Data != 42 {
		t.Errorf("PollEvent() = %+v, expected interrupt 42", ev)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestNamedKeysRoundTrip(t *testing.T) {
	for k, name := range keyNames {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("%s: convertKey(convertToTcellKey()) = %v, expected %v", name, got, k)
		}
	}
	if got := convertToTcellKey(KeyRune); got != tcell.KeyRune {
		t.Errorf("convertToTcellKey(KeyRune) = %v, expected KeyRune", got)
	}

	mods := ModCtrl | ModAlt
	if got := convertMod(convertToTcellMod(mods)); got != mods {
		t.Errorf("modifier round trip = %v, expected %v", got, mods)
	}
	if got := convertMod(tcell.ModShift); got != ModNone {
		t.Errorf("convertMod(shift) = %v, expected none", got)
	}
}

func TestConvertStyleRoundTrip(t *testing.T) {
	in := core.NewStyle(core.ColorFromRGB(10, 20, 30), core.ColorDefault).Reverse()
	out := convertTcellStyle(convertStyle(in))
	if out != in {
		t.Errorf("round trip = %+v, expected %+v", out, in)
	}
}
