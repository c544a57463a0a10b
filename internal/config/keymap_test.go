package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  string
		want Command
	}{
		{"a", CmdNextPage},
		{"space", CmdNextPage},
		{" ", CmdNextPage},
		{"PgDn", CmdNextPage},
		{"pagedown", CmdNextPage},
		{"q", CmdPreviousPage},
		{"home", CmdFirstPage},
		{"G", CmdLastPage},
		{"g", CmdFirstPage},
		{"/", CmdSearch},
		{"n", CmdNextMatch},
		{"p", CmdPreviousMatch},
		{"b", CmdToggleBionic},
		{"Esc", CmdQuit},
		{"escape", CmdQuit},
		{"Ctrl+C", CmdQuit},
	}

	for _, tt := range tests {
		got, ok := km.Lookup(tt.key)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %q, %v; expected %q", tt.key, got, ok, tt.want)
		}
	}

	if _, ok := km.Lookup("z"); ok {
		t.Error("Lookup(z) should not be bound")
	}
	if _, ok := km.Lookup("A"); ok {
		t.Error("single characters are case-sensitive")
	}
}

func TestKeysFor(t *testing.T) {
	km := DefaultKeyMap()
	if diff := cmp.Diff([]string{"a", "pgdn", "space"}, km.KeysFor(CmdNextPage)); diff != "" {
		t.Errorf("KeysFor(nextPage) mismatch (-want +got):\n%s", diff)
	}
}

func TestNilKeyMap(t *testing.T) {
	var km *KeyMap
	if _, ok := km.Lookup("a"); ok {
		t.Error("nil KeyMap should not resolve keys")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"a":      "a",
		"A":      "A",
		" ":      "space",
		"Space":  "space",
		"ESCAPE": "esc",
		"Return": "enter",
		" pgup ": "pgup",
		"PageUp": "pgup",
		"Ctrl+X": "ctrl+x",
		"é":      "é",
		"":       "",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestBindingsCompile(t *testing.T) {
	km, err := Bindings{"quit": {"x"}, "search": {"/", "?"}}.compile()
	if err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	if cmd, _ := km.Lookup("?"); cmd != CmdSearch {
		t.Errorf("Lookup(?) = %q, expected search", cmd)
	}

	// The same key listed twice for one command is not a conflict.
	if _, err := (Bindings{"quit": {"x", "x"}}).compile(); err != nil {
		t.Errorf("repeated key for one command: %v", err)
	}

	_, err = Bindings{"nextPage": {"x"}, "quit": {"X", "x"}}.compile()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 {
		t.Fatalf("compile() = %v, expected one duplicate error", err)
	}
	if verrs[0].Path != "keys.quit" || !errors.Is(verrs[0], ErrDuplicateKey) {
		t.Errorf("error = %v, expected duplicate on keys.quit", verrs[0])
	}
}

func TestCommandValid(t *testing.T) {
	for _, c := range Commands() {
		if !c.Valid() {
			t.Errorf("%q.Valid() = false", c)
		}
		if len(defaultBindings[c]) == 0 {
			t.Errorf("command %q has no default binding", c)
		}
	}
	if Command("explode").Valid() {
		t.Error("unknown command reported valid")
	}
}
