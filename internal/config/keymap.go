package config

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Command is a reader action that keys can be bound to.
type Command string

// Commands available for binding.
const (
	CmdNextPage      Command = "nextPage"
	CmdPreviousPage  Command = "previousPage"
	CmdFirstPage     Command = "firstPage"
	CmdLastPage      Command = "lastPage"
	CmdSearch        Command = "search"
	CmdNextMatch     Command = "nextMatch"
	CmdPreviousMatch Command = "previousMatch"
	CmdToggleBionic  Command = "toggleBionic"
	CmdQuit          Command = "quit"
)

// Commands returns every bindable command in a stable order.
func Commands() []Command {
	return []Command{
		CmdNextPage, CmdPreviousPage, CmdFirstPage, CmdLastPage,
		CmdSearch, CmdNextMatch, CmdPreviousMatch, CmdToggleBionic, CmdQuit,
	}
}

// Valid reports whether c names a known command.
func (c Command) Valid() bool {
	return slices.Contains(Commands(), c)
}

var defaultBindings = map[Command][]string{
	CmdNextPage:      {"a", "space", "pgdn"},
	CmdPreviousPage:  {"q", "pgup"},
	CmdFirstPage:     {"home", "g"},
	CmdLastPage:      {"end", "G"},
	CmdSearch:        {"/"},
	CmdNextMatch:     {"n"},
	CmdPreviousMatch: {"p"},
	CmdToggleBionic:  {"b"},
	CmdQuit:          {"esc", "ctrl+c"},
}

// Bindings maps command names to the keys that trigger them, as written
// in the configuration file.
type Bindings map[string][]string

// KeyMap resolves key names to commands.
type KeyMap struct {
	byKey map[string]Command
}

// KeyMap compiles the configured bindings.
func (c *Config) KeyMap() (*KeyMap, error) {
	return c.Keys.compile()
}

// DefaultKeyMap returns the built-in key map.
func DefaultKeyMap() *KeyMap {
	km, err := Default().KeyMap()
	if err != nil {
		panic("config: invalid default key map: " + err.Error())
	}
	return km
}

func (b Bindings) compile() (*KeyMap, error) {
	km := &KeyMap{byKey: make(map[string]Command)}
	var errs ValidationErrors

	// Sorted so that duplicate reports are deterministic.
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := Command(name)
		path := "keys." + name
		if !cmd.Valid() {
			errs = append(errs, &ValidationError{Path: path, Value: name, Err: ErrUnknownCommand})
			continue
		}
		keys := b[name]
		if len(keys) == 0 {
			errs = append(errs, &ValidationError{Path: path, Value: keys, Err: ErrEmptyBinding})
			continue
		}
		for _, k := range keys {
			key := NormalizeKey(k)
			if key == "" {
				errs = append(errs, &ValidationError{Path: path, Value: k, Err: ErrEmptyBinding})
				continue
			}
			if prev, ok := km.byKey[key]; ok && prev != cmd {
				errs = append(errs, &ValidationError{Path: path, Value: key, Err: ErrDuplicateKey})
				continue
			}
			km.byKey[key] = cmd
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return km, nil
}

// Lookup returns the command bound to key.
func (m *KeyMap) Lookup(key string) (Command, bool) {
	if m == nil {
		return "", false
	}
	cmd, ok := m.byKey[NormalizeKey(key)]
	return cmd, ok
}

// KeysFor returns the keys bound to cmd, sorted.
func (m *KeyMap) KeysFor(cmd Command) []string {
	var keys []string
	for k, c := range m.byKey {
		if c == cmd {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pagedown": "pgdn",
	"pageup":   "pgup",
	"bs":       "backspace",
	"spc":      "space",
}

// NormalizeKey returns the canonical spelling of a key name. A single
// character is kept as is, so "G" and "g" stay distinct; named keys and
// modifiers are case-insensitive ("Ctrl+C" is "ctrl+c").
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if utf8.RuneCountInString(key) <= 1 {
		return key
	}
	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}
