package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.toml", FormatTOML},
		{"/etc/skimread/CONFIG.TOML", FormatTOML},
		{"config.yaml", FormatYAML},
		{"config.yml", FormatYAML},
		{"config.json", FormatUnknown},
		{"config", FormatUnknown},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %v, expected %v", tt.path, got, tt.want)
		}
	}
}

func TestForPathUnsupported(t *testing.T) {
	if _, err := ForPath(NewMemFS(), "config.json"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[log]
level = "debug"

[view]
statusLine = false

[keys]
nextPage = ["a", "pgdn"]
`)

	l, err := ForPath(memfs, "/config.toml")
	if err != nil {
		t.Fatal(err)
	}
	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"log":  map[string]any{"level": "debug"},
		"view": map[string]any{"statusLine": false},
		"keys": map[string]any{"nextPage": []any{"a", "pgdn"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	got, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil || got != nil {
		t.Errorf("Load() of missing file = %v, %v; expected nil, nil", got, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[log]\nlevel = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q, expected /bad.toml", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("expected a line number in ParseError")
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	got, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`title = "x"`))
	if err != nil {
		t.Fatal(err)
	}
	if got["title"] != "x" {
		t.Errorf("title = %v, expected x", got["title"])
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
log:
  level: warn
theme:
  matchBackground: "#ffffff"
keys:
  quit: [esc, "ctrl+c"]
`)

	l, err := ForPath(memfs, "/config.yaml")
	if err != nil {
		t.Fatal(err)
	}
	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"log":   map[string]any{"level": "warn"},
		"theme": map[string]any{"matchBackground": "#ffffff"},
		"keys":  map[string]any{"quit": []any{"esc", "ctrl+c"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("log: [unclosed"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoaderFrom("SKIMREAD_", []string{
		"SKIMREAD_LOG_LEVEL=debug",
		"SKIMREAD_LOG=/tmp/skimread.log",
		"SKIMREAD_VIEW_STATUS_LINE=off",
		"SKIMREAD_KEYS_NEXT_PAGE=a, pgdn",
		"SKIMREAD_CONFIG=/ignored.toml",
		"OTHER_VAR=1",
		"malformed",
	})

	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"log":  map[string]any{"level": "debug", "file": "/tmp/skimread.log"},
		"view": map[string]any{"statusLine": false},
		"keys": map[string]any{"nextPage": []any{"a", "pgdn"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader("SKIMREAD_")

	tests := map[string]string{
		"SKIMREAD_LOG_LEVEL":             "log.level",
		"SKIMREAD_THEME_MATCH_BACKGROUND": "theme.matchBackground",
		"SKIMREAD_DEBUG":                 "debug",
	}
	for env, want := range tests {
		if got := l.envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, expected %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"off", false},
		{"42", int64(42)},
		{"a,b", []any{"a", "b"}},
		{"text", "text"},
		{"", ""},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseValue(tt.in)); diff != "" {
			t.Errorf("parseValue(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"log":  map[string]any{"level": "info", "file": "a.log"},
		"view": map[string]any{"statusLine": true},
	}
	src := map[string]any{
		"log":  map[string]any{"level": "debug"},
		"keys": map[string]any{"quit": "q"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"log":  map[string]any{"level": "debug", "file": "a.log"},
		"view": map[string]any{"statusLine": true},
		"keys": map[string]any{"quit": "q"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeepMerge() mismatch (-want +got):\n%s", diff)
	}
}
