// Package document loads text files into a code-point buffer ready for
// paging and searching.
//
// Loading normalizes the content to NFC, so that precomposed and decomposed
// spellings of the same character compare equal rune by rune, and unifies
// Windows line endings to "\n". Patterns typed by the user must go through
// Normalize before searching for the same reason.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/skimread/internal/text"
)

// Errors returned by document loading.
var (
	ErrNotRegular = errors.New("not a regular file")
	ErrTooLarge   = errors.New("file exceeds maximum size")
)

// DefaultMaxSize bounds the files Load accepts. Documents are held entirely
// in memory.
const DefaultMaxSize = 64 << 20

// Stats describes a loaded document.
type Stats struct {
	Bytes      int // size of the input in bytes
	CodePoints int // code points after normalization
	Graphemes  int // user-perceived characters after normalization
	Lines      int // newline-terminated or trailing lines
	Replaced   int // CRLF sequences unified to LF
	Invalid    bool
}

// Document is a loaded text together with where it came from.
type Document struct {
	Path  string
	Text  *text.Text
	Stats Stats
}

// Normalize returns s in Unicode normalization form C, with invalid UTF-8
// replaced by U+FFFD.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return norm.NFC.String(s)
}

// Load reads the file at path.
func Load(path string) (*Document, error) {
	return LoadLimit(path, DefaultMaxSize)
}

// LoadLimit reads the file at path, rejecting files larger than maxSize bytes.
func LoadLimit(path string, maxSize int64) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%s is %d bytes: %w", path, info.Size(), ErrTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Read builds a document from everything r yields.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromBytes(data), nil
}

// FromBytes builds a document from raw bytes.
func FromBytes(data []byte) *Document {
	stats := Stats{
		Bytes:   len(data),
		Invalid: !utf8.Valid(data),
	}

	normalized := Normalize(string(data))
	t := text.FromString(normalized)
	stats.Replaced = t.ReplaceAllString("\r\n", "\n")

	stats.CodePoints = t.Len()
	stats.Graphemes = uniseg.GraphemeClusterCount(t.String())
	stats.Lines = countLines(t)

	return &Document{Text: t, Stats: stats}
}

func countLines(t *text.Text) int {
	if t.IsEmpty() {
		return 0
	}
	lines := len(t.FindAllString("\n"))
	if t.At(t.Len()-1) != '\n' {
		lines++
	}
	return lines
}
