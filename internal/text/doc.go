// Package text provides an owned, code-point indexed text buffer.
//
// Every offset taken or returned by this package counts Unicode code points
// (runes), never bytes. Text handed to the package is expected to be NFC
// normalized already so that equal strings compare equal rune by rune; the
// package itself performs no normalization.
//
// Pattern operations share a single scanning policy: matches are located left
// to right and the scan resumes one past the end of each hit, so FindAll,
// ReplaceAll and Split never report overlapping matches.
//
// Basic usage:
//
//	t := text.FromString("one\r\ntwo\r\n")
//	t.ReplaceAllString("\r\n", "\n") // 2
//	t.FindString("two", 0, -1)       // 4
//	t.SplitString("\n")              // ["one", "two"]
//
// A Text is not safe for concurrent mutation; it is meant to be owned by a
// single session and edited only while loading.
package text
