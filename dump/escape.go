// Package dump renders deterministic, line-oriented snapshots of a parsed
// JavaScript source: its token stream, syntax tree, scope graph and minified
// output. Standard output stays a clean diffable artifact; warnings go to a
// separate diagnostic writer.
package dump

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default snippet limits, matching the reference dump protocol.
const (
	NodeSnippetLimit = 50
	TokenTextLimit   = 80
)

// EscapeLine turns an arbitrary string into a single-line printable
// representation safe for line-oriented diffing. Newline, carriage return,
// tab, NUL and backslash get two-character escapes; any other control rune
// becomes \u{XXXX}; everything else passes through unchanged.
func EscapeLine(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			out.WriteString(`\n`)
		case r == '\r':
			out.WriteString(`\r`)
		case r == '\t':
			out.WriteString(`\t`)
		case r == 0:
			out.WriteString(`\0`)
		case r == '\\':
			out.WriteString(`\\`)
		case unicode.IsControl(r):
			fmt.Fprintf(&out, `\u{%04x}`, r)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// Snippet returns a bounded, escaped slice of src for the byte span
// [start, end). The end is clamped to len(src), an inverted span yields "",
// and truncation to max bytes never splits a multi-byte rune.
func Snippet(src []byte, start, end, max int) string {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if end <= start {
		return ""
	}
	text := src[start:end]
	if len(text) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return EscapeLine(string(text))
}
