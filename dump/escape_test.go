package dump_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jsoracle/dump"
)

func TestEscapeLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "plain", input: "let x = 1", expect: "let x = 1"},
		{name: "newline", input: "a\nb", expect: `a\nb`},
		{name: "carriage return", input: "a\rb", expect: `a\rb`},
		{name: "tab", input: "a\tb", expect: `a\tb`},
		{name: "nul", input: "a\x00b", expect: `a\0b`},
		{name: "backslash", input: `a\b`, expect: `a\\b`},
		{name: "other control", input: "a\x01b", expect: `a\u{0001}b`},
		{name: "unicode passthrough", input: "héllo — ok", expect: "héllo — ok"},
		{name: "empty", input: "", expect: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, dump.EscapeLine(tt.input))
		})
	}
}

// Escaping printable, backslash-free text is the identity, so applying it
// twice changes nothing.
func TestEscapeLine_IdempotentOnPrintable(t *testing.T) {
	input := "const greet = (name) => `hi ${name}`;"
	once := dump.EscapeLine(input)
	assert.Equal(t, input, once)
	assert.Equal(t, once, dump.EscapeLine(once))
}

func TestSnippet(t *testing.T) {
	src := []byte("let x = 'héllo';\n")
	tests := []struct {
		name       string
		start, end int
		max        int
		expect     string
	}{
		{name: "exact span", start: 4, end: 5, max: 50, expect: "x"},
		{name: "clamped end", start: 4, end: 999, max: 50, expect: `x = 'héllo';\n`},
		{name: "inverted span", start: 5, end: 4, max: 50, expect: ""},
		{name: "negative start", start: -3, end: 3, max: 50, expect: "let"},
		{name: "escapes newline", start: 15, end: 17, max: 50, expect: `;\n`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, dump.Snippet(src, tt.start, tt.end, tt.max))
		})
	}
}

// Truncation must never split a multi-byte rune.
func TestSnippet_RuneBoundary(t *testing.T) {
	src := []byte("ééééé")
	got := dump.Snippet(src, 0, len(src), 3)
	assert.Equal(t, "é", got)
}
