package dump

import (
	"fmt"
	"io"

	"github.com/viant/jsoracle/provider"
)

// TokenDumper linearizes a token stream, one line per token in stream order,
// preceded by a count header.
type TokenDumper struct {
	out       io.Writer
	src       []byte
	textLimit int
}

// NewTokenDumper returns a dumper writing to out for the given source.
func NewTokenDumper(out io.Writer, src []byte) *TokenDumper {
	return &TokenDumper{out: out, src: src, textLimit: TokenTextLimit}
}

// TextLimit overrides the per-token display text limit.
func (d *TokenDumper) TextLimit(limit int) *TokenDumper {
	if limit > 0 {
		d.textLimit = limit
	}
	return d
}

// Dump writes the stream: a === TOKENS === header, the token count, then
// `<kind> <start>:<end> <escaped-text>` per token.
func (d *TokenDumper) Dump(tokens []provider.Token) {
	fmt.Fprintln(d.out, "=== TOKENS ===")
	fmt.Fprintf(d.out, "token_count: %d\n", len(tokens))
	for _, tok := range tokens {
		text := Snippet(d.src, tok.Start, tok.End, d.textLimit)
		fmt.Fprintf(d.out, "  %s %d:%d %s\n", tok.Kind, tok.Start, tok.End, text)
	}
}
