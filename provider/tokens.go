package provider

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// Token is one lexical token: its kind as classified by the grammar, and its
// byte span. Named tokens carry the grammar's node type (identifier, number,
// string_fragment, ...); anonymous tokens (keywords, punctuation) are
// classified by their spelling.
type Token struct {
	Kind  string
	Start int
	End   int
}

// EOFKind terminates every token stream exactly once.
const EOFKind = "EOF"

// Tokens lexes src and returns the token stream in source order, comment
// tokens filtered, terminated by an explicit EOF token at len(src).
// Tokenization is total: it succeeds even when the source has syntax errors.
func Tokens(ctx context.Context, src []byte) ([]Token, error) {
	result, err := Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return result.Tokens(), nil
}

// Tokens returns the parsed source's token stream. Comment tokens are
// filtered and a synthetic EOF token terminates the stream.
func (r *Result) Tokens() []Token {
	tokens := collectLeaves(r.Root(), nil)
	return append(tokens, Token{Kind: EOFKind, Start: len(r.Source), End: len(r.Source)})
}

// collectLeaves appends every leaf of the tree, in order, skipping comments.
func collectLeaves(node *sitter.Node, tokens []Token) []Token {
	count := int(node.ChildCount())
	if count == 0 {
		if node.Type() == "comment" {
			return tokens
		}
		if node.IsMissing() {
			// Zero-width token invented by error recovery; not part of input.
			return tokens
		}
		return append(tokens, Token{
			Kind:  node.Type(),
			Start: int(node.StartByte()),
			End:   int(node.EndByte()),
		})
	}
	for i := 0; i < count; i++ {
		tokens = collectLeaves(node.Child(i), tokens)
	}
	return tokens
}
