package provider_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jsoracle/provider"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantErrors bool
	}{
		{name: "clean", source: "let x = 1;\n"},
		{name: "module syntax", source: "import a from 'm';\nexport const b = a;\n"},
		{name: "unterminated string", source: "let s = \"abc;\n", wantErrors: true},
		{name: "stray operator", source: "let x = ;\n", wantErrors: true},
		{name: "empty input", source: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.source)
			result, err := provider.Parse(context.Background(), src)
			if !assert.Nil(t, err) {
				return
			}
			assert.NotNil(t, result.Root())
			if tt.wantErrors {
				assert.NotEmpty(t, result.Errors)
			} else {
				assert.Empty(t, result.Errors)
			}
			for _, parseErr := range result.Errors {
				assert.LessOrEqual(t, parseErr.Start, parseErr.End)
				assert.LessOrEqual(t, parseErr.End, len(src))
			}
		})
	}
}

func TestTokens(t *testing.T) {
	src := []byte("let x = 1; // done\n")
	tokens, err := provider.Tokens(context.Background(), src)
	if !assert.Nil(t, err) {
		return
	}
	if !assert.NotEmpty(t, tokens) {
		return
	}

	last := tokens[len(tokens)-1]
	assert.Equal(t, provider.EOFKind, last.Kind)
	assert.Equal(t, len(src), last.Start)
	assert.Equal(t, len(src), last.End)

	previousEnd := 0
	for _, token := range tokens {
		assert.NotEqual(t, "comment", token.Kind)
		assert.LessOrEqual(t, token.Start, token.End, "token %v", token)
		assert.LessOrEqual(t, token.End, len(src), "token %v", token)
		assert.GreaterOrEqual(t, token.Start, previousEnd, "token %v out of order", token)
		previousEnd = token.End
	}
}

// Tokenization is total: malformed input still yields a terminated stream.
func TestTokens_MalformedInput(t *testing.T) {
	src := []byte("let = = 1;\n")
	tokens, err := provider.Tokens(context.Background(), src)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, provider.EOFKind, tokens[len(tokens)-1].Kind)
}

func TestSyntaxError_Error(t *testing.T) {
	err := provider.SyntaxError{Start: 3, End: 7, Message: "missing )"}
	assert.Equal(t, "missing ) at 3:7", err.Error())
}

func TestHash_Deterministic(t *testing.T) {
	data := []byte("let x = 1;\n")
	first, err := provider.Hash(data)
	if !assert.Nil(t, err) {
		return
	}
	second, err := provider.Hash(data)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, first, second)
	assert.NotZero(t, first)

	other, err := provider.Hash([]byte("let x = 2;\n"))
	if !assert.Nil(t, err) {
		return
	}
	assert.NotEqual(t, first, other)
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "input.js")
	content := []byte("let x = 1;\n")
	if !assert.Nil(t, os.WriteFile(location, content, 0o644)) {
		return
	}

	source, err := provider.LoadSource(context.Background(), location)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, location, source.Location)
	assert.Equal(t, content, source.Data)
	assert.NotZero(t, source.Digest)

	_, err = provider.LoadSource(context.Background(), filepath.Join(dir, "absent.js"))
	assert.NotNil(t, err)
}
