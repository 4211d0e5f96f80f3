package oracle_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jsoracle/dump"
	"github.com/viant/jsoracle/oracle"
	"github.com/viant/jsoracle/provider"
)

func newSource(t *testing.T, data string) *provider.Source {
	t.Helper()
	digest, err := provider.Hash([]byte(data))
	if !assert.Nil(t, err) {
		t.FailNow()
	}
	return &provider.Source{Location: "test.js", Data: []byte(data), Digest: digest}
}

func run(t *testing.T, mode oracle.Mode, data string) (int, string, string) {
	t.Helper()
	var out, diag bytes.Buffer
	o := oracle.New(nil)
	o.Out = &out
	o.Diag = &diag
	code := o.RunSource(context.Background(), mode, newSource(t, data))
	return code, out.String(), diag.String()
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		word    string
		expect  oracle.Mode
		wantErr bool
	}{
		{word: "lex", expect: oracle.ModeTokens},
		{word: "tokens", expect: oracle.ModeTokens},
		{word: "ast", expect: oracle.ModeAST},
		{word: "parse", expect: oracle.ModeAST},
		{word: "minify", expect: oracle.ModeMinify},
		{word: "mangle", expect: oracle.ModeMangle},
		{word: "scope", expect: oracle.ModeScope},
		{word: "all", expect: oracle.ModeAll},
		{word: "eval", wantErr: true},
		{word: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			mode, err := oracle.ParseMode(tt.word)
			if tt.wantErr {
				assert.NotNil(t, err)
				return
			}
			if assert.Nil(t, err) {
				assert.Equal(t, tt.expect, mode)
			}
		})
	}
}

func TestRun_ASTClean(t *testing.T) {
	code, out, diag := run(t, oracle.ModeAST, "let x = 1 + 2;\n")

	assert.Equal(t, oracle.ExitOK, code)
	assert.Contains(t, out, "=== AST ===")
	assert.Contains(t, out, "Binary Add 8:13")
	assert.Empty(t, diag)
}

// A fatal parse error must leave stdout untouched so a partial snapshot can
// never be mistaken for a complete one.
func TestRun_ASTParseError(t *testing.T) {
	code, out, diag := run(t, oracle.ModeAST, "let s = \"abc;\n")

	assert.Equal(t, oracle.ExitError, code)
	assert.Empty(t, out)
	assert.Contains(t, diag, "=== PARSE ERRORS (")
}

// Tokenization is independent of parse success: broken input still dumps a
// full stream and exits clean.
func TestRun_TokensSurviveParseErrors(t *testing.T) {
	code, out, diag := run(t, oracle.ModeTokens, "let s = \"abc;\n")

	assert.Equal(t, oracle.ExitOK, code)
	assert.Contains(t, out, "=== TOKENS ===")
	assert.Contains(t, out, "token_count: ")
	assert.NotContains(t, diag, "=== PARSE ERRORS (")
}

func TestRun_Scope(t *testing.T) {
	code, out, _ := run(t, oracle.ModeScope, "console.log(1);\n")

	assert.Equal(t, oracle.ExitOK, code)
	assert.Contains(t, out, "=== SCOPE ANALYSIS ===")
	assert.Contains(t, out, "unresolved:")
	assert.Contains(t, out, "\"console\" refs=1")
	assert.Contains(t, out, "ref 0:7 read")
}

func TestRun_MinifyKeepsNames(t *testing.T) {
	code, out, diag := run(t, oracle.ModeMinify, "function f() { var longName = 1; return longName; }\n")

	assert.Equal(t, oracle.ExitOK, code)
	assert.Contains(t, out, "longName")
	assert.Empty(t, diag)
}

// Minified output is the renderer's text byte-for-byte, with nothing
// appended.
func TestRun_MinifyVerbatim(t *testing.T) {
	source := "let a = 1;\nlet b = a + 1;\n"
	code, out, _ := run(t, oracle.ModeMinify, source)

	assert.Equal(t, oracle.ExitOK, code)
	rendered, err := dump.Render([]byte(source), false)
	if assert.Nil(t, err) {
		assert.Equal(t, rendered, out)
	}
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRun_MangleDeterministic(t *testing.T) {
	source := "function f() { var longName = 1; return longName + longName; }\n"
	code1, out1, _ := run(t, oracle.ModeMangle, source)
	code2, out2, _ := run(t, oracle.ModeMangle, source)

	assert.Equal(t, oracle.ExitOK, code1)
	assert.Equal(t, code1, code2)
	assert.Equal(t, out1, out2)
	assert.NotContains(t, out1, "longName")
}

// Unsupported placeholders dominate the exit code even when the parse was
// clean.
func TestRun_UnsupportedNodes(t *testing.T) {
	code, out, diag := run(t, oracle.ModeAST, "var x = <div/>;\n")

	assert.Equal(t, oracle.ExitUnsupported, code)
	assert.Contains(t, out, "?jsx")
	assert.Contains(t, diag, "unsupported AST node(s) encountered")
}

func TestRun_AllSections(t *testing.T) {
	code, out, _ := run(t, oracle.ModeAll, "let x = 1;\n")

	assert.Equal(t, oracle.ExitOK, code)
	assert.Contains(t, out, "=== SOURCE: test.js (11 bytes, 1 lines) ===")
	assert.Contains(t, out, "digest: ")
	for _, header := range []string{
		"=== TOKENS ===", "=== AST ===", "=== MINIFY ===",
		"=== MANGLE ===", "=== SCOPE ANALYSIS ===",
	} {
		assert.Contains(t, out, header)
	}
}

// In all mode a parse error is reported but every later phase still runs.
func TestRun_AllContinuesPastParseErrors(t *testing.T) {
	code, out, diag := run(t, oracle.ModeAll, "let s = \"abc;\n")

	assert.Equal(t, oracle.ExitError, code)
	assert.Contains(t, diag, "=== PARSE ERRORS (")
	assert.Contains(t, out, "=== TOKENS ===")
	assert.Contains(t, out, "=== AST ===")
	assert.Contains(t, out, "=== SCOPE ANALYSIS ===")
}

func TestRun_AllDeterministic(t *testing.T) {
	source := "import m from 'mod';\nexport function f(a) { return m(a) * 2; }\n"
	_, out1, _ := run(t, oracle.ModeAll, source)
	_, out2, _ := run(t, oracle.ModeAll, source)
	assert.Equal(t, out1, out2)
}

func TestDefaultConfig(t *testing.T) {
	config := oracle.DefaultConfig()
	assert.Equal(t, 50, config.NodeSnippetLimit)
	assert.Equal(t, 80, config.TokenTextLimit)
	assert.False(t, config.KeepVarNames)
}
