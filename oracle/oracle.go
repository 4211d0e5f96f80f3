// Package oracle sequences the dump phases for one invocation: load, parse,
// dispatch on mode, derive the exit code. Standard output carries only the
// snapshot; everything diagnostic goes to the Diag writer.
package oracle

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/jsoracle/dump"
	"github.com/viant/jsoracle/provider"
	"github.com/viant/jsoracle/semantic"
)

// Mode selects which snapshot an invocation renders.
type Mode string

const (
	ModeTokens Mode = "tokens"
	ModeAST    Mode = "ast"
	ModeMinify Mode = "minify"
	ModeMangle Mode = "mangle"
	ModeScope  Mode = "scope"
	ModeAll    Mode = "all"
)

// ParseMode maps a command-line mode word, including the lex/parse aliases,
// to a Mode.
func ParseMode(word string) (Mode, error) {
	switch strings.ToLower(word) {
	case "lex", "tokens":
		return ModeTokens, nil
	case "ast", "parse":
		return ModeAST, nil
	case "minify":
		return ModeMinify, nil
	case "mangle":
		return ModeMangle, nil
	case "scope":
		return ModeScope, nil
	case "all":
		return ModeAll, nil
	}
	return "", fmt.Errorf("unknown mode %q", word)
}

// Exit codes. Unsupported nodes are checked last and override a clean parse.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUnsupported = 2
)

// Oracle runs dump invocations. Out and Diag default to the process streams.
type Oracle struct {
	Out    io.Writer
	Diag   io.Writer
	Config *Config
}

// New returns an oracle writing to stdout/stderr with the given config
// (nil means defaults).
func New(config *Config) *Oracle {
	if config == nil {
		config = DefaultConfig()
	}
	return &Oracle{Out: os.Stdout, Diag: os.Stderr, Config: config}
}

// Run loads and parses the source at location, renders the snapshot for
// mode, and returns the process exit code.
func (o *Oracle) Run(ctx context.Context, mode Mode, location string) int {
	source, err := provider.LoadSource(ctx, location)
	if err != nil {
		fmt.Fprintf(o.Diag, "error: %v\n", err)
		return ExitError
	}
	return o.RunSource(ctx, mode, source)
}

// RunSource renders the snapshot for an already loaded source.
func (o *Oracle) RunSource(ctx context.Context, mode Mode, source *provider.Source) int {
	result, err := provider.Parse(ctx, source.Data)
	if err != nil {
		fmt.Fprintf(o.Diag, "error: %v\n", err)
		return ExitError
	}

	switch mode {
	case ModeTokens:
		// Tokenization is total: the stream dumps cleanly whether or not
		// the source parses, and the exit code ignores parse errors.
		o.dumpTokens(result)
		return ExitOK
	case ModeAST:
		if o.reportParseErrors(result) {
			return ExitError
		}
		unsupported := o.dumpTree(result)
		return o.exitAfterParse(result, unsupported)
	case ModeMinify, ModeMangle:
		if o.reportParseErrors(result) {
			return ExitError
		}
		if !o.dumpRendered(source.Data, mode == ModeMangle) {
			return ExitError
		}
		return ExitOK
	case ModeScope:
		if o.reportParseErrors(result) {
			return ExitError
		}
		o.dumpScope(result)
		return ExitOK
	case ModeAll:
		return o.runAll(source, result)
	}
	fmt.Fprintf(o.Diag, "error: unknown mode %q\n", mode)
	return ExitError
}

// runAll renders every section best-effort: parse errors are reported but do
// not stop the later phases.
func (o *Oracle) runAll(source *provider.Source, result *provider.Result) int {
	fmt.Fprintf(o.Out, "=== SOURCE: %s (%d bytes, %d lines) ===\n",
		source.Location, len(source.Data), lineCount(source.Data))
	fmt.Fprintf(o.Out, "digest: %016x\n", source.Digest)

	o.dumpTokens(result)
	o.reportParseErrors(result)
	unsupported := o.dumpTree(result)

	for _, phase := range []struct {
		header string
		mangle bool
	}{
		{"=== MINIFY ===", false},
		{"=== MANGLE ===", true},
	} {
		fmt.Fprintln(o.Out, phase.header)
		if rendered, err := dump.Render(source.Data, phase.mangle && !o.Config.KeepVarNames); err != nil {
			fmt.Fprintf(o.Diag, "warning: %v\n", err)
		} else {
			// Separator between sections; the rendered text itself stays
			// verbatim.
			fmt.Fprint(o.Out, rendered)
			fmt.Fprintln(o.Out)
		}
	}

	o.dumpScope(result)
	return o.exitAfterParse(result, unsupported)
}

func (o *Oracle) dumpTokens(result *provider.Result) {
	dump.NewTokenDumper(o.Out, result.Source).
		TextLimit(o.Config.TokenTextLimit).
		Dump(result.Tokens())
}

func (o *Oracle) dumpTree(result *provider.Result) int {
	dumper := dump.NewTreeDumper(o.Out, o.Diag, result.Source).
		SnippetLimit(o.Config.NodeSnippetLimit)
	dumper.Dump(result.Root())
	return dumper.Unsupported()
}

func (o *Oracle) dumpScope(result *provider.Result) {
	analysis := semantic.Analyze(result.Root(), result.Source)
	dump.NewScopeDumper(o.Out, o.Diag).Dump(analysis)
}

// dumpRendered writes the minified text exactly as the minifier produced
// it, with no framing around it.
func (o *Oracle) dumpRendered(src []byte, mangle bool) bool {
	rendered, err := dump.Render(src, mangle && !o.Config.KeepVarNames)
	if err != nil {
		fmt.Fprintf(o.Diag, "error: %v\n", err)
		return false
	}
	fmt.Fprint(o.Out, rendered)
	return true
}

// reportParseErrors writes the parse-error section to the diagnostic
// channel and reports whether there were any.
func (o *Oracle) reportParseErrors(result *provider.Result) bool {
	if len(result.Errors) == 0 {
		return false
	}
	fmt.Fprintf(o.Diag, "=== PARSE ERRORS (%d) ===\n", len(result.Errors))
	for _, parseErr := range result.Errors {
		fmt.Fprintf(o.Diag, "  %s\n", parseErr.Error())
	}
	return true
}

// exitAfterParse derives the final exit code. Unsupported nodes dominate:
// an incomplete snapshot must never be mistaken for a clean one.
func (o *Oracle) exitAfterParse(result *provider.Result, unsupported int) int {
	if unsupported > 0 {
		fmt.Fprintf(o.Diag, "error: %d unsupported AST node(s) encountered\n", unsupported)
		return ExitUnsupported
	}
	if len(result.Errors) > 0 {
		return ExitError
	}
	return ExitOK
}

func lineCount(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	count := strings.Count(string(data), "\n")
	if data[len(data)-1] != '\n' {
		count++
	}
	return count
}
