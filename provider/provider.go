// Package provider wraps the external JavaScript front-end: it loads source
// text, parses it with the tree-sitter JavaScript grammar and exposes the
// parse tree, the collected syntax errors and the raw token stream to the
// dumpers. The dumpers consume the tree read-only and never retain nodes
// past a dump call.
package provider

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/viant/afs"
)

// Source is one loaded input file.
type Source struct {
	Location string
	Data     []byte
	Digest   uint64
}

// LoadSource reads the source at location (a plain path or an afs URL) and
// computes its content digest.
func LoadSource(ctx context.Context, location string) (*Source, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	digest, err := Hash(data)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", location, err)
	}
	return &Source{Location: location, Data: data, Digest: digest}, nil
}

// SyntaxError is one error region reported by the parser.
type SyntaxError struct {
	Start   int
	End     int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Start, e.End)
}

// Result holds one parsed source file. The tree is owned by the Result and
// borrowed by dumpers for the duration of a dump call.
type Result struct {
	Source []byte
	tree   *sitter.Tree
	Errors []SyntaxError
}

// Root returns the root node of the parse tree.
func (r *Result) Root() *sitter.Node {
	return r.tree.RootNode()
}

// Parse parses src as JavaScript. The parser is error-tolerant: a Result is
// returned even for malformed input, with the error regions listed in
// Result.Errors. A non-nil error indicates the parser itself failed.
func Parse(ctx context.Context, src []byte) (*Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	result := &Result{Source: src, tree: tree}
	root := tree.RootNode()
	if root.HasError() {
		result.Errors = collectErrors(root, src, nil)
	}
	return result, nil
}

// collectErrors walks the tree gathering ERROR and missing nodes.
func collectErrors(node *sitter.Node, src []byte, errs []SyntaxError) []SyntaxError {
	if node.Type() == "ERROR" {
		errs = append(errs, SyntaxError{
			Start:   int(node.StartByte()),
			End:     int(node.EndByte()),
			Message: "syntax error",
		})
		// Still descend: an ERROR region may contain further missing tokens.
	} else if node.IsMissing() {
		return append(errs, SyntaxError{
			Start:   int(node.StartByte()),
			End:     int(node.EndByte()),
			Message: fmt.Sprintf("missing %s", node.Type()),
		})
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			errs = collectErrors(child, src, errs)
		}
	}
	return errs
}
