// Package semantic resolves the scope and binding structure of a parsed
// JavaScript source. It builds a lexical scope tree over the syntax tree,
// collects declarations with the language's hoisting rules, then resolves
// every value-position identifier to at most one binding; names that resolve
// to nothing are grouped as unresolved globals in first-occurrence order.
package semantic

import "fmt"

// BindKind classifies how a name was introduced.
type BindKind string

const (
	KindVar      BindKind = "var"
	KindLet      BindKind = "let"
	KindConst    BindKind = "const"
	KindFunction BindKind = "function"
	KindClass    BindKind = "class"
	KindParam    BindKind = "param"
	KindCatch    BindKind = "catch"
	KindImport   BindKind = "import"
)

// Reference is one resolved or unresolved use of a name.
type Reference struct {
	Start int
	End   int
	Read  bool
	Write bool
}

// Flags renders the access mode of the reference.
func (r Reference) Flags() string {
	switch {
	case r.Read && r.Write:
		return "read|write"
	case r.Write:
		return "write"
	default:
		return "read"
	}
}

// Binding is one declared name. IDs are assigned in declaration order and
// stable run-to-run; Refs are in first-seen source order.
type Binding struct {
	ID    int
	Name  string
	Scope int
	Kind  BindKind
	Refs  []Reference
}

// Unresolved groups references to a name no scope declares.
type Unresolved struct {
	Name string
	Refs []Reference
}

// Analysis is the full binding graph of one source file.
type Analysis struct {
	ScopeCount int
	Bindings   []*Binding
	Unresolved []*Unresolved
	Warnings   []string
}

// scope is one lexical scope. Children are keyed by the defining node's span
// so the resolve pass re-enters the same scopes the collect pass built.
type scope struct {
	id       int
	kind     string
	parent   *scope
	bindings map[string]*Binding
	children map[uint64]*scope
}

func (s *scope) lookup(name string) *Binding {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// hoistTarget returns the nearest enclosing function or module scope, where
// var and function declarations land.
func (s *scope) hoistTarget() *scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.kind == "function" || cur.kind == "program" {
			return cur
		}
	}
	return s
}

func (a *Analysis) warnf(format string, args ...interface{}) {
	a.Warnings = append(a.Warnings, fmt.Sprintf(format, args...))
}
