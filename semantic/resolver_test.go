package semantic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jsoracle/provider"
	"github.com/viant/jsoracle/semantic"
)

func analyze(t *testing.T, source string) *semantic.Analysis {
	t.Helper()
	src := []byte(source)
	result, err := provider.Parse(context.Background(), src)
	if !assert.Nil(t, err) {
		t.FailNow()
	}
	return semantic.Analyze(result.Root(), src)
}

func findBinding(analysis *semantic.Analysis, name string) *semantic.Binding {
	for _, binding := range analysis.Bindings {
		if binding.Name == name {
			return binding
		}
	}
	return nil
}

func TestAnalyze_UnresolvedGlobal(t *testing.T) {
	analysis := analyze(t, "console.log(1);\n")

	assert.Empty(t, analysis.Bindings)
	if !assert.Len(t, analysis.Unresolved, 1) {
		return
	}
	group := analysis.Unresolved[0]
	assert.Equal(t, "console", group.Name)
	if assert.Len(t, group.Refs, 1) {
		assert.Equal(t, 0, group.Refs[0].Start)
		assert.Equal(t, 7, group.Refs[0].End)
		assert.Equal(t, "read", group.Refs[0].Flags())
	}
}

func TestAnalyze_AccessModes(t *testing.T) {
	analysis := analyze(t, "let x = 1; x = 2; x += 3; x++;\n")

	binding := findBinding(analysis, "x")
	if !assert.NotNil(t, binding) {
		return
	}
	assert.Equal(t, semantic.KindLet, binding.Kind)
	assert.Empty(t, analysis.Unresolved)
	if !assert.Len(t, binding.Refs, 3) {
		return
	}
	assert.Equal(t, "write", binding.Refs[0].Flags())
	assert.Equal(t, 11, binding.Refs[0].Start)
	assert.Equal(t, "read|write", binding.Refs[1].Flags())
	assert.Equal(t, "read|write", binding.Refs[2].Flags())
}

func TestAnalyze_FunctionHoisting(t *testing.T) {
	analysis := analyze(t, "f();\nfunction f() {}\n")

	binding := findBinding(analysis, "f")
	if !assert.NotNil(t, binding) {
		return
	}
	assert.Equal(t, semantic.KindFunction, binding.Kind)
	assert.Empty(t, analysis.Unresolved)
	if assert.Len(t, binding.Refs, 1) {
		assert.Equal(t, 0, binding.Refs[0].Start)
		assert.Equal(t, 1, binding.Refs[0].End)
	}
}

func TestAnalyze_VarHoistsToFunctionScope(t *testing.T) {
	analysis := analyze(t, "{ var a = 1; }\na;\n")

	binding := findBinding(analysis, "a")
	if !assert.NotNil(t, binding) {
		return
	}
	assert.Equal(t, semantic.KindVar, binding.Kind)
	assert.Equal(t, 0, binding.Scope)
	assert.Len(t, binding.Refs, 1)
	assert.Empty(t, analysis.Unresolved)
}

func TestAnalyze_LetIsBlockScoped(t *testing.T) {
	analysis := analyze(t, "{ let b = 1; }\nb;\n")

	binding := findBinding(analysis, "b")
	if !assert.NotNil(t, binding) {
		return
	}
	assert.Empty(t, binding.Refs)
	if assert.Len(t, analysis.Unresolved, 1) {
		assert.Equal(t, "b", analysis.Unresolved[0].Name)
	}
}

func TestAnalyze_Parameters(t *testing.T) {
	analysis := analyze(t, "function g(p, {q}, ...r) { return p + q + r; }\n")

	for _, name := range []string{"p", "q", "r"} {
		binding := findBinding(analysis, name)
		if !assert.NotNil(t, binding, "param %s", name) {
			continue
		}
		assert.Equal(t, semantic.KindParam, binding.Kind)
		assert.Len(t, binding.Refs, 1)
	}
	assert.Empty(t, analysis.Unresolved)
}

func TestAnalyze_Imports(t *testing.T) {
	analysis := analyze(t, "import def, { a as b } from 'mod';\ndef(b);\n")

	for _, name := range []string{"def", "b"} {
		binding := findBinding(analysis, name)
		if !assert.NotNil(t, binding, "import %s", name) {
			continue
		}
		assert.Equal(t, semantic.KindImport, binding.Kind)
		assert.Len(t, binding.Refs, 1)
	}
	// The source-module name of an aliased import is not a value reference.
	assert.Nil(t, findBinding(analysis, "a"))
	assert.Empty(t, analysis.Unresolved)
}

func TestAnalyze_CatchParameter(t *testing.T) {
	analysis := analyze(t, "try { f(); } catch (e) { g(e); }\n")

	binding := findBinding(analysis, "e")
	if !assert.NotNil(t, binding) {
		return
	}
	assert.Equal(t, semantic.KindCatch, binding.Kind)
	assert.Len(t, binding.Refs, 1)
}

func TestAnalyze_ShadowingResolvesInnermost(t *testing.T) {
	analysis := analyze(t, "let v = 1;\nfunction h() { let v = 2; return v; }\n")

	outer := analysis.Bindings[0]
	assert.Equal(t, "v", outer.Name)
	assert.Empty(t, outer.Refs)

	inner := analysis.Bindings[len(analysis.Bindings)-1]
	assert.Equal(t, "v", inner.Name)
	assert.NotEqual(t, outer.Scope, inner.Scope)
	assert.Len(t, inner.Refs, 1)
}

func TestAnalyze_LexicalRedeclarationWarns(t *testing.T) {
	analysis := analyze(t, "let d = 1;\nlet d = 2;\n")

	assert.NotEmpty(t, analysis.Warnings)
	assert.Contains(t, analysis.Warnings[0], "redeclaration")
}

// Every reference lands in exactly one place: some binding's ref list or the
// unresolved set, never both and never twice.
func TestAnalyze_ResolutionExclusive(t *testing.T) {
	analysis := analyze(t, "let n = 0;\nn = n + m;\n")

	binding := findBinding(analysis, "n")
	if !assert.NotNil(t, binding) {
		return
	}
	assert.Len(t, binding.Refs, 2)
	if assert.Len(t, analysis.Unresolved, 1) {
		assert.Equal(t, "m", analysis.Unresolved[0].Name)
		assert.Len(t, analysis.Unresolved[0].Refs, 1)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	source := "import x from 'm';\nfunction f(a) { let b = a + x; return b; }\nf(unknown);\n"
	first := analyze(t, source)
	second := analyze(t, source)

	assert.Equal(t, first.ScopeCount, second.ScopeCount)
	if !assert.Equal(t, len(first.Bindings), len(second.Bindings)) {
		return
	}
	for i := range first.Bindings {
		assert.Equal(t, *first.Bindings[i], *second.Bindings[i])
	}
	assert.Equal(t, first.Unresolved, second.Unresolved)
}
