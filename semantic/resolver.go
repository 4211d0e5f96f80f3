package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"
)

type analyzer struct {
	src      []byte
	analysis *Analysis
	root     *scope
	scopes   int
	// declSites marks identifier nodes that introduce a binding, so the
	// resolve pass does not also count them as references.
	declSites  map[uint64]bool
	unresolved map[string]*Unresolved
}

// Analyze builds the binding graph for the tree rooted at root. It never
// fails: semantic irregularities are reported in Analysis.Warnings.
func Analyze(root *sitter.Node, src []byte) *Analysis {
	a := &analyzer{
		src:        src,
		analysis:   &Analysis{},
		declSites:  map[uint64]bool{},
		unresolved: map[string]*Unresolved{},
	}
	a.root = a.newScope(nil, "program")
	a.collect(root, a.root)
	a.resolve(root, a.root)
	a.analysis.ScopeCount = a.scopes
	return a.analysis
}

func nodeKey(n *sitter.Node) uint64 {
	return uint64(n.StartByte())<<32 | uint64(n.EndByte())
}

func (a *analyzer) newScope(parent *scope, kind string) *scope {
	s := &scope{
		id:       a.scopes,
		kind:     kind,
		parent:   parent,
		bindings: map[string]*Binding{},
		children: map[uint64]*scope{},
	}
	a.scopes++
	return s
}

// enterScope creates a child scope of parent keyed by n, so the resolve pass
// finds it again.
func (a *analyzer) enterScope(parent *scope, kind string, n *sitter.Node) *scope {
	s := a.newScope(parent, kind)
	parent.children[nodeKey(n)] = s
	return s
}

func (a *analyzer) content(n *sitter.Node) string {
	return n.Content(a.src)
}

func (a *analyzer) declare(sc *scope, id *sitter.Node, kind BindKind) {
	name := a.content(id)
	a.declSites[nodeKey(id)] = true
	if existing, ok := sc.bindings[name]; ok {
		// var/function redeclaration merges; lexical redeclaration is an
		// irregularity the dump reports but survives.
		if kind == KindLet || kind == KindConst || kind == KindClass ||
			existing.Kind == KindLet || existing.Kind == KindConst || existing.Kind == KindClass {
			a.analysis.warnf("redeclaration of %q at %d:%d", name, id.StartByte(), id.EndByte())
		}
		return
	}
	binding := &Binding{
		ID:    len(a.analysis.Bindings),
		Name:  name,
		Scope: sc.id,
		Kind:  kind,
	}
	sc.bindings[name] = binding
	a.analysis.Bindings = append(a.analysis.Bindings, binding)
}

// declarePattern declares every name bound by a binding pattern (plain
// identifier, destructuring, defaults, rest).
func (a *analyzer) declarePattern(pattern *sitter.Node, sc *scope, kind BindKind) {
	if pattern == nil {
		return
	}
	switch pattern.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		a.declare(sc, pattern, kind)
	case "object_pattern", "array_pattern":
		for i := 0; i < int(pattern.NamedChildCount()); i++ {
			a.declarePattern(pattern.NamedChild(i), sc, kind)
		}
	case "pair_pattern":
		a.declarePattern(pattern.ChildByFieldName("value"), sc, kind)
	case "assignment_pattern", "object_assignment_pattern":
		a.declarePattern(pattern.ChildByFieldName("left"), sc, kind)
	case "rest_pattern", "rest_parameter":
		for i := 0; i < int(pattern.NamedChildCount()); i++ {
			a.declarePattern(pattern.NamedChild(i), sc, kind)
		}
	}
}

func (a *analyzer) declareParams(fn *sitter.Node, sc *scope) {
	if params := fn.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			a.declarePattern(params.NamedChild(i), sc, KindParam)
		}
		return
	}
	// Single-identifier arrow parameter.
	if param := fn.ChildByFieldName("parameter"); param != nil {
		a.declarePattern(param, sc, KindParam)
	}
}

// collect is the declaration pass: it builds the scope tree and registers
// every binding, honoring hoisting.
func (a *analyzer) collect(n *sitter.Node, sc *scope) {
	switch n.Type() {
	case "variable_declaration":
		a.collectDeclarators(n, sc.hoistTarget(), KindVar, sc)
		return
	case "lexical_declaration":
		kind := KindLet
		if hasAnonChild(n, "const") {
			kind = KindConst
		}
		a.collectDeclarators(n, sc, kind, sc)
		return
	case "function_declaration", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc.hoistTarget(), name, KindFunction)
		}
		a.collectFunction(n, sc)
		return
	case "function", "function_expression", "generator_function":
		inner := a.enterScope(sc, "function", n)
		// A function expression's own name is visible only inside it.
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(inner, name, KindFunction)
		}
		a.declareParams(n, inner)
		a.collectChildren(n, inner)
		return
	case "arrow_function", "method_definition":
		a.collectFunction(n, sc)
		return
	case "class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, KindClass)
		}
		a.collectChildren(n, sc)
		return
	case "class":
		inner := a.enterScope(sc, "block", n)
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(inner, name, KindClass)
		}
		a.collectChildren(n, inner)
		return
	case "statement_block", "switch_body", "class_static_block":
		inner := a.enterScope(sc, "block", n)
		a.collectChildren(n, inner)
		return
	case "for_statement", "for_in_statement":
		inner := a.enterScope(sc, "block", n)
		if kind := n.ChildByFieldName("kind"); kind != nil {
			// for (let x of xs) / for (var x in o)
			bindKind := BindKind(kind.Type())
			target := inner
			if bindKind == KindVar {
				target = inner.hoistTarget()
			}
			a.declarePattern(n.ChildByFieldName("left"), target, bindKind)
		}
		a.collectChildren(n, inner)
		return
	case "catch_clause":
		inner := a.enterScope(sc, "block", n)
		a.declarePattern(n.ChildByFieldName("parameter"), inner, KindCatch)
		a.collectChildren(n, inner)
		return
	case "import_statement":
		a.collectImport(n, sc)
		return
	}
	a.collectChildren(n, sc)
}

func (a *analyzer) collectChildren(n *sitter.Node, sc *scope) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		a.collect(n.NamedChild(i), sc)
	}
}

func (a *analyzer) collectFunction(fn *sitter.Node, sc *scope) {
	inner := a.enterScope(sc, "function", fn)
	a.declareParams(fn, inner)
	a.collectChildren(fn, inner)
}

// collectDeclarators declares the names of a var/let/const statement into
// target and keeps walking initializers in the surrounding scope.
func (a *analyzer) collectDeclarators(decl *sitter.Node, target *scope, kind BindKind, walk *scope) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		a.declarePattern(declarator.ChildByFieldName("name"), target, kind)
		if value := declarator.ChildByFieldName("value"); value != nil {
			a.collect(value, walk)
		}
	}
}

// collectImport binds the local names an import statement introduces at
// module scope.
func (a *analyzer) collectImport(n *sitter.Node, sc *scope) {
	module := sc.hoistTarget()
	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			spec := clause.NamedChild(j)
			switch spec.Type() {
			case "identifier":
				a.declare(module, spec, KindImport)
			case "namespace_import":
				for k := 0; k < int(spec.NamedChildCount()); k++ {
					if id := spec.NamedChild(k); id.Type() == "identifier" {
						a.declare(module, id, KindImport)
					}
				}
			case "named_imports":
				for k := 0; k < int(spec.NamedChildCount()); k++ {
					importSpec := spec.NamedChild(k)
					if importSpec.Type() != "import_specifier" {
						continue
					}
					local := importSpec.ChildByFieldName("alias")
					if local == nil {
						local = importSpec.ChildByFieldName("name")
					}
					if local != nil {
						a.declare(module, local, KindImport)
					}
				}
			}
		}
	}
}

// resolve is the reference pass: it re-walks the tree through the scope tree
// built by collect and resolves every value-position identifier.
func (a *analyzer) resolve(n *sitter.Node, sc *scope) {
	if child, ok := sc.children[nodeKey(n)]; ok {
		sc = child
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier":
		if !a.declSites[nodeKey(n)] {
			a.reference(n, sc)
		}
		return
	case "import_statement":
		// Module specifiers and import names are not value references.
		return
	case "export_statement":
		a.resolveExport(n, sc)
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		a.resolve(n.NamedChild(i), sc)
	}
}

// resolveExport walks an export statement but skips re-export specifiers,
// which reference the module graph rather than local values. A local
// `export {x}` clause does reference x.
func (a *analyzer) resolveExport(n *sitter.Node, sc *scope) {
	fromExternal := n.ChildByFieldName("source") != nil
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "export_clause" {
			if fromExternal {
				continue
			}
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Type() != "export_specifier" {
					continue
				}
				if name := spec.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
					a.reference(name, sc)
				}
			}
			continue
		}
		if child.Type() == "namespace_export" || child.Type() == "string" {
			continue
		}
		a.resolve(child, sc)
	}
}

// reference records one use of an identifier, resolved against the scope
// chain or filed under the unresolved set.
func (a *analyzer) reference(id *sitter.Node, sc *scope) {
	ref := Reference{
		Start: int(id.StartByte()),
		End:   int(id.EndByte()),
	}
	ref.Read, ref.Write = accessMode(id)

	name := a.content(id)
	if binding := sc.lookup(name); binding != nil {
		binding.Refs = append(binding.Refs, ref)
		return
	}
	group, ok := a.unresolved[name]
	if !ok {
		group = &Unresolved{Name: name}
		a.unresolved[name] = group
		a.analysis.Unresolved = append(a.analysis.Unresolved, group)
	}
	group.Refs = append(group.Refs, ref)
}

// accessMode derives read/write flags from the reference's syntactic
// position: plain assignment targets are pure writes, compound assignment
// and update targets are read-writes, everything else is a read.
func accessMode(id *sitter.Node) (read, write bool) {
	parent := id.Parent()
	if parent == nil {
		return true, false
	}
	switch parent.Type() {
	case "assignment_expression":
		if left := parent.ChildByFieldName("left"); left != nil && sameNode(left, id) {
			return false, true
		}
	case "augmented_assignment_expression":
		if left := parent.ChildByFieldName("left"); left != nil && sameNode(left, id) {
			return true, true
		}
	case "update_expression":
		return true, true
	}
	return true, false
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func hasAnonChild(n *sitter.Node, spelling string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.IsNamed() && child.Type() == spelling {
			return true
		}
	}
	return false
}
