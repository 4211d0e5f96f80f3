package dump

import (
	"fmt"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// TreeDumper renders a deterministic pre-order dump of the syntax tree, one
// line per node: `<indent><kind> [detail] <start>:<end>`. Node kinds outside
// the covered grammar subset are rendered as `?<kind>` placeholders, warned
// about on the diagnostic writer and counted; the dump never drops a subtree
// silently.
type TreeDumper struct {
	out          io.Writer
	diag         io.Writer
	src          []byte
	snippetLimit int
	unsupported  int
}

// NewTreeDumper returns a dumper for src writing the dump to out and
// warnings to diag.
func NewTreeDumper(out, diag io.Writer, src []byte) *TreeDumper {
	return &TreeDumper{out: out, diag: diag, src: src, snippetLimit: NodeSnippetLimit}
}

// SnippetLimit overrides the per-node snippet limit.
func (t *TreeDumper) SnippetLimit(limit int) *TreeDumper {
	if limit > 0 {
		t.snippetLimit = limit
	}
	return t
}

// Unsupported returns the number of placeholder nodes emitted by the last
// Dump call.
func (t *TreeDumper) Unsupported() int {
	return t.unsupported
}

// Dump writes the === AST === header followed by the whole tree.
func (t *TreeDumper) Dump(root *sitter.Node) {
	t.unsupported = 0
	fmt.Fprintln(t.out, "=== AST ===")
	t.renderProgram(root)
}

func (t *TreeDumper) pr(d int, kind, detail string, n *sitter.Node) {
	t.prAt(d, kind, detail, int(n.StartByte()), int(n.EndByte()))
}

func (t *TreeDumper) prAt(d int, kind, detail string, start, end int) {
	indent := strings.Repeat("  ", d)
	if detail == "" {
		fmt.Fprintf(t.out, "%s%s %d:%d\n", indent, kind, start, end)
	} else {
		fmt.Fprintf(t.out, "%s%s %s %d:%d\n", indent, kind, EscapeLine(detail), start, end)
	}
}

func (t *TreeDumper) unsupportedNode(n *sitter.Node, d int) {
	t.unsupported++
	start, end := int(n.StartByte()), int(n.EndByte())
	t.pr(d, "?"+n.Type(), Snippet(t.src, start, end, t.snippetLimit), n)
	fmt.Fprintf(t.diag, "warning: unsupported node %s at %d:%d\n", n.Type(), start, end)
}

func (t *TreeDumper) content(n *sitter.Node) string {
	return n.Content(t.src)
}

func (t *TreeDumper) snip(n *sitter.Node) string {
	return Snippet(t.src, int(n.StartByte()), int(n.EndByte()), t.snippetLimit)
}

// hasAnon reports whether n has a direct anonymous child with the given
// spelling (async markers, optional chains, default keywords, ...).
func hasAnon(n *sitter.Node, spelling string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.IsNamed() && child.Type() == spelling {
			return true
		}
	}
	return false
}

// childOfType returns the first named child of the given type, or nil.
func childOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// fieldOf returns the first non-nil field among names; grammar revisions
// occasionally rename fields, the dump must not care.
func fieldOf(n *sitter.Node, names ...string) *sitter.Node {
	for _, name := range names {
		if child := n.ChildByFieldName(name); child != nil {
			return child
		}
	}
	return nil
}

func isOptionalChain(n *sitter.Node) bool {
	return childOfType(n, "optional_chain") != nil || hasAnon(n, "?.")
}

func trimQuotes(s string) string {
	return strings.Trim(s, "'\"`")
}

// Canonical operator names. Unknown operators fall back to their source
// spelling, which is still deterministic.
var binaryOps = map[string]string{
	"+": "Add", "-": "Sub", "*": "Mul", "/": "Div", "%": "Mod", "**": "Exp",
	"<": "Lt", ">": "Gt", "<=": "Le", ">=": "Ge",
	"==": "Eq", "!=": "Neq", "===": "StrictEq", "!==": "StrictNeq",
	"<<": "ShiftLeft", ">>": "ShiftRight", ">>>": "UShiftRight",
	"&": "BitAnd", "|": "BitOr", "^": "BitXor",
	"in": "In", "instanceof": "Instanceof",
}

var logicalOps = map[string]string{
	"&&": "And", "||": "Or", "??": "Coalesce",
}

var unaryOps = map[string]string{
	"!": "Not", "~": "BitNot", "-": "Neg", "+": "Pos",
	"typeof": "Typeof", "void": "Void", "delete": "Delete",
}

var assignOps = map[string]string{
	"=": "Assign", "+=": "AddAssign", "-=": "SubAssign", "*=": "MulAssign",
	"/=": "DivAssign", "%=": "ModAssign", "**=": "ExpAssign",
	"<<=": "ShiftLeftAssign", ">>=": "ShiftRightAssign", ">>>=": "UShiftRightAssign",
	"&=": "BitAndAssign", "|=": "BitOrAssign", "^=": "BitXorAssign",
	"&&=": "AndAssign", "||=": "OrAssign", "??=": "CoalesceAssign",
}

func opName(table map[string]string, spelling string) string {
	if name, ok := table[spelling]; ok {
		return name
	}
	return spelling
}

// renderProgram prints the Program line, then hashbang and leading
// directives, then the body.
func (t *TreeDumper) renderProgram(root *sitter.Node) {
	t.pr(0, "Program", "", root)
	directivePrologue := true
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch {
		case child.Type() == "comment":
		case child.Type() == "hash_bang_line":
			t.pr(1, "Hashbang", strings.TrimPrefix(t.content(child), "#!"), child)
		case directivePrologue && isDirective(child):
			value := trimQuotes(t.content(child.NamedChild(0)))
			t.pr(1, "Directive", value, child)
		default:
			directivePrologue = false
			t.render(child, 1)
		}
	}
}

// isDirective reports whether stmt is an expression statement holding a bare
// string literal ("use strict" and friends).
func isDirective(stmt *sitter.Node) bool {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return false
	}
	return stmt.NamedChild(0).Type() == "string"
}

// renderChildren renders every named child (comments skipped) at depth d.
func (t *TreeDumper) renderChildren(n *sitter.Node, d int) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		t.render(child, d)
	}
}

// render emits one node and its subtree. This is the canonical dispatch over
// the grammar; anything without an explicit rule lands on the placeholder
// path at the bottom.
func (t *TreeDumper) render(n *sitter.Node, d int) {
	// Error-recovery artifacts are part of the parse-error story, not the
	// unsupported-node one; render them without touching the counter.
	if n.IsMissing() {
		t.pr(d, "Missing", n.Type(), n)
		return
	}
	if n.Type() == "ERROR" {
		t.pr(d, "Error", t.snip(n), n)
		t.renderChildren(n, d+1)
		return
	}

	switch n.Type() {

	// -- Statements --
	case "statement_block":
		t.pr(d, "Block", "", n)
		t.renderChildren(n, d+1)
	case "expression_statement":
		t.pr(d, "ExprStmt", "", n)
		t.renderChildren(n, d+1)
	case "if_statement":
		t.pr(d, "If", "", n)
		t.render(n.ChildByFieldName("condition"), d+1)
		t.render(n.ChildByFieldName("consequence"), d+1)
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			t.renderElse(alt, d+1)
		}
	case "while_statement":
		t.pr(d, "While", "", n)
		t.render(n.ChildByFieldName("condition"), d+1)
		t.render(n.ChildByFieldName("body"), d+1)
	case "do_statement":
		t.pr(d, "DoWhile", "", n)
		t.render(n.ChildByFieldName("body"), d+1)
		t.render(n.ChildByFieldName("condition"), d+1)
	case "for_statement":
		t.pr(d, "For", "", n)
		t.renderForClause(n.ChildByFieldName("initializer"), d+1)
		t.renderForClause(n.ChildByFieldName("condition"), d+1)
		t.renderForClause(n.ChildByFieldName("increment"), d+1)
		t.render(n.ChildByFieldName("body"), d+1)
	case "for_in_statement":
		kind, detail := "ForIn", ""
		if op := n.ChildByFieldName("operator"); op != nil && op.Type() == "of" {
			kind = "ForOf"
		} else if op == nil && hasAnon(n, "of") {
			kind = "ForOf"
		}
		if kind == "ForOf" && hasAnon(n, "await") {
			detail = "await"
		}
		t.pr(d, kind, detail, n)
		t.renderForLeft(n, d+1)
		t.render(n.ChildByFieldName("right"), d+1)
		t.render(n.ChildByFieldName("body"), d+1)
	case "switch_statement":
		t.pr(d, "Switch", "", n)
		if cond := fieldOf(n, "value", "condition"); cond != nil {
			t.render(cond, d+1)
		}
		body := n.ChildByFieldName("body")
		for i := 0; i < int(body.NamedChildCount()); i++ {
			t.renderSwitchCase(body.NamedChild(i), d+1)
		}
	case "try_statement":
		t.pr(d, "Try", "", n)
		t.render(n.ChildByFieldName("body"), d+1)
		if handler := n.ChildByFieldName("handler"); handler != nil {
			t.pr(d+1, "Catch", "", handler)
			if param := handler.ChildByFieldName("parameter"); param != nil {
				t.render(param, d+2)
			}
			t.render(handler.ChildByFieldName("body"), d+2)
		}
		if finalizer := n.ChildByFieldName("finalizer"); finalizer != nil {
			t.pr(d+1, "Finally", "", finalizer)
			if block := fieldOf(finalizer, "body"); block != nil {
				t.renderChildren(block, d+2)
			} else if block := childOfType(finalizer, "statement_block"); block != nil {
				t.renderChildren(block, d+2)
			}
		}
	case "return_statement":
		t.pr(d, "Return", "", n)
		t.renderChildren(n, d+1)
	case "throw_statement":
		t.pr(d, "Throw", "", n)
		t.renderChildren(n, d+1)
	case "break_statement":
		t.pr(d, "Break", t.labelOf(n), n)
	case "continue_statement":
		t.pr(d, "Continue", t.labelOf(n), n)
	case "labeled_statement":
		t.pr(d, "Labeled", t.content(n.ChildByFieldName("label")), n)
		t.render(n.ChildByFieldName("body"), d+1)
	case "empty_statement":
		t.pr(d, "Empty", "", n)
	case "debugger_statement":
		t.pr(d, "Debugger", "", n)
	case "with_statement":
		t.pr(d, "With", "", n)
		t.render(n.ChildByFieldName("object"), d+1)
		t.render(n.ChildByFieldName("body"), d+1)

	// -- Declarations --
	case "variable_declaration":
		t.renderVarDecl(n, "var", d)
	case "lexical_declaration":
		kind := "let"
		if field := n.ChildByFieldName("kind"); field != nil {
			kind = field.Type()
		} else if hasAnon(n, "const") {
			kind = "const"
		}
		t.renderVarDecl(n, kind, d)
	case "function_declaration", "generator_function_declaration":
		t.renderFunction(n, "FuncDecl", true, d)
	case "class_declaration":
		t.renderClass(n, "Class", d)

	// -- Modules --
	case "import_statement":
		t.renderImport(n, d)
	case "export_statement":
		t.renderExport(n, d)

	// -- Leaves --
	case "identifier":
		t.pr(d, "Ident", t.content(n), n)
	case "undefined":
		t.pr(d, "Ident", "undefined", n)
	case "property_identifier":
		t.pr(d, "Ident", t.content(n), n)
	case "private_property_identifier":
		t.pr(d, "PrivateIdent", t.content(n), n)
	case "number":
		// The grammar folds bigint literals into the number token.
		if strings.HasSuffix(t.content(n), "n") {
			t.pr(d, "BigInt", t.snip(n), n)
		} else {
			t.pr(d, "NumLit", t.snip(n), n)
		}
	case "string":
		t.pr(d, "StrLit", t.snip(n), n)
	case "true":
		t.pr(d, "true", "", n)
	case "false":
		t.pr(d, "false", "", n)
	case "null":
		t.pr(d, "null", "", n)
	case "regex":
		t.pr(d, "Regex", t.snip(n), n)
	case "this":
		t.pr(d, "this", "", n)
	case "super":
		t.pr(d, "super", "", n)

	// -- Operators --
	case "binary_expression":
		op := t.content(n.ChildByFieldName("operator"))
		if name, ok := logicalOps[op]; ok {
			t.pr(d, "Logical", name, n)
		} else {
			t.pr(d, "Binary", opName(binaryOps, op), n)
		}
		t.render(n.ChildByFieldName("left"), d+1)
		t.render(n.ChildByFieldName("right"), d+1)
	case "unary_expression":
		op := t.content(n.ChildByFieldName("operator"))
		t.pr(d, "Unary", opName(unaryOps, op), n)
		t.render(n.ChildByFieldName("argument"), d+1)
	case "update_expression":
		arg := n.ChildByFieldName("argument")
		op := n.ChildByFieldName("operator")
		name := "Incr"
		if t.content(op) == "--" {
			name = "Decr"
		}
		position := "postfix"
		if op.StartByte() < arg.StartByte() {
			position = "prefix"
		}
		t.pr(d, "Update", name+" "+position, n)
		t.render(arg, d+1)
	case "assignment_expression":
		t.pr(d, "Assign", "Assign", n)
		t.render(n.ChildByFieldName("left"), d+1)
		t.render(n.ChildByFieldName("right"), d+1)
	case "augmented_assignment_expression":
		op := t.content(n.ChildByFieldName("operator"))
		t.pr(d, "Assign", opName(assignOps, op), n)
		t.render(n.ChildByFieldName("left"), d+1)
		t.render(n.ChildByFieldName("right"), d+1)
	case "ternary_expression":
		t.pr(d, "Ternary", "", n)
		t.render(n.ChildByFieldName("condition"), d+1)
		t.render(n.ChildByFieldName("consequence"), d+1)
		t.render(n.ChildByFieldName("alternative"), d+1)

	// -- Calls and member access --
	case "call_expression":
		t.renderCall(n, d)
	case "new_expression":
		t.pr(d, "New", "", n)
		t.render(n.ChildByFieldName("constructor"), d+1)
		if args := n.ChildByFieldName("arguments"); args != nil {
			t.renderChildren(args, d+1)
		}
	case "member_expression":
		property := n.ChildByFieldName("property")
		name := t.content(property)
		optional := isOptionalChain(n)
		if property.Type() == "private_property_identifier" {
			if optional {
				name = "?." + name
			}
			t.pr(d, "PrivateField", name, n)
		} else {
			if optional {
				name = "?." + name
			}
			t.pr(d, "Member", name, n)
		}
		t.render(n.ChildByFieldName("object"), d+1)
	case "subscript_expression":
		detail := "[]"
		if isOptionalChain(n) {
			detail = "?.[]"
		}
		t.pr(d, "Index", detail, n)
		t.render(n.ChildByFieldName("object"), d+1)
		t.render(n.ChildByFieldName("index"), d+1)

	// -- Collections --
	case "array":
		t.renderArrayLike(n, "Array", d)
	case "object":
		t.pr(d, "Object", "", n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			t.renderObjectMember(n.NamedChild(i), d+1)
		}
	case "spread_element":
		t.pr(d, "Spread", "", n)
		t.renderChildren(n, d+1)

	// -- Functions and classes --
	case "function", "function_expression", "generator_function":
		t.renderFunction(n, "FuncExpr", true, d)
	case "arrow_function":
		t.renderArrow(n, d)
	case "class":
		t.renderClass(n, "ClassExpr", d)

	// -- Templates --
	case "template_string":
		t.renderTemplate(n, d)

	// -- Other expressions --
	case "sequence_expression":
		t.pr(d, "Sequence", "", n)
		t.renderChildren(n, d+1)
	case "await_expression":
		t.pr(d, "Await", "", n)
		t.renderChildren(n, d+1)
	case "yield_expression":
		detail := ""
		if hasAnon(n, "*") {
			detail = "*"
		}
		t.pr(d, "Yield", detail, n)
		t.renderChildren(n, d+1)
	case "parenthesized_expression":
		// Transparent: the dump has no paren nodes.
		t.renderChildren(n, d)

	// -- Patterns --
	case "object_pattern":
		t.pr(d, "ObjPattern", "", n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			t.renderObjectPatternProp(n.NamedChild(i), d+1)
		}
	case "array_pattern":
		t.renderArrayLike(n, "ArrPattern", d)
	case "assignment_pattern", "object_assignment_pattern":
		t.pr(d, "AssignPattern", "", n)
		t.render(n.ChildByFieldName("left"), d+1)
		t.render(n.ChildByFieldName("right"), d+1)
	case "rest_pattern", "rest_parameter":
		t.pr(d, "Rest", "", n)
		t.renderChildren(n, d+1)
	case "computed_property_name":
		t.renderChildren(n, d)

	case "comment":
		// Extras; never part of the canonical dump.

	default:
		t.unsupportedNode(n, d)
	}
}

func (t *TreeDumper) labelOf(n *sitter.Node) string {
	if label := n.ChildByFieldName("label"); label != nil {
		return t.content(label)
	}
	return ""
}

// renderElse unwraps an else_clause (older grammars attach the statement
// directly).
func (t *TreeDumper) renderElse(alt *sitter.Node, d int) {
	if alt.Type() == "else_clause" {
		t.renderChildren(alt, d)
		return
	}
	t.render(alt, d)
}

// renderForClause unwraps the statement wrappers the grammar puts around
// classic for-header clauses.
func (t *TreeDumper) renderForClause(clause *sitter.Node, d int) {
	if clause == nil {
		return
	}
	switch clause.Type() {
	case "empty_statement":
	case "expression_statement":
		t.renderChildren(clause, d)
	default:
		t.render(clause, d)
	}
}

func (t *TreeDumper) renderForLeft(n *sitter.Node, d int) {
	left := n.ChildByFieldName("left")
	if left == nil {
		return
	}
	// `for (var x in ...)`: the declaration keyword belongs to the header,
	// the left field is the binding target.
	if kind := n.ChildByFieldName("kind"); kind != nil {
		t.prAt(d, "VarDecl", kind.Type(), int(kind.StartByte()), int(left.EndByte()))
		t.prAt(d+1, "Declarator", "", int(left.StartByte()), int(left.EndByte()))
		t.render(left, d+2)
		return
	}
	t.render(left, d)
}

func (t *TreeDumper) renderSwitchCase(c *sitter.Node, d int) {
	switch c.Type() {
	case "switch_case":
		t.pr(d, "Case", "", c)
		for i := 0; i < int(c.NamedChildCount()); i++ {
			t.render(c.NamedChild(i), d+1)
		}
	case "switch_default":
		t.pr(d, "Default", "", c)
		t.renderChildren(c, d+1)
	case "comment":
	default:
		t.unsupportedNode(c, d)
	}
}

func (t *TreeDumper) renderVarDecl(n *sitter.Node, kind string, d int) {
	t.pr(d, "VarDecl", kind, n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		decl := n.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		t.pr(d+1, "Declarator", "", decl)
		t.render(decl.ChildByFieldName("name"), d+2)
		if value := decl.ChildByFieldName("value"); value != nil {
			t.render(value, d+2)
		}
	}
}

// renderFunction prints a function-like node: flags (async, generator,
// declared name when withName), then parameters, then body statements.
func (t *TreeDumper) renderFunction(n *sitter.Node, label string, withName bool, d int) {
	var flags []string
	if hasAnon(n, "async") {
		flags = append(flags, "async")
	}
	if hasAnon(n, "*") || strings.HasPrefix(n.Type(), "generator_") {
		flags = append(flags, "*")
	}
	if withName {
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			flags = append(flags, t.content(name))
		}
	}
	t.pr(d, label, strings.Join(flags, " "), n)
	t.renderParams(n.ChildByFieldName("parameters"), d+1)
	if body := n.ChildByFieldName("body"); body != nil {
		t.renderChildren(body, d+1)
	}
}

func (t *TreeDumper) renderArrow(n *sitter.Node, d int) {
	body := n.ChildByFieldName("body")
	var flags []string
	if hasAnon(n, "async") {
		flags = append(flags, "async")
	}
	if body != nil && body.Type() == "statement_block" {
		flags = append(flags, "block")
	} else {
		flags = append(flags, "expr")
	}
	t.pr(d, "Arrow", strings.Join(flags, " "), n)
	if params := n.ChildByFieldName("parameters"); params != nil {
		t.renderParams(params, d+1)
	} else if param := n.ChildByFieldName("parameter"); param != nil {
		t.pr(d+1, "Params", "", param)
		t.render(param, d+2)
	}
	if body == nil {
		return
	}
	if body.Type() == "statement_block" {
		t.renderChildren(body, d+1)
	} else {
		t.render(body, d+1)
	}
}

func (t *TreeDumper) renderParams(params *sitter.Node, d int) {
	if params == nil {
		return
	}
	printed := false
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if !printed {
			t.pr(d, "Params", "", params)
			printed = true
		}
		t.render(child, d+1)
	}
}

func (t *TreeDumper) renderClass(n *sitter.Node, label string, d int) {
	name := ""
	if id := n.ChildByFieldName("name"); id != nil {
		name = t.content(id)
	}
	t.pr(d, label, name, n)
	if heritage := childOfType(n, "class_heritage"); heritage != nil {
		t.pr(d+1, "Extends", "", heritage)
		t.renderChildren(heritage, d+2)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		t.renderClassMember(body.NamedChild(i), d+1)
	}
}

func (t *TreeDumper) renderClassMember(m *sitter.Node, d int) {
	switch m.Type() {
	case "method_definition":
		key := fieldOf(m, "name", "property")
		var flags []string
		if hasAnon(m, "static") {
			flags = append(flags, "static")
		}
		switch {
		case key != nil && t.content(key) == "constructor" && !hasAnon(m, "get") && !hasAnon(m, "set"):
			flags = append(flags, "constructor")
		case hasAnon(m, "get"):
			flags = append(flags, "get")
		case hasAnon(m, "set"):
			flags = append(flags, "set")
		}
		if key != nil && key.Type() == "computed_property_name" {
			flags = append(flags, "computed")
		}
		t.pr(d, "Method", strings.Join(flags, " "), m)
		if key != nil {
			t.renderPropKey(key, d+1)
		}
		t.renderFunction(m, "Body", false, d+1)
	case "field_definition", "public_field_definition":
		key := fieldOf(m, "property", "name")
		var flags []string
		if hasAnon(m, "static") {
			flags = append(flags, "static")
		}
		if key != nil && key.Type() == "computed_property_name" {
			flags = append(flags, "computed")
		}
		t.pr(d, "ClassProp", strings.Join(flags, " "), m)
		if key != nil {
			t.renderPropKey(key, d+1)
		}
		if value := m.ChildByFieldName("value"); value != nil {
			t.render(value, d+1)
		}
	case "class_static_block":
		t.pr(d, "StaticBlock", "", m)
		if body := fieldOf(m, "body"); body != nil {
			t.renderChildren(body, d+1)
		} else {
			t.renderChildren(m, d+1)
		}
	case "comment":
	default:
		t.unsupportedNode(m, d)
	}
}

func (t *TreeDumper) renderPropKey(key *sitter.Node, d int) {
	switch key.Type() {
	case "property_identifier", "identifier":
		t.pr(d, "Ident", t.content(key), key)
	case "private_property_identifier":
		t.pr(d, "PrivateIdent", t.content(key), key)
	case "string":
		t.pr(d, "StrLit", t.snip(key), key)
	case "number":
		t.pr(d, "NumLit", t.snip(key), key)
	case "computed_property_name":
		t.renderChildren(key, d)
	default:
		t.render(key, d)
	}
}

func (t *TreeDumper) renderObjectMember(m *sitter.Node, d int) {
	switch m.Type() {
	case "pair":
		key := m.ChildByFieldName("key")
		detail := ""
		if key != nil && key.Type() == "computed_property_name" {
			detail = "computed"
		}
		t.pr(d, "Property", detail, m)
		if key != nil {
			t.renderPropKey(key, d+1)
		}
		t.render(m.ChildByFieldName("value"), d+1)
	case "shorthand_property_identifier":
		t.pr(d, "Property", "shorthand", m)
		t.pr(d+1, "Ident", t.content(m), m)
	case "method_definition":
		key := fieldOf(m, "name", "property")
		var flags []string
		switch {
		case hasAnon(m, "get"):
			flags = append(flags, "get")
		case hasAnon(m, "set"):
			flags = append(flags, "set")
		default:
			flags = append(flags, "method")
		}
		if key != nil && key.Type() == "computed_property_name" {
			flags = append(flags, "computed")
		}
		t.pr(d, "Property", strings.Join(flags, " "), m)
		if key != nil {
			t.renderPropKey(key, d+1)
		}
		t.renderFunction(m, "Body", false, d+1)
	case "spread_element":
		t.pr(d, "Spread", "", m)
		t.renderChildren(m, d+1)
	case "comment":
	default:
		t.unsupportedNode(m, d)
	}
}

func (t *TreeDumper) renderObjectPatternProp(p *sitter.Node, d int) {
	switch p.Type() {
	case "pair_pattern":
		t.pr(d, "BindProp", "", p)
		t.renderPropKey(p.ChildByFieldName("key"), d+1)
		t.render(p.ChildByFieldName("value"), d+1)
	case "shorthand_property_identifier_pattern":
		t.pr(d, "BindProp", "shorthand", p)
		t.pr(d+1, "Ident", t.content(p), p)
	case "object_assignment_pattern":
		// Shorthand with default: {a = 1}.
		t.pr(d, "BindProp", "shorthand", p)
		t.render(p, d+1)
	case "rest_pattern":
		t.pr(d, "Rest", "", p)
		t.renderChildren(p, d+1)
	case "comment":
	default:
		t.unsupportedNode(p, d)
	}
}

// renderArrayLike handles arrays and array patterns, emitting Elision
// placeholders for skipped slots (which are not nodes, only commas).
func (t *TreeDumper) renderArrayLike(n *sitter.Node, kind string, d int) {
	t.pr(d, kind, "", n)
	expectValue := true
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "[", "]":
		case ",":
			if expectValue {
				at := int(child.StartByte())
				t.prAt(d+1, "Elision", "", at, at)
			}
			expectValue = true
		case "comment":
		default:
			t.render(child, d+1)
			expectValue = false
		}
	}
}

func (t *TreeDumper) renderCall(n *sitter.Node, d int) {
	callee := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")

	// Tagged templates parse as calls whose argument is a template string.
	if args != nil && args.Type() == "template_string" {
		t.pr(d, "TaggedTemplate", "", n)
		t.render(callee, d+1)
		t.renderTemplate(args, d+1)
		return
	}
	// Dynamic import() parses as a call with an `import` callee.
	if callee != nil && callee.Type() == "import" {
		t.pr(d, "ImportExpr", "", n)
		if args != nil {
			t.renderChildren(args, d+1)
		}
		return
	}
	detail := ""
	if isOptionalChain(n) {
		detail = "?."
	}
	t.pr(d, "Call", detail, n)
	t.render(callee, d+1)
	if args != nil {
		t.renderChildren(args, d+1)
	}
}

func (t *TreeDumper) renderTemplate(n *sitter.Node, d int) {
	t.pr(d, "Template", "", n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "string_fragment":
			t.pr(d+1, "Quasi", t.snip(child), child)
		case "template_substitution":
			t.renderChildren(child, d+1)
		case "comment":
		default:
			t.render(child, d+1)
		}
	}
}

func (t *TreeDumper) renderImport(n *sitter.Node, d int) {
	detail := ""
	if source := n.ChildByFieldName("source"); source != nil {
		detail = trimQuotes(t.content(source))
	}
	t.pr(d, "Import", detail, n)
	clause := childOfType(n, "import_clause")
	if clause == nil {
		return
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		switch spec.Type() {
		case "identifier":
			t.pr(d+1, "ImportDefault", t.content(spec), spec)
		case "namespace_import":
			local := ""
			if id := childOfType(spec, "identifier"); id != nil {
				local = t.content(id)
			}
			t.pr(d+1, "ImportNamespace", local, spec)
		case "named_imports":
			for j := 0; j < int(spec.NamedChildCount()); j++ {
				t.renderImportSpec(spec.NamedChild(j), d+1)
			}
		case "comment":
		default:
			t.unsupportedNode(spec, d+1)
		}
	}
}

func (t *TreeDumper) renderImportSpec(spec *sitter.Node, d int) {
	if spec.Type() != "import_specifier" {
		if spec.Type() != "comment" {
			t.unsupportedNode(spec, d)
		}
		return
	}
	t.pr(d, "ImportSpec", t.aliasDetail(spec), spec)
}

// aliasDetail implements the "as" rule shared by import and export
// specifiers: just the name when source and alias agree, `<from> as <to>`
// otherwise.
func (t *TreeDumper) aliasDetail(spec *sitter.Node) string {
	name := ""
	if id := spec.ChildByFieldName("name"); id != nil {
		name = t.content(id)
	}
	alias := name
	if id := spec.ChildByFieldName("alias"); id != nil {
		alias = t.content(id)
	}
	if name == alias {
		return alias
	}
	return name + " as " + alias
}

func (t *TreeDumper) renderExport(n *sitter.Node, d int) {
	sourceDetail := ""
	if source := n.ChildByFieldName("source"); source != nil {
		sourceDetail = trimQuotes(t.content(source))
	}

	switch {
	case hasAnon(n, "default"):
		t.pr(d, "ExportDefault", "", n)
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			t.render(decl, d+1)
		} else if value := n.ChildByFieldName("value"); value != nil {
			t.render(value, d+1)
		} else {
			t.renderChildren(n, d+1)
		}
	case childOfType(n, "namespace_export") != nil:
		ns := childOfType(n, "namespace_export")
		alias := ""
		if id := childOfType(ns, "identifier"); id != nil {
			alias = t.content(id)
		} else if id := childOfType(ns, "module_export_name"); id != nil {
			alias = t.content(id)
		}
		t.pr(d, "ExportAll", "* as "+alias+" from "+sourceDetail, n)
	case hasAnon(n, "*"):
		t.pr(d, "ExportAll", sourceDetail, n)
	default:
		t.pr(d, "ExportNamed", sourceDetail, n)
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			t.render(decl, d+1)
		}
		if clause := childOfType(n, "export_clause"); clause != nil {
			for i := 0; i < int(clause.NamedChildCount()); i++ {
				spec := clause.NamedChild(i)
				if spec.Type() != "export_specifier" {
					continue
				}
				t.pr(d+1, "ExportSpec", t.aliasDetail(spec), spec)
			}
		}
	}
}
