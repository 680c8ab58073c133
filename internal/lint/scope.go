package lint

// Scope table construction for JavaScript sources. The table is built once
// per file before rule dispatch and answers the single question rules need:
// does an identifier resolve to the implicit global object, or is it shadowed
// by some lexical binding?

import (
	sitter "github.com/smacker/go-tree-sitter"
)

type scopeKind int

const (
	scopeProgram scopeKind = iota
	scopeFunction
	scopeBlock
	scopeCatch
)

// scope is one lexical scope, covering the byte range of the node that
// introduced it. Children are recorded in document order and always nest
// strictly inside their parent's range.
type scope struct {
	kind     scopeKind
	parent   *scope
	children []*scope
	start    uint32
	end      uint32
	bindings map[string]struct{}
}

func (s *scope) declare(name string) {
	if name == "" {
		return
	}
	s.bindings[name] = struct{}{}
}

func (s *scope) contains(pos uint32) bool {
	return pos >= s.start && pos < s.end
}

// nearestHoistTarget walks outward to the scope `var` and function
// declarations hoist into.
func (s *scope) nearestHoistTarget() *scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.kind == scopeFunction || cur.kind == scopeProgram {
			return cur
		}
	}
	return s
}

// ScopeTable is the pre-computed lexical scope structure of one source file.
// It is immutable after construction and safe for concurrent reads.
type ScopeTable struct {
	root *scope
}

// BuildScopeTable walks the syntax tree collecting declarations into nested
// scopes. Binding order within a scope is not tracked: a name declared
// anywhere in a scope shadows the global for the whole scope, which matches
// how lexical bindings behave for resolution purposes.
func BuildScopeTable(root *sitter.Node, source []byte) *ScopeTable {
	b := &scopeBuilder{source: source}
	global := b.newScope(scopeProgram, nil, root)
	b.walk(root, global)
	return &ScopeTable{root: global}
}

// IsGlobalRef reports whether an identifier resolves to the outermost global
// object, i.e. no scope on its chain (the program scope included) declares
// the name. A top-level `const window = 42` therefore shadows the global.
func (t *ScopeTable) IsGlobalRef(ident *sitter.Node, source []byte) bool {
	if ident == nil || ident.Type() != "identifier" {
		return false
	}
	name := NodeContent(ident, source)
	if name == "" {
		return false
	}

	for s := t.innermostAt(ident.StartByte()); s != nil; s = s.parent {
		if _, shadowed := s.bindings[name]; shadowed {
			return false
		}
	}
	return true
}

func (t *ScopeTable) innermostAt(pos uint32) *scope {
	cur := t.root
	for {
		descended := false
		for _, child := range cur.children {
			if child.contains(pos) {
				cur = child
				descended = true
				break
			}
		}
		if !descended {
			return cur
		}
	}
}

type scopeBuilder struct {
	source []byte
}

func (b *scopeBuilder) newScope(kind scopeKind, parent *scope, node *sitter.Node) *scope {
	s := &scope{
		kind:     kind,
		parent:   parent,
		start:    node.StartByte(),
		end:      node.EndByte(),
		bindings: make(map[string]struct{}),
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

func (b *scopeBuilder) walk(node *sitter.Node, current *scope) {
	if node == nil || node.IsNull() {
		return
	}

	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		// The name hoists into the enclosing function/program scope.
		if name := node.ChildByFieldName("name"); name != nil {
			current.nearestHoistTarget().declare(NodeContent(name, b.source))
		}
		fn := b.newScope(scopeFunction, current, node)
		b.declareParameters(node, fn)
		b.walkChildren(node, fn)
		return

	case "function", "function_expression", "generator_function", "arrow_function", "method_definition":
		fn := b.newScope(scopeFunction, current, node)
		// A named function expression binds its own name inside itself only.
		if node.Type() != "method_definition" {
			if name := node.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				fn.declare(NodeContent(name, b.source))
			}
		}
		b.declareParameters(node, fn)
		b.walkChildren(node, fn)
		return

	case "class_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			current.declare(NodeContent(name, b.source))
		}
		b.walkChildren(node, current)
		return

	case "class":
		// A named class expression binds its own name inside itself only.
		cls := b.newScope(scopeBlock, current, node)
		if name := node.ChildByFieldName("name"); name != nil {
			cls.declare(NodeContent(name, b.source))
		}
		b.walkChildren(node, cls)
		return

	case "statement_block", "for_statement", "for_in_statement", "switch_body":
		block := b.newScope(scopeBlock, current, node)
		b.walkChildren(node, block)
		return

	case "catch_clause":
		c := b.newScope(scopeCatch, current, node)
		if param := node.ChildByFieldName("parameter"); param != nil {
			b.declarePattern(param, c)
		}
		b.walkChildren(node, c)
		return

	case "lexical_declaration":
		b.walkDeclarators(node, current, current)
		return

	case "variable_declaration":
		// `var` hoists out of blocks into the nearest function/program scope.
		b.walkDeclarators(node, current, current.nearestHoistTarget())
		return

	case "import_statement":
		b.declareImports(node, current)
		return
	}

	b.walkChildren(node, current)
}

func (b *scopeBuilder) walkChildren(node *sitter.Node, current *scope) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if ok := cursor.GoToFirstChild(); ok {
		for {
			b.walk(cursor.CurrentNode(), current)
			if ok := cursor.GoToNextSibling(); !ok {
				break
			}
		}
	}
}

// walkDeclarators registers declarator names into target while still walking
// their initializer expressions in the current scope (initializers may
// contain nested functions with scopes of their own).
func (b *scopeBuilder) walkDeclarators(node *sitter.Node, current, target *scope) {
	for i := 0; i < int(node.ChildCount()); i++ {
		declarator := node.Child(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		if name := declarator.ChildByFieldName("name"); name != nil {
			b.declarePattern(name, target)
		}
		if value := declarator.ChildByFieldName("value"); value != nil {
			b.walk(value, current)
		}
	}
}

// declareParameters registers a function's formal parameters into its scope.
// Field naming varies across grammar revisions, so check both spellings and
// the single parenthesis-free arrow parameter.
func (b *scopeBuilder) declareParameters(fnNode *sitter.Node, fn *scope) {
	params := fnNode.ChildByFieldName("parameters")
	if params == nil {
		params = fnNode.ChildByFieldName("formal_parameters")
	}
	if params == nil {
		if param := fnNode.ChildByFieldName("parameter"); param != nil {
			b.declarePattern(param, fn)
		}
		return
	}

	for i := 0; i < int(params.ChildCount()); i++ {
		child := params.Child(i)
		switch child.Type() {
		case "(", ")", ",":
			// punctuation
		default:
			b.declarePattern(child, fn)
		}
	}
}

// declarePattern registers every identifier bound by a binding pattern:
// plain identifiers, object/array destructuring, defaults, and rest.
func (b *scopeBuilder) declarePattern(pattern *sitter.Node, target *scope) {
	if pattern == nil {
		return
	}

	switch pattern.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		target.declare(NodeContent(pattern, b.source))

	case "object_pattern":
		for i := 0; i < int(pattern.ChildCount()); i++ {
			child := pattern.Child(i)
			switch child.Type() {
			case "shorthand_property_identifier_pattern":
				b.declarePattern(child, target)
			case "pair_pattern":
				// { key: valuePattern } binds the value side only.
				b.declarePattern(child.ChildByFieldName("value"), target)
			case "rest_pattern", "object_assignment_pattern", "assignment_pattern":
				b.declarePattern(child, target)
			}
		}

	case "array_pattern":
		for i := 0; i < int(pattern.ChildCount()); i++ {
			child := pattern.Child(i)
			if child.Type() == "[" || child.Type() == "]" || child.Type() == "," {
				continue
			}
			b.declarePattern(child, target)
		}

	case "assignment_pattern", "object_assignment_pattern":
		// pattern = default; only the left side binds.
		b.declarePattern(pattern.ChildByFieldName("left"), target)

	case "rest_pattern", "rest_parameter":
		arg := pattern.ChildByFieldName("argument")
		if arg == nil && pattern.ChildCount() > 1 {
			arg = pattern.Child(1)
		}
		b.declarePattern(arg, target)
	}
}

// declareImports registers the bindings an import statement introduces.
func (b *scopeBuilder) declareImports(node *sitter.Node, current *scope) {
	target := current.nearestHoistTarget()

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "import_specifier":
			// `import { a as b }` binds the alias; `import { a }` binds the name.
			if alias := n.ChildByFieldName("alias"); alias != nil {
				target.declare(NodeContent(alias, b.source))
				return
			}
			if name := n.ChildByFieldName("name"); name != nil {
				target.declare(NodeContent(name, b.source))
			}
			return
		case "identifier":
			target.declare(NodeContent(n, b.source))
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "import_clause" {
			visit(child)
		}
	}
}
