package lint

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// TagRecommended marks rules that belong to the default rule set.
const TagRecommended = "recommended"

// HandlerFunc is invoked once for each syntax node of a registered type
// during a single pre-order, left-to-right traversal of the program.
type HandlerFunc func(node *sitter.Node, ctx *Context)

// Rule is one analysis rule. Implementations must be stateless per
// invocation: any shared data (catalogues, deny lists) must be immutable so
// that files can be linted concurrently.
type Rule interface {
	// Code is the stable identifier used in diagnostics and suppression.
	Code() string
	// Tags classify the rule (e.g. "recommended").
	Tags() []string
	// Summary is a one-line description used in listings and SARIF output.
	Summary() string
	// Register binds the rule's handlers to syntax node types.
	Register(reg *Registry)
}

// Registry maps tree-sitter node types to the handlers interested in them.
// A fresh registry is assembled per lint run; dispatch itself is read-only.
type Registry struct {
	handlers map[string][]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string][]HandlerFunc)}
}

// On registers a handler for a node type. Multiple handlers per type run in
// registration order.
func (r *Registry) On(nodeType string, fn HandlerFunc) {
	r.handlers[nodeType] = append(r.handlers[nodeType], fn)
}

// Walk traverses the tree depth-first, dispatching registered handlers in
// document order. Each node is visited exactly once.
func (r *Registry) Walk(node *sitter.Node, ctx *Context) {
	if node == nil || node.IsNull() {
		return
	}

	for _, fn := range r.handlers[node.Type()] {
		fn(node, ctx)
	}

	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if ok := cursor.GoToFirstChild(); ok {
		for {
			r.Walk(cursor.CurrentNode(), ctx)
			if ok := cursor.GoToNextSibling(); !ok {
				break
			}
		}
	}
}
