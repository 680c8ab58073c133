package lint

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Diagnostic is one finding reported by a rule. Ownership passes to the
// caller as soon as it is recorded; rules never see it again.
type Diagnostic struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint,omitempty"`
	Location Location `json:"location"`
}

// Context is the per-file analysis state handed to rule handlers. It exposes
// the source under analysis, the pre-computed scope table, and the
// diagnostic sink. A Context is confined to a single traversal and must not
// be shared across files.
type Context struct {
	filename string
	source   []byte
	scopes   *ScopeTable
	diags    []Diagnostic
}

func NewContext(filename string, source []byte, scopes *ScopeTable) *Context {
	return &Context{
		filename: filename,
		source:   source,
		scopes:   scopes,
	}
}

// Filename returns the name of the file under analysis.
func (c *Context) Filename() string { return c.filename }

// Source returns the raw source bytes under analysis.
func (c *Context) Source() []byte { return c.source }

// IsGlobalRef reports whether the identifier resolves to the outermost
// global scope rather than a local binding.
func (c *Context) IsGlobalRef(ident *sitter.Node) bool {
	return c.scopes.IsGlobalRef(ident, c.source)
}

// Report records a diagnostic anchored at the given node. Reporting never
// fails observably to the rule.
func (c *Context) Report(node *sitter.Node, code, message, hint string) {
	c.diags = append(c.diags, Diagnostic{
		Code:     code,
		Message:  message,
		Hint:     hint,
		Location: NodeLocation(c.filename, node, c.source),
	})
}

// Diagnostics returns everything reported during the traversal, in document
// order.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diags
}
