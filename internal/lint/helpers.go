// Package lint implements the linting framework: tree-sitter parsing,
// scope resolution, rule dispatch, and diagnostic collection.
package lint

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Location identifies where in a source file a diagnostic was raised.
// Line is 1-indexed; Column is the 0-indexed byte column of the node start.
type Location struct {
	File    string
	Line    int
	Column  int
	Snippet string
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// NodeContent extracts the string content of a node from the source byte slice.
func NodeContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// NodeLocation converts a tree-sitter node position to a Location, including
// the trimmed text of the line the node starts on.
func NodeLocation(filename string, node *sitter.Node, source []byte) Location {
	if node == nil {
		return Location{File: filename, Snippet: "N/A"}
	}

	startByte := node.StartByte()
	startPoint := node.StartPoint()

	snippet := NodeContent(node, source)
	lineStart := findLineStart(source, int(startByte))
	lineEnd := findLineEnd(source, int(startByte))
	if lineStart >= 0 && lineEnd > lineStart {
		snippet = strings.TrimSpace(string(source[lineStart:lineEnd]))
	}

	return Location{
		File:    filename,
		Line:    int(startPoint.Row) + 1,
		Column:  int(startPoint.Column),
		Snippet: snippet,
	}
}

func findLineStart(source []byte, idx int) int {
	if idx >= len(source) {
		if len(source) == 0 {
			return 0
		}
		idx = len(source) - 1
	}
	if idx < 0 {
		return 0
	}

	for i := idx; i >= 0; i-- {
		if source[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func findLineEnd(source []byte, idx int) int {
	for i := idx; i < len(source); i++ {
		if source[i] == '\n' {
			return i
		}
	}
	return len(source)
}

// StaticPropertyName resolves the property name of a member_expression or
// subscript_expression when it can be determined without executing the
// program. The second return is false when the name is not statically known;
// callers must treat that as "no determination", not as an empty name.
//
// Resolution, in order of access syntax:
//   - obj.prop            -> "prop"
//   - obj.#prop           -> "#prop" (private names cannot be computed)
//   - obj["prop"]         -> "prop", the cooked value with escapes decoded
//   - obj[`prop`]         -> "prop", the raw text, only without substitutions
//   - anything else       -> unknown (obj[v], obj[`${v}`], obj[f()], ...)
func StaticPropertyName(node *sitter.Node, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "member_expression":
		prop := node.ChildByFieldName("property")
		if prop == nil {
			return "", false
		}
		switch prop.Type() {
		case "property_identifier", "private_property_identifier":
			return NodeContent(prop, source), true
		}
		return "", false

	case "subscript_expression":
		index := node.ChildByFieldName("index")
		if index == nil {
			return "", false
		}
		switch index.Type() {
		case "string":
			return stringLiteralValue(index, source), true
		case "template_string":
			return templateLiteralValue(index, source)
		}
		return "", false
	}

	return "", false
}

// stringLiteralValue unwraps a tree-sitter "string" node into its cooked
// value: literal fragments are taken verbatim and escape sequences are
// decoded, so `"\u0066etch"` resolves to "fetch". The pieces are interleaved
// children of the string node; an empty literal has none.
func stringLiteralValue(node *sitter.Node, source []byte) string {
	if node.NamedChildCount() == 0 {
		// Grammar versions without fragment nodes expose only the quoted text.
		return strings.Trim(NodeContent(node, source), "\"'")
	}

	var b strings.Builder
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "string_fragment":
			b.WriteString(NodeContent(child, source))
		case "escape_sequence":
			b.WriteString(decodeEscapeSequence(NodeContent(child, source)))
		}
	}
	return b.String()
}

// decodeEscapeSequence resolves one JavaScript escape sequence, backslash
// included, to the character it denotes. A hex or unicode form that does not
// parse decodes to nothing; an unrecognized single-character escape decodes
// to the escaped character itself, as in the language.
func decodeEscapeSequence(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	body := seq[1:]
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case 'x', 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil && v <= 0x10FFFF {
			return string(rune(v))
		}
		return ""
	case '\n', '\r':
		// A line continuation contributes nothing to the value.
		return ""
	}
	return body
}

// templateLiteralValue resolves a template_string used as a computed property
// key. A template with no substitutions is statically known as the raw text
// between the backticks, escape sequences kept verbatim; any interpolation is
// undetermined.
func templateLiteralValue(node *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "template_substitution" {
			return "", false
		}
	}
	raw := NodeContent(node, source)
	raw = strings.TrimPrefix(raw, "`")
	raw = strings.TrimSuffix(raw, "`")
	return raw, true
}
