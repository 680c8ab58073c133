package lint

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

func parseSource(t *testing.T, code string) (*sitter.Node, []byte) {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	src := []byte(code)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree.RootNode(), src
}

// findFirst returns the first node of the given type in document order.
func findFirst(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == nodeType {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := findFirst(node.Child(i), nodeType); found != nil {
			return found
		}
	}
	return nil
}

func TestStaticPropertyName(t *testing.T) {
	tests := []struct {
		code     string
		nodeType string
		want     string
		known    bool
	}{
		{"obj.prop;", "member_expression", "prop", true},
		{`obj["prop"];`, "subscript_expression", "prop", true},
		{`obj[''];`, "subscript_expression", "", true},
		// String keys resolve to the cooked value: escapes are decoded
		// wherever they fall, so partial-fragment names cannot leak out.
		{`obj["\u0066etch"];`, "subscript_expression", "fetch", true},
		{`obj["fetch\u0041"];`, "subscript_expression", "fetchA", true},
		{`obj["\x66etch"];`, "subscript_expression", "fetch", true},
		{`obj["a\nb"];`, "subscript_expression", "a\nb", true},
		{`obj["\u{1F600}"];`, "subscript_expression", "\U0001F600", true},
		// Template keys resolve to the raw text, escapes kept verbatim.
		{"obj[`prop`];", "subscript_expression", "prop", true},
		{"obj[`\\u0066etch`];", "subscript_expression", `\u0066etch`, true},
		{"obj[``];", "subscript_expression", "", true},
		{"obj[variable];", "subscript_expression", "", false},
		{"obj[`${v}`];", "subscript_expression", "", false},
		{"obj[`a${v}b`];", "subscript_expression", "", false},
		{"obj[0];", "subscript_expression", "", false},
		{"obj[f()];", "subscript_expression", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			root, src := parseSource(t, tt.code)
			node := findFirst(root, tt.nodeType)
			if node == nil {
				t.Fatalf("no %s found in %q", tt.nodeType, tt.code)
			}

			got, known := StaticPropertyName(node, src)
			if known != tt.known {
				t.Fatalf("known = %v, want %v (got %q)", known, tt.known, got)
			}
			if known && got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeEscapeSequence(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{`\n`, "\n"},
		{`\t`, "\t"},
		{`\0`, "\x00"},
		{`\"`, `"`},
		{`\'`, "'"},
		{`\\`, `\`},
		{"\\`", "`"},
		{`A`, "A"},
		{`\u{41}`, "A"},
		{`\x41`, "A"},
		{`\u{110000}`, ""},
		{"\\\n", ""},
	}

	for _, tt := range tests {
		if got := decodeEscapeSequence(tt.seq); got != tt.want {
			t.Errorf("decodeEscapeSequence(%q) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestStaticPropertyNamePrivate(t *testing.T) {
	code := "class C { #secret; m() { return this.#secret; } }"
	root, src := parseSource(t, code)

	node := findFirst(root, "member_expression")
	if node == nil {
		t.Fatal("no member_expression found")
	}
	got, known := StaticPropertyName(node, src)
	if !known {
		t.Fatal("private name should be statically known")
	}
	if got != "#secret" {
		t.Errorf("name = %q, want %q", got, "#secret")
	}
}

func TestNodeLocation(t *testing.T) {
	code := "const a = 1;\n  window.fetch();\n"
	root, src := parseSource(t, code)

	node := findFirst(root, "member_expression")
	if node == nil {
		t.Fatal("no member_expression found")
	}

	loc := NodeLocation("app.js", node, src)
	if loc.File != "app.js" {
		t.Errorf("file = %q", loc.File)
	}
	if loc.Line != 2 {
		t.Errorf("line = %d, want 2", loc.Line)
	}
	if loc.Column != 2 {
		t.Errorf("column = %d, want 2", loc.Column)
	}
	if loc.Snippet != "window.fetch();" {
		t.Errorf("snippet = %q", loc.Snippet)
	}
	if loc.String() != "app.js:2:2" {
		t.Errorf("String() = %q", loc.String())
	}
}

func TestFindLineBounds(t *testing.T) {
	content := "line one\nline two\nline three"
	source := []byte(content)

	tests := []struct {
		name      string
		idx       int
		wantStart int
		wantEnd   int
	}{
		{"middle of first line", 3, 0, 8},
		{"start of first line", 0, 0, 8},
		{"start of second line", 9, 9, 17},
		{"end of last line", len(content) - 1, 18, len(content)},
		{"out of bounds high", len(content) + 5, 18, len(content)},
		{"out of bounds low", -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findLineStart(source, tt.idx); got != tt.wantStart {
				t.Errorf("findLineStart(%d) = %d, want %d", tt.idx, got, tt.wantStart)
			}
			if tt.idx >= 0 {
				if got := findLineEnd(source, tt.idx); got != tt.wantEnd {
					t.Errorf("findLineEnd(%d) = %d, want %d", tt.idx, got, tt.wantEnd)
				}
			}
		})
	}
}
