package lint

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"go.uber.org/zap"
)

// Linter runs a fixed set of rules over JavaScript sources. It holds no
// mutable state across invocations, so one Linter may serve many files
// concurrently.
type Linter struct {
	logger *zap.Logger
	rules  []Rule
}

func NewLinter(logger *zap.Logger, rules ...Rule) *Linter {
	return &Linter{
		logger: logger.Named("linter"),
		rules:  rules,
	}
}

// Rules returns the rules this linter runs.
func (l *Linter) Rules() []Rule {
	return l.rules
}

// LintFile reads and lints a single file.
func (l *Linter) LintFile(ctx context.Context, filename string) ([]Diagnostic, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LintSource(ctx, filename, source)
}

// LintSource parses the source, builds the scope table, and runs every rule
// in a single traversal. Syntax errors do not abort the run: tree-sitter
// recovers, and rules simply see whatever structure survived.
func (l *Linter) LintSource(ctx context.Context, filename string, source []byte) ([]Diagnostic, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		l.logger.Warn("Syntax errors detected; analysis may be incomplete",
			zap.String("file", filename))
	}

	scopes := BuildScopeTable(root, source)
	lintCtx := NewContext(filename, source, scopes)

	reg := NewRegistry()
	for _, rule := range l.rules {
		rule.Register(reg)
	}
	reg.Walk(root, lintCtx)

	diags := lintCtx.Diagnostics()
	l.logger.Debug("File linted",
		zap.String("file", filename),
		zap.Int("diagnostics", len(diags)),
	)
	return diags, nil
}
