package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softpare/weblint/internal/lint"
)

const (
	noEvalCode    = "no-eval"
	noEvalMessage = "`eval` executes arbitrary code and defeats static analysis"
	noEvalHint    = "Remove the use of `eval`"
	noEvalSummary = "Disallows direct calls to the global `eval` function"
)

// NoEval flags direct calls to the global `eval`. A local binding named
// `eval` follows the same scope-resolution discipline as every other rule
// and is left alone.
type NoEval struct{}

func (NoEval) Code() string    { return noEvalCode }
func (NoEval) Tags() []string  { return []string{lint.TagRecommended} }
func (NoEval) Summary() string { return noEvalSummary }

func (r NoEval) Register(reg *lint.Registry) {
	reg.On("call_expression", r.check)
}

func (r NoEval) check(node *sitter.Node, ctx *lint.Context) {
	callee := node.ChildByFieldName("function")
	if callee == nil || callee.Type() != "identifier" {
		return
	}
	if lint.NodeContent(callee, ctx.Source()) != "eval" {
		return
	}
	if !ctx.IsGlobalRef(callee) {
		return
	}
	ctx.Report(node, noEvalCode, noEvalMessage, noEvalHint)
}
