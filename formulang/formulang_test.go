package formulang_test

import (
	"testing"

	"github.com/joverzhang/formulang/errors"
	"github.com/joverzhang/formulang/formulang"
	"github.com/joverzhang/formulang/semantic"
	"github.com/joverzhang/formulang/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeIfBranchesUnifyIntoUnion(t *testing.T) {
	out := formulang.Analyze(`if(true, 1, "x")`)
	require.Empty(t, out.Diagnostics)

	ty, diags := formulang.AnalyzeSemantic(out.Expr, semantic.Context{Functions: semantic.Builtins()})
	assert.Empty(t, diags)
	assert.Equal(t, "number | string", ty.String())
}

func TestAnalyzeIfsInvalidShapeSpansWholeCall(t *testing.T) {
	src := `ifs(true, 1, false, 2)`
	out := formulang.Analyze(src)
	require.Empty(t, out.Diagnostics)

	_, diags := formulang.AnalyzeSemantic(out.Expr, semantic.Context{Functions: semantic.Builtins()})
	require.Len(t, diags, 1)
	assert.Equal(t, "ifs() has an invalid argument shape", diags[0].Message)
	assert.Equal(t, uint32(0), diags[0].Span.Start)
	assert.Equal(t, uint32(len(src)), diags[0].Span.End)
}

func TestAnalyzeUnknownPropertySpansTheLiteral(t *testing.T) {
	out := formulang.Analyze(`prop("Missing")`)
	require.Empty(t, out.Diagnostics)

	_, diags := formulang.AnalyzeSemantic(out.Expr, semantic.Context{})
	require.Len(t, diags, 1)
	assert.Equal(t, "Unknown property: Missing", diags[0].Message)
	assert.Equal(t, uint32(5), diags[0].Span.Start)
	assert.Equal(t, uint32(14), diags[0].Span.End)
}

func TestFormatExprSuppressedBySyntaxErrors(t *testing.T) {
	out := formulang.Analyze(`(123`)
	require.NotEmpty(t, out.Diagnostics)
	assert.Equal(t, "", formulang.FormatExpr(out))
}

func TestFormatExprIdempotent(t *testing.T) {
	out := formulang.Analyze(`1+2 * 3`)
	require.Empty(t, out.Diagnostics)

	once := formulang.FormatExpr(out)
	reparsed := formulang.Analyze(once)
	require.Empty(t, reparsed.Diagnostics)
	twice := formulang.FormatExpr(reparsed)
	assert.Equal(t, once, twice)
}

func TestQuickFixesInsertsMissingCloseParen(t *testing.T) {
	src := `(123`
	out := formulang.Analyze(src)
	fixes := formulang.QuickFixes(out.Diagnostics)
	require.Len(t, fixes, 1)
	assert.Equal(t, uint32(len(src)), fixes[0].Span.Start)
	assert.Equal(t, uint32(len(src)), fixes[0].Span.End)
	assert.Equal(t, ")", fixes[0].NewText)

	fixed, _ := formulang.ApplyEditsWithCursor(src, fixes, uint32(len(src)))
	assert.Equal(t, `(123)`, fixed)
}

func TestApplyEditsWithCursorSkipsOutOfBoundsEdit(t *testing.T) {
	src := "abc"
	bad := []errors.QuickFix{{Title: "bogus", Span: span.New(2, 10), NewText: "x"}}
	fixed, cursor := formulang.ApplyEditsWithCursor(src, bad, 1)
	assert.Equal(t, src, fixed)
	assert.Equal(t, uint32(1), cursor)
}

func TestCompleteAtOpenCallYieldsSignatureHelp(t *testing.T) {
	out := formulang.Complete("if(", 3, semantic.Context{Functions: semantic.Builtins()}, formulang.DefaultCompletionConfig())
	require.NotNil(t, out.Signature)
	assert.Equal(t, "if(condition: boolean, then: T0, else: T0) -> T0", out.Signature.Label)
	assert.Equal(t, 0, out.Signature.ActiveParam)
}

func TestFormatDiagnosticsMatchesGoldenShape(t *testing.T) {
	out := formulang.Analyze(`f(1 2)`)
	rendered := formulang.FormatDiagnostics(`f(1 2)`, "formula.txt", out.Diagnostics)
	assert.Contains(t, rendered, "formula.txt:1:")
	assert.Contains(t, rendered, "error:")
}
