package semantic_test

import (
	"testing"

	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) parser.Expr {
	t.Helper()
	toks := lexer.ScanTokens(src)
	expr, diags := parser.Parse(toks)
	require.Empty(t, diags, "unexpected parse diagnostics for %q", src)
	return expr
}

func builtinsCtx() semantic.Context {
	return semantic.Context{Functions: semantic.Builtins()}
}

func ctxWithTitle() semantic.Context {
	return semantic.Context{
		Functions:  semantic.Builtins(),
		Properties: []semantic.Property{{Name: "Title", Ty: semantic.String}},
	}
}

func TestPropOk(t *testing.T) {
	e := mustParse(t, `prop("Title")`)
	ty, diags := semantic.AnalyzeExpr(e, ctxWithTitle())
	require.Empty(t, diags)
	assert.Equal(t, semantic.String, ty)
}

func TestPropMissingProperty(t *testing.T) {
	e := mustParse(t, `prop("Nope")`)
	_, diags := semantic.AnalyzeExpr(e, ctxWithTitle())
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unknown property: Nope")
}

func TestPropNonStringLiteralArgument(t *testing.T) {
	e := mustParse(t, `prop(1)`)
	_, diags := semantic.AnalyzeExpr(e, ctxWithTitle())
	require.Len(t, diags, 1)
	assert.Equal(t, "prop() expects a string literal argument", diags[0].Message)
}

func TestPropArityError(t *testing.T) {
	e := mustParse(t, `prop("A", "B")`)
	_, diags := semantic.AnalyzeExpr(e, ctxWithTitle())
	require.Len(t, diags, 1)
	assert.Equal(t, "prop() expects exactly 1 argument", diags[0].Message)
}

func TestIfOk(t *testing.T) {
	e := mustParse(t, `if(true, 1, 2)`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, semantic.Number, ty)
}

func TestIfInfersUnionAcrossBranches(t *testing.T) {
	e := mustParse(t, `if(true, 1, "x")`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, "number | string", ty.String())
}

func TestIfArityError(t *testing.T) {
	e := mustParse(t, `if(true, 1)`)
	_, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
	assert.Equal(t, "if() expects exactly 3 arguments", diags[0].Message)
}

func TestIfsOddArityIsInvalidShape(t *testing.T) {
	e := mustParse(t, `ifs(true, 1, false, 2)`)
	_, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
	assert.Equal(t, "ifs() has an invalid argument shape", diags[0].Message)
}

func TestIfsTooFewArgsIsAtLeast(t *testing.T) {
	e := mustParse(t, `ifs(true, 1)`)
	_, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
	assert.Equal(t, "ifs() expects at least 3 arguments", diags[0].Message)
}

func TestIfsInfersUnionThroughRepeatGroup(t *testing.T) {
	e := mustParse(t, `ifs(true, 1, false, "x", 2)`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, "number | string", ty.String())
}

func TestSumOkVariadic(t *testing.T) {
	e := mustParse(t, `sum(1, 2, 3)`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, semantic.Number, ty)
}

func TestSumNoArgsIsAtLeastOne(t *testing.T) {
	e := mustParse(t, `sum()`)
	_, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
	assert.Equal(t, "sum() expects at least 1 argument", diags[0].Message)
}

func TestSumRepeatGroupTypeMismatch(t *testing.T) {
	e := mustParse(t, `sum(1, "x")`)
	_, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
	assert.Equal(t, "sum() expects number arguments", diags[0].Message)
}

func TestUnknownFunction(t *testing.T) {
	e := mustParse(t, `nope(1)`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unknown function: nope")
	assert.Equal(t, semantic.Unknown, ty)
}

func TestListLiteralInfersUnion(t *testing.T) {
	e := mustParse(t, `[1, "x"]`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, "(number | string)[]", ty.String())
}

func TestListLiteralEmptyIsListOfUnknown(t *testing.T) {
	e := mustParse(t, `[]`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, "unknown[]", ty.String())
}

func TestListLiteralAnyUnknownItemMakesElementUnknown(t *testing.T) {
	e := mustParse(t, `[1, x]`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, "unknown[]", ty.String())
}

func TestArithmeticRequiresNumber(t *testing.T) {
	e := mustParse(t, `"x" + 1`)
	_, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Len(t, diags, 1)
}

func TestTernaryInfersUnionOfBranches(t *testing.T) {
	e := mustParse(t, `true ? 1 : "x"`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, "number | string", ty.String())
}

func TestEqualityAlwaysResolvesButIsReserved(t *testing.T) {
	e := mustParse(t, `equal(1, 1)`)
	ty, diags := semantic.AnalyzeExpr(e, builtinsCtx())
	require.Empty(t, diags)
	assert.Equal(t, semantic.Boolean, ty)
	assert.True(t, semantic.ReservedFunctionNames()["equal"])
}

func TestPostfixMethodCall(t *testing.T) {
	e := mustParse(t, `prop("Title").length()`)
	ty, diags := semantic.AnalyzeExpr(e, ctxWithTitle())
	require.Empty(t, diags)
	assert.Equal(t, semantic.Number, ty)
}

func TestDecodeContextRejectsUnknownFields(t *testing.T) {
	_, err := semantic.DecodeContext(map[string]any{
		"properties": []any{map[string]any{"name": "Title", "ty": "string"}},
		"bogus":      true,
	})
	assert.Error(t, err)
}

func TestDecodeContextRejectsEmptyPropertyName(t *testing.T) {
	_, err := semantic.DecodeContext(map[string]any{
		"properties": []any{map[string]any{"name": "", "ty": "string"}},
	})
	assert.Error(t, err)
}

func TestDecodeContextOk(t *testing.T) {
	ctx, err := semantic.DecodeContext(map[string]any{
		"properties": []any{map[string]any{"name": "Title", "ty": "string"}},
	})
	require.NoError(t, err)
	require.Len(t, ctx.Properties, 1)
	assert.Equal(t, "Title", ctx.Properties[0].Name)
	assert.NotEmpty(t, ctx.Functions)
}
