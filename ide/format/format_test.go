package format_test

import (
	"testing"

	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/ide/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOk(t *testing.T, src string) parser.Expr {
	t.Helper()
	toks := lexer.ScanTokens(src)
	e, diags := parser.Parse(toks)
	require.Empty(t, diags)
	return e
}

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	return format.Expr(parseOk(t, src))
}

func TestFormatBasicSpacing(t *testing.T) {
	assert.Equal(t, "1 + 2", roundTrip(t, "1+2"))
	assert.Equal(t, "1 + 2 * 3", roundTrip(t, "1 + 2*3"))
}

func TestFormatPreservesNecessaryParensOnRightSubtraction(t *testing.T) {
	assert.Equal(t, "a - (b - c)", roundTrip(t, "a-(b-c)"))
}

func TestFormatDropsRedundantParensSameLevel(t *testing.T) {
	assert.Equal(t, "a - b - c", roundTrip(t, "(a-b)-c"))
}

func TestFormatPowRightAssociativeNoExtraParens(t *testing.T) {
	assert.Equal(t, "2 ^ 3 ^ 4", roundTrip(t, "2^3^4"))
	assert.Equal(t, "(2 ^ 3) ^ 4", roundTrip(t, "(2^3)^4"))
}

func TestFormatUnaryBindsTighterThanBinaryButLooserThanPow(t *testing.T) {
	assert.Equal(t, "-2 ^ 2", roundTrip(t, "-2^2"))
	assert.Equal(t, "-(a + b)", roundTrip(t, "-(a+b)"))
}

func TestFormatPreservesBangSpelling(t *testing.T) {
	assert.Equal(t, "!a", roundTrip(t, "!a"))
}

func TestFormatPreservesNotWordSpelling(t *testing.T) {
	assert.Equal(t, "not a", roundTrip(t, "not a"))
}

func TestFormatSpacesLogicalOperators(t *testing.T) {
	assert.Equal(t, "a && b", roundTrip(t, "a&&b"))
	assert.Equal(t, "a || b", roundTrip(t, "a||b"))
}

func TestFormatCallAndList(t *testing.T) {
	assert.Equal(t, `prop("Title")`, roundTrip(t, `prop("Title")`))
	assert.Equal(t, "[1, 2, 3]", roundTrip(t, "[1,2,3]"))
}

func TestFormatPostfixChain(t *testing.T) {
	assert.Equal(t, `prop("Title").length()`, roundTrip(t, `prop("Title").length()`))
}

func TestFormatTernary(t *testing.T) {
	assert.Equal(t, "a ? 1 : b ? 2 : 3", roundTrip(t, "a ? 1 : b ? 2 : 3"))
}

func TestFormatStringEscaping(t *testing.T) {
	assert.Equal(t, `"a\nb"`, roundTrip(t, `"a\nb"`))
}

func TestFormatIsIdempotent(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"a - (b - c)",
		"-2 ^ 2",
		"!a && not b",
		`prop("Title").length()`,
		"a ? 1 : b ? 2 : 3",
		"[1, 2, 3]",
	}
	for _, src := range cases {
		once := roundTrip(t, src)
		twice := format.Expr(parseOk(t, once))
		assert.Equal(t, once, twice, "not idempotent for %q", src)
	}
}
