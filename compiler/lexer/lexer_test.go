package lexer_test

import (
	"testing"

	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanTokensBasicExpression(t *testing.T) {
	toks := lexer.ScanTokens("1 + 2")
	require.Len(t, toks, 4) // 1, +, 2, eof: whitespace is discarded, not a token
	assert.Equal(t, []lexer.Kind{lexer.Number, lexer.Plus, lexer.Number, lexer.Eof}, kinds(toks))
	assert.Equal(t, "1", toks[0].Text)
	assert.Equal(t, "2", toks[2].Text)
}

func TestScanTokensCallAndDot(t *testing.T) {
	toks := lexer.ScanTokens(`prop("Title").length()`)
	assert.Equal(t, []lexer.Kind{
		lexer.Ident, lexer.LParen, lexer.String, lexer.RParen,
		lexer.Dot, lexer.Ident, lexer.LParen, lexer.RParen, lexer.Eof,
	}, kinds(toks))
}

func TestScanTokensKeywords(t *testing.T) {
	toks := lexer.ScanTokens("true false not x")
	var sig []lexer.Kind
	for _, tk := range toks {
		if tk.IsSignificant() {
			sig = append(sig, tk.Kind)
		}
	}
	assert.Equal(t, []lexer.Kind{lexer.True, lexer.False, lexer.Not, lexer.Ident}, sig)
}

// "and"/"or" are not reserved words (spec.md's reserved set is exactly
// true/false/not); they lex as plain identifiers like any other name.
func TestScanTokensAndOrAreFreeIdentifiers(t *testing.T) {
	toks := lexer.ScanTokens("and or")
	assert.Equal(t, []lexer.Kind{lexer.Ident, lexer.Ident, lexer.Eof}, kinds(toks))
}

func TestScanTokensSymbolicLogicalOps(t *testing.T) {
	toks := lexer.ScanTokens("a && b || !c")
	var sig []lexer.Kind
	for _, tk := range toks {
		if tk.IsSignificant() {
			sig = append(sig, tk.Kind)
		}
	}
	assert.Equal(t, []lexer.Kind{lexer.Ident, lexer.AmpAmp, lexer.Ident, lexer.PipePipe, lexer.Bang, lexer.Ident}, sig)
}

func TestScanTokensComparisons(t *testing.T) {
	toks := lexer.ScanTokens("a == b != c <= d >= e < f > g")
	var sig []lexer.Kind
	for _, tk := range toks {
		if tk.IsSignificant() {
			sig = append(sig, tk.Kind)
		}
	}
	assert.Equal(t, []lexer.Kind{
		lexer.Ident, lexer.EqEq, lexer.Ident, lexer.BangEq, lexer.Ident, lexer.LtEq, lexer.Ident,
		lexer.GtEq, lexer.Ident, lexer.Lt, lexer.Ident, lexer.Gt, lexer.Ident,
	}, sig)
}

func TestScanTokensStringEscapes(t *testing.T) {
	toks := lexer.ScanTokens(`"a\nb\tc\"d\\e"`)
	require.Equal(t, lexer.String, toks[0].Kind)
	assert.Equal(t, "a\nb\tc\"d\\e", toks[0].Value)
}

func TestScanTokensUnicodeEscape(t *testing.T) {
	toks := lexer.ScanTokens(`"\` + `u00e9"`)
	require.Equal(t, lexer.String, toks[0].Kind)
	assert.Equal(t, "é", toks[0].Value)
}

func TestScanTokensUnterminatedString(t *testing.T) {
	toks := lexer.ScanTokens(`"abc`)
	require.Equal(t, lexer.Error, toks[0].Kind)
	assert.Contains(t, toks[0].Value, "unterminated")
}

func TestScanTokensNumberNoScientificNotation(t *testing.T) {
	// scientific notation is not part of this language's grammar: the
	// exponent marker lexes as a separate identifier token, not part of
	// the number.
	toks := lexer.ScanTokens("1e5")
	var sig []lexer.Kind
	for _, tk := range toks {
		if tk.IsSignificant() {
			sig = append(sig, tk.Kind)
		}
	}
	assert.Equal(t, []lexer.Kind{lexer.Number, lexer.Ident}, sig)
}

func TestScanTokensDecimalNumber(t *testing.T) {
	toks := lexer.ScanTokens("3.14")
	assert.Equal(t, lexer.Number, toks[0].Kind)
	assert.Equal(t, "3.14", toks[0].Text)
}

func TestScanTokensTrailingDotIsNotPartOfNumber(t *testing.T) {
	toks := lexer.ScanTokens("3.")
	var sig []lexer.Kind
	for _, tk := range toks {
		if tk.IsSignificant() {
			sig = append(sig, tk.Kind)
		}
	}
	assert.Equal(t, []lexer.Kind{lexer.Number, lexer.Dot}, sig)
}

func TestScanTokensLineComment(t *testing.T) {
	toks := lexer.ScanTokens("1 // trailing note\n+ 2")
	require.True(t, len(toks) > 2)
	assert.Equal(t, lexer.Comment, toks[1].Kind)
	assert.Equal(t, "// trailing note", toks[1].Text)
}

func TestScanTokensBlockComment(t *testing.T) {
	toks := lexer.ScanTokens("1 /* note\nspanning lines */ + 2")
	var sig []lexer.Kind
	sawBlock := false
	for _, tk := range toks {
		if tk.Kind == lexer.BlockComment {
			sawBlock = true
		}
		if tk.IsSignificant() {
			sig = append(sig, tk.Kind)
		}
	}
	assert.True(t, sawBlock)
	assert.Equal(t, []lexer.Kind{lexer.Number, lexer.Plus, lexer.Number}, sig)
}

func TestScanTokensUnterminatedBlockCommentRunsToEOF(t *testing.T) {
	toks := lexer.ScanTokens("1 /* never closed")
	last := toks[len(toks)-1]
	assert.Equal(t, lexer.Eof, last.Kind)
	assert.Equal(t, lexer.BlockComment, toks[len(toks)-2].Kind)
}

func TestDiagnosticsFromErrorTokens(t *testing.T) {
	toks := lexer.ScanTokens(`"abc`)
	diags := lexer.Diagnostics(toks)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.LexErrorCode, diags[0].Code)
	assert.Contains(t, diags[0].Message, "unterminated")
}

func TestScanTokensByteSpans(t *testing.T) {
	toks := lexer.ScanTokens("ab + 12")
	require.Equal(t, lexer.Ident, toks[0].Kind)
	assert.Equal(t, uint32(0), toks[0].Span.Start)
	assert.Equal(t, uint32(2), toks[0].Span.End)
}

func TestScanTokensEofSpanIsAtSourceLength(t *testing.T) {
	toks := lexer.ScanTokens("ab")
	last := toks[len(toks)-1]
	assert.Equal(t, lexer.Eof, last.Kind)
	assert.Equal(t, uint32(2), last.Span.Start)
	assert.Equal(t, uint32(2), last.Span.End)
}
