// Package formulang is the public façade over the formula analyzer:
// lex+parse, semantic analysis, formatting, completion, quick-fix
// collection, and edit application, each a pure function from inputs to
// outputs as §5 of the design requires. It wires together the lower
// packages (compiler/lexer, compiler/parser, semantic, ide/*) without
// adding any state of its own — callers that need document caching or
// an editor transport (LSP, DTO serialization) build that on top.
package formulang

import (
	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/errors"
	"github.com/joverzhang/formulang/ide/completion"
	"github.com/joverzhang/formulang/ide/format"
	"github.com/joverzhang/formulang/ide/quickfix"
	"github.com/joverzhang/formulang/semantic"
	"github.com/joverzhang/formulang/sourcemap"
	"github.com/joverzhang/formulang/span"
)

// ParseOutput is the result of lexing and parsing one source string:
// the parsed expression, the full trivia-included token stream, and
// every lex/parse diagnostic collected, sorted for presentation.
type ParseOutput struct {
	Expr        parser.Expr
	Tokens      []lexer.Token
	Diagnostics []errors.Diagnostic
}

// Analyze lexes and parses text. Parsing never aborts: a malformed
// input still yields a complete ParseOutput, with every problem
// recorded as a diagnostic rather than surfaced as a Go error.
func Analyze(text string) ParseOutput {
	tokens := lexer.ScanTokens(text)
	expr, parseDiags := parser.Parse(tokens)

	diags := append(lexer.Diagnostics(tokens), parseDiags...)
	errors.Sort(diags)
	return ParseOutput{Expr: expr, Tokens: tokens, Diagnostics: diags}
}

// HasSyntaxErrors reports whether out carries a lex or parse
// diagnostic — the check that decides whether FormatExpr runs at all,
// and the one callers use for a binary "is this syntactically valid?"
// test per §7.
func (out ParseOutput) HasSyntaxErrors() bool {
	for _, d := range out.Diagnostics {
		if d.Code.Kind == errors.CodeLexError || d.Code.Kind == errors.CodeParse {
			return true
		}
	}
	return false
}

// AnalyzeSemantic type-checks expr against ctx, returning its inferred
// type and every semantic diagnostic it collected along the way, sorted
// for presentation.
func AnalyzeSemantic(expr parser.Expr, ctx semantic.Context) (semantic.Ty, []errors.Diagnostic) {
	ty, diags := semantic.AnalyzeExpr(expr, ctx)
	errors.Sort(diags)
	return ty, diags
}

// FormatExpr renders out's expression as canonical text, or "" when out
// carries any syntax error: the formatter's contract never runs over a
// tree containing a synthetic error placeholder.
func FormatExpr(out ParseOutput) string {
	if out.HasSyntaxErrors() {
		return ""
	}
	return format.Format(out.Expr)
}

// CompletionConfig tunes Complete; DefaultCompletionConfig is the
// zero-configuration default (preferred_limit = 5).
type CompletionConfig = completion.Config

// DefaultCompletionConfig returns the default CompletionConfig.
func DefaultCompletionConfig() CompletionConfig {
	return completion.DefaultConfig()
}

// CompletionOutput is what Complete hands back to an editor: ranked
// candidates, the span an accepted item replaces, signature help when
// the cursor sits inside a call, and which candidates are "preferred".
type CompletionOutput = completion.Output

// Complete runs the completion engine over text at cursorByte against
// ctx, tuned by cfg.
func Complete(text string, cursorByte uint32, ctx semantic.Context, cfg CompletionConfig) CompletionOutput {
	return completion.Complete(text, ctx, cursorByte, cfg)
}

// QuickFixes collects and deduplicates every quick fix attached to
// diags, in diagnostic order.
func QuickFixes(diags []errors.Diagnostic) []errors.QuickFix {
	return quickfix.Collect(diags)
}

// ApplyEditsWithCursor applies edits to source (descending start order,
// right-to-left) and remaps cursor through them: a cursor strictly
// inside a replaced range snaps to the range's start, and a cursor
// after a replaced range shifts by its length delta. Edits whose
// endpoints are not char boundaries of source, or overflow its length,
// are skipped rather than applied.
func ApplyEditsWithCursor(source string, edits []errors.QuickFix, cursor uint32) (string, uint32) {
	valid := make([]errors.QuickFix, 0, len(edits))
	for _, e := range edits {
		if isValidEdit(source, e.Span) {
			valid = append(valid, e)
		}
	}
	return quickfix.ApplyWithCursor(source, valid, cursor)
}

func isValidEdit(source string, sp span.Span) bool {
	if sp.Start > sp.End || int(sp.End) > len(source) {
		return false
	}
	return sp.Start == sourcemap.ClampToCharBoundary(source, sp.Start) &&
		sp.End == sourcemap.ClampToCharBoundary(source, sp.End)
}

// FormatDiagnostics renders diags in the golden rendering format (§6),
// sorting them by (span.start, message) first and resolving each span's
// line/col against a SourceMap built over source.
func FormatDiagnostics(source, inputName string, diags []errors.Diagnostic) string {
	sorted := make([]errors.Diagnostic, len(diags))
	copy(sorted, diags)
	errors.Sort(sorted)

	sm := sourcemap.New(source)
	return errors.FormatAll(sorted, inputName, func(sp span.Span) (int, int) {
		return sm.LineCol(sp.Start)
	})
}

// DecodeContext strictly decodes an untyped map into a semantic.Context
// (the `properties` field of §6's context input).
func DecodeContext(raw map[string]any) (semantic.Context, error) {
	return semantic.DecodeContext(raw)
}

// DecodeCompletionConfig strictly decodes an untyped map's
// `completion.preferred_limit` field into a CompletionConfig.
func DecodeCompletionConfig(raw map[string]any) (CompletionConfig, error) {
	return completion.DecodeConfig(raw)
}
