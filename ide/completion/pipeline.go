package completion

import (
	"github.com/joverzhang/formulang/compiler/lexer"
	"github.com/joverzhang/formulang/compiler/parser"
	"github.com/joverzhang/formulang/semantic"
	"github.com/joverzhang/formulang/span"
)

// Output is the end-to-end result of a completion request: the ranked
// candidate list, the span an accepted item should replace, signature
// help for the enclosing call when the cursor sits inside one, and the
// subset of Items (by index) that are "preferred" — type-compatible
// with whatever the cursor's context expects.
type Output struct {
	Items            []RankedItem
	ReplaceSpan      span.Span
	Signature        *SignatureHelp
	PreferredIndices []int
}

// Complete classifies the cursor position in source, gathers the
// matching candidate set, fuzzy-ranks it against whatever identifier
// prefix immediately precedes the cursor, and — inside a call's
// argument list — attaches signature help for the enclosing function
// and promotes type-compatible candidates into PreferredIndices.
func Complete(source string, ctx semantic.Context, cursor uint32, cfg Config) Output {
	tokens := lexer.ScanTokens(source)
	pos := Classify(tokens, cursor)
	prefix := prefixBeforeCursor(tokens, cursor)
	out := Output{ReplaceSpan: replaceSpan(tokens, cursor)}
	expected := semantic.Unknown

	switch pos.Kind {
	case PosAfterDot:
		recvTy := ReceiverTy(tokens, pos.ReceiverIdx, ctx)
		out.Items = Rank(prefix, MethodCandidates(ctx, recvTy))
	case PosCallArg:
		out.Items = Rank(prefix, Candidates(ctx))
		if sig, ok := findFunctionSig(ctx, pos.CallName); ok {
			argc := countArgs(tokens, pos.OpenParenIdx)
			help := BuildSignatureHelp(sig, pos.ArgIndex, argc, pos.IsPostfix)
			out.Signature = &help
			expected = ExpectedArgType(sig, pos.ArgIndex, argc, pos.IsPostfix)
		}
	default:
		out.Items = Rank(prefix, Candidates(ctx))
	}

	out.PreferredIndices = preferredIndices(out.Items, expected, cfg.PreferredLimit)
	return out
}

// preferredIndices picks, in ranked order, the indices of items whose
// ReturnTy is assignable to expected, capped at limit.
func preferredIndices(items []RankedItem, expected semantic.Ty, limit int) []int {
	var out []int
	for i, it := range items {
		if len(out) >= limit {
			break
		}
		if assignable(it.Item.ReturnTy, expected) {
			out = append(out, i)
		}
	}
	return out
}

// replaceSpan is the span an accepted completion should overwrite: the
// identifier the cursor sits inside or immediately after, or a
// zero-width span at the cursor otherwise.
func replaceSpan(tokens []lexer.Token, cursor uint32) span.Span {
	idx, _ := parser.TokensInSpan(tokens, span.At(cursor))
	if idx < len(tokens) {
		t := tokens[idx]
		if t.Kind == lexer.Ident && t.Span.Start <= cursor && cursor <= t.Span.End {
			return t.Span
		}
	}
	if idx > 0 {
		t := tokens[idx-1]
		if t.Kind == lexer.Ident && t.Span.End == cursor {
			return t.Span
		}
	}
	return span.At(cursor)
}

// prefixBeforeCursor returns the identifier text, if any, up to the
// cursor — the partial word the user is mid-typing, whether the cursor
// sits inside the identifier or immediately after it.
func prefixBeforeCursor(tokens []lexer.Token, cursor uint32) string {
	idx, _ := parser.TokensInSpan(tokens, span.At(cursor))
	if idx < len(tokens) {
		t := tokens[idx]
		if t.Kind == lexer.Ident && t.Span.Start <= cursor && cursor <= t.Span.End {
			return t.Text[:cursor-t.Span.Start]
		}
	}
	if idx > 0 {
		t := tokens[idx-1]
		if t.Kind == lexer.Ident && t.Span.End == cursor {
			return t.Text
		}
	}
	return ""
}

// countArgs counts the arguments already present in the call whose '('
// sits at openIdx, by counting depth-0 commas up to the matching ')'.
// An argument list containing only trivia counts as zero arguments.
func countArgs(tokens []lexer.Token, openIdx int) int {
	depth := 0
	commas := 0
	hasContent := false
	for j := openIdx + 1; j < len(tokens); j++ {
		k := tokens[j].Kind
		if depth == 0 && (k == lexer.RParen || k == lexer.RBracket) {
			break
		}
		switch k {
		case lexer.LParen, lexer.LBracket:
			depth++
		case lexer.RParen, lexer.RBracket:
			depth--
		case lexer.Comma:
			if depth == 0 {
				commas++
			}
		default:
			if depth == 0 && tokens[j].IsSignificant() && k != lexer.Eof {
				hasContent = true
			}
		}
	}
	if !hasContent {
		return 0
	}
	return commas + 1
}
