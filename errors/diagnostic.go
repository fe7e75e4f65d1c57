// Package errors defines the structured diagnostic type shared by the
// lexer, parser, semantic analyzer, and IDE layer. It deliberately does
// not implement Go's error interface on Diagnostic itself: diagnostics
// are data to be collected and rendered, not propagated as control flow
// (no stage in this pipeline aborts on the first problem it finds).
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joverzhang/formulang/span"
)

// Code distinguishes the pipeline stage a diagnostic originated from.
// Semantic diagnostics carry no code at all: type errors are reported
// directly against the AST and have no fixed taxonomy of kinds the way
// lex/parse errors do.
type Code struct {
	Kind CodeKind
	// Detail further classifies a Parse diagnostic (e.g. "missing-delim",
	// "mismatched-delim", "missing-comma", "trailing-comma",
	// "trailing-tokens", "unexpected-token"). Empty for LexError and None.
	Detail string
}

type CodeKind int

const (
	CodeNone CodeKind = iota
	CodeLexError
	CodeParse
)

func (c Code) String() string {
	switch c.Kind {
	case CodeLexError:
		return "lex-error"
	case CodeParse:
		if c.Detail != "" {
			return "parse-error:" + c.Detail
		}
		return "parse-error"
	default:
		return ""
	}
}

// ParseCode builds a Code for a parser diagnostic with the given detail
// tag.
func ParseCode(detail string) Code {
	return Code{Kind: CodeParse, Detail: detail}
}

// LexErrorCode is the fixed code every lex-stage diagnostic carries.
var LexErrorCode = Code{Kind: CodeLexError}

// QuickFix is a single textual edit a caller can apply verbatim to
// resolve a diagnostic: replace the bytes in Span with NewText. An
// empty NewText is a deletion; a zero-width Span is an insertion.
type QuickFix struct {
	Title   string
	Span    span.Span
	NewText string
}

// Label attaches a secondary span and message to a diagnostic (e.g.
// "the argument here" alongside the primary "missing comma" message).
// A label may itself carry a QuickFix when it is the thing to edit.
type Label struct {
	Span     span.Span
	Message  string
	QuickFix *QuickFix
}

// Diagnostic is the single structured error/warning type produced by
// every stage of the pipeline.
type Diagnostic struct {
	Code    Code
	Message string
	Span    span.Span
	Labels  []Label
	Notes   []string
}

// New builds a plain diagnostic with no labels.
func New(code Code, message string, sp span.Span) Diagnostic {
	return Diagnostic{Code: code, Message: message, Span: sp}
}

// WithQuickFix attaches a single label carrying the given quick fix at
// the diagnostic's own span, the common case of a fix that edits
// exactly the flagged range.
func (d Diagnostic) WithQuickFix(title, newText string) Diagnostic {
	d.Labels = append(d.Labels, Label{
		Span:     d.Span,
		Message:  title,
		QuickFix: &QuickFix{Title: title, Span: d.Span, NewText: newText},
	})
	return d
}

// WithQuickFixAt attaches a quick fix scoped to an explicit span,
// distinct from the diagnostic's own reporting span (used when the fix
// edits a different range than the one flagged, e.g. a missing-comma
// diagnostic reported over the whole call but fixed at one boundary).
func (d Diagnostic) WithQuickFixAt(title string, at span.Span, newText string) Diagnostic {
	d.Labels = append(d.Labels, Label{
		Span:     at,
		Message:  title,
		QuickFix: &QuickFix{Title: title, Span: at, NewText: newText},
	})
	return d
}

// WithNote appends a free-form note line.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// QuickFixes returns every quick fix attached to the diagnostic's
// labels, in label order.
func (d Diagnostic) QuickFixes() []QuickFix {
	var out []QuickFix
	for _, l := range d.Labels {
		if l.QuickFix != nil {
			out = append(out, *l.QuickFix)
		}
	}
	return out
}

// Sort orders diags by (span.start, message), the presentation order
// every rendering and façade entry point uses.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Span.Start != diags[j].Span.Start {
			return diags[i].Span.Start < diags[j].Span.Start
		}
		return diags[i].Message < diags[j].Message
	})
}

// Format renders a diagnostic in the golden-test rendering shape:
//
//	error: <message>
//	  --> <input>:<line>:<col> [<start>..<end>)
//	  note: <note>
//
// line/col is supplied by the caller (via sourcemap.LineCol) so this
// package stays free of any dependency on source text layout.
func (d Diagnostic) Format(input string, line, col int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", d.Message)
	fmt.Fprintf(&b, "  --> %s:%d:%d [%d..%d)\n", input, line, col, d.Span.Start, d.Span.End)
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "  note: %s\n", n)
	}
	return b.String()
}

// FormatAll renders a sequence of diagnostics (already sorted by Sort,
// or not — callers that need presentation order call Sort first), each
// resolved to a line/col pair by resolve.
func FormatAll(diags []Diagnostic, input string, resolve func(span.Span) (line, col int)) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		line, col := resolve(d.Span)
		b.WriteString(d.Format(input, line, col))
	}
	return b.String()
}
