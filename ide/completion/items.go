package completion

import "github.com/joverzhang/formulang/semantic"

// CompletionKind distinguishes the surface category of a candidate, used
// by editors to pick an icon and by callers to filter result sets.
type CompletionKind int

const (
	KindFunction CompletionKind = iota
	KindProperty
	KindKeyword
)

// CompletionItem is one candidate offered back to the editor.
type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
	// Cursor is the byte offset within InsertText where the cursor
	// should land once it's inserted (§4.7's per-kind insertion rule).
	Cursor int
	// ReturnTy is the type this candidate evaluates to (a function's
	// declared return, a property's declared type, Unknown for a
	// keyword that isn't a boolean literal) — ranking promotion checks
	// this against the expected type at the cursor.
	ReturnTy semantic.Ty
}

var keywordItems = []CompletionItem{
	{Label: "true", Kind: KindKeyword, InsertText: "true", Cursor: len("true"), ReturnTy: semantic.Boolean},
	{Label: "false", Kind: KindKeyword, InsertText: "false", Cursor: len("false"), ReturnTy: semantic.Boolean},
	{Label: "not", Kind: KindKeyword, InsertText: "not", Cursor: len("not"), ReturnTy: semantic.Unknown},
}

// hasArgs reports whether shape requires at least one argument.
func hasArgs(shape semantic.ParamShape) bool {
	return len(shape.Head) > 0 || len(shape.Repeat) > 0 || len(shape.Tail) > 0
}

// functionItem builds the candidate for a direct `name(args)` call: a
// zero-argument function inserts `name()` with the cursor after the
// close paren, otherwise the cursor lands between the parens so the
// user can type the first argument immediately.
func functionItem(sig semantic.FunctionSig) CompletionItem {
	insert := sig.Name + "()"
	cursor := len(insert)
	if hasArgs(sig.Shape) {
		cursor = len(sig.Name) + 1
	}
	return CompletionItem{
		Label:      sig.Name,
		Kind:       KindFunction,
		Detail:     BuildSignatureLabel(sig),
		InsertText: insert,
		Cursor:     cursor,
		ReturnTy:   sig.Return,
	}
}

// postfixMethodItem builds the candidate offered right after a '.':
// `.name()`, cursor placement mirrors functionItem but measured against
// the parameter shape with the receiver slot removed, since the
// receiver is never typed as an explicit argument.
func postfixMethodItem(sig semantic.FunctionSig) CompletionItem {
	shape := withoutReceiver(sig.Shape)
	insert := "." + sig.Name + "()"
	cursor := len(insert)
	if hasArgs(shape) {
		cursor = len(insert) - 1
	}
	return CompletionItem{
		Label:      sig.Name,
		Kind:       KindFunction,
		Detail:     BuildSignatureLabel(sig),
		InsertText: insert,
		Cursor:     cursor,
		ReturnTy:   sig.Return,
	}
}

func propertyItem(p semantic.Property) CompletionItem {
	insert := `prop("` + p.Name + `")`
	return CompletionItem{
		Label:      p.Name,
		Kind:       KindProperty,
		Detail:     p.Ty.String(),
		InsertText: insert,
		Cursor:     len(insert),
		ReturnTy:   p.Ty,
	}
}

// Candidates builds the full top-level candidate set for a Context: one
// item per non-reserved catalog function, one per schema property, and
// the fixed keyword set.
func Candidates(ctx semantic.Context) []CompletionItem {
	reserved := semantic.ReservedFunctionNames()
	items := make([]CompletionItem, 0, len(ctx.Functions)+len(ctx.Properties)+len(keywordItems))
	for _, f := range ctx.Functions {
		if reserved[f.Name] {
			continue
		}
		items = append(items, functionItem(f))
	}
	for _, p := range ctx.Properties {
		items = append(items, propertyItem(p))
	}
	items = append(items, keywordItems...)
	return items
}

// MethodCandidates builds the candidate set offered right after a '.':
// only catalog functions whose first declared parameter admits recvTy —
// an Unknown receiver (the common case, since inferring a full
// expression's type at this position is out of scope for the
// completion engine) admits every postfix-capable function.
func MethodCandidates(ctx semantic.Context, recvTy semantic.Ty) []CompletionItem {
	reserved := semantic.ReservedFunctionNames()
	items := make([]CompletionItem, 0, len(ctx.Functions))
	for _, f := range ctx.Functions {
		if reserved[f.Name] {
			continue
		}
		if len(f.Shape.Head) == 0 || !assignable(recvTy, f.Shape.Head[0].Ty) {
			continue
		}
		items = append(items, postfixMethodItem(f))
	}
	return items
}

func findFunctionSig(ctx semantic.Context, name string) (semantic.FunctionSig, bool) {
	for _, f := range ctx.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return semantic.FunctionSig{}, false
}
