package completion

import (
	"fmt"
	"strings"

	"github.com/joverzhang/formulang/semantic"
)

// SignatureHelp is the label shown for an enclosing call plus which
// comma-separated part of that label should be highlighted. Receiver is
// non-empty only for a postfix call (`recv.method(...)`): the method's
// first declared parameter, presented separately from Label since the
// call site never types it as an argument.
type SignatureHelp struct {
	Label       string
	Receiver    string
	ActiveParam int
}

func paramLabel(p semantic.ParamSig) string {
	s := p.Name + ": " + p.Ty.String()
	if p.Optional {
		s += "?"
	}
	return s
}

func stripTrailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i]
}

func renameForIteration(p semantic.ParamSig, iter int) semantic.ParamSig {
	p.Name = fmt.Sprintf("%s%d", stripTrailingDigits(p.Name), iter)
	return p
}

// shapeParts renders a ParamShape's comma-separated parameter parts the
// way signature help displays them. A repeat group shows only its
// first two iterations, renumbered 1 and 2, followed by an ellipsis
// before any trailing fixed parameters — the real call may repeat the
// group any number of times, but the label stays a fixed, readable
// shape.
func shapeParts(shape semantic.ParamShape) []string {
	parts := make([]string, 0, len(shape.Head)+len(shape.Repeat)*2+len(shape.Tail)+1)
	for _, p := range shape.Head {
		parts = append(parts, paramLabel(p))
	}
	if len(shape.Repeat) > 0 {
		for _, p := range shape.Repeat {
			parts = append(parts, paramLabel(renameForIteration(p, 1)))
		}
		for _, p := range shape.Repeat {
			parts = append(parts, paramLabel(renameForIteration(p, 2)))
		}
		parts = append(parts, "...")
	}
	for _, p := range shape.Tail {
		parts = append(parts, paramLabel(p))
	}
	return parts
}

// BuildSignatureLabel renders a function's full `name(p1: T1, ...) ->
// R` label, as shown when the call is a direct `name(args)` form.
func BuildSignatureLabel(sig semantic.FunctionSig) string {
	return sig.Name + "(" + strings.Join(shapeParts(sig.Shape), ", ") + ") -> " + sig.Return.String()
}

// withoutReceiver drops a ParamShape's first Head parameter, the slot a
// postfix call's receiver fills implicitly.
func withoutReceiver(shape semantic.ParamShape) semantic.ParamShape {
	if len(shape.Head) == 0 {
		return shape
	}
	out := shape
	out.Head = shape.Head[1:]
	return out
}

// displaySlot maps an index into the fully expanded (repeatCount
// iterations) argument list to the index of the comma-separated part it
// corresponds to in BuildSignatureLabel's fixed-shape output: iterations
// beyond the second collapse onto the second displayed repeat block, and
// indices past the repeat region land on the tail params shown after
// the ellipsis.
func displaySlot(shape semantic.ParamShape, realIndex, repeatCount int) int {
	nHead := len(shape.Head)
	if realIndex < nHead {
		return realIndex
	}
	rest := realIndex - nHead
	repeatLen := len(shape.Repeat)
	if repeatLen == 0 {
		return nHead + rest
	}
	repeatTotal := repeatLen * repeatCount
	if rest < repeatTotal {
		iter := rest / repeatLen
		within := rest % repeatLen
		if iter > 1 {
			iter = 1
		}
		return nHead + iter*repeatLen + within
	}
	return nHead + 2*repeatLen + 1 + (rest - repeatTotal)
}

// ExpectedArgType resolves the declared parameter type of the argument
// slot a cursor sits in, the "expected type at the cursor" ranking
// promotion (§4.7) scores candidates against. Returns Unknown once
// argIndex falls outside every declared parameter (e.g. a variadic
// call with no repeat group at all).
func ExpectedArgType(sig semantic.FunctionSig, argIndex, argc int, postfix bool) semantic.Ty {
	shape := sig.Shape
	if postfix && len(shape.Head) > 0 {
		shape = withoutReceiver(shape)
	}
	kind, repeatCount, _ := shape.Classify(argc)
	if kind != semantic.MatchOK {
		repeatCount = 0
		if len(shape.Repeat) > 0 {
			repeatCount = 1
		}
	}
	expanded := shape.Expand(repeatCount)
	if argIndex < 0 || argIndex >= len(expanded) {
		return semantic.Unknown
	}
	return expanded[argIndex].Ty
}

// BuildSignatureHelp renders sig's label and computes which parameter
// the cursor's argument index (0-based, as returned by Classify) should
// highlight, given how many total arguments the enclosing call
// currently has. For a postfix call (receiver.method(args...)), argc
// and argIndex count only the explicit parenthesized arguments — the
// receiver is never typed there — and the receiver's own parameter is
// reported separately via SignatureHelp.Receiver rather than folded
// into Label/ActiveParam.
func BuildSignatureHelp(sig semantic.FunctionSig, argIndex, argc int, postfix bool) SignatureHelp {
	shape := sig.Shape
	receiver := ""
	if postfix && len(shape.Head) > 0 {
		receiver = paramLabel(shape.Head[0])
		shape = withoutReceiver(shape)
	}

	kind, repeatCount, _ := shape.Classify(argc)
	if kind != semantic.MatchOK {
		repeatCount = 0
		if len(shape.Repeat) > 0 {
			repeatCount = 1
		}
	}
	expanded := shape.Expand(repeatCount)
	clamped := argIndex
	if clamped >= len(expanded) {
		clamped = len(expanded) - 1
	}
	if clamped < 0 {
		clamped = 0
	}

	label := sig.Name + "(" + strings.Join(shapeParts(shape), ", ") + ") -> " + sig.Return.String()
	return SignatureHelp{
		Label:       label,
		Receiver:    receiver,
		ActiveParam: displaySlot(shape, clamped, repeatCount),
	}
}
