// Package quickfix collects the textual edits attached to diagnostics
// and applies them back onto source text.
package quickfix

import (
	"sort"

	"github.com/joverzhang/formulang/errors"
)

// key identifies a quick fix by the edit it performs, independent of
// which diagnostic/label it came from: the same fix is often attached
// to more than one diagnostic (e.g. both the call-level "missing comma"
// diagnostic and a secondary label point at the same insertion).
type key struct {
	start, end uint32
	newText    string
}

// Collect gathers every quick fix attached to diags and deduplicates
// identical (span, new text) edits, keeping the first title seen for
// each. Order is the order fixes were first encountered.
func Collect(diags []errors.Diagnostic) []errors.QuickFix {
	seen := make(map[key]bool)
	var out []errors.QuickFix
	for _, d := range diags {
		for _, fix := range d.QuickFixes() {
			k := key{fix.Span.Start, fix.Span.End, fix.NewText}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, fix)
		}
	}
	return out
}

// Apply applies every fix in fixes to source, returning the edited
// text. Fixes are applied right-to-left by span so earlier byte offsets
// stay valid as later edits shift the text; overlapping fixes are
// rejected by skipping any fix whose span overlaps one already applied,
// since applying both would be ambiguous.
func Apply(source string, fixes []errors.QuickFix) string {
	ordered := sortedRightToLeft(fixes)
	out := []byte(source)
	var appliedEnd uint32 // start of the nearest already-applied edit; unused until first is false
	first := true
	for _, fix := range ordered {
		if !first && fix.Span.End > appliedEnd {
			continue // overlaps an edit already applied further right
		}
		first = false
		out = append(out[:fix.Span.Start], append([]byte(fix.NewText), out[fix.Span.End:]...)...)
		appliedEnd = fix.Span.Start
	}
	return string(out)
}

// ApplyWithCursor behaves like Apply but also reports where cursor
// (a byte offset into the original source) lands after every edit is
// applied: offsets before an edit are unaffected, offsets within an
// edited span collapse to its start, and offsets after shift by the
// edit's length delta.
func ApplyWithCursor(source string, fixes []errors.QuickFix, cursor uint32) (string, uint32) {
	ordered := sortedRightToLeft(fixes)
	out := []byte(source)
	newCursor := cursor
	var appliedEnd uint32
	first := true
	for _, fix := range ordered {
		if !first && fix.Span.End > appliedEnd {
			continue
		}
		first = false
		delta := int(len(fix.NewText)) - int(fix.Span.End-fix.Span.Start)
		switch {
		case cursor < fix.Span.Start:
			// unaffected
		case cursor < fix.Span.End:
			// strictly inside the replaced range: snap to its start
			newCursor = fix.Span.Start
		default:
			// at or past the range's end (a zero-width span's insertion
			// point included) shifts by the edit's length delta
			newCursor = uint32(int(newCursor) + delta)
		}
		out = append(out[:fix.Span.Start], append([]byte(fix.NewText), out[fix.Span.End:]...)...)
		appliedEnd = fix.Span.Start
	}
	return string(out), newCursor
}

func sortedRightToLeft(fixes []errors.QuickFix) []errors.QuickFix {
	ordered := make([]errors.QuickFix, len(fixes))
	copy(ordered, fixes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Span.Start > ordered[j].Span.Start
	})
	return ordered
}
