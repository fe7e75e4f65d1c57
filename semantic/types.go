// Package semantic type-checks a parsed formula expression: it assigns
// every node a Ty, resolves property and function references against a
// Context, and reports per-node diagnostics without ever aborting.
package semantic

import (
	"fmt"
	"sort"
	"strings"
)

// TyKind is the tag of a Ty's variant.
type TyKind int

const (
	TyNull TyKind = iota
	TyBoolean
	TyNumber
	TyString
	TyDate
	TyList
	TyGeneric
	TyUnion
	TyUnknown
)

// Ty is the formula language's type: a tagged union of the concrete
// primitive types, a homogeneous list, an unresolved generic
// placeholder (only ever appears in a FunctionSig, never in a final
// inferred type), a normalized union of two or more alternatives, or
// Unknown (an identifier or anything else this analyzer cannot pin
// down, which unifies trivially against everything).
type Ty struct {
	Kind    TyKind
	Elem    *Ty // TyList
	Generic GenericId
	Union   []Ty // TyUnion, always len >= 2, flattened/deduped/sorted
}

var (
	Null    = Ty{Kind: TyNull}
	Boolean = Ty{Kind: TyBoolean}
	Number  = Ty{Kind: TyNumber}
	String  = Ty{Kind: TyString}
	Date    = Ty{Kind: TyDate}
	Unknown = Ty{Kind: TyUnknown}
)

// ListOf builds a List(elem) type.
func ListOf(elem Ty) Ty {
	e := elem
	return Ty{Kind: TyList, Elem: &e}
}

// GenericTy builds a placeholder type referencing a generic parameter,
// used only inside a FunctionSig's declared parameter/return shapes.
func GenericTy(id GenericId) Ty {
	return Ty{Kind: TyGeneric, Generic: id}
}

// Equal reports structural equality.
func (t Ty) Equal(o Ty) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TyList:
		return t.Elem.Equal(*o.Elem)
	case TyGeneric:
		return t.Generic == o.Generic
	case TyUnion:
		if len(t.Union) != len(o.Union) {
			return false
		}
		for i := range t.Union {
			if !t.Union[i].Equal(o.Union[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the type's display form: lists parenthesize a union
// element (`(number | string)[]`), but unions never parenthesize a list
// element (`number | string[]`).
func (t Ty) String() string {
	switch t.Kind {
	case TyNull:
		return "null"
	case TyBoolean:
		return "boolean"
	case TyNumber:
		return "number"
	case TyString:
		return "string"
	case TyDate:
		return "date"
	case TyList:
		inner := t.Elem.String()
		if t.Elem.Kind == TyUnion {
			inner = "(" + inner + ")"
		}
		return inner + "[]"
	case TyGeneric:
		return fmt.Sprintf("T%d", t.Generic)
	case TyUnion:
		parts := make([]string, len(t.Union))
		for i, m := range t.Union {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case TyUnknown:
		return "unknown"
	default:
		return "?"
	}
}

// tySortKey fixes the deterministic ordering normalize_union sorts by:
// Null < Boolean < Number < String < Date < List < Generic < Union < Unknown.
func tySortKey(t Ty) int {
	switch t.Kind {
	case TyNull:
		return 0
	case TyBoolean:
		return 1
	case TyNumber:
		return 2
	case TyString:
		return 3
	case TyDate:
		return 4
	case TyList:
		return 5
	case TyGeneric:
		return 6
	case TyUnion:
		return 7
	case TyUnknown:
		return 8
	default:
		return 9
	}
}

// NormalizeUnion flattens nested unions, removes duplicates, sorts by
// the fixed key above (ties broken by recursive string comparison so
// the ordering is still total and deterministic for e.g. two distinct
// list element types), and collapses: zero members -> Unknown, one
// member -> that member unwrapped.
func NormalizeUnion(members []Ty) Ty {
	var flat []Ty
	var flatten func(Ty)
	flatten = func(t Ty) {
		if t.Kind == TyUnion {
			for _, m := range t.Union {
				flatten(m)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, m := range members {
		flatten(m)
	}

	var deduped []Ty
	for _, t := range flat {
		dup := false
		for _, d := range deduped {
			if d.Equal(t) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, t)
		}
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		ki, kj := tySortKey(deduped[i]), tySortKey(deduped[j])
		if ki != kj {
			return ki < kj
		}
		return deduped[i].String() < deduped[j].String()
	})

	switch len(deduped) {
	case 0:
		return Unknown
	case 1:
		return deduped[0]
	default:
		return Ty{Kind: TyUnion, Union: deduped}
	}
}
