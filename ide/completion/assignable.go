package completion

import "github.com/joverzhang/formulang/semantic"

// assignable reports whether a value of type from may be used where
// expected is wanted: ranking promotion (§4.7) and postfix receiver
// filtering both need this, not just Ty.Equal, since Unknown and
// unresolved generics must be compatible with anything and an expected
// union is satisfied by any one of its members.
func assignable(from, expected semantic.Ty) bool {
	if from.Kind == semantic.TyUnknown || expected.Kind == semantic.TyUnknown {
		return true
	}
	if from.Kind == semantic.TyGeneric || expected.Kind == semantic.TyGeneric {
		return true
	}
	if expected.Kind == semantic.TyUnion {
		for _, m := range expected.Union {
			if assignable(from, m) {
				return true
			}
		}
		return false
	}
	if from.Kind == semantic.TyUnion {
		for _, m := range from.Union {
			if !assignable(m, expected) {
				return false
			}
		}
		return true
	}
	if from.Kind == semantic.TyList && expected.Kind == semantic.TyList {
		return assignable(*from.Elem, *expected.Elem)
	}
	return from.Equal(expected)
}
