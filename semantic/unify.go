package semantic

import "fmt"

// assignment tracks, for one call's generic parameters, the bindings
// accumulated so far: a single resolved type for each Plain generic,
// and the accumulated witness list for each Variant generic (normalized
// into a union only once substitution happens).
type assignment struct {
	sig      FunctionSig
	plain    map[GenericId]Ty
	variants map[GenericId][]Ty
}

func newAssignment(sig FunctionSig) *assignment {
	return &assignment{
		sig:      sig,
		plain:    map[GenericId]Ty{},
		variants: map[GenericId][]Ty{},
	}
}

// witness records one argument's type against generic id, returning an
// error message if a Plain generic's witnesses disagree. Variant
// generics never conflict: every witness just joins the accumulated
// union.
func (a *assignment) witness(id GenericId, argTy Ty, fname, pname string) (string, bool) {
	if a.sig.genericKind(id) == Variant {
		a.variants[id] = append(a.variants[id], argTy)
		return "", true
	}
	if existing, ok := a.plain[id]; ok {
		if !existing.Equal(argTy) {
			return fmt.Sprintf("%s() %s has a type that conflicts with an earlier argument", fname, pname), false
		}
		return "", true
	}
	a.plain[id] = argTy
	return "", true
}

func (a *assignment) resolve(id GenericId) Ty {
	if a.sig.genericKind(id) == Variant {
		return NormalizeUnion(a.variants[id])
	}
	if t, ok := a.plain[id]; ok {
		return t
	}
	return Unknown
}

// substitute replaces every GenericTy in t with its resolved binding,
// re-normalizing any union that substitution produces.
func substitute(t Ty, a *assignment) Ty {
	switch t.Kind {
	case TyGeneric:
		return a.resolve(t.Generic)
	case TyList:
		elem := substitute(*t.Elem, a)
		return ListOf(elem)
	case TyUnion:
		members := make([]Ty, len(t.Union))
		for i, m := range t.Union {
			members[i] = substitute(m, a)
		}
		return NormalizeUnion(members)
	default:
		return t
	}
}

// unifyTy attempts to unify a declared (possibly generic) parameter
// type against an observed argument type, recording any generic
// witnesses along the way. Unknown always unifies trivially and
// constrains nothing.
func unifyTy(declared, arg Ty, fname, pname string, a *assignment) (string, bool) {
	if arg.Kind == TyUnknown {
		return "", true
	}
	switch declared.Kind {
	case TyGeneric:
		return a.witness(declared.Generic, arg, fname, pname)
	case TyUnion:
		for _, alt := range declared.Union {
			if msg, ok := unifyTy(alt, arg, fname, pname, a); ok {
				_ = msg
				return "", true
			}
		}
		return fmt.Sprintf("%s() %s must be %s", fname, pname, declared.String()), false
	case TyList:
		if arg.Kind != TyList {
			return fmt.Sprintf("%s() %s must be %s", fname, pname, declared.String()), false
		}
		return unifyTy(*declared.Elem, *arg.Elem, fname, pname, a)
	default:
		if declared.Kind == arg.Kind {
			return "", true
		}
		return fmt.Sprintf("%s() %s must be %s", fname, pname, declared.String()), false
	}
}
