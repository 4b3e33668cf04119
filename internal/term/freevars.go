package term

import (
	"slices"

	"github.com/samber/lo"
)

// NameSet is a set of variable names.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	names := lo.Keys(map[string]struct{}(s))
	slices.Sort(names)
	return names
}

// Union returns a new set holding the names of s and other.
func (s NameSet) Union(other NameSet) NameSet {
	return NewNameSet(lo.Union(lo.Keys(map[string]struct{}(s)), lo.Keys(map[string]struct{}(other)))...)
}

// Without returns a new set holding the names of s except name.
func (s NameSet) Without(name string) NameSet {
	return NewNameSet(lo.Without(lo.Keys(map[string]struct{}(s)), name)...)
}

// FreeVars returns the names occurring free in e.
func FreeVars(e Expr) NameSet {
	return Walk[NameSet](e, freeVars{})
}

type freeVars struct{}

func (freeVars) VisitVar(v Var) NameSet { return NewNameSet(v.Name) }
func (freeVars) VisitStar(Star) NameSet { return NewNameSet() }
func (freeVars) VisitNat(Nat) NameSet   { return NewNameSet() }
func (freeVars) VisitZero(Zero) NameSet { return NewNameSet() }

func (f freeVars) VisitPi(p Pi) NameSet {
	return Walk[NameSet](p.Domain, f).Union(Walk[NameSet](p.Codomain, f).Without(p.Binder))
}

func (f freeVars) VisitLambda(l Lambda) NameSet {
	return Walk[NameSet](l.Domain, f).Union(Walk[NameSet](l.Body, f).Without(l.Binder))
}

func (f freeVars) VisitApp(a App) NameSet {
	return Walk[NameSet](a.Func, f).Union(Walk[NameSet](a.Arg, f))
}

func (f freeVars) VisitSucc(s Succ) NameSet {
	return Walk[NameSet](s.N, f)
}

func (f freeVars) VisitElimNat(e ElimNat) NameSet {
	return Walk[NameSet](e.Motive, f).
		Union(Walk[NameSet](e.Base, f)).
		Union(Walk[NameSet](e.Step, f)).
		Union(Walk[NameSet](e.Target, f))
}

// IsFree reports whether name occurs free in e.
func IsFree(name string, e Expr) bool {
	return FreeVars(e).Has(name)
}
