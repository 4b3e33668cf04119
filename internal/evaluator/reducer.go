// Package evaluator implements the small-step reduction relation and the
// drivers that iterate it to a normal form.
//
// Reduction is call-by-name and weak: the function position of an
// application is reduced before the argument, and nothing under a binder is
// touched. Normalize additionally reduces under binders.
package evaluator

import "github.com/funvibe/funpi/internal/term"

// Stepper performs one reduction step. ok is false when e is in normal form.
type Stepper interface {
	Step(e term.Expr) (next term.Expr, ok bool)
}

// Reducer holds the substitution used by beta and iota reduction.
type Reducer struct {
	Subst term.Substituter
}

// DefaultReducer substitutes with the default capture policy.
var DefaultReducer = Reducer{Subst: term.DefaultSubstituter}

// Step performs one step with the default reducer.
func Step(e term.Expr) (term.Expr, bool) {
	return DefaultReducer.Step(e)
}

// StackStep performs one step with the default reducer without recursion.
func StackStep(e term.Expr) (term.Expr, bool) {
	return DefaultReducer.StackStep(e)
}

// contract rewrites a redex at the root of e:
//
//	App(Lambda(v, _, body), a)          -> body[v := a]
//	ElimNat(_, base, _, Zero)           -> base
//	ElimNat(m, base, step, Succ(n))     -> step n (ElimNat(m, base, step, n))
func (r Reducer) contract(e term.Expr) (term.Expr, bool) {
	switch t := e.(type) {
	case term.App:
		if lam, ok := t.Func.(term.Lambda); ok {
			return r.Subst.Subst(lam.Body, lam.Binder, t.Arg), true
		}
	case term.ElimNat:
		switch n := t.Target.(type) {
		case term.Zero:
			return t.Base, true
		case term.Succ:
			rec := term.ElimNat{Motive: t.Motive, Base: t.Base, Step: t.Step, Target: n.N}
			return term.App{Func: term.App{Func: t.Step, Arg: n.N}, Arg: rec}, true
		}
	}
	return nil, false
}

// Step reduces e by one step, descending recursively.
func (r Reducer) Step(e term.Expr) (term.Expr, bool) {
	res := term.Walk[stepped](e, stepVisitor{r})
	return res.expr, res.ok
}

type stepped struct {
	expr term.Expr
	ok   bool
}

var normal = stepped{}

type stepVisitor struct {
	r Reducer
}

func (stepVisitor) VisitVar(term.Var) stepped       { return normal }
func (stepVisitor) VisitStar(term.Star) stepped     { return normal }
func (stepVisitor) VisitPi(term.Pi) stepped         { return normal }
func (stepVisitor) VisitLambda(term.Lambda) stepped { return normal }
func (stepVisitor) VisitNat(term.Nat) stepped       { return normal }
func (stepVisitor) VisitZero(term.Zero) stepped     { return normal }

func (v stepVisitor) VisitApp(a term.App) stepped {
	if next, ok := v.r.contract(a); ok {
		return stepped{next, true}
	}
	if f, ok := v.r.Step(a.Func); ok {
		return stepped{term.App{Func: f, Arg: a.Arg}, true}
	}
	if arg, ok := v.r.Step(a.Arg); ok {
		return stepped{term.App{Func: a.Func, Arg: arg}, true}
	}
	return normal
}

func (v stepVisitor) VisitSucc(s term.Succ) stepped {
	if n, ok := v.r.Step(s.N); ok {
		return stepped{term.Succ{N: n}, true}
	}
	return normal
}

func (v stepVisitor) VisitElimNat(e term.ElimNat) stepped {
	if next, ok := v.r.contract(e); ok {
		return stepped{next, true}
	}
	if target, ok := v.r.Step(e.Target); ok {
		return stepped{term.ElimNat{Motive: e.Motive, Base: e.Base, Step: e.Step, Target: target}, true}
	}
	return normal
}
