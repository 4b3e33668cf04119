// Package funpi is the public API of a minimal dependently typed lambda
// calculus: Pi types, a single universe Star, and natural numbers with a
// dependent eliminator.
//
// Build terms with the variant types, check them with TypeCheck under an
// Environment, and evaluate them with EvalStep or EvalFull:
//
//	id := funpi.Lambda{Binder: "A", Domain: funpi.Star{},
//		Body: funpi.Lambda{Binder: "x", Domain: funpi.Var{Name: "A"}, Body: funpi.Var{Name: "x"}}}
//	typ, ok := funpi.TypeCheck(funpi.NewEnvironment(), id)
package funpi

import (
	"github.com/funvibe/funpi/internal/env"
	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/term"
	"github.com/funvibe/funpi/internal/typesystem"
)

// Term variants.
type (
	Expr    = term.Expr
	Var     = term.Var
	Star    = term.Star
	Pi      = term.Pi
	Lambda  = term.Lambda
	App     = term.App
	Nat     = term.Nat
	Zero    = term.Zero
	Succ    = term.Succ
	ElimNat = term.ElimNat
)

// NameSet is a set of variable names.
type NameSet = term.NameSet

// Environment is an immutable typing context. Add returns a new
// Environment and leaves the receiver unchanged.
type Environment = env.Env

// NewEnvironment returns an empty typing context.
func NewEnvironment() *Environment {
	return env.Empty()
}

// TypeCheck returns the type of e under ctx. ok is false when e is
// ill-typed. Types are compared syntactically.
func TypeCheck(ctx *Environment, e Expr) (Expr, bool) {
	return typesystem.TypeCheck(ctx, e)
}

// Infer is TypeCheck with the reason e is ill-typed. Every such error
// satisfies errors.Is(err, ErrIllTyped).
func Infer(ctx *Environment, e Expr) (Expr, error) {
	return typesystem.Infer(ctx, e)
}

// ErrIllTyped matches every type error.
var ErrIllTyped = typesystem.ErrIllTyped

// FreeVars returns the variables occurring free in e.
func FreeVars(e Expr) NameSet {
	return term.FreeVars(e)
}

// Subst replaces the free occurrences of name in e by r, renaming binders
// that would capture free variables of r.
func Subst(e Expr, name string, r Expr) Expr {
	return term.Subst(e, name, r)
}

// EvalStep performs one normal-order reduction step: the function position
// is reduced before the argument. ok is false when e is in normal form.
func EvalStep(e Expr) (Expr, bool) {
	return evaluator.StackStep(e)
}

// EvalFull steps e until no rule applies. It does not return on divergent
// terms.
func EvalFull(e Expr) Expr {
	return evaluator.EvalFull(e)
}

// Numeral returns Succ applied n times to Zero.
func Numeral(n int) Expr {
	return term.Numeral(n)
}
