// Package typesystem implements the bidirectional type checker.
//
// Types are terms. The checker synthesizes a type for every form and compares
// types with a pluggable Equality, syntactic by default: two types that only
// agree after reduction are different.
package typesystem

import (
	"log/slog"

	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/env"
	"github.com/funvibe/funpi/internal/term"
)

// Checker holds the policies used while checking.
type Checker struct {
	Equal  Equality
	Subst  term.Substituter
	Logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

func WithEquality(eq Equality) Option {
	return func(c *Checker) { c.Equal = eq }
}

func WithSubstituter(s term.Substituter) Option {
	return func(c *Checker) { c.Subst = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.Logger = l }
}

// New returns a checker with syntactic equality and the default substituter.
func New(opts ...Option) *Checker {
	c := &Checker{
		Equal:  Syntactic,
		Subst:  term.DefaultSubstituter,
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultChecker = New()

// TypeCheck infers the type of e under ctx with the default checker.
// ok is false when e is ill-typed.
func TypeCheck(ctx *env.Env, e term.Expr) (term.Expr, bool) {
	return defaultChecker.TypeCheck(ctx, e)
}

// Infer infers the type of e under ctx with the default checker.
func Infer(ctx *env.Env, e term.Expr) (term.Expr, error) {
	return defaultChecker.Infer(ctx, e)
}

func (c *Checker) TypeCheck(ctx *env.Env, e term.Expr) (term.Expr, bool) {
	t, err := c.Infer(ctx, e)
	return t, err == nil
}

// Infer synthesizes the type of e. The first failing rule aborts the check;
// the returned error matches ErrIllTyped.
func (c *Checker) Infer(ctx *env.Env, e term.Expr) (term.Expr, error) {
	res := c.infer(ctx, e)
	if res.err != nil && c.Logger != nil {
		c.Logger.Debug("ill-typed", "expr", e.String(), "error", res.err)
	}
	return res.typ, res.err
}

type inferred struct {
	typ term.Expr
	err error
}

func ok(t term.Expr) inferred { return inferred{typ: t} }
func fail(err error) inferred { return inferred{err: err} }

func (c *Checker) infer(ctx *env.Env, e term.Expr) inferred {
	return term.Walk[inferred](e, inferVisitor{c: c, ctx: ctx})
}

// isType requires t : Star.
func (c *Checker) isType(ctx *env.Env, t term.Expr) error {
	res := c.infer(ctx, t)
	if res.err != nil {
		return res.err
	}
	if !c.Equal(res.typ, term.Star{}) {
		return NewNotATypeError(t, res.typ)
	}
	return nil
}

// expect requires e : want.
func (c *Checker) expect(ctx *env.Env, role string, e, want term.Expr) error {
	res := c.infer(ctx, e)
	if res.err != nil {
		return res.err
	}
	if !c.Equal(res.typ, want) {
		return NewTypeMismatchError(role, want, res.typ)
	}
	return nil
}

type inferVisitor struct {
	c   *Checker
	ctx *env.Env
}

func (v inferVisitor) VisitVar(x term.Var) inferred {
	if t, found := v.ctx.Get(x.Name); found {
		return ok(t)
	}
	return fail(NewUnboundVariableError(x.Name))
}

func (v inferVisitor) VisitStar(term.Star) inferred { return ok(term.Star{}) }
func (v inferVisitor) VisitNat(term.Nat) inferred   { return ok(term.Star{}) }
func (v inferVisitor) VisitZero(term.Zero) inferred { return ok(term.Nat{}) }

func (v inferVisitor) VisitPi(p term.Pi) inferred {
	if err := v.c.isType(v.ctx, p.Domain); err != nil {
		return fail(err)
	}
	if err := v.c.isType(v.ctx.Add(p.Binder, p.Domain), p.Codomain); err != nil {
		return fail(err)
	}
	return ok(term.Star{})
}

func (v inferVisitor) VisitLambda(l term.Lambda) inferred {
	if err := v.c.isType(v.ctx, l.Domain); err != nil {
		return fail(err)
	}
	body := v.c.infer(v.ctx.Add(l.Binder, l.Domain), l.Body)
	if body.err != nil {
		return body
	}
	return ok(term.Pi{Binder: l.Binder, Domain: l.Domain, Codomain: body.typ})
}

func (v inferVisitor) VisitApp(a term.App) inferred {
	fn := v.c.infer(v.ctx, a.Func)
	if fn.err != nil {
		return fn
	}
	pi, isPi := fn.typ.(term.Pi)
	if !isPi {
		return fail(NewNotAFunctionError(a.Func, fn.typ))
	}
	if err := v.c.expect(v.ctx, RoleArgument, a.Arg, pi.Domain); err != nil {
		return fail(err)
	}
	return ok(v.c.Subst.Subst(pi.Codomain, pi.Binder, a.Arg))
}

func (v inferVisitor) VisitSucc(s term.Succ) inferred {
	if err := v.c.expect(v.ctx, RoleSuccessor, s.N, term.Nat{}); err != nil {
		return fail(err)
	}
	return ok(term.Nat{})
}

func (v inferVisitor) VisitElimNat(e term.ElimNat) inferred {
	motive := v.c.infer(v.ctx, e.Motive)
	if motive.err != nil {
		return motive
	}
	if !v.c.isMotiveType(motive.typ) {
		return fail(NewMotiveError(e.Motive, motive.typ))
	}

	base := term.App{Func: e.Motive, Arg: term.Zero{}}
	if err := v.c.expect(v.ctx, RoleBase, e.Base, base); err != nil {
		return fail(err)
	}

	if err := v.c.expect(v.ctx, RoleStep, e.Step, StepType(e.Motive)); err != nil {
		return fail(err)
	}

	if err := v.c.expect(v.ctx, RoleTarget, e.Target, term.Nat{}); err != nil {
		return fail(err)
	}
	return ok(term.App{Func: e.Motive, Arg: e.Target})
}

// isMotiveType requires t = Pi(_, Nat, Star).
func (c *Checker) isMotiveType(t term.Expr) bool {
	pi, isPi := t.(term.Pi)
	return isPi && c.Equal(pi.Domain, term.Nat{}) && c.Equal(pi.Codomain, term.Star{})
}

// StepType is the type an eliminator requires of its step function:
//
//	Pi(n : Nat, Pi(ih : motive n, motive (Succ n)))
func StepType(motive term.Expr) term.Expr {
	n := term.V(config.StepBinder)
	return term.Pi{
		Binder: config.StepBinder,
		Domain: term.Nat{},
		Codomain: term.Pi{
			Binder:   config.HypothesisBinder,
			Domain:   term.App{Func: motive, Arg: n},
			Codomain: term.App{Func: motive, Arg: term.Succ{N: n}},
		},
	}
}
