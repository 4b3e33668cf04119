// Package term defines the core expression language: variables, the single
// universe Star, dependent functions, and Peano naturals with an eliminator.
package term

// Expr is the interface for all terms. Types are terms too.
// The set of implementations is closed; see Visitor.
type Expr interface {
	String() string
	expr()
}

// Var is a bound or free identifier. Binding is by name.
type Var struct {
	Name string
}

// Star is the type of types. Star : Star.
type Star struct{}

// Pi is a dependent function type. Codomain may mention Binder.
type Pi struct {
	Binder   string
	Domain   Expr
	Codomain Expr
}

// Lambda is a function value with an annotated parameter.
type Lambda struct {
	Binder string
	Domain Expr
	Body   Expr
}

// App is function application.
type App struct {
	Func Expr
	Arg  Expr
}

// Nat is the type of natural numbers.
type Nat struct{}

// Zero is the natural number 0.
type Zero struct{}

// Succ is the successor of N.
type Succ struct {
	N Expr
}

// ElimNat is primitive recursion over Target.
// Motive : Nat -> Star selects the result family, Base handles zero and
// Step handles the inductive case.
type ElimNat struct {
	Motive Expr
	Base   Expr
	Step   Expr
	Target Expr
}

func (Var) expr()     {}
func (Star) expr()    {}
func (Pi) expr()      {}
func (Lambda) expr()  {}
func (App) expr()     {}
func (Nat) expr()     {}
func (Zero) expr()    {}
func (Succ) expr()    {}
func (ElimNat) expr() {}

// Visitor has one method per Expr variant. Every recursive operation over
// terms implements it, so a new variant fails to compile until each
// operation handles it.
type Visitor[R any] interface {
	VisitVar(Var) R
	VisitStar(Star) R
	VisitPi(Pi) R
	VisitLambda(Lambda) R
	VisitApp(App) R
	VisitNat(Nat) R
	VisitZero(Zero) R
	VisitSucc(Succ) R
	VisitElimNat(ElimNat) R
}

// Walk dispatches e to the matching Visitor method.
func Walk[R any](e Expr, v Visitor[R]) R {
	switch t := e.(type) {
	case Var:
		return v.VisitVar(t)
	case Star:
		return v.VisitStar(t)
	case Pi:
		return v.VisitPi(t)
	case Lambda:
		return v.VisitLambda(t)
	case App:
		return v.VisitApp(t)
	case Nat:
		return v.VisitNat(t)
	case Zero:
		return v.VisitZero(t)
	case Succ:
		return v.VisitSucc(t)
	case ElimNat:
		return v.VisitElimNat(t)
	default:
		panic("term: unknown expression variant")
	}
}
