// Package prelude provides ready-made terms: the polymorphic identity,
// arithmetic on Peano naturals via the eliminator, and a proof term for
// n + 0 = n.
package prelude

import (
	"github.com/funvibe/funpi/internal/term"
)

// Entry is a named prelude term.
type Entry struct {
	Name string
	Doc  string
	Term term.Expr
}

var (
	nat = term.Nat{}
	// constNat is the non-dependent motive \_ : Nat. Nat.
	constNat = term.Lam(term.Anonymous, nat, nat)
)

// ConstNat returns the motive selecting Nat at every index.
func ConstNat() term.Expr { return constNat }

// Identity is \A : *. \x : A. x.
func Identity() term.Expr {
	return term.Lam("A", term.Star{}, term.Lam("x", term.V("A"), term.V("x")))
}

// IdentityType is Pi(A : *, Pi(x : A, A)).
func IdentityType() term.Expr {
	return term.Forall("A", term.Star{}, term.Forall("x", term.V("A"), term.V("A")))
}

// Add is addition by recursion on the first argument:
//
//	add m n = ElimNat(\_.Nat, n, \_.\rec. Succ rec, m)
func Add() term.Expr {
	return term.Lam("m", nat, term.Lam("n", nat,
		term.Elim(constNat,
			term.V("n"),
			term.Lam(term.Anonymous, nat, term.Lam("rec", nat, term.Succ{N: term.V("rec")})),
			term.V("m"))))
}

// Mul is multiplication by recursion on the first argument, adding n once
// per layer.
func Mul() term.Expr {
	return term.Lam("m", nat, term.Lam("n", nat,
		term.Elim(constNat,
			term.Zero{},
			term.Lam(term.Anonymous, nat, term.Lam("rec", nat, term.Apply(Add(), term.V("n"), term.V("rec")))),
			term.V("m"))))
}

// Pred is the predecessor, with Pred Zero = Zero.
func Pred() term.Expr {
	return term.Lam("m", nat,
		term.Elim(constNat,
			term.Zero{},
			term.Lam("k", nat, term.Lam(term.Anonymous, nat, term.V("k"))),
			term.V("m")))
}

// AddZeroRight is a proof term for n + 0 = n. Equality is encoded as the
// function type (add n 0) -> n. The term evaluates, but it does not type
// check: add n 0 is a Nat, not a type, so it cannot be a Pi domain.
func AddZeroRight() term.Expr {
	claim := func(k term.Expr) term.Expr {
		return term.Arrow(term.Apply(Add(), k, term.Zero{}), k)
	}
	return term.Lam("n", nat,
		term.Elim(
			term.Lam("k", nat, claim(term.V("k"))),
			term.Lam(term.Anonymous, term.Apply(Add(), term.Zero{}, term.Zero{}), term.Zero{}),
			term.Lam("k", nat,
				term.Lam("ih", claim(term.V("k")),
					term.Lam(term.Anonymous, term.Apply(Add(), term.Succ{N: term.V("k")}, term.Zero{}),
						term.Succ{N: term.V("k")}))),
			term.V("n")))
}

// Entries lists the prelude in a stable order.
func Entries() []Entry {
	return []Entry{
		{Name: "id", Doc: "polymorphic identity", Term: Identity()},
		{Name: "nat_motive", Doc: "constant motive \\_ : Nat. Nat", Term: ConstNat()},
		{Name: "add", Doc: "addition on Nat", Term: Add()},
		{Name: "mul", Doc: "multiplication on Nat", Term: Mul()},
		{Name: "pred", Doc: "predecessor on Nat", Term: Pred()},
		{Name: "add_zero_right", Doc: "proof term for n + 0 = n", Term: AddZeroRight()},
	}
}

// Lookup returns the prelude term named name.
func Lookup(name string) (term.Expr, bool) {
	for _, e := range Entries() {
		if e.Name == name {
			return e.Term, true
		}
	}
	return nil, false
}
