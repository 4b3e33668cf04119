package term

// Anonymous is the binder name used for non-dependent arrows.
const Anonymous = "_"

// V is shorthand for Var{Name: name}.
func V(name string) Var {
	return Var{Name: name}
}

func Lam(binder string, domain, body Expr) Lambda {
	return Lambda{Binder: binder, Domain: domain, Body: body}
}

func Forall(binder string, domain, codomain Expr) Pi {
	return Pi{Binder: binder, Domain: domain, Codomain: codomain}
}

// Arrow builds the non-dependent function type domain -> codomain.
func Arrow(domain, codomain Expr) Pi {
	return Pi{Binder: Anonymous, Domain: domain, Codomain: codomain}
}

// Apply builds a left-nested application f a1 a2 ... an.
func Apply(f Expr, args ...Expr) Expr {
	result := f
	for _, a := range args {
		result = App{Func: result, Arg: a}
	}
	return result
}

func Elim(motive, base, step, target Expr) ElimNat {
	return ElimNat{Motive: motive, Base: base, Step: step, Target: target}
}

// Numeral builds the Peano numeral Succ^n(Zero). Negative n yields Zero.
func Numeral(n int) Expr {
	var e Expr = Zero{}
	for i := 0; i < n; i++ {
		e = Succ{N: e}
	}
	return e
}

// AsNumber reports whether e is a closed Peano numeral and returns its value.
func AsNumber(e Expr) (int, bool) {
	n := 0
	for {
		switch t := e.(type) {
		case Zero:
			return n, true
		case Succ:
			n++
			e = t.N
		default:
			return 0, false
		}
	}
}
