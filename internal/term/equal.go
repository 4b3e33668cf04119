package term

// Equal reports whether a and b are identical trees, binder names included.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Star:
		_, ok := b.(Star)
		return ok
	case Pi:
		y, ok := b.(Pi)
		return ok && x.Binder == y.Binder && Equal(x.Domain, y.Domain) && Equal(x.Codomain, y.Codomain)
	case Lambda:
		y, ok := b.(Lambda)
		return ok && x.Binder == y.Binder && Equal(x.Domain, y.Domain) && Equal(x.Body, y.Body)
	case App:
		y, ok := b.(App)
		return ok && Equal(x.Func, y.Func) && Equal(x.Arg, y.Arg)
	case Nat:
		_, ok := b.(Nat)
		return ok
	case Zero:
		_, ok := b.(Zero)
		return ok
	case Succ:
		y, ok := b.(Succ)
		return ok && Equal(x.N, y.N)
	case ElimNat:
		y, ok := b.(ElimNat)
		return ok && Equal(x.Motive, y.Motive) && Equal(x.Base, y.Base) &&
			Equal(x.Step, y.Step) && Equal(x.Target, y.Target)
	}
	return false
}

// AlphaEqual reports whether a and b are equal up to renaming of bound
// variables. Free variables must match by name.
func AlphaEqual(a, b Expr) bool {
	return alphaEqual(a, b, nil, nil)
}

// alphaEqual compares under two binder stacks; a bound variable is identified
// by the depth of its nearest binder.
func alphaEqual(a, b Expr, left, right []string) bool {
	switch x := a.(type) {
	case Var:
		y, ok := b.(Var)
		if !ok {
			return false
		}
		i, j := lookupDepth(left, x.Name), lookupDepth(right, y.Name)
		if i < 0 && j < 0 {
			return x.Name == y.Name
		}
		return i == j
	case Pi:
		y, ok := b.(Pi)
		return ok && alphaEqual(x.Domain, y.Domain, left, right) &&
			alphaEqual(x.Codomain, y.Codomain, push(left, x.Binder), push(right, y.Binder))
	case Lambda:
		y, ok := b.(Lambda)
		return ok && alphaEqual(x.Domain, y.Domain, left, right) &&
			alphaEqual(x.Body, y.Body, push(left, x.Binder), push(right, y.Binder))
	case App:
		y, ok := b.(App)
		return ok && alphaEqual(x.Func, y.Func, left, right) && alphaEqual(x.Arg, y.Arg, left, right)
	case Succ:
		y, ok := b.(Succ)
		return ok && alphaEqual(x.N, y.N, left, right)
	case ElimNat:
		y, ok := b.(ElimNat)
		return ok && alphaEqual(x.Motive, y.Motive, left, right) &&
			alphaEqual(x.Base, y.Base, left, right) &&
			alphaEqual(x.Step, y.Step, left, right) &&
			alphaEqual(x.Target, y.Target, left, right)
	default:
		return Equal(a, b)
	}
}

// lookupDepth returns the distance to the innermost binder of name, or -1.
func lookupDepth(stack []string, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return len(stack) - 1 - i
		}
	}
	return -1
}

func push(stack []string, name string) []string {
	next := make([]string, len(stack), len(stack)+1)
	copy(next, stack)
	return append(next, name)
}
