package evaluator

import "github.com/funvibe/funpi/internal/term"

// frameKind records which child of a node the search descended into.
type frameKind int

const (
	inFunc frameKind = iota
	inArg
	inSucc
	inTarget
)

type frame struct {
	kind frameKind
	node term.Expr
}

// StackStep reduces e by one step using an explicit frame stack instead of
// the call stack. It finds the same redex as Step: the search walks the
// function position of applications first and backtracks into the argument
// when the function position is normal.
func (r Reducer) StackStep(e term.Expr) (term.Expr, bool) {
	var path []frame
	cur := e

	for {
		if next, ok := r.contract(cur); ok {
			return rebuild(path, next), true
		}

		switch t := cur.(type) {
		case term.App:
			path = append(path, frame{inFunc, t})
			cur = t.Func
			continue
		case term.Succ:
			path = append(path, frame{inSucc, t})
			cur = t.N
			continue
		case term.ElimNat:
			path = append(path, frame{inTarget, t})
			cur = t.Target
			continue
		}

		// cur is normal; unwind to the nearest application whose argument
		// has not been searched yet.
		resumed := false
		for len(path) > 0 {
			top := path[len(path)-1]
			path = path[:len(path)-1]
			if top.kind == inFunc {
				app := top.node.(term.App)
				path = append(path, frame{inArg, app})
				cur = app.Arg
				resumed = true
				break
			}
		}
		if !resumed {
			return nil, false
		}
	}
}

// rebuild plugs replacement into the hole described by path.
func rebuild(path []frame, replacement term.Expr) term.Expr {
	result := replacement
	for i := len(path) - 1; i >= 0; i-- {
		f := path[i]
		switch f.kind {
		case inFunc:
			app := f.node.(term.App)
			result = term.App{Func: result, Arg: app.Arg}
		case inArg:
			app := f.node.(term.App)
			result = term.App{Func: app.Func, Arg: result}
		case inSucc:
			result = term.Succ{N: result}
		case inTarget:
			el := f.node.(term.ElimNat)
			result = term.ElimNat{Motive: el.Motive, Base: el.Base, Step: el.Step, Target: result}
		}
	}
	return result
}
