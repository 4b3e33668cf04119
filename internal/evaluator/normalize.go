package evaluator

import (
	"fmt"

	"github.com/funvibe/funpi/internal/term"
)

// Normalize reduces e everywhere, including under binders and inside Pi
// types, using the default reducer. limit bounds the total number of steps;
// zero means unbounded.
func Normalize(e term.Expr, limit int) (term.Expr, error) {
	return DefaultReducer.Normalize(e, limit)
}

func (r Reducer) Normalize(e term.Expr, limit int) (term.Expr, error) {
	n := &normalizer{r: r, limit: limit}
	return n.normalize(e)
}

type normalizer struct {
	r     Reducer
	limit int
	steps int
}

func (n *normalizer) normalize(e term.Expr) (term.Expr, error) {
	e, err := n.whnf(e)
	if err != nil {
		return nil, err
	}

	switch t := e.(type) {
	case term.Pi:
		dom, cod, err := n.pair(t.Domain, t.Codomain)
		if err != nil {
			return nil, err
		}
		return term.Pi{Binder: t.Binder, Domain: dom, Codomain: cod}, nil
	case term.Lambda:
		dom, body, err := n.pair(t.Domain, t.Body)
		if err != nil {
			return nil, err
		}
		return term.Lambda{Binder: t.Binder, Domain: dom, Body: body}, nil
	case term.App:
		f, a, err := n.pair(t.Func, t.Arg)
		if err != nil {
			return nil, err
		}
		return term.App{Func: f, Arg: a}, nil
	case term.Succ:
		inner, err := n.normalize(t.N)
		if err != nil {
			return nil, err
		}
		return term.Succ{N: inner}, nil
	case term.ElimNat:
		motive, base, err := n.pair(t.Motive, t.Base)
		if err != nil {
			return nil, err
		}
		step, target, err := n.pair(t.Step, t.Target)
		if err != nil {
			return nil, err
		}
		return term.ElimNat{Motive: motive, Base: base, Step: step, Target: target}, nil
	default:
		return e, nil
	}
}

func (n *normalizer) pair(a, b term.Expr) (term.Expr, term.Expr, error) {
	na, err := n.normalize(a)
	if err != nil {
		return nil, nil, err
	}
	nb, err := n.normalize(b)
	if err != nil {
		return nil, nil, err
	}
	return na, nb, nil
}

// whnf steps e until the weak relation is stuck.
func (n *normalizer) whnf(e term.Expr) (term.Expr, error) {
	for {
		next, ok := n.r.StackStep(e)
		if !ok {
			return e, nil
		}
		n.steps++
		if n.limit > 0 && n.steps > n.limit {
			return nil, fmt.Errorf("normalize: %w: %d", ErrStepLimit, n.limit)
		}
		e = next
	}
}
