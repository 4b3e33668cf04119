package backend

import (
	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/term"
)

// TreeWalkBackend steps by recursive descent over the term.
type TreeWalkBackend struct {
	reducer evaluator.Reducer
}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk(r evaluator.Reducer) *TreeWalkBackend {
	return &TreeWalkBackend{reducer: r}
}

func (b *TreeWalkBackend) Step(e term.Expr) (term.Expr, bool) {
	return b.reducer.Step(e)
}

func (b *TreeWalkBackend) Name() string { return config.BackendTree }
