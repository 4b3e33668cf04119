package backend

import (
	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/term"
)

// StackBackend steps with an explicit frame stack, so arbitrarily deep
// numerals do not grow the goroutine stack.
type StackBackend struct {
	reducer evaluator.Reducer
}

// NewStack creates a new work-stack backend
func NewStack(r evaluator.Reducer) *StackBackend {
	return &StackBackend{reducer: r}
}

func (b *StackBackend) Step(e term.Expr) (term.Expr, bool) {
	return b.reducer.StackStep(e)
}

func (b *StackBackend) Name() string { return config.BackendStack }
