package backend

import (
	"fmt"

	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/pipeline"
	"github.com/funvibe/funpi/internal/term"
)

// NormalFormMismatchError reports an entry whose normal form differs from
// the one its document expects.
type NormalFormMismatchError struct {
	Expected term.Expr
	Actual   term.Expr
}

func (e *NormalFormMismatchError) Error() string {
	return fmt.Sprintf("normal form: expected %s, got %s", e.Expected, e.Actual)
}

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend  Backend
	MaxSteps int
	// Trace, if set, receives every intermediate term.
	Trace func(entry string, step int, e term.Expr)
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend, maxSteps int) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b, MaxSteps: maxSteps}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for _, entry := range ctx.Pending() {
		m := evaluator.NewMachine(p.Backend, p.MaxSteps)
		if ctx.Logger != nil {
			m.Logger = ctx.Logger.With("entry", entry.Name, "backend", p.Backend.Name())
		}
		if p.Trace != nil {
			name := entry.Name
			m.Trace = func(step int, e term.Expr) { p.Trace(name, step, e) }
		}

		res, err := m.Run(entry.Term)
		entry.Normal = res.Normal
		entry.Steps = res.Steps
		entry.Stuck = res.Stuck
		if err != nil {
			ctx.Fail(entry, err)
			continue
		}

		if entry.ExpectNormal != nil && !term.AlphaEqual(entry.ExpectNormal, res.Normal) {
			ctx.Fail(entry, &NormalFormMismatchError{Expected: entry.ExpectNormal, Actual: res.Normal})
		}
	}
	return ctx
}
