package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/funvibe/funpi/internal/env"
	"github.com/funvibe/funpi/internal/term"
)

// Processor is one stage of a pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// PipelineContext carries a term document through the stages.
type PipelineContext struct {
	FilePath string
	Source   []byte

	// Context is the typing context declared by the document.
	Context *env.Env
	Entries []*Entry

	// Errors collects document-level failures and every entry failure.
	Errors []error
	Logger *slog.Logger
}

func NewContext(path string, source []byte) *PipelineContext {
	return &PipelineContext{
		FilePath: path,
		Source:   source,
		Context:  env.Empty(),
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Entry is one named term and what the stages learned about it.
type Entry struct {
	Name string
	Term term.Expr

	// Optional expectations from the document.
	ExpectType   term.Expr
	ExpectNormal term.Expr

	Type   term.Expr
	Normal term.Expr
	Steps  int
	Stuck  bool

	// Err is the first failure for this entry. Later stages skip it.
	Err error
}

// Fail records err on the entry and in the context.
func (ctx *PipelineContext) Fail(e *Entry, err error) {
	if e.Err == nil {
		e.Err = err
	}
	ctx.Errors = append(ctx.Errors, fmt.Errorf("%s: %w", e.Name, err))
	if ctx.Logger != nil {
		ctx.Logger.Debug("entry failed", "entry", e.Name, "error", err)
	}
}

// Pending returns the entries that have not failed yet.
func (ctx *PipelineContext) Pending() []*Entry {
	var out []*Entry
	for _, e := range ctx.Entries {
		if e.Err == nil {
			out = append(out, e)
		}
	}
	return out
}
