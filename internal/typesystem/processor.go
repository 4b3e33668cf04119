package typesystem

import (
	"fmt"

	"github.com/funvibe/funpi/internal/pipeline"
	"github.com/funvibe/funpi/internal/term"
)

// CheckProcessor infers the type of every pending entry under the document's
// context and compares it with the declared type, if any.
type CheckProcessor struct {
	Checker *Checker
}

func NewCheckProcessor(c *Checker) *CheckProcessor {
	return &CheckProcessor{Checker: c}
}

func (p *CheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for _, entry := range ctx.Pending() {
		typ, err := p.Checker.Infer(ctx.Context, entry.Term)
		if err != nil {
			ctx.Fail(entry, err)
			continue
		}
		entry.Type = typ

		if entry.ExpectType != nil {
			if err := p.Checker.checkDeclared(ctx, entry); err != nil {
				ctx.Fail(entry, err)
			}
		}
	}
	return ctx
}

// checkDeclared requires the declared type to be a type and to equal the
// inferred one.
func (c *Checker) checkDeclared(ctx *pipeline.PipelineContext, entry *pipeline.Entry) error {
	if err := c.isType(ctx.Context, entry.ExpectType); err != nil {
		return fmt.Errorf("declared type: %w", err)
	}
	if !c.Equal(entry.ExpectType, entry.Type) {
		return NewTypeMismatchError("declared", entry.ExpectType, entry.Type)
	}
	return nil
}

// PreservationError reports a normal form whose type differs from the type
// of the original term.
type PreservationError struct {
	Before term.Expr
	After  term.Expr
}

func (e *PreservationError) Error() string {
	return fmt.Sprintf("type not preserved: %s became %s", e.Before, e.After)
}

// PreservationProcessor re-checks each normal form and requires it to have
// the type inferred for the original term.
type PreservationProcessor struct {
	Checker *Checker
}

func NewPreservationProcessor(c *Checker) *PreservationProcessor {
	return &PreservationProcessor{Checker: c}
}

func (p *PreservationProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for _, entry := range ctx.Pending() {
		if entry.Type == nil || entry.Normal == nil {
			continue
		}
		after, err := p.Checker.Infer(ctx.Context, entry.Normal)
		if err != nil {
			ctx.Fail(entry, fmt.Errorf("normal form: %w", err))
			continue
		}
		if !p.Checker.Equal(entry.Type, after) {
			ctx.Fail(entry, &PreservationError{Before: entry.Type, After: after})
		}
	}
	return ctx
}
