package pipeline

import (
	"errors"
	"testing"

	"github.com/funvibe/funpi/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSkipsFailedEntries(t *testing.T) {
	var seen []string

	fail := ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
		for _, e := range ctx.Pending() {
			if e.Name == "bad" {
				ctx.Fail(e, errors.New("rejected"))
			}
		}
		return ctx
	})
	record := ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
		for _, e := range ctx.Pending() {
			seen = append(seen, e.Name)
		}
		return ctx
	})

	ctx := NewContext("doc.yaml", nil)
	ctx.Entries = []*Entry{
		{Name: "good", Term: term.Zero{}},
		{Name: "bad", Term: term.Zero{}},
	}

	ctx = New(fail, record).Run(ctx)

	assert.Equal(t, []string{"good"}, seen)
	require.Len(t, ctx.Errors, 1)
	assert.EqualError(t, ctx.Errors[0], "bad: rejected")
}

func TestFailKeepsFirstError(t *testing.T) {
	ctx := NewContext("", nil)
	ctx.Logger = nil
	e := &Entry{Name: "e"}

	first := errors.New("first")
	ctx.Fail(e, first)
	ctx.Fail(e, errors.New("second"))

	assert.Same(t, first, e.Err)
	assert.Len(t, ctx.Errors, 2)
	assert.Empty(t, ctx.Pending())
}

func TestNewContext(t *testing.T) {
	ctx := NewContext("doc.yaml", []byte("terms: []"))
	assert.Equal(t, "doc.yaml", ctx.FilePath)
	assert.Zero(t, ctx.Context.Len())
	assert.NotNil(t, ctx.Logger)
	assert.Empty(t, ctx.Entries)
}
