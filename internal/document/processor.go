package document

import (
	"github.com/funvibe/funpi/internal/env"
	"github.com/funvibe/funpi/internal/pipeline"
)

// DocumentProcessor decodes ctx.Source into the typing context and the
// entries the later stages work on.
type DocumentProcessor struct {
	Options Options
}

func (dp *DocumentProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	doc, err := Decode(ctx.Source, dp.Options)
	if err != nil {
		if ctx.FilePath != "" {
			err = &FileError{Path: ctx.FilePath, Err: err}
		}
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	ctx.Context = env.From(doc.Context...)
	for _, item := range doc.Terms {
		ctx.Entries = append(ctx.Entries, &pipeline.Entry{
			Name:         item.Name,
			Term:         item.Term,
			ExpectType:   item.Type,
			ExpectNormal: item.Normal,
		})
	}
	ctx.Logger.Debug("document decoded",
		"file", ctx.FilePath,
		"context", ctx.Context.Len(),
		"definitions", len(doc.Definitions),
		"terms", len(ctx.Entries))
	return ctx
}

// FileError ties a decode failure to its file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }
