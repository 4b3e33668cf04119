package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/funpi/internal/pipeline"
	"github.com/samber/lo"
)

// reportOptions selects the columns printed for every entry.
type reportOptions struct {
	Type   bool
	Normal bool
}

// report prints one line per entry and returns the number of failures.
func (s *Session) report(w io.Writer, ctx *pipeline.PipelineContext, opts reportOptions) int {
	if len(ctx.Entries) == 0 {
		for _, err := range ctx.Errors {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
		}
		return len(ctx.Errors)
	}

	width := lo.Max(lo.Map(ctx.Entries, func(e *pipeline.Entry, _ int) int { return len(e.Name) }))
	for _, e := range ctx.Entries {
		name := e.Name + strings.Repeat(" ", width-len(e.Name))
		if e.Err != nil {
			_, _ = fmt.Fprintf(w, "%s  error: %v\n", name, e.Err)
			continue
		}
		var cols []string
		if opts.Type && e.Type != nil {
			cols = append(cols, ": "+s.Printer.Print(e.Type))
		}
		if opts.Normal && e.Normal != nil {
			col := "⇓ " + s.Printer.Print(e.Normal) + fmt.Sprintf("  (%d steps", e.Steps)
			if e.Stuck {
				col += ", stuck"
			}
			cols = append(cols, col+")")
		}
		_, _ = fmt.Fprintf(w, "%s  %s\n", name, strings.Join(cols, "  "))
	}

	return lo.CountBy(ctx.Entries, func(e *pipeline.Entry) bool { return e.Err != nil })
}

// processFiles runs every file through stages, reports, and fails if any
// entry failed.
func (s *Session) processFiles(w io.Writer, paths []string, stages []string, opts reportOptions, trace traceFunc) error {
	failures := 0
	for _, path := range paths {
		if len(paths) > 1 {
			_, _ = fmt.Fprintf(w, "== %s\n", path)
		}
		ctx, err := s.Process(path, stages, trace)
		if err != nil {
			return err
		}
		failures += s.report(w, ctx, opts)
	}
	if failures > 0 {
		return fmt.Errorf("%d failure(s)", failures)
	}
	return nil
}
